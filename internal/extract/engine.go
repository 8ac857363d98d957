// Package extract drives a run: discover bundles, open each through the
// parser, dispatch objects to exporters and tally the outcomes.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leefowlercu/unibundle/internal/exporters"
	"github.com/leefowlercu/unibundle/internal/normalize"
	"github.com/leefowlercu/unibundle/internal/unity"
	"github.com/leefowlercu/unibundle/internal/walker"
)

// DefaultProgressInterval is the number of bundles between progress lines.
const DefaultProgressInterval = 50

var (
	// ErrNoBundles is returned when discovery finds no candidate files.
	ErrNoBundles = errors.New("no bundle files found")

	// ErrNoTypes is returned when none of the requested types can be exported.
	ErrNoTypes = errors.New("no exportable types requested")
)

// Request describes one extraction run.
type Request struct {
	// SourceRoot is searched recursively for bundles.
	SourceRoot string

	// OutputRoot receives one subdirectory per type, or every file when Flat is set.
	OutputRoot string

	// Types restricts extraction to these type names. Empty means every registered type.
	Types []string

	// UnityVersion is the schema-version hint passed to the parser.
	UnityVersion string

	// Normalize strips alternate container headers into a scratch copy before opening.
	Normalize bool

	// Flat writes all files directly into OutputRoot.
	Flat bool
}

// Engine runs extractions.
type Engine struct {
	parser     unity.Parser
	registry   *exporters.Registry
	normalizer *normalize.Normalizer
	walkerOpts []walker.Option
	logger     *slog.Logger
	out        io.Writer
	interval   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithOutput sets where progress lines are written.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.out = w
	}
}

// WithProgressInterval sets the number of bundles between progress lines.
func WithProgressInterval(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.interval = n
		}
	}
}

// WithNormalizer sets the normalizer used for requests with Normalize set.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(e *Engine) {
		e.normalizer = n
	}
}

// WithDiscoveryOptions passes options through to bundle discovery.
func WithDiscoveryOptions(opts ...walker.Option) Option {
	return func(e *Engine) {
		e.walkerOpts = append(e.walkerOpts, opts...)
	}
}

// New creates an Engine.
func New(parser unity.Parser, registry *exporters.Registry, opts ...Option) *Engine {
	e := &Engine{
		parser:   parser,
		registry: registry,
		logger:   slog.Default(),
		out:      io.Discard,
		interval: DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.normalizer == nil {
		e.normalizer = normalize.New(normalize.WithLogger(e.logger))
	}
	return e
}

// run holds the state of one Run call.
type run struct {
	req       Request
	requested map[string]bool
	stats     *Stats
	dirs      map[string]string
	scratch   string
	logger    *slog.Logger
}

// Run executes req. Per-bundle and per-object problems are logged and
// counted; only invalid requests, discovery failures, ErrNoBundles and
// context cancellation are returned as errors. On cancellation the partial
// stats are returned along with the context error.
func (e *Engine) Run(ctx context.Context, req Request) (*Stats, error) {
	if req.SourceRoot == "" || req.OutputRoot == "" {
		return nil, fmt.Errorf("source and output roots are required")
	}
	if req.UnityVersion == "" {
		req.UnityVersion = unity.DefaultUnityVersion
	}

	types, err := e.resolveTypes(req.Types)
	if err != nil {
		return nil, err
	}

	opts := append([]walker.Option{walker.WithLogger(e.logger)}, e.walkerOpts...)
	files, err := walker.Discover(ctx, req.SourceRoot, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to discover bundles; %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoBundles, req.SourceRoot)
	}

	runID := uuid.NewString()
	r := &run{
		req:       req,
		requested: make(map[string]bool, len(types)),
		stats:     NewStats(runID),
		dirs:      make(map[string]string),
		logger:    e.logger.With("run_id", runID),
	}
	for _, t := range types {
		r.requested[t] = true
	}
	r.stats.Bundles.Total = len(files)

	fmt.Fprintf(e.out, "Unity version: %s\n", req.UnityVersion)
	fmt.Fprintf(e.out, "Found %d bundle files\n", len(files))
	fmt.Fprintf(e.out, "Extracting types: %s\n\n", strings.Join(types, ", "))

	if req.Normalize {
		scratch, err := os.MkdirTemp("", "unibundle-normalize-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create scratch directory; %w", err)
		}
		defer os.RemoveAll(scratch)
		r.scratch = scratch
	}

	r.logger.Info("extraction started",
		"source", req.SourceRoot,
		"output", req.OutputRoot,
		"bundles", len(files),
		"types", types)

	defer func() {
		r.stats.Duration = time.Since(r.stats.Started)
	}()

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("extraction cancelled", "processed", i, "total", len(files))
			return r.stats, err
		}

		if i == 0 || (i+1)%e.interval == 0 {
			totals := r.stats.Totals()
			fmt.Fprintf(e.out, "Processing bundle %d/%d... (%d extracted)\n", i+1, len(files), totals.Success)
		}

		e.processBundle(ctx, r, i, f.Path)
	}

	totals := r.stats.Totals()
	r.logger.Info("extraction finished",
		"extracted", totals.Success,
		"failed", totals.Failed,
		"skipped", totals.Skipped,
		"bundles_opened", r.stats.Bundles.Opened,
		"bundles_errored", r.stats.Bundles.Errored)

	return r.stats, nil
}

// resolveTypes returns the sorted set of requested types that have an exporter.
func (e *Engine) resolveTypes(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return e.registry.Types(), nil
	}

	seen := make(map[string]bool)
	var types []string
	for _, name := range requested {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		if !unity.IsSupportedType(name) {
			e.logger.Warn("unknown type requested; ignoring", "type", name)
			continue
		}
		if e.registry.Get(name) == nil {
			e.logger.Warn("no exporter for type; skipping", "type", name)
			continue
		}
		types = append(types, name)
	}

	if len(types) == 0 {
		return nil, fmt.Errorf("%w; supported: %s", ErrNoTypes, strings.Join(e.registry.Types(), ","))
	}
	sort.Strings(types)
	return types, nil
}

func (e *Engine) processBundle(ctx context.Context, r *run, index int, path string) {
	name := filepath.Base(path)
	logger := r.logger.With("bundle", path)

	openPath := path
	if r.scratch != "" {
		if p, ok := e.normalizeToScratch(r, index, path, logger); ok {
			openPath = p
			defer os.RemoveAll(filepath.Dir(p))
		}
	}

	bundle, err := e.parser.Open(ctx, openPath, unity.OpenOptions{UnityVersion: r.req.UnityVersion})
	if err != nil {
		if unity.IsNotBundle(err) {
			r.stats.Bundles.NotBundle++
			logger.Debug("skipping non-bundle file", "error", err)
			return
		}
		r.stats.Bundles.Errored++
		logger.Warn("failed to load bundle", "file", name, "error", err)
		return
	}
	defer bundle.Close()
	r.stats.Bundles.Opened++

	for {
		obj, err := bundle.Next()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			r.stats.Bundles.Interrupted++
			logger.Warn("bundle ended with error", "file", name, "error", err)
			return
		}

		typeName := obj.TypeName()
		if !r.requested[typeName] {
			continue
		}
		exp := e.registry.Get(typeName)
		if exp == nil {
			continue
		}

		dir, err := e.outputDir(r, typeName)
		if err != nil {
			logger.Warn("failed to create output directory", "type", typeName, "error", err)
			r.stats.Record(typeName, OutcomeFailed)
			continue
		}

		r.stats.Record(typeName, e.export(ctx, exp, obj, dir, logger))
	}
}

// normalizeToScratch strips an alternate header into a per-bundle scratch
// directory, keeping the original base name.
func (e *Engine) normalizeToScratch(r *run, index int, path string, logger *slog.Logger) (string, bool) {
	alt, err := normalize.Detect(path)
	if err != nil {
		logger.Warn("failed to inspect bundle header", "error", err)
		return "", false
	}
	if !alt {
		return "", false
	}

	out := filepath.Join(r.scratch, strconv.Itoa(index), filepath.Base(path))
	if _, err := e.normalizer.Normalize(path, out); err != nil {
		logger.Warn("failed to normalize bundle; opening original", "error", err)
		return "", false
	}
	r.stats.Bundles.Normalized++
	return out, true
}

func (e *Engine) outputDir(r *run, typeName string) (string, error) {
	if dir, ok := r.dirs[typeName]; ok {
		return dir, nil
	}

	dir := r.req.OutputRoot
	if !r.req.Flat {
		dir = filepath.Join(dir, typeName)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s; %w", dir, err)
	}
	r.dirs[typeName] = dir
	return dir, nil
}

// export invokes exp and classifies the result. A panicking exporter counts
// as a failure.
func (e *Engine) export(ctx context.Context, exp exporters.Exporter, obj unity.Object, dir string, logger *slog.Logger) (outcome Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("exporter panicked",
				"type", obj.TypeName(),
				"path_id", obj.PathID(),
				"panic", rec,
				"stack", string(debug.Stack()))
			outcome = OutcomeFailed
		}
	}()

	res, err := exp.Export(ctx, obj, dir)
	switch {
	case err == nil:
		logger.Debug("exported object", "type", obj.TypeName(), "path_id", obj.PathID(), "files", res.Files)
		return OutcomeSuccess
	case errors.Is(err, exporters.ErrBelowMinSize):
		logger.Debug("skipped object", "type", obj.TypeName(), "path_id", obj.PathID(), "reason", err)
		return OutcomeSkipped
	default:
		logger.Debug("export failed", "type", obj.TypeName(), "path_id", obj.PathID(), "error", err)
		return OutcomeFailed
	}
}
