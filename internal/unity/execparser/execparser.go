// Package execparser implements unity.Parser by running an external dumper
// process per bundle and decoding the objects it streams on stdout.
//
// Protocol: the dumper is invoked as `<command> <args...> <bundle path>` with
// UNIBUNDLE_UNITY_VERSION set to the schema-version hint. It writes a CBOR
// sequence of records to stdout:
//
//	{"path_id": int, "type": text, "fields": map}
//
// and exits 0. Exit status 3 means the file is not a bundle. Any other
// non-zero status is an open failure described by the dumper's stderr.
package execparser

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/leefowlercu/unibundle/internal/unity"
)

const (
	// EnvUnityVersion carries the schema-version hint to the dumper.
	EnvUnityVersion = "UNIBUNDLE_UNITY_VERSION"

	// ExitNotBundle is the exit status a dumper uses to reject a foreign file.
	ExitNotBundle = 3

	// DefaultTimeout bounds a single bundle's dump.
	DefaultTimeout = 5 * time.Minute

	maxStderr = 64 * 1024
)

var decMode cbor.DecMode

func init() {
	var err error
	decMode, err = cbor.DecOptions{
		// Field trees are consumed as map[string]any by the YAML exporter.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		MaxArrayElements: 1 << 27,
		MaxMapPairs:      1 << 24,
	}.DecMode()
	if err != nil {
		panic("execparser: CBOR decoder initialization failed: " + err.Error())
	}
}

// record is one object as streamed by the dumper.
type record struct {
	PathID int64           `cbor:"path_id"`
	Type   string          `cbor:"type"`
	Fields cbor.RawMessage `cbor:"fields"`
}

// Parser runs an external dumper command.
type Parser struct {
	command string
	args    []string
	env     []string
	timeout time.Duration
}

// Option configures a Parser.
type Option func(*Parser)

// WithArgs sets arguments placed before the bundle path.
func WithArgs(args []string) Option {
	return func(p *Parser) {
		p.args = args
	}
}

// WithTimeout bounds each bundle's dump. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(p *Parser) {
		p.timeout = d
	}
}

// WithEnv adds KEY=VALUE entries to the dumper's environment.
func WithEnv(env []string) Option {
	return func(p *Parser) {
		p.env = env
	}
}

// New creates a Parser running command.
func New(command string, opts ...Option) *Parser {
	p := &Parser{
		command: command,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Open starts the dumper for path and reads the first record, so that
// rejections surface here rather than on the first Next call.
func (p *Parser) Open(ctx context.Context, path string, opts unity.OpenOptions) (unity.Bundle, error) {
	var runCtx context.Context
	var cancel context.CancelFunc
	if p.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, p.timeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}

	args := make([]string, 0, len(p.args)+1)
	args = append(args, p.args...)
	args = append(args, path)

	cmd := exec.CommandContext(runCtx, p.command, args...)
	cmd.Env = append(os.Environ(), p.env...)
	cmd.Env = append(cmd.Env, EnvUnityVersion+"="+opts.UnityVersion)
	cmd.WaitDelay = 2 * time.Second

	stderr := &limitedBuffer{limit: maxStderr}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, &unity.OpenError{Path: path, Err: fmt.Errorf("failed to create stdout pipe; %w", err)}
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, &unity.OpenError{Path: path, Err: fmt.Errorf("failed to start parser %q; %w", p.command, err)}
	}

	b := &bundle{
		path:   path,
		cmd:    cmd,
		ctx:    runCtx,
		cancel: cancel,
		dec:    decMode.NewDecoder(bufio.NewReader(stdout)),
		stderr: stderr,
	}

	first, err := b.decode()
	if err != nil {
		if errors.Is(err, io.EOF) {
			if werr := b.wait(); werr != nil {
				return nil, werr
			}
			return b, nil
		}
		_ = b.Close()
		return nil, &unity.OpenError{Path: path, Err: fmt.Errorf("failed to decode parser output; %w", err)}
	}
	b.pending = first

	return b, nil
}

// bundle streams records from a running dumper.
type bundle struct {
	path    string
	cmd     *exec.Cmd
	ctx     context.Context
	cancel  context.CancelFunc
	dec     *cbor.Decoder
	stderr  *limitedBuffer
	pending *object
	records int
	done    bool
	waitErr error
}

// Next returns the next object or io.EOF.
func (b *bundle) Next() (unity.Object, error) {
	if b.pending != nil {
		obj := b.pending
		b.pending = nil
		return obj, nil
	}
	if b.done {
		if b.waitErr != nil {
			return nil, b.waitErr
		}
		return nil, io.EOF
	}

	obj, err := b.decode()
	if err != nil {
		if errors.Is(err, io.EOF) {
			if werr := b.wait(); werr != nil {
				return nil, werr
			}
			return nil, io.EOF
		}
		_ = b.Close()
		return nil, &unity.OpenError{Path: b.path, Err: fmt.Errorf("failed to decode parser output; %w", err)}
	}
	return obj, nil
}

// Close stops the dumper if it is still running and reaps it.
func (b *bundle) Close() error {
	if b.done {
		return nil
	}
	b.cancel()
	_ = b.cmd.Wait()
	b.done = true
	return nil
}

func (b *bundle) decode() (*object, error) {
	var rec record
	if err := b.dec.Decode(&rec); err != nil {
		return nil, err
	}
	b.records++
	return &object{rec: rec}, nil
}

// wait reaps the finished dumper and classifies its exit status.
func (b *bundle) wait() error {
	err := b.cmd.Wait()
	b.done = true
	defer b.cancel()

	if err == nil {
		return nil
	}

	msg := strings.TrimSpace(b.stderr.String())

	if errors.Is(b.ctx.Err(), context.DeadlineExceeded) {
		b.waitErr = &unity.OpenError{Path: b.path, Err: fmt.Errorf("parser timed out; %w", context.DeadlineExceeded)}
		return b.waitErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() == ExitNotBundle || (b.records == 0 && unity.LooksLikeNotBundle(msg)) {
			b.waitErr = &unity.OpenError{Path: b.path, Err: fmt.Errorf("%s; %w", firstLine(msg), unity.ErrNotBundle)}
			return b.waitErr
		}
	}

	if msg == "" {
		msg = err.Error()
	}
	b.waitErr = &unity.OpenError{Path: b.path, Err: errors.New(firstLine(msg))}
	return b.waitErr
}

// object is one streamed record.
type object struct {
	rec record
}

func (o *object) PathID() int64    { return o.rec.PathID }
func (o *object) TypeName() string { return o.rec.Type }

// Read decodes the record's fields into the typed asset for its type.
func (o *object) Read() (unity.Asset, error) {
	return decodeAsset(o.rec.Type, o.rec.Fields)
}

func decodeAsset(typeName string, raw []byte) (unity.Asset, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("object of type %s has no fields", typeName)
	}

	var target unity.Asset
	switch typeName {
	case unity.TypeTexture2D:
		target = &unity.Texture2D{}
	case unity.TypeSprite:
		target = &unity.Sprite{}
	case unity.TypeMesh:
		target = &unity.Mesh{}
	case unity.TypeAudioClip:
		target = &unity.AudioClip{}
	case unity.TypeTextAsset:
		target = &unity.TextAsset{}
	case unity.TypeFont:
		target = &unity.Font{}
	default:
		fields := map[string]any{}
		if err := decMode.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode %s fields; %w", typeName, err)
		}
		name, _ := fields["m_Name"].(string)
		if typeName == unity.TypeMonoBehaviour {
			return &unity.MonoBehaviour{Name: name, Fields: fields}, nil
		}
		return &unity.Generic{Type: typeName, Name: name, Fields: fields}, nil
	}

	if err := decMode.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("failed to decode %s fields; %w", typeName, err)
	}
	return target, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// limitedBuffer keeps at most limit bytes of a stream and discards the rest.
type limitedBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (l *limitedBuffer) Write(p []byte) (int, error) {
	if room := l.limit - l.buf.Len(); room > 0 {
		if len(p) > room {
			l.buf.Write(p[:room])
		} else {
			l.buf.Write(p)
		}
	}
	return len(p), nil
}

func (l *limitedBuffer) String() string {
	return l.buf.String()
}
