package cmdutil

import (
	"context"
	"io"
	"log/slog"

	"github.com/leefowlercu/unibundle/internal/config"
	"github.com/leefowlercu/unibundle/internal/exporters"
	"github.com/leefowlercu/unibundle/internal/extract"
	"github.com/leefowlercu/unibundle/internal/unity"
)

// ParserFactory builds the parser used by extraction commands. Tests replace it.
var ParserFactory = func(cfg config.ParserConfig) unity.Parser {
	return NewParser(cfg)
}

// Extraction holds the resolved settings for one extraction command.
type Extraction struct {
	Request          extract.Request
	MinTextureSize   int
	ProgressInterval int
}

// RunExtraction wires the parser, exporters and discovery rules from cfg into
// an engine, runs x and writes the summary to w. The summary is written for
// cancelled runs too.
func RunExtraction(ctx context.Context, w io.Writer, cfg *config.Config, x Extraction) error {
	logger := slog.Default()

	registry := exporters.DefaultRegistry(exporters.WithMinTextureSize(x.MinTextureSize))
	engine := extract.New(ParserFactory(cfg.Parser), registry,
		extract.WithLogger(logger),
		extract.WithOutput(w),
		extract.WithProgressInterval(x.ProgressInterval),
		extract.WithDiscoveryOptions(DiscoveryOptions(cfg.Discovery, logger)...),
	)

	stats, err := engine.Run(ctx, x.Request)
	if stats != nil {
		if werr := extract.WriteSummary(w, stats, x.Request.OutputRoot); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}
