package cmdutil

import (
	"log/slog"
	"time"

	"github.com/leefowlercu/unibundle/internal/config"
	"github.com/leefowlercu/unibundle/internal/unity"
	"github.com/leefowlercu/unibundle/internal/unity/execparser"
	"github.com/leefowlercu/unibundle/internal/walker"
)

// NewParser builds the dumper-backed parser described by cfg.
func NewParser(cfg config.ParserConfig) unity.Parser {
	return execparser.New(cfg.Command,
		execparser.WithArgs(cfg.Args),
		execparser.WithTimeout(time.Duration(cfg.Timeout)*time.Second))
}

// DiscoveryOptions converts discovery config into walker options. A nil
// logger leaves the walker's default in place.
func DiscoveryOptions(cfg config.DiscoveryConfig, logger *slog.Logger) []walker.Option {
	opts := []walker.Option{
		walker.WithExtensions(cfg.Extensions),
		walker.WithMinSize(cfg.MinSize),
		walker.WithExtensionless(cfg.Extensionless),
		walker.WithSkipHidden(cfg.SkipHidden),
		walker.WithSkipFiles(cfg.SkipFiles),
	}
	if logger != nil {
		opts = append(opts, walker.WithLogger(logger))
	}
	return opts
}
