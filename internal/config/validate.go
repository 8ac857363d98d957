package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leefowlercu/unibundle/internal/logging"
	"github.com/leefowlercu/unibundle/internal/unity"
)

// ValidationError represents a config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("config validation failed:\n")
	for _, err := range e {
		b.WriteString("  - ")
		b.WriteString(err.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// Validate checks the configuration for errors.
// Returns ValidationErrors if validation fails.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("must be one of: %s; got %q", strings.Join(logging.Levels, ", "), cfg.LogLevel),
		})
	}

	// Parser
	if strings.TrimSpace(cfg.Parser.Command) == "" {
		errs = append(errs, ValidationError{
			Field:   "parser.command",
			Message: "must not be empty",
		})
	}

	if cfg.Parser.Timeout < 0 {
		errs = append(errs, ValidationError{
			Field:   "parser.timeout",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Parser.Timeout),
		})
	}

	// Extract
	if strings.TrimSpace(cfg.Extract.UnityVersion) == "" {
		errs = append(errs, ValidationError{
			Field:   "extract.unity_version",
			Message: "must not be empty",
		})
	}

	var unknown []string
	for _, t := range cfg.Extract.Types {
		if !unity.IsSupportedType(t) {
			unknown = append(unknown, t)
		}
	}
	if len(unknown) > 0 {
		errs = append(errs, ValidationError{
			Field: "extract.types",
			Message: fmt.Sprintf("unsupported types %s; supported: %s",
				strings.Join(unknown, ","), strings.Join(unity.SupportedTypes, ",")),
		})
	}

	errs = appendNonNegative(errs, "extract.min_size", cfg.Extract.MinSize)
	errs = appendPositive(errs, "extract.progress_interval", cfg.Extract.ProgressInterval)

	// Textures
	errs = appendNonNegative(errs, "textures.min_size", cfg.Textures.MinSize)
	errs = appendPositive(errs, "textures.progress_interval", cfg.Textures.ProgressInterval)

	// Discovery
	if len(cfg.Discovery.Extensions) == 0 {
		errs = append(errs, ValidationError{
			Field:   "discovery.extensions",
			Message: "must list at least one extension",
		})
	}

	if cfg.Discovery.MinSize < 0 {
		errs = append(errs, ValidationError{
			Field:   "discovery.min_size",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Discovery.MinSize),
		})
	}

	for _, pattern := range cfg.Discovery.SkipFiles {
		if _, err := filepath.Match(pattern, ""); err != nil {
			errs = append(errs, ValidationError{
				Field:   "discovery.skip_files",
				Message: fmt.Sprintf("invalid pattern %q; %v", pattern, err),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func appendNonNegative(errs ValidationErrors, field string, v int) ValidationErrors {
	if v < 0 {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be non-negative, got %d", v),
		})
	}
	return errs
}

func appendPositive(errs ValidationErrors, field string, v int) ValidationErrors {
	if v < 1 {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least 1, got %d", v),
		})
	}
	return errs
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var ve ValidationError
	var ves ValidationErrors
	return errors.As(err, &ve) || errors.As(err, &ves)
}
