package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := Validate(&cfg); err != nil {
		t.Fatalf("Validate(defaults) error = %v", err)
	}
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"empty parser command", func(c *Config) { c.Parser.Command = "  " }, "parser.command"},
		{"negative timeout", func(c *Config) { c.Parser.Timeout = -1 }, "parser.timeout"},
		{"empty unity version", func(c *Config) { c.Extract.UnityVersion = "" }, "extract.unity_version"},
		{"unsupported type", func(c *Config) { c.Extract.Types = []string{"Texture2D", "Shader"} }, "extract.types"},
		{"negative extract min size", func(c *Config) { c.Extract.MinSize = -4 }, "extract.min_size"},
		{"zero progress interval", func(c *Config) { c.Extract.ProgressInterval = 0 }, "extract.progress_interval"},
		{"negative textures min size", func(c *Config) { c.Textures.MinSize = -1 }, "textures.min_size"},
		{"zero textures interval", func(c *Config) { c.Textures.ProgressInterval = 0 }, "textures.progress_interval"},
		{"no extensions", func(c *Config) { c.Discovery.Extensions = nil }, "discovery.extensions"},
		{"negative discovery min size", func(c *Config) { c.Discovery.MinSize = -1 }, "discovery.min_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(&cfg)

			err := Validate(&cfg)
			var errs ValidationErrors
			if !errors.As(err, &errs) {
				t.Fatalf("Validate() error = %v, want ValidationErrors", err)
			}
			if len(errs) != 1 || errs[0].Field != tt.field {
				t.Errorf("Validate() = %v, want single error on %s", errs, tt.field)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "parser.command", Message: "must not be empty"},
		{Field: "parser.timeout", Message: "must be non-negative, got -1"},
	}

	msg := errs.Error()
	if !strings.HasPrefix(msg, "config validation failed:") {
		t.Errorf("Error() = %q, want summary prefix", msg)
	}
	if !strings.Contains(msg, "  - parser.timeout: must be non-negative, got -1") {
		t.Errorf("Error() = %q, missing entry", msg)
	}

	single := ValidationErrors{{Field: "log_level", Message: "bad"}}
	if single.Error() != "log_level: bad" {
		t.Errorf("single Error() = %q", single.Error())
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(ValidationError{Field: "x", Message: "y"}) {
		t.Error("IsValidationError(ValidationError) = false")
	}
	if IsValidationError(errors.New("other")) {
		t.Error("IsValidationError(plain error) = true")
	}
}

func TestValidate_SkipFilesPattern(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Discovery.SkipFiles = []string{"*.manifest", "[bad"}

	err := Validate(&cfg)
	var errs ValidationErrors
	if !errors.As(err, &errs) || len(errs) != 1 || errs[0].Field != "discovery.skip_files" {
		t.Errorf("Validate() = %v, want single discovery.skip_files error", err)
	}
}
