package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and returns the typed configuration from the standard search
// paths. A missing config file is not an error; defaults and environment
// overrides apply. An invalid config file returns a validation error.
func Load() (*Config, error) {
	v := viper.New()
	configureViper(v)
	addConfigPaths(v)

	err := v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config; %w", err)
		}
	}

	return unmarshalConfig(v)
}

// LoadFromPath reads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	configureViper(v)
	v.SetConfigFile(path)

	err := v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to read config from %s; %w", path, err)
	}

	return unmarshalConfig(v)
}

// Current returns the typed configuration held by the global viper instance,
// including flag bindings and Set overrides made after Init.
func Current() (*Config, error) {
	return unmarshalConfig(viper.GetViper())
}

// unmarshalConfig converts viper config to typed Config struct.
func unmarshalConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	err := v.Unmarshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config; %w", err)
	}

	// Env overrides arrive as "a, b" and split on the comma only.
	cfg.Parser.Args = trimAll(cfg.Parser.Args)
	cfg.Extract.Types = trimAll(cfg.Extract.Types)
	cfg.Discovery.Extensions = trimAll(cfg.Discovery.Extensions)
	cfg.Discovery.SkipFiles = trimAll(cfg.Discovery.SkipFiles)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func trimAll(vals []string) []string {
	out := vals[:0]
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
