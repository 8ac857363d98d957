package config

import (
	"github.com/spf13/viper"

	"github.com/leefowlercu/unibundle/internal/unity"
	"github.com/leefowlercu/unibundle/internal/walker"
)

// Default configuration values.
const (
	DefaultLogLevel = "info"
	DefaultLogFile  = "~/.config/unibundle/unibundle.log"

	DefaultParserCommand = "unibundle-dumper"
	DefaultParserTimeout = 300 // seconds

	DefaultExtractMinSize          = 0
	DefaultExtractProgressInterval = 50
	DefaultExtractNormalize        = false

	DefaultTexturesMinSize          = 0
	DefaultTexturesProgressInterval = 100

	DefaultDiscoveryMinSize       = walker.DefaultMinSize
	DefaultDiscoveryExtensionless = true
	DefaultDiscoverySkipHidden    = false
)

// DefaultUnityVersion is the schema-version hint for bundles without embedded type metadata.
const DefaultUnityVersion = unity.DefaultUnityVersion

// DefaultDiscoveryExtensions lists the bundle file extensions searched by default.
var DefaultDiscoveryExtensions = walker.DefaultBundleExtensions

// setDefaults registers all default configuration values with v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", DefaultLogFile)

	// Parser defaults
	v.SetDefault("parser.command", DefaultParserCommand)
	v.SetDefault("parser.args", []string{})
	v.SetDefault("parser.timeout", DefaultParserTimeout)

	// Extract defaults
	v.SetDefault("extract.unity_version", DefaultUnityVersion)
	v.SetDefault("extract.types", []string{})
	v.SetDefault("extract.min_size", DefaultExtractMinSize)
	v.SetDefault("extract.progress_interval", DefaultExtractProgressInterval)
	v.SetDefault("extract.normalize", DefaultExtractNormalize)

	// Textures defaults
	v.SetDefault("textures.min_size", DefaultTexturesMinSize)
	v.SetDefault("textures.progress_interval", DefaultTexturesProgressInterval)

	// Discovery defaults
	v.SetDefault("discovery.extensions", DefaultDiscoveryExtensions)
	v.SetDefault("discovery.min_size", DefaultDiscoveryMinSize)
	v.SetDefault("discovery.extensionless", DefaultDiscoveryExtensionless)
	v.SetDefault("discovery.skip_files", []string{})
	v.SetDefault("discovery.skip_hidden", DefaultDiscoverySkipHidden)
}
