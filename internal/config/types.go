package config

// Config is the root configuration structure for the application.
type Config struct {
	LogLevel  string          `yaml:"log_level" mapstructure:"log_level"`
	LogFile   string          `yaml:"log_file" mapstructure:"log_file"`
	Parser    ParserConfig    `yaml:"parser" mapstructure:"parser"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
	Textures  TexturesConfig  `yaml:"textures" mapstructure:"textures"`
	Discovery DiscoveryConfig `yaml:"discovery" mapstructure:"discovery"`
}

// ParserConfig holds the external bundle dumper invocation.
type ParserConfig struct {
	Command string   `yaml:"command" mapstructure:"command"`
	Args    []string `yaml:"args,flow" mapstructure:"args"`
	Timeout int      `yaml:"timeout" mapstructure:"timeout"` // seconds per bundle, 0 = unbounded
}

// ExtractConfig holds defaults for the extract command.
type ExtractConfig struct {
	UnityVersion     string   `yaml:"unity_version" mapstructure:"unity_version"`
	Types            []string `yaml:"types,flow" mapstructure:"types"` // empty = all
	MinSize          int      `yaml:"min_size" mapstructure:"min_size"`
	ProgressInterval int      `yaml:"progress_interval" mapstructure:"progress_interval"`
	Normalize        bool     `yaml:"normalize" mapstructure:"normalize"`
}

// TexturesConfig holds defaults for the textures command.
type TexturesConfig struct {
	MinSize          int `yaml:"min_size" mapstructure:"min_size"`
	ProgressInterval int `yaml:"progress_interval" mapstructure:"progress_interval"`
}

// DiscoveryConfig holds bundle discovery rules.
type DiscoveryConfig struct {
	Extensions    []string `yaml:"extensions,flow" mapstructure:"extensions"`
	MinSize       int64    `yaml:"min_size" mapstructure:"min_size"`
	Extensionless bool     `yaml:"extensionless" mapstructure:"extensionless"` // extensionless files above min_size qualify
	SkipHidden    bool     `yaml:"skip_hidden" mapstructure:"skip_hidden"`
	SkipFiles     []string `yaml:"skip_files,flow" mapstructure:"skip_files"` // base-name globs
}

// NewDefaultConfig returns a Config populated with default values.
func NewDefaultConfig() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		LogFile:  DefaultLogFile,
		Parser: ParserConfig{
			Command: DefaultParserCommand,
			Args:    []string{},
			Timeout: DefaultParserTimeout,
		},
		Extract: ExtractConfig{
			UnityVersion:     DefaultUnityVersion,
			Types:            []string{},
			MinSize:          DefaultExtractMinSize,
			ProgressInterval: DefaultExtractProgressInterval,
			Normalize:        DefaultExtractNormalize,
		},
		Textures: TexturesConfig{
			MinSize:          DefaultTexturesMinSize,
			ProgressInterval: DefaultTexturesProgressInterval,
		},
		Discovery: DiscoveryConfig{
			Extensions:    append([]string(nil), DefaultDiscoveryExtensions...),
			MinSize:       DefaultDiscoveryMinSize,
			Extensionless: DefaultDiscoveryExtensionless,
			SkipHidden:    DefaultDiscoverySkipHidden,
			SkipFiles:     []string{},
		},
	}
}
