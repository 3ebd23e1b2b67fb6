package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRefineOverlayMS       = 3000
	DefaultGenerationDelayMS     = 4000
	DefaultTransitionMS          = 1000
	DefaultFrameMS               = 50
	DefaultGeneratorMode         = GeneratorSimulated
	DefaultGeneratorEndpoint     = "http://localhost:8000"
	DefaultRequestTimeoutSeconds = 120
	DefaultMaxRetries            = 2
	DefaultStars                 = 48
	DefaultListenAddr            = ":8000"
	DefaultLibraryDir            = "games"
	DefaultLogLevel              = "info"
	DefaultLogFormat             = "text"
)

// Generator modes select what sits behind the generation seam.
const (
	// GeneratorSimulated builds a result locally from the request.
	GeneratorSimulated = "simulated"
	// GeneratorHTTP posts the request to a remote backend.
	GeneratorHTTP = "http"
	// GeneratorNone completes the loading stage without a payload.
	GeneratorNone = "none"
)

// Config holds the full configuration schema for asteria.
type Config struct {
	Timings   TimingConfig    `mapstructure:"timings" yaml:"timings" json:"timings"`
	Generator GeneratorConfig `mapstructure:"generator" yaml:"generator" json:"generator"`
	UI        UIConfig        `mapstructure:"ui" yaml:"ui" json:"ui"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server" json:"server"`
	Library   LibraryConfig   `mapstructure:"library" yaml:"library" json:"library"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// TimingConfig holds the fixed delays of the page and stage machines.
type TimingConfig struct {
	// RefineOverlayMS is how long the refine overlay hides the edit page
	RefineOverlayMS int `mapstructure:"refine-overlay-ms" yaml:"refine-overlay-ms" json:"refine-overlay-ms"`

	// GenerationDelayMS is the minimum length of the loading stage
	GenerationDelayMS int `mapstructure:"generation-delay-ms" yaml:"generation-delay-ms" json:"generation-delay-ms"`

	// TransitionMS is the page crossfade duration
	TransitionMS int `mapstructure:"transition-ms" yaml:"transition-ms" json:"transition-ms"`

	// FrameMS is the animation frame interval
	FrameMS int `mapstructure:"frame-ms" yaml:"frame-ms" json:"frame-ms"`
}

// RefineOverlay returns the overlay hold time as a duration.
func (t TimingConfig) RefineOverlay() time.Duration {
	return time.Duration(t.RefineOverlayMS) * time.Millisecond
}

// GenerationDelay returns the loading stage minimum as a duration.
func (t TimingConfig) GenerationDelay() time.Duration {
	return time.Duration(t.GenerationDelayMS) * time.Millisecond
}

// Transition returns the crossfade duration.
func (t TimingConfig) Transition() time.Duration {
	return time.Duration(t.TransitionMS) * time.Millisecond
}

// Frame returns the animation frame interval.
func (t TimingConfig) Frame() time.Duration {
	return time.Duration(t.FrameMS) * time.Millisecond
}

// GeneratorConfig selects and tunes the generation backend.
type GeneratorConfig struct {
	Mode                  string `mapstructure:"mode" yaml:"mode" json:"mode"`
	Endpoint              string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
	RequestTimeoutSeconds int    `mapstructure:"request-timeout-seconds" yaml:"request-timeout-seconds" json:"request-timeout-seconds"`
	MaxRetries            int    `mapstructure:"max-retries" yaml:"max-retries" json:"max-retries"`
}

// RequestTimeout returns the per-request timeout as a duration.
func (g GeneratorConfig) RequestTimeout() time.Duration {
	return time.Duration(g.RequestTimeoutSeconds) * time.Second
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	// ASCII forces ASCII icons even on Unicode-capable terminals
	ASCII bool `mapstructure:"ascii" yaml:"ascii" json:"ascii"`

	// Stars is the number of decorative stars drawn behind pages
	Stars int `mapstructure:"stars" yaml:"stars" json:"stars"`
}

// ServerConfig controls the stub generation backend.
type ServerConfig struct {
	Listen      string   `mapstructure:"listen" yaml:"listen" json:"listen"`
	Metrics     bool     `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
	CORSOrigins []string `mapstructure:"cors-origins" yaml:"cors-origins" json:"cors-origins"`
}

// LibraryConfig controls where generated games are written.
type LibraryConfig struct {
	// Dir holds one script and one metadata file per game. A leading ~ is
	// expanded to the home directory.
	Dir string `mapstructure:"dir" yaml:"dir" json:"dir"`

	// Backup keeps a timestamped copy of a game before it is overwritten
	Backup bool `mapstructure:"backup" yaml:"backup" json:"backup"`

	// BackupDir receives backups instead of the library directory itself
	BackupDir string `mapstructure:"backup-dir" yaml:"backup-dir" json:"backup-dir"`
}

// LoggingConfig controls log output settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// DefaultConfig returns a config with all default values applied.
func DefaultConfig() Config {
	return Config{
		Timings: TimingConfig{
			RefineOverlayMS:   DefaultRefineOverlayMS,
			GenerationDelayMS: DefaultGenerationDelayMS,
			TransitionMS:      DefaultTransitionMS,
			FrameMS:           DefaultFrameMS,
		},
		Generator: GeneratorConfig{
			Mode:                  DefaultGeneratorMode,
			Endpoint:              DefaultGeneratorEndpoint,
			RequestTimeoutSeconds: DefaultRequestTimeoutSeconds,
			MaxRetries:            DefaultMaxRetries,
		},
		UI: UIConfig{
			ASCII: false,
			Stars: DefaultStars,
		},
		Server: ServerConfig{
			Listen:      DefaultListenAddr,
			Metrics:     true,
			CORSOrigins: []string{"*"},
		},
		Library: LibraryConfig{
			Dir:       DefaultLibraryDir,
			Backup:    true,
			BackupDir: "",
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			File:   "",
			Format: DefaultLogFormat,
		},
	}
}

// String renders the configuration as YAML.
func (c Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}

	return strings.TrimSpace(string(data))
}
