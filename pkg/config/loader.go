package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	ConfigFile  string
	ConfigFiles []string
	Flags       *pflag.FlagSet
}

// LoadResult contains the merged configuration and validation output.
type LoadResult struct {
	Config         Config
	Validation     ValidationResult
	ConfigFileUsed string
}

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "ASTERIA"

// LoadConfig loads configuration from defaults, file, env, and flags.
func LoadConfig(opts LoadOptions) (LoadResult, error) {
	v := viper.New()
	setDefaults(v)
	configureEnv(v)

	if opts.Flags != nil {
		if err := BindFlags(v, opts.Flags); err != nil {
			return LoadResult{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	configPath, err := resolveConfigFile(opts)
	if err != nil {
		return LoadResult{}, err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return LoadResult{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return LoadResult{}, fmt.Errorf("unmarshal config: %w", err)
	}
	normalize(&cfg)

	result := LoadResult{
		Config:         cfg,
		Validation:     ValidateConfig(cfg),
		ConfigFileUsed: v.ConfigFileUsed(),
	}
	for _, key := range unknownKeys(v) {
		result.Validation.Errors = append(result.Validation.Errors,
			fmt.Errorf("unknown config key %q in %s", key, result.ConfigFileUsed))
	}
	if result.Validation.HasErrors() {
		return result, &ValidationError{Result: result.Validation}
	}

	return result, nil
}

// BindFlags binds supported CLI flags to viper keys.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"generator":   "generator.mode",
		"endpoint":    "generator.endpoint",
		"max-retries": "generator.max-retries",
		"listen":      "server.listen",
		"library":     "library.dir",
		"ascii":       "ui.ascii",
		"log-level":   "logging.level",
		"log-file":    "logging.file",
		"log-format":  "logging.format",
	}

	for flag, key := range bindings {
		if flags.Lookup(flag) == nil {
			continue
		}
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %q: %w", flag, err)
		}
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("timings.refine-overlay-ms", defaults.Timings.RefineOverlayMS)
	v.SetDefault("timings.generation-delay-ms", defaults.Timings.GenerationDelayMS)
	v.SetDefault("timings.transition-ms", defaults.Timings.TransitionMS)
	v.SetDefault("timings.frame-ms", defaults.Timings.FrameMS)

	v.SetDefault("generator.mode", defaults.Generator.Mode)
	v.SetDefault("generator.endpoint", defaults.Generator.Endpoint)
	v.SetDefault("generator.request-timeout-seconds", defaults.Generator.RequestTimeoutSeconds)
	v.SetDefault("generator.max-retries", defaults.Generator.MaxRetries)

	v.SetDefault("ui.ascii", defaults.UI.ASCII)
	v.SetDefault("ui.stars", defaults.UI.Stars)

	v.SetDefault("server.listen", defaults.Server.Listen)
	v.SetDefault("server.metrics", defaults.Server.Metrics)
	v.SetDefault("server.cors-origins", defaults.Server.CORSOrigins)

	v.SetDefault("library.dir", defaults.Library.Dir)
	v.SetDefault("library.backup", defaults.Library.Backup)
	v.SetDefault("library.backup-dir", defaults.Library.BackupDir)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.format", defaults.Logging.Format)
}

// unknownKeys lists keys present in the loaded file that have no default.
// Every supported key has a default, so the defaults double as the schema.
func unknownKeys(v *viper.Viper) []string {
	known := viper.New()
	setDefaults(known)
	allowed := make(map[string]struct{})
	for _, key := range known.AllKeys() {
		allowed[key] = struct{}{}
	}

	var unknown []string
	for _, key := range v.AllKeys() {
		if _, ok := allowed[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	return unknown
}

func configureEnv(v *viper.Viper) {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	v.SetEnvKeyReplacer(replacer)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
}

// normalize trims values that users commonly pad or case differently.
func normalize(cfg *Config) {
	cfg.Generator.Mode = strings.ToLower(strings.TrimSpace(cfg.Generator.Mode))
	cfg.Generator.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Generator.Endpoint), "/")
	cfg.Server.Listen = strings.TrimSpace(cfg.Server.Listen)
	cfg.Library.Dir = strings.TrimSpace(cfg.Library.Dir)
	cfg.Library.BackupDir = strings.TrimSpace(cfg.Library.BackupDir)
}

func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("config file not found: %s", opts.ConfigFile)
			}
			return "", fmt.Errorf("config file error: %w", err)
		}
		return opts.ConfigFile, nil
	}

	candidates := opts.ConfigFiles
	if len(candidates) == 0 {
		candidates = defaultConfigFiles()
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("config file error: %w", err)
		}
		if info.IsDir() {
			continue
		}
		return candidate, nil
	}

	return "", nil
}

func defaultConfigFiles() []string {
	files := []string{"./asteria.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".config", "asteria", "config.yaml"))
	}
	files = append(files, "/etc/asteria/config.yaml")
	return files
}
