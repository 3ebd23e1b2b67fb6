package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andri/asteria/pkg/config"
)

// ConfigShowOptions holds options for the config show command
type ConfigShowOptions struct {
	Format string
}

// ConfigValidateOptions holds options for the config validate command
type ConfigValidateOptions struct {
	ConfigFile string
	Format     string
}

// newConfigCmd creates the config subcommand with its subcommands
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage asteria configuration.

Configuration is loaded from multiple sources in order of precedence:
  1. CLI flags (highest priority)
  2. Environment variables (ASTERIA_* prefix)
  3. Config file (./asteria.yaml, ~/.config/asteria/config.yaml, /etc/asteria/config.yaml)
  4. Default values (lowest priority)`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigValidateCmd())

	return cmd
}

// newConfigShowCmd creates the config show subcommand
func newConfigShowCmd() *cobra.Command {
	opts := &ConfigShowOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show the effective configuration after merging all sources.

Displays the final configuration values that will be used by asteria,
including the source file if one was loaded.`,
		Example: `  # Show configuration in YAML format (default)
  asteria config show

  # Show configuration in JSON format
  asteria config show --format json

  # Show configuration with a specific config file
  asteria config show --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Format, "format", "f", "yaml",
		"output format: yaml, json")

	return cmd
}

// newConfigValidateCmd creates the config validate subcommand
func newConfigValidateCmd() *cobra.Command {
	opts := &ConfigValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate configuration",
		Long: `Validate configuration file and report any errors or warnings.

Returns exit code 0 if configuration is valid, 1 if there are errors.
Warnings are reported but don't affect the exit code.`,
		Example: `  # Validate default configuration
  asteria config validate

  # Validate a specific config file
  asteria config validate /path/to/config.yaml

  # Output validation results as JSON
  asteria config validate --format json`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationLenientConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.ConfigFile = args[0]
			}
			return runConfigValidate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Format, "format", "f", "text",
		"output format: text, json, yaml")

	return cmd
}

// ConfigOutput represents the configuration output structure
type ConfigOutput struct {
	ConfigFile string        `json:"configFile,omitempty" yaml:"configFile,omitempty"`
	EnvPrefix  string        `json:"envPrefix" yaml:"envPrefix"`
	Config     config.Config `json:"config" yaml:"config"`
}

// ValidationOutput represents validation results for output
type ValidationOutput struct {
	ConfigFile string   `json:"configFile,omitempty" yaml:"configFile,omitempty"`
	Valid      bool     `json:"valid" yaml:"valid"`
	Errors     []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings   []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// writeStructured encodes v as JSON or YAML. It reports false for any other
// format so the caller can fall back to text.
func writeStructured(out io.Writer, format string, v any) (bool, error) {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode json: %w", err)
		}
		return true, nil
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

func runConfigShow(cmd *cobra.Command, opts *ConfigShowOptions) error {
	out := cmd.OutOrStdout()

	output := ConfigOutput{
		EnvPrefix: config.EnvPrefix,
		Config:    GlobalOptions.Config,
	}

	// Get the config file used (if any)
	result, err := config.LoadConfig(config.LoadOptions{ConfigFile: GlobalOptions.ConfigFile})
	if err == nil && result.ConfigFileUsed != "" {
		output.ConfigFile = result.ConfigFileUsed
	}

	format := opts.Format
	if format == "" {
		format = "yaml"
	}
	handled, err := writeStructured(out, format, output)
	if err != nil {
		return err
	}
	if !handled {
		return fmt.Errorf("unknown format %q (valid formats: yaml, json)", opts.Format)
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, opts *ConfigValidateOptions) error {
	out := cmd.OutOrStdout()

	// Determine config file to validate
	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = GlobalOptions.ConfigFile
	}

	result, loadErr := config.LoadConfig(config.LoadOptions{ConfigFile: configFile})

	validation := ValidationOutput{
		ConfigFile: result.ConfigFileUsed,
		Valid:      true,
		Errors:     []string{},
		Warnings:   append([]string{}, result.Validation.Warnings...),
	}

	// A validation failure is reported through the result, anything else
	// through the error
	var verr *config.ValidationError
	if loadErr != nil && !errors.As(loadErr, &verr) {
		validation.Errors = append(validation.Errors, loadErr.Error())
	}
	for _, err := range result.Validation.Errors {
		validation.Errors = append(validation.Errors, err.Error())
	}
	validation.Valid = len(validation.Errors) == 0

	handled, err := writeStructured(out, opts.Format, validation)
	if err != nil {
		return err
	}
	if !handled {
		writeValidationText(out, validation)
	}

	// Return error to set non-zero exit code for invalid config
	if !validation.Valid {
		return fmt.Errorf("configuration validation failed")
	}
	return nil
}

func writeValidationText(out io.Writer, v ValidationOutput) {
	if v.ConfigFile != "" {
		_, _ = fmt.Fprintf(out, "Config file: %s\n\n", v.ConfigFile)
	} else {
		_, _ = fmt.Fprint(out, "Config file: (none - using defaults)\n\n")
	}

	if v.Valid {
		_, _ = fmt.Fprintln(out, "Configuration is valid.")
	} else {
		_, _ = fmt.Fprintln(out, "Configuration has errors:")
		for _, err := range v.Errors {
			_, _ = fmt.Fprintf(out, "  - %s\n", err)
		}
	}

	if len(v.Warnings) > 0 {
		_, _ = fmt.Fprintln(out, "\nWarnings:")
		for _, warn := range v.Warnings {
			_, _ = fmt.Fprintf(out, "  - %s\n", warn)
		}
	}
}
