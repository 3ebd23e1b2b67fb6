package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/andri/asteria/internal/logger"
	"github.com/andri/asteria/pkg/tui/models"
	"github.com/andri/asteria/pkg/tui/terminal"
)

// newStudioCmd creates the studio subcommand
func newStudioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "studio",
		Short: "Open the interactive world studio",
		Long: `Open the interactive world studio.

The studio walks through three pages: a landing page, the creation flow
(describe, tune, generate) and the edit page showing the generated world.
Press ? on any page for keyboard shortcuts and Ctrl+C to quit.

Logs are written to --log-file when set and discarded otherwise.`,
		Example: `  # Open the studio with the simulated generator
  asteria studio

  # Use a remote backend and keep a debug log
  asteria studio --generator http --endpoint http://localhost:8000 \
    --log-level debug --log-file asteria.log`,
		Annotations: map[string]string{annotationTUI: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStudio(cmd)
		},
	}
}

// runStudio runs the interactive studio until the user quits
func runStudio(cmd *cobra.Command) error {
	cfg := GlobalOptions.Config
	log := logger.GetDefault()

	gen, err := newGenerator(cfg.Generator, log)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	capability := terminal.DetectCapabilities(cfg.UI.ASCII)
	terminal.ConfigureLipgloss(capability)

	app := models.NewAppModel(models.AppConfig{
		Config:     cfg,
		Generator:  gen,
		Logger:     log,
		Capability: capability,
		Context:    commandContext(cmd),
	})

	log.Info("studio started", "generator", cfg.Generator.Mode)
	if _, err := runProgram(app, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout())); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	log.Info("studio closed")

	return nil
}
