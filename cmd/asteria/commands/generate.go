package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/andri/asteria/internal/logger"
	"github.com/andri/asteria/pkg/cli"
	"github.com/andri/asteria/pkg/flow"
	"github.com/andri/asteria/pkg/output"
	"github.com/andri/asteria/pkg/tui/terminal"
	"github.com/andri/asteria/pkg/world"
)

// GenerateOptions holds options specific to the generate command
type GenerateOptions struct {
	Describe         string
	Image            string
	ImageDescription string
	Category         string
	CustomCategory   string
	Mode             string

	Horror int
	Puzzle int
	Age    int
	Speed  int

	// Output selects the result format
	Output string

	// Delay overrides the minimum loading time
	Delay time.Duration

	// Timeout for the overall operation
	Timeout time.Duration

	// Yes skips the confirmation prompt
	Yes bool

	// Save writes the generated game to the library
	Save bool
}

// newGenerateCmd creates the generate subcommand
func newGenerateCmd() *cobra.Command {
	opts := &GenerateOptions{}
	defaults := world.DefaultSettings()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a world without the studio",
		Long: `Generate a world from flags and print the result.

This command runs the same creation flow as the studio:
  1. Collects the world description, image and category
  2. Applies the slider settings
  3. Runs the generator while the minimum loading time passes
  4. Prints the generated world

Progress is written to stderr and the result to stdout, so the output can
be piped or redirected.`,
		Example: `  # Generate a world and print it as text
  asteria generate --describe "A mystical forest where time stands still" -y

  # Attach an image and pick a category
  asteria generate --describe "A sunken city" --image knight.png \
    --image-description "A brave knight in silver armor" --category enemy -y

  # Write only the game script
  asteria generate --describe "A haunted lighthouse" --horror 9 -o script -y > game.py

  # Keep the game in the library for "asteria games"
  asteria generate --describe "A neon city" --mode multiplayer --save -y`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Describe, "describe", "d", "",
		"world description (required)")
	flags.StringVar(&opts.Image, "image", "",
		"path to an image to attach")
	flags.StringVar(&opts.ImageDescription, "image-description", "",
		"what the attached image shows")
	flags.StringVar(&opts.Category, "category", string(world.CategoryMainCharacter),
		"image category: main-character, enemy, environment, other")
	flags.StringVar(&opts.CustomCategory, "custom-category", "",
		"category text sent when --category is other")
	flags.StringVar(&opts.Mode, "mode", string(world.GameModeSingle),
		"game mode: single, multiplayer")
	flags.IntVar(&opts.Horror, "horror", defaults.HorrorLevel,
		"horror level (0-10)")
	flags.IntVar(&opts.Puzzle, "puzzle", defaults.PuzzleComplexity,
		"puzzle complexity (0-10)")
	flags.IntVar(&opts.Age, "age", defaults.AgeGroup,
		"age group (3-18)")
	flags.IntVar(&opts.Speed, "speed", defaults.SpeedChaos,
		"speed / chaos (0-10)")
	flags.StringVarP(&opts.Output, "output", "o", string(output.FormatText),
		"output format: text, json, yaml, script")
	flags.DurationVar(&opts.Delay, "delay", 0,
		"minimum loading time (default: timings.generation-delay-ms from config)")
	flags.DurationVar(&opts.Timeout, "timeout", 5*time.Minute,
		"timeout for the overall operation")
	flags.BoolVarP(&opts.Yes, "yes", "y", false,
		"skip confirmation prompt")
	flags.BoolVar(&opts.Save, "save", false,
		"save the generated game to the library")
	addLibraryFlag(flags)

	_ = cmd.RegisterFlagCompletionFunc("category", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"main-character", "enemy", "environment", "other"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"single", "multiplayer"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, f := range output.Formats() {
			names = append(names, f.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// buildDraft turns the flags into a draft, validating every value before
// anything is generated.
func buildDraft(opts *GenerateOptions) (world.Draft, error) {
	draft := world.NewDraft()
	draft.WorldDescription = opts.Describe
	if !draft.HasDescription() {
		return draft, errors.New("--describe is required and must not be blank")
	}

	if opts.Image != "" {
		uri, err := world.ReadImage(opts.Image)
		if err != nil {
			return draft, err
		}
		draft.UploadedImage = uri
	}
	draft.ImageDescription = opts.ImageDescription

	category, err := world.ParseCategory(opts.Category)
	if err != nil {
		return draft, err
	}
	draft.Category = category
	draft.CustomCategory = opts.CustomCategory

	mode, err := world.ParseGameMode(opts.Mode)
	if err != nil {
		return draft, err
	}
	draft.GameMode = mode

	values := map[world.Setting]int{
		world.SettingHorror: opts.Horror,
		world.SettingPuzzle: opts.Puzzle,
		world.SettingAge:    opts.Age,
		world.SettingSpeed:  opts.Speed,
	}
	for _, setting := range world.AllSettings() {
		v := values[setting]
		r := setting.Range()
		if !r.Contains(v) {
			return draft, fmt.Errorf("%s must be between %d and %d, got %d", setting.Label(), r.Min, r.Max, v)
		}
		draft.Settings.Set(setting, v)
	}

	return draft, nil
}

// runGenerate executes one headless creation flow
func runGenerate(cmd *cobra.Command, opts *GenerateOptions) error {
	cfg := GlobalOptions.Config
	log := logger.GetDefault()

	format, err := output.ParseFormat(opts.Output)
	if err != nil {
		return err
	}

	draft, err := buildDraft(opts)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	gen, err := newGenerator(cfg.Generator, log)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	ascii := cfg.UI.ASCII || !terminal.IsInteractive(os.Stderr)
	pw := cli.NewProgressWriter(cmd.ErrOrStderr()).ASCII(ascii)

	// Show summary
	pw.PrintSummary(draft)

	if err := cli.ConfirmGenerate(draft, cli.ConfirmOptions{
		Yes:    opts.Yes,
		Save:   opts.Save,
		Input:  cmd.InOrStdin(),
		Output: cmd.ErrOrStderr(),
	}); err != nil {
		return err
	}

	delay := cfg.Timings.GenerationDelay()
	if cmd.Flags().Changed("delay") {
		delay = opts.Delay
	}
	nav := flow.NewNavigator(flow.Options{
		RefineOverlay:   cfg.Timings.RefineOverlay(),
		GenerationDelay: delay,
		Logger:          log,
	})
	defer nav.Close()

	result, err := flow.Drive(ctx, nav, draft, gen, pw.OnEvent)
	if err != nil {
		pw.PrintError(fmt.Sprintf("Generation failed: %s", err.Error()))
		return err
	}
	if result == nil {
		pw.PrintSuccess("Generation finished without a world")
		return nil
	}

	if err := output.Render(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	pw.PrintSuccess(fmt.Sprintf("World %q is ready", result.Title))

	if opts.Save {
		store, err := openLibrary()
		if err != nil {
			return err
		}
		entry, err := store.Save(draft.Request(), result)
		if err != nil {
			return fmt.Errorf("failed to save game: %w", err)
		}
		pw.PrintSuccess(fmt.Sprintf("Saved %s", entry.Path))
	}
	return nil
}
