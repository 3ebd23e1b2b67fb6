package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/andri/asteria/internal/logger"
	"github.com/andri/asteria/pkg/config"
	"github.com/andri/asteria/pkg/library"
	"github.com/andri/asteria/pkg/output"
)

// GamesListOptions holds options for the games list command
type GamesListOptions struct {
	// Output selects the listing format
	Output string

	// Watch re-lists the library every Interval
	Watch    bool
	Interval time.Duration
}

// newGamesCmd creates the games subcommand with its subcommands
func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Browse generated games",
		Long: `Browse the games kept in the library directory.

Games are saved by "asteria serve" and by "asteria generate --save". Each
game is a script with a metadata file beside it. The directory comes from
library.dir in the config or the --library flag.`,
	}

	addLibraryFlag(cmd.PersistentFlags())

	cmd.AddCommand(newGamesListCmd())
	cmd.AddCommand(newGamesShowCmd())

	return cmd
}

// newGamesListCmd creates the games list subcommand
func newGamesListCmd() *cobra.Command {
	opts := &GamesListOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List generated games",
		Example: `  # List the library as a table
  asteria games list

  # Keep the listing open while a server generates games
  asteria games list --watch --interval 5s

  # List as JSON
  asteria games list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGamesList(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Output, "output", "o", string(output.FormatText),
		"output format: text, json, yaml")
	flags.BoolVarP(&opts.Watch, "watch", "w", false,
		"refresh the listing until interrupted")
	flags.DurationVar(&opts.Interval, "interval", 2*time.Second,
		"refresh interval for --watch")

	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// newGamesShowCmd creates the games show subcommand
func newGamesShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print the script of a generated game",
		Example: `  # Print a game and run it
  asteria games show a_mystical_forest.py > forest.py && python3 forest.py`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGamesShow(cmd, args[0])
		},
		ValidArgsFunction: completeGames,
	}

	return cmd
}

// addLibraryFlag adds --library, bound to library.dir.
func addLibraryFlag(flags *pflag.FlagSet) {
	flags.String("library", "", "library directory (default: library.dir from config)")
}

// openLibrary opens the configured library directory. Shell completion runs
// before the config is loaded and gets the defaults.
func openLibrary() (*library.Store, error) {
	cfg := GlobalOptions.Config.Library
	if cfg.Dir == "" {
		cfg = config.DefaultConfig().Library
	}
	store, err := library.Open(library.Options{
		Dir:       cfg.Dir,
		Backup:    cfg.Backup,
		BackupDir: cfg.BackupDir,
		Logger:    logger.GetDefault(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	return store, nil
}

func runGamesList(cmd *cobra.Command, opts *GamesListOptions) error {
	format, err := output.ParseFormat(opts.Output)
	if err != nil {
		return err
	}
	if format == output.FormatScript {
		return fmt.Errorf("output format %s is not supported for game listings (valid formats: text, json, yaml)", format)
	}

	store, err := openLibrary()
	if err != nil {
		return err
	}

	fetch := func(context.Context) (output.Listing, error) {
		games, err := store.List()
		if err != nil {
			return output.Listing{}, err
		}
		return output.Listing{Dir: store.Dir(), Games: games}, nil
	}

	if opts.Watch {
		return output.RunWatch(commandContext(cmd), output.WatchOptions{
			Interval:  opts.Interval,
			Format:    format,
			FetchFunc: fetch,
			Writer:    cmd.OutOrStdout(),
			Command:   cmd.CommandPath(),
		})
	}

	listing, err := fetch(commandContext(cmd))
	if err != nil {
		return err
	}
	return output.RenderGames(cmd.OutOrStdout(), listing, format)
}

func runGamesShow(cmd *cobra.Command, name string) error {
	store, err := openLibrary()
	if err != nil {
		return err
	}

	script, err := store.Script(name)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			return fmt.Errorf("no game named %q in %s", name, store.Dir())
		}
		return err
	}

	_, err = cmd.OutOrStdout().Write(script)
	return err
}

// completeGames completes game file names from the configured library.
func completeGames(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	store, err := openLibrary()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	games, err := store.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, 0, len(games))
	for _, g := range games {
		names = append(names, g.File+"\t"+g.Title())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
