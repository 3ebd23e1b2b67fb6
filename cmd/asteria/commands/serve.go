package commands

import (
	"github.com/spf13/cobra"

	"github.com/andri/asteria/internal/logger"
	"github.com/andri/asteria/pkg/generator"
	"github.com/andri/asteria/pkg/server"
)

// ServeOptions holds options for the serve command
type ServeOptions struct {
	// Listen is the address to bind
	Listen string
}

// newServeCmd creates the serve subcommand
func newServeCmd() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the stub generation backend",
		Long: `Run a local generation backend over HTTP.

The backend accepts the same requests the http generator sends and answers
them with the simulated generator. Generated scripts are saved to the
library directory and can be downloaded from the URL named in the response.

Endpoints:
  POST /api/generate         generate a world
  GET  /api/game/:file       download a generated script
  GET  /healthz              liveness
  GET  /metrics              Prometheus metrics (when server.metrics is true)`,
		Example: `  # Serve on the default address
  asteria serve

  # Serve on another port and point the studio at it
  asteria serve --listen :9000
  asteria studio --generator http --endpoint http://localhost:9000

  # Keep generated games somewhere else
  asteria serve --library ~/asteria/games`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "",
		"address to listen on (default: server.listen from config)")
	addLibraryFlag(cmd.Flags())

	return cmd
}

// runServe serves until the command context is cancelled
func runServe(cmd *cobra.Command) error {
	cfg := GlobalOptions.Config
	log := logger.GetDefault()

	store, err := openLibrary()
	if err != nil {
		return err
	}
	log.Info("saving generated games", "dir", store.Dir(), "backup", cfg.Library.Backup)

	srv := server.New(server.Options{
		Listen:      cfg.Server.Listen,
		Metrics:     cfg.Server.Metrics,
		CORSOrigins: cfg.Server.CORSOrigins,
		Generator:   generator.Instrument("simulated", &generator.Simulated{}, log),
		Logger:      log,
		Debug:       cfg.Logging.Level == string(logger.LevelDebug),
		Games:       store,
	})

	return runServer(commandContext(cmd), srv)
}
