package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"meteorsim/internal/admin"
	"meteorsim/internal/engine"
	"meteorsim/internal/logging"
	"meteorsim/internal/observability"
	"meteorsim/internal/remote"
)

var (
	serveAddr        string
	serveConfigPath  string
	serveSchemaPath  string
	serveLogFile     string
	servePresetsFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin UI and simulation API",
	Long:  "serve starts the HTTP admin interface with live result streaming over websockets and a Prometheus metrics endpoint.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New()
		cfg, err := loadConfig(serveConfigPath, serveSchemaPath)
		if err != nil {
			return err
		}
		logger.Info("configuration loaded", "config", cfg.String())

		catalog, err := loadPresets(servePresetsFile)
		if err != nil {
			return err
		}

		writer, cleanup, err := newWriters(cfg, false, false, serveLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		var remoteClient engine.RemoteComputer
		if cfg.Remote.Endpoint != "" {
			remoteClient = remote.NewClient(cfg.Remote.Endpoint, cfg.RemoteTimeout(), logger)
		}

		// The websocket hub joins the writer fan-out so every completed run
		// reaches connected browsers.
		eng := engine.New(cfg, remoteClient, nil, logger)
		srv := admin.NewServer(eng, catalog)
		eng.SetWriter(engine.NewMultiWriter(writer, srv.Hub()))
		eng.SetMetrics(observability.NewMetrics())

		errCh := make(chan error, 1)
		go func() {
			logger.Info("admin UI listening", "addr", serveAddr)
			errCh <- srv.Start(serveAddr)
		}()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-sigs:
			logger.Info("shutting down")
			return nil
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address for the admin UI")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "config/meteorsim.yaml", "Path to configuration YAML")
	serveCmd.Flags().StringVar(&serveSchemaPath, "schema", "schemas/meteorsim.cue", "Path to CUE schema file")
	serveCmd.Flags().StringVar(&serveLogFile, "log-file", "", "Path to export results (JSONL)")
	serveCmd.Flags().StringVar(&servePresetsFile, "presets-file", "", "Path to additional presets YAML")
}
