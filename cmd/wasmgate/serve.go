package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tessob/wasmgate"
	"github.com/tessob/wasmgate/config"
	"github.com/tessob/wasmgate/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Start the HTTP service. Modules named in the configuration file are
loaded before the listener opens.

  wasmgate serve --config wasmgate.hcl
  wasmgate serve --listen :9090`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringP("config", "c", "", "Path to the HCL configuration file")
	serveCmd.Flags().String("listen", "", "Listen address (overrides the configuration)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	configPath, _ := cmd.Flags().GetString("config")
	listen, _ := cmd.Flags().GetString("listen")

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fatal(err)
		}
		cfg = loaded
	}
	if listen != "" {
		cfg.Listen = listen
	}
	if cacheDir, _ := cmd.Flags().GetString("cache-dir"); cacheDir != "" {
		cfg.CacheDir = cacheDir
	}
	if pages, _ := cmd.Flags().GetUint32("memory-limit-pages"); pages != 0 {
		cfg.MemoryLimitPages = pages
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		fatal(err)
	}
	defer logger.Sync()

	gate, err := wasmgate.New(ctx, &wasmgate.Options{
		Logger:           logger,
		MemoryLimitPages: cfg.MemoryLimitPages,
		CacheDir:         cfg.CacheDir,
	})
	if err != nil {
		fatal(err)
	}
	defer gate.Close(ctx)

	for _, m := range cfg.Modules {
		id, err := gate.Load(ctx, m.Path)
		if err != nil {
			fatal(err)
		}
		logger.Info("module preloaded",
			zap.String("alias", m.Alias),
			zap.String("path", m.Path),
			zap.String("instance", id))
	}

	if err := server.New(gate, logger).Run(cfg.Listen); err != nil {
		fatal(err)
	}
}
