// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/querylens/querylens/internal/config"
	"github.com/querylens/querylens/internal/seed"
	"github.com/querylens/querylens/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the QueryLens HTTP server",
		Long:  "Load configuration, open both catalog stores, and serve the comparison API until interrupted.",
		RunE:  runServe,
	}

	cmd.Flags().String("listen", "", "override listen address (host:port)")
	_ = viper.BindPFlag("server.listen", cmd.Flags().Lookup("listen"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Apply any flag/env overrides that Viper resolved.
	if listen := viper.GetString("server.listen"); listen != "" {
		cfg.Server.Listen = listen
	}
	if dataDir := viper.GetString("storage.data_dir"); dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}

	engines, err := WireEngines(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = engines.Close() }()

	srv, err := server.New(server.Config{
		ListenAddr:  cfg.Server.Listen,
		CORSOrigins: cfg.Server.CORSOrigins,
	})
	if err != nil {
		return err
	}
	srv.RegisterRoutes(engines.Comparator, seed.Products)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("querylens listening",
		"addr", cfg.Server.Listen,
		"data_dir", cfg.Storage.DataDir,
		"embedding_provider", cfg.Embedding.Provider,
		"embedding_dimensions", cfg.Embedding.Dimensions,
	)
	return srv.Start(ctx)
}
