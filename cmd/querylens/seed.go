// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/querylens/querylens/internal/config"
	"github.com/querylens/querylens/internal/seed"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Clear both catalogs and load the demo products",
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if dataDir := viper.GetString("storage.data_dir"); dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}

	engines, err := WireEngines(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = engines.Close() }()

	report, err := engines.Comparator.Initialize(cmd.Context(), seed.Products())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Seeded both catalogs: %d inserted, %d failed\n", report.Inserted, report.Failed)
	return err
}
