package main

import (
	"jobboard/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables, indexes and validators for the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			_, closeStore, err := openStore(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			closeStore()
			log.Info("migrated", zap.String("backend", cfg.StoreBackend))
			return nil
		},
	}
}
