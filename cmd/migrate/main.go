package main

import (
	"context"
	"os"

	"employee-management/internal/app"
	"employee-management/internal/config"
	"employee-management/internal/shared/connection"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var migrateRollback bool

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the employees schema migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger, err := app.NewLogger(cfg.Log)
		if err != nil {
			return err
		}
		defer logger.Sync()
		zap.ReplaceGlobals(logger)

		db, err := goose.OpenDBWithDriver("pgx", cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer db.Close()

		direction := "up"
		if migrateRollback {
			direction = "down"
		}
		return connection.Migrate(cmd.Context(), db, direction)
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "roll back the latest migration")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
