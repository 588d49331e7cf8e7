package cmd

import (
	"fmt"
	"log"

	"github.com/chrisdamba/foodinsights/internal/repositories/postgres"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the PostgreSQL tables the postgres store reads",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Store.Kind != "postgres" {
			return fmt.Errorf("migrate needs store.kind postgres, got %s", cfg.Store.Kind)
		}
		ctx := cmd.Context()

		pool, err := postgres.Connect(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.InitSchema(ctx, pool); err != nil {
			return err
		}
		log.Println("Database schema is up to date")
		return nil
	},
}
