package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/chrisdamba/foodinsights/internal/factories"
	"github.com/chrisdamba/foodinsights/internal/repositories/postgres"
	"github.com/chrisdamba/foodinsights/internal/store"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a synthetic platform snapshot and write it to the store",
	Long: `seed replaces the store's contents with generated tenants: each hotel gets
an owner, a menu, staff, expenses and a subscription, and a shared pool of
customers places orders across hotels over the configured number of days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		gen := factories.NewGenerator(cfg.Seed, cfg.Analytics.CommissionRate)
		bar := progressbar.Default(int64(gen.Total()), "seeding")
		snap, err := gen.Generate(func(n int) { _ = bar.Add(n) })
		if err != nil {
			return err
		}
		_ = bar.Finish()

		st, err := openWritableStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Save(ctx, snap); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		log.Printf("Seeded %d hotels, %d users and %d orders into the %s store",
			len(snap.Hotels), len(snap.Users), len(snap.Orders), cfg.Store.Kind)
		return nil
	},
}

// openWritableStore opens the configured store, creating the postgres schema
// first when needed.
func openWritableStore(ctx context.Context) (store.Store, error) {
	if cfg.Store.Kind != "postgres" {
		return store.Open(ctx, cfg.Store)
	}
	pool, err := postgres.Connect(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := postgres.InitSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return store.NewPostgresStore(pool), nil
}

func init() {
	seedCmd.Flags().Int64("seed", 42, "random seed")
	seedCmd.Flags().Int("hotels", 10, "number of hotels (one tenant each)")
	seedCmd.Flags().Int("customers", 200, "number of customers")
	seedCmd.Flags().Int("orders-per-hotel", 60, "orders generated per hotel")
	seedCmd.Flags().Int("days", 45, "days of history ending at seed.end_date (default now)")

	bindFlag(seedCmd.Flags().Lookup("seed"), "seed.seed")
	bindFlag(seedCmd.Flags().Lookup("hotels"), "seed.hotels")
	bindFlag(seedCmd.Flags().Lookup("customers"), "seed.customers")
	bindFlag(seedCmd.Flags().Lookup("orders-per-hotel"), "seed.orders_per_hotel")
	bindFlag(seedCmd.Flags().Lookup("days"), "seed.days")
}
