package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *models.Config
)

var rootCmd = &cobra.Command{
	Use:   "foodinsights",
	Short: "Role-aware analytics and failure-risk reports for multi-tenant food ordering",
	Long: `foodinsights computes revenue series, menu performance, failure risk and
platform, sales and customer analytics over a snapshot of hotels, orders and
users. Reports are printed, written to files or Parquet (local or S3), published
to Kafka, or served over HTTP behind a bearer token.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := models.LoadConfig(viper.GetViper(), cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or $HOME/.foodinsights/config.yaml)")
	rootCmd.PersistentFlags().String("store", "file", "snapshot store: file or postgres")
	rootCmd.PersistentFlags().String("snapshot-file", "snapshot.json", "snapshot file used by the file store")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string used by the postgres store")

	bindFlag(rootCmd.PersistentFlags().Lookup("store"), "store.kind")
	bindFlag(rootCmd.PersistentFlags().Lookup("snapshot-file"), "store.snapshot_file")
	bindFlag(rootCmd.PersistentFlags().Lookup("database-url"), "store.database_url")

	rootCmd.AddCommand(reportCmd, seedCmd, migrateCmd, serveCmd, tokenCmd)
}

// Execute runs the root command until it returns or the process is
// interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
