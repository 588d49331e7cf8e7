package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chrisdamba/foodinsights/internal/analytics"
	"github.com/chrisdamba/foodinsights/internal/output"
	"github.com/chrisdamba/foodinsights/internal/store"
	"github.com/spf13/cobra"
)

var (
	reportRole     string
	reportTenant   string
	reportCustomer string
	reportAt       string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute analytics for one caller and export them",
	Example: `  foodinsights report --role Owner --tenant t-123
  foodinsights report --role Admin --format parquet --output-path ./out
  foodinsights report --role Customer --customer c-42 --at 2026-10-16T12:00:00Z`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		caller, err := analytics.ParseCaller(reportRole, reportTenant, reportCustomer)
		if err != nil {
			return reportError(err)
		}

		now := time.Now()
		if reportAt != "" {
			now, err = time.Parse(time.RFC3339, reportAt)
			if err != nil {
				return fmt.Errorf("invalid --at time: %w", err)
			}
		}

		engine, err := analytics.NewEngine(cfg.Analytics)
		if err != nil {
			return err
		}

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		snap, err := st.Load(ctx, analytics.ScopeFor(caller))
		if err != nil {
			return err
		}

		payload, err := engine.Assemble(caller, snap, now)
		if err != nil {
			return reportError(err)
		}

		dest, err := output.New(ctx, cfg.Output)
		if err != nil {
			return err
		}
		return exportReport(output.NewExporter(dest), caller, payload, now)
	},
}

// exportReport always closes the exporter; a close failure is returned
// alongside any export failure.
func exportReport(exporter *output.Exporter, caller analytics.Caller, payload analytics.Payload, now time.Time) error {
	exportErr := exporter.Export(caller, payload, now)
	if closeErr := exporter.Close(); closeErr != nil {
		return errors.Join(exportErr, fmt.Errorf("failed to close output: %w", closeErr))
	}
	return exportErr
}

// reportError prints the error result document before failing the command.
func reportError(err error) error {
	return writeErrorResult(os.Stdout, err)
}

func writeErrorResult(w io.Writer, err error) error {
	data, marshalErr := json.Marshal(analytics.NewErrorResult(err))
	if marshalErr != nil {
		return errors.Join(err, marshalErr)
	}
	fmt.Fprintln(w, string(data))
	return err
}

func init() {
	reportCmd.Flags().StringVar(&reportRole, "role", "", "caller role: Owner, Admin, SalesAgent or Customer")
	reportCmd.Flags().StringVar(&reportTenant, "tenant", "", "tenant id (Owner)")
	reportCmd.Flags().StringVar(&reportCustomer, "customer", "", "customer id (Customer)")
	reportCmd.Flags().StringVar(&reportAt, "at", "", "evaluate as of this RFC3339 time (default now)")
	reportCmd.Flags().String("format", "console", "output format: console, json, csv, parquet or kafka")
	reportCmd.Flags().String("output-path", "output", "base path for file outputs")
	reportCmd.Flags().String("destination", "local", "parquet destination: local or cloud")
	reportCmd.MarkFlagRequired("role")

	bindFlag(reportCmd.Flags().Lookup("format"), "output.format")
	bindFlag(reportCmd.Flags().Lookup("output-path"), "output.path")
	bindFlag(reportCmd.Flags().Lookup("destination"), "output.destination")
}
