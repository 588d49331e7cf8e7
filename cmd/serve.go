package cmd

import (
	"github.com/chrisdamba/foodinsights/internal/analytics"
	"github.com/chrisdamba/foodinsights/internal/server"
	"github.com/chrisdamba/foodinsights/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve GET /api/v1/analytics for bearer-authenticated callers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		engine, err := analytics.NewEngine(cfg.Analytics)
		if err != nil {
			return err
		}
		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		gin.SetMode(gin.ReleaseMode)
		srv, err := server.New(cfg.Server, engine, st)
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	bindFlag(serveCmd.Flags().Lookup("addr"), "server.address")
}
