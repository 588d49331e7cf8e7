package cmd

import (
	"fmt"
	"time"

	"github.com/chrisdamba/foodinsights/internal/server"
	"github.com/spf13/cobra"
)

var (
	tokenRole   string
	tokenTenant string
	tokenUser   string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign a bearer token for the analytics API with server.jwt_secret",
	RunE: func(cmd *cobra.Command, args []string) error {
		claims := server.Claims{Role: tokenRole, TenantID: tokenTenant, UserID: tokenUser}
		if _, err := claims.Caller(); err != nil {
			return err
		}
		signed, err := server.IssueToken(cfg.Server.JWTSecret, claims, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), signed)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenRole, "role", "", "caller role: Owner, Admin, SalesAgent or Customer")
	tokenCmd.Flags().StringVar(&tokenTenant, "tenant", "", "tenant id (Owner)")
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id (Customer)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	tokenCmd.MarkFlagRequired("role")
}
