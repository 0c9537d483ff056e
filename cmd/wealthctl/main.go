// Command wealthctl is the operator CLI for one-off maintenance jobs
// against the production database: rebuilding the daily-trend cache,
// reconciling drifted budget "spent" totals, and running a MUDRA DPR
// calculation from a JSON file without going through the HTTP API.
// Grounded in the Nexus pack's `cmd/nap` cobra command tree, layered
// with viper for flags > env > file precedence (the server's own
// internal/config stays a plain env-var loader; this CLI has no
// HTTP-request lifecycle to keep simple).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	databaseURL string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wealthctl",
	Short: "Operator CLI for the WealthIn agent backend",
	Long: `wealthctl runs maintenance jobs against the WealthIn database:
rebuilding cached daily trends, reconciling budget spent totals, and
running MUDRA DPR calculations offline.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.SetConfigName("wealthctl")
			viper.SetConfigType("yaml")
			viper.AddConfigPath(".")
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(home + "/.wealthctl")
		}
		viper.AutomaticEnv()
		_ = viper.ReadInConfig()

		if databaseURL == "" {
			databaseURL = viper.GetString("database_url")
		}
		if databaseURL == "" {
			databaseURL = os.Getenv("DATABASE_URL")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./wealthctl.yaml or ~/.wealthctl/wealthctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres connection string (default $DATABASE_URL)")

	rootCmd.AddCommand(rebuildDailyTrendsCmd)
	rootCmd.AddCommand(reconcileBudgetsCmd)
	rootCmd.AddCommand(mudraCmd)
}

func connectPool(ctx context.Context) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required: pass --database-url or set DATABASE_URL")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}
