package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wealthin/agent-backend/internal/ledger"
	ledgerpg "github.com/wealthin/agent-backend/internal/ledger/postgres"
)

var rebuildTrendsUser string

var rebuildDailyTrendsCmd = &cobra.Command{
	Use:   "rebuild-daily-trends",
	Short: "Recompute the cached daily-trend rows for one user from raw transactions",
	Long: `rebuild-daily-trends deletes and recomputes the daily_trends cache for a
user (spec's DailyTrend derived cache), the same operation the analytics
refresh endpoint runs on every call. Use this to rebuild without going
through that endpoint, e.g. after a bulk transaction import or backfill.`,
	RunE: runRebuildDailyTrends,
}

func init() {
	rebuildDailyTrendsCmd.Flags().StringVar(&rebuildTrendsUser, "user", "", "user_id to rebuild trends for (required)")
	_ = rebuildDailyTrendsCmd.MarkFlagRequired("user")
}

func runRebuildDailyTrends(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	pool, err := connectPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := ledgerpg.NewRepository(pool)
	store := ledger.NewStore(repo, nil) // budget tracking unused by RebuildDailyTrends

	if err := store.RebuildDailyTrends(rebuildTrendsUser); err != nil {
		return fmt.Errorf("rebuild daily trends for %s: %w", rebuildTrendsUser, err)
	}

	fmt.Printf("✓ Daily trends rebuilt for user %s\n", rebuildTrendsUser)
	return nil
}
