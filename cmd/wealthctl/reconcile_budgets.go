package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wealthin/agent-backend/internal/ledger"
	ledgerpg "github.com/wealthin/agent-backend/internal/ledger/postgres"
	"github.com/wealthin/agent-backend/internal/planning"
	planningpg "github.com/wealthin/agent-backend/internal/planning/postgres"
)

var reconcileBudgetsUser string

var reconcileBudgetsCmd = &cobra.Command{
	Use:   "reconcile-budgets",
	Short: "Recompute every budget's spent total from this month's ledger transactions",
	Long: `reconcile-budgets closes the drift Ledger never corrects on delete
(spec §9: deleting a transaction never decrements the matching budget's
spent field). It recomputes this calendar month's per-category expense
totals and overwrites every budget's spent total to match.`,
	RunE: runReconcileBudgets,
}

func init() {
	reconcileBudgetsCmd.Flags().StringVar(&reconcileBudgetsUser, "user", "", "user_id to reconcile budgets for (required)")
	_ = reconcileBudgetsCmd.MarkFlagRequired("user")
}

func runReconcileBudgets(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	pool, err := connectPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	ledgerStore := ledger.NewStore(ledgerpg.NewRepository(pool), nil)
	planningStore := planning.NewStore(planningpg.NewRepository(pool), ledgerStore)

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	summary, err := ledgerStore.GetSpendingSummary(reconcileBudgetsUser, monthStart, now)
	if err != nil {
		return fmt.Errorf("compute spending summary for %s: %w", reconcileBudgetsUser, err)
	}

	if err := planningStore.RebuildBudgetSpent(reconcileBudgetsUser, summary.ByCategory); err != nil {
		return fmt.Errorf("rebuild budget spent for %s: %w", reconcileBudgetsUser, err)
	}

	fmt.Printf("✓ Budgets reconciled for user %s against %d categories\n", reconcileBudgetsUser, len(summary.ByCategory))
	return nil
}
