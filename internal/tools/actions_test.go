package tools_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/tools"
)

type fakeCommitter struct {
	budgetCalls int
}

func (f *fakeCommitter) CommitBudget(_ context.Context, userID, category string, amount decimal.Decimal, period string) (string, error) {
	f.budgetCalls++
	return "budget-1", nil
}
func (f *fakeCommitter) CommitGoal(_ context.Context, userID, name string, target decimal.Decimal, deadline *time.Time) (string, error) {
	return "goal-1", nil
}
func (f *fakeCommitter) CommitScheduledPayment(_ context.Context, userID, payee string, amount decimal.Decimal, dueDate time.Time, frequency string) (string, error) {
	return "payment-1", nil
}
func (f *fakeCommitter) CommitTransaction(_ context.Context, userID, txType, category, description string, amount decimal.Decimal, date time.Time) (string, error) {
	return "txn-1", nil
}

func TestActions_PrepareThenConfirm_CommitsExactlyOnce(t *testing.T) {
	tokens := tools.NewActionTokens("test-secret")
	r := tools.NewRegistry()
	tools.RegisterActionTools(r, tokens)

	prep := r.Dispatch(context.Background(), "user-1", "create_budget", []byte(`{"category":"Food","amount":5000}`))
	require.True(t, prep.Success)
	require.True(t, prep.NeedsConfirmation)

	data := prep.Data.(map[string]string)
	actionID := data["action_id"]
	require.NotEmpty(t, actionID)

	committer := &fakeCommitter{}
	confirm := tools.ConfirmAction(context.Background(), tokens, committer, "user-1", actionID)
	require.True(t, confirm.Success)
	require.Equal(t, 1, committer.budgetCalls)
}

func TestActions_ConfirmWithWrongUser_Fails(t *testing.T) {
	tokens := tools.NewActionTokens("test-secret")
	r := tools.NewRegistry()
	tools.RegisterActionTools(r, tokens)

	prep := r.Dispatch(context.Background(), "user-1", "create_budget", []byte(`{"category":"Food","amount":5000}`))
	data := prep.Data.(map[string]string)

	committer := &fakeCommitter{}
	confirm := tools.ConfirmAction(context.Background(), tokens, committer, "user-2", data["action_id"])
	require.False(t, confirm.Success)
}

func TestActions_ConfirmWithGarbageToken_Fails(t *testing.T) {
	tokens := tools.NewActionTokens("test-secret")
	committer := &fakeCommitter{}
	confirm := tools.ConfirmAction(context.Background(), tokens, committer, "user-1", "not-a-real-token")
	require.False(t, confirm.Success)
}
