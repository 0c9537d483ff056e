package categorize_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/categorize"
)

type fakeRuleSource struct {
	rules []categorize.Rule
}

func (f *fakeRuleSource) ListMerchantRules(userID string) ([]categorize.Rule, error) {
	return f.rules, nil
}

// Scenario 4: "UPI-ZOMATO*ORDER12345" -> "ZOMATO".
func TestNormalize_ScenarioFour(t *testing.T) {
	require.Equal(t, "ZOMATO", categorize.Normalize("UPI-ZOMATO*ORDER12345"))
}

func TestNormalize_StripsCompanySuffixAndTruncates(t *testing.T) {
	require.Equal(t, "RELIANCE RETAIL", categorize.Normalize("RELIANCE RETAIL PRIVATE LIMITED"))
	require.Equal(t, "TATA CONSUMER PRODUCTS", categorize.Normalize("TATA CONSUMER PRODUCTS STORE PRIVATE LIMITED"))
}

// P5: longest keyword wins between two overlapping rules.
func TestCategorize_LongestKeywordWins(t *testing.T) {
	rules := &fakeRuleSource{rules: []categorize.Rule{
		{Keyword: "ZOMATO", Category: "Food & Dining"},
		{Keyword: "ZOMATO GOLD", Category: "Subscriptions"},
	}}
	res, err := categorize.Categorize(context.Background(), "ZOMATO*GOLD ORDER 12345", rules, "u1", nil)
	require.NoError(t, err)
	require.Equal(t, "Subscriptions", res.Category)
}

func TestCategorize_FallsBackToBuiltinTable(t *testing.T) {
	res, err := categorize.Categorize(context.Background(), "UBER TRIP 221", nil, "u1", nil)
	require.NoError(t, err)
	require.Equal(t, "Transport", res.Category)
	require.Equal(t, "builtin", res.Source)
}

func TestCategorize_NoMatchFallsToOther(t *testing.T) {
	res, err := categorize.Categorize(context.Background(), "XQZZY UNKNOWN MERCHANT", nil, "u1", nil)
	require.NoError(t, err)
	require.Equal(t, categorize.CategoryOther, res.Category)
}

type fakeLLM struct{}

func (fakeLLM) Categorize(ctx context.Context, description string) (string, bool, error) {
	return "Miscellaneous", true, nil
}
func (fakeLLM) CategorizeBatch(ctx context.Context, descriptions []string) ([]string, error) {
	out := make([]string, len(descriptions))
	for i := range out {
		out[i] = "Miscellaneous"
	}
	return out, nil
}

func TestCategorizeBatch_SendsOnlyOtherItemsToLLMPreservingOrder(t *testing.T) {
	rules := &fakeRuleSource{rules: []categorize.Rule{{Keyword: "ZOMATO", Category: "Food & Dining"}}}
	items, err := categorize.CategorizeBatch(context.Background(),
		[]string{"ZOMATO ORDER", "XQZZY UNKNOWN", "UBER TRIP"}, rules, "u1", fakeLLM{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "Food & Dining", items[0].Category)
	require.Equal(t, "Miscellaneous", items[1].Category)
	require.Equal(t, "llm", items[1].Source)
	require.Equal(t, "Transport", items[2].Category)
}
