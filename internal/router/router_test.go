package router_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/router"
)

func TestClassify_GovAPI_PANToken(t *testing.T) {
	r := router.New(nil)
	c := r.Classify("please verify my PAN ABCDE1234F")
	require.Equal(t, router.LabelGovAPI, c.Label)
}

func TestClassify_Transaction_CreateBudget(t *testing.T) {
	r := router.New(nil)
	c := r.Classify("create a monthly budget of 5000 for food")
	require.Equal(t, router.LabelTransaction, c.Label)
}

func TestClassify_StaticKB_TaxKeyword(t *testing.T) {
	r := router.New(nil)
	c := r.Classify("what are the income tax slabs this year")
	require.Equal(t, router.LabelStaticKB, c.Label)
}

func TestClassify_WebSearch_ShoppingIntent(t *testing.T) {
	r := router.New(nil)
	c := r.Classify("what's the best price to buy a laptop right now")
	require.Equal(t, router.LabelWebSearch, c.Label)
}

func TestClassify_HeavyReasoning_ReasoningMarker(t *testing.T) {
	r := router.New(nil)
	c := r.Classify("why should I invest in mutual funds instead of fixed deposits")
	require.Equal(t, router.LabelHeavyReasoning, c.Label)
}

func TestClassify_HeavyReasoning_LongQuery(t *testing.T) {
	r := router.New(nil)
	longQuery := ""
	for i := 0; i < 45; i++ {
		longQuery += "word "
	}
	c := r.Classify(longQuery)
	require.Equal(t, router.LabelHeavyReasoning, c.Label)
}

func TestClassify_Simple_Fallback(t *testing.T) {
	r := router.New(nil)
	c := r.Classify("hello there")
	require.Equal(t, router.LabelSimple, c.Label)
}

func TestClassify_FirstMatchWins_GovBeatsTransaction(t *testing.T) {
	r := router.New(nil)
	c := r.Classify("create a budget and verify PAN ABCDE1234F")
	require.Equal(t, router.LabelGovAPI, c.Label)
}
