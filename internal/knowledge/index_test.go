package knowledge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/knowledge"
)

func sampleDocs() []knowledge.Document {
	return []knowledge.Document{
		{DocID: "tax_1", Title: "Income Tax Slabs", Category: "tax", Content: "Indian income tax old regime new regime slabs and cess rules for individuals."},
		{DocID: "gst_1", Title: "GST Registration", Category: "gst", Content: "GST registration threshold turnover rules for small businesses in India."},
		{DocID: "mudra_1", Title: "Mudra Loan Scheme", Category: "loans", Content: "Mudra loan shishu kishore tarun categories for small business financing."},
	}
}

func TestBuildAndSearch_ReturnsRelevantDocAboveThreshold(t *testing.T) {
	idx, err := knowledge.New(context.Background())
	require.NoError(t, err)
	require.NoError(t, idx.Build(context.Background(), sampleDocs()))

	results := idx.Search("income tax slabs cess", 5)
	require.NotEmpty(t, results)
	require.Equal(t, "tax_1", results[0].DocID)
}

func TestSearch_NoMatchReturnsEmpty(t *testing.T) {
	idx, err := knowledge.New(context.Background())
	require.NoError(t, err)
	require.NoError(t, idx.Build(context.Background(), sampleDocs()))

	results := idx.Search("zzz nonexistent gibberish term", 5)
	require.Empty(t, results)
}

func TestHybrid_PrefersFullTextOverTFIDF(t *testing.T) {
	idx, err := knowledge.New(context.Background())
	require.NoError(t, err)
	require.NoError(t, idx.Build(context.Background(), sampleDocs()))

	results := idx.Hybrid("mudra loan shishu", 5)
	require.NotEmpty(t, results)
	require.Equal(t, "mudra_1", results[0].DocID)
}

func TestAddDocument_RebuildsSynchronouslyAndIsSearchable(t *testing.T) {
	idx, err := knowledge.New(context.Background())
	require.NoError(t, err)
	require.NoError(t, idx.Build(context.Background(), sampleDocs()))

	require.NoError(t, idx.AddDocument(context.Background(), knowledge.Document{
		DocID: "msme_1", Title: "MSME Udyam Registration", Category: "msme",
		Content: "Udyam registration process for micro small medium enterprises in India.",
	}))

	results := idx.Search("udyam registration msme", 5)
	require.NotEmpty(t, results)
	require.Equal(t, "msme_1", results[0].DocID)
}
