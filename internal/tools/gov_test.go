package tools_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/tools"
)

func TestRegisterGovTools_PANFormatValid(t *testing.T) {
	r := tools.NewRegistry()
	tools.RegisterGovTools(r)

	res := r.Dispatch(context.Background(), "user-1", "gov_verify_pan", []byte(`{"id":"ABCDE1234F"}`))
	require.True(t, res.Success)
	data := res.Data.(map[string]any)
	require.Equal(t, true, data["valid"])
}

func TestRegisterGovTools_PANFormatInvalid(t *testing.T) {
	r := tools.NewRegistry()
	tools.RegisterGovTools(r)

	res := r.Dispatch(context.Background(), "user-1", "gov_verify_pan", []byte(`{"id":"not-a-pan"}`))
	require.True(t, res.Success)
	data := res.Data.(map[string]any)
	require.Equal(t, false, data["valid"])
}

func TestRegisterGovTools_GSTINFormat(t *testing.T) {
	r := tools.NewRegistry()
	tools.RegisterGovTools(r)

	res := r.Dispatch(context.Background(), "user-1", "gov_verify_gstin", []byte(`{"id":"27AAAAA0000A1Z5"}`))
	require.True(t, res.Success)
	data := res.Data.(map[string]any)
	require.Equal(t, true, data["valid"])
}
