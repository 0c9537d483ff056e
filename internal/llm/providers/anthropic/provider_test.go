package anthropic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeArguments_FlattensInputWrapper(t *testing.T) {
	raw := json.RawMessage(`{"input":{"amount":1000,"category":"sip"}}`)

	out, err := normalizeArguments(raw)
	require.NoError(t, err)
	require.JSONEq(t, `{"amount":1000,"category":"sip"}`, string(out))
}

func TestNormalizeArguments_PassesThroughFlatObject(t *testing.T) {
	raw := json.RawMessage(`{"amount":1000,"category":"sip"}`)

	out, err := normalizeArguments(raw)
	require.NoError(t, err)
	require.JSONEq(t, string(raw), string(out))
}

func TestNormalizeArguments_NonObjectPassesThroughUnchanged(t *testing.T) {
	raw := json.RawMessage(`"just a string"`)

	out, err := normalizeArguments(raw)
	require.NoError(t, err)
	require.Equal(t, raw, out)
}
