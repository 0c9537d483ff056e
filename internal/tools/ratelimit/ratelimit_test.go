package ratelimit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/tools/ratelimit"
)

func TestLimiter_AllowsUpToBurstThenBlocks(t *testing.T) {
	l := ratelimit.New(60, 2)
	defer l.Stop()

	require.True(t, l.Allow("user-1"))
	require.True(t, l.Allow("user-1"))
	require.False(t, l.Allow("user-1"))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := ratelimit.New(60, 1)
	defer l.Stop()

	require.True(t, l.Allow("user-1"))
	require.True(t, l.Allow("user-2"))
}
