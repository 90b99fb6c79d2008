package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/farsql/pkg/core"
)

func TestExecWithRetry_ExhaustsBudget(t *testing.T) {
	b := &stubBackend{
		failCursorAttempts: 1 << 30, // never succeeds
		defaultResult:      stubResult{desc: intDesc("x")},
	}
	conn, err := connectStub(b, Config{})
	require.NoError(t, err)

	_, err = conn.FetchAll(context.Background(), "SELECT 1")
	require.Error(t, err)

	var cerr *core.ConnectionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 4, cerr.Attempts)
	assert.True(t, core.IsTransient(err), "original cause must be preserved")

	// Initial attempt plus three retries.
	assert.Equal(t, 4, b.cursorAttempts)
	// One reconnect per failed attempt, plus the initial connect.
	assert.Equal(t, 5, b.connects)
}

func TestExecWithRetry_RecoversAfterReconnect(t *testing.T) {
	b := &stubBackend{
		failCursorAttempts: 1,
		defaultResult:      stubResult{desc: intDesc("x"), rows: [][]any{{int64(1)}}},
	}
	conn, err := connectStub(b, Config{})
	require.NoError(t, err)

	rows, err := conn.FetchAll(context.Background(), "SELECT 1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	assert.Equal(t, 2, b.cursorAttempts)
	// Exactly one reconnect on top of the initial connect.
	assert.Equal(t, 2, b.connects)
}

func TestExecWithRetry_RetriesOverride(t *testing.T) {
	b := &stubBackend{
		failCursorAttempts: 1 << 30,
		defaultResult:      stubResult{desc: intDesc("x")},
	}
	conn, err := connectStub(b, Config{Retries: -1})
	require.NoError(t, err)

	_, err = conn.FetchAll(context.Background(), "SELECT 1")
	require.Error(t, err)

	var cerr *core.ConnectionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 1, b.cursorAttempts, "negative retries disables the budget")
}

func TestExecWithRetry_SQLErrorNotRetried(t *testing.T) {
	boom := errors.New("syntax error near FORM")
	b := &stubBackend{
		execErrs: map[string]error{"SELECT garbage": boom},
	}
	conn, err := connectStub(b, Config{})
	require.NoError(t, err)

	_, err = conn.FetchAll(context.Background(), "SELECT garbage")
	require.Error(t, err)

	var serr *core.SQLError
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, boom)
	assert.False(t, core.IsTransient(err))

	assert.Equal(t, 1, b.cursorAttempts, "submission failures must not trigger reconnect")
	assert.Equal(t, 1, b.connects)
}

func TestConnection_ReusableAfterRetryExhaustion(t *testing.T) {
	b := &stubBackend{
		failCursorAttempts: 4,
		defaultResult:      stubResult{desc: intDesc("x"), rows: [][]any{{int64(7)}}},
	}
	conn, err := connectStub(b, Config{})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = conn.FetchAll(ctx, "SELECT 1")
	var cerr *core.ConnectionError
	require.ErrorAs(t, err, &cerr)

	// The call failed but the Connection object is still usable.
	rows, err := conn.FetchAll(ctx, "SELECT 1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
