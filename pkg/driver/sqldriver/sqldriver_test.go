package sqldriver

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/farsql/pkg/core"
)

var testTypeNames = map[string]string{
	"INT4":    "int",
	"VARCHAR": "string",
	"DECIMAL": "decimal",
}

func newTestSession(t *testing.T) (*Session, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &Session{db: db, typeNames: testTypeNames}, mock
}

func TestSession_CursorPingFailureIsTransient(t *testing.T) {
	sess, mock := newTestSession(t)
	mock.ExpectPing().WillReturnError(errors.New("broken pipe"))

	_, err := sess.Cursor(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsTransient(err), "dead-session detection must be retryable")
}

func TestCursor_ExecuteAndFetchAll(t *testing.T) {
	sess, mock := newTestSession(t)
	mock.ExpectPing()

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("id").OfType("INT4", int64(0)),
		sqlmock.NewColumn("name").OfType("VARCHAR", ""),
	).AddRow(int64(1), "alice").AddRow(int64(2), "bob")
	mock.ExpectQuery("SELECT id, name FROM users").WillReturnRows(rows)

	ctx := context.Background()
	cur, err := sess.Cursor(ctx)
	require.NoError(t, err)
	defer func() { _ = cur.Close() }()

	require.NoError(t, cur.Execute(ctx, "SELECT id, name FROM users"))

	fetched, err := cur.FetchAll()
	require.NoError(t, err)
	require.Len(t, fetched, 2)
	assert.Equal(t, "alice", fetched[0][1])

	// A second fetch after a full drain is empty, not an error.
	fetched, err = cur.FetchAll()
	require.NoError(t, err)
	assert.Empty(t, fetched)

	desc, err := cur.Description()
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, "id", desc[0].Name)
	assert.Equal(t, "int", desc[0].TypeName)
	assert.Equal(t, "string", desc[1].TypeName)
}

func TestCursor_DecimalDescription(t *testing.T) {
	sess, mock := newTestSession(t)
	mock.ExpectPing()

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("price").OfType("DECIMAL", nil).WithPrecisionAndScale(18, 3),
	)
	mock.ExpectQuery("SELECT price").WillReturnRows(rows)

	ctx := context.Background()
	cur, err := sess.Cursor(ctx)
	require.NoError(t, err)

	require.NoError(t, cur.Execute(ctx, "SELECT price FROM items"))

	desc, err := cur.Description()
	require.NoError(t, err)
	require.Len(t, desc, 1)
	assert.Equal(t, "decimal", desc[0].TypeName)
	assert.Equal(t, 18, desc[0].Precision)
	assert.Equal(t, 3, desc[0].Scale)
}

func TestCursor_ExecuteConnFailureIsTransient(t *testing.T) {
	sess, mock := newTestSession(t)
	mock.ExpectPing()
	mock.ExpectQuery("SELECT 1").WillReturnError(io.EOF)

	ctx := context.Background()
	cur, err := sess.Cursor(ctx)
	require.NoError(t, err)

	err = cur.Execute(ctx, "SELECT 1")
	require.Error(t, err)
	assert.True(t, core.IsTransient(err))
}

func TestCursor_ExecuteSQLFailureIsNotTransient(t *testing.T) {
	sess, mock := newTestSession(t)
	mock.ExpectPing()
	mock.ExpectQuery("SELECT garbage").WillReturnError(errors.New(`syntax error at or near "garbage"`))

	ctx := context.Background()
	cur, err := sess.Cursor(ctx)
	require.NoError(t, err)

	err = cur.Execute(ctx, "SELECT garbage")
	require.Error(t, err)
	assert.False(t, core.IsTransient(err))
}

func TestCursor_NoStatementExecuted(t *testing.T) {
	sess, mock := newTestSession(t)
	mock.ExpectPing()

	cur, err := sess.Cursor(context.Background())
	require.NoError(t, err)

	_, err = cur.FetchAll()
	require.Error(t, err)
	_, err = cur.Description()
	require.Error(t, err)
}

func TestNormalizeTypeName(t *testing.T) {
	cur := &Cursor{typeNames: testTypeNames}

	tests := []struct {
		in   string
		want string
	}{
		{"INT4", "int"},
		{"VARCHAR", "string"},
		{"DECIMAL(18,3)", "decimal"},
		{"decimal(18,3)", "decimal"},
		{"INTERVAL", "interval"}, // unmapped names pass through lowercased
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cur.normalizeTypeName(tt.in), tt.in)
	}
}
