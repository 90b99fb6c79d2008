package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/leapstack-labs/farsql/pkg/core"
	"github.com/leapstack-labs/farsql/pkg/driver"
)

// stubResult is the canned outcome of one executed statement.
type stubResult struct {
	desc []driver.ColumnDesc
	rows [][]any
}

// stubBackend is the shared state behind the stub driver. It scripts
// cursor-acquisition failures and records every interaction.
type stubBackend struct {
	mu sync.Mutex

	// failCursorAttempts makes the first n cursor acquisitions fail
	// with a transient error.
	failCursorAttempts int

	// execErrs maps query text to a submission error.
	execErrs map[string]error

	// results maps query text to a canned result; defaultResult covers
	// everything else.
	results       map[string]stubResult
	defaultResult stubResult

	// fetchErr fails every FetchAll; descErr fails every Description.
	fetchErr error
	descErr  error

	connects        int
	cursorAttempts  int
	queries         []string
	descBeforeDrain bool
	cursorsOpened   int
	cursorsClosed   int
	sessionsClosed  int
}

func (b *stubBackend) executedQueries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

type stubDriver struct {
	b *stubBackend
}

func (d *stubDriver) Name() string { return "stub" }

func (d *stubDriver) Connect(_ context.Context, _ driver.Params) (driver.Session, error) {
	d.b.mu.Lock()
	defer d.b.mu.Unlock()
	d.b.connects++
	return &stubSession{b: d.b}, nil
}

type stubSession struct {
	b *stubBackend
}

func (s *stubSession) Cursor(_ context.Context) (driver.Cursor, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.cursorAttempts++
	if s.b.cursorAttempts <= s.b.failCursorAttempts {
		return nil, fmt.Errorf("%w: stubbed dead session", core.ErrSessionDead)
	}
	s.b.cursorsOpened++
	return &stubCursor{b: s.b}, nil
}

func (s *stubSession) Close() error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.sessionsClosed++
	return nil
}

type stubCursor struct {
	b       *stubBackend
	result  stubResult
	ran     bool
	drained bool
}

func (c *stubCursor) Execute(_ context.Context, query string) error {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	c.b.queries = append(c.b.queries, query)
	if err, ok := c.b.execErrs[query]; ok {
		return err
	}
	if r, ok := c.b.results[query]; ok {
		c.result = r
	} else {
		c.result = c.b.defaultResult
	}
	c.ran = true
	return nil
}

func (c *stubCursor) FetchAll() ([][]any, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if !c.ran {
		return nil, fmt.Errorf("stub cursor: no statement executed")
	}
	if c.b.fetchErr != nil {
		return nil, c.b.fetchErr
	}
	if c.drained {
		return nil, nil
	}
	c.drained = true
	return c.result.rows, nil
}

func (c *stubCursor) Description() ([]driver.ColumnDesc, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if !c.ran {
		return nil, fmt.Errorf("stub cursor: no statement executed")
	}
	if c.b.descErr != nil {
		return nil, c.b.descErr
	}
	if !c.drained {
		c.b.descBeforeDrain = true
	}
	return c.result.desc, nil
}

func (c *stubCursor) Close() error {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	c.b.cursorsClosed++
	return nil
}

// connectStub opens a Connection over a stub backend.
func connectStub(b *stubBackend, cfg Config) (*Connection, error) {
	return ConnectDriver(context.Background(), &stubDriver{b: b}, cfg)
}

func intDesc(names ...string) []driver.ColumnDesc {
	desc := make([]driver.ColumnDesc, len(names))
	for i, name := range names {
		desc[i] = driver.ColumnDesc{Name: name, TypeName: "int"}
	}
	return desc
}
