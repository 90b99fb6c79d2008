package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/leapstack-labs/farsql/pkg/core"
	"github.com/leapstack-labs/farsql/pkg/driver"
)

// execWithRetry acquires a cursor and submits query on it. Transient
// cursor-acquisition failures trigger a reconnect and a retry, up to
// retries extra attempts; exhausting the budget surfaces a
// ConnectionError wrapping the last transient cause.
//
// The budget covers cursor acquisition only. Once a cursor is obtained,
// a submission failure is a SQLError and is never retried: the engine saw
// the statement, so replaying it blindly is not safe.
func (c *Connection) execWithRetry(ctx context.Context, query string, retries int) (driver.Cursor, error) {
	if retries < 0 {
		retries = 0
	}

	var (
		cur      driver.Cursor
		lastErr  error
		attempts int
	)

	// The constant backoff is nominal; the policy is immediate
	// reconnect-and-retry.
	backoff := retry.WithMaxRetries(uint64(retries), retry.NewConstant(time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++

		session := c.currentSession()
		if session == nil {
			return fmt.Errorf("connection closed")
		}

		cursor, err := session.Cursor(ctx)
		if err != nil {
			if !core.IsTransient(err) {
				return err
			}
			lastErr = err
			c.logger.Debug("session dead, reconnecting",
				slog.Int("attempt", attempts),
				slog.String("error", err.Error()))
			if rerr := c.reconnect(ctx); rerr != nil {
				c.logger.Debug("reconnect failed", slog.String("error", rerr.Error()))
				lastErr = rerr
			}
			return retry.RetryableError(err)
		}

		cur = cursor
		return nil
	})
	if err != nil {
		if lastErr != nil {
			return nil, &core.ConnectionError{Attempts: attempts, Err: lastErr}
		}
		return nil, fmt.Errorf("acquire cursor: %w", err)
	}

	if err := cur.Execute(ctx, query); err != nil {
		_ = cur.Close()
		return nil, &core.SQLError{Query: query, Err: err}
	}
	return cur, nil
}

// reconnect replaces the session handle in place. The old session is
// closed best-effort and the slot is only overwritten once the new
// session exists, so a failed reconnect never loses the handle.
func (c *Connection) reconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		_ = c.session.Close()
	}

	session, err := c.drv.Connect(ctx, c.params)
	if err != nil {
		return fmt.Errorf("reconnect %s: %w", c.drv.Name(), err)
	}
	c.session = session
	return nil
}

func (c *Connection) currentSession() driver.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}
