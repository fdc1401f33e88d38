package storage

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/mattn/go-sqlite3"
)

const (
	retryAttempts = 3
	retryDelay    = 25 * time.Millisecond
)

// withRetry runs fn again when SQLite reports the database as busy or locked.
func withRetry[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	return retry.DoWithData(
		fn,
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
	)
}

func isTransient(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}
