package stores

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError returns true if the error is a "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsBusyError returns true if the error is a SQLITE_BUSY error.
func IsBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_BUSY
	}
	return false
}

const (
	busyRetries    = 3
	busyRetryDelay = 50 * time.Millisecond
)

// retryBusy retries fn while SQLite reports SQLITE_BUSY. The busy
// timeout pragma absorbs most contention; this covers a sync and a
// generation audit writing at the same moment.
func retryBusy(ctx context.Context, fn func() error) error {
	var err error
	for i := 0; i < busyRetries; i++ {
		err = fn()
		if !IsBusyError(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(busyRetryDelay):
		}
	}
	return err
}
