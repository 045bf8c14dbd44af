package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(sql.ErrNoRows))
	assert.True(t, IsNotFoundError(fmt.Errorf("failed to get record: %w", sql.ErrNoRows)))
	assert.False(t, IsNotFoundError(errors.New("disk I/O error")))
	assert.False(t, IsNotFoundError(nil))
}

func TestRetryBusy(t *testing.T) {
	ctx := context.Background()

	t.Run("success on first attempt", func(t *testing.T) {
		calls := 0
		err := retryBusy(ctx, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("non-busy errors do not retry", func(t *testing.T) {
		calls := 0
		boom := errors.New("constraint failed")
		err := retryBusy(ctx, func() error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})
}
