package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/foreman/internal/core/maintenance"
)

func TestGenerationLogStore(t *testing.T) {
	ctx := context.Background()
	store := NewGenerationLogStore(testDB(t))

	older := maintenance.GenerationBatch{
		ID:           "batch-1",
		ScannedCode:  "PMT-ACME-HVAC-FAN01",
		PlanIDs:      []string{"p1", "p2"},
		WorkOrderIDs: []string{"wo-1", "wo-2"},
		AssetID:      "as-1",
		CreatedAt:    time.Now().Add(-time.Hour),
	}
	newer := maintenance.GenerationBatch{
		ID:        "batch-2",
		PlanIDs:   []string{"p3"},
		Failed:    true,
		Error:     "remote rejected create",
		CreatedAt: time.Now(),
	}

	require.NoError(t, store.Append(ctx, older))
	require.NoError(t, store.Append(ctx, newer))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "batch-2", got[0].ID, "newest first")
	assert.True(t, got[0].Failed)
	assert.Equal(t, "remote rejected create", got[0].Error)
	assert.Empty(t, got[0].WorkOrderIDs)

	assert.Equal(t, "batch-1", got[1].ID)
	assert.Equal(t, []string{"p1", "p2"}, got[1].PlanIDs)
	assert.Equal(t, []string{"wo-1", "wo-2"}, got[1].WorkOrderIDs)
}

func TestGenerationLogStore_Get(t *testing.T) {
	ctx := context.Background()
	store := NewGenerationLogStore(testDB(t))

	batch := maintenance.GenerationBatch{
		ID:           "batch-1",
		ScannedCode:  "TAG-100",
		PlanIDs:      []string{"p1"},
		WorkOrderIDs: []string{"wo-1"},
		CreatedAt:    time.Now(),
	}
	require.NoError(t, store.Append(ctx, batch))

	got, err := store.Get(ctx, "batch-1")
	require.NoError(t, err)
	assert.Equal(t, "TAG-100", got.ScannedCode)
	assert.Equal(t, []string{"wo-1"}, got.WorkOrderIDs)

	_, err = store.Get(ctx, "batch-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
