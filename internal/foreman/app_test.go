package foreman

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/foreman/internal/core/config"
	"github.com/colonyops/foreman/internal/core/maintenance"
)

type mockBatchLog struct {
	batches []maintenance.GenerationBatch
}

func (m *mockBatchLog) Append(_ context.Context, batch maintenance.GenerationBatch) error {
	m.batches = append(m.batches, batch)
	return nil
}

func (m *mockBatchLog) List(context.Context) ([]maintenance.GenerationBatch, error) {
	return m.batches, nil
}

func (m *mockBatchLog) Get(_ context.Context, id string) (maintenance.GenerationBatch, error) {
	for _, b := range m.batches {
		if b.ID == id {
			return b, nil
		}
	}
	return maintenance.GenerationBatch{}, errors.New("batch not found")
}

func newTestApp(remote Remote, batchLog BatchLog) *App {
	cfg := config.DefaultConfig()
	cfg.Defaults = config.DefaultsConfig{CompanyID: "c-default", LocationID: "l-default"}
	return NewApp(&cfg, nil, NewGenerator(remote, zerolog.Nop()), batchLog, zerolog.Nop())
}

func TestApp_Filters(t *testing.T) {
	app := newTestApp(&mockRemote{}, &mockBatchLog{})

	tests := []struct {
		name       string
		companyID  string
		locationID string
		want       maintenance.ScopeFilters
	}{
		{
			name: "defaults apply",
			want: maintenance.ScopeFilters{CompanyID: "c-default", LocationID: "l-default"},
		},
		{
			name:      "explicit company overrides",
			companyID: "c9",
			want:      maintenance.ScopeFilters{CompanyID: "c9", LocationID: "l-default"},
		},
		{
			name:       "both override",
			companyID:  "c9",
			locationID: "l9",
			want:       maintenance.ScopeFilters{CompanyID: "c9", LocationID: "l9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, app.Filters(tt.companyID, tt.locationID))
		})
	}
}

func TestApp_GenerateBatchRecordsAudit(t *testing.T) {
	ctx := context.Background()
	batchLog := &mockBatchLog{}
	app := newTestApp(&mockRemote{}, batchLog)

	res, err := app.GenerateBatch(ctx, []string{"p1"}, GenerateContext{ScannedCode: "TAG-100"}, genSnapshot())
	require.NoError(t, err)
	require.Len(t, res.WorkOrders, 1)

	require.Len(t, batchLog.batches, 1)
	batch := batchLog.batches[0]
	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, "TAG-100", batch.ScannedCode)
	assert.Equal(t, []string{"p1"}, batch.PlanIDs)
	assert.Equal(t, []string{"wo-1"}, batch.WorkOrderIDs)
	assert.False(t, batch.Failed)
}

func TestApp_GenerateBatchRecordsFailure(t *testing.T) {
	ctx := context.Background()
	batchLog := &mockBatchLog{}
	app := newTestApp(&mockRemote{failOn: 2}, batchLog)

	_, err := app.GenerateBatch(ctx, []string{"p1", "p2"}, GenerateContext{}, genSnapshot())
	require.Error(t, err)

	require.Len(t, batchLog.batches, 1, "failed batches are audited too")
	batch := batchLog.batches[0]
	assert.True(t, batch.Failed)
	assert.NotEmpty(t, batch.Error)
	assert.Equal(t, []string{"wo-1"}, batch.WorkOrderIDs, "records what was created before the failure")
}
