// Package foreman is the service layer tying the resolution core to
// the remote system of record and the local cache.
package foreman

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/foreman/internal/core/config"
	"github.com/colonyops/foreman/internal/core/maintenance"
)

// BatchLog records generation batches for auditing.
type BatchLog interface {
	Append(ctx context.Context, batch maintenance.GenerationBatch) error
	List(ctx context.Context) ([]maintenance.GenerationBatch, error)
	Get(ctx context.Context, id string) (maintenance.GenerationBatch, error)
}

// App aggregates the services the commands and TUI operate on.
type App struct {
	Config    *config.Config
	Snapshots *SnapshotService
	Generator *Generator

	batchLog BatchLog
	log      zerolog.Logger
	now      func() time.Time
}

// NewApp creates the application aggregate.
func NewApp(cfg *config.Config, snapshots *SnapshotService, generator *Generator, batchLog BatchLog, log zerolog.Logger) *App {
	return &App{
		Config:    cfg,
		Snapshots: snapshots,
		Generator: generator,
		batchLog:  batchLog,
		log:       log,
		now:       time.Now,
	}
}

// Filters merges explicit values over the configured defaults. An
// explicit empty string still falls back; use the config to pin a
// station-wide scope and flags to override it per call.
func (a *App) Filters(companyID, locationID string) maintenance.ScopeFilters {
	f := maintenance.ScopeFilters{
		CompanyID:  a.Config.Defaults.CompanyID,
		LocationID: a.Config.Defaults.LocationID,
	}
	if companyID != "" {
		f.CompanyID = companyID
	}
	if locationID != "" {
		f.LocationID = locationID
	}
	return f
}

// GenerateBatch runs the orchestrator and appends the audit record.
// The audit entry is written for failed batches too: a failed batch
// may still have created remote records, and the log is how operators
// find them. An audit write failure is logged, never allowed to mask
// the generation outcome.
func (a *App) GenerateBatch(ctx context.Context, planIDs []string, gctx GenerateContext, snap maintenance.Snapshot) (GenerateResult, error) {
	res, genErr := a.Generator.Generate(ctx, planIDs, gctx, snap)

	batch := maintenance.GenerationBatch{
		ID:          uuid.NewString(),
		ScannedCode: gctx.ScannedCode,
		PlanIDs:     planIDs,
		CreatedAt:   a.now(),
	}
	for _, wo := range res.WorkOrders {
		batch.WorkOrderIDs = append(batch.WorkOrderIDs, wo.ID)
	}
	if res.Asset != nil {
		batch.AssetID = res.Asset.ID
	}
	if genErr != nil {
		batch.Failed = true
		batch.Error = genErr.Error()
	}

	if err := a.batchLog.Append(ctx, batch); err != nil {
		a.log.Error().Err(err).Str("batch_id", batch.ID).Msg("failed to record generation batch")
	}

	return res, genErr
}

// History returns the recorded generation batches, newest first.
func (a *App) History(ctx context.Context) ([]maintenance.GenerationBatch, error) {
	return a.batchLog.List(ctx)
}

// Batch returns one recorded generation batch by id.
func (a *App) Batch(ctx context.Context, id string) (maintenance.GenerationBatch, error) {
	return a.batchLog.Get(ctx, id)
}
