package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/colonyops/foreman/internal/core/maintenance"
	"github.com/colonyops/foreman/internal/data/db"
	"github.com/colonyops/foreman/internal/foreman"
)

// GenerationLogStore keeps the audit trail of work-order generation
// batches. Because a failed batch may still have created remote
// records, the log is the operator's tool for finding duplicates after
// a partial failure.
type GenerationLogStore struct {
	db *db.DB
}

var _ foreman.BatchLog = (*GenerationLogStore)(nil)

// NewGenerationLogStore creates a SQLite-backed generation log.
func NewGenerationLogStore(db *db.DB) *GenerationLogStore {
	return &GenerationLogStore{db: db}
}

// Append records one generation batch.
func (s *GenerationLogStore) Append(ctx context.Context, batch maintenance.GenerationBatch) error {
	planIDs, err := json.Marshal(batch.PlanIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal plan ids: %w", err)
	}
	workOrderIDs, err := json.Marshal(batch.WorkOrderIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal work order ids: %w", err)
	}

	err = retryBusy(ctx, func() error {
		_, err := s.db.Conn().ExecContext(ctx,
			`INSERT INTO generation_batches (id, scanned_code, plan_ids, work_order_ids, asset_id, failed, error, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			batch.ID, batch.ScannedCode, string(planIDs), string(workOrderIDs), batch.AssetID,
			boolToInt(batch.Failed), batch.Error, batch.CreatedAt.UnixNano())
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to append generation batch: %w", err)
	}
	return nil
}

// Get returns one recorded batch by id, ErrNotFound when no batch with
// that id exists.
func (s *GenerationLogStore) Get(ctx context.Context, id string) (maintenance.GenerationBatch, error) {
	row := s.db.Conn().QueryRowContext(ctx,
		`SELECT id, scanned_code, plan_ids, work_order_ids, asset_id, failed, error, created_at
		 FROM generation_batches WHERE id = ?`, id)

	batch, err := scanBatch(row.Scan)
	if err != nil {
		if IsNotFoundError(err) {
			return batch, ErrNotFound
		}
		return batch, fmt.Errorf("failed to get generation batch %s: %w", id, err)
	}
	return batch, nil
}

// List returns all recorded batches, newest first.
func (s *GenerationLogStore) List(ctx context.Context) ([]maintenance.GenerationBatch, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id, scanned_code, plan_ids, work_order_ids, asset_id, failed, error, created_at
		 FROM generation_batches ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list generation batches: %w", err)
	}

	var batches []maintenance.GenerationBatch
	for rows.Next() {
		batch, err := scanBatch(rows.Scan)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan generation batch: %w", err)
		}
		batches = append(batches, batch)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	return batches, nil
}

// scanBatch decodes one generation_batches row. scan is either a
// sql.Row or sql.Rows Scan method.
func scanBatch(scan func(dest ...any) error) (maintenance.GenerationBatch, error) {
	var (
		batch        maintenance.GenerationBatch
		planIDs      string
		workOrderIDs string
		failed       int
		createdAt    int64
	)
	if err := scan(&batch.ID, &batch.ScannedCode, &planIDs, &workOrderIDs, &batch.AssetID, &failed, &batch.Error, &createdAt); err != nil {
		return batch, err
	}
	if err := json.Unmarshal([]byte(planIDs), &batch.PlanIDs); err != nil {
		return batch, fmt.Errorf("failed to unmarshal plan ids: %w", err)
	}
	if err := json.Unmarshal([]byte(workOrderIDs), &batch.WorkOrderIDs); err != nil {
		return batch, fmt.Errorf("failed to unmarshal work order ids: %w", err)
	}
	batch.Failed = failed != 0
	batch.CreatedAt = nanoTime(createdAt)
	return batch, nil
}

// nanoTime converts a stored unix-nano timestamp, keeping zero as the
// zero time.
func nanoTime(nanos int64) time.Time {
	if nanos == 0 {
		return time.Time{}
	}
	return time.Unix(0, nanos)
}
