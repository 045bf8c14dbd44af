package stores

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/colonyops/foreman/internal/core/maintenance"
	"github.com/colonyops/foreman/internal/data/db"
	"github.com/colonyops/foreman/internal/foreman"
)

// SnapshotStore caches the remote entity collections in SQLite so
// scans keep working when the CMMS API is unreachable.
type SnapshotStore struct {
	db *db.DB
}

var _ foreman.SnapshotCache = (*SnapshotStore)(nil)

// NewSnapshotStore creates a SQLite-backed snapshot cache.
func NewSnapshotStore(db *db.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// ReplaceSnapshot atomically swaps the cached collections for the
// given snapshot. The cache mirrors the remote wholesale; there are no
// per-record updates.
func (s *SnapshotStore) ReplaceSnapshot(ctx context.Context, snap maintenance.Snapshot) error {
	err := retryBusy(ctx, func() error {
		return s.replaceSnapshotTx(ctx, snap)
	})
	if err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotStore) replaceSnapshotTx(ctx context.Context, snap maintenance.Snapshot) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"companies", "assets", "maintenance_plans", "plan_steps", "work_orders"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		for _, c := range snap.Companies {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO companies (id, code, name) VALUES (?, ?, ?)`,
				c.ID, c.Code, c.Name)
			if err != nil {
				return fmt.Errorf("failed to insert company %s: %w", c.ID, err)
			}
		}

		for _, a := range snap.Assets {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO assets (id, asset_tag, name, company_id, location_id, system_id, equipment_type_id, status, condition)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				a.ID, a.AssetTag, a.Name, a.CompanyID, a.LocationID, a.SystemID, a.EquipmentTypeID, a.Status, a.Condition)
			if err != nil {
				return fmt.Errorf("failed to insert asset %s: %w", a.ID, err)
			}
		}

		for _, p := range snap.Plans {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO maintenance_plans (id, name, company_id, system_id, equipment_type_id, frequency_type, frequency_value, estimated_minutes, remarks)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				p.ID, p.Name, p.CompanyID, p.SystemID, p.EquipmentTypeID, p.FrequencyType, p.FrequencyValue, p.EstimatedMinutes, p.Remarks)
			if err != nil {
				return fmt.Errorf("failed to insert plan %s: %w", p.ID, err)
			}
		}

		for _, st := range snap.PlanSteps {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO plan_steps (id, plan_id, step_number, task_description, input_kind, standard_value, is_critical)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				st.ID, st.PlanID, st.StepNumber, st.TaskDescription, st.InputKind, st.StandardValue, boolToInt(st.IsCritical))
			if err != nil {
				return fmt.Errorf("failed to insert plan step %s: %w", st.ID, err)
			}
		}

		for _, wo := range snap.WorkOrders {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO work_orders (id, number, title, description, work_type, status, priority, company_id, location_id, system_id, equipment_type_id, asset_id, plan_id, remarks, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				wo.ID, wo.Number, wo.Title, wo.Description, wo.WorkType, wo.Status, wo.Priority,
				wo.CompanyID, wo.LocationID, wo.SystemID, wo.EquipmentTypeID, wo.AssetID, wo.PlanID,
				wo.Remarks, wo.CreatedAt.UnixNano())
			if err != nil {
				return fmt.Errorf("failed to insert work order %s: %w", wo.ID, err)
			}
		}

		return nil
	})
}

// LoadSnapshot reads the cached collections. An empty cache yields an
// empty snapshot, not an error.
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) (maintenance.Snapshot, error) {
	var snap maintenance.Snapshot
	conn := s.db.Conn()

	rows, err := conn.QueryContext(ctx, `SELECT id, code, name FROM companies`)
	if err != nil {
		return snap, fmt.Errorf("failed to load companies: %w", err)
	}
	for rows.Next() {
		var c maintenance.Company
		if err := rows.Scan(&c.ID, &c.Code, &c.Name); err != nil {
			_ = rows.Close()
			return snap, fmt.Errorf("failed to scan company: %w", err)
		}
		snap.Companies = append(snap.Companies, c)
	}
	if err := closeRows(rows); err != nil {
		return snap, err
	}

	rows, err = conn.QueryContext(ctx,
		`SELECT id, asset_tag, name, company_id, location_id, system_id, equipment_type_id, status, condition FROM assets`)
	if err != nil {
		return snap, fmt.Errorf("failed to load assets: %w", err)
	}
	for rows.Next() {
		var a maintenance.Asset
		if err := rows.Scan(&a.ID, &a.AssetTag, &a.Name, &a.CompanyID, &a.LocationID, &a.SystemID, &a.EquipmentTypeID, &a.Status, &a.Condition); err != nil {
			_ = rows.Close()
			return snap, fmt.Errorf("failed to scan asset: %w", err)
		}
		snap.Assets = append(snap.Assets, a)
	}
	if err := closeRows(rows); err != nil {
		return snap, err
	}

	rows, err = conn.QueryContext(ctx,
		`SELECT id, name, company_id, system_id, equipment_type_id, frequency_type, frequency_value, estimated_minutes, remarks FROM maintenance_plans`)
	if err != nil {
		return snap, fmt.Errorf("failed to load plans: %w", err)
	}
	for rows.Next() {
		var p maintenance.MaintenancePlan
		if err := rows.Scan(&p.ID, &p.Name, &p.CompanyID, &p.SystemID, &p.EquipmentTypeID, &p.FrequencyType, &p.FrequencyValue, &p.EstimatedMinutes, &p.Remarks); err != nil {
			_ = rows.Close()
			return snap, fmt.Errorf("failed to scan plan: %w", err)
		}
		snap.Plans = append(snap.Plans, p)
	}
	if err := closeRows(rows); err != nil {
		return snap, err
	}

	rows, err = conn.QueryContext(ctx,
		`SELECT id, plan_id, step_number, task_description, input_kind, standard_value, is_critical FROM plan_steps ORDER BY plan_id, step_number`)
	if err != nil {
		return snap, fmt.Errorf("failed to load plan steps: %w", err)
	}
	for rows.Next() {
		var st maintenance.PlanStep
		var critical int
		if err := rows.Scan(&st.ID, &st.PlanID, &st.StepNumber, &st.TaskDescription, &st.InputKind, &st.StandardValue, &critical); err != nil {
			_ = rows.Close()
			return snap, fmt.Errorf("failed to scan plan step: %w", err)
		}
		st.IsCritical = critical != 0
		snap.PlanSteps = append(snap.PlanSteps, st)
	}
	if err := closeRows(rows); err != nil {
		return snap, err
	}

	rows, err = conn.QueryContext(ctx,
		`SELECT id, number, title, description, work_type, status, priority, company_id, location_id, system_id, equipment_type_id, asset_id, plan_id, remarks, created_at FROM work_orders`)
	if err != nil {
		return snap, fmt.Errorf("failed to load work orders: %w", err)
	}
	for rows.Next() {
		var wo maintenance.WorkOrder
		var createdAt int64
		if err := rows.Scan(&wo.ID, &wo.Number, &wo.Title, &wo.Description, &wo.WorkType, &wo.Status, &wo.Priority,
			&wo.CompanyID, &wo.LocationID, &wo.SystemID, &wo.EquipmentTypeID, &wo.AssetID, &wo.PlanID,
			&wo.Remarks, &createdAt); err != nil {
			_ = rows.Close()
			return snap, fmt.Errorf("failed to scan work order: %w", err)
		}
		wo.CreatedAt = nanoTime(createdAt)
		snap.WorkOrders = append(snap.WorkOrders, wo)
	}
	if err := closeRows(rows); err != nil {
		return snap, err
	}

	return snap, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("failed to iterate rows: %w", err)
	}
	return rows.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
