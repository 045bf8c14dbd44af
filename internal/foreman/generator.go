package foreman

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/foreman/internal/core/maintenance"
	"github.com/colonyops/foreman/pkg/randid"
)

// Remote is the system-of-record surface the generator depends on.
// CreateWorkOrder persists a draft and returns its canonical identity;
// the draft's temporary id is discarded. SaveWorkOrderBundle re-sends
// the finalized work order together with its checklist; the remote
// update is idempotent on the full record, not a delta patch.
type Remote interface {
	CreateWorkOrder(ctx context.Context, draft maintenance.WorkOrder) (CreatedIdentity, error)
	SaveWorkOrderBundle(ctx context.Context, wo maintenance.WorkOrder, tasks []maintenance.Task) error
}

// CreatedIdentity is the canonical identity assigned by the remote
// system when a work order is created.
type CreatedIdentity struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

// GenerateContext carries the scan context into a generation batch.
type GenerateContext struct {
	// Asset is the equipment the batch is scoped to, when resolution
	// already pinned one down. Nil triggers batch asset inference.
	Asset *maintenance.Asset
	// Filters are the scope filters active during the scan.
	Filters maintenance.ScopeFilters
	// ScannedCode is the original payload, used in description
	// fallbacks for traceability.
	ScannedCode string
}

// GenerateResult accumulates everything a batch created. The caller
// merges these into its own store and decides navigation.
type GenerateResult struct {
	WorkOrders []maintenance.WorkOrder
	Tasks      []maintenance.Task
	// Asset is the working asset adopted for the whole batch, nil when
	// inference left it unresolved.
	Asset *maintenance.Asset
}

// GenerationError wraps the first remote failure in a batch. Remote
// records created before the failure are not rolled back; Created
// lists the work orders that completed so callers can report them and
// exclude their plans on retry.
type GenerationError struct {
	PlanID    string
	PlanIndex int
	Created   []maintenance.WorkOrder
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate work order for plan %s (batch index %d, %d completed before failure): %v",
		e.PlanID, e.PlanIndex, len(e.Created), e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Generator turns a confirmed plan selection into work orders on the
// remote system of record.
type Generator struct {
	remote Remote
	log    zerolog.Logger
	now    func() time.Time
}

// NewGenerator creates a Generator backed by the given remote.
func NewGenerator(remote Remote, log zerolog.Logger) *Generator {
	return &Generator{remote: remote, log: log, now: time.Now}
}

// Generate processes the selected plans strictly sequentially, in the
// order given. Asset inference happens once, up front, and its result
// is honored for the entire batch: with no asset in the context, a
// location filter present, and a non-empty selection, the first
// selected plan's scoping keys plus the filter location are joined
// against the asset collection; exactly one candidate is adopted,
// anything else leaves every generated order with the unresolved
// placeholder. The orchestrator never guesses per plan.
//
// Each plan produces one work order (remote create, canonical identity
// replaces the draft's temporary id), then one task per plan step in
// StepNumber order; when tasks exist they are persisted as a bundle
// with the finalized work order. The first remote failure aborts the
// rest of the batch and surfaces as a *GenerationError; previously
// completed work orders stay persisted remotely.
//
// An empty selection is a no-op. A selected plan id missing from the
// snapshot is stale UI state: skipped with a warning, not an error.
func (g *Generator) Generate(ctx context.Context, planIDs []string, gctx GenerateContext, snap maintenance.Snapshot) (GenerateResult, error) {
	var res GenerateResult

	working := gctx.Asset
	if working == nil && gctx.Filters.LocationID != "" && len(planIDs) > 0 {
		working = inferAsset(planIDs[0], gctx.Filters, snap)
		if working != nil {
			g.log.Debug().Str("asset_id", working.ID).Msg("inferred working asset for batch")
		}
	}
	res.Asset = working

	for i, planID := range planIDs {
		plan, ok := snap.Plan(planID)
		if !ok {
			g.log.Warn().Str("plan_id", planID).Msg("selected plan not in snapshot, skipping")
			continue
		}

		draft := g.buildDraft(plan, working, gctx)

		identity, err := g.remote.CreateWorkOrder(ctx, draft)
		if err != nil {
			return res, &GenerationError{PlanID: planID, PlanIndex: i, Created: res.WorkOrders, Err: err}
		}

		wo := draft
		wo.ID = identity.ID
		wo.Number = identity.Number

		tasks := buildTasks(wo.ID, snap.StepsForPlan(planID))
		if len(tasks) > 0 {
			if err := g.remote.SaveWorkOrderBundle(ctx, wo, tasks); err != nil {
				// The work order itself was created remotely; it is an
				// orphan without its checklist until a retry re-sends it.
				g.log.Error().Str("work_order", wo.ID).Err(err).Msg("checklist persist failed after create")
				return res, &GenerationError{PlanID: planID, PlanIndex: i, Created: res.WorkOrders, Err: err}
			}
		}

		res.WorkOrders = append(res.WorkOrders, wo)
		res.Tasks = append(res.Tasks, tasks...)

		g.log.Info().
			Str("work_order", wo.ID).
			Str("number", wo.Number).
			Str("plan_id", planID).
			Int("tasks", len(tasks)).
			Msg("work order generated")
	}

	return res, nil
}

// buildDraft assembles a work-order draft for the plan. Scoping fields
// come from the working asset when one was resolved, otherwise from
// the plan's own keys plus the filter's location.
func (g *Generator) buildDraft(plan maintenance.MaintenancePlan, asset *maintenance.Asset, gctx GenerateContext) maintenance.WorkOrder {
	description := plan.Remarks
	if description == "" {
		description = fmt.Sprintf("Generated from scanned code %s", gctx.ScannedCode)
	}

	wo := maintenance.WorkOrder{
		ID:          "wo-tmp-" + randid.Generate(8),
		Title:       "PM: " + plan.Name,
		Description: description,
		WorkType:    maintenance.WorkTypePM,
		Status:      maintenance.StatusOpen,
		Priority:    maintenance.PriorityMedium,
		PlanID:      plan.ID,
		CreatedAt:   g.now(),
	}

	if asset != nil {
		wo.CompanyID = asset.CompanyID
		wo.LocationID = asset.LocationID
		wo.SystemID = asset.SystemID
		wo.EquipmentTypeID = asset.EquipmentTypeID
		wo.AssetID = asset.ID
		return wo
	}

	wo.CompanyID = plan.CompanyID
	wo.SystemID = plan.SystemID
	wo.EquipmentTypeID = plan.EquipmentTypeID
	wo.LocationID = gctx.Filters.LocationID
	wo.AssetID = maintenance.AssetUnresolved
	return wo
}

// inferAsset applies the exactly-one-candidate rule: a structural join
// of the plan's scoping keys and the filter location against the asset
// collection. Zero or multiple candidates means no inference, never a
// closest guess.
func inferAsset(planID string, filters maintenance.ScopeFilters, snap maintenance.Snapshot) *maintenance.Asset {
	plan, ok := snap.Plan(planID)
	if !ok {
		return nil
	}

	var candidates []maintenance.Asset
	for _, a := range snap.Assets {
		if a.CompanyID == plan.CompanyID &&
			a.LocationID == filters.LocationID &&
			a.SystemID == plan.SystemID &&
			a.EquipmentTypeID == plan.EquipmentTypeID {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) != 1 {
		return nil
	}
	return &candidates[0]
}

// buildTasks instantiates one checklist task per plan step in
// StepNumber order. Task ids derive from the canonical work-order id,
// never from a draft's temporary id.
func buildTasks(workOrderID string, steps []maintenance.PlanStep) []maintenance.Task {
	ordered := slices.Clone(steps)
	slices.SortStableFunc(ordered, func(a, b maintenance.PlanStep) int {
		return cmp.Compare(a.StepNumber, b.StepNumber)
	})

	tasks := make([]maintenance.Task, 0, len(ordered))
	for i, step := range ordered {
		tasks = append(tasks, maintenance.Task{
			ID:          maintenance.TaskID(workOrderID, i+1),
			WorkOrderID: workOrderID,
			Description: step.TaskDescription,
			IsCompleted: false,
		})
	}
	return tasks
}
