package resolve

import "github.com/colonyops/foreman/internal/core/maintenance"

// Outcome is the result of classifying a scanned code. Exactly one
// variant is returned per call; callers switch on the concrete type.
// Terminal reports whether the scanning session should be dismissed:
// every match variant is terminal, NotFound keeps the scanner open so
// the operator can retry without re-opening it.
type Outcome interface {
	Terminal() bool
	outcome()
}

// WorkOrderMatch means the code identified an existing work order.
// The caller navigates straight to it.
type WorkOrderMatch struct {
	WorkOrder maintenance.WorkOrder
}

// PlanSelection means the code identified one or more maintenance
// plans and the caller should prompt the operator to confirm a subset
// for work-order generation.
//
// Asset is the equipment the selection is scoped to. It is nil when no
// asset could be associated with the scan: on a direct plan match the
// association is best-effort (the payload may concatenate an asset tag
// and a plan suffix), whereas a selection reached through an asset
// match carries that asset with certainty.
type PlanSelection struct {
	Plans []maintenance.MaintenancePlan
	Asset *maintenance.Asset
}

// AssetMatch means the code identified an asset that has no linked
// maintenance plans. The caller navigates to the asset detail view.
type AssetMatch struct {
	Asset maintenance.Asset
}

// NotFound means nothing matched. The only non-terminal outcome.
type NotFound struct{}

func (WorkOrderMatch) Terminal() bool { return true }
func (PlanSelection) Terminal() bool  { return true }
func (AssetMatch) Terminal() bool     { return true }
func (NotFound) Terminal() bool       { return false }

func (WorkOrderMatch) outcome() {}
func (PlanSelection) outcome()  {}
func (AssetMatch) outcome()     {}
func (NotFound) outcome()       {}
