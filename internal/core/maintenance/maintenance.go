// Package maintenance defines the domain model shared by the resolver,
// the generation orchestrator, and the data layer. All join keys are
// plain strings; the data-loading boundary is responsible for
// normalizing numeric-looking ids to strings so comparisons here stay
// strict string equality.
package maintenance

import (
	"fmt"
	"time"
)

// Work order classification values.
const (
	WorkTypePM = "PM" // preventive maintenance
	WorkTypeCM = "CM" // corrective maintenance
)

// Work order statuses.
const (
	StatusOpen       = "Open"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// Work order priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Plan recurrence frequency types.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// AssetUnresolved is the placeholder asset id used on generated work
// orders when batch asset inference could not pin down exactly one
// candidate.
const AssetUnresolved = "TBD"

// WorkOrder is a single maintenance job. Number is assigned only by the
// remote system of record; drafts carry a temporary placeholder until
// the create call returns the canonical identity.
type WorkOrder struct {
	ID              string    `json:"id"`
	Number          string    `json:"number"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	WorkType        string    `json:"workType"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	CompanyID       string    `json:"companyId"`
	LocationID      string    `json:"locationId"`
	SystemID        string    `json:"systemId"`
	EquipmentTypeID string    `json:"equipmentTypeId"`
	AssetID         string    `json:"assetId"`
	PlanID          string    `json:"planId,omitempty"`
	Remarks         string    `json:"remarks,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// MaintenancePlan is a reusable preventive-maintenance template. Its ID
// is a structured code (see resolve.PredictPlanCode) that scanned
// payloads match against by substring.
type MaintenancePlan struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	CompanyID        string `json:"companyId"`
	SystemID         string `json:"systemId"`
	EquipmentTypeID  string `json:"equipmentTypeId"`
	FrequencyType    string `json:"frequencyType"`
	FrequencyValue   int    `json:"frequencyValue"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
	Remarks          string `json:"remarks,omitempty"`
}

// PlanStep is one checklist line item belonging to a plan. StepNumber
// defines checklist order at generation time.
type PlanStep struct {
	ID              string `json:"id"`
	PlanID          string `json:"planId"`
	StepNumber      int    `json:"stepNumber"`
	TaskDescription string `json:"taskDescription"`
	InputKind       string `json:"inputKind,omitempty"`
	StandardValue   string `json:"standardValue,omitempty"`
	IsCritical      bool   `json:"isCritical"`
}

// Asset is a physical piece of equipment identified by an asset tag.
type Asset struct {
	ID              string `json:"id"`
	AssetTag        string `json:"assetTag"`
	Name            string `json:"name"`
	CompanyID       string `json:"companyId"`
	LocationID      string `json:"locationId"`
	SystemID        string `json:"systemId"`
	EquipmentTypeID string `json:"equipmentTypeId"`
	Status          string `json:"status,omitempty"`
	Condition       string `json:"condition,omitempty"`
}

// Task is a checklist item instantiated on a work order from a plan
// step.
type Task struct {
	ID          string `json:"id"`
	WorkOrderID string `json:"workOrderId"`
	Description string `json:"description"`
	IsCompleted bool   `json:"isCompleted"`
}

// TaskID derives the deterministic checklist item id for the given
// work order and 1-based step position.
func TaskID(workOrderID string, position int) string {
	return fmt.Sprintf("%s-task-%d", workOrderID, position)
}

// GenerationBatch is the audit record of one work-order generation
// invocation: the plans confirmed together and what came of them.
type GenerationBatch struct {
	ID           string    `json:"id"`
	ScannedCode  string    `json:"scannedCode,omitempty"`
	PlanIDs      []string  `json:"planIds"`
	WorkOrderIDs []string  `json:"workOrderIds"`
	AssetID      string    `json:"assetId,omitempty"`
	Failed       bool      `json:"failed"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Company is an organizational scoping dimension. Code is a short
// human code used in template identifiers; source data quality is
// inconsistent, so it may be empty or a bare "-" placeholder.
type Company struct {
	ID   string `json:"id"`
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
}

// ScopeFilters narrows which entities a scan may match. A zero-value
// field means "match any". Filters are carried from the scanning
// context into resolution and generation; they are never persisted.
type ScopeFilters struct {
	CompanyID  string
	LocationID string
}

// Snapshot is a read-only view of the entity collections the resolver
// and orchestrator operate over. The application shell owns the data
// and supplies a fresh snapshot on every call; the core never mutates
// it.
type Snapshot struct {
	Companies  []Company
	WorkOrders []WorkOrder
	Plans      []MaintenancePlan
	PlanSteps  []PlanStep
	Assets     []Asset
}

// Plan returns the plan with the given id, or false when it is not in
// the snapshot.
func (s Snapshot) Plan(id string) (MaintenancePlan, bool) {
	for _, p := range s.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return MaintenancePlan{}, false
}

// StepsForPlan returns the steps belonging to the given plan in
// collection order. Callers that need checklist order sort by
// StepNumber.
func (s Snapshot) StepsForPlan(planID string) []PlanStep {
	var steps []PlanStep
	for _, st := range s.PlanSteps {
		if st.PlanID == planID {
			steps = append(steps, st)
		}
	}
	return steps
}
