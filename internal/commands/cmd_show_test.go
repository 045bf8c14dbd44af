package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/foreman/internal/core/maintenance"
)

func TestBuildWorkOrderMarkdown(t *testing.T) {
	snap := maintenance.Snapshot{
		PlanSteps: []maintenance.PlanStep{
			{ID: "st-2", PlanID: "p1", StepNumber: 2, TaskDescription: "Check belt tension", StandardValue: "20-25 N"},
			{ID: "st-1", PlanID: "p1", StepNumber: 1, TaskDescription: "Isolate power", IsCritical: true},
		},
	}
	wo := maintenance.WorkOrder{
		Number:      "1001",
		Title:       "PM: Fan monthly",
		Status:      maintenance.StatusOpen,
		WorkType:    maintenance.WorkTypePM,
		Priority:    maintenance.PriorityMedium,
		AssetID:     "as-1",
		PlanID:      "p1",
		Description: "Generated from scanned code TAG-100",
	}

	md := buildWorkOrderMarkdown(wo, snap)

	assert.Contains(t, md, "# 1001 PM: Fan monthly")
	assert.Contains(t, md, "**Asset:** as-1")
	assert.Contains(t, md, "Generated from scanned code TAG-100")

	// Checklist follows step-number order, not collection order.
	isolate := "- [ ] Isolate power **critical**"
	belt := "- [ ] Check belt tension (standard: 20-25 N)"
	assert.Contains(t, md, isolate)
	assert.Contains(t, md, belt)
	assert.Less(t, strings.Index(md, isolate), strings.Index(md, belt))
}

func TestBuildWorkOrderMarkdown_UnresolvedAssetOmitted(t *testing.T) {
	wo := maintenance.WorkOrder{
		Number:   "1002",
		Title:    "PM: Chiller weekly",
		Status:   maintenance.StatusOpen,
		WorkType: maintenance.WorkTypePM,
		Priority: maintenance.PriorityMedium,
		AssetID:  maintenance.AssetUnresolved,
	}

	md := buildWorkOrderMarkdown(wo, maintenance.Snapshot{})

	assert.NotContains(t, md, "**Asset:**")
	assert.NotContains(t, md, "Checklist")
}
