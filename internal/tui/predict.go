package tui

import (
	"slices"

	"github.com/colonyops/foreman/internal/core/maintenance"
	"github.com/colonyops/foreman/internal/core/resolve"
)

// cycleIndex advances through 0..n-1 and back to -1 (unset).
func cycleIndex(idx, n int) int {
	if n == 0 {
		return -1
	}
	idx++
	if idx >= n {
		return -1
	}
	return idx
}

func pick(values []string, idx int) string {
	if idx < 0 || idx >= len(values) {
		return ""
	}
	return values[idx]
}

// companyIDs returns the cyclable company dimension. A company scope
// filter pins the dimension to that single value.
func (m Model) companyIDs() []string {
	if m.filters.CompanyID != "" {
		return []string{m.filters.CompanyID}
	}
	ids := make([]string, 0, len(m.snap.Companies))
	for _, c := range m.snap.Companies {
		ids = append(ids, c.ID)
	}
	return ids
}

func (m Model) systemIDs() []string {
	return distinct(m.snap.Plans, func(p maintenance.MaintenancePlan) string { return p.SystemID })
}

func (m Model) equipTypeIDs() []string {
	return distinct(m.snap.Plans, func(p maintenance.MaintenancePlan) string { return p.EquipmentTypeID })
}

// distinct collects the sorted distinct non-empty values of one plan
// dimension. Plans define the dimension space because predicted codes
// are plan template codes.
func distinct(plans []maintenance.MaintenancePlan, dim func(maintenance.MaintenancePlan) string) []string {
	var values []string
	for _, p := range plans {
		v := dim(p)
		if v == "" || slices.Contains(values, v) {
			continue
		}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

// predictedCode derives the template code for the currently cycled
// dimensions. ok is false until all three dimensions are set.
func (m Model) predictedCode() (string, bool) {
	return resolve.PredictPlanCode(
		pick(m.companyIDs(), m.companyIdx),
		pick(m.systemIDs(), m.systemIdx),
		pick(m.equipTypeIDs(), m.equipIdx),
		m.snap.Companies,
	)
}
