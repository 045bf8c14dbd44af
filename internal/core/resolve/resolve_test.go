package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/foreman/internal/core/maintenance"
)

func testSnapshot() maintenance.Snapshot {
	return maintenance.Snapshot{
		WorkOrders: []maintenance.WorkOrder{
			{ID: "wo-1001", Number: "WO-2026-0001", CompanyID: "c1"},
			{ID: "wo-1002", Number: "PMT-001", CompanyID: "c1"},
			{ID: "wo-2001", Number: "WO-2026-0002", CompanyID: "c2"},
		},
		Plans: []maintenance.MaintenancePlan{
			{ID: "PMT-001-SYS-EQ", Name: "Pump inspection", CompanyID: "c1", SystemID: "SYS", EquipmentTypeID: "EQ"},
			{ID: "PMT-ACME-HVAC-FAN01", Name: "Fan belt check", CompanyID: "c1", SystemID: "HVAC", EquipmentTypeID: "FAN-01"},
			{ID: "PMT-BETA-HVAC-FAN01", Name: "Fan belt check", CompanyID: "c2", SystemID: "HVAC", EquipmentTypeID: "FAN-01"},
		},
		Assets: []maintenance.Asset{
			{ID: "as-1", AssetTag: "TAG-100", Name: "Main supply fan", CompanyID: "c1", LocationID: "l1", SystemID: "HVAC", EquipmentTypeID: "FAN-01"},
			{ID: "as-2", AssetTag: "TAG-200", Name: "Backup chiller", CompanyID: "c1", LocationID: "l2", SystemID: "CHW", EquipmentTypeID: "CH-02"},
		},
	}
}

func TestResolve_EmptyCode(t *testing.T) {
	snap := testSnapshot()

	for _, code := range []string{"", "   ", "\t"} {
		out := Resolve(code, maintenance.ScopeFilters{}, snap)
		assert.IsType(t, NotFound{}, out, "code %q", code)
		assert.False(t, out.Terminal(), "NotFound must keep the scanner open")
	}
}

func TestResolve_WorkOrderPrecedence(t *testing.T) {
	snap := testSnapshot()

	// "PMT-001" is both a work order number and a substring of plan
	// "PMT-001-SYS-EQ". The work order must win.
	out := Resolve("PMT-001", maintenance.ScopeFilters{}, snap)

	match, ok := out.(WorkOrderMatch)
	require.True(t, ok, "got %T, want WorkOrderMatch", out)
	assert.Equal(t, "wo-1002", match.WorkOrder.ID)
	assert.True(t, out.Terminal())
}

func TestResolve_WorkOrder(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name    string
		code    string
		filters maintenance.ScopeFilters
		wantID  string
		found   bool
	}{
		{name: "by number", code: "WO-2026-0001", wantID: "wo-1001", found: true},
		{name: "by number case-insensitive", code: "wo-2026-0001", wantID: "wo-1001", found: true},
		{name: "by id exact", code: "wo-2001", wantID: "wo-2001", found: true},
		{name: "id is case-sensitive", code: "WO-1001", found: false},
		{name: "company filter excludes", code: "WO-2026-0002", filters: maintenance.ScopeFilters{CompanyID: "c1"}, found: false},
		{name: "company filter passes", code: "WO-2026-0002", filters: maintenance.ScopeFilters{CompanyID: "c2"}, wantID: "wo-2001", found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resolve(tt.code, tt.filters, snap)
			match, ok := out.(WorkOrderMatch)
			if !tt.found {
				assert.False(t, ok, "got %T, want no WorkOrderMatch", out)
				return
			}
			require.True(t, ok, "got %T, want WorkOrderMatch", out)
			assert.Equal(t, tt.wantID, match.WorkOrder.ID)
		})
	}
}

func TestResolve_PlanBidirectionalSubstring(t *testing.T) {
	snap := testSnapshot()

	// Shorter scan: code is a prefix of the plan id.
	out := Resolve("PMT-ACME-HVAC", maintenance.ScopeFilters{}, snap)
	sel, ok := out.(PlanSelection)
	require.True(t, ok, "got %T, want PlanSelection", out)
	require.Len(t, sel.Plans, 1)
	assert.Equal(t, "PMT-ACME-HVAC-FAN01", sel.Plans[0].ID)

	// Longer scan: plan id is contained in the code (suffix
	// disambiguator appended after the template id).
	out = Resolve("PMT-ACME-HVAC-FAN01-X7", maintenance.ScopeFilters{}, snap)
	sel, ok = out.(PlanSelection)
	require.True(t, ok, "got %T, want PlanSelection", out)
	require.Len(t, sel.Plans, 1)
	assert.Equal(t, "PMT-ACME-HVAC-FAN01", sel.Plans[0].ID)
}

func TestResolve_PlanCaseInsensitive(t *testing.T) {
	snap := testSnapshot()

	out := Resolve("pmt-acme-hvac-fan01", maintenance.ScopeFilters{}, snap)
	sel, ok := out.(PlanSelection)
	require.True(t, ok, "got %T, want PlanSelection", out)
	require.Len(t, sel.Plans, 1)
	assert.Equal(t, "PMT-ACME-HVAC-FAN01", sel.Plans[0].ID)
}

func TestResolve_PlanCompanyFilterExcludes(t *testing.T) {
	snap := testSnapshot()

	// "HVAC-FAN01" substring-matches plans under c1 and c2; the
	// company filter must exclude the other company's plan entirely.
	out := Resolve("HVAC-FAN01", maintenance.ScopeFilters{CompanyID: "c2"}, snap)

	sel, ok := out.(PlanSelection)
	require.True(t, ok, "got %T, want PlanSelection", out)
	require.Len(t, sel.Plans, 1)
	assert.Equal(t, "PMT-BETA-HVAC-FAN01", sel.Plans[0].ID)
}

func TestResolve_PlanMatchLinksAssetBestEffort(t *testing.T) {
	snap := testSnapshot()

	// Scanned payload concatenates an asset tag and a plan id.
	out := Resolve("TAG-100-PMT-ACME-HVAC-FAN01", maintenance.ScopeFilters{}, snap)

	sel, ok := out.(PlanSelection)
	require.True(t, ok, "got %T, want PlanSelection", out)
	require.NotNil(t, sel.Asset, "asset tag embedded in the payload should be linked")
	assert.Equal(t, "as-1", sel.Asset.ID)

	// A plain plan scan has no asset to link; that is not an error.
	out = Resolve("PMT-001-SYS-EQ", maintenance.ScopeFilters{}, snap)
	sel, ok = out.(PlanSelection)
	require.True(t, ok, "got %T, want PlanSelection", out)
	assert.Nil(t, sel.Asset)
}

func TestResolve_AssetWithLinkedPlans(t *testing.T) {
	snap := testSnapshot()

	// TAG-100 matches no plan id, but the asset's structural keys
	// (c1/HVAC/FAN-01) join to PMT-ACME-HVAC-FAN01.
	out := Resolve("TAG-100", maintenance.ScopeFilters{}, snap)

	sel, ok := out.(PlanSelection)
	require.True(t, ok, "got %T, want PlanSelection", out)
	require.NotNil(t, sel.Asset, "asset reached directly must be certain")
	assert.Equal(t, "as-1", sel.Asset.ID)
	require.Len(t, sel.Plans, 1)
	assert.Equal(t, "PMT-ACME-HVAC-FAN01", sel.Plans[0].ID)
}

func TestResolve_AssetWithoutPlans(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name string
		code string
	}{
		{name: "tag exact", code: "TAG-200"},
		{name: "tag case-insensitive", code: "tag-200"},
		{name: "id exact", code: "as-2"},
		{name: "tag contained in code", code: "TAG-200-SUFFIX"},
		{name: "name contains code", code: "backup chiller"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resolve(tt.code, maintenance.ScopeFilters{}, snap)
			match, ok := out.(AssetMatch)
			require.True(t, ok, "got %T, want AssetMatch", out)
			assert.Equal(t, "as-2", match.Asset.ID)
		})
	}
}

func TestResolve_AssetLocationFilter(t *testing.T) {
	snap := testSnapshot()

	out := Resolve("TAG-200", maintenance.ScopeFilters{LocationID: "l1"}, snap)
	assert.IsType(t, NotFound{}, out, "location filter must exclude the asset")

	out = Resolve("TAG-200", maintenance.ScopeFilters{LocationID: "l2"}, snap)
	assert.IsType(t, AssetMatch{}, out)
}

func TestResolve_NotFound(t *testing.T) {
	snap := testSnapshot()

	out := Resolve("ZZZ-does-not-exist", maintenance.ScopeFilters{}, snap)
	assert.IsType(t, NotFound{}, out)
	assert.False(t, out.Terminal())
}

func TestResolve_NumericLookingIDs(t *testing.T) {
	// Ids stored as strings must never be coerced: "007" and "7" are
	// different identifiers.
	snap := maintenance.Snapshot{
		WorkOrders: []maintenance.WorkOrder{{ID: "007", Number: "N-007"}},
	}

	out := Resolve("7", maintenance.ScopeFilters{}, snap)
	assert.IsType(t, NotFound{}, out)

	out = Resolve("007", maintenance.ScopeFilters{}, snap)
	assert.IsType(t, WorkOrderMatch{}, out)
}

func TestResolve_FirstMatchWins(t *testing.T) {
	// Collection order is the tie-break; no sorting or ranking.
	snap := maintenance.Snapshot{
		WorkOrders: []maintenance.WorkOrder{
			{ID: "wo-a", Number: "DUP-1"},
			{ID: "wo-b", Number: "DUP-1"},
		},
	}

	out := Resolve("DUP-1", maintenance.ScopeFilters{}, snap)
	match, ok := out.(WorkOrderMatch)
	require.True(t, ok, "got %T, want WorkOrderMatch", out)
	assert.Equal(t, "wo-a", match.WorkOrder.ID)
}
