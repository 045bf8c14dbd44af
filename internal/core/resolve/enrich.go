package resolve

import (
	"strings"

	"github.com/colonyops/foreman/internal/core/maintenance"
)

// FindLinkedAsset scans assets for one whose tag or id is contained
// within rawCode, constrained by the scope filters when set. Returns
// the first match in collection order, or nil when nothing matches.
//
// Intentionally permissive: a directly scanned plan payload may be an
// asset tag with a plan suffix appended, so containment rather than
// equality is the right test here. Absence of a match is a normal
// result, not an error.
func FindLinkedAsset(rawCode string, filters maintenance.ScopeFilters, assets []maintenance.Asset) *maintenance.Asset {
	code := strings.TrimSpace(rawCode)
	if code == "" {
		return nil
	}
	lower := strings.ToLower(code)

	for i := range assets {
		a := assets[i]
		if filters.CompanyID != "" && a.CompanyID != filters.CompanyID {
			continue
		}
		if filters.LocationID != "" && a.LocationID != filters.LocationID {
			continue
		}
		if a.AssetTag != "" && strings.Contains(lower, strings.ToLower(a.AssetTag)) {
			return &a
		}
		if a.ID != "" && strings.Contains(code, a.ID) {
			return &a
		}
	}
	return nil
}

// PlansForAsset returns every plan whose company, system, and
// equipment-type keys all equal the asset's, in source collection
// order. This is a structural join on exact key equality, not a text
// match; no ranking is applied.
func PlansForAsset(asset maintenance.Asset, plans []maintenance.MaintenancePlan) []maintenance.MaintenancePlan {
	var matched []maintenance.MaintenancePlan
	for _, p := range plans {
		if p.CompanyID == asset.CompanyID &&
			p.SystemID == asset.SystemID &&
			p.EquipmentTypeID == asset.EquipmentTypeID {
			matched = append(matched, p)
		}
	}
	return matched
}
