// Package resolve classifies scanned or typed identifiers against
// in-memory entity snapshots. Everything in this package is pure:
// no I/O, no mutation of the snapshot, deterministic output for a
// given input.
//
// Matching rules: human-readable codes (work order numbers, plan ids,
// asset tags, names) compare case-insensitively; opaque internal ids
// compare exact-case. All comparisons are string comparisons; ids
// that look numeric are never coerced.
package resolve

import (
	"strings"

	"github.com/colonyops/foreman/internal/core/maintenance"
)

// Resolve classifies rawCode into exactly one Outcome, evaluating the
// match kinds in strict precedence order:
//
//  1. work order by number (case-insensitive) or id (exact)
//  2. maintenance plans by bidirectional substring on the plan id
//  3. asset by tag, id, or name, falling through to the plans linked
//     to that asset when any exist
//  4. NotFound
//
// The first branch yielding a non-empty result wins. Scope filters are
// exclusionary: a set filter field must match exactly, an unset field
// matches anything. An empty trimmed code short-circuits to NotFound.
func Resolve(rawCode string, filters maintenance.ScopeFilters, snap maintenance.Snapshot) Outcome {
	code := strings.TrimSpace(rawCode)
	if code == "" {
		return NotFound{}
	}
	lower := strings.ToLower(code)

	for _, wo := range snap.WorkOrders {
		if filters.CompanyID != "" && wo.CompanyID != filters.CompanyID {
			continue
		}
		if strings.EqualFold(wo.Number, code) || wo.ID == code {
			// First match in collection order wins; duplicates are
			// not expected but not rejected either.
			return WorkOrderMatch{WorkOrder: wo}
		}
	}

	// Bidirectional substring: a short scan matches a longer plan id,
	// and a scan with a suffix disambiguator appended after the
	// template id still matches the plan.
	var plans []maintenance.MaintenancePlan
	for _, p := range snap.Plans {
		if filters.CompanyID != "" && p.CompanyID != filters.CompanyID {
			continue
		}
		pid := strings.ToLower(p.ID)
		if strings.Contains(pid, lower) || strings.Contains(lower, pid) {
			plans = append(plans, p)
		}
	}
	if len(plans) > 0 {
		return PlanSelection{
			Plans: plans,
			Asset: FindLinkedAsset(code, filters, snap.Assets),
		}
	}

	for i := range snap.Assets {
		a := snap.Assets[i]
		if filters.CompanyID != "" && a.CompanyID != filters.CompanyID {
			continue
		}
		if filters.LocationID != "" && a.LocationID != filters.LocationID {
			continue
		}
		if !assetMatches(a, code, lower) {
			continue
		}
		if linked := PlansForAsset(a, snap.Plans); len(linked) > 0 {
			return PlanSelection{Plans: linked, Asset: &a}
		}
		return AssetMatch{Asset: a}
	}

	return NotFound{}
}

func assetMatches(a maintenance.Asset, code, lower string) bool {
	switch {
	case a.AssetTag != "" && strings.EqualFold(a.AssetTag, code):
		return true
	case a.ID != "" && a.ID == code:
		return true
	case a.AssetTag != "" && strings.Contains(lower, strings.ToLower(a.AssetTag)):
		return true
	case a.Name != "" && strings.Contains(strings.ToLower(a.Name), lower):
		return true
	}
	return false
}
