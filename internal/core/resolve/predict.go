package resolve

import (
	"fmt"
	"strings"

	"github.com/colonyops/foreman/internal/core/maintenance"
)

// DefaultCompanyCode is the last-resort company segment used when a
// company carries neither a usable short code nor an id.
const DefaultCompanyCode = "FMC"

// PredictPlanCode builds the canonical plan-template identifier prefix
// for the selected organizational dimensions:
//
//	PMT-{companyCode}-{systemID}-{equipmentTypeID without hyphens}
//
// ok is false unless all three dimensions are supplied; callers must
// not display a partial code. The company segment falls back through
// short code → company id → DefaultCompanyCode, skipping a bare "-"
// placeholder, so the emitted segment is never empty. Hyphens are
// stripped from the equipment-type id to match the convention the
// templates were seeded with.
//
// Pure and idempotent. The predicted string doubles as a resolver
// input: scanning it finds every template seeded under these
// dimensions.
func PredictPlanCode(companyID, systemID, equipmentTypeID string, companies []maintenance.Company) (string, bool) {
	if companyID == "" || systemID == "" || equipmentTypeID == "" {
		return "", false
	}

	var company maintenance.Company
	for _, c := range companies {
		if c.ID == companyID {
			company = c
			break
		}
	}

	segment := DefaultCompanyCode
	switch {
	case company.Code != "" && company.Code != "-":
		segment = company.Code
	case company.ID != "":
		segment = company.ID
	}

	equip := strings.ReplaceAll(equipmentTypeID, "-", "")
	return fmt.Sprintf("PMT-%s-%s-%s", segment, systemID, equip), true
}
