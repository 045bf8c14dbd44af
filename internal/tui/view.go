package tui

import (
	"fmt"
	"strings"

	"github.com/colonyops/foreman/internal/core/maintenance"
	"github.com/colonyops/foreman/internal/core/styles"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.Title().Render("foreman"))
	b.WriteString("\n\n")

	switch m.state {
	case stateScanning:
		m.viewScanning(&b)
	case stateSelecting:
		m.viewSelecting(&b)
	case stateGenerating:
		m.viewGenerating(&b)
	case stateResult:
		m.viewResult(&b)
	case stateAsset:
		m.viewAsset(&b)
	case stateWorkOrder:
		m.viewWorkOrder(&b)
	}

	return b.String()
}

func (m Model) viewScanning(b *strings.Builder) {
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString(styles.Subtle().Render("loading data..."))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(styles.Warn().Render(m.notice))
		b.WriteString("\n")
	}

	m.viewPrediction(b)

	counts := fmt.Sprintf("%d work orders, %d plans, %d assets",
		len(m.snap.WorkOrders), len(m.snap.Plans), len(m.snap.Assets))
	b.WriteString(styles.Subtle().Render(counts))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtle().Render("enter submit · ctrl+o/s/e cycle dims · ctrl+p search predicted · ctrl+r refresh · ctrl+c quit"))
}

// viewPrediction renders the cycled dimensions and, once all three are
// set, the predicted template code with its search action.
func (m Model) viewPrediction(b *strings.Builder) {
	dims := fmt.Sprintf("company: %s  system: %s  equipment: %s",
		orDash(pick(m.companyIDs(), m.companyIdx)),
		orDash(pick(m.systemIDs(), m.systemIdx)),
		orDash(pick(m.equipTypeIDs(), m.equipIdx)))
	b.WriteString(styles.Subtle().Render(dims))
	b.WriteString("\n")

	if code, ok := m.predictedCode(); ok {
		b.WriteString("predicted: ")
		b.WriteString(styles.Highlight().Render(code))
		b.WriteString(styles.Subtle().Render("  (ctrl+p to search)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func (m Model) viewSelecting(b *strings.Builder) {
	b.WriteString(styles.Highlight().Render("select plans for " + m.scannedCode))
	b.WriteString("\n")
	if m.linkedAsset != nil {
		b.WriteString(styles.Subtle().Render("asset: " + m.linkedAsset.AssetTag + " " + m.linkedAsset.Name))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, plan := range m.plans {
		cursor := "  "
		if i == m.cursor {
			cursor = styles.Highlight().Render("> ")
		}
		check := "[ ]"
		if m.selected[i] {
			check = "[x]"
		}
		line := fmt.Sprintf("%s%s %s  %s", cursor, check, plan.ID, plan.Name)
		if plan.FrequencyType != "" {
			line += styles.Subtle().Render(fmt.Sprintf("  (%s)", plan.FrequencyType))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Subtle().Render("space toggle · a all · n none · enter generate · esc back"))
}

func (m Model) viewGenerating(b *strings.Builder) {
	b.WriteString(m.spinner.View())
	b.WriteString(" generating work orders...")
}

func (m Model) viewResult(b *strings.Builder) {
	if m.lastErr != "" {
		b.WriteString(styles.Error().Render("generation failed"))
		b.WriteString("\n")
		b.WriteString(m.lastErr)
		b.WriteString("\n\n")
	}

	if len(m.result.WorkOrders) > 0 {
		b.WriteString(styles.Success().Render(fmt.Sprintf("created %d work orders", len(m.result.WorkOrders))))
		b.WriteString("\n\n")
		for _, wo := range m.result.WorkOrders {
			b.WriteString(fmt.Sprintf("  %s  %s\n", styles.Highlight().Render(wo.Number), wo.Title))
		}
	} else if m.lastErr == "" {
		b.WriteString(styles.Subtle().Render("nothing to generate"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Subtle().Render("esc back to scanning"))
}

func (m Model) viewAsset(b *strings.Builder) {
	a := m.asset
	b.WriteString(styles.Highlight().Render(a.AssetTag + "  " + a.Name))
	b.WriteString("\n\n")
	writeField(b, "id", a.ID)
	writeField(b, "company", a.CompanyID)
	writeField(b, "location", a.LocationID)
	writeField(b, "system", a.SystemID)
	writeField(b, "equipment type", a.EquipmentTypeID)
	if a.Status != "" {
		writeField(b, "status", a.Status)
	}
	if a.Condition != "" {
		writeField(b, "condition", a.Condition)
	}
	b.WriteString("\n")
	b.WriteString(styles.Subtle().Render("no maintenance plans cover this asset"))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtle().Render("esc back to scanning"))
}

func (m Model) viewWorkOrder(b *strings.Builder) {
	wo := m.workOrder
	b.WriteString(styles.Highlight().Render(wo.Number + "  " + wo.Title))
	b.WriteString("\n\n")
	writeField(b, "status", wo.Status)
	writeField(b, "priority", wo.Priority)
	writeField(b, "type", wo.WorkType)
	if wo.AssetID != "" && wo.AssetID != maintenance.AssetUnresolved {
		writeField(b, "asset", wo.AssetID)
	}
	if wo.Description != "" {
		b.WriteString("\n")
		b.WriteString(wo.Description)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Subtle().Render("esc back to scanning"))
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(styles.Subtle().Render(fmt.Sprintf("%-15s", label)))
	b.WriteString(value)
	b.WriteString("\n")
}
