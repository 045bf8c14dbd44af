package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/foreman/internal/core/maintenance"
	"github.com/colonyops/foreman/internal/core/resolve"
	"github.com/colonyops/foreman/internal/foreman"
)

// snapshotLoadedMsg carries a freshly loaded entity snapshot.
type snapshotLoadedMsg struct {
	snap maintenance.Snapshot
	err  error
}

// generatedMsg carries the outcome of a generation batch.
type generatedMsg struct {
	res foreman.GenerateResult
	err error
}

func (m Model) loadSnapshotCmd() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		snap, err := app.Snapshots.Load(context.Background())
		return snapshotLoadedMsg{snap: snap, err: err}
	}
}

func (m Model) generateCmd(planIDs []string, gctx foreman.GenerateContext) tea.Cmd {
	app := m.app
	snap := m.snap
	return func() tea.Msg {
		res, err := app.GenerateBatch(context.Background(), planIDs, gctx, snap)
		return generatedMsg{res: res, err: err}
	}
}

// Update routes messages by state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotLoadedMsg:
		if msg.err != nil {
			m.notice = "data load failed: " + msg.err.Error()
			return m, nil
		}
		m.snap = msg.snap
		m.loaded = true
		return m, nil

	case generatedMsg:
		m.result = msg.res
		if msg.err != nil {
			m.lastErr = msg.err.Error()
		} else {
			m.lastErr = ""
		}
		m.state = stateResult
		// Merge created work orders so a follow-up scan can find them.
		m.snap.WorkOrders = append(m.snap.WorkOrders, msg.res.WorkOrders...)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && m.state != stateScanning {
			return m, tea.Quit
		}
		switch m.state {
		case stateScanning:
			return m.updateScanning(msg)
		case stateSelecting:
			return m.updateSelecting(msg)
		case stateGenerating:
			// No cancellation of an in-flight batch; ignore keys.
			return m, nil
		case stateResult, stateAsset, stateWorkOrder:
			return m.updateTerminalView(msg)
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case stateScanning:
		m.input, cmd = m.input.Update(msg)
	case stateGenerating:
		m.spinner, cmd = m.spinner.Update(msg)
	}
	return m, cmd
}

func (m Model) updateScanning(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		m.notice = "refreshing data..."
		return m, m.loadSnapshotCmd()

	case key.Matches(msg, m.keys.CycleCompany):
		m.companyIdx = cycleIndex(m.companyIdx, len(m.companyIDs()))
		return m, nil

	case key.Matches(msg, m.keys.CycleSystem):
		m.systemIdx = cycleIndex(m.systemIdx, len(m.systemIDs()))
		return m, nil

	case key.Matches(msg, m.keys.CycleEquip):
		m.equipIdx = cycleIndex(m.equipIdx, len(m.equipTypeIDs()))
		return m, nil

	case key.Matches(msg, m.keys.UsePredicted):
		if code, ok := m.predictedCode(); ok {
			m.input.SetValue(code)
			return m.resolveInput()
		}
		m.notice = "pick company, system, and equipment type first"
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.resolveInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// resolveInput runs the resolution cascade on the typed code. Every
// terminal outcome leaves the scanning state; NotFound keeps the
// prompt open with a notice.
func (m Model) resolveInput() (tea.Model, tea.Cmd) {
	code := m.input.Value()
	outcome := resolve.Resolve(code, m.filters, m.snap)

	switch o := outcome.(type) {
	case resolve.WorkOrderMatch:
		m.workOrder = o.WorkOrder
		m.state = stateWorkOrder
		m.notice = ""

	case resolve.PlanSelection:
		m.scannedCode = code
		m.plans = o.Plans
		m.linkedAsset = o.Asset
		m.selected = make(map[int]bool, len(o.Plans))
		for i := range o.Plans {
			m.selected[i] = true
		}
		m.cursor = 0
		m.state = stateSelecting
		m.notice = ""

	case resolve.AssetMatch:
		m.asset = o.Asset
		m.state = stateAsset
		m.notice = ""

	case resolve.NotFound:
		m.notice = "no match for " + strconv.Quote(code) + ", check the code and try again"
	}

	m.input.SetValue("")
	return m, nil
}

func (m Model) updateSelecting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = stateScanning
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.plans)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		m.selected[m.cursor] = !m.selected[m.cursor]

	case key.Matches(msg, m.keys.All):
		for i := range m.plans {
			m.selected[i] = true
		}

	case key.Matches(msg, m.keys.None):
		for i := range m.plans {
			m.selected[i] = false
		}

	case key.Matches(msg, m.keys.Submit):
		planIDs := m.selectedPlanIDs()
		if len(planIDs) == 0 {
			// Empty confirmation is a no-op, back to scanning.
			m.state = stateScanning
			return m, nil
		}
		m.state = stateGenerating
		gctx := foreman.GenerateContext{
			Asset:       m.linkedAsset,
			Filters:     m.filters,
			ScannedCode: m.scannedCode,
		}
		return m, tea.Batch(m.spinner.Tick, m.generateCmd(planIDs, gctx))
	}

	return m, nil
}

func (m Model) selectedPlanIDs() []string {
	var ids []string
	for i, plan := range m.plans {
		if m.selected[i] {
			ids = append(ids, plan.ID)
		}
	}
	return ids
}

func (m Model) updateTerminalView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Submit):
		m.state = stateScanning
		m.input.Focus()
		return m, nil
	}
	return m, nil
}
