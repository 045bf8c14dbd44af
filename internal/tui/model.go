// Package tui implements the interactive scanner: type or scan a
// code, confirm a plan selection, generate work orders.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/foreman/internal/core/maintenance"
	"github.com/colonyops/foreman/internal/foreman"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateScanning UIState = iota
	stateSelecting
	stateGenerating
	stateResult
	stateAsset
	stateWorkOrder
)

// keyMap defines the TUI keybindings.
type keyMap struct {
	Submit       key.Binding
	Toggle       key.Binding
	All          key.Binding
	None         key.Binding
	Up           key.Binding
	Down         key.Binding
	Back         key.Binding
	Refresh      key.Binding
	CycleCompany key.Binding
	CycleSystem  key.Binding
	CycleEquip   key.Binding
	UsePredicted key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Toggle:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		All:          key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		None:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "select none")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Refresh:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh data")),
		CycleCompany: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "cycle company")),
		CycleSystem:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "cycle system")),
		CycleEquip:   key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "cycle equipment type")),
		UsePredicted: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "search predicted code")),
		Quit:         key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// Model is the root bubbletea model.
type Model struct {
	app     *foreman.App
	log     zerolog.Logger
	keys    keyMap
	filters maintenance.ScopeFilters

	state   UIState
	input   textinput.Model
	spinner spinner.Model
	width   int
	height  int

	snap    maintenance.Snapshot
	loaded  bool
	notice  string // non-terminal "no match" or error notice on the scan view
	lastErr string

	// predicted-code dimensions, cycled on the scan view. -1 is unset.
	companyIdx int
	systemIdx  int
	equipIdx   int

	// plan selection state
	scannedCode string
	plans       []maintenance.MaintenancePlan
	linkedAsset *maintenance.Asset
	selected    map[int]bool
	cursor      int

	// terminal outcome views
	asset     maintenance.Asset
	workOrder maintenance.WorkOrder
	result    foreman.GenerateResult
}

// New creates the TUI model. filters is the station scope merged from
// config and flags.
func New(app *foreman.App, filters maintenance.ScopeFilters, log zerolog.Logger) Model {
	input := textinput.New()
	input.Placeholder = "scan or type a code"
	input.CharLimit = 128
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		app:        app,
		log:        log,
		keys:       defaultKeyMap(),
		filters:    filters,
		state:      stateScanning,
		input:      input,
		spinner:    sp,
		companyIdx: -1,
		systemIdx:  -1,
		equipIdx:   -1,
	}
}

// Init loads the first snapshot.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSnapshotCmd(), textinput.Blink)
}
