// Package styles provides shared lipgloss styles for CLI and TUI
// components.
package styles

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

var (
	mu      sync.RWMutex
	current = themes[DefaultTheme]
)

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the named theme. Unknown names
// fall back to the default theme with ok=false.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	if !ok {
		return themes[DefaultTheme], false
	}
	return p, true
}

// SetTheme switches the active palette.
func SetTheme(p Palette) {
	mu.Lock()
	current = p
	mu.Unlock()
}

// Theme returns the active palette.
func Theme() Palette {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Title styles a view heading.
func Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Theme().Primary)
}

// Subtle styles secondary information.
func Subtle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Theme().Muted)
}

// Highlight styles the selected row or key value.
func Highlight() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Theme().Secondary)
}

// Success styles confirmation messages.
func Success() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Theme().Success)
}

// Warn styles non-fatal notices.
func Warn() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Theme().Warning)
}

// Error styles failure messages.
func Error() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Theme().Error)
}
