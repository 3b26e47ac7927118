package ui

import (
	"sort"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme and styles for the TUI
type Theme struct {
	Name string

	// Core colors
	Primary    lipgloss.AdaptiveColor
	Secondary  lipgloss.AdaptiveColor
	Accent     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Error      lipgloss.AdaptiveColor
	Success    lipgloss.AdaptiveColor
	Warning    lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
	Background lipgloss.AdaptiveColor

	// SyntaxStyle is the chroma style used for the YAML tab.
	SyntaxStyle string

	Table     TableStyles
	AppTitle  lipgloss.Style
	Header    lipgloss.Style
	StatusBar lipgloss.Style
}

// TableStyles defines styles for table components
type TableStyles struct {
	Header      lipgloss.Style
	Cell        lipgloss.Style
	SelectedRow lipgloss.Style
}

// ToTableStyles converts Theme.Table to bubbles table.Styles
func (t *Theme) ToTableStyles() table.Styles {
	return table.Styles{
		Header:   t.Table.Header,
		Cell:     t.Table.Cell,
		Selected: t.Table.SelectedRow,
	}
}

// Heading styles a section heading inside a page.
func (t *Theme) Heading() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
}

// Panel styles inline error and empty-state panels.
func (t *Theme) Panel(color lipgloss.AdaptiveColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
}

// finish derives the component styles from the palette.
func (t *Theme) finish(selectedFg, selectedBg lipgloss.Color) *Theme {
	t.Table.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.Primary).
		PaddingLeft(1).
		PaddingRight(1)
	t.Table.Cell = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	t.Table.SelectedRow = lipgloss.NewStyle().Foreground(selectedFg).Background(selectedBg)

	t.AppTitle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	t.Header = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	t.StatusBar = lipgloss.NewStyle().Foreground(t.Muted)
	return t
}

// ThemeCharm returns the default Charm theme
func ThemeCharm() *Theme {
	t := &Theme{Name: "charm", SyntaxStyle: "monokai"}
	t.Primary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	t.Secondary = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"}
	t.Accent = lipgloss.AdaptiveColor{Light: "#F780E2", Dark: "#F780E2"}
	t.Foreground = lipgloss.AdaptiveColor{Light: "235", Dark: "252"}
	t.Muted = lipgloss.AdaptiveColor{Light: "243", Dark: "243"}
	t.Error = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	t.Success = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"}
	t.Warning = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFAA00"}
	t.Border = lipgloss.AdaptiveColor{Light: "240", Dark: "240"}
	t.Background = lipgloss.AdaptiveColor{Light: "254", Dark: "235"}
	return t.finish(lipgloss.Color("229"), lipgloss.Color("57"))
}

// ThemeDracula returns a Dracula-inspired theme
func ThemeDracula() *Theme {
	t := &Theme{Name: "dracula", SyntaxStyle: "dracula"}
	t.Primary = lipgloss.AdaptiveColor{Light: "#bd93f9", Dark: "#bd93f9"}
	t.Secondary = lipgloss.AdaptiveColor{Light: "#8be9fd", Dark: "#8be9fd"}
	t.Accent = lipgloss.AdaptiveColor{Light: "#ff79c6", Dark: "#ff79c6"}
	t.Foreground = lipgloss.AdaptiveColor{Light: "#282a36", Dark: "#f8f8f2"}
	t.Muted = lipgloss.AdaptiveColor{Light: "#6272a4", Dark: "#6272a4"}
	t.Error = lipgloss.AdaptiveColor{Light: "#ff5555", Dark: "#ff5555"}
	t.Success = lipgloss.AdaptiveColor{Light: "#50fa7b", Dark: "#50fa7b"}
	t.Warning = lipgloss.AdaptiveColor{Light: "#f1fa8c", Dark: "#f1fa8c"}
	t.Border = lipgloss.AdaptiveColor{Light: "61", Dark: "61"}
	t.Background = lipgloss.AdaptiveColor{Light: "#f8f8f2", Dark: "#282a36"}
	return t.finish(lipgloss.Color("#f8f8f2"), lipgloss.Color("#44475a"))
}

// ThemeNord returns a Nord-inspired theme
func ThemeNord() *Theme {
	t := &Theme{Name: "nord", SyntaxStyle: "nord"}
	t.Primary = lipgloss.AdaptiveColor{Light: "#5e81ac", Dark: "#88c0d0"}
	t.Secondary = lipgloss.AdaptiveColor{Light: "#81a1c1", Dark: "#81a1c1"}
	t.Accent = lipgloss.AdaptiveColor{Light: "#b48ead", Dark: "#b48ead"}
	t.Foreground = lipgloss.AdaptiveColor{Light: "#2e3440", Dark: "#eceff4"}
	t.Muted = lipgloss.AdaptiveColor{Light: "#4c566a", Dark: "#4c566a"}
	t.Error = lipgloss.AdaptiveColor{Light: "#bf616a", Dark: "#bf616a"}
	t.Success = lipgloss.AdaptiveColor{Light: "#a3be8c", Dark: "#a3be8c"}
	t.Warning = lipgloss.AdaptiveColor{Light: "#ebcb8b", Dark: "#ebcb8b"}
	t.Border = lipgloss.AdaptiveColor{Light: "#d8dee9", Dark: "#3b4252"}
	t.Background = lipgloss.AdaptiveColor{Light: "#eceff4", Dark: "#2e3440"}
	return t.finish(lipgloss.Color("#eceff4"), lipgloss.Color("#434c5e"))
}

// ThemeSolarized returns a Solarized-inspired theme
func ThemeSolarized() *Theme {
	t := &Theme{Name: "solarized", SyntaxStyle: "solarized-dark"}
	t.Primary = lipgloss.AdaptiveColor{Light: "#268bd2", Dark: "#268bd2"}
	t.Secondary = lipgloss.AdaptiveColor{Light: "#2aa198", Dark: "#2aa198"}
	t.Accent = lipgloss.AdaptiveColor{Light: "#d33682", Dark: "#d33682"}
	t.Foreground = lipgloss.AdaptiveColor{Light: "#657b83", Dark: "#839496"}
	t.Muted = lipgloss.AdaptiveColor{Light: "#93a1a1", Dark: "#586e75"}
	t.Error = lipgloss.AdaptiveColor{Light: "#dc322f", Dark: "#dc322f"}
	t.Success = lipgloss.AdaptiveColor{Light: "#859900", Dark: "#859900"}
	t.Warning = lipgloss.AdaptiveColor{Light: "#b58900", Dark: "#b58900"}
	t.Border = lipgloss.AdaptiveColor{Light: "#eee8d5", Dark: "#073642"}
	t.Background = lipgloss.AdaptiveColor{Light: "#fdf6e3", Dark: "#002b36"}
	return t.finish(lipgloss.Color("#fdf6e3"), lipgloss.Color("#268bd2"))
}

var themes = map[string]func() *Theme{
	"charm":     ThemeCharm,
	"dracula":   ThemeDracula,
	"nord":      ThemeNord,
	"solarized": ThemeSolarized,
}

// GetTheme returns the named theme, or charm for unknown names.
func GetTheme(name string) *Theme {
	if fn, ok := themes[name]; ok {
		return fn()
	}
	return ThemeCharm()
}

// AvailableThemes lists theme names in alphabetical order.
func AvailableThemes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
