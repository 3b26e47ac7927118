package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/k1console/internal/actions"
	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/ui"
)

// MaxMenuItems is the number of actions visible before the menu scrolls.
const MaxMenuItems = 8

// Menu is the kebab action menu overlay. It is opened with a resource and
// its applicable actions, filters them as the user types and asks for
// confirmation before running destructive ones.
type Menu struct {
	theme      *ui.Theme
	translator i18n.Translator
	input      textinput.Model

	resource     k8s.Resource
	all          []actions.MenuAction
	items        []actions.MenuAction
	index        int
	scrollOffset int
	width        int
	open         bool
	confirming   *actions.MenuAction
}

func NewMenu(theme *ui.Theme, t i18n.Translator) *Menu {
	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 64
	return &Menu{theme: theme, translator: t, input: input, width: 60}
}

func (m *Menu) SetTranslator(t i18n.Translator) { m.translator = t }
func (m *Menu) SetWidth(width int)              { m.width = width }
func (m *Menu) IsOpen() bool                    { return m.open }
func (m *Menu) Confirming() bool                { return m.confirming != nil }
func (m *Menu) Resource() k8s.Resource          { return m.resource }

// Items returns the actions currently listed, after filtering.
func (m *Menu) Items() []actions.MenuAction { return m.items }

// Open shows the menu for r. An empty action list leaves it closed.
func (m *Menu) Open(r k8s.Resource, list []actions.MenuAction) bool {
	if len(list) == 0 {
		return false
	}
	m.resource = r
	m.all = list
	m.items = list
	m.index = 0
	m.scrollOffset = 0
	m.confirming = nil
	m.input.SetValue("")
	m.input.Focus()
	m.open = true
	return true
}

func (m *Menu) Close() {
	m.open = false
	m.confirming = nil
	m.input.Blur()
	m.items = nil
	m.all = nil
}

// Selected returns the highlighted action.
func (m *Menu) Selected() (actions.MenuAction, bool) {
	if m.index >= 0 && m.index < len(m.items) {
		return m.items[m.index], true
	}
	return actions.MenuAction{}, false
}

func (m *Menu) navigateUp() {
	if m.index > 0 {
		m.index--
		if m.index < m.scrollOffset {
			m.scrollOffset = m.index
		}
	}
}

func (m *Menu) navigateDown() {
	if m.index < len(m.items)-1 {
		m.index++
		if m.index > m.scrollOffset+MaxMenuItems-1 {
			m.scrollOffset = m.index - MaxMenuItems + 1
		}
	}
}

func (m *Menu) refilter() {
	labels := make([]string, len(m.all))
	for i, a := range m.all {
		labels[i] = a.Title(m.translator)
	}
	m.items = actions.Filter(m.input.Value(), m.all, labels)
	m.index = 0
	m.scrollOffset = 0
}

// Update handles keys while the menu is open. The returned command is the
// selected action's handler once it has been chosen (and confirmed).
func (m *Menu) Update(msg tea.Msg) tea.Cmd {
	if !m.open {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if m.confirming != nil {
		switch key.String() {
		case "y", "Y", "enter":
			action := *m.confirming
			r := m.resource
			m.Close()
			return action.Run(r)
		}
		m.confirming = nil
		return nil
	}

	switch key.String() {
	case "esc":
		m.Close()
		return nil
	case "up", "ctrl+p":
		m.navigateUp()
		return nil
	case "down", "ctrl+n":
		m.navigateDown()
		return nil
	case "enter":
		action, ok := m.Selected()
		if !ok {
			return nil
		}
		return m.choose(action)
	}

	if m.input.Value() == "" {
		if action, ok := m.shortcut(key.String()); ok {
			return m.choose(action)
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return cmd
}

// shortcut finds the listed action bound to key.
func (m *Menu) shortcut(key string) (actions.MenuAction, bool) {
	for _, a := range m.items {
		if a.Shortcut != "" && a.Shortcut == key {
			return a, true
		}
	}
	return actions.MenuAction{}, false
}

// choose runs action, or asks first when it needs confirmation.
func (m *Menu) choose(action actions.MenuAction) tea.Cmd {
	if action.NeedsConfirmation {
		m.confirming = &action
		return nil
	}
	r := m.resource
	m.Close()
	return action.Run(r)
}

func (m *Menu) View() string {
	if !m.open {
		return ""
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1).
		Width(m.width)

	title := m.theme.Heading().Render(m.resource.Kind + " " + m.resource.Key())

	if m.confirming != nil {
		action := *m.confirming
		action.Label = action.Title(m.translator)
		warn := lipgloss.NewStyle().Foreground(m.theme.Warning).Bold(true).
			Render(actions.Confirmation(action, m.resource))
		hint := "y/n"
		if m.translator != nil {
			hint = m.translator.T("action.confirm")
		}
		return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", warn, hint))
	}

	lines := []string{title, m.input.View()}
	end := min(m.scrollOffset+MaxMenuItems, len(m.items))

	labelWidth := 0
	for i := m.scrollOffset; i < end; i++ {
		labelWidth = max(labelWidth, lipgloss.Width(m.items[i].Title(m.translator)))
	}

	shortcut := lipgloss.NewStyle().Foreground(m.theme.Muted)
	selected := lipgloss.NewStyle().Foreground(m.theme.Background).Background(m.theme.Primary).Bold(true)
	for i := m.scrollOffset; i < end; i++ {
		a := m.items[i]
		label := a.Title(m.translator)
		text := label + strings.Repeat(" ", labelWidth-lipgloss.Width(label)+2) + a.Description
		if a.Shortcut != "" {
			text += "  " + shortcut.Render(a.Shortcut)
		}
		if i == m.index {
			lines = append(lines, selected.Render("▶ "+text))
		} else {
			lines = append(lines, "  "+text)
		}
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
