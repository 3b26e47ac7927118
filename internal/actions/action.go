// Package actions holds the kebab-menu actions shared by table rows and the
// details page.
package actions

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
)

// Handler runs an action against a resource.
type Handler func(r k8s.Resource) tea.Cmd

// MenuAction is one entry of a resource menu. Applicable is evaluated each
// time the menu is built, so it sees the resource as it is at that moment;
// nil means always applicable.
type MenuAction struct {
	ID          string
	Label       string
	LabelKey    string
	Description string
	// Shortcut selects the action while the menu filter is empty.
	Shortcut string

	NeedsConfirmation bool
	Applicable        func(k8s.Resource) bool
	Handler           Handler
}

// Title returns the translated label, falling back to Label.
func (a MenuAction) Title(t i18n.Translator) string {
	if a.LabelKey != "" && t != nil {
		if text := t.T(a.LabelKey); text != a.LabelKey {
			return text
		}
	}
	return a.Label
}

// AppliesTo reports whether the action should be offered for r.
func (a MenuAction) AppliesTo(r k8s.Resource) bool {
	return a.Applicable == nil || a.Applicable(r)
}

// Run returns the handler's command, nil when there is no handler.
func (a MenuAction) Run(r k8s.Resource) tea.Cmd {
	if a.Handler == nil {
		return nil
	}
	return a.Handler(r)
}

// OpenMenuMsg asks the app to show the action menu for a resource.
type OpenMenuMsg struct {
	Resource k8s.Resource
	Actions  []MenuAction
}

// OpenMenu returns a command emitting OpenMenuMsg.
func OpenMenu(r k8s.Resource, list []MenuAction) tea.Cmd {
	return func() tea.Msg {
		return OpenMenuMsg{Resource: r, Actions: list}
	}
}

// Provider contributes actions for one kind.
type Provider struct {
	Kind    string
	Actions []MenuAction
}
