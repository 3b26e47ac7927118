// Package app is the root model: a stack of pages with the ServiceAccount
// list at the bottom, the action menu overlay and the status line.
package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/k1console/internal/actions"
	"github.com/renato0307/k1console/internal/components"
	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/logging"
	"github.com/renato0307/k1console/internal/messages"
	"github.com/renato0307/k1console/internal/pages"
	"github.com/renato0307/k1console/internal/serviceaccounts"
	"github.com/renato0307/k1console/internal/types"
	"github.com/renato0307/k1console/internal/ui"
)

// AppName is shown at the start of the header.
const AppName = "k1console"

// MaxNavigationHistorySize caps the page stack. Opening a page beyond it
// closes the oldest page above the root list.
const MaxNavigationHistorySize = 10

// Page is what the app needs from list and details pages.
type Page interface {
	tea.Model
	Title() string
	HelpText() string
	SetSize(width, height int)
	SetTranslator(t i18n.Translator)
	CapturesInput() bool
	Close()
}

// Options configure the app.
type Options struct {
	Backend   k8s.Backend
	Theme     *ui.Theme
	Bundle    *i18n.Bundle
	Locale    string
	Namespace string
	Clipboard actions.ClipboardWriter
	Now       func() time.Time
}

// Model is the root tea.Model.
type Model struct {
	opts       Options
	translator i18n.Translator
	deps       serviceaccounts.Deps

	root      *pages.ListPage
	stack     []Page
	namespace string

	header *components.Header
	layout *components.Layout
	status *components.UserMessage
	menu   *components.Menu

	width  int
	height int
}

// New builds the app with the ServiceAccount list as root page.
func New(opts Options) *Model {
	translator := opts.Bundle.Translator(opts.Locale)
	registry := actions.NewRegistry(
		actions.Common(actions.Deps{Mutator: opts.Backend, Clipboard: opts.Clipboard}),
		serviceaccounts.Provider(opts.Clipboard),
	)
	deps := serviceaccounts.Deps{
		Source:    opts.Backend,
		Formatter: opts.Backend,
		Registry:  registry,
		Clipboard: opts.Clipboard,
		Theme:     opts.Theme,
		Now:       opts.Now,
	}

	m := &Model{
		opts:       opts,
		translator: translator,
		deps:       deps,
		namespace:  opts.Namespace,
		header:     components.NewHeader(opts.Theme, AppName),
		layout:     components.NewLayout(opts.Theme),
		status:     components.NewUserMessage(opts.Theme),
		menu:       components.NewMenu(opts.Theme, translator),
		width:      80,
		height:     24,
	}
	m.root = serviceaccounts.NewListPage(deps, translator, opts.Namespace)
	m.stack = []Page{m.root}
	m.header.SetContext(opts.Backend.Context())
	m.header.SetLocale(translator.Locale())
	m.resize()
	return m
}

// Top returns the visible page.
func (m *Model) Top() Page {
	return m.stack[len(m.stack)-1]
}

// Depth returns the number of stacked pages.
func (m *Model) Depth() int {
	return len(m.stack)
}

// Locale returns the active locale.
func (m *Model) Locale() string {
	return m.translator.Locale()
}

// MenuOpen reports whether the action menu is showing.
func (m *Model) MenuOpen() bool {
	return m.menu.IsOpen()
}

func (m *Model) resize() {
	m.layout.SetSize(m.width, m.height)
	m.header.SetWidth(m.width)
	m.status.SetWidth(m.width)
	m.menu.SetWidth(min(m.width-4, 70))
	for _, p := range m.stack {
		p.SetSize(m.width, m.layout.BodyHeight())
	}
}

func (m *Model) Init() tea.Cmd {
	return m.root.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case pages.OpenDetailsMsg:
		return m, m.openDetails(msg)

	case actions.OpenMenuMsg:
		if !m.menu.Open(msg.Resource, msg.Actions) {
			return m, messages.InfoCmd("No actions available for %s %s", msg.Resource.Kind, msg.Resource.Key())
		}
		return m, nil

	case pages.CreateRequestedMsg:
		return m, messages.InfoCmd("Creating %s is not supported here", msg.Kind)

	case types.StatusMsg:
		return m, m.status.Show(msg)

	case types.ClearStatusMsg:
		m.status.Clear(msg.MessageID)
		return m, nil
	}

	// watch results and spinner ticks: every page filters its own
	cmds := []tea.Cmd{m.status.Update(msg)}
	for _, p := range m.stack {
		_, cmd := p.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.menu.IsOpen() {
		return m.updateMenu(msg)
	}

	top := m.Top()
	if top.CapturesInput() {
		_, cmd := top.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "esc":
		if len(m.stack) > 1 {
			m.pop()
			return nil
		}
	case "L":
		m.switchLocale()
		return nil
	case "N":
		if top == Page(m.root) {
			return m.toggleNamespace()
		}
	}

	_, cmd := top.Update(msg)
	return cmd
}

// updateMenu routes a key to the open menu. A confirmed action shows a
// spinner until its outcome replaces it.
func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	pending, confirming := m.menu.Resource(), m.menu.Confirming()
	cmd := m.menu.Update(msg)
	if !confirming || cmd == nil || m.menu.IsOpen() {
		return cmd
	}
	loading := m.status.Show(types.LoadingMsg(fmt.Sprintf("Working on %s %s…", pending.Kind, pending.Key())))
	return tea.Batch(loading, cmd)
}

func (m *Model) openDetails(msg pages.OpenDetailsMsg) tea.Cmd {
	if msg.Kind != k8s.KindServiceAccount {
		logging.Debug("no details page for kind", "kind", msg.Kind)
		return nil
	}
	page := serviceaccounts.NewDetailsPage(m.deps, m.translator, msg.Namespace, msg.Name)
	if len(m.stack) >= MaxNavigationHistorySize {
		m.stack[1].Close()
		m.stack = append(m.stack[:1], m.stack[2:]...)
	}
	m.stack = append(m.stack, page)
	page.SetSize(m.width, m.layout.BodyHeight())
	return page.Init()
}

// pop closes the top page. Messages still in flight for it are dropped by
// the page itself.
func (m *Model) pop() {
	top := m.Top()
	top.Close()
	m.stack = m.stack[:len(m.stack)-1]
}

func (m *Model) switchLocale() {
	next := m.opts.Bundle.Next(m.translator.Locale())
	m.translator = m.opts.Bundle.Translator(next)
	for _, p := range m.stack {
		p.SetTranslator(m.translator)
	}
	m.menu.SetTranslator(m.translator)
	m.header.SetLocale(next)
	logging.Info("locale switched", "locale", next)
}

// toggleNamespace flips the list between the configured namespace and all
// namespaces.
func (m *Model) toggleNamespace() tea.Cmd {
	target := m.opts.Namespace
	if m.namespace != "" {
		target = ""
	}
	if target == m.namespace {
		return nil
	}
	m.namespace = target
	return m.root.SetNamespace(target)
}

func (m *Model) quit() tea.Cmd {
	for i := len(m.stack) - 1; i >= 0; i-- {
		m.stack[i].Close()
	}
	return tea.Quit
}

func (m *Model) View() string {
	top := m.Top()

	m.header.SetTitle(top.Title())
	m.header.SetNamespace(m.namespace)
	m.header.SetItemCount(-1)
	if top == Page(m.root) && m.root.Phase() == pages.PhaseLoaded {
		m.header.SetItemCount(m.root.Visible().Len())
	}

	body := top.View()
	if m.menu.IsOpen() {
		body = lipgloss.Place(m.width, m.layout.BodyHeight(), lipgloss.Center, lipgloss.Center, m.menu.View())
	}

	help := []string{top.HelpText()}
	if top == Page(m.root) {
		help = append(help, m.translator.T("help.namespace"))
	}
	help = append(help, m.translator.T("help.language"), m.translator.T("help.quit"))

	return m.layout.Render(m.header.View(), body, strings.Join(help, " • "), m.status.View())
}
