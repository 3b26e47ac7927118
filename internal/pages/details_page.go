package pages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/k1console/internal/actions"
	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/logging"
	"github.com/renato0307/k1console/internal/ui"
)

// Section is tab content with a lifecycle of its own, such as an embedded
// list page. Mount is called once the resource has loaded, Refresh on every
// later update and Close when the details page closes or the resource
// disappears.
type Section interface {
	Mount(r k8s.Resource) tea.Cmd
	Refresh(r k8s.Resource) tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	SetTranslator(t i18n.Translator)
	Close()
}

// inputCapturer is implemented by sections that sometimes own the keyboard.
type inputCapturer interface {
	CapturesInput() bool
}

// Tab is one page of the details view: either a render function shown in a
// scrollable viewport or a Section.
type Tab struct {
	Name    string
	NameKey string
	Render  func(r k8s.Resource, width int) string
	Section Section
}

func (t Tab) title(tr i18n.Translator) string {
	if t.NameKey != "" {
		return tr.T(t.NameKey)
	}
	return t.Name
}

// DetailsOptions configure a DetailsPage.
type DetailsOptions struct {
	Kind      string
	Namespace string
	Name      string
	Tabs      []Tab
	Actions   func(r k8s.Resource) []actions.MenuAction
}

// fetchedMsg carries the result of Source.FetchOne.
type fetchedMsg struct {
	stamp
	resource k8s.Resource
	err      error
}

// DetailsPage shows one resource and follows it until it is deleted.
type DetailsPage struct {
	opts       DetailsOptions
	source     k8s.Source
	translator i18n.Translator
	theme      *ui.Theme

	spinner  spinner.Model
	viewport viewport.Model

	life      lifecycle
	phase     Phase
	err       error
	item      *k8s.Resource
	watch     *k8s.Watch
	activeTab int
	mounted   bool

	width  int
	height int
}

func NewDetailsPage(src k8s.Source, t i18n.Translator, theme *ui.Theme, opts DetailsOptions) *DetailsPage {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return &DetailsPage{
		opts:       opts,
		source:     src,
		translator: t,
		theme:      theme,
		spinner:    s,
		viewport:   viewport.New(80, 20),
		life:       newLifecycle(),
		width:      80,
		height:     24,
	}
}

func (p *DetailsPage) log() *logging.Logger {
	return logging.Component("detailspage").With("kind", p.opts.Kind, "key", p.key(), "page", p.life.id)
}

func (p *DetailsPage) key() string {
	return k8s.ObjectKey(p.opts.Namespace, p.opts.Name)
}

func (p *DetailsPage) ID() uint64     { return p.life.id }
func (p *DetailsPage) Kind() string   { return p.opts.Kind }
func (p *DetailsPage) Phase() Phase   { return p.phase }
func (p *DetailsPage) Err() error     { return p.err }
func (p *DetailsPage) ActiveTab() int { return p.activeTab }
func (p *DetailsPage) Tabs() []Tab    { return p.opts.Tabs }
func (p *DetailsPage) Disposed() bool { return p.life.disposed }

// Item returns the loaded resource.
func (p *DetailsPage) Item() (k8s.Resource, bool) {
	if p.item == nil {
		return k8s.Resource{}, false
	}
	return *p.item, true
}

// Title names the resource being shown.
func (p *DetailsPage) Title() string {
	return p.opts.Kind + " " + p.key()
}

// CapturesInput reports whether the active section owns the keyboard.
func (p *DetailsPage) CapturesInput() bool {
	if sec := p.activeSection(); sec != nil {
		if c, ok := sec.(inputCapturer); ok {
			return c.CapturesInput()
		}
	}
	return false
}

func (p *DetailsPage) Init() tea.Cmd {
	return p.Reload()
}

// Reload fetches the resource again. It is a no-op once the resource is
// known to be gone.
func (p *DetailsPage) Reload() tea.Cmd {
	if p.life.disposed || p.phase == PhaseNotFound {
		return nil
	}
	ctx, s := p.life.restart()
	p.phase = PhaseLoading
	p.err = nil
	p.watch = nil

	src, kind, ns, name := p.source, p.opts.Kind, p.opts.Namespace, p.opts.Name
	p.log().Debug("fetching", "gen", s.gen)
	fetch := func() tea.Msg {
		r, err := src.FetchOne(ctx, kind, ns, name)
		return fetchedMsg{stamp: s, resource: r, err: err}
	}
	return tea.Batch(p.spinner.Tick, fetch)
}

// SetTab activates tab i without refetching.
func (p *DetailsPage) SetTab(i int) {
	if i < 0 || i >= len(p.opts.Tabs) || i == p.activeTab {
		return
	}
	p.activeTab = i
	p.renderTab()
	p.viewport.GotoTop()
}

func (p *DetailsPage) SetTranslator(t i18n.Translator) {
	p.translator = t
	for _, tab := range p.opts.Tabs {
		if tab.Section != nil {
			tab.Section.SetTranslator(t)
		}
	}
	p.renderTab()
}

func (p *DetailsPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	// title and tab bar
	content := max(height-2, 1)
	p.viewport.Width = width
	p.viewport.Height = content
	for _, tab := range p.opts.Tabs {
		if tab.Section != nil {
			tab.Section.SetSize(width, content)
		}
	}
	p.renderTab()
}

// Close cancels the subscription and closes every section.
func (p *DetailsPage) Close() {
	if p.life.disposed {
		return
	}
	p.log().Debug("closing")
	p.life.dispose()
	p.closeSections()
}

func (p *DetailsPage) closeSections() {
	if !p.mounted {
		return
	}
	for _, tab := range p.opts.Tabs {
		if tab.Section != nil {
			tab.Section.Close()
		}
	}
	p.mounted = false
}

func (p *DetailsPage) activeSection() Section {
	if p.activeTab < len(p.opts.Tabs) {
		return p.opts.Tabs[p.activeTab].Section
	}
	return nil
}

func (p *DetailsPage) renderTab() {
	if p.item == nil || p.activeTab >= len(p.opts.Tabs) {
		return
	}
	if render := p.opts.Tabs[p.activeTab].Render; render != nil {
		p.viewport.SetContent(render(*p.item, p.width))
	}
}

// setItem stores r and lets the sections catch up.
func (p *DetailsPage) setItem(r k8s.Resource) tea.Cmd {
	p.item = &r
	p.phase = PhaseLoaded
	p.renderTab()

	var cmds []tea.Cmd
	for _, tab := range p.opts.Tabs {
		if tab.Section == nil {
			continue
		}
		if p.mounted {
			cmds = append(cmds, tab.Section.Refresh(r))
		} else {
			cmds = append(cmds, tab.Section.Mount(r))
		}
	}
	p.mounted = true
	return tea.Batch(cmds...)
}

func (p *DetailsPage) notFound() {
	p.life.stop()
	p.phase = PhaseNotFound
	p.err = nil
	p.closeSections()
	p.log().Info("resource no longer exists")
}

func (p *DetailsPage) fail(err error) {
	p.life.stop()
	p.phase = PhaseError
	p.err = err
	p.log().Warn("details failed", "error", err)
}

func (p *DetailsPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// results of pages embedded in a section
	if s, ok := msg.(stamped); ok && s.owner() != p.life.id {
		return p, p.forward(msg)
	}

	switch msg := msg.(type) {
	case fetchedMsg:
		if !p.life.current(msg.stamp) {
			return p, nil
		}
		if errors.Is(msg.err, k8s.ErrNotFound) {
			p.notFound()
			return p, nil
		}
		if msg.err != nil {
			p.fail(msg.err)
			return p, nil
		}
		cmd := p.setItem(msg.resource)
		q := k8s.Query{Kind: p.opts.Kind, Namespace: p.opts.Namespace, Name: p.opts.Name}
		return p, tea.Batch(cmd, subscribe(p.life.ctx, p.source, q, msg.stamp))

	case subscribedMsg:
		if !p.life.current(msg.stamp) {
			return p, nil
		}
		if msg.err != nil {
			p.fail(msg.err)
			return p, nil
		}
		p.watch = msg.watch
		var current *k8s.Resource
		for i := range msg.watch.Initial {
			if msg.watch.Initial[i].Key() == p.key() {
				current = &msg.watch.Initial[i]
			}
		}
		if current == nil {
			p.notFound()
			return p, nil
		}
		var cmd tea.Cmd
		if p.item == nil || !sameSnapshot(*p.item, *current) {
			cmd = p.setItem(*current)
		}
		return p, tea.Batch(cmd, waitForEvents(p.life.ctx, msg.watch, msg.stamp))

	case eventsMsg:
		if !p.life.current(msg.stamp) {
			return p, nil
		}
		var cmds []tea.Cmd
		for _, ev := range msg.events {
			if ev.Resource.Key() != p.key() {
				continue
			}
			if ev.Type == k8s.EventDeleted {
				p.notFound()
				return p, nil
			}
			if p.item == nil || !sameSnapshot(*p.item, ev.Resource) {
				cmds = append(cmds, p.setItem(ev.Resource))
			}
		}
		if msg.closed {
			err := msg.err
			if err == nil {
				err = errWatchClosed
			}
			p.fail(err)
			return p, tea.Batch(cmds...)
		}
		cmds = append(cmds, waitForEvents(p.life.ctx, p.watch, msg.stamp))
		return p, tea.Batch(cmds...)

	case spinner.TickMsg:
		// ticks of the sections' own spinners go through to them
		if p.phase == PhaseLoading && msg.ID == p.spinner.ID() {
			var cmd tea.Cmd
			p.spinner, cmd = p.spinner.Update(msg)
			return p, cmd
		}

	case tea.KeyMsg:
		return p, p.handleKey(msg)
	}

	return p, p.forward(msg)
}

// forward passes other messages to the sections, whose embedded pages
// filter them by their own stamps.
func (p *DetailsPage) forward(msg tea.Msg) tea.Cmd {
	if !p.mounted {
		return nil
	}
	var cmds []tea.Cmd
	for _, tab := range p.opts.Tabs {
		if tab.Section != nil {
			cmds = append(cmds, tab.Section.Update(msg))
		}
	}
	return tea.Batch(cmds...)
}

func (p *DetailsPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.CapturesInput() {
		return p.activeSection().Update(msg)
	}

	switch key := msg.String(); key {
	case "r":
		if p.phase == PhaseError {
			return p.Reload()
		}
		return nil
	case "tab":
		if n := len(p.opts.Tabs); n > 0 {
			p.SetTab((p.activeTab + 1) % n)
		}
		return nil
	case "shift+tab":
		if n := len(p.opts.Tabs); n > 0 {
			p.SetTab((p.activeTab - 1 + n) % n)
		}
		return nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		p.SetTab(int(key[0] - '1'))
		return nil
	case "m":
		if p.item != nil && p.phase == PhaseLoaded && p.opts.Actions != nil {
			return actions.OpenMenu(*p.item, p.opts.Actions(*p.item))
		}
		return nil
	}

	if p.phase != PhaseLoaded {
		return nil
	}
	if sec := p.activeSection(); sec != nil {
		return sec.Update(msg)
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// HelpText lists the keys the page reacts to.
func (p *DetailsPage) HelpText() string {
	parts := []string{p.translator.T("help.tabs"), p.translator.T("help.scroll")}
	if p.opts.Actions != nil {
		parts = append(parts, p.translator.T("page.menu"))
	}
	parts = append(parts, p.translator.T("help.back"))
	return strings.Join(parts, " • ")
}

func (p *DetailsPage) tabBar() string {
	active := lipgloss.NewStyle().Foreground(p.theme.Primary).Bold(true).Underline(true)
	inactive := lipgloss.NewStyle().Foreground(p.theme.Muted)
	names := make([]string, len(p.opts.Tabs))
	for i, tab := range p.opts.Tabs {
		label := fmt.Sprintf("%d %s", i+1, tab.title(p.translator))
		if i == p.activeTab {
			names[i] = active.Render(label)
		} else {
			names[i] = inactive.Render(label)
		}
	}
	return strings.Join(names, "   ")
}

func (p *DetailsPage) View() string {
	title := p.theme.Heading().Render(p.Title())

	switch p.phase {
	case PhaseIdle, PhaseLoading:
		return lipgloss.JoinVertical(lipgloss.Left, title, p.spinner.View()+" "+p.translator.T("page.loading"))

	case PhaseNotFound:
		return lipgloss.JoinVertical(lipgloss.Left, title, panel(p.theme, p.theme.Warning, p.width,
			p.translator.T("page.notfound", p.opts.Kind, p.key()),
		))

	case PhaseError:
		msg := ""
		if p.err != nil {
			msg = p.err.Error()
		}
		return lipgloss.JoinVertical(lipgloss.Left, title, panel(p.theme, p.theme.Error, p.width,
			p.translator.T("page.error", p.Title()),
			msg,
			p.translator.T("page.retry"),
		))
	}

	var body string
	if sec := p.activeSection(); sec != nil {
		body = sec.View()
	} else {
		body = p.viewport.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, p.tabBar(), body)
}

// RenderError renders err as tab content; tabs whose render step can fail
// use it instead of returning an error.
func RenderError(theme *ui.Theme, err error) string {
	return lipgloss.NewStyle().Foreground(theme.Error).Render(err.Error())
}
