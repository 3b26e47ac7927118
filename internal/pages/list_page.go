package pages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/k1console/internal/actions"
	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/logging"
	"github.com/renato0307/k1console/internal/ui"
)

// errWatchClosed is reported when a watch ends without an error of its own.
var errWatchClosed = errors.New("watch closed by the server")

// CreateRequestedMsg is sent when the user asks to create a resource and the
// page has no OnCreate handler.
type CreateRequestedMsg struct {
	Kind      string
	Namespace string
}

// ListOptions configure a ListPage.
type ListOptions struct {
	Kind string
	// Namespace scopes the subscription; empty means all namespaces.
	Namespace string
	// TitleKey is translated for the title line and empty/error panels.
	TitleKey  string
	ShowTitle bool
	CanCreate bool
	// CreateKey labels the create affordance in the help line; empty uses
	// the generic label.
	CreateKey string
	// Filters are applied client-side, in order, before the text filter.
	Filters []Filter

	Schema   ColumnSchema
	Renderer RowRenderer
	Table    TableOptions
	// Component replaces the Table built from Schema and Renderer.
	Component ListComponent

	SearchText SearchText
	OnSelect   func(r k8s.Resource) tea.Cmd
	OnCreate   func(namespace string) tea.Cmd
	Actions    func(r k8s.Resource) []actions.MenuAction
}

// ListPage subscribes to a collection and shows it through a ListComponent.
type ListPage struct {
	opts       ListOptions
	source     k8s.Source
	translator i18n.Translator
	theme      *ui.Theme
	component  ListComponent

	spinner     spinner.Model
	filterInput textinput.Model
	filtering   bool
	textFilter  string

	life  lifecycle
	phase Phase
	err   error
	watch *k8s.Watch
	items *Collection
	view  *Collection

	width  int
	height int
}

// NewListPage creates an idle page; Init starts loading.
func NewListPage(src k8s.Source, t i18n.Translator, theme *ui.Theme, opts ListOptions) *ListPage {
	component := opts.Component
	if component == nil {
		component = NewTable(opts.Schema, opts.Renderer, t, theme, opts.Table)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	input := textinput.New()
	input.Prompt = "/"
	input.CharLimit = 128

	return &ListPage{
		opts:        opts,
		source:      src,
		translator:  t,
		theme:       theme,
		component:   component,
		spinner:     s,
		filterInput: input,
		life:        newLifecycle(),
		width:       80,
		height:      20,
	}
}

func (p *ListPage) log() *logging.Logger {
	return logging.Component("listpage").With("kind", p.opts.Kind, "page", p.life.id)
}

func (p *ListPage) ID() uint64               { return p.life.id }
func (p *ListPage) Kind() string             { return p.opts.Kind }
func (p *ListPage) Namespace() string        { return p.opts.Namespace }
func (p *ListPage) Phase() Phase             { return p.phase }
func (p *ListPage) Err() error               { return p.err }
func (p *ListPage) CanCreate() bool          { return p.opts.CanCreate }
func (p *ListPage) Component() ListComponent { return p.component }
func (p *ListPage) TextFilter() string       { return p.textFilter }
func (p *ListPage) Disposed() bool           { return p.life.disposed }

func (p *ListPage) Translator() i18n.Translator {
	return p.translator
}

// Items returns the subscribed collection before filtering.
func (p *ListPage) Items() *Collection { return p.items }

// Visible returns the collection handed to the list component.
func (p *ListPage) Visible() *Collection { return p.view }

// CapturesInput reports whether keys go to the filter input.
func (p *ListPage) CapturesInput() bool { return p.filtering }

// Title returns the translated page title.
func (p *ListPage) Title() string {
	if p.opts.TitleKey == "" {
		return p.opts.Kind
	}
	return p.translator.T(p.opts.TitleKey)
}

func (p *ListPage) Init() tea.Cmd {
	return p.Reload()
}

// Reload re-subscribes. Any load in flight is cancelled and its results are
// dropped when they arrive.
func (p *ListPage) Reload() tea.Cmd {
	if p.life.disposed {
		return nil
	}
	ctx, s := p.life.restart()
	p.phase = PhaseLoading
	p.err = nil
	p.watch = nil
	p.items = nil
	p.recompute()

	q := k8s.Query{Kind: p.opts.Kind, Namespace: p.opts.Namespace}
	p.log().Debug("subscribing", "query", q.String(), "gen", s.gen)
	return tea.Batch(p.spinner.Tick, subscribe(ctx, p.source, q, s))
}

// SetNamespace changes the scope and reloads when it differs.
func (p *ListPage) SetNamespace(namespace string) tea.Cmd {
	if namespace == p.opts.Namespace {
		return nil
	}
	p.opts.Namespace = namespace
	return p.Reload()
}

// SetFilters replaces the client-side predicates. The subscription is kept.
func (p *ListPage) SetFilters(filters ...Filter) {
	p.opts.Filters = filters
	p.recompute()
}

// SetTextFilter sets the fuzzy filter; a leading "!" negates it.
func (p *ListPage) SetTextFilter(query string) {
	if query == p.textFilter {
		return
	}
	p.textFilter = query
	p.recompute()
	p.resize()
}

// SetTranslator switches locale and rebuilds column titles.
func (p *ListPage) SetTranslator(t i18n.Translator) {
	p.translator = t
	p.component.SetTranslator(t)
}

func (p *ListPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.resize()
}

func (p *ListPage) resize() {
	reserved := 0
	if p.opts.ShowTitle {
		reserved++
	}
	if p.filtering || p.textFilter != "" {
		reserved++
	}
	p.component.SetSize(p.width, max(p.height-reserved, 1))
}

// Close cancels the subscription. Messages that arrive afterwards are
// ignored.
func (p *ListPage) Close() {
	if p.life.disposed {
		return
	}
	p.log().Debug("closing")
	p.life.dispose()
}

func (p *ListPage) recompute() {
	filtered := p.items.Filter(All(p.opts.Filters...))
	if p.textFilter != "" {
		filtered = NewCollection(FuzzyFilter(p.textFilter, filtered.Items(), p.opts.SearchText))
	}
	p.view = filtered
	p.component.SetCollection(p.view)
}

func (p *ListPage) fail(err error) {
	p.life.stop()
	p.phase = PhaseError
	p.err = err
	p.log().Warn("subscription failed", "error", err)
}

func (p *ListPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case subscribedMsg:
		if !p.life.current(msg.stamp) {
			return p, nil
		}
		if msg.err != nil {
			p.fail(msg.err)
			return p, nil
		}
		p.watch = msg.watch
		p.items = NewCollection(msg.watch.Initial)
		p.phase = PhaseLoaded
		p.recompute()
		p.log().Debug("loaded", "items", p.items.Len())
		return p, waitForEvents(p.life.ctx, msg.watch, msg.stamp)

	case eventsMsg:
		if !p.life.current(msg.stamp) {
			return p, nil
		}
		if len(msg.events) > 0 {
			if next := p.items.Apply(msg.events...); next != p.items {
				p.items = next
				p.recompute()
			}
		}
		if msg.closed {
			err := msg.err
			if err == nil {
				err = errWatchClosed
			}
			p.fail(err)
			return p, nil
		}
		return p, waitForEvents(p.life.ctx, p.watch, msg.stamp)

	case spinner.TickMsg:
		if p.phase != PhaseLoading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyMsg:
		return p, p.handleKey(msg)
	}
	return p, nil
}

func (p *ListPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.filtering {
		switch msg.String() {
		case "esc":
			p.filtering = false
			p.filterInput.Blur()
			p.filterInput.SetValue("")
			p.SetTextFilter("")
			p.resize()
			return nil
		case "enter":
			p.filtering = false
			p.filterInput.Blur()
			p.resize()
			return nil
		}
		var cmd tea.Cmd
		p.filterInput, cmd = p.filterInput.Update(msg)
		p.SetTextFilter(p.filterInput.Value())
		return cmd
	}

	switch msg.String() {
	case "r":
		if p.phase == PhaseError || p.phase == PhaseLoaded {
			return p.Reload()
		}
		return nil
	case "c":
		if !p.opts.CanCreate {
			return nil
		}
		if p.opts.OnCreate != nil {
			return p.opts.OnCreate(p.opts.Namespace)
		}
		kind, ns := p.opts.Kind, p.opts.Namespace
		return func() tea.Msg { return CreateRequestedMsg{Kind: kind, Namespace: ns} }
	}

	if p.phase != PhaseLoaded {
		return nil
	}

	switch msg.String() {
	case "/":
		p.filtering = true
		p.filterInput.SetValue(p.textFilter)
		p.resize()
		return p.filterInput.Focus()
	case "enter":
		if r, ok := p.component.Selected(); ok && p.opts.OnSelect != nil {
			return p.opts.OnSelect(r)
		}
		return nil
	case "m":
		if r, ok := p.component.Selected(); ok && p.opts.Actions != nil {
			return actions.OpenMenu(r, p.opts.Actions(r))
		}
		return nil
	}
	return p.component.Update(msg)
}

// HelpText lists the keys the page reacts to.
func (p *ListPage) HelpText() string {
	t := p.translator
	parts := []string{t.T("help.move"), t.T("help.open"), "/ " + strings.ToLower(t.T("page.filter")), t.T("help.sort")}
	if p.opts.Actions != nil {
		parts = append(parts, t.T("page.menu"))
	}
	switch {
	case !p.opts.CanCreate:
	case p.opts.CreateKey != "":
		parts = append(parts, "c: "+t.T(p.opts.CreateKey))
	default:
		parts = append(parts, t.T("page.create"))
	}
	return strings.Join(parts, " • ")
}

func (p *ListPage) View() string {
	var sections []string

	if p.opts.ShowTitle {
		title := p.theme.Heading().Render(p.Title())
		if p.phase == PhaseLoaded {
			count := fmt.Sprint(p.view.Len())
			title += lipgloss.NewStyle().Foreground(p.theme.Muted).Render("  " + p.translator.T("page.items", count))
		}
		sections = append(sections, title)
	}

	switch p.phase {
	case PhaseIdle, PhaseLoading:
		sections = append(sections, p.spinner.View()+" "+p.translator.T("page.loading"))

	case PhaseError:
		msg := ""
		if p.err != nil {
			msg = p.err.Error()
		}
		sections = append(sections, panel(p.theme, p.theme.Error, p.width,
			p.translator.T("page.error", p.Title()),
			msg,
			p.translator.T("page.retry"),
		))

	default:
		if p.filtering || p.textFilter != "" {
			line := p.filterInput.View()
			if !p.filtering {
				line = "/" + p.textFilter
			}
			sections = append(sections, lipgloss.NewStyle().Foreground(p.theme.Accent).Render(line))
		}
		if p.view.Len() == 0 {
			sections = append(sections, panel(p.theme, p.theme.Muted, p.width, p.translator.T("page.empty", p.Title())))
		} else {
			sections = append(sections, p.component.View())
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
