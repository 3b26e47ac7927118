package serviceaccounts

import (
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/pages"
	"github.com/renato0307/k1console/internal/secrets"
)

// detailsSection is the first details tab: a summary of the account
// followed by a live list of the secrets it references.
type detailsSection struct {
	deps       Deps
	translator i18n.Translator

	item    k8s.Resource
	secrets *pages.ListPage

	width  int
	height int
}

func newDetailsSection(deps Deps, t i18n.Translator) *detailsSection {
	return &detailsSection{deps: deps, translator: t, width: 80, height: 20}
}

// secretFilter keeps the secrets r references. An account without secrets
// gets an empty list rather than every secret in the namespace.
func secretFilter(r k8s.Resource) pages.Filter {
	return pages.NameIn(r.ReferencedNames("secrets")...)
}

func (s *detailsSection) Mount(r k8s.Resource) tea.Cmd {
	s.item = r
	s.secrets = pages.NewListPage(s.deps.Source, s.translator, s.deps.Theme, pages.ListOptions{
		Kind:      k8s.KindSecret,
		Namespace: r.Namespace,
		TitleKey:  "secrets.title",
		CanCreate: false,
		Filters:   []pages.Filter{secretFilter(r)},
		Schema:    secrets.Schema,
		Renderer:  secrets.Renderer(s.deps.now),
		Table:     pages.TableOptions{AriaLabelKey: "secrets.title"},
		Actions:   s.deps.actionsFor,
	})
	s.resize()
	return s.secrets.Init()
}

func (s *detailsSection) Refresh(r k8s.Resource) tea.Cmd {
	s.item = r
	if s.secrets != nil {
		s.secrets.SetFilters(secretFilter(r))
	}
	return nil
}

func (s *detailsSection) Update(msg tea.Msg) tea.Cmd {
	if s.secrets == nil {
		return nil
	}
	_, cmd := s.secrets.Update(msg)
	return cmd
}

func (s *detailsSection) CapturesInput() bool {
	return s.secrets != nil && s.secrets.CapturesInput()
}

func (s *detailsSection) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.resize()
}

func (s *detailsSection) resize() {
	if s.secrets == nil {
		return
	}
	used := lipgloss.Height(s.summary()) + 2
	s.secrets.SetSize(s.width, max(s.height-used, 3))
}

func (s *detailsSection) SetTranslator(t i18n.Translator) {
	s.translator = t
	if s.secrets != nil {
		s.secrets.SetTranslator(t)
	}
}

func (s *detailsSection) Close() {
	if s.secrets != nil {
		s.secrets.Close()
	}
}

func (s *detailsSection) View() string {
	heading := s.deps.Theme.Heading()
	parts := []string{
		heading.Render(s.translator.T("serviceaccounts.details")),
		s.summary(),
		heading.Render(s.translator.T("serviceaccounts.secrets")),
	}
	if s.secrets != nil {
		parts = append(parts, s.secrets.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// summary renders the common metadata block.
func (s *detailsSection) summary() string {
	t := s.translator
	none := t.T("summary.none")
	label := lipgloss.NewStyle().Foreground(s.deps.Theme.Muted).Width(14)

	owner := strings.Join(s.item.Owners(), ", ")
	if owner == "" {
		owner = none
	}
	rows := [][2]string{
		{t.T("summary.name"), s.item.Name},
		{t.T("summary.namespace"), s.item.Namespace},
		{t.T("summary.labels"), joinMap(s.item.Labels(), none)},
		{t.T("summary.annotations"), joinMap(s.item.Annotations(), none)},
		{t.T("summary.created"), createdLine(s.item, s.deps.now)},
		{t.T("summary.owner"), owner},
		{t.T("summary.uid"), s.item.UID},
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = label.Render(row[0]) + row[1]
	}
	return strings.Join(lines, "\n")
}

func joinMap(m map[string]string, empty string) string {
	if len(m) == 0 {
		return empty
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + m[k]
	}
	return strings.Join(pairs, ", ")
}

func createdLine(r k8s.Resource, now func() time.Time) string {
	if r.CreationTimestamp.IsZero() {
		return "<none>"
	}
	return r.CreationTimestamp.UTC().Format(time.RFC3339) + " (" + k8s.FormatTimestamp(r.CreationTimestamp, now()) + ")"
}
