package serviceaccounts

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/k1console/internal/actions"
	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/pages"
	"github.com/renato0307/k1console/internal/ui"
)

// AriaLabelKey names the ServiceAccount table.
const AriaLabelKey = "serviceaccounts.title"

// Deps are the collaborators the ServiceAccount pages share.
type Deps struct {
	Source    k8s.Source
	Formatter k8s.Formatter
	Registry  *actions.Registry
	Clipboard actions.ClipboardWriter
	Theme     *ui.Theme
	// Now is the clock for ages; nil means time.Now.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) clipboard() actions.ClipboardWriter {
	if d.Clipboard == nil {
		return actions.SystemClipboard
	}
	return d.Clipboard
}

// actionsFor resolves the menu for r, the same list for the row kebab and
// the details page.
func (d Deps) actionsFor(r k8s.Resource) []actions.MenuAction {
	if d.Registry == nil {
		return nil
	}
	return d.Registry.ForResource(r)
}

// NewListPage lists ServiceAccounts in namespace, all namespaces when empty.
// Enter opens the details page and c copies a create command.
func NewListPage(deps Deps, t i18n.Translator, namespace string) *pages.ListPage {
	return pages.NewListPage(deps.Source, t, deps.Theme, pages.ListOptions{
		Kind:      k8s.KindServiceAccount,
		Namespace: namespace,
		TitleKey:  "serviceaccounts.title",
		ShowTitle: true,
		CanCreate: true,
		CreateKey: "serviceaccounts.create",
		Schema:    Schema,
		Renderer:  Renderer(deps.Registry, deps.now),
		Table:     pages.TableOptions{Virtualize: true, AriaLabelKey: AriaLabelKey},
		OnSelect:  pages.OpenDetails,
		OnCreate: func(ns string) tea.Cmd {
			return actions.CopyCommand(deps.clipboard(), CreateCommand(ns))
		},
		Actions: deps.actionsFor,
	})
}

// NewDetailsPage shows one ServiceAccount with Details, YAML and Describe
// tabs.
func NewDetailsPage(deps Deps, t i18n.Translator, namespace, name string) *pages.DetailsPage {
	return pages.NewDetailsPage(deps.Source, t, deps.Theme, pages.DetailsOptions{
		Kind:      k8s.KindServiceAccount,
		Namespace: namespace,
		Name:      name,
		Tabs: []pages.Tab{
			{NameKey: "tab.details", Section: newDetailsSection(deps, t)},
			{NameKey: "tab.yaml", Render: yamlTab(deps)},
			{NameKey: "tab.describe", Render: describeTab(deps)},
		},
		Actions: deps.actionsFor,
	})
}

func yamlTab(deps Deps) func(k8s.Resource, int) string {
	return func(r k8s.Resource, _ int) string {
		if deps.Formatter == nil {
			return ""
		}
		out, err := deps.Formatter.YAML(r)
		if err != nil {
			return pages.RenderError(deps.Theme, err)
		}
		return ui.HighlightYAML(out, deps.Theme.SyntaxStyle)
	}
}

// describeTab caches the last output per resourceVersion: describers query
// the API server and the tab is re-rendered on every resize.
func describeTab(deps Deps) func(k8s.Resource, int) string {
	var lastKey, lastOut string
	return func(r k8s.Resource, _ int) string {
		if deps.Formatter == nil {
			return k8s.DescribeObject(r)
		}
		key := r.UID + "@" + r.ResourceVersion()
		if key == lastKey {
			return lastOut
		}
		out, err := deps.Formatter.Describe(r)
		if err != nil {
			return pages.RenderError(deps.Theme, err)
		}
		lastKey, lastOut = key, out
		return out
	}
}
