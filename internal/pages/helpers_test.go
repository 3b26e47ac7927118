package pages

import (
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/k8s/dummy"
	"github.com/renato0307/k1console/internal/ui"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testTheme() *ui.Theme {
	return ui.GetTheme("charm")
}

func english(t *testing.T) i18n.Translator {
	t.Helper()
	b, err := i18n.NewBundle()
	require.NoError(t, err)
	return b.Translator("en")
}

// sa builds a ServiceAccount in namespace "ci".
func sa(name string, secrets ...string) k8s.Resource {
	return dummy.ServiceAccount("ci", name, testNow.Add(-time.Hour), secrets...)
}

func withVersion(r k8s.Resource, rv string) k8s.Resource {
	u := r.Unstructured().DeepCopy()
	u.SetResourceVersion(rv)
	out, err := k8s.NewResource(u)
	if err != nil {
		panic(err)
	}
	return out
}

// withSecretEntries replaces the secrets list with raw entries; no entries
// leaves an empty list rather than a missing one.
func withSecretEntries(r k8s.Resource, entries ...any) k8s.Resource {
	u := r.Unstructured().DeepCopy()
	if entries == nil {
		entries = []any{}
	}
	if err := unstructured.SetNestedSlice(u.Object, entries, "secrets"); err != nil {
		panic(err)
	}
	out, err := k8s.NewResource(u)
	if err != nil {
		panic(err)
	}
	return out
}

func withLabel(r k8s.Resource, key, value string) k8s.Resource {
	u := r.Unstructured().DeepCopy()
	labels := u.GetLabels()
	if labels == nil {
		labels = map[string]string{}
	}
	labels[key] = value
	u.SetLabels(labels)
	out, err := k8s.NewResource(u)
	if err != nil {
		panic(err)
	}
	return out
}

func names(items []k8s.Resource) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.Name
	}
	return out
}

// testSchema has a name column, a secret count column and an unsortable
// kebab column.
func testSchema(t i18n.Translator) []Column {
	return []Column{
		{ID: "name", Title: t.T("col.name"), SortField: "metadata.name", Priority: 1},
		{ID: "secrets", Title: t.T("col.secrets"), SortField: "secrets", Width: 10, Priority: 3},
		{ID: "actions", Title: "⋮", Width: 3, Priority: 1},
	}
}

func testRenderer(r k8s.Resource, cols []Column) []string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		switch c.ID {
		case "name":
			cells[i] = r.Name
		case "secrets":
			cells[i] = fmt.Sprint(len(r.ReferencedNames("secrets")))
		default:
			cells[i] = "⋮"
		}
	}
	return cells
}

// countingRenderer wraps testRenderer and counts calls.
type countingRenderer struct {
	calls int
}

func (c *countingRenderer) render(r k8s.Resource, cols []Column) []string {
	c.calls++
	return testRenderer(r, cols)
}

// collect runs cmd and returns the messages it produced. Batches are
// expanded and spinner ticks dropped. Commands that wait for watch events
// block, so only call it on commands known to complete.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

// feed delivers msgs to m and returns the commands it produced.
func feed(m tea.Model, msgs ...tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	for _, msg := range msgs {
		var cmd tea.Cmd
		_, cmd = m.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
