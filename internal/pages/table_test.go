package pages

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
)

var testLabels = i18n.Static{
	"col.name":              "Name",
	"col.secrets":           "Secrets",
	"serviceaccounts.title": "ServiceAccounts",
	"table.hidden":          "+{0} hidden",
	"page.sorted":           "sorted by {0}",
}

func newTestTable(render RowRenderer, opts TableOptions) *Table {
	return NewTable(testSchema, render, testLabels, testTheme(), opts)
}

func manyServiceAccounts(n int) *Collection {
	items := make([]k8s.Resource, n)
	for i := range items {
		items[i] = sa(fmt.Sprintf("sa-%04d", i))
	}
	return NewCollection(items)
}

func TestTable_RendererMustMatchColumnCount(t *testing.T) {
	short := func(r k8s.Resource, _ []Column) []string { return []string{r.Name} }
	tbl := newTestTable(short, TableOptions{})

	assert.PanicsWithError(t, "row renderer produced 1 cells for 3 columns (resource ci/a)", func() {
		tbl.SetCollection(NewCollection([]k8s.Resource{sa("a")}))
	})
}

func TestTable_DefaultSortIsFirstSortableColumn(t *testing.T) {
	tbl := newTestTable(testRenderer, TableOptions{})
	tbl.SetCollection(NewCollection([]k8s.Resource{sa("c"), sa("a"), sa("b")}))

	col, dir := tbl.SortState()
	assert.Equal(t, "name", col)
	assert.Equal(t, Ascending, dir)
	assert.Equal(t, []string{"a", "b", "c"}, names(tbl.Rows()))
}

func TestTable_SortIsStable(t *testing.T) {
	tbl := newTestTable(testRenderer, TableOptions{SortColumn: "secrets"})
	// b and c share a secret count; insertion order is a, b, c
	tbl.SetCollection(NewCollection([]k8s.Resource{sa("a", "s1", "s2"), sa("b", "s3"), sa("c", "s4")}))

	assert.Equal(t, []string{"b", "c", "a"}, names(tbl.Rows()))

	require.True(t, tbl.Sort("secrets", Descending))
	assert.Equal(t, []string{"a", "b", "c"}, names(tbl.Rows()))
}

func TestTable_SortRejectsUnsortableColumns(t *testing.T) {
	tbl := newTestTable(testRenderer, TableOptions{})
	tbl.SetCollection(NewCollection([]k8s.Resource{sa("b"), sa("a")}))

	assert.False(t, tbl.Sort("actions", Descending))
	assert.False(t, tbl.Sort("missing", Descending))
	col, dir := tbl.SortState()
	assert.Equal(t, "name", col)
	assert.Equal(t, Ascending, dir)
}

func TestTable_SortKeys(t *testing.T) {
	tbl := newTestTable(testRenderer, TableOptions{})
	tbl.SetCollection(NewCollection([]k8s.Resource{sa("a"), sa("b")}))

	tbl.Update(keyMsg("S"))
	col, dir := tbl.SortState()
	assert.Equal(t, "name", col)
	assert.Equal(t, Descending, dir)
	assert.Equal(t, []string{"b", "a"}, names(tbl.Rows()))

	tbl.Update(keyMsg("s"))
	col, dir = tbl.SortState()
	assert.Equal(t, "secrets", col)
	assert.Equal(t, Ascending, dir)

	// the kebab column is skipped
	tbl.Update(keyMsg("s"))
	col, _ = tbl.SortState()
	assert.Equal(t, "name", col)
}

func TestTable_ToggleSort(t *testing.T) {
	tbl := newTestTable(testRenderer, TableOptions{})

	require.True(t, tbl.ToggleSort("name"))
	_, dir := tbl.SortState()
	assert.Equal(t, Descending, dir)

	require.True(t, tbl.ToggleSort("secrets"))
	col, dir := tbl.SortState()
	assert.Equal(t, "secrets", col)
	assert.Equal(t, Ascending, dir)
}

func TestTable_VirtualizedRendersOnlyVisibleRows(t *testing.T) {
	counter := &countingRenderer{}
	tbl := newTestTable(counter.render, TableOptions{Virtualize: true, Height: 13})

	tbl.SetCollection(manyServiceAccounts(1000))
	assert.Equal(t, 10, counter.calls)

	// moving inside the window reuses rendered rows
	tbl.Update(keyMsg("down"))
	assert.Equal(t, 10, counter.calls)

	tbl.Update(keyMsg("G"))
	assert.Equal(t, 20, counter.calls)
	selected, ok := tbl.Selected()
	require.True(t, ok)
	assert.Equal(t, "sa-0999", selected.Name)
	assert.Contains(t, tbl.View(), "sa-0999")
	assert.NotContains(t, tbl.View(), "sa-0000")
}

func TestTable_WithoutVirtualizationRendersEveryRow(t *testing.T) {
	counter := &countingRenderer{}
	tbl := newTestTable(counter.render, TableOptions{Height: 13})

	tbl.SetCollection(manyServiceAccounts(100))
	assert.Equal(t, 100, counter.calls)
}

func TestTable_SameCollectionIsNoOp(t *testing.T) {
	counter := &countingRenderer{}
	tbl := newTestTable(counter.render, TableOptions{Virtualize: true})
	c := manyServiceAccounts(3)

	tbl.SetCollection(c)
	calls := counter.calls
	tbl.SetCollection(c)
	assert.Equal(t, calls, counter.calls)

	tbl.SetCollection(c.Apply(k8s.CollectionEvent{Type: k8s.EventAdded, Resource: sa("new")}))
	assert.Greater(t, counter.calls, calls)
}

func TestTable_SelectionFollowsResource(t *testing.T) {
	tbl := newTestTable(testRenderer, TableOptions{})
	c := NewCollection([]k8s.Resource{sa("b"), sa("c")})
	tbl.SetCollection(c)
	tbl.Update(keyMsg("down"))

	selected, _ := tbl.Selected()
	require.Equal(t, "c", selected.Name)

	tbl.SetCollection(c.Apply(k8s.CollectionEvent{Type: k8s.EventAdded, Resource: sa("a")}))
	selected, _ = tbl.Selected()
	assert.Equal(t, "c", selected.Name)
	assert.Equal(t, 2, tbl.Cursor())
}

func TestTable_CursorClampsWhenRowsDisappear(t *testing.T) {
	tbl := newTestTable(testRenderer, TableOptions{})
	c := NewCollection([]k8s.Resource{sa("a"), sa("b")})
	tbl.SetCollection(c)
	tbl.Update(keyMsg("down"))

	tbl.SetCollection(c.Apply(k8s.CollectionEvent{Type: k8s.EventDeleted, Resource: sa("b")}))
	selected, ok := tbl.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", selected.Name)

	tbl.SetCollection(NewCollection(nil))
	_, ok = tbl.Selected()
	assert.False(t, ok)
}

func TestTable_HidesLowPriorityColumnsWhenNarrow(t *testing.T) {
	tbl := newTestTable(testRenderer, TableOptions{AriaLabelKey: "serviceaccounts.title"})
	tbl.SetCollection(NewCollection([]k8s.Resource{sa("a", "s1")}))

	assert.Len(t, tbl.VisibleColumns(), 3)

	tbl.SetSize(30, 10)
	visible := tbl.VisibleColumns()
	require.Len(t, visible, 2)
	assert.Equal(t, "name", visible[0].ID)
	assert.Equal(t, "actions", visible[1].ID)
	assert.Equal(t, "ServiceAccounts (+1 hidden) · sorted by Name ↑", tbl.Caption())
	assert.Contains(t, tbl.View(), "ServiceAccounts (+1 hidden)")
}

func TestTable_LocaleSwitchRebuildsTitles(t *testing.T) {
	tbl := newTestTable(testRenderer, TableOptions{})
	tbl.SetCollection(NewCollection([]k8s.Resource{sa("a")}))
	assert.Equal(t, "Name", tbl.Columns()[0].Title)

	tbl.SetTranslator(i18n.Static{"col.name": "Nom", "col.secrets": "Secrets"})

	assert.Equal(t, "Nom", tbl.Columns()[0].Title)
	assert.Contains(t, tbl.View(), "Nom ↑")
	col, _ := tbl.SortState()
	assert.Equal(t, "name", col)
}

func TestTable_CaptionFollowsLocale(t *testing.T) {
	tbl := newTestTable(testRenderer, TableOptions{AriaLabelKey: "serviceaccounts.title"})
	tbl.SetCollection(NewCollection([]k8s.Resource{sa("a", "s1")}))
	tbl.SetSize(30, 10)
	require.Equal(t, "ServiceAccounts", tbl.AriaLabel())

	tbl.SetTranslator(i18n.Static{
		"col.name":              "Nom",
		"serviceaccounts.title": "Dienstkonten",
		"table.hidden":          "+{0} ausgeblendet",
		"page.sorted":           "sortiert nach {0}",
	})

	assert.Equal(t, "Dienstkonten", tbl.AriaLabel())
	assert.Equal(t, "Dienstkonten (+1 ausgeblendet) · sortiert nach Nom ↑", tbl.Caption())
	assert.Contains(t, tbl.View(), "Dienstkonten (+1 ausgeblendet)")
}

func TestTable_CaptionWithoutLabel(t *testing.T) {
	tbl := newTestTable(testRenderer, TableOptions{})
	tbl.SetCollection(NewCollection([]k8s.Resource{sa("a")}))

	assert.Empty(t, tbl.AriaLabel())
	assert.Equal(t, "· sorted by Name ↑", tbl.Caption())
}
