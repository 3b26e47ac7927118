package pages

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/ui"
)

const (
	// caption line plus the header row and its bottom border
	tableChromeLines = 3
	// width assumed for dynamic columns when deciding what fits
	minDynamicWidth = 20
)

// ListComponent renders the filtered collection of a ListPage. Table is the
// default; anything implementing the interface can replace it.
type ListComponent interface {
	SetCollection(c *Collection)
	SetSize(width, height int)
	SetTranslator(t i18n.Translator)
	Selected() (k8s.Resource, bool)
	Len() int
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// TableOptions configure a Table.
type TableOptions struct {
	// Virtualize passes only the rows inside the visible window through the
	// row renderer. Without it every row is rendered on each refresh.
	Virtualize bool
	// AriaLabelKey is translated into the table's name, shown on the
	// caption line together with the sort state.
	AriaLabelKey string
	// SortColumn is the initial sort column ID, empty for the first sortable one.
	SortColumn    string
	SortDirection SortDirection
	Height        int
}

// Table is a sortable, windowed grid over a Collection.
type Table struct {
	schema     ColumnSchema
	render     RowRenderer
	translator i18n.Translator
	theme      *ui.Theme
	opts       TableOptions

	columns []Column
	visible []int // indices into columns, in schema order

	collection *Collection
	rows       []k8s.Resource // sorted
	sortColumn string
	sortDir    SortDirection

	cursor int
	top    int
	width  int
	height int

	// full-schema cells; covers every row, or only the window when virtualized
	cells     map[string][]string
	cellsFrom *Collection

	model table.Model
}

// NewTable builds a table. The schema is evaluated immediately with t.
func NewTable(schema ColumnSchema, render RowRenderer, t i18n.Translator, theme *ui.Theme, opts TableOptions) *Table {
	if opts.Height <= 0 {
		opts.Height = 10
	}
	model := table.New(table.WithFocused(true))
	model.SetStyles(theme.ToTableStyles())

	tbl := &Table{
		schema:     schema,
		render:     render,
		translator: t,
		theme:      theme,
		opts:       opts,
		sortDir:    opts.SortDirection,
		height:     opts.Height,
		width:      80,
		cells:      make(map[string][]string),
		model:      model,
	}
	tbl.columns = schema(t)
	tbl.sortColumn = tbl.initialSortColumn(opts.SortColumn)
	tbl.layoutColumns()
	return tbl
}

func (t *Table) initialSortColumn(id string) string {
	if i := ColumnIndex(t.columns, id); i >= 0 && t.columns[i].Sortable() {
		return id
	}
	for _, c := range t.columns {
		if c.Sortable() {
			return c.ID
		}
	}
	return ""
}

// Columns returns the full translated schema.
func (t *Table) Columns() []Column { return t.columns }

// VisibleColumns returns the columns that fit the current width.
func (t *Table) VisibleColumns() []Column {
	out := make([]Column, len(t.visible))
	for i, idx := range t.visible {
		out[i] = t.columns[idx]
	}
	return out
}

func (t *Table) Len() int    { return len(t.rows) }
func (t *Table) Cursor() int { return t.cursor }

// AriaLabel returns the table's name in the current locale.
func (t *Table) AriaLabel() string {
	if t.opts.AriaLabelKey == "" {
		return ""
	}
	return t.translator.T(t.opts.AriaLabelKey)
}

// Caption is the line above the grid: the table name, how many columns are
// hidden and the active sort column.
func (t *Table) Caption() string {
	var parts []string
	if label := t.AriaLabel(); label != "" {
		parts = append(parts, label)
	}
	if hidden := len(t.columns) - len(t.visible); hidden > 0 {
		parts = append(parts, "("+t.translator.T("table.hidden", strconv.Itoa(hidden))+")")
	}
	if i := ColumnIndex(t.columns, t.sortColumn); i >= 0 {
		sorted := t.columns[i].Title + " " + t.sortDir.Indicator()
		parts = append(parts, "· "+t.translator.T("page.sorted", sorted))
	}
	return strings.Join(parts, " ")
}

// Rows returns the resources in display order.
func (t *Table) Rows() []k8s.Resource { return t.rows }

// SortState returns the sort column ID and direction.
func (t *Table) SortState() (string, SortDirection) { return t.sortColumn, t.sortDir }

// Selected returns the resource under the cursor.
func (t *Table) Selected() (k8s.Resource, bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return k8s.Resource{}, false
	}
	return t.rows[t.cursor], true
}

// SetCollection replaces the data. The same pointer is a no-op.
func (t *Table) SetCollection(c *Collection) {
	if c == t.collection {
		return
	}
	selected, hadSelection := t.Selected()
	t.collection = c
	t.resort()
	if hadSelection {
		t.selectKey(selected.Key())
	}
	t.refresh()
}

// Sort orders rows by the column's sort field. Unknown or unsortable
// columns are ignored and false is returned.
func (t *Table) Sort(columnID string, dir SortDirection) bool {
	i := ColumnIndex(t.columns, columnID)
	if i < 0 || !t.columns[i].Sortable() {
		return false
	}
	selected, hadSelection := t.Selected()
	t.sortColumn = columnID
	t.sortDir = dir
	t.resort()
	if hadSelection {
		t.selectKey(selected.Key())
	}
	t.refresh()
	return true
}

// ToggleSort sorts by columnID, flipping the direction when it is already
// the sort column.
func (t *Table) ToggleSort(columnID string) bool {
	dir := Ascending
	if columnID == t.sortColumn {
		dir = t.sortDir.Toggle()
	}
	return t.Sort(columnID, dir)
}

// cycleSortColumn moves the sort to the next sortable column, ascending.
func (t *Table) cycleSortColumn() {
	start := ColumnIndex(t.columns, t.sortColumn)
	for step := 1; step <= len(t.columns); step++ {
		c := t.columns[(start+step+len(t.columns))%len(t.columns)]
		if c.Sortable() {
			t.Sort(c.ID, Ascending)
			return
		}
	}
}

func (t *Table) resort() {
	items := t.collection.Items()
	if i := ColumnIndex(t.columns, t.sortColumn); i >= 0 {
		items = sortResources(items, t.columns[i].SortField, t.sortDir)
	}
	t.rows = items
}

func (t *Table) selectKey(key string) {
	for i, r := range t.rows {
		if r.Key() == key {
			t.cursor = i
			return
		}
	}
}

// SetTranslator re-evaluates the schema for the new locale.
func (t *Table) SetTranslator(tr i18n.Translator) {
	t.translator = tr
	t.columns = t.schema(tr)
	if ColumnIndex(t.columns, t.sortColumn) < 0 {
		t.sortColumn = t.initialSortColumn("")
	}
	t.invalidate()
	t.refresh()
}

// SetSize recalculates which columns fit and the row window.
func (t *Table) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.refresh()
}

// pageSize is the number of rows visible at once.
func (t *Table) pageSize() int {
	return max(1, t.height-tableChromeLines)
}

// layoutColumns hides priority 2 and 3 columns that do not fit. Columns are
// placed in priority order and shown in schema order.
func (t *Table) layoutColumns() {
	padding := len(t.columns) * 2
	available := t.width - padding

	order := make([]int, len(t.columns))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return t.columns[order[a]].Priority < t.columns[order[b]].Priority
	})

	used := 0
	keep := make(map[int]bool)
	for _, idx := range order {
		col := t.columns[idx]
		w := col.Width
		if w == 0 {
			w = minDynamicWidth
		}
		if col.Priority > 1 && used+w > available {
			continue
		}
		keep[idx] = true
		used += w
	}

	t.visible = t.visible[:0]
	for i := range t.columns {
		if keep[i] {
			t.visible = append(t.visible, i)
		}
	}

	fixed, dynamic := 0, 0
	for _, idx := range t.visible {
		if w := t.columns[idx].Width; w > 0 {
			fixed += w
		} else {
			dynamic++
		}
	}
	dynamicWidth := minDynamicWidth
	if dynamic > 0 {
		dynamicWidth = max(minDynamicWidth, (t.width-fixed-len(t.visible)*2)/dynamic)
	}

	cols := make([]table.Column, len(t.visible))
	for i, idx := range t.visible {
		c := t.columns[idx]
		w := c.Width
		if w == 0 {
			w = dynamicWidth
		}
		title := c.Title
		if c.ID == t.sortColumn {
			title += " " + t.sortDir.Indicator()
		}
		cols[i] = table.Column{Title: title, Width: w}
	}

	// rows must not outnumber columns while the column set changes
	t.model.SetRows(nil)
	t.model.SetColumns(cols)
	t.model.SetWidth(t.width)
	t.model.SetHeight(t.pageSize() + tableChromeLines - 1)
}

func (t *Table) invalidate() {
	t.cells = make(map[string][]string)
	t.cellsFrom = nil
}

// refresh lays out the columns, clamps cursor and window and hands the
// window to the grid.
func (t *Table) refresh() {
	t.layoutColumns()

	n := len(t.rows)
	page := t.pageSize()
	t.cursor = min(max(t.cursor, 0), max(n-1, 0))
	if t.cursor < t.top {
		t.top = t.cursor
	}
	if t.cursor >= t.top+page {
		t.top = t.cursor - page + 1
	}
	t.top = max(0, min(t.top, max(n-page, 0)))

	if t.cellsFrom != t.collection {
		t.invalidate()
		t.cellsFrom = t.collection
		if !t.opts.Virtualize {
			for _, r := range t.rows {
				t.cells[r.Key()] = renderRow(t.render, r, t.columns)
			}
		}
	}

	end := min(t.top+page, n)
	rows := make([]table.Row, 0, end-t.top)
	for _, r := range t.rows[t.top:end] {
		cells, ok := t.cells[r.Key()]
		if !ok {
			cells = renderRow(t.render, r, t.columns)
			t.cells[r.Key()] = cells
		}
		row := make(table.Row, len(t.visible))
		for i, idx := range t.visible {
			row[i] = cells[idx]
		}
		rows = append(rows, row)
	}

	t.model.SetRows(rows)
	t.model.SetCursor(max(t.cursor-t.top, 0))
}

// moveCursor moves the selection by delta rows.
func (t *Table) moveCursor(delta int) {
	t.cursor += delta
	t.refresh()
}

// Update handles navigation and sort keys.
func (t *Table) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		t.moveCursor(-1)
	case "down", "j":
		t.moveCursor(1)
	case "pgup", "ctrl+u":
		t.moveCursor(-t.pageSize())
	case "pgdown", "ctrl+d":
		t.moveCursor(t.pageSize())
	case "home", "g":
		t.moveCursor(-len(t.rows))
	case "end", "G":
		t.moveCursor(len(t.rows))
	case "s":
		t.cycleSortColumn()
	case "S":
		t.ToggleSort(t.sortColumn)
	}
	return nil
}

func (t *Table) View() string {
	captionLine := lipgloss.NewStyle().Foreground(t.theme.Muted).Render(t.Caption())
	return lipgloss.JoinVertical(lipgloss.Left, captionLine, t.model.View())
}
