// Package pages is the generic list/detail composition layer: a column
// schema and row renderer feed a Table, which ListPage fills from a live
// subscription; DetailsPage shows one resource in tabs.
package pages

import (
	"fmt"

	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
)

// Column describes one table column.
type Column struct {
	ID    string
	Title string
	// SortField is a path into the resource object (see k8s.FieldValue).
	// Columns without one cannot be sorted.
	SortField string
	Width     int // 0 = dynamic, >0 = fixed
	Priority  int // 1=critical, 2=important, 3=optional
}

// Sortable reports whether the column has a sort field.
func (c Column) Sortable() bool {
	return c.SortField != ""
}

// ColumnSchema builds the translated column list. It is evaluated when a
// table is created and again after every locale switch.
type ColumnSchema func(t i18n.Translator) []Column

// RowRenderer projects a resource onto one cell per column, in column order.
// It must not fail for a validated resource; absent optional fields render
// as empty or zero values.
type RowRenderer func(r k8s.Resource, cols []Column) []string

// RenderPrecondition is the panic value raised when a renderer breaks the
// one-cell-per-column contract.
type RenderPrecondition struct {
	Key     string
	Columns int
	Cells   int
}

func (e *RenderPrecondition) Error() string {
	return fmt.Sprintf("row renderer produced %d cells for %d columns (resource %s)", e.Cells, e.Columns, e.Key)
}

// renderRow calls render and enforces the cell count.
func renderRow(render RowRenderer, r k8s.Resource, cols []Column) []string {
	cells := render(r, cols)
	if len(cells) != len(cols) {
		panic(&RenderPrecondition{Key: r.Key(), Columns: len(cols), Cells: len(cells)})
	}
	return cells
}

// ColumnIndex returns the position of the column with id, -1 if absent.
func ColumnIndex(cols []Column, id string) int {
	for i, c := range cols {
		if c.ID == id {
			return i
		}
	}
	return -1
}
