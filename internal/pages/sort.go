package pages

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/renato0307/k1console/internal/k8s"
)

// SortDirection orders a column ascending or descending.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Toggle flips the direction.
func (d SortDirection) Toggle() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Indicator is the arrow shown next to the sorted column title.
func (d SortDirection) Indicator() string {
	if d == Descending {
		return "↓"
	}
	return "↑"
}

type sortKey struct {
	value any
	found bool
}

// sortResources stable-sorts items by the value at field. Equal values keep
// their input order in both directions.
func sortResources(items []k8s.Resource, field string, dir SortDirection) []k8s.Resource {
	type keyed struct {
		r   k8s.Resource
		key sortKey
	}
	rows := make([]keyed, len(items))
	for i, r := range items {
		v, ok := r.Field(field)
		rows[i] = keyed{r: r, key: sortKey{value: v, found: ok}}
	}

	slices.SortStableFunc(rows, func(a, b keyed) int {
		c := compareKeys(a.key, b.key)
		if dir == Descending {
			return -c
		}
		return c
	})

	out := make([]k8s.Resource, len(rows))
	for i, row := range rows {
		out[i] = row.r
	}
	return out
}

// compareKeys orders missing values first, then compares by type: numbers
// numerically, RFC3339 timestamps chronologically, lists and maps by
// length, booleans false first and anything else as text. Against a list
// or map a missing value counts as empty.
func compareKeys(a, b sortKey) int {
	switch {
	case !a.found && !b.found:
		return 0
	case !a.found:
		if bl, ok := length(b.value); ok {
			return cmp.Compare(0, bl)
		}
		return -1
	case !b.found:
		if al, ok := length(a.value); ok {
			return cmp.Compare(al, 0)
		}
		return 1
	}
	return compareValues(a.value, b.value)
}

func compareValues(a, b any) int {
	if an, ok := number(a); ok {
		if bn, ok := number(b); ok {
			return cmp.Compare(an, bn)
		}
	}
	if al, ok := length(a); ok {
		if bl, ok := length(b); ok {
			return cmp.Compare(al, bl)
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			return compareBools(ab, bb)
		}
	}
	as, bs := text(a), text(b)
	if at, err := time.Parse(time.RFC3339, as); err == nil {
		if bt, err := time.Parse(time.RFC3339, bs); err == nil {
			return at.Compare(bt)
		}
	}
	return strings.Compare(as, bs)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func length(v any) (int, bool) {
	switch l := v.(type) {
	case []any:
		return len(l), true
	case map[string]any:
		return len(l), true
	case []string:
		return len(l), true
	}
	return 0, false
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
