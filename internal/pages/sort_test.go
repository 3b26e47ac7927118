package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/k1console/internal/k8s"
)

func TestCompareKeys(t *testing.T) {
	tests := []struct {
		name string
		a, b sortKey
		want int
	}{
		{name: "missing first", a: sortKey{}, b: sortKey{value: "x", found: true}, want: -1},
		{name: "both missing", a: sortKey{}, b: sortKey{}, want: 0},
		{name: "missing equals empty list", a: sortKey{}, b: sortKey{value: []any{}, found: true}, want: 0},
		{name: "missing before non-empty list", a: sortKey{}, b: sortKey{value: []any{1}, found: true}, want: -1},
		{name: "map after missing", a: sortKey{value: map[string]any{"a": 1}, found: true}, b: sortKey{}, want: 1},
		{name: "numbers", a: sortKey{value: int64(10), found: true}, b: sortKey{value: 9.5, found: true}, want: 1},
		{name: "lists by length", a: sortKey{value: []any{1}, found: true}, b: sortKey{value: []any{1, 2}, found: true}, want: -1},
		{name: "maps by length", a: sortKey{value: map[string]any{"a": 1}, found: true}, b: sortKey{value: map[string]any{}, found: true}, want: 1},
		{name: "bools", a: sortKey{value: false, found: true}, b: sortKey{value: true, found: true}, want: -1},
		{
			name: "timestamps chronologically",
			a:    sortKey{value: "2026-01-02T00:00:00Z", found: true},
			b:    sortKey{value: "2026-01-02T00:00:00+01:00", found: true},
			want: 1,
		},
		{name: "strings", a: sortKey{value: "b", found: true}, b: sortKey{value: "a", found: true}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareKeys(tt.a, tt.b))
		})
	}
}

func TestSortResourcesIsStable(t *testing.T) {
	// b and c share a secret count
	items := []k8s.Resource{sa("a", "s1", "s2"), sa("b", "s1"), sa("c", "s3")}

	assert.Equal(t, []string{"b", "c", "a"}, names(sortResources(items, "secrets", Ascending)))
	assert.Equal(t, []string{"a", "b", "c"}, names(sortResources(items, "secrets", Descending)))
}

func TestSortResourcesMissingFieldFirst(t *testing.T) {
	items := []k8s.Resource{sa("a", "s1"), sa("b")}

	assert.Equal(t, []string{"b", "a"}, names(sortResources(items, "secrets", Ascending)))
}

func TestSortResourcesMissingListCountsAsEmpty(t *testing.T) {
	empty := withSecretEntries(sa("b"))
	items := []k8s.Resource{empty, sa("a"), sa("c", "s1")}

	assert.Equal(t, []string{"b", "a", "c"}, names(sortResources(items, "secrets", Ascending)))
	assert.Equal(t, []string{"c", "b", "a"}, names(sortResources(items, "secrets", Descending)))
}

func TestSortDirection(t *testing.T) {
	assert.Equal(t, Descending, Ascending.Toggle())
	assert.Equal(t, Ascending, Descending.Toggle())
	assert.Equal(t, "asc", Ascending.String())
	assert.Equal(t, "↓", Descending.Indicator())
}
