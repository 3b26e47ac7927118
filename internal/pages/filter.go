package pages

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/renato0307/k1console/internal/k8s"
)

// Filter is a client-side predicate applied to the subscribed collection
// before it reaches the list component.
type Filter func(r k8s.Resource) bool

// NameIn keeps resources whose name is in names. An empty set keeps nothing.
func NameIn(names ...string) Filter {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(r k8s.Resource) bool {
		_, ok := set[r.Name]
		return ok
	}
}

// InNamespace keeps resources in namespace; "" keeps everything.
func InNamespace(namespace string) Filter {
	return func(r k8s.Resource) bool {
		return namespace == "" || r.Namespace == namespace
	}
}

// LabelEquals keeps resources carrying label key=value.
func LabelEquals(key, value string) Filter {
	return func(r k8s.Resource) bool {
		v, ok := r.Labels()[key]
		return ok && v == value
	}
}

// All combines filters; every one must match.
func All(filters ...Filter) Filter {
	return func(r k8s.Resource) bool {
		for _, f := range filters {
			if f != nil && !f(r) {
				return false
			}
		}
		return true
	}
}

// SearchText returns the text the fuzzy filter matches against.
type SearchText func(r k8s.Resource) string

// DefaultSearchText matches on namespace/name.
func DefaultSearchText(r k8s.Resource) string {
	return r.Key()
}

// FuzzyFilter returns the resources matching query, in their original order.
// A leading "!" inverts the match.
func FuzzyFilter(query string, items []k8s.Resource, text SearchText) []k8s.Resource {
	if query == "" {
		return items
	}
	if text == nil {
		text = DefaultSearchText
	}

	negate := strings.HasPrefix(query, "!")
	pattern := strings.ToLower(strings.TrimPrefix(query, "!"))
	if pattern == "" {
		return items
	}

	haystack := make([]string, len(items))
	for i, r := range items {
		haystack[i] = strings.ToLower(text(r))
	}

	matched := make(map[int]bool)
	for _, m := range fuzzy.Find(pattern, haystack) {
		matched[m.Index] = true
	}

	out := make([]k8s.Resource, 0, len(items))
	for i, r := range items {
		if matched[i] != negate {
			out = append(out, r)
		}
	}
	return out
}
