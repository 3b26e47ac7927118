package actions

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/renato0307/k1console/internal/k8s"
)

// Registry resolves the menu for a kind: the kind's extension actions in
// registration order, then the common actions.
type Registry struct {
	providers []Provider
	common    []MenuAction
}

// NewRegistry creates a registry with the common tail and any providers.
func NewRegistry(common []MenuAction, providers ...Provider) *Registry {
	return &Registry{
		providers: append([]Provider(nil), providers...),
		common:    append([]MenuAction(nil), common...),
	}
}

// Register appends a provider after the existing ones.
func (r *Registry) Register(p Provider) {
	r.providers = append(r.providers, p)
}

// Resolve returns every action for kind, without applicability filtering.
func (r *Registry) Resolve(kind string) []MenuAction {
	var out []MenuAction
	for _, p := range r.providers {
		if strings.EqualFold(p.Kind, kind) {
			out = append(out, p.Actions...)
		}
	}
	return append(out, r.common...)
}

// ForResource returns the actions applicable to res right now.
func (r *Registry) ForResource(res k8s.Resource) []MenuAction {
	all := r.Resolve(res.Kind)
	out := make([]MenuAction, 0, len(all))
	for _, a := range all {
		if a.AppliesTo(res) {
			out = append(out, a)
		}
	}
	return out
}

// Filter fuzzy-matches query against the given labels; the result is
// ordered by match score. An empty query returns list unchanged.
func Filter(query string, list []MenuAction, labels []string) []MenuAction {
	if query == "" {
		return list
	}
	matches := fuzzy.Find(strings.ToLower(query), lower(labels))
	out := make([]MenuAction, 0, len(matches))
	for _, m := range matches {
		out = append(out, list[m.Index])
	}
	return out
}

func lower(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
