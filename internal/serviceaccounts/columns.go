// Package serviceaccounts wires ServiceAccounts into the generic pages: the
// column schema and row renderer, the details section with the secrets the
// account references, and the ServiceAccount menu actions.
package serviceaccounts

import (
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/renato0307/k1console/internal/actions"
	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/pages"
)

// Column IDs.
const (
	ColName      = "name"
	ColNamespace = "namespace"
	ColSecrets   = "secrets"
	ColCreated   = "created"
	ColActions   = "actions"
)

// Kebab marks the trailing actions column.
const Kebab = "⋮"

// Schema returns the ServiceAccount columns: Secrets is dropped first on
// narrow terminals, then Created.
func Schema(t i18n.Translator) []pages.Column {
	return []pages.Column{
		{ID: ColName, Title: t.T("serviceaccounts.column.name"), SortField: "metadata.name", Priority: 1},
		{ID: ColNamespace, Title: t.T("serviceaccounts.column.ns"), SortField: "metadata.namespace", Width: 16, Priority: 1},
		{ID: ColSecrets, Title: t.T("serviceaccounts.column.secrets"), SortField: "secrets", Width: 10, Priority: 3},
		{ID: ColCreated, Title: t.T("serviceaccounts.column.created"), SortField: "metadata.creationTimestamp", Width: 10, Priority: 2},
		{ID: ColActions, Title: Kebab, Width: 4, Priority: 1},
	}
}

// Renderer renders ServiceAccount rows. The Secrets cell counts every entry
// of the secrets list, named or not. The kebab cell counts the actions reg
// offers for the row; a nil registry leaves the bare marker.
func Renderer(reg *actions.Registry, now func() time.Time) pages.RowRenderer {
	return func(r k8s.Resource, cols []pages.Column) []string {
		cells := make([]string, len(cols))
		for i, col := range cols {
			switch col.ID {
			case ColName:
				cells[i] = r.Name
			case ColNamespace:
				cells[i] = r.Namespace
			case ColSecrets:
				secrets, _, _ := unstructured.NestedSlice(r.Object, "secrets")
				cells[i] = fmt.Sprint(len(secrets))
			case ColCreated:
				cells[i] = k8s.FormatTimestamp(r.CreationTimestamp, now())
			case ColActions:
				cells[i] = Kebab
				if reg != nil {
					cells[i] = fmt.Sprintf("%s%d", Kebab, len(reg.ForResource(r)))
				}
			}
		}
		return cells
	}
}
