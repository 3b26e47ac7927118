// Package secrets describes how Secrets are listed. The service account
// details page embeds this list for the secrets an account references.
package secrets

import (
	"fmt"
	"time"

	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/pages"
)

// Column IDs.
const (
	ColName      = "name"
	ColNamespace = "namespace"
	ColType      = "type"
	ColSize      = "size"
	ColCreated   = "created"
)

// Schema returns the Secret columns. Size is the number of data keys, the
// DATA column of kubectl get secrets.
func Schema(t i18n.Translator) []pages.Column {
	return []pages.Column{
		{ID: ColName, Title: t.T("secrets.column.name"), SortField: "metadata.name", Priority: 1},
		{ID: ColNamespace, Title: t.T("secrets.column.ns"), SortField: "metadata.namespace", Width: 16, Priority: 2},
		{ID: ColType, Title: t.T("secrets.column.type"), SortField: "type", Width: 36, Priority: 2},
		{ID: ColSize, Title: t.T("secrets.column.size"), SortField: "data", Width: 6, Priority: 3},
		{ID: ColCreated, Title: t.T("secrets.column.created"), SortField: "metadata.creationTimestamp", Width: 10, Priority: 1},
	}
}

// Renderer renders Secret rows with ages relative to now().
func Renderer(now func() time.Time) pages.RowRenderer {
	return func(r k8s.Resource, cols []pages.Column) []string {
		cells := make([]string, len(cols))
		for i, col := range cols {
			switch col.ID {
			case ColName:
				cells[i] = r.Name
			case ColNamespace:
				cells[i] = r.Namespace
			case ColType:
				cells[i] = k8s.EvaluateJSONPath(r.Object, "type")
			case ColSize:
				data, _ := r.Field("data")
				m, _ := data.(map[string]any)
				cells[i] = fmt.Sprint(len(m))
			case ColCreated:
				cells[i] = k8s.FormatTimestamp(r.CreationTimestamp, now())
			}
		}
		return cells
	}
}
