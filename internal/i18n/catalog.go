package i18n

var catalogs = map[string]map[string]string{
	"en": {
		"serviceaccounts.title":          "ServiceAccounts",
		"serviceaccounts.column.name":    "Name",
		"serviceaccounts.column.ns":      "Namespace",
		"serviceaccounts.column.secrets": "Secrets",
		"serviceaccounts.column.created": "Created",
		"serviceaccounts.details":        "ServiceAccount details",
		"serviceaccounts.secrets":        "Secrets",
		"serviceaccounts.action.token":   "Create token",
		"serviceaccounts.create":         "Create ServiceAccount",

		"secrets.title":          "Secrets",
		"secrets.column.name":    "Name",
		"secrets.column.ns":      "Namespace",
		"secrets.column.type":    "Type",
		"secrets.column.size":    "Size",
		"secrets.column.created": "Created",

		"summary.name":        "Name",
		"summary.namespace":   "Namespace",
		"summary.labels":      "Labels",
		"summary.annotations": "Annotations",
		"summary.created":     "Created",
		"summary.owner":       "Owner",
		"summary.uid":         "UID",
		"summary.none":        "None",

		"tab.details":  "Details",
		"tab.yaml":     "YAML",
		"tab.describe": "Describe",

		"page.loading":   "Loading…",
		"page.error":     "Error loading {0}",
		"page.retry":     "press r to retry",
		"page.notfound":  "{0} {1} no longer exists",
		"page.empty":     "No {0} found",
		"page.filter":    "Filter",
		"page.items":     "{0} items",
		"page.create":    "c: create",
		"page.menu":      "m: actions",
		"page.sorted":    "sorted by {0}",
		"table.hidden":   "+{0} hidden",
		"action.edit":    "Edit",
		"action.delete":  "Delete",
		"action.confirm": "Press y to confirm, any other key to cancel",

		"help.move":      "↑/↓ move",
		"help.scroll":    "↑/↓ scroll",
		"help.open":      "enter open",
		"help.sort":      "s/S sort",
		"help.tabs":      "tab/1-9 switch tab",
		"help.back":      "esc back",
		"help.namespace": "N namespace",
		"help.language":  "L language",
		"help.quit":      "q quit",
	},
	"de": {
		"serviceaccounts.title":          "Dienstkonten",
		"serviceaccounts.column.name":    "Name",
		"serviceaccounts.column.ns":      "Namensraum",
		"serviceaccounts.column.secrets": "Geheimnisse",
		"serviceaccounts.column.created": "Erstellt",
		"serviceaccounts.details":        "Dienstkonto-Details",
		"serviceaccounts.secrets":        "Geheimnisse",
		"serviceaccounts.action.token":   "Token erstellen",
		"serviceaccounts.create":         "Dienstkonto erstellen",

		"secrets.title":          "Geheimnisse",
		"secrets.column.name":    "Name",
		"secrets.column.ns":      "Namensraum",
		"secrets.column.type":    "Typ",
		"secrets.column.size":    "Größe",
		"secrets.column.created": "Erstellt",

		"summary.name":        "Name",
		"summary.namespace":   "Namensraum",
		"summary.labels":      "Labels",
		"summary.annotations": "Annotationen",
		"summary.created":     "Erstellt",
		"summary.owner":       "Besitzer",
		"summary.uid":         "UID",
		"summary.none":        "Keine",

		"tab.details":  "Details",
		"tab.yaml":     "YAML",
		"tab.describe": "Beschreibung",

		"page.loading":   "Wird geladen…",
		"page.error":     "Fehler beim Laden von {0}",
		"page.retry":     "r drücken für neuen Versuch",
		"page.notfound":  "{0} {1} existiert nicht mehr",
		"page.empty":     "Keine {0} gefunden",
		"page.filter":    "Filter",
		"page.items":     "{0} Einträge",
		"page.create":    "c: erstellen",
		"page.menu":      "m: Aktionen",
		"page.sorted":    "sortiert nach {0}",
		"table.hidden":   "+{0} ausgeblendet",
		"action.edit":    "Bearbeiten",
		"action.delete":  "Löschen",
		"action.confirm": "y zum Bestätigen, andere Taste zum Abbrechen",

		"help.move":      "↑/↓ bewegen",
		"help.scroll":    "↑/↓ blättern",
		"help.open":      "enter öffnen",
		"help.sort":      "s/S sortieren",
		"help.tabs":      "tab/1-9 Reiter wechseln",
		"help.back":      "esc zurück",
		"help.namespace": "N Namensraum",
		"help.language":  "L Sprache",
		"help.quit":      "q beenden",
	},
}
