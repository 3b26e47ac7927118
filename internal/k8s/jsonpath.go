package k8s

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/util/jsonpath"
)

// FieldValue looks up a value inside an object. Dotted paths such as
// "metadata.name" are walked directly; anything with brackets or braces
// ("secrets[*].name", "{.status.phase}") goes through client-go's JSONPath
// with missing keys allowed. Multiple JSONPath matches come back as []any.
func FieldValue(obj map[string]any, path string) (any, bool) {
	path = strings.TrimSpace(path)
	if path == "" || obj == nil {
		return nil, false
	}

	if !strings.ContainsAny(path, "[]{}@") {
		fields := strings.Split(strings.TrimPrefix(path, "."), ".")
		v, found, err := unstructured.NestedFieldNoCopy(obj, fields...)
		if err != nil || !found {
			return nil, false
		}
		return v, true
	}

	results, ok := findJSONPath(obj, path)
	if !ok {
		return nil, false
	}
	if len(results) == 1 {
		return results[0], true
	}
	return results, true
}

func findJSONPath(obj map[string]any, expr string) ([]any, bool) {
	// client-go's parser expects the expression wrapped in {}
	if !strings.HasPrefix(expr, "{") {
		if !strings.HasPrefix(expr, ".") {
			expr = "." + expr
		}
		expr = "{" + expr + "}"
	}

	jp := jsonpath.New("field")
	jp.AllowMissingKeys(true)
	if err := jp.Parse(expr); err != nil {
		return nil, false
	}

	results, err := jp.FindResults(obj)
	if err != nil || len(results) == 0 || len(results[0]) == 0 {
		return nil, false
	}

	values := make([]any, 0, len(results[0]))
	for _, r := range results[0] {
		if r.IsValid() && r.CanInterface() {
			values = append(values, r.Interface())
		}
	}
	return values, len(values) > 0
}

// EvaluateJSONPath returns the value at path formatted for a table cell, or
// "" when it is missing.
func EvaluateJSONPath(obj map[string]any, path string) string {
	v, ok := FieldValue(obj, path)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// FormatValue renders a field value as cell text.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int, int32, int64:
		return fmt.Sprintf("%d", v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = FormatValue(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}
