package ui

import (
	"bytes"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightYAML colours YAML for a 256-colour terminal. On failure the
// source is returned unchanged.
func HighlightYAML(src, style string) string {
	if src == "" {
		return src
	}
	if styles.Get(style) == styles.Fallback {
		style = "monokai"
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, src, "yaml", "terminal256", style); err != nil {
		return src
	}
	return buf.String()
}
