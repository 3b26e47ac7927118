package ui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	for _, name := range AvailableThemes() {
		t.Run(name, func(t *testing.T) {
			theme := GetTheme(name)
			assert.Equal(t, name, theme.Name)
			assert.NotEmpty(t, theme.SyntaxStyle)
		})
	}

	assert.Equal(t, "charm", GetTheme("no-such-theme").Name)
}

func TestHighlightYAMLKeepsText(t *testing.T) {
	src := "kind: ServiceAccount\nmetadata:\n  name: builder\n"

	out := HighlightYAML(src, "dracula")

	assert.Equal(t, src, ansi.Strip(out))
	assert.Equal(t, src, ansi.Strip(HighlightYAML(src, "unknown-style")))
	assert.Equal(t, "", HighlightYAML("", "dracula"))
}
