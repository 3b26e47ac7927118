package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/k1console/internal/ui"
)

// Layout stacks header, body, help line and status line.
type Layout struct {
	width  int
	height int
	theme  *ui.Theme
}

func NewLayout(theme *ui.Theme) *Layout {
	return &Layout{theme: theme}
}

func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// BodyHeight returns the rows left for the page body.
func (l *Layout) BodyHeight() int {
	// header, blank line, help, status
	reserved := 4
	bodyHeight := l.height - reserved
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	return bodyHeight
}

// Render builds the full screen. The body is clipped to BodyHeight so the
// help and status lines never scroll away.
func (l *Layout) Render(header, body, help, status string) string {
	body = lipgloss.NewStyle().MaxHeight(l.BodyHeight()).Height(l.BodyHeight()).Render(body)
	helpLine := lipgloss.NewStyle().Foreground(l.theme.Muted).Render(help)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, helpLine, status)
}
