package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/k1console/internal/ui"
)

// Header is the top line: page title, namespace scope and item count on the
// left, cluster context and locale on the right.
type Header struct {
	appName   string
	title     string
	namespace string
	itemCount int
	context   string
	locale    string
	width     int
	theme     *ui.Theme
}

func NewHeader(theme *ui.Theme, appName string) *Header {
	return &Header{appName: appName, theme: theme, itemCount: -1}
}

func (h *Header) SetTitle(title string) {
	h.title = title
}

func (h *Header) SetNamespace(namespace string) {
	h.namespace = namespace
}

// SetItemCount sets the count shown; negative hides it.
func (h *Header) SetItemCount(count int) {
	h.itemCount = count
}

func (h *Header) SetContext(context string) {
	h.context = context
}

func (h *Header) SetLocale(locale string) {
	h.locale = locale
}

func (h *Header) SetWidth(width int) {
	h.width = width
}

func (h *Header) View() string {
	leftParts := []string{h.appName}
	if h.title != "" {
		leftParts = append(leftParts, h.title)
	}
	if h.namespace != "" {
		leftParts = append(leftParts, "namespace: "+h.namespace)
	} else {
		leftParts = append(leftParts, "all namespaces")
	}
	if h.itemCount >= 0 {
		leftParts = append(leftParts, fmt.Sprintf("%d items", h.itemCount))
	}
	left := h.theme.Header.Render(strings.Join(leftParts, " • "))

	rightParts := []string{}
	if h.context != "" {
		rightParts = append(rightParts, "ctx: "+h.context)
	}
	if h.locale != "" {
		rightParts = append(rightParts, h.locale)
	}
	right := lipgloss.NewStyle().Foreground(h.theme.Muted).Padding(0, 1).Render(strings.Join(rightParts, " • "))

	spacing := h.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 0 {
		spacing = 0
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", spacing), right)
}
