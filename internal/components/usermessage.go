package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/k1console/internal/types"
	"github.com/renato0307/k1console/internal/ui"
)

// UserMessage shows the outcome of user actions on the bottom line.
// Every message gets an ID so a delayed ClearStatusMsg only clears the
// message it was scheduled for.
type UserMessage struct {
	message     string
	messageType types.MessageType
	id          int
	width       int
	theme       *ui.Theme
	spinner     spinner.Model
}

// NewUserMessage creates a new user message component
func NewUserMessage(theme *ui.Theme) *UserMessage {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"✽", "✻", "✶", "·", "✢"},
		FPS:    time.Second / 6,
	}
	return &UserMessage{theme: theme, spinner: s}
}

// Show displays msg and returns the command that clears it later. Errors and
// loading messages stay until replaced.
func (um *UserMessage) Show(msg types.StatusMsg) tea.Cmd {
	um.id++
	um.message = msg.Message
	um.messageType = msg.Type

	switch msg.Type {
	case types.MessageTypeLoading:
		return um.spinner.Tick
	case types.MessageTypeError:
		return nil
	}
	id := um.id
	return tea.Tick(types.StatusTimeout, func(time.Time) tea.Msg {
		return types.ClearStatusMsg{MessageID: id}
	})
}

// Clear removes the message if it is still the one with the given ID.
func (um *UserMessage) Clear(id int) {
	if id == um.id {
		um.message = ""
		um.messageType = types.MessageTypeInfo
	}
}

// Message returns the current text.
func (um *UserMessage) Message() string {
	return um.message
}

func (um *UserMessage) SetWidth(width int) {
	um.width = width
}

// Update advances the spinner while a loading message is shown.
func (um *UserMessage) Update(msg tea.Msg) tea.Cmd {
	if um.messageType != types.MessageTypeLoading || um.message == "" {
		return nil
	}
	var cmd tea.Cmd
	um.spinner, cmd = um.spinner.Update(msg)
	return cmd
}

// View renders a single line; an empty message still reserves the line.
func (um *UserMessage) View() string {
	if um.message == "" {
		return lipgloss.NewStyle().Width(um.width).Render("")
	}

	text := um.message
	// prefix (2) plus a small margin
	maxLength := um.width - 7
	if maxLength < 20 {
		maxLength = 20
	}
	if r := []rune(text); len(r) > maxLength {
		text = string(r[:maxLength-1]) + "…"
	}

	prefix := "⏺ "
	color := um.theme.Foreground
	switch um.messageType {
	case types.MessageTypeSuccess:
		color = um.theme.Success
	case types.MessageTypeError:
		color = um.theme.Error
	case types.MessageTypeLoading:
		color = um.theme.Accent
		prefix = um.spinner.View() + " "
	}
	return lipgloss.NewStyle().Foreground(color).Render(prefix + text)
}
