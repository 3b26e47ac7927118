package actions

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/k1console/internal/messages"
)

// ClipboardWriter writes text to the system clipboard.
type ClipboardWriter func(text string) error

// SystemClipboard uses the OS clipboard.
var SystemClipboard ClipboardWriter = clipboard.WriteAll

// CopyToClipboard copies text and describes the result for the status line.
func CopyToClipboard(write ClipboardWriter, text string) (string, error) {
	if err := write(text); err != nil {
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return fmt.Sprintf("Command copied to clipboard: %s", text), nil
}

// copyCmd copies text and reports the outcome as a status message.
func copyCmd(write ClipboardWriter, text string) tea.Cmd {
	return func() tea.Msg {
		msg, err := CopyToClipboard(write, text)
		if err != nil {
			return messages.ErrorCmd("%v", err)()
		}
		return messages.SuccessCmd("%s", msg)()
	}
}

// CopyCommand builds a handler-friendly command that copies text.
func CopyCommand(write ClipboardWriter, text string) tea.Cmd {
	return copyCmd(write, text)
}
