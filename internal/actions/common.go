package actions

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/logging"
	"github.com/renato0307/k1console/internal/messages"
)

// Deps are the collaborators the common actions need.
type Deps struct {
	Mutator   k8s.Mutator
	Clipboard ClipboardWriter
}

func (d Deps) clipboard() ClipboardWriter {
	if d.Clipboard == nil {
		return SystemClipboard
	}
	return d.Clipboard
}

// notTerminating hides actions on objects that are already being deleted.
func notTerminating(r k8s.Resource) bool {
	return !r.Terminating()
}

// KubectlTarget renders "kind/name -n namespace" for kubectl commands.
func KubectlTarget(r k8s.Resource) string {
	target := strings.ToLower(r.Kind) + "/" + r.Name
	if r.Namespace != "" {
		target += " -n " + r.Namespace
	}
	return target
}

// Common returns the actions every kind gets after its own: edit and delete.
func Common(deps Deps) []MenuAction {
	return []MenuAction{
		{
			ID:          "edit",
			Label:       "Edit",
			LabelKey:    "action.edit",
			Description: "Copy kubectl edit command",
			Shortcut:    "e",
			Applicable:  notTerminating,
			Handler: func(r k8s.Resource) tea.Cmd {
				return copyCmd(deps.clipboard(), "kubectl edit "+KubectlTarget(r))
			},
		},
		{
			ID:                "delete",
			Label:             "Delete",
			LabelKey:          "action.delete",
			Description:       "Delete the resource",
			Shortcut:          "ctrl+d",
			NeedsConfirmation: true,
			Applicable:        notTerminating,
			Handler: func(r k8s.Resource) tea.Cmd {
				return DeleteCommand(deps.Mutator, r)
			},
		},
	}
}

// DeleteCommand deletes r and reports the outcome as a status message.
func DeleteCommand(m k8s.Mutator, r k8s.Resource) tea.Cmd {
	return func() tea.Msg {
		if m == nil {
			return messages.ErrorCmd("Delete is not available")()
		}
		ctx, cancel := context.WithTimeout(context.Background(), k8s.APITimeout)
		defer cancel()

		if err := m.Delete(ctx, r.Kind, r.Namespace, r.Name); err != nil {
			logging.Error("delete failed", "kind", r.Kind, "key", r.Key(), "error", err)
			return messages.ErrorCmd("Delete failed: %v", err)()
		}
		return messages.SuccessCmd("Deleted %s %s", r.Kind, r.Key())()
	}
}

// Confirmation returns the prompt shown before a confirmed action runs.
func Confirmation(a MenuAction, r k8s.Resource) string {
	return fmt.Sprintf("%s %s %s?", a.Label, r.Kind, r.Key())
}
