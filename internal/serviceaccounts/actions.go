package serviceaccounts

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/k1console/internal/actions"
	"github.com/renato0307/k1console/internal/k8s"
)

// TokenCommand is the kubectl command that mints a token for r.
func TokenCommand(r k8s.Resource) string {
	return "kubectl create token " + r.Name + " -n " + r.Namespace
}

// CreateCommand is the template copied by the create affordance.
func CreateCommand(namespace string) string {
	if namespace == "" {
		namespace = "<namespace>"
	}
	return "kubectl create serviceaccount <name> -n " + namespace
}

// Provider contributes the ServiceAccount actions that precede edit and
// delete.
func Provider(write actions.ClipboardWriter) actions.Provider {
	if write == nil {
		write = actions.SystemClipboard
	}
	return actions.Provider{
		Kind: k8s.KindServiceAccount,
		Actions: []actions.MenuAction{
			{
				ID:          "create-token",
				Label:       "Create token",
				LabelKey:    "serviceaccounts.action.token",
				Description: "Copy kubectl create token command",
				Shortcut:    "t",
				Applicable:  func(r k8s.Resource) bool { return !r.Terminating() },
				Handler: func(r k8s.Resource) tea.Cmd {
					return actions.CopyCommand(write, TokenCommand(r))
				},
			},
		},
	}
}
