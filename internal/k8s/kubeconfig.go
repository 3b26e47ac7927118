package k8s

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"k8s.io/client-go/tools/clientcmd"
)

// ContextInfo holds context metadata from kubeconfig
type ContextInfo struct {
	Name      string
	Cluster   string
	User      string
	Namespace string
	Current   bool
}

// DefaultKubeconfigPath returns $KUBECONFIG's first entry or
// $HOME/.kube/config.
func DefaultKubeconfigPath() (string, error) {
	if env := os.Getenv(clientcmd.RecommendedConfigPathEnvVar); env != "" {
		return filepath.SplitList(env)[0], nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.New("HOME environment variable not set and no kubeconfig provided")
	}
	return filepath.Join(home, ".kube", "config"), nil
}

// ListContexts loads kubeconfig and returns its contexts sorted by name.
func ListContexts(kubeconfigPath string) ([]ContextInfo, error) {
	config, err := clientcmd.LoadFromFile(kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	contexts := make([]ContextInfo, 0, len(config.Contexts))
	for name, ctx := range config.Contexts {
		contexts = append(contexts, ContextInfo{
			Name:      name,
			Cluster:   ctx.Cluster,
			User:      ctx.AuthInfo,
			Namespace: ctx.Namespace,
			Current:   name == config.CurrentContext,
		})
	}

	// map iteration order is random
	sort.Slice(contexts, func(i, j int) bool {
		return contexts[i].Name < contexts[j].Name
	})
	return contexts, nil
}

// ContextNamespace returns the namespace configured for contextName, or for
// the current context when contextName is empty. An unknown context is an
// error; a context without a namespace yields "".
func ContextNamespace(kubeconfigPath, contextName string) (string, error) {
	contexts, err := ListContexts(kubeconfigPath)
	if err != nil {
		return "", err
	}
	for _, ctx := range contexts {
		if (contextName == "" && ctx.Current) || ctx.Name == contextName {
			return ctx.Namespace, nil
		}
	}
	if contextName == "" {
		return "", nil
	}
	return "", fmt.Errorf("context %q not found in %s", contextName, kubeconfigPath)
}
