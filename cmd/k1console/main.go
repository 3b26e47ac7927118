package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/klog/v2"

	"github.com/renato0307/k1console/internal/actions"
	"github.com/renato0307/k1console/internal/app"
	"github.com/renato0307/k1console/internal/config"
	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/k8s/dummy"
	"github.com/renato0307/k1console/internal/logging"
	"github.com/renato0307/k1console/internal/ui"
)

func main() {
	silenceKlog()
	defer klog.Flush()

	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := logging.Init(cfg.Logging()); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Shutdown()

	bundle, err := i18n.NewBundle()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading translations: %v\n", err)
		os.Exit(1)
	}

	var backend k8s.Backend
	var namespace string
	if cfg.Dummy {
		backend = dummy.NewSeededSource(time.Now())
		namespace = cfg.ListNamespace("")
		fmt.Println("Running in dummy mode (no cluster connection)")
	} else {
		// Only the copied commands need kubectl
		if err := checkKubectlAvailable(); err != nil {
			fmt.Printf("Warning: %v\n", err)
			fmt.Println("Copied kubectl commands will not run without it.")
			fmt.Println()
		}

		fmt.Println("Connecting to Kubernetes cluster...")
		source, err := k8s.NewClusterSource(cfg.Kubeconfig, cfg.Context)
		if err != nil {
			fmt.Printf("Error initializing Kubernetes connection: %v\n", err)
			os.Exit(1)
		}
		backend = source
		namespace = cfg.ListNamespace(contextNamespace(source))
	}

	logging.Info("starting", "context", backend.Context(), "namespace", namespace, "locale", cfg.Locale)

	model := app.New(app.Options{
		Backend:   backend,
		Theme:     ui.GetTheme(cfg.Theme),
		Bundle:    bundle,
		Locale:    cfg.Locale,
		Namespace: namespace,
		Clipboard: actions.SystemClipboard,
		Now:       time.Now,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.Error("program failed", "error", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// silenceKlog keeps client-go watch errors (RBAC denials and the like) off
// the terminal; they would corrupt the alt screen.
func silenceKlog() {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	fs.Set("logtostderr", "false")
	fs.Set("stderrthreshold", "FATAL")
	fs.Set("v", "0")
}

// contextNamespace is the namespace of the active context, "default" when
// it sets none.
func contextNamespace(source *k8s.ClusterSource) string {
	ns, err := k8s.ContextNamespace(source.Kubeconfig(), source.Context())
	if err != nil {
		logging.Warn("could not read context namespace", "error", err)
	}
	if ns == "" {
		return "default"
	}
	return ns
}

// checkKubectlAvailable checks if kubectl is available in PATH
func checkKubectlAvailable() error {
	if _, err := exec.LookPath("kubectl"); err != nil {
		return fmt.Errorf("kubectl not found in PATH\nInstall: https://kubernetes.io/docs/tasks/tools/")
	}
	return nil
}
