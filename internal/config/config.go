// Package config loads the console settings from a YAML file and lets
// command-line flags override them.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/renato0307/k1console/internal/logging"
)

// LogConfig configures the rotating log file. No file means no logging.
type LogConfig struct {
	File       string `json:"file,omitempty"`
	Level      string `json:"level,omitempty"`
	Format     string `json:"format,omitempty"`
	MaxSizeMB  int    `json:"maxSizeMB,omitempty"`
	MaxBackups int    `json:"maxBackups,omitempty"`
}

// Config holds the console settings.
type Config struct {
	Theme  string `json:"theme,omitempty"`
	Locale string `json:"locale,omitempty"`
	// Namespace scopes the ServiceAccount list; empty means the context's
	// namespace, "all" means every namespace.
	Namespace  string    `json:"namespace,omitempty"`
	Kubeconfig string    `json:"kubeconfig,omitempty"`
	Context    string    `json:"context,omitempty"`
	Dummy      bool      `json:"dummy,omitempty"`
	Log        LogConfig `json:"log,omitempty"`
}

// AllNamespaces is the Namespace value selecting every namespace.
const AllNamespaces = "all"

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Theme:  "charm",
		Locale: "en",
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// DefaultPath returns $HOME/.k1console/config.yaml, or "" without a home
// directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".k1console", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error; unknown
// keys are.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads the command line, loads the config file it names (--config,
// DefaultPath otherwise) and applies the flags that were set on top.
func Parse(name string, args []string) (*Config, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)

	var f Config
	path := flags.String("config", DefaultPath(), "Path to the config file")
	flags.StringVar(&f.Theme, "theme", "", "Theme to use (charm, dracula, nord, solarized)")
	flags.StringVar(&f.Locale, "locale", "", "Locale for labels and headings (en, de)")
	flags.StringVar(&f.Namespace, "namespace", "", `Namespace to list, "all" for every namespace`)
	flags.StringVar(&f.Kubeconfig, "kubeconfig", "", "Path to kubeconfig file (default: $HOME/.kube/config)")
	flags.StringVar(&f.Context, "context", "", "Kubernetes context to use")
	flags.BoolVar(&f.Dummy, "dummy", false, "Use dummy data instead of connecting to cluster")
	flags.StringVar(&f.Log.File, "log-file", "", "Write logs to this file (rotated)")
	flags.StringVar(&f.Log.Level, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&f.Log.Format, "log-format", "", "Log format (text, json)")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := Load(*path)
	if err != nil {
		return nil, err
	}

	flags.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "theme":
			cfg.Theme = f.Theme
		case "locale":
			cfg.Locale = f.Locale
		case "namespace":
			cfg.Namespace = f.Namespace
		case "kubeconfig":
			cfg.Kubeconfig = f.Kubeconfig
		case "context":
			cfg.Context = f.Context
		case "dummy":
			cfg.Dummy = f.Dummy
		case "log-file":
			cfg.Log.File = f.Log.File
		case "log-level":
			cfg.Log.Level = f.Log.Level
		case "log-format":
			cfg.Log.Format = f.Log.Format
		}
	})
	return cfg, nil
}

// Logging converts the log section for logging.Init.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		FilePath:   c.Log.File,
		Level:      logging.ParseLevel(c.Log.Level),
		Format:     logging.ParseFormat(c.Log.Format),
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
	}
}

// ListNamespace maps Namespace to a subscription scope, where "" selects
// every namespace. fallback is used when Namespace is unset.
func (c *Config) ListNamespace(fallback string) string {
	switch c.Namespace {
	case AllNamespaces:
		return ""
	case "":
		return fallback
	default:
		return c.Namespace
	}
}
