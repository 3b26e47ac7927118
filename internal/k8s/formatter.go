package k8s

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/cli-runtime/pkg/printers"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/kubectl/pkg/describe"
	"sigs.k8s.io/yaml"

	"github.com/renato0307/k1console/internal/logging"
)

// ResourceFormatter renders resources the way kubectl does. Without a rest
// config, Describe falls back to a summary built from the object itself.
type ResourceFormatter struct {
	restConfig *rest.Config
}

// NewResourceFormatter creates a formatter; restConfig may be nil.
func NewResourceFormatter(restConfig *rest.Config) *ResourceFormatter {
	return &ResourceFormatter{restConfig: restConfig}
}

// YAML returns the object as kubectl get -o yaml prints it.
func (f *ResourceFormatter) YAML(r Resource) (string, error) {
	printer := printers.NewTypeSetter(scheme.Scheme).ToPrinter(&printers.YAMLPrinter{})
	timing := logging.Start("yaml " + r.Key())
	defer logging.End(timing)

	var buf bytes.Buffer
	if err := printer.PrintObj(r.Unstructured(), &buf); err != nil {
		return "", fmt.Errorf("failed to print YAML for %s: %w", r.Key(), err)
	}
	return buf.String(), nil
}

// Describe returns kubectl describe output, including events.
func (f *ResourceFormatter) Describe(r Resource) (string, error) {
	info, ok := LookupKind(r.Kind)
	if !ok || f.restConfig == nil {
		return DescribeObject(r), nil
	}

	describer, ok := describe.DescriberFor(info.GroupKind(), f.restConfig)
	if !ok {
		return DescribeObject(r), nil
	}

	var out string
	var err error
	logging.Time("describe "+r.Kind+" "+r.Key(), func() {
		out, err = describer.Describe(r.Namespace, r.Name, describe.DescriberSettings{ShowEvents: true, ChunkSize: 500})
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe %s %s: %w", r.Kind, r.Key(), err)
	}
	return out, nil
}

// DescribeObject builds a describe-style summary without talking to the cluster.
func DescribeObject(r Resource) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Name:         %s\n", r.Name)
	if r.Namespace != "" {
		fmt.Fprintf(&buf, "Namespace:    %s\n", r.Namespace)
	}
	fmt.Fprintf(&buf, "Kind:         %s\n", r.Kind)
	writeMap(&buf, "Labels:", r.Labels())
	writeMap(&buf, "Annotations:", r.Annotations())
	if !r.CreationTimestamp.IsZero() {
		fmt.Fprintf(&buf, "Created:      %s\n", r.CreationTimestamp.UTC().Format("Mon, 02 Jan 2006 15:04:05 -0700"))
	}

	if secrets := r.ReferencedNames("secrets"); len(secrets) > 0 {
		writeList(&buf, "Mountable secrets:", secrets)
	}
	if pulls := r.ReferencedNames("imagePullSecrets"); len(pulls) > 0 {
		writeList(&buf, "Image pull secrets:", pulls)
	}

	status, found, err := unstructured.NestedFieldCopy(r.Object, "status")
	if found && err == nil {
		if statusYAML, err := yaml.Marshal(status); err == nil {
			buf.WriteString("Status:\n")
			for _, line := range strings.Split(strings.TrimRight(string(statusYAML), "\n"), "\n") {
				buf.WriteString("  " + line + "\n")
			}
		}
	}
	buf.WriteString("Events:       <none>\n")
	return buf.String()
}

func writeMap(buf *strings.Builder, title string, m map[string]string) {
	if len(m) == 0 {
		fmt.Fprintf(buf, "%-14s<none>\n", title)
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	items := make([]string, len(keys))
	for i, k := range keys {
		items[i] = k + "=" + m[k]
	}
	writeList(buf, title, items)
}

func writeList(buf *strings.Builder, title string, items []string) {
	for i, item := range items {
		if i == 0 {
			fmt.Fprintf(buf, "%-14s%s\n", title, item)
			continue
		}
		fmt.Fprintf(buf, "%-14s%s\n", "", item)
	}
}
