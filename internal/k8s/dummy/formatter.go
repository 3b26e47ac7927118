package dummy

import (
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/renato0307/k1console/internal/k8s"
)

// YAML marshals the stored object; there is no API server to ask.
func (s *Source) YAML(r k8s.Resource) (string, error) {
	out, err := yaml.Marshal(r.Object)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", r.Key(), err)
	}
	return string(out), nil
}

// Describe implements k8s.Formatter with the offline summary.
func (s *Source) Describe(r k8s.Resource) (string, error) {
	return k8s.DescribeObject(r), nil
}
