package k8s

import (
	"errors"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// ErrInvalidResource is returned when an object lacks the identity fields
// every rendered resource must carry.
var ErrInvalidResource = errors.New("invalid resource")

// Resource is a read-only snapshot of a cluster object. The identity fields
// are validated when the snapshot is built; everything kind-specific stays in
// Object. Object is shared with the informer cache and must not be mutated.
type Resource struct {
	Kind              string
	Namespace         string
	Name              string
	UID               string
	CreationTimestamp time.Time
	Object            map[string]any
}

// NewResource validates u and turns it into a Resource.
func NewResource(u *unstructured.Unstructured) (Resource, error) {
	if u == nil {
		return Resource{}, fmt.Errorf("%w: nil object", ErrInvalidResource)
	}

	kind := u.GetKind()
	name := u.GetName()
	switch {
	case kind == "":
		return Resource{}, fmt.Errorf("%w: missing kind for %q", ErrInvalidResource, name)
	case name == "":
		return Resource{}, fmt.Errorf("%w: %s without name", ErrInvalidResource, kind)
	case u.GetUID() == "":
		return Resource{}, fmt.Errorf("%w: %s %q without uid", ErrInvalidResource, kind, name)
	}
	if info, ok := LookupKind(kind); ok && info.Namespaced && u.GetNamespace() == "" {
		return Resource{}, fmt.Errorf("%w: namespaced %s %q without namespace", ErrInvalidResource, kind, name)
	}

	return Resource{
		Kind:              kind,
		Namespace:         u.GetNamespace(),
		Name:              name,
		UID:               string(u.GetUID()),
		CreationTimestamp: u.GetCreationTimestamp().Time,
		Object:            u.UnstructuredContent(),
	}, nil
}

// Key returns the namespace/name key used by collections and caches.
func (r Resource) Key() string {
	return ObjectKey(r.Namespace, r.Name)
}

// ObjectKey builds a namespace/name key; cluster-scoped objects use the bare name.
func ObjectKey(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "/" + name
}

// Field returns the raw value at path, see FieldValue.
func (r Resource) Field(path string) (any, bool) {
	return FieldValue(r.Object, path)
}

func (r Resource) Labels() map[string]string {
	labels, _, _ := unstructured.NestedStringMap(r.Object, "metadata", "labels")
	return labels
}

func (r Resource) Annotations() map[string]string {
	annotations, _, _ := unstructured.NestedStringMap(r.Object, "metadata", "annotations")
	return annotations
}

// ResourceVersion returns metadata.resourceVersion, empty if unset.
func (r Resource) ResourceVersion() string {
	rv, _, _ := unstructured.NestedString(r.Object, "metadata", "resourceVersion")
	return rv
}

// Terminating reports whether the object has a deletion timestamp.
func (r Resource) Terminating() bool {
	ts, found, _ := unstructured.NestedString(r.Object, "metadata", "deletionTimestamp")
	return found && ts != ""
}

// Owners returns "Kind/name" for each owner reference.
func (r Resource) Owners() []string {
	refs, _, _ := unstructured.NestedSlice(r.Object, "metadata", "ownerReferences")
	owners := make([]string, 0, len(refs))
	for _, ref := range refs {
		m, ok := ref.(map[string]any)
		if !ok {
			continue
		}
		kind, _ := m["kind"].(string)
		name, _ := m["name"].(string)
		owners = append(owners, kind+"/"+name)
	}
	return owners
}

// ReferencedNames returns the "name" of every entry in the list at field,
// e.g. ReferencedNames("secrets") on a ServiceAccount. Entries without a name
// are skipped; a missing list yields nil.
func (r Resource) ReferencedNames(field ...string) []string {
	entries, found, err := unstructured.NestedSlice(r.Object, field...)
	if !found || err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := m["name"].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Unstructured wraps the object for printers and clients.
func (r Resource) Unstructured() *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: r.Object}
}
