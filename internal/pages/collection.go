package pages

import (
	"k8s.io/apimachinery/pkg/api/equality"

	"github.com/renato0307/k1console/internal/k8s"
)

// Collection is an immutable, insertion-ordered set of resources keyed by
// namespace/name. Changes produce a new Collection; the pointer is the
// change signal, so holders compare pointers rather than contents.
type Collection struct {
	version uint64
	keys    []string
	items   map[string]k8s.Resource
}

// NewCollection builds a collection from items in order. Later duplicates
// replace earlier ones in place.
func NewCollection(items []k8s.Resource) *Collection {
	c := &Collection{
		version: 1,
		keys:    make([]string, 0, len(items)),
		items:   make(map[string]k8s.Resource, len(items)),
	}
	for _, r := range items {
		key := r.Key()
		if _, exists := c.items[key]; !exists {
			c.keys = append(c.keys, key)
		}
		c.items[key] = r
	}
	return c
}

// Version increases with every change.
func (c *Collection) Version() uint64 {
	if c == nil {
		return 0
	}
	return c.version
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Items returns the resources in insertion order.
func (c *Collection) Items() []k8s.Resource {
	if c == nil {
		return nil
	}
	out := make([]k8s.Resource, len(c.keys))
	for i, key := range c.keys {
		out[i] = c.items[key]
	}
	return out
}

// Names returns the resource names in insertion order.
func (c *Collection) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.keys))
	for i, key := range c.keys {
		out[i] = c.items[key].Name
	}
	return out
}

// Get looks up a resource by namespace/name key.
func (c *Collection) Get(key string) (k8s.Resource, bool) {
	if c == nil {
		return k8s.Resource{}, false
	}
	r, ok := c.items[key]
	return r, ok
}

// Apply merges events in order. Adds and modifications upsert (an existing
// key keeps its position), deletions remove. When nothing changes the
// receiver itself is returned.
func (c *Collection) Apply(events ...k8s.CollectionEvent) *Collection {
	next := c
	if next == nil {
		next = NewCollection(nil)
	}
	copied := false
	ensureCopy := func() {
		if !copied {
			next = next.clone()
			copied = true
		}
	}

	for _, ev := range events {
		key := ev.Resource.Key()
		existing, exists := next.items[key]

		switch ev.Type {
		case k8s.EventDeleted:
			if !exists {
				continue
			}
			ensureCopy()
			delete(next.items, key)
			next.keys = removeKey(next.keys, key)

		default:
			if exists && sameSnapshot(existing, ev.Resource) {
				continue
			}
			ensureCopy()
			if !exists {
				next.keys = append(next.keys, key)
			}
			next.items[key] = ev.Resource
		}
	}

	if !copied {
		return c
	}
	next.version = c.Version() + 1
	return next
}

// Filter returns the resources matching keep, as a new collection. The
// result shares nothing mutable with the receiver.
func (c *Collection) Filter(keep Filter) *Collection {
	out := NewCollection(nil)
	out.version = c.Version()
	for _, key := range c.keysOrNil() {
		r := c.items[key]
		if keep == nil || keep(r) {
			out.keys = append(out.keys, key)
			out.items[key] = r
		}
	}
	return out
}

func (c *Collection) keysOrNil() []string {
	if c == nil {
		return nil
	}
	return c.keys
}

func (c *Collection) clone() *Collection {
	out := &Collection{
		version: c.version,
		keys:    append(make([]string, 0, len(c.keys)+1), c.keys...),
		items:   make(map[string]k8s.Resource, len(c.items)+1),
	}
	for k, v := range c.items {
		out.items[k] = v
	}
	return out
}

func removeKey(keys []string, key string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

// sameSnapshot reports whether b is the same object version as a. The
// resourceVersion decides when both carry one; otherwise the objects are
// compared.
func sameSnapshot(a, b k8s.Resource) bool {
	if a.UID != b.UID {
		return false
	}
	av, bv := a.ResourceVersion(), b.ResourceVersion()
	if av != "" && bv != "" {
		return av == bv
	}
	return equality.Semantic.DeepEqual(a.Object, b.Object)
}
