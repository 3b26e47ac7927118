package k8s

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotFound means the resource does not exist, either at fetch time or
	// because it was deleted while being watched.
	ErrNotFound = errors.New("resource not found")

	// ErrUnknownKind is returned for kinds missing from the kind registry.
	ErrUnknownKind = errors.New("unknown resource kind")
)

// SubscriptionError reports a failure to acquire or keep a collection:
// transport, authorization or an unknown kind.
type SubscriptionError struct {
	Query Query
	Err   error
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("subscribe to %s: %v", e.Query, e.Err)
}

func (e *SubscriptionError) Unwrap() error {
	return e.Err
}

// Query selects what a subscription watches. An empty Namespace means all
// namespaces; a non-empty Name narrows the subscription to a single object.
type Query struct {
	Kind      string
	Namespace string
	Name      string
}

func (q Query) String() string {
	scope := q.Namespace
	if scope == "" {
		scope = "*"
	}
	if q.Name != "" {
		return fmt.Sprintf("%s %s/%s", q.Kind, scope, q.Name)
	}
	return fmt.Sprintf("%s in %s", q.Kind, scope)
}

// Matches reports whether r falls inside the query.
func (q Query) Matches(r Resource) bool {
	if q.Kind != "" && r.Kind != q.Kind {
		return false
	}
	if q.Namespace != "" && r.Namespace != q.Namespace {
		return false
	}
	return q.Name == "" || r.Name == q.Name
}

// EventType is the kind of change a CollectionEvent carries.
type EventType int

const (
	EventAdded EventType = iota
	EventModified
	EventDeleted
)

func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "added"
	case EventModified:
		return "modified"
	case EventDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// CollectionEvent is one change to a watched collection.
type CollectionEvent struct {
	Type     EventType
	Resource Resource
}

// Watch is a live subscription: the state at subscribe time followed by the
// changes since, in delivery order. Events is closed when the subscription
// context ends or the subscription fails; Err tells the two apart.
type Watch struct {
	Initial []Resource
	Events  <-chan CollectionEvent

	mu  sync.Mutex
	err error
}

// NewWatch is used by Source implementations.
func NewWatch(initial []Resource, events <-chan CollectionEvent) *Watch {
	return &Watch{Initial: initial, Events: events}
}

// Fail records the error that terminated the subscription. Sources call it
// before closing Events.
func (w *Watch) Fail(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		w.err = err
	}
}

// Err returns the terminal error, nil if the watch ended by cancellation.
func (w *Watch) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Source acquires resources. Implementations validate objects with
// NewResource before handing them out.
type Source interface {
	Subscribe(ctx context.Context, q Query) (*Watch, error)
	FetchOne(ctx context.Context, kind, namespace, name string) (Resource, error)
}

// Mutator changes cluster state on behalf of menu actions.
type Mutator interface {
	Delete(ctx context.Context, kind, namespace, name string) error
}

// Formatter renders a resource for the read-only YAML and Describe tabs.
type Formatter interface {
	YAML(r Resource) (string, error)
	Describe(r Resource) (string, error)
}

// Backend bundles what the console needs from a cluster.
type Backend interface {
	Source
	Mutator
	Formatter
	// Context names the kubeconfig context, shown in the header.
	Context() string
}
