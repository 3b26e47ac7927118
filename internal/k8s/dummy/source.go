// Package dummy provides an in-memory backend for --dummy mode and tests.
package dummy

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/renato0307/k1console/internal/k8s"
)

// EventBufferSize is the capacity of each subscription's channel.
const EventBufferSize = 1024

type subscription struct {
	ctx    context.Context
	query  k8s.Query
	events chan k8s.CollectionEvent
	watch  *k8s.Watch
	closed bool
}

// Source keeps resources in memory and fans changes out to subscriptions in
// the order they are made. Hold makes Subscribe and FetchOne block until
// Release, which lets tests resolve a request after its page has gone.
type Source struct {
	mu        sync.Mutex
	order     []string
	objects   map[string]k8s.Resource
	subs      []*subscription
	gate      chan struct{}
	failures  map[string]error
	deletions []string
	revision  uint64
}

// NewSource returns an empty source.
func NewSource() *Source {
	return &Source{
		objects:  make(map[string]k8s.Resource),
		failures: make(map[string]error),
	}
}

func storeKey(kind, namespace, name string) string {
	return kind + "|" + k8s.ObjectKey(namespace, name)
}

// Context implements k8s.Backend.
func (s *Source) Context() string {
	return "dummy"
}

// Hold blocks Subscribe and FetchOne until Release is called.
func (s *Source) Hold() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate == nil {
		s.gate = make(chan struct{})
	}
}

// Release unblocks requests waiting on Hold.
func (s *Source) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate != nil {
		close(s.gate)
		s.gate = nil
	}
}

// FailSubscriptions makes subscriptions to kind fail with err; nil clears it.
func (s *Source) FailSubscriptions(kind string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, kind)
		return
	}
	s.failures[kind] = err
}

// BreakWatches terminates live subscriptions to kind with err.
func (s *Source) BreakWatches(kind string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range slices.Clone(s.subs) {
		if sub.query.Kind == kind && !sub.closed {
			sub.watch.Fail(&k8s.SubscriptionError{Query: sub.query, Err: err})
			s.closeLocked(sub)
		}
	}
}

// Subscribers counts open subscriptions, used by tests to check cleanup.
func (s *Source) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Deleted lists keys removed through Delete, in call order.
func (s *Source) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deletions...)
}

// Put adds or replaces a resource and notifies subscribers. Like an API
// server it stamps every write with a new resourceVersion.
func (s *Source) Put(r k8s.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revision++
	r = withResourceVersion(r, strconv.FormatUint(s.revision, 10))

	key := storeKey(r.Kind, r.Namespace, r.Name)
	evType := k8s.EventModified
	if _, exists := s.objects[key]; !exists {
		evType = k8s.EventAdded
		s.order = append(s.order, key)
	}
	s.objects[key] = r
	s.emitLocked(k8s.CollectionEvent{Type: evType, Resource: r})
}

// Remove deletes a resource and notifies subscribers. It reports whether the
// resource existed.
func (s *Source) Remove(kind, namespace, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := storeKey(kind, namespace, name)
	r, exists := s.objects[key]
	if !exists {
		return false
	}
	delete(s.objects, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.emitLocked(k8s.CollectionEvent{Type: k8s.EventDeleted, Resource: r})
	return true
}

func withResourceVersion(r k8s.Resource, rv string) k8s.Resource {
	u := r.Unstructured().DeepCopy()
	u.SetResourceVersion(rv)
	r.Object = u.Object
	return r
}

func (s *Source) emitLocked(ev k8s.CollectionEvent) {
	for _, sub := range s.subs {
		if sub.closed || !sub.query.Matches(ev.Resource) {
			continue
		}
		select {
		case sub.events <- ev:
		case <-sub.ctx.Done():
		}
	}
}

func (s *Source) closeLocked(sub *subscription) {
	if sub.closed {
		return
	}
	sub.closed = true
	close(sub.events)
	s.subs = slices.DeleteFunc(s.subs, func(other *subscription) bool { return other == sub })
}

func (s *Source) wait(ctx context.Context) error {
	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe implements k8s.Source.
func (s *Source) Subscribe(ctx context.Context, q k8s.Query) (*k8s.Watch, error) {
	if err := s.wait(ctx); err != nil {
		return nil, &k8s.SubscriptionError{Query: q, Err: err}
	}

	info, ok := k8s.LookupKind(q.Kind)
	if !ok {
		return nil, &k8s.SubscriptionError{Query: q, Err: k8s.ErrUnknownKind}
	}
	q.Kind = info.Kind

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failures[q.Kind]; err != nil {
		return nil, &k8s.SubscriptionError{Query: q, Err: err}
	}

	initial := make([]k8s.Resource, 0)
	for _, key := range s.order {
		if r := s.objects[key]; q.Matches(r) {
			initial = append(initial, r)
		}
	}

	sub := &subscription{
		ctx:    ctx,
		query:  q,
		events: make(chan k8s.CollectionEvent, EventBufferSize),
	}
	sub.watch = k8s.NewWatch(initial, sub.events)
	s.subs = append(s.subs, sub)

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		s.closeLocked(sub)
	}()

	return sub.watch, nil
}

// FetchOne implements k8s.Source.
func (s *Source) FetchOne(ctx context.Context, kind, namespace, name string) (k8s.Resource, error) {
	if err := s.wait(ctx); err != nil {
		return k8s.Resource{}, err
	}
	info, ok := k8s.LookupKind(kind)
	if !ok {
		return k8s.Resource{}, fmt.Errorf("%s: %w", kind, k8s.ErrUnknownKind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r, exists := s.objects[storeKey(info.Kind, namespace, name)]
	if !exists {
		return k8s.Resource{}, fmt.Errorf("%s %s: %w", kind, k8s.ObjectKey(namespace, name), k8s.ErrNotFound)
	}
	return r, nil
}

// Delete implements k8s.Mutator.
func (s *Source) Delete(_ context.Context, kind, namespace, name string) error {
	info, ok := k8s.LookupKind(kind)
	if !ok {
		return fmt.Errorf("%s: %w", kind, k8s.ErrUnknownKind)
	}
	if !s.Remove(info.Kind, namespace, name) {
		return fmt.Errorf("%s %s: %w", kind, k8s.ObjectKey(namespace, name), k8s.ErrNotFound)
	}
	s.mu.Lock()
	s.deletions = append(s.deletions, k8s.ObjectKey(namespace, name))
	s.mu.Unlock()
	return nil
}
