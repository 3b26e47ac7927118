package k8s

import (
	"context"
	"fmt"
	"sync"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/dynamic/dynamicinformer"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/cache"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/renato0307/k1console/internal/logging"
)

// ClusterSource serves subscriptions from dynamic informers. Every
// subscription runs its own informer scoped to the query, so closing a page
// stops exactly the watch it started.
type ClusterSource struct {
	*ResourceFormatter

	client      dynamic.Interface
	contextName string
	kubeconfig  string
	syncTimeout time.Duration
	log         *logging.Logger
}

// NewClusterSource connects using a kubeconfig path (default
// $HOME/.kube/config) and an optional context override.
func NewClusterSource(kubeconfig, contextName string) (*ClusterSource, error) {
	if kubeconfig == "" {
		path, err := DefaultKubeconfigPath()
		if err != nil {
			return nil, err
		}
		kubeconfig = path
	}

	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfig}
	configOverrides := &clientcmd.ConfigOverrides{}
	if contextName != "" {
		configOverrides.CurrentContext = contextName
	}

	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, configOverrides)
	config, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("error building kubeconfig: %w", err)
	}
	if contextName == "" {
		if raw, err := clientConfig.RawConfig(); err == nil {
			contextName = raw.CurrentContext
		}
	}

	source, err := NewClusterSourceForConfig(config)
	if err != nil {
		return nil, err
	}
	source.kubeconfig = kubeconfig
	source.contextName = contextName
	return source, nil
}

// NewClusterSourceForConfig builds a source from an existing rest config.
func NewClusterSourceForConfig(config *rest.Config) (*ClusterSource, error) {
	// Describers use typed clients, which understand protobuf. The dynamic
	// client always negotiates JSON on its own copy.
	config = rest.CopyConfig(config)
	config.ContentType = protobufContentType

	client, err := dynamic.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("error creating dynamic client: %w", err)
	}

	source := NewClusterSourceForClient(client)
	source.ResourceFormatter = NewResourceFormatter(config)
	return source, nil
}

// NewClusterSourceForClient wraps an existing dynamic client. Describe falls
// back to the offline summary since no rest config is known.
func NewClusterSourceForClient(client dynamic.Interface) *ClusterSource {
	return &ClusterSource{
		ResourceFormatter: NewResourceFormatter(nil),
		client:            client,
		syncTimeout:       InformerSyncTimeout,
		log:               logging.Component("cluster-source"),
	}
}

// Context returns the kubeconfig context in use.
func (s *ClusterSource) Context() string {
	return s.contextName
}

// Kubeconfig returns the kubeconfig path in use.
func (s *ClusterSource) Kubeconfig() string {
	return s.kubeconfig
}

// SetSyncTimeout overrides InformerSyncTimeout.
func (s *ClusterSource) SetSyncTimeout(d time.Duration) {
	s.syncTimeout = d
}

func (s *ClusterSource) resourceClient(info KindInfo, namespace string) dynamic.ResourceInterface {
	if info.Namespaced && namespace != "" {
		return s.client.Resource(info.GVR).Namespace(namespace)
	}
	return s.client.Resource(info.GVR)
}

// FetchOne gets a single object straight from the API server.
func (s *ClusterSource) FetchOne(ctx context.Context, kind, namespace, name string) (Resource, error) {
	info, ok := LookupKind(kind)
	if !ok {
		return Resource{}, fmt.Errorf("%s: %w", kind, ErrUnknownKind)
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	obj, err := s.resourceClient(info, namespace).Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return Resource{}, fmt.Errorf("%s %s: %w", kind, ObjectKey(namespace, name), ErrNotFound)
	}
	if err != nil {
		return Resource{}, fmt.Errorf("failed to get %s %s: %w", kind, ObjectKey(namespace, name), err)
	}
	return newResourceOfKind(info.Kind, obj)
}

// Delete removes an object with background propagation.
func (s *ClusterSource) Delete(ctx context.Context, kind, namespace, name string) error {
	info, ok := LookupKind(kind)
	if !ok {
		return fmt.Errorf("%s: %w", kind, ErrUnknownKind)
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	propagation := metav1.DeletePropagationBackground
	err := s.resourceClient(info, namespace).Delete(ctx, name, metav1.DeleteOptions{PropagationPolicy: &propagation})
	if apierrors.IsNotFound(err) {
		return fmt.Errorf("%s %s: %w", kind, ObjectKey(namespace, name), ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, ObjectKey(namespace, name), err)
	}
	s.log.Info("deleted resource", "kind", kind, "namespace", namespace, "name", name)
	return nil
}

// Subscribe starts an informer for q, waits for its cache to sync and
// returns the synced snapshot plus a channel of subsequent changes. The
// informer stops when ctx is cancelled.
func (s *ClusterSource) Subscribe(ctx context.Context, q Query) (*Watch, error) {
	info, ok := LookupKind(q.Kind)
	if !ok {
		return nil, &SubscriptionError{Query: q, Err: ErrUnknownKind}
	}
	q.Kind = info.Kind

	namespace := q.Namespace
	if !info.Namespaced {
		namespace = metav1.NamespaceAll
	}
	tweak := func(opts *metav1.ListOptions) {
		if q.Name != "" {
			opts.FieldSelector = fields.OneTermEqualSelector("metadata.name", q.Name).String()
		}
	}

	informer := dynamicinformer.NewFilteredDynamicInformer(
		s.client, info.GVR, namespace, InformerResyncPeriod, cache.Indexers{}, tweak,
	).Informer()

	// Forbidden and NotFound do not heal by retrying; anything else is left
	// to the reflector's backoff.
	failed := make(chan error, 1)
	_ = informer.SetWatchErrorHandler(func(_ *cache.Reflector, err error) {
		s.log.Warn("watch error", "query", q.String(), "error", err)
		if apierrors.IsForbidden(err) || apierrors.IsUnauthorized(err) || apierrors.IsNotFound(err) {
			select {
			case failed <- err:
			default:
			}
		}
	})

	events := make(chan CollectionEvent, EventBufferSize)
	runCtx, cancel := context.WithCancel(ctx)

	// Until the registration has seen the initial list, events are folded
	// into the snapshot instead of being forwarded.
	var (
		mu      sync.Mutex
		pending []CollectionEvent
		live    bool
		closed  bool
	)
	send := func(ev CollectionEvent) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		if !live {
			pending = append(pending, ev)
			return
		}
		select {
		case events <- ev:
		case <-runCtx.Done():
		}
	}

	registration, err := informer.AddEventHandler(cache.ResourceEventHandlerFuncs{
		AddFunc: func(obj any) {
			if r, ok := s.matching(q, obj); ok {
				send(CollectionEvent{Type: EventAdded, Resource: r})
			}
		},
		UpdateFunc: func(_, newObj any) {
			if r, ok := s.matching(q, newObj); ok {
				send(CollectionEvent{Type: EventModified, Resource: r})
			}
		},
		DeleteFunc: func(obj any) {
			if tombstone, ok := obj.(cache.DeletedFinalStateUnknown); ok {
				obj = tombstone.Obj
			}
			if r, ok := s.matching(q, obj); ok {
				send(CollectionEvent{Type: EventDeleted, Resource: r})
			}
		},
	})
	if err != nil {
		cancel()
		return nil, &SubscriptionError{Query: q, Err: err}
	}

	go informer.Run(runCtx.Done())

	timing := s.log.Start("subscribe " + q.String())
	if err := waitForSync(runCtx, registration.HasSynced, failed, s.syncTimeout); err != nil {
		cancel()
		return nil, &SubscriptionError{Query: q, Err: err}
	}

	mu.Lock()
	initial := foldEvents(pending)
	pending = nil
	live = true
	mu.Unlock()
	logging.EndWithCount(timing, len(initial))

	watch := NewWatch(initial, events)
	go func() {
		select {
		case err := <-failed:
			watch.Fail(&SubscriptionError{Query: q, Err: err})
			cancel()
		case <-runCtx.Done():
		}
		_ = informer.RemoveEventHandler(registration)

		mu.Lock()
		closed = true
		close(events)
		mu.Unlock()
		s.log.Debug("subscription closed", "query", q.String())
	}()

	return watch, nil
}

// foldEvents collapses events into the resulting list, keeping first-seen order.
func foldEvents(evs []CollectionEvent) []Resource {
	index := make(map[string]int, len(evs))
	out := make([]Resource, 0, len(evs))
	for _, ev := range evs {
		key := ev.Resource.Key()
		i, exists := index[key]
		switch {
		case ev.Type == EventDeleted && exists:
			out = append(out[:i], out[i+1:]...)
			delete(index, key)
			for k, j := range index {
				if j > i {
					index[k] = j - 1
				}
			}
		case ev.Type == EventDeleted:
		case exists:
			out[i] = ev.Resource
		default:
			index[key] = len(out)
			out = append(out, ev.Resource)
		}
	}
	return out
}

func waitForSync(ctx context.Context, synced cache.InformerSynced, failed <-chan error, timeout time.Duration) error {
	syncCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan bool, 1)
	go func() { done <- cache.WaitForCacheSync(syncCtx.Done(), synced) }()

	select {
	case ok := <-done:
		if ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return fmt.Errorf("cache sync timed out after %s", timeout)
	case err := <-failed:
		cancel()
		<-done
		return err
	}
}

func (s *ClusterSource) matching(q Query, obj any) (Resource, bool) {
	r, ok := s.toResource(q.Kind, obj)
	if !ok || !q.Matches(r) {
		return Resource{}, false
	}
	return r, true
}

func (s *ClusterSource) toResource(kind string, obj any) (Resource, bool) {
	u, ok := obj.(*unstructured.Unstructured)
	if !ok {
		s.log.Warn("unexpected object type", "type", fmt.Sprintf("%T", obj))
		return Resource{}, false
	}
	r, err := newResourceOfKind(kind, u)
	if err != nil {
		s.log.Warn("dropping invalid object", "error", err)
		return Resource{}, false
	}
	return r, true
}

// newResourceOfKind fills in the kind for list items that arrive without one.
func newResourceOfKind(kind string, u *unstructured.Unstructured) (Resource, error) {
	if u != nil && u.GetKind() == "" {
		u = u.DeepCopy()
		u.SetKind(kind)
	}
	return NewResource(u)
}
