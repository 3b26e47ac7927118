package k8s

import "time"

// Kubernetes client constants
const (
	// InformerResyncPeriod is how often a subscription's informer replays its
	// cache. Resyncs surface as Modified events with an unchanged resource
	// version, which collections treat as no-ops.
	InformerResyncPeriod = 30 * time.Second

	// InformerSyncTimeout bounds the initial list of a subscription. It must
	// be longer than the API request timeout so large namespaces still sync.
	InformerSyncTimeout = 60 * time.Second

	// EventBufferSize is the capacity of a subscription's event channel.
	EventBufferSize = 256

	// APITimeout bounds single requests such as FetchOne and Delete.
	APITimeout = 30 * time.Second

	protobufContentType = "application/vnd.kubernetes.protobuf"
)
