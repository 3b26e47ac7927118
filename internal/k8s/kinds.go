package k8s

import (
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	KindServiceAccount = "ServiceAccount"
	KindSecret         = "Secret"
	KindNamespace      = "Namespace"
)

// KindInfo describes how to reach a kind through the dynamic client.
type KindInfo struct {
	Kind       string
	GVR        schema.GroupVersionResource
	Namespaced bool
}

// GroupKind is used to pick a describer.
func (k KindInfo) GroupKind() schema.GroupKind {
	return schema.GroupKind{Group: k.GVR.Group, Kind: k.Kind}
}

var kindRegistry = map[string]KindInfo{
	KindServiceAccount: {
		Kind:       KindServiceAccount,
		GVR:        schema.GroupVersionResource{Version: "v1", Resource: "serviceaccounts"},
		Namespaced: true,
	},
	KindSecret: {
		Kind:       KindSecret,
		GVR:        schema.GroupVersionResource{Version: "v1", Resource: "secrets"},
		Namespaced: true,
	},
	KindNamespace: {
		Kind:       KindNamespace,
		GVR:        schema.GroupVersionResource{Version: "v1", Resource: "namespaces"},
		Namespaced: false,
	},
}

// LookupKind finds a registered kind. Matching ignores case.
func LookupKind(kind string) (KindInfo, bool) {
	if info, ok := kindRegistry[kind]; ok {
		return info, true
	}
	for k, info := range kindRegistry {
		if strings.EqualFold(k, kind) {
			return info, true
		}
	}
	return KindInfo{}, false
}

// Kinds lists the registered kinds ordered by name.
func Kinds() []KindInfo {
	out := make([]KindInfo, 0, len(kindRegistry))
	for _, info := range kindRegistry {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}
