package dummy

import (
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"

	"github.com/renato0307/k1console/internal/k8s"
)

// ServiceAccount builds a validated ServiceAccount resource.
func ServiceAccount(namespace, name string, created time.Time, secrets ...string) k8s.Resource {
	sa := &corev1.ServiceAccount{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: k8s.KindServiceAccount},
		ObjectMeta: metav1.ObjectMeta{
			Namespace:         namespace,
			Name:              name,
			UID:               types.UID(fmt.Sprintf("sa-%s-%s", namespace, name)),
			CreationTimestamp: metav1.NewTime(created),
			ResourceVersion:   "1",
		},
	}
	for _, s := range secrets {
		sa.Secrets = append(sa.Secrets, corev1.ObjectReference{Name: s})
	}
	return mustResource(sa)
}

// Secret builds a validated Secret resource of the given type.
func Secret(namespace, name string, secretType corev1.SecretType, created time.Time) k8s.Resource {
	secret := &corev1.Secret{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: k8s.KindSecret},
		ObjectMeta: metav1.ObjectMeta{
			Namespace:         namespace,
			Name:              name,
			UID:               types.UID(fmt.Sprintf("secret-%s-%s", namespace, name)),
			CreationTimestamp: metav1.NewTime(created),
			ResourceVersion:   "1",
		},
		Type: secretType,
		Data: map[string][]byte{"token": []byte("redacted")},
	}
	return mustResource(secret)
}

// Namespace builds a validated Namespace resource.
func Namespace(name string, created time.Time) k8s.Resource {
	ns := &corev1.Namespace{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: k8s.KindNamespace},
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			UID:               types.UID("ns-" + name),
			CreationTimestamp: metav1.NewTime(created),
		},
		Status: corev1.NamespaceStatus{Phase: corev1.NamespaceActive},
	}
	return mustResource(ns)
}

func mustResource(obj runtime.Object) k8s.Resource {
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		panic(fmt.Sprintf("convert %T: %v", obj, err))
	}
	r, err := k8s.NewResource(&unstructured.Unstructured{Object: content})
	if err != nil {
		panic(err)
	}
	return r
}

// NewSeededSource returns a source holding a small demo cluster.
func NewSeededSource(now time.Time) *Source {
	s := NewSource()
	day := 24 * time.Hour

	for _, ns := range []string{"default", "ci", "monitoring"} {
		s.Put(Namespace(ns, now.Add(-90*day)))
	}

	s.Put(ServiceAccount("default", "default", now.Add(-90*day)))
	s.Put(ServiceAccount("ci", "default", now.Add(-60*day)))
	s.Put(ServiceAccount("ci", "builder", now.Add(-12*day), "builder-token", "registry-creds"))
	s.Put(ServiceAccount("ci", "deployer", now.Add(-3*time.Hour), "deployer-token"))
	s.Put(ServiceAccount("monitoring", "prometheus", now.Add(-30*day), "prometheus-token"))
	s.Put(ServiceAccount("monitoring", "grafana", now.Add(-45*time.Minute)))

	s.Put(Secret("ci", "builder-token", corev1.SecretTypeServiceAccountToken, now.Add(-12*day)))
	s.Put(Secret("ci", "registry-creds", corev1.SecretTypeDockerConfigJson, now.Add(-10*day)))
	s.Put(Secret("ci", "deployer-token", corev1.SecretTypeServiceAccountToken, now.Add(-3*time.Hour)))
	s.Put(Secret("ci", "unrelated", corev1.SecretTypeOpaque, now.Add(-5*day)))
	s.Put(Secret("monitoring", "prometheus-token", corev1.SecretTypeServiceAccountToken, now.Add(-30*day)))

	return s
}
