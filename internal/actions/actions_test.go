package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/types"
)

type fakeMutator struct {
	deleted []string
	err     error
}

func (f *fakeMutator) Delete(_ context.Context, kind, namespace, name string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, kind+":"+k8s.ObjectKey(namespace, name))
	return nil
}

func sa(name string) k8s.Resource {
	return k8s.Resource{
		Kind:      k8s.KindServiceAccount,
		Namespace: "ci",
		Name:      name,
		UID:       "uid-" + name,
		Object: map[string]any{
			"metadata": map[string]any{"name": name, "namespace": "ci"},
		},
	}
}

func terminating(r k8s.Resource) k8s.Resource {
	r.Object = map[string]any{
		"metadata": map[string]any{
			"name":              r.Name,
			"namespace":         r.Namespace,
			"deletionTimestamp": "2026-01-01T00:00:00Z",
		},
	}
	return r
}

func ids(list []MenuAction) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestRegistry_ExtensionActionsComeFirst(t *testing.T) {
	reg := NewRegistry(Common(Deps{}), Provider{
		Kind:    k8s.KindServiceAccount,
		Actions: []MenuAction{{ID: "create-token", Label: "Create token"}},
	})

	got := reg.ForResource(sa("builder"))
	assert.Len(t, got, 3)
	assert.Equal(t, []string{"create-token", "edit", "delete"}, ids(got))
}

func TestRegistry_OtherKindsOnlyGetCommon(t *testing.T) {
	reg := NewRegistry(Common(Deps{}), Provider{
		Kind:    k8s.KindServiceAccount,
		Actions: []MenuAction{{ID: "create-token"}},
	})

	assert.Equal(t, []string{"edit", "delete"}, ids(reg.Resolve(k8s.KindSecret)))
}

func TestRegistry_ResolveMatchesKindCaseInsensitively(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(Provider{Kind: "serviceaccount", Actions: []MenuAction{{ID: "a"}}})
	reg.Register(Provider{Kind: k8s.KindServiceAccount, Actions: []MenuAction{{ID: "b"}}})

	assert.Equal(t, []string{"a", "b"}, ids(reg.Resolve(k8s.KindServiceAccount)))
}

func TestRegistry_TerminatingHidesCommonActions(t *testing.T) {
	reg := NewRegistry(Common(Deps{}), Provider{
		Kind:    k8s.KindServiceAccount,
		Actions: []MenuAction{{ID: "create-token"}},
	})

	got := reg.ForResource(terminating(sa("builder")))
	assert.Equal(t, []string{"create-token"}, ids(got))
}

func TestFilter(t *testing.T) {
	list := Common(Deps{})
	labels := []string{"Edit", "Delete"}

	assert.Equal(t, ids(list), ids(Filter("", list, labels)))
	assert.Equal(t, []string{"delete"}, ids(Filter("del", list, labels)))
	assert.Empty(t, Filter("zzz", list, labels))
}

func TestMenuAction_Title(t *testing.T) {
	a := MenuAction{Label: "Delete", LabelKey: "action.delete"}

	assert.Equal(t, "Löschen", a.Title(i18n.Static{"action.delete": "Löschen"}))
	assert.Equal(t, "Delete", a.Title(i18n.Static{}))
	assert.Equal(t, "Delete", a.Title(nil))
}

func TestMenuAction_RunWithoutHandler(t *testing.T) {
	assert.Nil(t, MenuAction{}.Run(sa("x")))
}

func TestEditCopiesKubectlCommand(t *testing.T) {
	var copied string
	deps := Deps{Clipboard: func(text string) error {
		copied = text
		return nil
	}}

	edit := Common(deps)[0]
	msg := edit.Run(sa("builder"))()

	assert.Equal(t, "kubectl edit serviceaccount/builder -n ci", copied)
	status, ok := msg.(types.StatusMsg)
	require.True(t, ok)
	assert.Equal(t, types.MessageTypeSuccess, status.Type)
}

func TestEditReportsClipboardFailure(t *testing.T) {
	deps := Deps{Clipboard: func(string) error { return errors.New("no display") }}

	msg := Common(deps)[0].Run(sa("builder"))()

	status, ok := msg.(types.StatusMsg)
	require.True(t, ok)
	assert.Equal(t, types.MessageTypeError, status.Type)
	assert.Contains(t, status.Message, "no display")
}

func TestDeleteCommand(t *testing.T) {
	tests := []struct {
		name     string
		mutator  k8s.Mutator
		wantType types.MessageType
	}{
		{name: "success", mutator: &fakeMutator{}, wantType: types.MessageTypeSuccess},
		{name: "failure", mutator: &fakeMutator{err: errors.New("forbidden")}, wantType: types.MessageTypeError},
		{name: "no mutator", mutator: nil, wantType: types.MessageTypeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			del := Common(Deps{Mutator: tt.mutator})[1]
			assert.True(t, del.NeedsConfirmation)

			msg := del.Run(sa("builder"))()
			status, ok := msg.(types.StatusMsg)
			require.True(t, ok)
			assert.Equal(t, tt.wantType, status.Type)
		})
	}
}

func TestDeleteCommandCallsMutator(t *testing.T) {
	m := &fakeMutator{}
	DeleteCommand(m, sa("builder"))()
	assert.Equal(t, []string{"ServiceAccount:ci/builder"}, m.deleted)
}

func TestOpenMenu(t *testing.T) {
	list := Common(Deps{})
	cmd := OpenMenu(sa("builder"), list)

	msg, ok := cmd().(OpenMenuMsg)
	require.True(t, ok)
	assert.Equal(t, "builder", msg.Resource.Name)
	assert.Len(t, msg.Actions, 2)
}

func TestKubectlTarget(t *testing.T) {
	assert.Equal(t, "serviceaccount/builder -n ci", KubectlTarget(sa("builder")))
	assert.Equal(t, "namespace/ci", KubectlTarget(k8s.Resource{Kind: k8s.KindNamespace, Name: "ci"}))
}
