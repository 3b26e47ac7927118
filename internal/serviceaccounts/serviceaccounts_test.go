package serviceaccounts

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/renato0307/k1console/internal/actions"
	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/k8s/dummy"
	"github.com/renato0307/k1console/internal/pages"
	"github.com/renato0307/k1console/internal/testutil"
	"github.com/renato0307/k1console/internal/types"
	"github.com/renato0307/k1console/internal/ui"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeClipboard struct {
	copied []string
}

func (f *fakeClipboard) write(text string) error {
	f.copied = append(f.copied, text)
	return nil
}

func english(t *testing.T) i18n.Translator {
	t.Helper()
	b, err := i18n.NewBundle()
	require.NoError(t, err)
	return b.Translator("en")
}

func newDeps(src *dummy.Source, clip *fakeClipboard) Deps {
	common := actions.Common(actions.Deps{Mutator: src, Clipboard: clip.write})
	return Deps{
		Source:    src,
		Formatter: src,
		Registry:  actions.NewRegistry(common, Provider(clip.write)),
		Clipboard: clip.write,
		Theme:     ui.GetTheme("charm"),
		Now:       func() time.Time { return now },
	}
}

func terminating(r k8s.Resource) k8s.Resource {
	u := r.Unstructured().DeepCopy()
	u.SetDeletionTimestamp(&metav1.Time{Time: now})
	out, err := k8s.NewResource(u)
	if err != nil {
		panic(err)
	}
	return out
}

// withSecretEntries replaces the secrets list with raw entries.
func withSecretEntries(r k8s.Resource, entries ...any) k8s.Resource {
	u := r.Unstructured().DeepCopy()
	if err := unstructured.SetNestedSlice(u.Object, entries, "secrets"); err != nil {
		panic(err)
	}
	out, err := k8s.NewResource(u)
	if err != nil {
		panic(err)
	}
	return out
}

func TestSchema(t *testing.T) {
	b, err := i18n.NewBundle()
	require.NoError(t, err)

	en := Schema(b.Translator("en"))
	de := Schema(b.Translator("de"))

	ids := make([]string, len(en))
	for i, c := range en {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{ColName, ColNamespace, ColSecrets, ColCreated, ColActions}, ids)
	assert.Equal(t, "Secrets", en[2].Title)
	assert.Equal(t, "Geheimnisse", de[2].Title)
	assert.Equal(t, 3, en[2].Priority)
	assert.Equal(t, 2, en[3].Priority)
	assert.False(t, en[4].Sortable())
	assert.Equal(t, Kebab, de[4].Title)
}

func TestRenderer(t *testing.T) {
	deps := newDeps(dummy.NewSource(), &fakeClipboard{})
	render := Renderer(deps.Registry, deps.Now)
	cols := Schema(i18n.Static{})

	tests := []struct {
		name string
		r    k8s.Resource
		want []string
	}{
		{
			name: "with secrets",
			r:    dummy.ServiceAccount("ci", "builder", now.Add(-12*24*time.Hour), "builder-token", "registry-creds"),
			want: []string{"builder", "ci", "2", "12d", "⋮3"},
		},
		{
			name: "without secrets",
			r:    dummy.ServiceAccount("ci", "default", now.Add(-5*time.Minute)),
			want: []string{"default", "ci", "0", "5m", "⋮3"},
		},
		{
			name: "entries without a name still count",
			r: withSecretEntries(dummy.ServiceAccount("ci", "odd", now.Add(-time.Hour)),
				map[string]any{"name": "odd-token"}, map[string]any{"namespace": "ci"}),
			want: []string{"odd", "ci", "2", "1h", "⋮3"},
		},
		{
			name: "terminating has no actions",
			r:    terminating(dummy.ServiceAccount("ci", "old", now.Add(-time.Hour))),
			want: []string{"old", "ci", "0", "1h", "⋮0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(tt.r, cols))
		})
	}
}

func TestRendererWithoutRegistry(t *testing.T) {
	cells := Renderer(nil, func() time.Time { return now })(dummy.ServiceAccount("ci", "a", now), Schema(i18n.Static{}))
	assert.Equal(t, Kebab, cells[4])
}

func TestProviderComesBeforeCommonActions(t *testing.T) {
	clip := &fakeClipboard{}
	deps := newDeps(dummy.NewSource(), clip)
	builder := dummy.ServiceAccount("ci", "builder", now)

	list := deps.Registry.ForResource(builder)
	require.Len(t, list, 3)
	assert.Equal(t, "create-token", list[0].ID)
	assert.Equal(t, "Create token", list[0].Title(english(t)))

	msg := list[0].Run(builder)()
	status, ok := msg.(types.StatusMsg)
	require.True(t, ok)
	assert.Equal(t, types.MessageTypeSuccess, status.Type)
	assert.Equal(t, []string{"kubectl create token builder -n ci"}, clip.copied)
}

func TestCreateCommand(t *testing.T) {
	assert.Equal(t, "kubectl create serviceaccount <name> -n ci", CreateCommand("ci"))
	assert.Equal(t, "kubectl create serviceaccount <name> -n <namespace>", CreateCommand(""))
}

func loadList(t *testing.T, p *pages.ListPage) {
	t.Helper()
	testutil.Feed(p, testutil.Collect(p.Init())...)
	require.Equal(t, pages.PhaseLoaded, p.Phase())
}

func TestListPage(t *testing.T) {
	src := dummy.NewSeededSource(now)
	clip := &fakeClipboard{}
	p := NewListPage(newDeps(src, clip), english(t), "ci")
	p.SetSize(100, 20)
	loadList(t, p)

	tbl := p.Component().(*pages.Table)
	assert.Equal(t, "ServiceAccounts", tbl.AriaLabel())
	rows := tbl.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "builder", rows[0].Name)

	view := p.View()
	assert.Contains(t, view, "ServiceAccounts")
	assert.Contains(t, view, "deployer")
	assert.Contains(t, view, "⋮3")

	_, cmd := p.Update(testutil.Key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, pages.OpenDetailsMsg{Kind: k8s.KindServiceAccount, Namespace: "ci", Name: "builder"}, cmd())

	_, cmd = p.Update(testutil.Key("c"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"kubectl create serviceaccount <name> -n ci"}, clip.copied)

	_, cmd = p.Update(testutil.Key("m"))
	require.NotNil(t, cmd)
	menu := cmd().(actions.OpenMenuMsg)
	assert.Len(t, menu.Actions, 3)
}

func TestListPageLocaleSwitch(t *testing.T) {
	b, err := i18n.NewBundle()
	require.NoError(t, err)
	p := NewListPage(newDeps(dummy.NewSeededSource(now), &fakeClipboard{}), b.Translator("en"), "ci")
	p.SetSize(100, 20)
	loadList(t, p)
	assert.Contains(t, p.HelpText(), "c: Create ServiceAccount")

	p.SetTranslator(b.Translator("de"))

	tbl := p.Component().(*pages.Table)
	assert.Equal(t, "Dienstkonten", tbl.AriaLabel())
	assert.Equal(t, "Dienstkonten · sortiert nach Name ↑", tbl.Caption())
	assert.Contains(t, p.View(), "Dienstkonten · sortiert nach")
	assert.Contains(t, p.HelpText(), "c: Dienstkonto erstellen")
	assert.Contains(t, p.HelpText(), "enter öffnen")
}

func TestListPageAllNamespaces(t *testing.T) {
	p := NewListPage(newDeps(dummy.NewSeededSource(now), &fakeClipboard{}), english(t), "")
	loadList(t, p)
	assert.Equal(t, 6, p.Component().Len())
}

// loadDetails drives the fetch, the identity subscription and the embedded
// secrets subscription. It returns the command waiting for ServiceAccount
// events.
func loadDetails(t *testing.T, p *pages.DetailsPage) tea.Cmd {
	t.Helper()
	cmds := testutil.Feed(p, testutil.Collect(p.Init())...)
	require.Equal(t, pages.PhaseLoaded, p.Phase())
	require.Len(t, cmds, 1)

	// the secrets subscription and the account subscription
	msgs := testutil.Collect(cmds[0])
	require.Len(t, msgs, 2)
	cmds = testutil.Feed(p, msgs...)
	require.Len(t, cmds, 2)
	return cmds[1]
}

func section(p *pages.DetailsPage) *detailsSection {
	return p.Tabs()[0].Section.(*detailsSection)
}

func TestDetailsPage(t *testing.T) {
	src := dummy.NewSeededSource(now)
	p := NewDetailsPage(newDeps(src, &fakeClipboard{}), english(t), "ci", "builder")
	p.SetSize(120, 40)
	loadDetails(t, p)

	view := p.View()
	assert.Contains(t, view, "ServiceAccount details")
	assert.Contains(t, view, "sa-ci-builder")
	assert.Contains(t, view, "builder-token")
	assert.Contains(t, view, "registry-creds")
	assert.NotContains(t, view, "deployer-token")
	assert.NotContains(t, view, "unrelated")

	secrets := section(p).secrets
	assert.False(t, secrets.CanCreate())
	assert.Equal(t, []string{"builder-token", "registry-creds"}, secrets.Visible().Names())

	p.SetTab(1)
	assert.Contains(t, p.View(), "builder")
	assert.Contains(t, p.View(), "ServiceAccount")

	p.SetTab(2)
	assert.Contains(t, p.View(), "Mountable secrets:")
}

func TestDetailsPageFollowsSecretReferences(t *testing.T) {
	src := dummy.NewSeededSource(now)
	p := NewDetailsPage(newDeps(src, &fakeClipboard{}), english(t), "ci", "builder")
	p.SetSize(120, 40)
	next := loadDetails(t, p)

	src.Put(dummy.ServiceAccount("ci", "builder", now.Add(-12*24*time.Hour), "builder-token"))
	testutil.Feed(p, next())

	assert.Equal(t, []string{"builder-token"}, section(p).secrets.Visible().Names())
	assert.NotContains(t, p.View(), "registry-creds")
}

func TestDetailsPageAccountWithoutSecrets(t *testing.T) {
	src := dummy.NewSeededSource(now)
	p := NewDetailsPage(newDeps(src, &fakeClipboard{}), english(t), "monitoring", "grafana")
	loadDetails(t, p)

	assert.Equal(t, 0, section(p).secrets.Visible().Len())
	assert.Contains(t, p.View(), "No Secrets found")
}

func TestDetailsPageDeletionClosesSecrets(t *testing.T) {
	src := dummy.NewSeededSource(now)
	p := NewDetailsPage(newDeps(src, &fakeClipboard{}), english(t), "ci", "deployer")
	next := loadDetails(t, p)

	require.True(t, src.Remove(k8s.KindServiceAccount, "ci", "deployer"))
	testutil.Feed(p, next())

	assert.Equal(t, pages.PhaseNotFound, p.Phase())
	assert.True(t, section(p).secrets.Disposed())
	assert.Contains(t, p.View(), "ServiceAccount ci/deployer no longer exists")
	assert.Eventually(t, func() bool { return src.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}

func TestDetailsPageMenuMatchesRowMenu(t *testing.T) {
	src := dummy.NewSeededSource(now)
	deps := newDeps(src, &fakeClipboard{})
	p := NewDetailsPage(deps, english(t), "ci", "builder")
	loadDetails(t, p)

	_, cmd := p.Update(testutil.Key("m"))
	require.NotNil(t, cmd)
	menu := cmd().(actions.OpenMenuMsg)

	item, _ := p.Item()
	row := deps.Registry.ForResource(item)
	require.Len(t, menu.Actions, len(row))
	for i := range row {
		assert.Equal(t, row[i].ID, menu.Actions[i].ID)
	}
}
