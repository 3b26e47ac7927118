package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/k1console/internal/actions"
	"github.com/renato0307/k1console/internal/i18n"
	"github.com/renato0307/k1console/internal/k8s/dummy"
	"github.com/renato0307/k1console/internal/pages"
	"github.com/renato0307/k1console/internal/testutil"
	"github.com/renato0307/k1console/internal/types"
	"github.com/renato0307/k1console/internal/ui"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeClipboard struct {
	copied []string
}

func (c *fakeClipboard) write(text string) error {
	c.copied = append(c.copied, text)
	return nil
}

func newTestApp(t *testing.T, namespace string) (*Model, *dummy.Source, *fakeClipboard) {
	t.Helper()
	bundle, err := i18n.NewBundle()
	require.NoError(t, err)

	src := dummy.NewSeededSource(testNow)
	clip := &fakeClipboard{}
	m := New(Options{
		Backend:   src,
		Theme:     ui.GetTheme("charm"),
		Bundle:    bundle,
		Locale:    "en",
		Namespace: namespace,
		Clipboard: clip.write,
		Now:       func() time.Time { return testNow },
	})
	t.Cleanup(func() { m.quit() })
	testutil.Feed(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, src, clip
}

// start loads the root list.
func start(t *testing.T, m *Model) {
	t.Helper()
	testutil.Feed(m, testutil.Collect(m.Init())...)
	require.Equal(t, pages.PhaseLoaded, m.root.Phase())
}

// press sends a key and delivers the messages its command produced,
// one level deep.
func press(m *Model, key string) []tea.Cmd {
	cmds := testutil.Feed(m, testutil.Key(key))
	var out []tea.Cmd
	for _, cmd := range cmds {
		out = append(out, testutil.Feed(m, testutil.Collect(cmd)...)...)
	}
	return out
}

// openDetails opens the selected account and delivers its fetch and
// subscriptions.
func openDetails(t *testing.T, m *Model) {
	t.Helper()
	cmds := press(m, "enter")
	require.Equal(t, 2, m.Depth())
	require.Len(t, cmds, 1)
	fetched := testutil.Collect(cmds[0])
	require.Len(t, fetched, 1)
	for _, cmd := range testutil.Feed(m, fetched...) {
		testutil.Feed(m, testutil.Collect(cmd)...)
	}
	require.Equal(t, pages.PhaseLoaded, m.Top().(*pages.DetailsPage).Phase())
}

func TestApp_ListLoads(t *testing.T) {
	m, _, _ := newTestApp(t, "ci")
	start(t, m)

	view := m.View()
	assert.Contains(t, view, "k1console")
	assert.Contains(t, view, "ServiceAccounts")
	assert.Contains(t, view, "namespace: ci")
	assert.Contains(t, view, "builder")
	assert.Contains(t, view, "deployer")
	assert.NotContains(t, view, "prometheus")
	assert.Contains(t, view, "q quit")
	assert.Equal(t, 1, m.Depth())
}

func TestApp_DetailsAndBack(t *testing.T) {
	m, src, _ := newTestApp(t, "ci")
	start(t, m)

	openDetails(t, m)

	view := m.View()
	assert.Contains(t, view, "ServiceAccount ci/builder")
	assert.Contains(t, view, "builder-token")
	assert.Contains(t, view, "registry-creds")
	assert.NotContains(t, view, "unrelated")

	details := m.Top().(*pages.DetailsPage)
	press(m, "esc")

	assert.Equal(t, 1, m.Depth())
	assert.True(t, details.Disposed())
	assert.Contains(t, m.View(), "deployer")
	// root list watch plus nothing left from the details page
	assert.Eventually(t, func() bool { return src.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
}

func TestApp_EscOnRootKeepsList(t *testing.T) {
	m, _, _ := newTestApp(t, "ci")
	start(t, m)

	press(m, "esc")

	assert.Equal(t, 1, m.Depth())
	assert.False(t, m.root.Disposed())
}

func TestApp_NavigationHistoryIsCapped(t *testing.T) {
	m, _, _ := newTestApp(t, "ci")
	start(t, m)

	var opened []*pages.DetailsPage
	for i := 0; i < MaxNavigationHistorySize+1; i++ {
		testutil.Feed(m, pages.OpenDetailsMsg{Kind: "ServiceAccount", Namespace: "ci", Name: "builder"})
		opened = append(opened, m.Top().(*pages.DetailsPage))
	}

	assert.Equal(t, MaxNavigationHistorySize, m.Depth())
	assert.True(t, opened[0].Disposed())
	assert.True(t, opened[1].Disposed())
	assert.False(t, opened[2].Disposed())
	assert.Same(t, m.root, m.stack[0])
}

func TestApp_UnknownKindIsIgnored(t *testing.T) {
	m, _, _ := newTestApp(t, "ci")
	start(t, m)

	testutil.Feed(m, pages.OpenDetailsMsg{Kind: "Secret", Namespace: "ci", Name: "unrelated"})

	assert.Equal(t, 1, m.Depth())
}

func TestApp_MenuCopiesEditCommand(t *testing.T) {
	m, _, clip := newTestApp(t, "ci")
	start(t, m)

	press(m, "m")
	require.True(t, m.MenuOpen())
	assert.Contains(t, m.View(), "ServiceAccount ci/builder")

	press(m, "down")
	press(m, "enter")

	assert.False(t, m.MenuOpen())
	assert.Equal(t, []string{"kubectl edit serviceaccount/builder -n ci"}, clip.copied)
	assert.Contains(t, m.View(), "Command copied to clipboard")
}

func TestApp_MenuDeleteNeedsConfirmation(t *testing.T) {
	m, src, _ := newTestApp(t, "ci")
	start(t, m)

	press(m, "m")
	press(m, "down")
	press(m, "down")
	press(m, "enter")
	require.True(t, m.MenuOpen())
	assert.Contains(t, m.View(), "Delete ServiceAccount ci/builder?")

	press(m, "y")

	assert.False(t, m.MenuOpen())
	assert.Equal(t, []string{"ci/builder"}, src.Deleted())
	assert.Contains(t, m.View(), "Deleted ServiceAccount ci/builder")
}

func TestApp_MenuDeleteCancelled(t *testing.T) {
	m, src, _ := newTestApp(t, "ci")
	start(t, m)

	press(m, "m")
	press(m, "down")
	press(m, "down")
	press(m, "enter")
	press(m, "n")

	assert.True(t, m.MenuOpen(), "cancelling returns to the list of actions")
	assert.Empty(t, src.Deleted())
	press(m, "esc")
	assert.False(t, m.MenuOpen())
	assert.Equal(t, 1, m.Depth())
}

func TestApp_CreateShowsCommand(t *testing.T) {
	m, _, clip := newTestApp(t, "ci")
	start(t, m)

	press(m, "c")

	assert.Equal(t, []string{"kubectl create serviceaccount <name> -n ci"}, clip.copied)
}

func TestApp_LocaleSwitch(t *testing.T) {
	m, _, _ := newTestApp(t, "ci")
	start(t, m)
	openDetails(t, m)

	press(m, "L")

	assert.Equal(t, "de", m.Locale())
	assert.Contains(t, m.View(), "Geheimnisse")
	assert.Contains(t, m.View(), "esc zurück")
	assert.Contains(t, m.View(), "q beenden")
	assert.NotContains(t, m.View(), "q quit")
	press(m, "esc")
	assert.Contains(t, m.View(), "Dienstkonten")
	assert.Contains(t, m.View(), "N Namensraum")
	assert.Contains(t, m.View(), "c: Dienstkonto erstellen")
}

func TestApp_NamespaceToggle(t *testing.T) {
	m, _, _ := newTestApp(t, "ci")
	start(t, m)

	press(m, "N")

	assert.Equal(t, "", m.root.Namespace())
	assert.Equal(t, 6, m.root.Visible().Len())
	assert.Contains(t, m.View(), "prometheus")

	press(m, "N")
	assert.Equal(t, "ci", m.root.Namespace())
	assert.Equal(t, 3, m.root.Visible().Len())
}

func TestApp_StatusMessagesClearByID(t *testing.T) {
	m, _, _ := newTestApp(t, "ci")
	start(t, m)

	testutil.Feed(m, types.InfoMsg("first"))
	testutil.Feed(m, types.InfoMsg("second"))
	testutil.Feed(m, types.ClearStatusMsg{MessageID: 1})
	assert.Contains(t, m.View(), "second")

	testutil.Feed(m, types.ClearStatusMsg{MessageID: 2})
	assert.NotContains(t, m.View(), "second")
}

func TestApp_EmptyMenuShowsInfo(t *testing.T) {
	m, _, _ := newTestApp(t, "ci")
	start(t, m)

	r, ok := m.root.Visible().Get("ci/builder")
	require.True(t, ok)
	cmds := testutil.Feed(m, actions.OpenMenuMsg{Resource: r})
	require.Len(t, cmds, 1)

	assert.False(t, m.MenuOpen())
	msg, ok := cmds[0]().(types.StatusMsg)
	require.True(t, ok)
	assert.Contains(t, msg.Message, "No actions available")
}

func TestApp_QuitClosesPages(t *testing.T) {
	m, _, _ := newTestApp(t, "ci")
	start(t, m)

	cmds := testutil.Feed(m, testutil.Key("q"))
	require.Len(t, cmds, 1)

	_, ok := cmds[0]().(tea.QuitMsg)
	assert.True(t, ok)
	assert.True(t, m.root.Disposed())
}

func TestApp_Program(t *testing.T) {
	bundle, err := i18n.NewBundle()
	require.NoError(t, err)
	m := New(Options{
		Backend:   dummy.NewSeededSource(testNow),
		Theme:     ui.GetTheme("nord"),
		Bundle:    bundle,
		Locale:    "en",
		Namespace: "ci",
		Clipboard: (&fakeClipboard{}).write,
		Now:       func() time.Time { return testNow },
	})

	tp := testutil.NewTestProgram(t, m, 120, 40)

	require.True(t, tp.WaitForOutput("deployer", 2*time.Second))
	tp.SendKey("enter")
	assert.True(t, tp.WaitForOutput("registry-creds", 2*time.Second))
}
