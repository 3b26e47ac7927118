package pages

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/k1console/internal/k8s"
	"github.com/renato0307/k1console/internal/ui"
)

// MaxEventBatch caps how many queued watch events become one message.
const MaxEventBatch = 256

// Phase is the acquisition state of a page.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseError
	// PhaseNotFound is terminal: the resource is gone.
	PhaseNotFound
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	case PhaseNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

var lastPageID atomic.Uint64

func nextPageID() uint64 {
	return lastPageID.Add(1)
}

// stamp identifies the page and load generation a message belongs to.
// Every reload bumps the generation, so results of an abandoned load are
// recognised and dropped.
type stamp struct {
	page uint64
	gen  uint64
}

func (s stamp) owner() uint64 { return s.page }

// stamped is implemented by every message that embeds a stamp.
type stamped interface {
	owner() uint64
}

// lifecycle is the cancellation and staleness bookkeeping shared by pages.
type lifecycle struct {
	id       uint64
	gen      uint64
	ctx      context.Context
	cancel   context.CancelFunc
	disposed bool
}

func newLifecycle() lifecycle {
	return lifecycle{id: nextPageID()}
}

// restart cancels the running load and starts a new generation.
func (l *lifecycle) restart() (context.Context, stamp) {
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	l.ctx, l.cancel = context.WithCancel(context.Background())
	return l.ctx, stamp{page: l.id, gen: l.gen}
}

// stop cancels the running load without starting a new one.
func (l *lifecycle) stop() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}

// dispose stops the page for good.
func (l *lifecycle) dispose() {
	l.stop()
	l.disposed = true
}

// current reports whether a message stamped s may touch page state.
func (l *lifecycle) current(s stamp) bool {
	return !l.disposed && s.page == l.id && s.gen == l.gen
}

// OpenDetailsMsg asks the app to open the details page of a resource.
type OpenDetailsMsg struct {
	Kind      string
	Namespace string
	Name      string
}

// OpenDetails returns a command emitting OpenDetailsMsg for r. List pages
// use it as their OnSelect.
func OpenDetails(r k8s.Resource) tea.Cmd {
	return func() tea.Msg {
		return OpenDetailsMsg{Kind: r.Kind, Namespace: r.Namespace, Name: r.Name}
	}
}

// subscribedMsg carries the result of Source.Subscribe.
type subscribedMsg struct {
	stamp
	watch *k8s.Watch
	err   error
}

// eventsMsg carries a batch of watch events. closed reports that the
// channel ended; err is the watch's terminal error if any.
type eventsMsg struct {
	stamp
	events []k8s.CollectionEvent
	closed bool
	err    error
}

func subscribe(ctx context.Context, src k8s.Source, q k8s.Query, s stamp) tea.Cmd {
	return func() tea.Msg {
		w, err := src.Subscribe(ctx, q)
		return subscribedMsg{stamp: s, watch: w, err: err}
	}
}

// waitForEvents blocks for the next event, then drains whatever else is
// already queued, up to MaxEventBatch, into a single message.
func waitForEvents(ctx context.Context, w *k8s.Watch, s stamp) tea.Cmd {
	return func() tea.Msg {
		var first k8s.CollectionEvent
		select {
		case <-ctx.Done():
			return eventsMsg{stamp: s, closed: true}
		case ev, ok := <-w.Events:
			if !ok {
				return eventsMsg{stamp: s, closed: true, err: w.Err()}
			}
			first = ev
		}

		batch := []k8s.CollectionEvent{first}
		for len(batch) < MaxEventBatch {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return eventsMsg{stamp: s, events: batch, closed: true, err: w.Err()}
				}
				batch = append(batch, ev)
			default:
				return eventsMsg{stamp: s, events: batch}
			}
		}
		return eventsMsg{stamp: s, events: batch}
	}
}

// panel renders a bordered message box, used for error, empty and
// not-found states.
func panel(theme *ui.Theme, color lipgloss.AdaptiveColor, width int, lines ...string) string {
	style := theme.Panel(color)
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
