// Package testutil drives Bubble Tea models in tests, either message by
// message (Collect, Feed) or as a running program (TestProgram).
package testutil

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Collect runs cmd and returns the messages it produced. Batches are
// expanded and spinner ticks dropped. Commands that wait for watch events
// block, so only call it on commands known to complete.
func Collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, Collect(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

// Feed delivers msgs to m and returns the non-nil commands it produced.
func Feed(m tea.Model, msgs ...tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	for _, msg := range msgs {
		_, cmd := m.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// Key builds the key message for a key name as tea.KeyMsg.String reports
// it: "enter", "esc", "down", or plain runes such as "m".
func Key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// TestProgram wraps a Bubble Tea program for testing
type TestProgram struct {
	program *tea.Program
	output  *syncBuffer
	done    chan struct{}
	t       *testing.T
}

// syncBuffer guards the output buffer; the program writes from its own
// goroutine while tests read.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// fakeInput blocks until the test ends; input is sent as messages.
type fakeInput struct {
	done chan struct{}
}

func (f *fakeInput) Read(p []byte) (int, error) {
	<-f.done
	return 0, io.EOF
}

// NewTestProgram creates a new test program with controlled I/O
func NewTestProgram(t *testing.T, model tea.Model, width, height int) *TestProgram {
	t.Helper()

	tp := &TestProgram{
		output: &syncBuffer{},
		done:   make(chan struct{}),
		t:      t,
	}
	tp.program = tea.NewProgram(
		model,
		tea.WithInput(&fakeInput{done: tp.done}),
		tea.WithOutput(tp.output),
		tea.WithoutSignalHandler(),
	)

	go func() {
		if _, err := tp.program.Run(); err != nil {
			t.Logf("Program error: %v", err)
		}
	}()
	t.Cleanup(tp.Quit)

	tp.Send(tea.WindowSizeMsg{Width: width, Height: height})
	return tp
}

// Send sends a message to the program
func (tp *TestProgram) Send(msg tea.Msg) {
	tp.program.Send(msg)
}

// Type simulates typing a string
func (tp *TestProgram) Type(s string) {
	for _, r := range s {
		tp.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// SendKey sends a key by name, see Key.
func (tp *TestProgram) SendKey(key string) {
	tp.Send(Key(key))
}

// Output returns the current output buffer content
func (tp *TestProgram) Output() string {
	return tp.output.String()
}

// WaitForOutput waits for specific text to appear in output
func (tp *TestProgram) WaitForOutput(needle string, timeout time.Duration) bool {
	tp.t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(tp.Output(), needle) {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

// Quit stops the program; it is safe to call more than once.
func (tp *TestProgram) Quit() {
	select {
	case <-tp.done:
		return
	default:
		close(tp.done)
	}
	tp.program.Quit()
}
