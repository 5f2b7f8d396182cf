package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// inputHeight is the number of lines reserved for the command input.
const inputHeight = 1

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// defaultPrompt is used when no prompt is configured.
const defaultPrompt = "> "

// exchange is one command line and the reply it produced.
type exchange struct {
	input string
	reply Reply
}

// Model is the Bubble Tea model for the interactive shell: a scrolling
// transcript above a single-line command input.
type Model struct {
	exec     Executor
	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     shellKeys

	prompt   string
	greeting string
	log      []exchange

	history      []string
	historyLimit int
	historyIdx   int // len(history) when not browsing.

	width  int
	height int
	done   bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPrompt sets the prompt shown before the input and echoed commands.
func WithPrompt(prompt string) ModelOption {
	return func(m *Model) {
		if prompt != "" {
			m.prompt = prompt
		}
	}
}

// WithGreeting sets the line shown at the top of the transcript.
func WithGreeting(greeting string) ModelOption {
	return func(m *Model) { m.greeting = greeting }
}

// WithHistoryLimit caps how many commands are kept for recall.
// Zero disables history.
func WithHistoryLimit(n int) ModelOption {
	return func(m *Model) { m.historyLimit = max(n, 0) }
}

// NewModel creates a shell Model that sends submitted lines to exec.
func NewModel(exec Executor, opts ...ModelOption) Model {
	m := Model{
		exec:     exec,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		keys:     ShellKeyMap(),
		prompt:   defaultPrompt,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.input = textinput.New()
	m.input.Prompt = m.prompt
	m.input.Placeholder = "help"
	m.input.Focus()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(m.prompt)-1, 1)
		m.viewport.Width = msg.Width
		m.viewport.Height = m.transcriptHeight()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey routes shell bindings and passes everything else to the input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.done = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Prev):
		m.recall(-1)
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.recall(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit executes the current input line and appends the exchange.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	m.historyIdx = len(m.history)
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.remember(line)
	reply := m.exec.Execute(line)
	m.log = append(m.log, exchange{input: line, reply: reply})
	m.refresh()

	if reply.Quit {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// remember appends line to the history, dropping the oldest entries past the
// limit and skipping immediate repeats.
func (m *Model) remember(line string) {
	if m.historyLimit == 0 {
		return
	}
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	if over := len(m.history) - m.historyLimit; over > 0 {
		m.history = m.history[over:]
	}
	m.historyIdx = len(m.history)
}

// recall moves through the history by delta and loads the entry into the input.
// Moving past the newest entry clears the input.
func (m *Model) recall(delta int) {
	if len(m.history) == 0 {
		return
	}
	i := max(m.historyIdx+delta, 0)
	if i >= len(m.history) {
		m.historyIdx = len(m.history)
		m.input.SetValue("")
		return
	}
	m.historyIdx = i
	m.input.SetValue(m.history[i])
	m.input.CursorEnd()
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *Model) refresh() {
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

// transcriptHeight returns the usable height for the transcript,
// accounting for the input line and the help bar.
func (m Model) transcriptHeight() int {
	h := m.height - inputHeight - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// transcript renders the greeting followed by every exchange so far.
func (m Model) transcript() string {
	var lines []string
	if m.greeting != "" {
		lines = append(lines, greetingStyle.Render(m.greeting))
	}
	for _, e := range m.log {
		lines = append(lines, echoStyle.Render(m.prompt+e.input))
		if e.reply.Text != "" {
			lines = append(lines, ReplyStyle(e.reply.Err).Render(e.reply.Text))
		}
	}
	return strings.Join(lines, "\n")
}

// View renders the transcript, input line, and help bar.
// After quitting only the transcript remains so it stays in the scrollback.
func (m Model) View() string {
	if m.done {
		return m.transcript() + "\n"
	}

	body := m.transcript()
	if m.height > 0 {
		body = m.viewport.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.input.View(), m.help.View(m.keys))
}
