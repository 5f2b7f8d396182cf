// Package tui provides the terminal front ends for the phonebook shell: an
// interactive Bubble Tea program for terminals and a plain line loop for
// pipes and redirected input.
package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// Reply is the result of executing one input line.
// Values intentionally mirror session.Reply, keeping this package decoupled
// from session.
type Reply struct {
	Text string
	Err  bool
	Quit bool
}

// Executor runs one line of user input.
type Executor interface {
	Execute(line string) Reply
}

// Shell reads commands from the user until they quit or input ends.
type Shell interface {
	Run(ctx context.Context, exec Executor) error
}

// ShellOptions configures shell creation.
type ShellOptions struct {
	Reader       io.Reader // Input source (default: os.Stdin).
	Writer       io.Writer // Output destination (default: os.Stdout).
	ForcePlain   bool      // Force the plain loop even if TTY.
	Prompt       string
	Greeting     string
	HistoryLimit int // Commands kept for recall in the TUI.
}

// NewShell returns a TUI shell when the writer is a TTY, or a plain line
// loop otherwise. ForcePlain overrides TTY detection.
func NewShell(opts ShellOptions) Shell {
	if opts.Reader == nil {
		opts.Reader = os.Stdin
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	plain := &PlainShell{r: opts.Reader, w: opts.Writer, prompt: opts.Prompt, greeting: opts.Greeting}
	if opts.ForcePlain || !isTTY(opts.Writer) {
		return plain
	}
	return &TUIShell{opts: opts, fallback: plain}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainShell prints a prompt, reads a line, and prints the reply.
type PlainShell struct {
	r        io.Reader
	w        io.Writer
	prompt   string
	greeting string
}

// Run loops until a reply asks to quit, input reaches EOF, or ctx is done.
// Returns the read error if input failed, or the context error if cancelled.
// The reader goroutine stops when Run returns.
func (s *PlainShell) Run(ctx context.Context, exec Executor) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.greeting != "" {
		_, _ = fmt.Fprintln(s.w, s.greeting)
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		_, _ = fmt.Fprint(s.w, s.prompt)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				_, _ = fmt.Fprintln(s.w)
				select {
				case err := <-readErr:
					return err
				default:
					return ctx.Err()
				}
			}
			reply := exec.Execute(line)
			if reply.Text != "" {
				_, _ = fmt.Fprintln(s.w, reply.Text)
			}
			if reply.Quit {
				return nil
			}
		}
	}
}

// TUIShell runs the shell as a Bubble Tea program.
// Falls back to PlainShell if the program fails to start.
type TUIShell struct {
	opts     ShellOptions
	fallback *PlainShell
}

// Run starts the Bubble Tea program and blocks until it exits.
func (s *TUIShell) Run(ctx context.Context, exec Executor) error {
	model := NewModel(exec,
		WithPrompt(s.opts.Prompt),
		WithGreeting(s.opts.Greeting),
		WithHistoryLimit(s.opts.HistoryLimit),
	)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(s.opts.Reader),
		tea.WithOutput(s.opts.Writer),
	)

	_, err := p.Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil {
		return nil
	}
	return s.fallback.Run(ctx, exec)
}
