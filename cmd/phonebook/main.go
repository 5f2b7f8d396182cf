package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"

	"github.com/smileynet/phonebook"
	"github.com/smileynet/phonebook/internal/config"
	"github.com/smileynet/phonebook/internal/directory"
	"github.com/smileynet/phonebook/internal/logging"
	"github.com/smileynet/phonebook/internal/phone"
	"github.com/smileynet/phonebook/internal/session"
	"github.com/smileynet/phonebook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for phonebook.
type CLI struct {
	Version   kong.VersionFlag `help:"Show version." short:"V"`
	Shell     ShellCmd         `cmd:"" default:"withargs" help:"Start the interactive phonebook shell (default)."`
	Normalize NormalizeCmd     `cmd:"" help:"Print phone numbers in canonical form."`
	Config    ConfigCmd        `cmd:"" help:"Print an annotated example config file."`
}

// ShellCmd runs the interactive contact shell.
type ShellCmd struct {
	NoTUI  bool   `help:"Force the plain line shell even if stdout is a TTY." default:"false"`
	Prompt string `help:"Prompt shown before each command (overrides config)."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/phonebook/config.yaml"),
		".phonebook/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run loads config, picks a front end, and runs the shell until the user quits.
func (s *ShellCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	// Apply CLI flag overrides.
	if s.Prompt != "" {
		cfg.Shell.Prompt = s.Prompt
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	sh := tui.NewShell(tui.ShellOptions{
		Reader:       os.Stdin,
		Writer:       os.Stdout,
		ForcePlain:   s.NoTUI,
		Prompt:       cfg.Shell.Prompt,
		Greeting:     cfg.Shell.Greeting,
		HistoryLimit: cfg.Shell.History,
	})

	_, interactive := sh.(*tui.TUIShell)
	logger, closeLog, err := newLogger(cfg.Log, os.Stderr, interactive)
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return s.run(ctx, sh, cfg, logger)
}

// run executes the shell with the given front end, enabling testable wiring.
func (s *ShellCmd) run(ctx context.Context, sh tui.Shell, cfg *config.Config, logger *charmlog.Logger) error {
	sess := session.New(directory.New(), session.Options{
		PositionBase: cfg.Shell.PositionBase,
		Logger:       logger,
	})

	logger.Debug("shell started", "front_end", fmt.Sprintf("%T", sh), "position_base", cfg.Shell.PositionBase)
	err := sh.Run(ctx, &sessionExecutor{session: sess})
	logger.Debug("shell stopped", "contacts", sess.Directory().Len())

	// Interrupt ends the session like "exit" does.
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shell: %w", err)
	}
	return nil
}

// newLogger builds the shell logger. A configured file wins; otherwise logs go
// to stderr for the plain shell and are discarded under the TUI.
// The returned func closes any opened file.
func newLogger(cfg config.Log, stderr io.Writer, interactive bool) (*charmlog.Logger, func(), error) {
	out := stderr
	closeFn := func() {}

	switch {
	case cfg.File != "":
		f, err := logging.OpenFile(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	case interactive:
		out = io.Discard
	}

	logger, err := logging.New(logging.Options{Level: cfg.Level, Format: cfg.Format, Output: out})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return logger, closeFn, nil
}

// sessionExecutor adapts a session to the tui.Executor interface.
type sessionExecutor struct {
	session *session.Session
}

func (e *sessionExecutor) Execute(line string) tui.Reply {
	r := e.session.Execute(line)
	return tui.Reply{Text: r.Text, Err: r.Err, Quit: r.Quit}
}

// NormalizeCmd prints each argument in canonical phone form.
type NormalizeCmd struct {
	Numbers []string `arg:"" name:"phone" help:"Phone numbers to normalize."`
}

// Run executes the normalize command.
func (n *NormalizeCmd) Run() error {
	return n.run(os.Stdout, os.Stderr)
}

// run prints one canonical number per valid argument to w and one line per
// invalid argument to errw. Any invalid argument fails the command.
func (n *NormalizeCmd) run(w, errw io.Writer) error {
	failed := 0
	for _, raw := range n.Numbers {
		canonical, err := phone.Normalize(raw)
		if err != nil {
			_, _ = fmt.Fprintf(errw, "invalid phone number: %q\n", raw)
			failed++
			continue
		}
		_, _ = fmt.Fprintln(w, canonical)
	}

	if failed > 0 {
		return fmt.Errorf("normalize: %d of %d inputs: %w", failed, len(n.Numbers), phone.ErrInvalidFormat)
	}
	return nil
}

// ConfigCmd prints the example configuration.
type ConfigCmd struct{}

// Run executes the config command.
func (c *ConfigCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *ConfigCmd) run(w io.Writer) error {
	if _, err := w.Write(phonebook.ExampleConfig); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Exit codes for the phonebook CLI.
const (
	exitSuccess = 0
	exitInvalid = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, phone.ErrInvalidFormat) {
		return exitInvalid
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("phonebook"),
		kong.Description("Keep contacts and their Ukrainian phone numbers in an interactive shell."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
