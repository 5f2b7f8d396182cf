// Package command tokenizes shell input and resolves it against a table of
// named commands.
package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/shlex"
)

// ErrEmpty indicates a blank input line.
var ErrEmpty = errors.New("command: empty input")

// Handler runs a command with its positional arguments and returns the reply text.
type Handler func(args []string) (string, error)

// Command is a named entry in the registry.
type Command struct {
	Name    string // One or more space-separated words, e.g. "show all".
	Usage   string // Argument synopsis, e.g. "<name> [phone]".
	Summary string
	Run     Handler
}

// Registry maps command names to commands.
// It is not safe for concurrent use; registration should happen at startup.
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command. Names are matched case-insensitively and with
// runs of whitespace collapsed. Overwrites if the name already exists.
// Panics if the name is empty or Run is nil (programmer error).
func (r *Registry) Register(c Command) {
	key := normalizeName(c.Name)
	if key == "" {
		panic("command: Register called with empty name")
	}
	if c.Run == nil {
		panic("command: Register called with nil handler")
	}
	c.Name = key
	r.commands[key] = c
}

// Split tokenizes a line with shell-style quoting, so `add "Anna Maria" 050`
// yields three tokens.
func Split(line string) ([]string, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("command: parsing input: %w", err)
	}
	if len(tokens) == 0 {
		return nil, ErrEmpty
	}
	return tokens, nil
}

// Match resolves tokens to the command with the longest name that is a word
// prefix of tokens, returning the remaining tokens as arguments.
func (r *Registry) Match(tokens []string) (Command, []string, error) {
	return r.match(tokens, len(tokens))
}

// Parse splits line and matches it in one step. Quoted or escaped words never
// form part of a command name, so `add "phone" 050...` resolves to add.
func (r *Registry) Parse(line string) (Command, []string, error) {
	tokens, err := Split(line)
	if err != nil {
		return Command{}, nil, err
	}
	return r.match(tokens, literalWords(line, tokens))
}

// match considers only the first limit tokens as candidate name words.
func (r *Registry) match(tokens []string, limit int) (Command, []string, error) {
	if len(tokens) == 0 {
		return Command{}, nil, ErrEmpty
	}
	for n := min(limit, len(tokens)); n > 0; n-- {
		key := normalizeName(strings.Join(tokens[:n], " "))
		if c, ok := r.commands[key]; ok {
			return c, tokens[n:], nil
		}
	}
	return Command{}, nil, &UnknownCommandError{
		Name:      tokens[0],
		Available: r.Names(),
	}
}

// literalWords counts the leading tokens that were typed bare, without quotes
// or backslash escapes.
func literalWords(line string, tokens []string) int {
	fields := strings.Fields(line)
	n := 0
	for n < len(tokens) && n < len(fields) {
		if fields[n] != tokens[n] || strings.ContainsAny(fields[n], `"'\`) {
			break
		}
		n++
	}
	return n
}

// Names returns registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Commands returns registered commands sorted by name.
func (r *Registry) Commands() []Command {
	names := r.Names()
	out := make([]Command, len(names))
	for i, name := range names {
		out[i] = r.commands[name]
	}
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// UnknownCommandError indicates input that matches no registered command.
type UnknownCommandError struct {
	Name      string
	Available []string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// UsageError indicates a command received the wrong arguments.
type UsageError struct {
	Command string
	Usage   string
}

func (e *UsageError) Error() string {
	if e.Usage == "" {
		return fmt.Sprintf("usage: %s", e.Command)
	}
	return fmt.Sprintf("usage: %s %s", e.Command, e.Usage)
}

// UsageError returns a *UsageError describing c's expected arguments.
func (c Command) UsageError() error {
	return &UsageError{Command: c.Name, Usage: c.Usage}
}
