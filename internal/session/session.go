// Package session executes shell command lines against a contact directory
// and turns results and failures into reply text.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/smileynet/phonebook/internal/command"
	"github.com/smileynet/phonebook/internal/contact"
	"github.com/smileynet/phonebook/internal/directory"
	"github.com/smileynet/phonebook/internal/logging"
	"github.com/smileynet/phonebook/internal/phone"
)

var (
	errBadPosition    = errors.New("session: position is not a number")
	errPhoneNotListed = errors.New("session: phone not listed")
)

// Reply is the outcome of one command line.
type Reply struct {
	Text string
	Err  bool // Text describes a failure.
	Quit bool // The user asked to end the session.
}

// Options configures a Session.
type Options struct {
	PositionBase int              // Position of the first phone as typed by users (0 or 1).
	Logger       *charmlog.Logger // Defaults to a discarding logger.
}

// Session binds the command table to one directory.
// It is not safe for concurrent use.
type Session struct {
	dir  *directory.Directory
	reg  *command.Registry
	log  *charmlog.Logger
	base int
	quit map[string]bool
}

// New creates a Session operating on dir.
func New(dir *directory.Directory, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	s := &Session{
		dir:  dir,
		reg:  command.NewRegistry(),
		log:  opts.Logger,
		base: opts.PositionBase,
		quit: make(map[string]bool),
	}
	s.registerCommands()
	return s
}

// Directory returns the directory the session mutates.
func (s *Session) Directory() *directory.Directory {
	return s.dir
}

// Commands returns the registered commands sorted by name.
func (s *Session) Commands() []command.Command {
	return s.reg.Commands()
}

// Execute parses and runs one command line. Blank lines produce an empty reply.
func (s *Session) Execute(line string) Reply {
	c, args, err := s.reg.Parse(line)
	if errors.Is(err, command.ErrEmpty) {
		return Reply{}
	}
	if err != nil {
		s.log.Warn("command rejected", "err", err)
		return Reply{Text: message(err), Err: true}
	}

	s.log.Debug("command", "name", c.Name, "args", len(args))
	text, err := c.Run(args)
	if err != nil {
		s.log.Warn("command failed", "name", c.Name, "err", err)
		return Reply{Text: message(err), Err: true}
	}
	return Reply{Text: text, Quit: s.quit[c.Name]}
}

func (s *Session) registerCommands() {
	s.reg.Register(command.Command{Name: "hello", Summary: "Greet the bot", Run: s.hello})
	s.reg.Register(command.Command{Name: "help", Summary: "List commands", Run: s.help})
	s.reg.Register(command.Command{Name: "add", Usage: "<name> [phone]", Summary: "Add a contact", Run: s.add})
	s.reg.Register(command.Command{Name: "add phone", Usage: "<name> <phone>", Summary: "Add a phone to a contact", Run: s.addPhone})
	s.reg.Register(command.Command{Name: "change", Usage: "<name> <position|phone> <phone>", Summary: "Replace a phone by position or number", Run: s.change})
	s.reg.Register(command.Command{Name: "delete phone", Usage: "<name> <position|phone>", Summary: "Remove a phone from a contact", Run: s.deletePhone})
	s.reg.Register(command.Command{Name: "remove", Usage: "<name>", Summary: "Remove a contact", Run: s.remove})
	s.reg.Register(command.Command{Name: "phone", Usage: "<name>", Summary: "Show a contact's phones", Run: s.show})
	s.reg.Register(command.Command{Name: "show all", Summary: "List every contact", Run: s.showAll})
	s.reg.Register(command.Command{Name: "normalize", Usage: "<phone>", Summary: "Print a number in canonical form", Run: s.normalize})

	for _, name := range []string{"good bye", "close", "exit"} {
		s.reg.Register(command.Command{Name: name, Summary: "Leave the phonebook", Run: s.bye})
		s.quit[name] = true
	}
}

func (s *Session) usage(name string) error {
	for _, c := range s.reg.Commands() {
		if c.Name == name {
			return c.UsageError()
		}
	}
	return &command.UsageError{Command: name}
}

func (s *Session) hello([]string) (string, error) {
	return "How can I help you?", nil
}

func (s *Session) help([]string) (string, error) {
	cmds := s.reg.Commands()
	synopses := make([]string, len(cmds))
	width := 0
	for i, c := range cmds {
		synopses[i] = strings.TrimSpace(c.Name + " " + c.Usage)
		width = max(width, len(synopses[i]))
	}

	var b strings.Builder
	b.WriteString("Commands:")
	for i, c := range cmds {
		fmt.Fprintf(&b, "\n  %-*s  %s", width, synopses[i], c.Summary)
	}
	return b.String(), nil
}

func (s *Session) add(args []string) (string, error) {
	if len(args) == 0 {
		return "", s.usage("add")
	}

	var phones []phone.Number
	if len(args) > 1 {
		p, err := phone.Parse(strings.Join(args[1:], " "))
		if err != nil {
			return "", err
		}
		phones = append(phones, p)
	}

	rec, err := contact.New(args[0], phones...)
	if err != nil {
		return "", err
	}
	if err := s.dir.Add(rec); err != nil {
		return "", err
	}

	s.log.Info("contact added", "name", rec.Name(), "phones", rec.Len())
	return "Added " + strings.TrimSpace(rec.String()), nil
}

func (s *Session) addPhone(args []string) (string, error) {
	if len(args) < 2 {
		return "", s.usage("add phone")
	}
	rec, err := s.dir.Get(args[0])
	if err != nil {
		return "", err
	}
	p, err := phone.Parse(strings.Join(args[1:], " "))
	if err != nil {
		return "", err
	}
	if err := rec.AddPhone(p); err != nil {
		return "", err
	}

	s.log.Info("phone added", "name", rec.Name(), "phone", p.Masked())
	return fmt.Sprintf("Added %s to %s", p, rec.Name()), nil
}

// change replaces a phone, picked by value or by position, keeping its place
// in the list.
func (s *Session) change(args []string) (string, error) {
	if len(args) < 3 {
		return "", s.usage("change")
	}
	rec, err := s.dir.Get(args[0])
	if err != nil {
		return "", err
	}
	i, err := s.phoneIndex(rec, args[1])
	if err != nil {
		return "", err
	}
	p, err := phone.Parse(strings.Join(args[2:], " "))
	if err != nil {
		return "", err
	}

	before := rec.Phones()
	if err := rec.ReplacePhoneAt(i, p); err != nil {
		return "", err
	}

	s.log.Info("phone changed", "name", rec.Name(), "position", i, "phone", p.Masked())
	return fmt.Sprintf("Changed %s to %s for %s", before[i], p, rec.Name()), nil
}

// deletePhone removes by value when the argument is a valid phone number and
// by position otherwise.
func (s *Session) deletePhone(args []string) (string, error) {
	if len(args) < 2 {
		return "", s.usage("delete phone")
	}
	rec, err := s.dir.Get(args[0])
	if err != nil {
		return "", err
	}
	i, err := s.phoneIndex(rec, strings.Join(args[1:], " "))
	if err != nil {
		return "", err
	}
	removed, err := rec.RemovePhoneAt(i)
	if err != nil {
		return "", err
	}

	s.log.Info("phone removed", "name", rec.Name(), "phone", removed.Masked())
	return fmt.Sprintf("Removed %s from %s", removed, rec.Name()), nil
}

func (s *Session) remove(args []string) (string, error) {
	if len(args) == 0 {
		return "", s.usage("remove")
	}
	name := strings.TrimSpace(strings.Join(args, " "))
	if err := s.dir.Remove(name); err != nil {
		return "", err
	}

	s.log.Info("contact removed", "name", name)
	return "Removed " + name, nil
}

func (s *Session) show(args []string) (string, error) {
	if len(args) == 0 {
		return "", s.usage("phone")
	}
	rec, err := s.dir.Get(strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	return rec.String(), nil
}

func (s *Session) showAll(args []string) (string, error) {
	if len(args) > 0 {
		return "", s.usage("show all")
	}
	if s.dir.Len() == 0 {
		return "No contacts yet.", nil
	}
	lines := make([]string, 0, s.dir.Len())
	for rec := range s.dir.All() {
		lines = append(lines, rec.String())
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Session) normalize(args []string) (string, error) {
	if len(args) == 0 {
		return "", s.usage("normalize")
	}
	return phone.Normalize(strings.Join(args, " "))
}

func (s *Session) bye([]string) (string, error) {
	return "Good bye!", nil
}

// phoneIndex resolves arg to an index in rec. A valid phone number is looked
// up by value; anything else is read as a position.
func (s *Session) phoneIndex(rec *contact.Record, arg string) (int, error) {
	if p, err := phone.Parse(arg); err == nil {
		i := rec.IndexOf(p)
		if i < 0 {
			return 0, fmt.Errorf("%w: %s for %s", errPhoneNotListed, p, rec.Name())
		}
		return i, nil
	}
	return s.parsePosition(arg)
}

// parsePosition converts a user-typed position to a zero-based index.
// Range checks are left to the record.
func (s *Session) parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadPosition, arg)
	}
	return n - s.base, nil
}

// message translates an error into the text shown to the user.
func message(err error) string {
	var unknown *command.UnknownCommandError
	var usage *command.UsageError
	switch {
	case errors.As(err, &unknown):
		return fmt.Sprintf("Unknown command %q. Type 'help' to see available commands.", unknown.Name)
	case errors.As(err, &usage):
		return "Usage: " + strings.TrimPrefix(usage.Error(), "usage: ")
	case errors.Is(err, phone.ErrInvalidFormat):
		return "Invalid phone number. Use 0XXXXXXXXX or +380XXXXXXXXX."
	case errors.Is(err, contact.ErrInvalidName):
		return "Contact name cannot be empty."
	case errors.Is(err, contact.ErrDuplicatePhone):
		return "That number is already listed for this contact."
	case errors.Is(err, contact.ErrIndexOutOfRange):
		return "No phone at that position."
	case errors.Is(err, directory.ErrDuplicateContact):
		return "Contact already exists. Use 'add phone' to add another number."
	case errors.Is(err, directory.ErrContactNotFound):
		return "Contact not found."
	case errors.Is(err, errBadPosition):
		return "Position must be a whole number."
	case errors.Is(err, errPhoneNotListed):
		return "That number is not listed for this contact."
	default:
		return "Error: " + err.Error()
	}
}
