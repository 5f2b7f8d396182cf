package tui

import "github.com/charmbracelet/bubbles/key"

// shellKeys holds key bindings for the interactive shell.
type shellKeys struct {
	Submit   key.Binding
	Prev     key.Binding
	Next     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

// ShortHelp returns the shell bindings for the help bar.
func (k shellKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Prev, k.Next, k.PageUp, k.Quit}
}

// FullHelp returns the shell bindings grouped for expanded help.
func (k shellKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Prev, k.Next},
		{k.PageUp, k.PageDown, k.Quit},
	}
}

// ShellKeyMap returns the key bindings for the interactive shell.
// Letter keys are left to the text input.
func ShellKeyMap() shellKeys {
	return shellKeys{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup/pgdn", "scroll"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}
