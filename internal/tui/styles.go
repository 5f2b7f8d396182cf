package tui

import "github.com/charmbracelet/lipgloss"

var (
	greetingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	// echoStyle renders the user's own command lines in the transcript.
	echoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	replyStyle = lipgloss.NewStyle()

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
)

// ReplyStyle returns the style for a reply: red for failures, plain otherwise.
func ReplyStyle(isErr bool) lipgloss.Style {
	if isErr {
		return errorStyle
	}
	return replyStyle
}
