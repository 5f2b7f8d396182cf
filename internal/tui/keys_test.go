package tui

import (
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func collectKeys(bindings []key.Binding) []string {
	var keys []string
	for _, b := range bindings {
		keys = append(keys, b.Keys()...)
	}
	return keys
}

func TestShellKeys_ContainsExpected(t *testing.T) {
	// Given: the shell key map
	km := ShellKeyMap()
	allKeys := collectKeys(km.ShortHelp())

	// Then: submit, history, scroll, and quit keys are present
	for _, want := range []string{"enter", "up", "down", "pgup", "ctrl+c", "esc"} {
		if !slices.Contains(allKeys, want) {
			t.Errorf("ShellKeyMap missing key %q, got %v", want, allKeys)
		}
	}
}

func TestShellKeys_LeavesLettersToInput(t *testing.T) {
	km := ShellKeyMap()
	var all []key.Binding
	for _, group := range km.FullHelp() {
		all = append(all, group...)
	}

	for _, k := range collectKeys(all) {
		if len(k) == 1 {
			t.Errorf("single-character binding %q would steal typed input", k)
		}
	}
}

func TestReplyStyle(t *testing.T) {
	if ReplyStyle(true).GetForeground() != errorStyle.GetForeground() {
		t.Error("error replies should use the error style")
	}
	if ReplyStyle(false).GetForeground() != replyStyle.GetForeground() {
		t.Error("plain replies should use the reply style")
	}
}
