// Package pagetest holds helpers for driving page models in tests.
package pagetest

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/clutter-dashboard-tui/internal/app"
)

// Run executes cmd and flattens batches into the resulting messages. Commands
// that sleep (cursor blinks, spinner frames fed back through Update) must not
// be passed in.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// Find returns the first message of type T.
func Find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// All returns every message of type T.
func All[T any](msgs []tea.Msg) []T {
	var out []T
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

var keyTypes = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"backspace": tea.KeyBackspace,
	"ctrl+r":    tea.KeyCtrlR,
	"ctrl+n":    tea.KeyCtrlN,
}

// Key builds a key message from a bubbletea key name or literal runes.
func Key(s string) tea.KeyMsg {
	if t, ok := keyTypes[s]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// Type sends s to the page one rune at a time and discards the commands.
func Type(p app.Page, s string) app.Page {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

// Notifications returns the toasts requested by msgs.
func Notifications(msgs []tea.Msg) []app.AddNotificationMsg {
	return All[app.AddNotificationMsg](msgs)
}

// Navigation returns the first navigation requested by msgs.
func Navigation(msgs []tea.Msg) (app.NavigateMsg, bool) {
	return Find[app.NavigateMsg](msgs)
}
