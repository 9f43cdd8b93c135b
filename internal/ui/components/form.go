package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/styles"
)

// Field is one labelled text input of a Form.
type Field struct {
	Label string
	input textinput.Model
}

// NewField creates a field. Secret fields echo bullets.
func NewField(label, placeholder string, secret bool) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return Field{Label: label, input: ti}
}

// WithLimit caps the number of characters the field accepts.
func (f Field) WithLimit(n int) Field {
	f.input.CharLimit = n
	return f
}

// Form is a vertical stack of fields with one focused at a time.
type Form struct {
	fields []Field
	focus  int
}

// NewForm creates a form over fields.
func NewForm(fields ...Field) Form {
	return Form{fields: fields}
}

// Len returns the number of fields.
func (f Form) Len() int {
	return len(f.fields)
}

// Focused returns the index of the focused field.
func (f Form) Focused() int {
	return f.focus
}

// OnLast reports whether the last field is focused.
func (f Form) OnLast() bool {
	return f.focus == len(f.fields)-1
}

// Value returns the raw text of field i.
func (f Form) Value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return f.fields[i].input.Value()
}

// Focus moves focus to field i, clamped to the form.
func (f *Form) Focus(i int) {
	if len(f.fields) == 0 {
		return
	}
	f.focus = min(max(i, 0), len(f.fields)-1)
	for j := range f.fields {
		if j == f.focus {
			f.fields[j].input.Focus()
			continue
		}
		f.fields[j].input.Blur()
	}
}

// Next focuses the following field, wrapping to the first.
func (f *Form) Next() {
	if len(f.fields) > 0 {
		f.Focus((f.focus + 1) % len(f.fields))
	}
}

// Prev focuses the preceding field, wrapping to the last.
func (f *Form) Prev() {
	if len(f.fields) > 0 {
		f.Focus((f.focus - 1 + len(f.fields)) % len(f.fields))
	}
}

// Reset clears every field and focuses the first.
func (f *Form) Reset() {
	for i := range f.fields {
		f.fields[i].input.Reset()
	}
	f.Focus(0)
}

// Blur removes focus from every field.
func (f *Form) Blur() {
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
}

// SetWidth sets the input width of every field.
func (f *Form) SetWidth(width int) {
	for i := range f.fields {
		f.fields[i].input.Width = max(width, 10)
	}
}

// Update forwards msg to the focused field.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, cmd
}

// View renders every field with its label, highlighting the focused one.
func (f Form) View() string {
	rows := make([]string, 0, len(f.fields)*2)
	for i, field := range f.fields {
		label := styles.BlurredStyle.Render(field.Label)
		box := styles.BlurredBorderStyle
		if i == f.focus && field.input.Focused() {
			label = styles.FocusedStyle.Render(field.Label)
			box = styles.FocusedBorderStyle
		}
		rows = append(rows, label, box.Render(field.input.View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
