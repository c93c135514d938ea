package autocomplete

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextInput is the base text input the widget is built on. It owns the raw
// text being typed; the widget never edits that text itself except when the
// model's value is set from outside.
type TextInput interface {
	Value() string
	SetValue(s string)
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// bubblesInput adapts the bubbles textinput component to TextInput.
type bubblesInput struct {
	model textinput.Model
}

// NewTextInput returns a TextInput backed by github.com/charmbracelet/bubbles/textinput.
func NewTextInput() TextInput {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return &bubblesInput{model: ti}
}

func (b *bubblesInput) Value() string {
	return b.model.Value()
}

func (b *bubblesInput) SetValue(s string) {
	b.model.SetValue(s)
	b.model.CursorEnd()
}

func (b *bubblesInput) Focus() tea.Cmd {
	return b.model.Focus()
}

func (b *bubblesInput) Blur() {
	b.model.Blur()
}

func (b *bubblesInput) Focused() bool {
	return b.model.Focused()
}

func (b *bubblesInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	b.model, cmd = b.model.Update(msg)
	return cmd
}

func (b *bubblesInput) View() string {
	return b.model.View()
}

// setWidth sizes the visible part of the input. Widths below one leave the
// input unbounded.
func (b *bubblesInput) setWidth(width int) {
	promptWidth := lipgloss.Width(b.model.Prompt)
	if width-promptWidth-1 < 1 {
		b.model.Width = 0
		return
	}
	b.model.Width = width - promptWidth - 1
}
