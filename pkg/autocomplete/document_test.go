package autocomplete

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestDocumentDispatch(t *testing.T) {
	doc := NewDocument()

	var got []tea.MouseMsg
	release := doc.Subscribe(func(msg tea.MouseMsg) { got = append(got, msg) })
	assert.Equal(t, 1, doc.Len())

	click := tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	doc.Dispatch(click)
	assert.Equal(t, []tea.MouseMsg{click}, got)

	release()
	release()
	assert.Equal(t, 0, doc.Len())

	doc.Dispatch(click)
	assert.Len(t, got, 1, "released listeners should not be called")
}

func TestDocumentSelfRelease(t *testing.T) {
	doc := NewDocument()

	calls := 0
	var release func()
	release = doc.Subscribe(func(tea.MouseMsg) {
		calls++
		release()
	})
	otherCalls := 0
	doc.Subscribe(func(tea.MouseMsg) { otherCalls++ })

	doc.Dispatch(tea.MouseMsg{})
	doc.Dispatch(tea.MouseMsg{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, otherCalls)
	assert.Equal(t, 1, doc.Len())
}
