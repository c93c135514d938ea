package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelDefaults(t *testing.T) {
	model := NewModel("", nil)
	assert.Equal(t, "", model.Value())
	assert.Empty(t, model.Completions())
	assert.Equal(t, "", model.Title())
}

func TestModelOnChange(t *testing.T) {
	model := NewModel("BRCA1", []string{"BRCA1", "BRCA2"})

	var order []string
	var changes []Change
	model.OnChange(func(c Change) {
		order = append(order, "first")
		changes = append(changes, c)
	})
	model.OnChange(func(c Change) {
		order = append(order, "second")
		// Listeners run after the value is stored.
		assert.Equal(t, c.New, model.Value())
	})

	model.SetValue("BRCA2")

	assert.Equal(t, []string{"first", "second"}, order)
	require.Len(t, changes, 1)
	assert.Equal(t, Change{Attr: AttrValue, Old: "BRCA1", New: "BRCA2"}, changes[0])
}

func TestModelSetEqualValueDoesNotNotify(t *testing.T) {
	model := NewModel("TP53", []string{"TP53"})

	calls := 0
	model.OnChange(func(Change) { calls++ })

	model.SetValue("TP53")
	model.SetCompletions([]string{"TP53"})
	model.SetTitle("")
	assert.Equal(t, 0, calls)

	model.SetTitle("Gene:")
	assert.Equal(t, 1, calls)
}

func TestModelUnsubscribe(t *testing.T) {
	model := NewModel("", nil)

	calls := 0
	unsubscribe := model.OnChange(func(Change) { calls++ })

	model.SetValue("a")
	unsubscribe()
	unsubscribe()
	model.SetValue("b")

	assert.Equal(t, 1, calls)
}

func TestModelUnsubscribeDuringNotify(t *testing.T) {
	model := NewModel("", nil)

	var unsubscribe func()
	calls := 0
	unsubscribe = model.OnChange(func(Change) {
		calls++
		unsubscribe()
	})
	other := 0
	model.OnChange(func(Change) { other++ })

	model.SetValue("a")
	model.SetValue("b")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestModelCompletionsAreCopied(t *testing.T) {
	pool := []string{"apple", "apricot"}
	model := NewModel("", pool)

	pool[0] = "changed"
	assert.Equal(t, []string{"apple", "apricot"}, model.Completions())

	got := model.Completions()
	got[1] = "changed"
	assert.Equal(t, []string{"apple", "apricot"}, model.Completions())
}

func TestModelSetCompletionsNotifies(t *testing.T) {
	model := NewModel("", []string{"a"})

	var change Change
	model.OnChange(func(c Change) { change = c })
	model.SetCompletions([]string{"a", "a", "b"})

	assert.Equal(t, AttrCompletions, change.Attr)
	assert.Equal(t, []string{"a"}, change.Old)
	assert.Equal(t, []string{"a", "a", "b"}, change.New)
	assert.Equal(t, []string{"a", "a", "b"}, model.Completions())
}
