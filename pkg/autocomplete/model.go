package autocomplete

import (
	"slices"
)

// Attribute names reported in a Change.
const (
	AttrValue       = "value"
	AttrCompletions = "completions"
	AttrTitle       = "title"
)

// Change describes a single attribute update on a Model. Old and New hold a
// string for "value" and "title" and a []string for "completions".
type Change struct {
	Attr string
	Old  any
	New  any
}

// Model holds the data of an autocomplete input: the committed value, the
// candidate completions and the label shown above the input. It has no
// behaviour of its own; a Widget reads it and writes the value on commit.
//
// Listeners registered with OnChange are called synchronously from within the
// setter, after the new value is stored, in the order they were registered.
type Model struct {
	value       string
	completions []string
	title       string

	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(Change)
}

// NewModel creates a model with the given initial value and completion pool.
func NewModel(value string, completions []string) *Model {
	return &Model{
		value:       value,
		completions: slices.Clone(completions),
	}
}

// Value returns the committed value.
func (m *Model) Value() string {
	return m.value
}

// SetValue replaces the committed value and notifies listeners if it changed.
func (m *Model) SetValue(value string) {
	if value == m.value {
		return
	}
	old := m.value
	m.value = value
	m.notify(Change{Attr: AttrValue, Old: old, New: value})
}

// Completions returns a copy of the candidate pool.
func (m *Model) Completions() []string {
	return slices.Clone(m.completions)
}

// SetCompletions replaces the candidate pool. Order and duplicates are kept.
func (m *Model) SetCompletions(completions []string) {
	if slices.Equal(completions, m.completions) {
		return
	}
	old := m.completions
	m.completions = slices.Clone(completions)
	m.notify(Change{Attr: AttrCompletions, Old: old, New: slices.Clone(completions)})
}

func (m *Model) Title() string {
	return m.title
}

func (m *Model) SetTitle(title string) {
	if title == m.title {
		return
	}
	old := m.title
	m.title = title
	m.notify(Change{Attr: AttrTitle, Old: old, New: title})
}

// OnChange registers fn to be called after every attribute change. The
// returned function removes the registration; calling it more than once is
// harmless.
func (m *Model) OnChange(fn func(Change)) (unsubscribe func()) {
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, listener{id: id, fn: fn})

	return func() {
		m.listeners = slices.DeleteFunc(m.listeners, func(l listener) bool {
			return l.id == id
		})
	}
}

func (m *Model) notify(change Change) {
	// Snapshot so listeners may unsubscribe while being notified.
	for _, l := range slices.Clone(m.listeners) {
		l.fn(change)
	}
}
