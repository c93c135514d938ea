package autocomplete

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// Document fans mouse events out to page-wide listeners, the way a browser
// document does for clicks that land anywhere on the page. The host program
// calls Dispatch for every mouse message after routing it to its components.
//
// A Document is not safe for concurrent use; like the rest of the UI it is
// only touched from the Bubble Tea event loop.
type Document struct {
	subs   []subscription
	nextID int
}

type subscription struct {
	id int
	fn func(tea.MouseMsg)
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Subscribe registers fn for every dispatched mouse message. The returned
// release function removes it and may be called any number of times.
func (d *Document) Subscribe(fn func(tea.MouseMsg)) (release func()) {
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscription{id: id, fn: fn})

	released := false
	return func() {
		if released {
			return
		}
		released = true
		d.subs = slices.DeleteFunc(d.subs, func(s subscription) bool {
			return s.id == id
		})
	}
}

// Dispatch delivers msg to the listeners registered when Dispatch was called.
func (d *Document) Dispatch(msg tea.MouseMsg) {
	for _, s := range slices.Clone(d.subs) {
		s.fn(msg)
	}
}

// Len reports the number of live subscriptions.
func (d *Document) Len() int {
	return len(d.subs)
}
