package autocomplete

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// mouse handles events that land on the menu. Motion over an item
// highlights it and a left press on an item commits it. Presses on the menu
// box itself, its border or padding, are ignored.
func (w *Widget) mouse(msg tea.MouseMsg) tea.Cmd {
	if !w.menu.open {
		return nil
	}

	x, y := msg.X-w.originX, msg.Y-w.originY
	index, ok := w.layoutMenu(w.menuTop()).itemAt(x, y, len(w.menu.items))
	if !ok {
		return nil
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionMotion:
		w.menuHover(index)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return w.commit(w.menu.items[index])
		}
	}
	return nil
}

// menuHover highlights the first item whose text matches the item under the
// pointer, so duplicates always resolve to the earliest row.
func (w *Widget) menuHover(index int) {
	w.menu.bumpHover(w.menu.indexOf(w.menu.items[index]))
}

// outsideClick is the document listener held while the menu is open.
func (w *Widget) outsideClick(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	if w.contains(msg.X, msg.Y) {
		return
	}
	w.hideMenu()
}

// contains reports whether the screen cell (x, y) is covered by the widget.
func (w *Widget) contains(x, y int) bool {
	view := w.View()
	x, y = x-w.originX, y-w.originY
	return x >= 0 && y >= 0 && x < lipgloss.Width(view) && y < lipgloss.Height(view)
}
