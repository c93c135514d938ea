package autocomplete

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
)

// menu is the dropdown under the input. Items are the filtered completions
// currently rendered; they are rebuilt on every filtered key and left stale
// when the menu closes.
type menu struct {
	items      []string
	open       bool
	hoverIndex int

	// lastValue is the model value captured when the menu opened.
	lastValue string

	// releaseOutsideClick drops the document subscription taken on open.
	releaseOutsideClick func()
}

// update replaces the rendered items. A non-empty list starts with the first
// item active. Visibility is left alone.
func (m *menu) update(items []string) {
	m.items = items
	m.hoverIndex = 0
}

// bumpHover moves the highlight to index, clamped to the rendered items. It
// does nothing while the menu is closed or empty.
func (m *menu) bumpHover(index int) {
	if !m.open || len(m.items) == 0 {
		return
	}
	m.hoverIndex = clamp(index, 0, len(m.items)-1)
}

// hovered returns the active item text.
func (m *menu) hovered() (string, bool) {
	if !m.open || len(m.items) == 0 {
		return "", false
	}
	return m.items[m.hoverIndex], true
}

// indexOf returns the first rendered item equal to text.
func (m *menu) indexOf(text string) int {
	for i, item := range m.items {
		if item == text {
			return i
		}
	}
	return -1
}

// menuLayout is where the rendered menu rows sit relative to the top left of
// the widget.
type menuLayout struct {
	top, bottom int // rows occupied by the whole menu box
	itemTop     int // row of the first item
	itemLeft    int // first column of item text, inside border and padding
	itemRight   int // one past the last item column
}

func (w *Widget) itemText(item string) string {
	text := strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(item)
	if w.width <= 0 {
		return text
	}

	avail := w.width - w.styles.Menu.GetHorizontalFrameSize() - w.styles.Item.GetHorizontalFrameSize()
	if avail < 1 {
		return text
	}
	if ansi.PrintableRuneWidth(text) > avail {
		return truncate.StringWithTail(text, uint(avail), "…")
	}
	return text
}

func (w *Widget) menuRows() []string {
	texts := make([]string, len(w.menu.items))
	textWidth := 0
	for i, item := range w.menu.items {
		texts[i] = w.itemText(item)
		textWidth = max(textWidth, ansi.PrintableRuneWidth(texts[i]))
	}

	rows := make([]string, len(texts))
	for i, text := range texts {
		style := w.styles.Item
		if i == w.menu.hoverIndex {
			style = w.styles.ActiveItem
		}
		padding := strings.Repeat(" ", textWidth-ansi.PrintableRuneWidth(text))
		rows[i] = style.Render(text + padding)
	}
	return rows
}

func (w *Widget) menuView() string {
	return w.styles.Menu.Render(strings.Join(w.menuRows(), "\n"))
}

// layoutMenu computes the menu geometry given the row it starts on.
func (w *Widget) layoutMenu(top int) menuLayout {
	rows := w.menuRows()
	rowWidth := 0
	for _, row := range rows {
		rowWidth = max(rowWidth, lipgloss.Width(row))
	}

	menu := w.styles.Menu
	itemTop := top + menu.GetMarginTop() + menu.GetBorderTopSize() + menu.GetPaddingTop()
	itemLeft := menu.GetMarginLeft() + menu.GetBorderLeftSize() + menu.GetPaddingLeft()

	return menuLayout{
		top:       top,
		bottom:    top + lipgloss.Height(w.menuView()),
		itemTop:   itemTop,
		itemLeft:  itemLeft,
		itemRight: itemLeft + rowWidth,
	}
}

// itemAt maps a position relative to the widget to a rendered item index.
func (l menuLayout) itemAt(x, y, count int) (int, bool) {
	if x < l.itemLeft || x >= l.itemRight {
		return 0, false
	}
	i := y - l.itemTop
	if i < 0 || i >= count {
		return 0, false
	}
	return i, true
}

func clamp(v, low, high int) int {
	if high < low {
		low, high = high, low
	}
	return min(high, max(low, v))
}
