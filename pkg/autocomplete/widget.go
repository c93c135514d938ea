package autocomplete

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Options configures a Widget. Start from NewOptions; a nil Input, Document
// or Logger and an empty KeyMap are filled in by New.
type Options struct {
	// Input is the base text input. Defaults to NewTextInput().
	Input TextInput
	// Document receives page-wide mouse events from the host. A widget without
	// a shared document never sees clicks outside itself.
	Document *Document
	Logger   *zap.Logger
	KeyMap   KeyMap
	Styles   Styles
	// Width bounds the input and the menu in cells. Zero means unbounded.
	Width int
	// KeyDownHook, if set, sees every key before the widget dispatches it.
	KeyDownHook func(tea.KeyMsg)
}

func NewOptions() Options {
	return Options{
		KeyMap: DefaultKeyMap,
		Styles: DefaultStyles(),
	}
}

// Widget is an autocomplete text input: a base text input with a dropdown
// menu of completions filtered from the model as the user types.
//
// Widget methods must be called from the Bubble Tea event loop.
type Widget struct {
	model   *Model
	input   TextInput
	doc     *Document
	logger  *zap.Logger
	keyMap  KeyMap
	styles  Styles
	width   int
	keyDown func(tea.KeyMsg)

	menu menu

	originX, originY int

	unsubscribeModel func()
}

// New renders the base input for model and attaches a hidden menu below it.
func New(model *Model, options Options) *Widget {
	w := &Widget{
		model:   model,
		input:   options.Input,
		doc:     options.Document,
		logger:  options.Logger,
		keyMap:  options.KeyMap,
		styles:  options.Styles,
		width:   options.Width,
		keyDown: options.KeyDownHook,
	}

	if w.input == nil {
		w.input = NewTextInput()
	}
	if w.doc == nil {
		w.doc = NewDocument()
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	if len(w.keyMap.Accept.Keys()) == 0 {
		w.keyMap = DefaultKeyMap
	}
	if bi, ok := w.input.(*bubblesInput); ok && w.width > 0 {
		bi.setWidth(w.width)
	}

	w.input.SetValue(model.Value())
	w.unsubscribeModel = model.OnChange(w.modelChanged)

	return w
}

// Model returns the data model the widget commits into.
func (w *Widget) Model() *Model {
	return w.model
}

// Focus gives keyboard focus to the input.
func (w *Widget) Focus() tea.Cmd {
	return w.input.Focus()
}

func (w *Widget) Blur() {
	w.input.Blur()
}

func (w *Widget) Focused() bool {
	return w.input.Focused()
}

// InputValue returns the raw text in the input box, which may differ from
// the committed model value while the user is typing.
func (w *Widget) InputValue() string {
	return w.input.Value()
}

// IsOpen reports whether the menu is visible.
func (w *Widget) IsOpen() bool {
	return w.menu.open
}

// Items returns the items currently rendered in the menu. They stay in place
// after the menu closes until the next filter.
func (w *Widget) Items() []string {
	return append([]string(nil), w.menu.items...)
}

// HoverIndex returns the highlighted menu row. It is meaningless while the
// menu is closed.
func (w *Widget) HoverIndex() int {
	return w.menu.hoverIndex
}

// LastValue returns the model value captured when the menu last opened.
func (w *Widget) LastValue() string {
	return w.menu.lastValue
}

// SetOrigin tells the widget which screen cell its top left corner is drawn
// at, so mouse events can be mapped onto it.
func (w *Widget) SetOrigin(x, y int) {
	w.originX, w.originY = x, y
}

// Close detaches the widget from its model and document.
func (w *Widget) Close() {
	w.hideMenu()
	if w.unsubscribeModel != nil {
		w.unsubscribeModel()
		w.unsubscribeModel = nil
	}
}

func (w *Widget) Init() tea.Cmd {
	return nil
}

// Update handles key and mouse messages. Everything else is passed to the
// base input so cursor blinking and pasting keep working.
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !w.input.Focused() {
			return nil
		}
		if w.keyDown != nil {
			w.keyDown(msg)
		}
		return w.keyUp(msg)

	case tea.MouseMsg:
		return w.mouse(msg)
	}

	return w.input.Update(msg)
}

func (w *Widget) keyUp(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, w.keyMap.Accept):
		return w.changeInput()
	case key.Matches(msg, w.keyMap.Cancel):
		w.hideMenu()
		return nil
	case key.Matches(msg, w.keyMap.Up):
		w.menu.bumpHover(w.menu.hoverIndex - 1)
		return nil
	case key.Matches(msg, w.keyMap.Down):
		w.menu.bumpHover(w.menu.hoverIndex + 1)
		return nil
	}

	cmd := w.input.Update(msg)
	w.filter()
	return cmd
}

// filter rebuilds the menu from the raw input text.
func (w *Widget) filter() {
	query := w.input.Value()
	if queryTooShort(query) {
		w.hideMenu()
		return
	}

	matches := Filter(query, w.model.completions)
	w.menu.update(matches)
	w.logger.Debug("autocomplete filtered completions",
		zap.String("query", query),
		zap.Int("matches", len(matches)),
	)

	if len(matches) == 0 {
		w.hideMenu()
	} else {
		w.showMenu()
	}
}

// changeInput commits the highlighted item, or the raw text when the menu
// has nothing to offer, then returns focus to the input.
func (w *Widget) changeInput() tea.Cmd {
	value, ok := w.menu.hovered()
	if !ok {
		value = w.input.Value()
	}
	return w.commit(value)
}

func (w *Widget) commit(value string) tea.Cmd {
	w.logger.Debug("autocomplete committed value", zap.String("value", value))
	// The model does not notify when value is unchanged, so sync the box here.
	w.input.SetValue(value)
	w.model.SetValue(value)
	cmd := w.input.Focus()
	w.hideMenu()
	return cmd
}

func (w *Widget) showMenu() {
	if w.menu.open {
		return
	}
	w.menu.open = true
	w.menu.hoverIndex = 0
	w.menu.lastValue = w.model.Value()
	w.menu.releaseOutsideClick = w.doc.Subscribe(w.outsideClick)
	w.logger.Debug("autocomplete menu opened", zap.Int("items", len(w.menu.items)))
}

func (w *Widget) hideMenu() {
	if !w.menu.open {
		return
	}
	w.menu.open = false
	if w.menu.releaseOutsideClick != nil {
		w.menu.releaseOutsideClick()
		w.menu.releaseOutsideClick = nil
	}
	w.logger.Debug("autocomplete menu closed")
}

func (w *Widget) modelChanged(change Change) {
	if change.Attr != AttrValue {
		return
	}
	if value := change.New.(string); value != w.input.Value() {
		w.input.SetValue(value)
	}
}

// View renders the title, the input and, while open, the menu below it.
func (w *Widget) View() string {
	rows := make([]string, 0, 3)
	if title := w.titleView(); title != "" {
		rows = append(rows, title)
	}
	rows = append(rows, w.inputView())
	if w.menu.open {
		rows = append(rows, w.menuView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (w *Widget) titleView() string {
	if w.model.Title() == "" {
		return ""
	}
	return w.styles.Title.Render(w.model.Title())
}

func (w *Widget) inputView() string {
	return w.styles.Input.Render(w.input.View())
}

// menuTop is the row the menu box starts on, relative to the widget.
func (w *Widget) menuTop() int {
	top := lipgloss.Height(w.inputView())
	if title := w.titleView(); title != "" {
		top += lipgloss.Height(title)
	}
	return top
}
