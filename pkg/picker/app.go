package picker

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/robottwo/acinput/pkg/autocomplete"
	"go.uber.org/zap"
)

// ErrInterrupted is returned when the user presses Ctrl+C
var ErrInterrupted = errors.New("interrupted by user")

// headerHeight is the number of rows above the widget.
const headerHeight = 1

type completionsMsg struct {
	pool []string
}

type appState int

const (
	Active appState = iota
	Terminated
)

type appModel struct {
	model   *autocomplete.Model
	widget  *autocomplete.Widget
	doc     *autocomplete.Document
	help    help.Model
	keyMap  autocomplete.KeyMap
	logger  *zap.Logger
	options Options

	width       int
	committed   bool
	result      string
	appState    appState
	interrupted bool

	headerStyle lipgloss.Style

	unsubscribe func()
}

func initialModel(model *autocomplete.Model, logger *zap.Logger, options Options) *appModel {
	doc := autocomplete.NewDocument()

	widgetOptions := options.Widget
	widgetOptions.Document = doc
	if widgetOptions.Logger == nil {
		widgetOptions.Logger = logger
	}
	if widgetOptions.KeyMap.Accept.Keys() == nil {
		widgetOptions.KeyMap = autocomplete.DefaultKeyMap
	}

	widget := autocomplete.New(model, widgetOptions)
	widget.SetOrigin(0, headerHeight)
	widget.Focus()

	m := &appModel{
		model:   model,
		widget:  widget,
		doc:     doc,
		help:    help.New(),
		keyMap:  widgetOptions.KeyMap,
		logger:  logger,
		options: options,

		appState: Active,

		headerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
	}

	m.unsubscribe = model.OnChange(func(change autocomplete.Change) {
		if change.Attr == autocomplete.AttrValue {
			m.committed = true
		}
	})

	return m
}

func (m *appModel) Init() tea.Cmd {
	return m.widget.Init()
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case completionsMsg:
		m.model.SetCompletions(msg.pool)
		m.logger.Debug("completions replaced", zap.Int("count", len(msg.pool)))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.terminate(true)
		}

		cmd := m.widget.Update(msg)
		// Accepting the value the model already holds does not notify.
		if m.committed || key.Matches(msg, m.keyMap.Accept) {
			return m.terminate(false)
		}
		return m, cmd

	case tea.MouseMsg:
		cmd := m.widget.Update(msg)
		m.doc.Dispatch(msg)
		if m.committed {
			return m.terminate(false)
		}
		return m, cmd
	}

	return m, m.widget.Update(msg)
}

func (m *appModel) terminate(interrupted bool) (tea.Model, tea.Cmd) {
	m.appState = Terminated
	m.interrupted = interrupted
	if !interrupted {
		m.result = m.model.Value()
	}

	m.widget.Close()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}

	return m, tea.Quit
}

func (m *appModel) View() string {
	// Once terminated, render nothing
	if m.appState == Terminated {
		return ""
	}

	parts := []string{m.headerView(), m.widget.View()}
	if m.options.ShowHelp {
		parts = append(parts, m.help.View(m.keyMap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *appModel) headerView() string {
	status := fmt.Sprintf("%d candidates", len(m.model.Completions()))
	if m.options.Header != "" {
		status = m.options.Header + " · " + status
	}
	if m.width > 0 {
		status = runewidth.Truncate(status, m.width, "…")
	}
	return m.headerStyle.Render(status)
}
