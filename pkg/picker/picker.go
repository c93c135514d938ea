package picker

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/robottwo/acinput/pkg/autocomplete"
	"go.uber.org/zap"
)

// Picker runs an autocomplete widget as a full screen program. The UI is
// drawn on stderr so the chosen value can be printed to stdout.
type Picker struct {
	program *tea.Program
	app     *appModel
	logger  *zap.Logger
}

func New(model *autocomplete.Model, logger *zap.Logger, options Options) *Picker {
	output := termenv.NewOutput(os.Stderr)
	lipgloss.SetColorProfile(output.ColorProfile())

	app := initialModel(model, logger, options)
	program := tea.NewProgram(
		app,
		tea.WithOutput(os.Stderr),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	return &Picker{
		program: program,
		app:     app,
		logger:  logger,
	}
}

// SetCompletions replaces the candidate pool from any goroutine.
func (p *Picker) SetCompletions(pool []string) {
	p.program.Send(completionsMsg{pool: pool})
}

// Run blocks until the user commits a value or presses Ctrl+C, in which case
// ErrInterrupted is returned.
func (p *Picker) Run() (string, error) {
	m, err := p.program.Run()
	if err != nil {
		return "", err
	}

	app, ok := m.(*appModel)
	if !ok {
		p.logger.Error("picker resulted in an unexpected app model")
		panic("picker resulted in an unexpected app model")
	}

	if app.interrupted {
		return "", ErrInterrupted
	}

	return app.result, nil
}
