package autocomplete

import "github.com/charmbracelet/lipgloss"

// Styles controls how the widget is drawn. Menu wraps the whole item list;
// Item and ActiveItem style a single row.
type Styles struct {
	Title      lipgloss.Style
	Input      lipgloss.Style
	Menu       lipgloss.Style
	Item       lipgloss.Style
	ActiveItem lipgloss.Style
}

// DefaultStyles returns the styles used when none are supplied.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true),
		Input: lipgloss.NewStyle(),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("10")),
		Item: lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1),
		ActiveItem: lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("12")),
	}
}
