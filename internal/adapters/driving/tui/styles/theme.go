// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is used for field labels.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for OCR text and absent fields.
	Muted lipgloss.Color

	// Success indicates a saved record.
	Success lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the panel border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#0EA5E9"), // Sky
		Secondary:  lipgloss.Color("#14B8A6"), // Teal
		Foreground: lipgloss.Color("#E2E8F0"), // Slate
		Muted:      lipgloss.Color("#64748B"), // Grey
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title is the header line with the file name.
	Title lipgloss.Style

	// Subtitle heads the text and record panels.
	Subtitle lipgloss.Style

	// Label renders a record field name.
	Label lipgloss.Style

	// Value renders a found field value.
	Value lipgloss.Style

	// Absent renders the placeholder for a field that was not found.
	Absent lipgloss.Style

	// Muted renders recognised OCR text.
	Muted lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for save confirmations.
	Success lipgloss.Style

	// Panel wraps the text and record panels.
	Panel lipgloss.Style

	// Help style for the key hints.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Label: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Width(13),

		Value: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Absent: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
