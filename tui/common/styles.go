package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E1306C")).
			Padding(1, 2, 0, 1)

	// AccountStyle styles the selected account label in the header.
	AccountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// TaglineStyle styles dimmed header hints.
	TaglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")). // Dimmed grey
			Italic(true).
			MarginLeft(1)

	// AuthorStyle styles comment and reply usernames.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ContentStyle styles comment text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// ReplyStyle styles nested replies.
	ReplyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A5ADCB")).
			MarginLeft(2)

	// LikeStyle styles like counts.
	LikeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796"))

	// SelectedStyle highlights the currently selected comment.
	SelectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#E1306C")).
			Padding(0, 1)

	// UnselectedStyle gives unselected comments a subtle greyed-out border.
	UnselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// AlertStyle styles blocking alert dialogs.
	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#EED49F")).
			Padding(1, 2)

	// ActionActiveStyle styles the active choice in a toggle.
	ActionActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#E1306C")).
				Bold(true).
				Padding(0, 1)

	// ActionInactiveStyle styles inactive choices in a toggle.
	ActionInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6E738D")).
				Padding(0, 1)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)
)
