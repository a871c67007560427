package tui

import "github.com/charmbracelet/lipgloss"

// Spinner frames, carried verbatim from the teacher's styles.go.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// VSCode color palette, the same palette the teacher's styles.go uses.
const (
	bgDefault  = "#1e1e1e"
	bgSelected = "#264f78"
	bgBorder   = "#3c3c3c"

	fgBright = "#ffffff"
	fgDim    = "#808080"

	colorInfo    = "#4fc1ff" // Sky blue
	colorWarn    = "#dcdcaa" // Pale yellow
	colorError   = "#f48771" // Red
	colorDebug   = "#808080" // Dim gray
	colorSuccess = "#89d185" // Green
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorInfo))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(fgBright))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(fgDim))

	selectedLineStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(bgSelected))

	levelInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorInfo))
	levelWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarn))
	levelErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError)).Bold(true)
	levelDebugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDebug))

	toastSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorSuccess)).
				Background(lipgloss.Color(bgDefault)).
				Bold(true).
				Padding(0, 1)

	toastErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError)).
			Background(lipgloss.Color(bgDefault)).
			Bold(true).
			Padding(0, 1)

	selectBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(bgBorder)).
			Padding(0, 1)
)
