package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34")).
				Bold(true)

	styleKarmaGain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	styleKarmaLoss = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleScripture = lipgloss.NewStyle().
			Foreground(lipgloss.Color("179")).
			Italic(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind classifies a narrative line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindKarmaGain
	kindKarmaLoss
	kindScripture
	kindSystem
	kindError
	kindTrace
)

// classifyLine inspects an engine output line and picks a style class.
// The engine emits plain text, so classification follows the textual
// conventions of the command handlers.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(trimmed, "[trace]"):
		return kindTrace

	case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		// Notifications are delivered in brackets.
		return kindSystem

	case strings.Contains(trimmed, "Karma +"):
		return kindKarmaGain

	case strings.Contains(trimmed, "Karma -"):
		return kindKarmaLoss

	case strings.HasPrefix(trimmed, `"`):
		// Scripture quotes render as "translation" with a source.
		return kindScripture

	case strings.HasPrefix(trimmed, "Usage:"),
		strings.HasPrefix(trimmed, "unknown "),
		strings.HasPrefix(trimmed, "Unknown "):
		return kindError

	default:
		return kindNarrative
	}
}

// styledSystemMsg renders meta-command output.
func styledSystemMsg(line string) string {
	return styleSystem.Render(line)
}
