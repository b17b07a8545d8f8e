package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// yugaDisplayName derives a human-readable age name from a yuga ID.
// "satya" -> "Satya Yuga", "dvapara" -> "Dvapara Yuga".
func yugaDisplayName(id string) string {
	if id == "" {
		return ""
	}
	return strings.ToUpper(id[:1]) + id[1:] + " Yuga"
}

// renderStatusBar produces a full-width inverted status line showing
// the avatar, karma, guna balance, the current age, and spiritual level.
func (m Model) renderStatusBar() string {
	s := m.engine.Store

	left := " KarmaVerse"
	if s.Avatar != nil {
		stats := s.Avatar.Stats
		left = fmt.Sprintf(" %s | Karma: %d (%s) | %s",
			s.Avatar.Name, stats.Karma.Total, s.KarmaLevel(), s.DominantGuna())
	}

	right := fmt.Sprintf("%s ", yugaDisplayName(string(s.World.CurrentYuga)))
	if s.Avatar != nil {
		gunas := s.Avatar.Stats.Gunas
		candidate := fmt.Sprintf("S:%d R:%d T:%d | Lvl %d | %s ",
			gunas.Sattva, gunas.Rajas, gunas.Tamas,
			s.SpiritualLevel(), yugaDisplayName(string(s.World.CurrentYuga)))
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Lvl %d | %s ",
				s.SpiritualLevel(), yugaDisplayName(string(s.World.CurrentYuga)))
		}
	}

	// An active meditation countdown takes over the right side.
	if m.med != nil {
		right = fmt.Sprintf("Meditating: %s %d min left ",
			m.med.practiceID, m.med.remaining)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
