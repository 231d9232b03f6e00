package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdeck/internal/ui/theme"
)

// ModalWidth returns the uniform inner width used for overlay boxes so
// stacked modals visually align.
func ModalWidth(frameWidth int) int {
	// Leave room for border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// ModalBox wraps content in a rounded-border card centered within the given
// dimensions.
func ModalBox(content string, width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(ModalWidth(width)).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// ModalButton renders a Yes/No style button for confirmation overlays.
func ModalButton(label string, selected bool) string {
	if selected {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Accent).
			Padding(0, 2).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Background(theme.BgCard).
		Padding(0, 2).
		Render(label)
}
