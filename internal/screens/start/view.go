package start

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdeck/internal/exam"
	"github.com/abhisek/examdeck/internal/ui/theme"
)

func (s *StartScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Examdeck"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("terminal exam runner"))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Error: " + s.errMsg))
		b.WriteString("\n\n")
	}

	switch s.stage {
	case stageSource:
		b.WriteString(s.renderSource(width))
	case stagePath:
		b.WriteString(s.renderPath(width))
	case stageMode:
		b.WriteString(s.renderMode(width))
	case stageTime:
		b.WriteString(s.renderTime(width))
	}

	return b.String()
}

func (s *StartScreen) renderSource(width int) string {
	var b strings.Builder
	b.WriteString(theme.Body.Render("  Question source") + "\n\n")
	b.WriteString(s.sourceMenu.View())
	return b.String()
}

func (s *StartScreen) renderPath(width int) string {
	var b strings.Builder
	b.WriteString(theme.Body.Render("  CSV file path") + "\n\n")
	b.WriteString("  " + s.pathInput.View() + "\n")
	return b.String()
}

func (s *StartScreen) renderMode(width int) string {
	var b strings.Builder
	b.WriteString(s.renderLoaded())
	b.WriteString(theme.Body.Render("  Mode") + "\n\n")
	b.WriteString(s.modeMenu.View())
	b.WriteString("\n")

	shuffleState := "off"
	if s.shuffle {
		shuffleState = "on"
	}
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  Option shuffle: %s", shuffleState)) + "\n")
	return b.String()
}

func (s *StartScreen) renderTime(width int) string {
	var b strings.Builder
	b.WriteString(s.renderLoaded())

	modeName := "Practice"
	if s.mode == exam.ModeExam {
		modeName = "Exam"
	}
	b.WriteString(theme.Body.Render(fmt.Sprintf("  Mode: %s", modeName)) + "\n\n")
	b.WriteString(theme.Body.Render("  Time limit in minutes (0 = no limit)") + "\n\n")
	b.WriteString("  " + s.timeInput.View() + "\n")
	return b.String()
}

func (s *StartScreen) renderLoaded() string {
	var b strings.Builder
	b.WriteString(theme.Body.Render(fmt.Sprintf("  Loaded %d questions", len(s.questions))))
	if s.source != "" {
		b.WriteString(theme.Hint.Render("  from " + s.source))
	}
	b.WriteString("\n")
	for _, w := range s.warnings {
		b.WriteString(theme.Hint.Render("  ! "+w) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}
