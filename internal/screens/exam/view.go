package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/examdeck/internal/exam"
	"github.com/abhisek/examdeck/internal/question"
	"github.com/abhisek/examdeck/internal/ui/components"
	"github.com/abhisek/examdeck/internal/ui/theme"
)

func (e *ExamScreen) View(width, height int) string {
	if e.ctrl.Pending() != sess.ConfirmNone {
		return e.renderConfirm(width, height)
	}
	if e.showList {
		return e.renderQuestionList(width, height)
	}
	if e.ctrl.ShowingFeedback() {
		return e.renderFeedback(width, height)
	}
	return e.renderQuestion(width, height)
}

func (e *ExamScreen) renderQuestion(width, height int) string {
	s := e.ctrl.S
	q, ok := s.Current()
	if !ok {
		return ""
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.Index+1, s.Len()))

	var marks []string
	if s.Flags[q.ID] {
		marks = append(marks, theme.Flagged.Render("⚑ flagged"))
	}
	if ans, answered := s.Answers[q.ID]; answered {
		if ans == sess.Skipped {
			marks = append(marks, theme.Hint.Render("skipped"))
		} else {
			marks = append(marks, theme.Hint.Render("answered"))
		}
	}
	infoRight := strings.Join(marks, "  ")

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	textStyle := lipgloss.NewStyle().
		Width(min(width-4, 76)).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, textStyle.Render(q.Text)))
	b.WriteString("\n\n")

	opts := components.OptionList{
		Cursor: e.cursor,
		Chosen: s.Answers[q.ID],
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, opts.View(q)))

	return b.String()
}

func (e *ExamScreen) renderFeedback(width, height int) string {
	s := e.ctrl.S
	q, ok := s.Current()
	if !ok {
		return ""
	}

	ans := s.Answers[q.ID]

	var b strings.Builder
	b.WriteString("\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch {
	case q.HasCorrect() && ans == q.Correct:
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("Correct!"))
	case ans == sess.Skipped:
		b.WriteString(center.Foreground(theme.TextDim).Bold(true).Render("Skipped"))
	default:
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Not quite"))
	}
	b.WriteString("\n")

	if q.HasCorrect() {
		b.WriteString(center.Foreground(theme.TextDim).Render(
			fmt.Sprintf("Correct answer: %s) %s", question.NumberToLetter(q.Correct), q.Option(q.Correct))))
	} else {
		b.WriteString(center.Foreground(theme.TextDim).Render("This question has no answer key"))
	}
	b.WriteString("\n\n")

	opts := components.OptionList{
		Chosen:   ans,
		Revealed: true,
		Correct:  q.Correct,
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, opts.View(q)))
	b.WriteString("\n")

	if q.Explanation != "" {
		expStyle := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, expStyle.Render(q.Explanation)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Enter to continue"))
	return b.String()
}

// renderQuestionList draws the jump grid: one cell per question with its
// answer and flag state.
func (e *ExamScreen) renderQuestionList(width, height int) string {
	s := e.ctrl.S

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render("Questions") + "\n\n")

	var row strings.Builder
	for i, q := range s.Questions {
		cell := fmt.Sprintf("%3d", i+1)
		_, answered := s.Answers[q.ID]
		switch {
		case s.Flags[q.ID]:
			cell += theme.Flagged.Render("⚑")
		case answered:
			cell += theme.Correct.Render("●")
		default:
			cell += " "
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == e.listCursor {
			style = style.Foreground(theme.BgDark).Background(theme.Primary).Bold(true)
		} else if i == s.Index {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		row.WriteString(style.Render(cell) + " ")

		if (i+1)%listColumns == 0 || i == s.Len()-1 {
			b.WriteString(row.String() + "\n")
			row.Reset()
		}
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("● answered   ⚑ flagged"))

	return components.ModalBox(b.String(), width, height)
}

func (e *ExamScreen) renderConfirm(width, height int) string {
	var title, body string
	switch e.ctrl.Pending() {
	case sess.ConfirmSkip:
		title = "No answer selected"
		body = "Show the explanation and mark this question as skipped?"
	case sess.ConfirmFinish:
		unanswered := e.ctrl.S.UnansweredCount()
		title = "End the exam?"
		if unanswered > 0 {
			body = fmt.Sprintf("%d questions are still unanswered.", unanswered)
		} else {
			body = "All questions are answered."
		}
	case sess.ConfirmTimeUp:
		title = "Time is up"
		body = "End the exam now? Choosing No continues in overtime."
	case sess.ConfirmRestart:
		title = "Abandon this run?"
		body = "Answers and flags will be lost."
	}

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(title) + "\n\n")
	b.WriteString(theme.Body.Render(body) + "\n\n")
	b.WriteString(components.ModalButton("Yes", e.confirmYes))
	b.WriteString("   ")
	b.WriteString(components.ModalButton("No", !e.confirmYes))

	return components.ModalBox(b.String(), width, height)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
