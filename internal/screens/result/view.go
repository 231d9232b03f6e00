package result

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/examdeck/internal/exam"
	"github.com/abhisek/examdeck/internal/question"
	"github.com/abhisek/examdeck/internal/ui/components"
	"github.com/abhisek/examdeck/internal/ui/theme"
)

func (r *ResultScreen) View(width, height int) string {
	if r.showExplain {
		return r.renderExplanation(width, height)
	}
	return r.renderSummary(width, height)
}

func (r *ResultScreen) renderSummary(width, height int) string {
	score := r.session.Score()

	var b strings.Builder
	b.WriteString("\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(
		fmt.Sprintf("%d / %d correct — %d%%", score.Correct, score.Total, score.Percentage)))
	b.WriteString("\n")

	clock := sess.FormatSeconds(r.session.ElapsedSeconds())
	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s mode · %s", r.session.Mode, clock)))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("", float64(score.Percentage)/100, false, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, r.renderTable(width, height)))
	b.WriteString("\n")

	if r.statusMsg != "" {
		style := center.Foreground(theme.Success)
		if r.statusErr {
			style = center.Foreground(theme.Error)
		}
		b.WriteString(style.Render(r.statusMsg))
		b.WriteString("\n")
	}

	review := len(r.session.ReviewSet())
	if review > 0 {
		b.WriteString(center.Foreground(theme.TextDim).Render(
			fmt.Sprintf("%d questions marked for review", review)))
	}

	return b.String()
}

// renderTable renders the per-question rows, windowed around the cursor so
// long banks fit the frame.
func (r *ResultScreen) renderTable(width, height int) string {
	visible := height - 12
	if visible < 3 {
		visible = 3
	}
	textWidth := width - 34
	if textWidth < 12 {
		textWidth = 12
	}
	start := 0
	if r.cursor >= visible {
		start = r.cursor - visible + 1
	}
	end := start + visible
	if end > len(r.rows) {
		end = len(r.rows)
	}

	var b strings.Builder
	header := fmt.Sprintf("  %4s  %-6s  %-6s  %s     %s", "#", "Yours", "Key", "Result", "Question")
	b.WriteString(theme.Hint.Render(header) + "\n")

	for i := start; i < end; i++ {
		row := r.rows[i]

		yours := "—"
		if row.HasAnswer && row.Answer != sess.Skipped {
			yours = question.NumberToLetter(row.Answer)
		} else if row.HasAnswer {
			yours = "skip"
		}

		key := "—"
		if row.Question.HasCorrect() {
			key = question.NumberToLetter(row.Question.Correct)
		}

		var mark string
		switch {
		case row.Correct:
			mark = theme.Correct.Render("✓")
		case row.HasAnswer:
			mark = theme.Incorrect.Render("✗")
		default:
			mark = theme.Hint.Render("—")
		}

		flag := " "
		if row.Flagged {
			flag = theme.Flagged.Render("⚑")
		}

		line := fmt.Sprintf("  %4d  %-6s  %-6s  %s  %s  %s",
			i+1, yours, key, mark, flag, theme.Hint.Render(truncate(row.Question.Text, textWidth)))
		if i == r.cursor {
			b.WriteString(theme.Selected.Render("▸" + line[1:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (r *ResultScreen) renderExplanation(width, height int) string {
	row := r.rows[r.cursor]
	q := row.Question

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(fmt.Sprintf("Question %d", r.cursor+1)) + "\n\n")
	b.WriteString(theme.Body.Render(q.Text) + "\n\n")

	for n := 1; n <= question.OptionCount; n++ {
		line := fmt.Sprintf("%s)  %s", question.NumberToLetter(n), q.Option(n))
		switch {
		case n == q.Correct && q.HasCorrect():
			b.WriteString(theme.Correct.Render(line))
		case row.HasAnswer && n == row.Answer:
			b.WriteString(theme.Incorrect.Render(line))
		default:
			b.WriteString(theme.Body.Render(line))
		}
		b.WriteString("\n")
	}

	if q.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(q.Explanation))
	}

	return components.ModalBox(b.String(), width, height)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
