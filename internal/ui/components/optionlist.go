package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdeck/internal/question"
	"github.com/abhisek/examdeck/internal/ui/theme"
)

// OptionList renders the four answer options of a question with a movable
// cursor. Selection itself is owned by the session; the list only tracks
// which option the cursor is on and how to color each line.
type OptionList struct {
	Cursor   int  // 0-based highlighted option
	Chosen   int  // 1-based recorded answer, 0 = none
	Revealed bool // color by correctness instead of selection
	Correct  int  // 1-based answer key, meaningful when Revealed
}

// NewOptionList creates an option list with the cursor on the first option.
func NewOptionList() OptionList {
	return OptionList{}
}

// Init returns nil (no initial command).
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement. The cursor wraps at both ends.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		o.Cursor--
		if o.Cursor < 0 {
			o.Cursor = question.OptionCount - 1
		}
	case "down", "j":
		o.Cursor++
		if o.Cursor >= question.OptionCount {
			o.Cursor = 0
		}
	}

	return o, nil
}

// CursorOption returns the 1-based option number under the cursor.
func (o OptionList) CursorOption() int {
	return o.Cursor + 1
}

// View renders the option lines for q.
func (o OptionList) View(q question.Question) string {
	var s string
	for i := 0; i < question.OptionCount; i++ {
		n := i + 1
		prefix := "  "
		if i == o.Cursor && !o.Revealed {
			prefix = "▸ "
		}

		marker := " "
		if o.Chosen == n {
			marker = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, question.NumberToLetter(n), q.Option(n))

		switch {
		case o.Revealed && n == o.Correct:
			s += theme.Correct.Render(line) + "\n"
		case o.Revealed && o.Chosen == n:
			s += theme.Incorrect.Render(line) + "\n"
		case o.Revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == o.Cursor:
			s += theme.Selected.Render(line) + "\n"
		case o.Chosen == n:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
