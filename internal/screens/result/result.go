// Package result implements the post-run screen: score, per-question
// breakdown, and review export.
package result

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examdeck/internal/bank"
	sess "github.com/abhisek/examdeck/internal/exam"
	"github.com/abhisek/examdeck/internal/router"
	"github.com/abhisek/examdeck/internal/screen"
	"github.com/abhisek/examdeck/internal/store"
	"github.com/abhisek/examdeck/internal/ui/layout"
)

// exportDoneMsg reports the outcome of a review export.
type exportDoneMsg struct {
	Detail string
	Err    error
}

// ResultScreen implements screen.Screen for a finished run.
type ResultScreen struct {
	session *sess.Session
	runs    store.RunRepo

	rows        []sess.QuestionResult
	cursor      int
	showExplain bool
	statusMsg   string
	statusErr   bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates the result screen for a finished session.
func New(session *sess.Session, runs store.RunRepo) *ResultScreen {
	return &ResultScreen{
		session: session,
		runs:    runs,
		rows:    session.Results(),
	}
}

func (r *ResultScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultScreen) Title() string {
	return "Results"
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	if r.showExplain {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Close"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Row"},
		{Key: "Enter", Description: "Explanation"},
		{Key: "S", Description: "Save review CSV"},
		{Key: "C", Description: "Copy review"},
		{Key: "R", Description: "New run"},
		{Key: "Q", Description: "Quit"},
	}
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		if msg.Err != nil {
			r.statusMsg = msg.Err.Error()
			r.statusErr = true
		} else {
			r.statusMsg = msg.Detail
			r.statusErr = false
		}
		return r, nil
	case tea.KeyMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *ResultScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if r.showExplain {
		if key == "esc" || key == "enter" || key == "q" {
			r.showExplain = false
		}
		return r, nil
	}

	switch key {
	case "up", "k":
		if r.cursor > 0 {
			r.cursor--
		}
	case "down", "j":
		if r.cursor < len(r.rows)-1 {
			r.cursor++
		}
	case "enter", "e":
		if len(r.rows) > 0 {
			r.showExplain = true
		}
	case "s", "S":
		return r, r.saveReviewCmd()
	case "c", "C":
		return r, r.copyReviewCmd()
	case "r", "R":
		r.session.Restart()
		return r, func() tea.Msg { return router.PopScreenMsg{} }
	case "q", "Q":
		return r, tea.Quit
	}

	return r, nil
}

// saveReviewCmd writes the review subset (incorrect plus flagged) to a
// timestamped CSV in the working directory.
func (r *ResultScreen) saveReviewCmd() tea.Cmd {
	review := r.session.ReviewSet()
	return func() tea.Msg {
		if len(review) == 0 {
			return exportDoneMsg{Detail: "nothing to review"}
		}
		dir, err := os.Getwd()
		if err != nil {
			return exportDoneMsg{Err: err}
		}
		path, err := bank.WriteReviewFile(dir, review, time.Now())
		if err != nil {
			return exportDoneMsg{Err: err}
		}
		return exportDoneMsg{Detail: fmt.Sprintf("saved %d questions to %s", len(review), path)}
	}
}

// copyReviewCmd puts the review subset on the clipboard as CSV.
func (r *ResultScreen) copyReviewCmd() tea.Cmd {
	review := r.session.ReviewSet()
	return func() tea.Msg {
		if len(review) == 0 {
			return exportDoneMsg{Detail: "nothing to review"}
		}
		if err := bank.ReviewToClipboard(review); err != nil {
			return exportDoneMsg{Err: err}
		}
		return exportDoneMsg{Detail: fmt.Sprintf("copied %d questions to clipboard", len(review))}
	}
}
