// Package exam implements the active run screen: question display,
// navigation, flags, confirmation overlays, and the session clock.
package exam

import (
	"context"
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"

	sess "github.com/abhisek/examdeck/internal/exam"
	"github.com/abhisek/examdeck/internal/question"
	"github.com/abhisek/examdeck/internal/router"
	"github.com/abhisek/examdeck/internal/screen"
	"github.com/abhisek/examdeck/internal/screens/result"
	"github.com/abhisek/examdeck/internal/store"
	"github.com/abhisek/examdeck/internal/ui/layout"
)

// listColumns is the width of the jump-list grid.
const listColumns = 10

// ExamScreen implements screen.Screen for an active run.
type ExamScreen struct {
	ctrl *sess.Controller
	runs store.RunRepo

	cursor     int // 0-based option under the cursor
	confirmYes bool
	showList   bool
	listCursor int
	lastIndex  int
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.StatusProvider = (*ExamScreen)(nil)

// New creates the run screen over a started session.
func New(ctrl *sess.Controller, runs store.RunRepo) *ExamScreen {
	e := &ExamScreen{ctrl: ctrl, runs: runs}
	e.lastIndex = ctrl.S.Index
	e.syncCursor()
	return e
}

func (e *ExamScreen) Init() tea.Cmd {
	return tickCmd()
}

func (e *ExamScreen) Title() string {
	if e.ctrl.S.Mode == sess.ModeExam {
		return "Exam"
	}
	return "Practice"
}

// Status renders the header clock and progress counters.
func (e *ExamScreen) Status() string {
	s := e.ctrl.S
	clock := sess.FormatSeconds(s.Timer.Seconds())
	if s.Timer.Overtime() {
		clock = "over " + clock
	}
	return fmt.Sprintf("Q %d/%d  ⚑ %d  %s", s.Index+1, s.Len(), s.FlaggedCount(), clock)
}

func (e *ExamScreen) KeyHints() []layout.KeyHint {
	if e.ctrl.Pending() != sess.ConfirmNone {
		return []layout.KeyHint{
			{Key: "Y", Description: "Confirm"},
			{Key: "N", Description: "Cancel"},
		}
	}
	if e.showList {
		return []layout.KeyHint{
			{Key: "↑↓←→", Description: "Move"},
			{Key: "Enter", Description: "Jump"},
			{Key: "Esc", Description: "Close"},
		}
	}
	if e.ctrl.ShowingFeedback() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "F", Description: "Flag"},
			{Key: "Esc", Description: "Back to question"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Option"},
		{Key: "Enter", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "F", Description: "Flag"},
	}
	if e.ctrl.S.Mode == sess.ModeExam {
		hints = append(hints,
			layout.KeyHint{Key: "G", Description: "Question list"},
			layout.KeyHint{Key: "X", Description: "End exam"},
		)
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Restart"})
	return hints
}

func (e *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return e.handleTick()
	case tea.KeyMsg:
		return e.handleKey(msg)
	}
	return e, nil
}

func (e *ExamScreen) handleTick() (screen.Screen, tea.Cmd) {
	if e.ctrl.S.Phase != sess.PhaseQuestion {
		return e, nil
	}
	if e.ctrl.S.Timer.Tick() {
		e.ctrl.HandleExpiry()
		e.confirmYes = true
	}
	return e, tickCmd()
}

func (e *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if e.ctrl.Pending() != sess.ConfirmNone {
		return e.handleConfirmKey(key)
	}

	if e.showList {
		return e.handleListKey(key)
	}

	if e.ctrl.ShowingFeedback() {
		return e.handleFeedbackKey(key)
	}

	switch key {
	case "1", "2", "3", "4":
		n, _ := strconv.Atoi(key)
		e.ctrl.Select(n)
		e.cursor = n - 1
	case "up", "k":
		e.cursor--
		if e.cursor < 0 {
			e.cursor = question.OptionCount - 1
		}
	case "down", "j":
		e.cursor++
		if e.cursor >= question.OptionCount {
			e.cursor = 0
		}
	case "enter", "space":
		if e.ctrl.S.Mode == sess.ModePractice && e.ctrl.S.AnsweredCurrent() {
			e.ctrl.Advance()
		} else {
			e.ctrl.Select(e.cursor + 1)
		}
	case "right", "l", "n":
		e.ctrl.Advance()
	case "left", "h", "p":
		e.ctrl.Retreat()
	case "f":
		e.ctrl.ToggleFlag()
	case "g":
		if e.ctrl.S.Mode == sess.ModeExam {
			e.showList = true
			e.listCursor = e.ctrl.S.Index
		}
	case "x":
		e.ctrl.RequestFinish()
	case "esc":
		e.ctrl.RequestRestart()
	}

	// Gates raised by a key default to "No"; only the time-up gate
	// preselects "Yes".
	if e.ctrl.Pending() != sess.ConfirmNone {
		e.confirmYes = false
	}

	e.afterAction()
	return e.maybeDone()
}

func (e *ExamScreen) handleConfirmKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "y", "Y":
		e.ctrl.Resolve(true)
	case "n", "N", "esc":
		e.ctrl.Resolve(false)
	case "left", "right", "h", "l", "tab":
		e.confirmYes = !e.confirmYes
	case "enter":
		e.ctrl.Resolve(e.confirmYes)
	}
	e.afterAction()
	return e.maybeDone()
}

func (e *ExamScreen) handleListKey(key string) (screen.Screen, tea.Cmd) {
	n := e.ctrl.S.Len()
	switch key {
	case "esc", "g":
		e.showList = false
	case "left", "h":
		if e.listCursor > 0 {
			e.listCursor--
		}
	case "right", "l":
		if e.listCursor < n-1 {
			e.listCursor++
		}
	case "up", "k":
		if e.listCursor-listColumns >= 0 {
			e.listCursor -= listColumns
		}
	case "down", "j":
		if e.listCursor+listColumns < n {
			e.listCursor += listColumns
		}
	case "enter":
		e.ctrl.Jump(e.listCursor)
		e.showList = false
	}
	e.afterAction()
	return e, nil
}

func (e *ExamScreen) handleFeedbackKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "enter", "space", "right", "l", "n":
		e.ctrl.Advance()
	case "f":
		e.ctrl.ToggleFlag()
	case "esc":
		e.ctrl.DismissFeedback()
	}
	e.afterAction()
	return e.maybeDone()
}

// afterAction re-syncs per-question view state once the session cursor has
// moved.
func (e *ExamScreen) afterAction() {
	if e.ctrl.S.Index != e.lastIndex {
		e.lastIndex = e.ctrl.S.Index
		e.syncCursor()
	}
}

// syncCursor puts the option cursor on the recorded answer, or the first
// option when there is none.
func (e *ExamScreen) syncCursor() {
	e.cursor = 0
	if q, ok := e.ctrl.S.Current(); ok {
		if ans, answered := e.ctrl.S.Answers[q.ID]; answered && ans != sess.Skipped {
			e.cursor = ans - 1
		}
	}
}

// maybeDone leaves the run screen once the session has moved out of the
// question phase: to the result screen on finish, back to setup on restart.
func (e *ExamScreen) maybeDone() (screen.Screen, tea.Cmd) {
	switch e.ctrl.S.Phase {
	case sess.PhaseResult:
		e.recordRun()
		next := result.New(e.ctrl.S, e.runs)
		return e, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}
	case sess.PhaseStart:
		return e, func() tea.Msg {
			return router.PopScreenMsg{}
		}
	}
	return e, nil
}

// recordRun appends the finished run to history. History is best effort; a
// storage failure never blocks the result screen.
func (e *ExamScreen) recordRun() {
	s := e.ctrl.S
	score := s.Score()
	_ = e.runs.Record(context.Background(), &store.Run{
		Mode:          s.Mode.String(),
		Total:         score.Total,
		Answered:      len(s.Answers),
		Correct:       score.Correct,
		Percentage:    float64(score.Percentage),
		Flagged:       s.FlaggedCount(),
		DurationSecs:  s.ElapsedSeconds(),
		TimeLimitMins: s.Timer.LimitSeconds() / 60,
	})
}
