package exam

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	sess "github.com/abhisek/examdeck/internal/exam"
	"github.com/abhisek/examdeck/internal/question"
	"github.com/abhisek/examdeck/internal/router"
	"github.com/abhisek/examdeck/internal/store"
)

// fakeRuns records runs in memory.
type fakeRuns struct {
	recorded []store.Run
}

func (f *fakeRuns) Record(_ context.Context, run *store.Run) error {
	f.recorded = append(f.recorded, *run)
	return nil
}

func (f *fakeRuns) Recent(context.Context, int) ([]store.Run, error) {
	return f.recorded, nil
}

func (f *fakeRuns) Summarize(context.Context) (store.Summary, error) {
	return store.Summary{Runs: len(f.recorded)}, nil
}

func testQuestions(n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = question.Question{
			ID:          i + 1,
			Text:        fmt.Sprintf("question %d", i+1),
			Options:     [4]string{"w", "x", "y", "z"},
			Correct:     (i % 4) + 1,
			Explanation: "because",
		}
	}
	return qs
}

func newTestScreen(t *testing.T, mode sess.Mode, n, limitMinutes int) (*ExamScreen, *fakeRuns) {
	t.Helper()
	s := sess.NewSession()
	if err := s.LoadQuestions(testQuestions(n)); err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if err := s.Start(mode, limitMinutes); err != nil {
		t.Fatalf("start session: %v", err)
	}
	runs := &fakeRuns{}
	return New(sess.NewController(s), runs), runs
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestTitleByMode(t *testing.T) {
	e, _ := newTestScreen(t, sess.ModePractice, 3, 0)
	if e.Title() != "Practice" {
		t.Errorf("Title = %q, want Practice", e.Title())
	}
	e, _ = newTestScreen(t, sess.ModeExam, 3, 0)
	if e.Title() != "Exam" {
		t.Errorf("Title = %q, want Exam", e.Title())
	}
}

func TestDigitSelectsOption(t *testing.T) {
	e, _ := newTestScreen(t, sess.ModeExam, 3, 0)

	e.Update(keyPress('3'))

	s := e.ctrl.S
	if s.Answers[1] != 3 {
		t.Errorf("answer = %d, want 3", s.Answers[1])
	}
	if e.cursor != 2 {
		t.Errorf("cursor = %d, want 2", e.cursor)
	}
}

func TestEnterSelectsCursorOption(t *testing.T) {
	e, _ := newTestScreen(t, sess.ModeExam, 3, 0)

	e.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	e.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if e.ctrl.S.Answers[1] != 2 {
		t.Errorf("answer = %d, want 2", e.ctrl.S.Answers[1])
	}
}

func TestPracticeEnterRevealsThenAdvances(t *testing.T) {
	e, _ := newTestScreen(t, sess.ModePractice, 3, 0)

	e.Update(keyPress('1'))
	e.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !e.ctrl.ShowingFeedback() {
		t.Fatal("expected feedback after answering in practice mode")
	}

	e.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if e.ctrl.ShowingFeedback() {
		t.Error("expected feedback closed after continue")
	}
	if e.ctrl.S.Index != 1 {
		t.Errorf("index = %d, want 1", e.ctrl.S.Index)
	}
}

func TestExamArrowNavigation(t *testing.T) {
	e, _ := newTestScreen(t, sess.ModeExam, 5, 0)

	e.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	e.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if e.ctrl.S.Index != 2 {
		t.Fatalf("index = %d, want 2", e.ctrl.S.Index)
	}

	e.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if e.ctrl.S.Index != 1 {
		t.Errorf("index = %d, want 1", e.ctrl.S.Index)
	}
}

func TestCursorFollowsRecordedAnswer(t *testing.T) {
	e, _ := newTestScreen(t, sess.ModeExam, 3, 0)

	e.Update(keyPress('4'))
	e.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if e.cursor != 0 {
		t.Fatalf("cursor on fresh question = %d, want 0", e.cursor)
	}

	e.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if e.cursor != 3 {
		t.Errorf("cursor on answered question = %d, want 3", e.cursor)
	}
}

func TestFlagToggle(t *testing.T) {
	e, _ := newTestScreen(t, sess.ModeExam, 3, 0)

	e.Update(keyPress('f'))
	if !e.ctrl.S.Flags[1] {
		t.Fatal("expected question 1 flagged")
	}
	e.Update(keyPress('f'))
	if e.ctrl.S.Flags[1] {
		t.Error("expected flag cleared")
	}
}

func TestRestartGatePopsToSetup(t *testing.T) {
	e, _ := newTestScreen(t, sess.ModeExam, 3, 0)

	e.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if e.ctrl.Pending() != sess.ConfirmRestart {
		t.Fatal("expected restart gate")
	}

	_, cmd := e.Update(keyPress('y'))
	if e.ctrl.S.Phase != sess.PhaseStart {
		t.Fatalf("phase = %v, want start", e.ctrl.S.Phase)
	}
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg back to setup")
	}
}

func TestFinishRecordsRunAndShowsResults(t *testing.T) {
	e, runs := newTestScreen(t, sess.ModeExam, 2, 0)

	e.Update(keyPress('1')) // correct
	e.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	e.Update(keyPress('1')) // incorrect (key is 2)
	e.Update(tea.KeyPressMsg{Code: tea.KeyRight})

	if e.ctrl.Pending() != sess.ConfirmFinish {
		t.Fatal("expected finish gate at last question")
	}

	_, cmd := e.Update(keyPress('y'))
	if e.ctrl.S.Phase != sess.PhaseResult {
		t.Fatalf("phase = %v, want result", e.ctrl.S.Phase)
	}
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg to results")
	}

	if len(runs.recorded) != 1 {
		t.Fatalf("recorded %d runs, want 1", len(runs.recorded))
	}
	run := runs.recorded[0]
	if run.Mode != "exam" || run.Total != 2 || run.Correct != 1 || run.Answered != 2 {
		t.Errorf("unexpected run record: %+v", run)
	}
}

func TestEarlyFinishKey(t *testing.T) {
	e, _ := newTestScreen(t, sess.ModeExam, 5, 0)

	e.Update(keyPress('x'))
	if e.ctrl.Pending() != sess.ConfirmFinish {
		t.Error("expected finish gate from early-finish key")
	}
}

func TestTimerExpiryOpensGateAndOvertimeContinues(t *testing.T) {
	e, _ := newTestScreen(t, sess.ModeExam, 3, 1)

	for i := 0; i < 60; i++ {
		e.Update(timerTickMsg(time.Now()))
	}
	if e.ctrl.Pending() != sess.ConfirmTimeUp {
		t.Fatal("expected time-up gate after 60 ticks")
	}

	// Paused while the gate is open.
	e.Update(timerTickMsg(time.Now()))
	if e.ctrl.S.Timer.Seconds() != 0 {
		t.Fatalf("clock moved while paused: %d", e.ctrl.S.Timer.Seconds())
	}

	e.Update(keyPress('n'))
	for i := 0; i < 5; i++ {
		e.Update(timerTickMsg(time.Now()))
	}
	if e.ctrl.S.Timer.Seconds() != -5 {
		t.Errorf("overtime clock = %d, want -5", e.ctrl.S.Timer.Seconds())
	}
	if !e.ctrl.S.Timer.Overtime() {
		t.Error("expected overtime")
	}
}

func TestGateAfterOvertimeDefaultsToNo(t *testing.T) {
	e, _ := newTestScreen(t, sess.ModeExam, 3, 1)

	for i := 0; i < 60; i++ {
		e.Update(timerTickMsg(time.Now()))
	}
	if !e.confirmYes {
		t.Fatal("time-up gate should preselect yes")
	}
	e.Update(keyPress('n'))

	// Advancing past the last question raises the finish gate; it must not
	// inherit the time-up gate's preselection.
	for i := 0; i < 3; i++ {
		e.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	}
	if e.ctrl.Pending() != sess.ConfirmFinish {
		t.Fatalf("pending = %v, want finish gate", e.ctrl.Pending())
	}
	if e.confirmYes {
		t.Fatal("finish gate opened with yes preselected")
	}

	e.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if e.ctrl.S.Phase != sess.PhaseQuestion {
		t.Fatalf("phase = %v, want question after declining finish", e.ctrl.S.Phase)
	}
}

func TestTimeUpConfirmEndsRun(t *testing.T) {
	e, runs := newTestScreen(t, sess.ModeExam, 3, 1)

	for i := 0; i < 60; i++ {
		e.Update(timerTickMsg(time.Now()))
	}
	e.Update(keyPress('y'))

	if e.ctrl.S.Phase != sess.PhaseResult {
		t.Fatalf("phase = %v, want result", e.ctrl.S.Phase)
	}
	if e.ctrl.S.FinalSeconds != 0 {
		t.Errorf("FinalSeconds = %d, want 0", e.ctrl.S.FinalSeconds)
	}
	if len(runs.recorded) != 1 {
		t.Fatalf("recorded %d runs, want 1", len(runs.recorded))
	}
	if runs.recorded[0].DurationSecs != 60 {
		t.Errorf("DurationSecs = %d, want 60", runs.recorded[0].DurationSecs)
	}
}

func TestQuestionListJump(t *testing.T) {
	e, _ := newTestScreen(t, sess.ModeExam, 15, 0)

	e.Update(keyPress('g'))
	if !e.showList {
		t.Fatal("expected jump list open")
	}

	e.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	e.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	e.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if e.showList {
		t.Error("expected jump list closed")
	}
	if e.ctrl.S.Index != 11 {
		t.Errorf("index = %d, want 11", e.ctrl.S.Index)
	}
}

func TestQuestionListPracticeModeUnavailable(t *testing.T) {
	e, _ := newTestScreen(t, sess.ModePractice, 5, 0)

	e.Update(keyPress('g'))
	if e.showList {
		t.Error("jump list must be exam-mode only")
	}
}

func TestViewSmoke(t *testing.T) {
	e, _ := newTestScreen(t, sess.ModePractice, 3, 0)
	if e.View(80, 24) == "" {
		t.Error("expected non-empty question view")
	}

	e.Update(keyPress('1'))
	e.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if e.View(80, 24) == "" {
		t.Error("expected non-empty feedback view")
	}

	e.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	e.ctrl.RequestRestart()
	if e.View(80, 24) == "" {
		t.Error("expected non-empty confirm view")
	}
}
