package exam

import (
	"testing"

	"github.com/abhisek/examdeck/internal/question"
)

func testQuestions(n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = question.Question{
			ID:      i + 1,
			Text:    "question",
			Options: [4]string{"w", "x", "y", "z"},
			Correct: (i % 4) + 1,
		}
	}
	return qs
}

func startedSession(t *testing.T, mode Mode, n, limitMinutes int) *Session {
	t.Helper()
	s := NewSession()
	if err := s.LoadQuestions(testQuestions(n)); err != nil {
		t.Fatalf("LoadQuestions: %v", err)
	}
	if err := s.Start(mode, limitMinutes); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func TestLoadQuestions_EmptySetRejected(t *testing.T) {
	s := NewSession()
	if err := s.LoadQuestions(nil); err != ErrNoQuestions {
		t.Errorf("err = %v, want ErrNoQuestions", err)
	}
	if s.Len() != 0 {
		t.Error("empty load committed state")
	}
}

func TestLoadQuestions_OnlyInStartPhase(t *testing.T) {
	s := startedSession(t, ModePractice, 3, 0)
	if err := s.LoadQuestions(testQuestions(5)); err != ErrSessionRunning {
		t.Errorf("err = %v, want ErrSessionRunning", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3 (set must not change mid-run)", s.Len())
	}
}

func TestStart_RequiresQuestions(t *testing.T) {
	s := NewSession()
	if err := s.Start(ModeExam, 0); err != ErrNoQuestions {
		t.Errorf("err = %v, want ErrNoQuestions", err)
	}
	if s.Phase != PhaseStart {
		t.Error("failed Start changed the phase")
	}
}

func TestStart_ResetsState(t *testing.T) {
	s := NewSession()
	if err := s.LoadQuestions(testQuestions(4)); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(ModeExam, 2); err != nil {
		t.Fatal(err)
	}

	if s.Phase != PhaseQuestion {
		t.Errorf("Phase = %d, want PhaseQuestion", s.Phase)
	}
	if s.Index != 0 {
		t.Errorf("Index = %d, want 0", s.Index)
	}
	if len(s.Answers) != 0 || len(s.Flags) != 0 {
		t.Error("expected cleared answers and flags")
	}
	if !s.Timer.Active() || s.Timer.Seconds() != 120 {
		t.Errorf("timer not armed: active=%v seconds=%d", s.Timer.Active(), s.Timer.Seconds())
	}
}

func TestNavigation_StaysInBounds(t *testing.T) {
	s := startedSession(t, ModeExam, 3, 0)

	s.Prev()
	if s.Index != 0 {
		t.Errorf("Index = %d after Prev at 0, want 0", s.Index)
	}

	for i := 0; i < 10; i++ {
		s.Next()
		if s.Index < 0 || s.Index >= s.Len() {
			t.Fatalf("Index = %d out of bounds", s.Index)
		}
	}
	if s.Index != 2 {
		t.Errorf("Index = %d after clamped Next spam, want 2", s.Index)
	}
}

func TestJumpTo_ExamOnly(t *testing.T) {
	s := startedSession(t, ModePractice, 5, 0)
	s.JumpTo(3)
	if s.Index != 0 {
		t.Errorf("practice JumpTo moved the cursor to %d", s.Index)
	}

	s2 := startedSession(t, ModeExam, 5, 0)
	s2.JumpTo(3)
	if s2.Index != 3 {
		t.Errorf("Index = %d, want 3", s2.Index)
	}
	s2.JumpTo(99)
	if s2.Index != 3 {
		t.Errorf("out-of-range jump moved the cursor to %d", s2.Index)
	}
}

func TestSelectOption_AndFlag_AreIndependent(t *testing.T) {
	s := startedSession(t, ModeExam, 3, 0)

	s.SelectOption(2)
	s.ToggleCurrentFlag()

	if got := s.Answers[1]; got != 2 {
		t.Errorf("Answers[1] = %d, want 2", got)
	}
	if !s.Flags[1] {
		t.Error("expected flag set")
	}

	s.ToggleCurrentFlag()
	if s.Flags[1] {
		t.Error("expected flag cleared after second toggle")
	}
	if got := s.Answers[1]; got != 2 {
		t.Errorf("Answers[1] = %d after flag toggles, want 2 (maps are independent)", got)
	}
}

func TestSelectOption_IgnoresOutOfRange(t *testing.T) {
	s := startedSession(t, ModeExam, 1, 0)
	s.SelectOption(0)
	s.SelectOption(5)
	if len(s.Answers) != 0 {
		t.Errorf("Answers = %v, want empty", s.Answers)
	}
}

func TestMarkSkipped_DistinctFromNoEntry(t *testing.T) {
	s := startedSession(t, ModePractice, 2, 0)

	if s.AnsweredCurrent() {
		t.Error("fresh question should have no entry")
	}
	s.MarkSkipped()
	if !s.AnsweredCurrent() {
		t.Error("skip should create an entry")
	}
	if got := s.Answers[1]; got != Skipped {
		t.Errorf("Answers[1] = %d, want Skipped", got)
	}
	if s.UnansweredCount() != 1 {
		t.Errorf("UnansweredCount = %d, want 1 (only the untouched question)", s.UnansweredCount())
	}
}

func TestScore_SpecExample(t *testing.T) {
	// Three questions with keys {1:2, 2:3, 3:1}, answers {1:2, 2:1},
	// question 3 unanswered: one correct, 33%.
	qs := []question.Question{
		{ID: 1, Correct: 2},
		{ID: 2, Correct: 3},
		{ID: 3, Correct: 1},
	}
	s := NewSession()
	if err := s.LoadQuestions(qs); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(ModeExam, 0); err != nil {
		t.Fatal(err)
	}
	s.Answers[1] = 2
	s.Answers[2] = 1

	sc := s.Score()
	if sc.Correct != 1 {
		t.Errorf("Correct = %d, want 1", sc.Correct)
	}
	if sc.Total != 3 {
		t.Errorf("Total = %d, want 3", sc.Total)
	}
	if sc.Percentage != 33 {
		t.Errorf("Percentage = %d, want 33", sc.Percentage)
	}
}

func TestScore_EmptySetYieldsZeroPercent(t *testing.T) {
	s := NewSession()
	if sc := s.Score(); sc.Percentage != 0 || sc.Total != 0 {
		t.Errorf("Score = %+v, want zeros", sc)
	}
}

func TestScore_SkipNeverMatchesUnsetKey(t *testing.T) {
	// A question with no answer key (Correct=0) must not count a skip
	// (also recorded as 0) as correct.
	qs := []question.Question{{ID: 1, Correct: 0}}
	s := NewSession()
	if err := s.LoadQuestions(qs); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(ModePractice, 0); err != nil {
		t.Fatal(err)
	}
	s.MarkSkipped()

	if sc := s.Score(); sc.Correct != 0 {
		t.Errorf("Correct = %d, want 0", sc.Correct)
	}
}

func TestFinish_SnapshotsClock(t *testing.T) {
	s := startedSession(t, ModeExam, 2, 1)
	for i := 0; i < 65; i++ {
		s.Timer.Tick()
	}

	s.Finish(false)
	if s.Phase != PhaseResult {
		t.Errorf("Phase = %d, want PhaseResult", s.Phase)
	}
	if s.FinalSeconds != -5 {
		t.Errorf("FinalSeconds = %d, want -5", s.FinalSeconds)
	}
	if s.Timer.Active() {
		t.Error("timer still active after Finish")
	}
}

func TestFinish_ForceZeroOnTimeout(t *testing.T) {
	s := startedSession(t, ModeExam, 1, 1)
	for i := 0; i < 60; i++ {
		s.Timer.Tick()
	}
	s.Finish(true)
	if s.FinalSeconds != 0 {
		t.Errorf("FinalSeconds = %d, want 0 for a clean timeout", s.FinalSeconds)
	}
}

func TestRestart_ClearsEverything(t *testing.T) {
	s := startedSession(t, ModeExam, 3, 1)
	s.SelectOption(1)
	s.ToggleCurrentFlag()
	s.Next()

	s.Restart()

	if s.Phase != PhaseStart {
		t.Errorf("Phase = %d, want PhaseStart", s.Phase)
	}
	if s.Index != 0 || len(s.Answers) != 0 || len(s.Flags) != 0 {
		t.Error("restart left run state behind")
	}
	if s.Len() != 3 {
		t.Error("restart should keep the loaded question set")
	}

	// A stray tick after restart must have no observable effect.
	before := s.Timer.Seconds()
	if s.Timer.Tick() {
		t.Error("stopped timer fired expiry")
	}
	if s.Timer.Seconds() != before {
		t.Error("stopped timer advanced")
	}
}

func TestResults_RowPerQuestion(t *testing.T) {
	s := startedSession(t, ModeExam, 3, 0)
	s.SelectOption(1) // question 1: correct (key 1)
	s.Next()
	s.SelectOption(1) // question 2: wrong (key 2)
	s.ToggleCurrentFlag()

	rows := s.Results()
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if !rows[0].Correct {
		t.Error("row 0 should be correct")
	}
	if rows[1].Correct || !rows[1].Flagged {
		t.Errorf("row 1 = %+v, want wrong and flagged", rows[1])
	}
	if rows[2].HasAnswer {
		t.Error("row 2 should be unanswered")
	}
}

func TestReviewSet_IncorrectUnionFlagged(t *testing.T) {
	s := startedSession(t, ModeExam, 4, 0)
	s.SelectOption(1) // q1 correct
	s.ToggleCurrentFlag()
	s.Next()
	s.SelectOption(2) // q2 correct (key 2), not flagged
	s.Next()
	s.SelectOption(1) // q3 wrong (key 3)
	// q4 left unanswered.

	set := s.ReviewSet()
	if len(set) != 3 {
		t.Fatalf("review set = %d questions, want 3", len(set))
	}
	ids := map[int]bool{}
	for _, q := range set {
		ids[q.ID] = true
	}
	for _, want := range []int{1, 3, 4} {
		if !ids[want] {
			t.Errorf("review set missing question %d", want)
		}
	}
}
