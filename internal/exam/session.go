package exam

import (
	"errors"
	"math"

	"github.com/abhisek/examdeck/internal/question"
)

var (
	// ErrNoQuestions is returned when an operation needs a non-empty set.
	ErrNoQuestions = errors.New("no questions loaded")
	// ErrSessionRunning is returned when the question set is replaced while
	// a run is in progress.
	ErrSessionRunning = errors.New("session already running")
)

// LoadQuestions replaces the loaded set. Valid only in the start phase; the
// phase itself does not change. An empty set is an input error and leaves the
// previous set untouched.
func (s *Session) LoadQuestions(qs []question.Question) error {
	if s.Phase != PhaseStart {
		return ErrSessionRunning
	}
	if len(qs) == 0 {
		return ErrNoQuestions
	}
	s.Questions = qs
	return nil
}

// Start begins a run: sets the mode, arms the timer, resets the cursor and
// clears all answers and flags, then moves to the question phase.
func (s *Session) Start(mode Mode, limitMinutes int) error {
	if s.Phase != PhaseStart {
		return ErrSessionRunning
	}
	if len(s.Questions) == 0 {
		return ErrNoQuestions
	}
	s.Mode = mode
	s.Index = 0
	s.Answers = make(map[int]int)
	s.Flags = make(map[int]bool)
	s.FinalSeconds = 0
	s.Timer.Start(limitMinutes)
	s.Phase = PhaseQuestion
	return nil
}

// SelectOption records the 1-based option for the current question. Values
// outside 1..4 are ignored; use MarkSkipped for the explicit no-answer entry.
// The practice-mode lock after feedback reveal is enforced by the Controller,
// which owns reveal state.
func (s *Session) SelectOption(opt int) {
	if s.Phase != PhaseQuestion || opt < 1 || opt > question.OptionCount {
		return
	}
	if q, ok := s.Current(); ok {
		s.Answers[q.ID] = opt
	}
}

// MarkSkipped records the explicit "viewed without answering" entry for the
// current question. Only the unanswered-confirmation path calls this.
func (s *Session) MarkSkipped() {
	if s.Phase != PhaseQuestion {
		return
	}
	if q, ok := s.Current(); ok {
		s.Answers[q.ID] = Skipped
	}
}

// ToggleFlag flips the review flag for the given question ID.
func (s *Session) ToggleFlag(id int) {
	s.Flags[id] = !s.Flags[id]
}

// ToggleCurrentFlag flips the review flag for the current question.
func (s *Session) ToggleCurrentFlag() {
	if q, ok := s.Current(); ok {
		s.ToggleFlag(q.ID)
	}
}

// Next moves the cursor forward, clamped at the last question.
func (s *Session) Next() {
	if s.Phase == PhaseQuestion && s.Index < len(s.Questions)-1 {
		s.Index++
	}
}

// Prev moves the cursor backward, clamped at zero.
func (s *Session) Prev() {
	if s.Phase == PhaseQuestion && s.Index > 0 {
		s.Index--
	}
}

// JumpTo sets the cursor directly. Jumping is an exam-mode affordance;
// practice mode ignores it, as do out-of-range targets.
func (s *Session) JumpTo(index int) {
	if s.Phase != PhaseQuestion || s.Mode != ModeExam {
		return
	}
	if index < 0 || index >= len(s.Questions) {
		return
	}
	s.Index = index
}

// Finish ends the run: stops the timer, snapshots the final clock value
// (zeroed when forceZero signals a clean timeout) and moves to the result
// phase.
func (s *Session) Finish(forceZero bool) {
	if s.Phase != PhaseQuestion {
		return
	}
	s.Timer.Stop()
	if forceZero {
		s.FinalSeconds = 0
	} else {
		s.FinalSeconds = s.Timer.Seconds()
	}
	s.Phase = PhaseResult
}

// ElapsedSeconds converts the finished run's clock snapshot to time spent:
// the snapshot directly in count-up mode, budget minus remaining (remaining
// is negative in overtime) in count-down mode.
func (s *Session) ElapsedSeconds() int {
	if s.Timer.Mode() == CountDown {
		return s.Timer.LimitSeconds() - s.FinalSeconds
	}
	return s.FinalSeconds
}

// Restart clears all run state and returns to the start phase. The loaded
// question set is kept so another run can begin immediately.
func (s *Session) Restart() {
	s.Timer.Stop()
	s.Index = 0
	s.Answers = make(map[int]int)
	s.Flags = make(map[int]bool)
	s.FinalSeconds = 0
	s.Phase = PhaseStart
}

// Score totals a finished (or in-flight) run.
type Score struct {
	Correct    int
	Total      int
	Percentage int
}

// Score computes the run score. It is derived on demand and never stored.
// A question counts as correct only when it has a usable answer key and the
// recorded option matches it; skips and absent entries never match, even
// against Correct = 0.
func (s *Session) Score() Score {
	sc := Score{Total: len(s.Questions)}
	for _, q := range s.Questions {
		ans, ok := s.Answers[q.ID]
		if ok && q.HasCorrect() && ans == q.Correct {
			sc.Correct++
		}
	}
	if sc.Total > 0 {
		sc.Percentage = int(math.Round(float64(sc.Correct) / float64(sc.Total) * 100))
	}
	return sc
}

// QuestionResult is one row of the result table.
type QuestionResult struct {
	Question question.Question
	// Answer is the recorded option, valid only when HasAnswer.
	Answer    int
	HasAnswer bool
	Correct   bool
	Flagged   bool
}

// Results returns one row per question in bank order.
func (s *Session) Results() []QuestionResult {
	out := make([]QuestionResult, 0, len(s.Questions))
	for _, q := range s.Questions {
		ans, ok := s.Answers[q.ID]
		out = append(out, QuestionResult{
			Question:  q,
			Answer:    ans,
			HasAnswer: ok,
			Correct:   ok && q.HasCorrect() && ans == q.Correct,
			Flagged:   s.Flags[q.ID],
		})
	}
	return out
}

// ReviewSet returns the questions worth revisiting: every incorrect question
// (including skipped and unanswered ones) plus every flagged question.
func (s *Session) ReviewSet() []question.Question {
	var out []question.Question
	for _, r := range s.Results() {
		if !r.Correct || r.Flagged {
			out = append(out, r.Question)
		}
	}
	return out
}
