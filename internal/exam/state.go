package exam

import (
	"github.com/abhisek/examdeck/internal/question"
)

// Mode selects how a run presents questions.
type Mode int

const (
	// ModePractice shows per-question feedback immediately after answering.
	ModePractice Mode = iota
	// ModeExam defers all feedback to the result screen and allows free
	// navigation, including jumping to arbitrary questions.
	ModeExam
)

func (m Mode) String() string {
	if m == ModeExam {
		return "exam"
	}
	return "practice"
}

// Phase is the session lifecycle state. The only exit from PhaseResult is a
// full restart.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseQuestion
	PhaseResult
)

// Skipped is the answer value recorded when the user explicitly views
// feedback without choosing an option. It is distinct from "no entry":
// a question with no Answers entry has not been acknowledged at all.
const Skipped = 0

// Session is the aggregate for one exam run. It is passed explicitly to
// everything that mutates it; there is no package-level state.
type Session struct {
	Mode  Mode
	Phase Phase

	// Questions is fixed for the lifetime of an active run. Shuffling, when
	// requested, happens before Start and replaces the whole set.
	Questions []question.Question

	// Index is the current position; always a valid index while the session
	// is in PhaseQuestion with a non-empty set.
	Index int

	// Answers maps question ID to the selected 1-based option, or Skipped.
	// An entry exists only after an explicit user action.
	Answers map[int]int

	// Flags maps question ID to its review-flag state; absent means false.
	// Unused in practice mode but always available.
	Flags map[int]bool

	Timer Timer

	// FinalSeconds is the clock value snapshotted by Finish, zeroed when the
	// run ended through a clean timeout.
	FinalSeconds int
}

// NewSession returns an empty session in the start phase.
func NewSession() *Session {
	return &Session{
		Answers: make(map[int]int),
		Flags:   make(map[int]bool),
	}
}

// Len returns the number of loaded questions.
func (s *Session) Len() int { return len(s.Questions) }

// Current returns the question at the cursor, or false when no set is loaded.
func (s *Session) Current() (question.Question, bool) {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return question.Question{}, false
	}
	return s.Questions[s.Index], true
}

// Answered reports whether an Answers entry exists for the question ID,
// counting an explicit skip as answered.
func (s *Session) Answered(id int) bool {
	_, ok := s.Answers[id]
	return ok
}

// AnsweredCurrent reports whether the current question has an Answers entry.
func (s *Session) AnsweredCurrent() bool {
	q, ok := s.Current()
	return ok && s.Answered(q.ID)
}

// UnansweredCount returns the number of questions with no Answers entry.
func (s *Session) UnansweredCount() int {
	n := 0
	for _, q := range s.Questions {
		if !s.Answered(q.ID) {
			n++
		}
	}
	return n
}

// FlaggedCount returns the number of questions currently flagged for review.
func (s *Session) FlaggedCount() int {
	n := 0
	for _, v := range s.Flags {
		if v {
			n++
		}
	}
	return n
}
