package exam

// Confirm identifies a pending confirmation gate. Gates are not errors: they
// are flow control, modeled as explicit request/response state so the core
// stays synchronous and testable without a UI.
type Confirm int

const (
	ConfirmNone Confirm = iota
	// ConfirmSkip asks "no answer selected — show the explanation anyway?".
	ConfirmSkip
	// ConfirmFinish asks before ending an exam run from the last question.
	ConfirmFinish
	// ConfirmTimeUp asks whether to end the run or continue into overtime
	// after a count-down expiry. The timer is paused while it is open.
	ConfirmTimeUp
	// ConfirmRestart asks before abandoning the run back to the start
	// screen.
	ConfirmRestart
)

// Controller layers the navigation and review protocol over a Session: the
// practice-mode reveal discipline, the finish guard, expiry handling, and the
// reveal lock on answers. Screens translate key presses into these calls.
type Controller struct {
	S *Session

	pending Confirm
	// showing is true while practice feedback for the current question is
	// on screen. Whether feedback has EVER been revealed for a question is
	// not stored: it is reconstructed from the Answers entry on re-entry.
	showing bool
	// locked is true once feedback for the current question has been
	// revealed during this visit; selection is then final.
	locked bool
}

// NewController wraps a session.
func NewController(s *Session) *Controller {
	return &Controller{S: s}
}

// Pending returns the open confirmation gate, if any.
func (c *Controller) Pending() Confirm { return c.pending }

// ShowingFeedback reports whether the practice feedback view is open.
func (c *Controller) ShowingFeedback() bool { return c.showing }

// Select records an option choice unless a gate is open or practice feedback
// for this question has already been revealed.
func (c *Controller) Select(opt int) {
	if c.pending != ConfirmNone || c.showing || c.locked {
		return
	}
	c.S.SelectOption(opt)
}

// ToggleFlag flips the current question's review flag. Allowed while
// feedback is showing, blocked while a modal gate is open.
func (c *Controller) ToggleFlag() {
	if c.pending != ConfirmNone {
		return
	}
	c.S.ToggleCurrentFlag()
}

// Advance is the "next" action. In practice mode it enforces the reveal
// protocol: unanswered questions gate on ConfirmSkip, answered questions
// reveal feedback first, and advancing out of feedback moves on. At the last
// question it finishes — immediately in practice, via ConfirmFinish in exam
// mode.
func (c *Controller) Advance() {
	if c.pending != ConfirmNone || c.S.Phase != PhaseQuestion {
		return
	}

	if c.S.Mode == ModePractice {
		if c.showing {
			c.showing = false
			if c.atLast() {
				c.S.Finish(false)
				return
			}
			c.S.Next()
			c.enterQuestion()
			return
		}
		if !c.S.AnsweredCurrent() {
			c.pending = ConfirmSkip
			return
		}
		c.reveal()
		return
	}

	// Exam mode: no per-question feedback.
	if c.atLast() {
		c.pending = ConfirmFinish
		return
	}
	c.S.Next()
}

// Retreat is the "previous" action. Moving back while practice feedback is
// showing would desynchronize feedback state, so it is blocked there and
// while any gate is open.
func (c *Controller) Retreat() {
	if c.pending != ConfirmNone || c.showing {
		return
	}
	c.S.Prev()
	c.enterQuestion()
}

// Jump moves the cursor directly to index (exam mode only).
func (c *Controller) Jump(index int) {
	if c.pending != ConfirmNone || c.showing {
		return
	}
	c.S.JumpTo(index)
	c.enterQuestion()
}

// DismissFeedback closes the feedback view without advancing, keeping the
// reveal lock for this visit.
func (c *Controller) DismissFeedback() {
	c.showing = false
}

// RequestFinish opens the finish gate from anywhere in an exam run, for
// ending early. Practice runs finish through the last question instead.
func (c *Controller) RequestFinish() {
	if c.pending != ConfirmNone || c.showing || c.S.Phase != PhaseQuestion {
		return
	}
	if c.S.Mode != ModeExam {
		return
	}
	c.pending = ConfirmFinish
}

// RequestRestart opens the restart gate while a run is active.
func (c *Controller) RequestRestart() {
	if c.pending != ConfirmNone || c.S.Phase != PhaseQuestion {
		return
	}
	c.pending = ConfirmRestart
}

// HandleExpiry reacts to the timer's one-shot expiry event: the clock pauses
// and the time-up gate opens. The user decides between ending the run and
// continuing into overtime.
func (c *Controller) HandleExpiry() {
	c.S.Timer.SetPaused(true)
	c.pending = ConfirmTimeUp
}

// Resolve answers the open gate. confirmed=false cancels it; the specific
// effect of confirmation depends on the gate.
func (c *Controller) Resolve(confirmed bool) {
	gate := c.pending
	c.pending = ConfirmNone

	switch gate {
	case ConfirmSkip:
		if confirmed {
			c.S.MarkSkipped()
			c.reveal()
		}
	case ConfirmFinish:
		if confirmed {
			c.S.Finish(false)
		}
	case ConfirmTimeUp:
		if confirmed {
			c.S.Finish(true)
			return
		}
		c.S.Timer.SetPaused(false)
	case ConfirmRestart:
		if confirmed {
			c.S.Restart()
		}
	}
}

// reveal opens practice feedback and locks the answer for this question.
func (c *Controller) reveal() {
	c.showing = true
	c.locked = true
}

// enterQuestion reconstructs per-question reveal state after the cursor
// moves: in practice mode a question with a recorded answer has already been
// revealed, so its answer stays locked.
func (c *Controller) enterQuestion() {
	c.showing = false
	c.locked = c.S.Mode == ModePractice && c.S.AnsweredCurrent()
}

func (c *Controller) atLast() bool {
	return c.S.Index >= c.S.Len()-1
}
