package question

import "strings"

// OptionCount is the fixed number of options per question.
const OptionCount = 4

// Question is a single four-option multiple-choice question. Questions are
// immutable once a session starts; transforms such as Shuffle return a copy.
type Question struct {
	// ID is unique and stable for the lifetime of a loaded bank (1-based).
	ID int

	// Text is the question statement.
	Text string

	// Options holds the four answer options in display order.
	Options [OptionCount]string

	// Correct is the 1-based index of the correct option, or 0 when the
	// source data carried no recognizable correct answer.
	Correct int

	// Explanation is free-form rationale text shown after answering.
	Explanation string
}

// Option returns the text of the 1-based option n, or "" if out of range.
func (q Question) Option(n int) string {
	if n < 1 || n > OptionCount {
		return ""
	}
	return q.Options[n-1]
}

// HasCorrect reports whether the question carries a usable correct option.
func (q Question) HasCorrect() bool {
	return q.Correct >= 1 && q.Correct <= OptionCount
}

// NumberToLetter converts a 1-based option number to its letter (1 -> "a").
// Out-of-range numbers yield "".
func NumberToLetter(n int) string {
	if n < 1 || n > OptionCount {
		return ""
	}
	return string(rune('a' + n - 1))
}

// LetterToNumber converts an option letter ("a".."d", any case, surrounding
// space tolerated) to its 1-based number. Unrecognized input yields 0; the
// caller is expected to tolerate 0 rather than fail, so a bank with a bad
// answer key still loads for quality control.
func LetterToNumber(s string) int {
	t := strings.ToLower(strings.TrimSpace(s))
	if len(t) != 1 || t[0] < 'a' || t[0] > 'd' {
		return 0
	}
	return int(t[0]-'a') + 1
}
