package question

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

// Shuffle returns a copy of q with its options permuted by rng and Correct
// retargeted so it keeps pointing at the same option text. Option references
// inside the explanation are rewritten to the new positions on a best-effort
// basis; free-form text can defeat the rewrite, and stale references are left
// as-is rather than guessed at.
func Shuffle(q Question, rng *rand.Rand) Question {
	perm := rng.Perm(OptionCount)

	out := q
	// newPos[old] = new, both 1-based.
	var newPos [OptionCount + 1]int
	for newIdx, oldIdx := range perm {
		out.Options[newIdx] = q.Options[oldIdx]
		newPos[oldIdx+1] = newIdx + 1
	}
	if q.HasCorrect() {
		out.Correct = newPos[q.Correct]
	}
	out.Explanation = rewriteReferences(q.Explanation, newPos)
	return out
}

// ShuffleAll shuffles every question in the bank, producing a new immutable
// set. IDs are untouched; only option order changes.
func ShuffleAll(qs []Question, rng *rand.Rand) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = Shuffle(q, rng)
	}
	return out
}

var (
	// "a)" and "choice b" style references, as produced by the JSON import
	// and by the original bank explanations.
	letterRefRe = regexp.MustCompile(`\b([a-d])\)`)
	choiceRefRe = regexp.MustCompile(`\bchoice ([a-d])\b`)
	// "選択肢2" and "選択肢イ" style references in Japanese explanations.
	numberRefRe = regexp.MustCompile(`選択肢([1-4])`)
	kanaRefRe   = regexp.MustCompile(`選択肢([ア-エ])`)
)

var kanaDigits = []string{"ア", "イ", "ウ", "エ"}

func kanaToNumber(s string) int {
	for i, k := range kanaDigits {
		if s == k {
			return i + 1
		}
	}
	return 0
}

// rewriteReferences remaps option references in explanation text from old to
// new positions. Replacement goes through placeholder tokens so that a chain
// like a->c, c->b cannot cascade.
func rewriteReferences(text string, newPos [OptionCount + 1]int) string {
	if text == "" {
		return text
	}

	out := letterRefRe.ReplaceAllStringFunc(text, func(m string) string {
		old := LetterToNumber(m[:1])
		if old == 0 || newPos[old] == 0 {
			return m
		}
		return fmt.Sprintf("\x00L%d\x00", newPos[old])
	})
	out = choiceRefRe.ReplaceAllStringFunc(out, func(m string) string {
		old := LetterToNumber(m[len(m)-1:])
		if old == 0 || newPos[old] == 0 {
			return m
		}
		return fmt.Sprintf("\x00C%d\x00", newPos[old])
	})
	out = numberRefRe.ReplaceAllStringFunc(out, func(m string) string {
		old := int(m[len(m)-1] - '0')
		if old < 1 || old > OptionCount || newPos[old] == 0 {
			return m
		}
		return fmt.Sprintf("\x00N%d\x00", newPos[old])
	})
	out = kanaRefRe.ReplaceAllStringFunc(out, func(m string) string {
		old := kanaToNumber(strings.TrimPrefix(m, "選択肢"))
		if old == 0 || newPos[old] == 0 {
			return m
		}
		return fmt.Sprintf("\x00K%d\x00", newPos[old])
	})

	for n := 1; n <= OptionCount; n++ {
		out = strings.ReplaceAll(out, fmt.Sprintf("\x00L%d\x00", n), NumberToLetter(n)+")")
		out = strings.ReplaceAll(out, fmt.Sprintf("\x00C%d\x00", n), "choice "+NumberToLetter(n))
		out = strings.ReplaceAll(out, fmt.Sprintf("\x00N%d\x00", n), fmt.Sprintf("選択肢%d", n))
		out = strings.ReplaceAll(out, fmt.Sprintf("\x00K%d\x00", n), "選択肢"+kanaDigits[n-1])
	}
	return out
}
