package question

import (
	"math/rand"
	"testing"
)

func shuffleFixture() Question {
	return Question{
		ID:          7,
		Text:        "Which port does HTTPS use by default?",
		Options:     [4]string{"80", "443", "8080", "21"},
		Correct:     2,
		Explanation: "b) is correct. 選択肢1 is plain HTTP.",
	}
}

func TestShuffle_PreservesCorrectBijection(t *testing.T) {
	q := shuffleFixture()
	correctText := q.Option(q.Correct)

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		s := Shuffle(q, rng)

		if !s.HasCorrect() {
			t.Fatalf("seed %d: shuffled question lost its correct option", seed)
		}
		if got := s.Option(s.Correct); got != correctText {
			t.Errorf("seed %d: Correct points at %q, want %q", seed, got, correctText)
		}
		if s.ID != q.ID {
			t.Errorf("seed %d: ID changed to %d", seed, s.ID)
		}
	}
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	q := shuffleFixture()
	orig := q
	Shuffle(q, rand.New(rand.NewSource(1)))
	if q != orig {
		t.Error("Shuffle mutated its input")
	}
}

func TestShuffle_NoCorrectStaysUnset(t *testing.T) {
	q := shuffleFixture()
	q.Correct = 0
	s := Shuffle(q, rand.New(rand.NewSource(3)))
	if s.Correct != 0 {
		t.Errorf("Correct = %d, want 0 for a question with no answer key", s.Correct)
	}
}

func TestShuffleAll_Length(t *testing.T) {
	qs := []Question{shuffleFixture(), shuffleFixture()}
	out := ShuffleAll(qs, rand.New(rand.NewSource(9)))
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if &out[0] == &qs[0] {
		t.Error("expected a new slice")
	}
}

func TestRewriteReferences_SwapWithoutCascade(t *testing.T) {
	// a -> c and c -> a: a naive sequential replace would collapse both
	// references onto the same letter.
	var newPos [OptionCount + 1]int
	newPos[1] = 3
	newPos[2] = 2
	newPos[3] = 1
	newPos[4] = 4

	got := rewriteReferences("a) is wrong, see c) instead.", newPos)
	want := "c) is wrong, see a) instead."
	if got != want {
		t.Errorf("rewriteReferences = %q, want %q", got, want)
	}
}

func TestRewriteReferences_JapaneseNumberRefs(t *testing.T) {
	var newPos [OptionCount + 1]int
	newPos[1] = 2
	newPos[2] = 1
	newPos[3] = 3
	newPos[4] = 4

	got := rewriteReferences("選択肢1と選択肢2を比較。", newPos)
	want := "選択肢2と選択肢1を比較。"
	if got != want {
		t.Errorf("rewriteReferences = %q, want %q", got, want)
	}
}

func TestRewriteReferences_ChoiceAndKanaRefs(t *testing.T) {
	var newPos [OptionCount + 1]int
	newPos[1] = 3
	newPos[2] = 1
	newPos[3] = 2
	newPos[4] = 4

	got := rewriteReferences("choice a beats choice b. 選択肢アと選択肢ウ。", newPos)
	want := "choice c beats choice a. 選択肢ウと選択肢イ。"
	if got != want {
		t.Errorf("rewriteReferences = %q, want %q", got, want)
	}
}

func TestRewriteReferences_LeavesUnknownAlone(t *testing.T) {
	var newPos [OptionCount + 1]int
	for i := 1; i <= OptionCount; i++ {
		newPos[i] = i
	}
	in := "e) is not an option reference. 選択肢5 neither."
	if got := rewriteReferences(in, newPos); got != in {
		t.Errorf("rewriteReferences changed unrelated text: %q", got)
	}
}
