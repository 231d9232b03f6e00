package bank

import (
	_ "embed"

	"github.com/abhisek/examdeck/internal/question"
)

//go:embed data/questions.csv
var sampleCSV []byte

// Sample returns the built-in question bank. The embedded bank is known
// good, so a parse failure here is a build defect and panics.
func Sample() []question.Question {
	qs, err := ParseCSV(sampleCSV)
	if err != nil {
		panic("embedded sample bank is invalid: " + err.Error())
	}
	return qs
}
