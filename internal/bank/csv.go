// Package bank loads and exports question banks. The on-disk interchange
// format is a headered CSV with letter answer keys; in memory everything is
// the 1-based numeric form of internal/question.
package bank

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/abhisek/examdeck/internal/question"
)

// utf8BOM keeps exported files openable in spreadsheet tools that sniff
// encodings, and is stripped on input.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one CSV record in the interchange schema.
type Row struct {
	QuestionText  string `csv:"question_text"`
	OptionA       string `csv:"option_a"`
	OptionB       string `csv:"option_b"`
	OptionC       string `csv:"option_c"`
	OptionD       string `csv:"option_d"`
	CorrectOption string `csv:"correct_option"`
	Explanation   string `csv:"explanation"`
}

// ParseRow converts one CSV record to a Question. index is the 0-based
// ordinal of the row; IDs are assigned from it, 1-based, and stay stable for
// the loaded bank. An unrecognized answer letter maps to Correct = 0 rather
// than failing, so a flawed bank still loads for quality control.
func ParseRow(r Row, index int) question.Question {
	return question.Question{
		ID:          index + 1,
		Text:        r.QuestionText,
		Options:     [4]string{r.OptionA, r.OptionB, r.OptionC, r.OptionD},
		Correct:     question.LetterToNumber(r.CorrectOption),
		Explanation: r.Explanation,
	}
}

// formatRow converts a Question back to the interchange schema.
func formatRow(q question.Question) Row {
	return Row{
		QuestionText:  q.Text,
		OptionA:       q.Option(1),
		OptionB:       q.Option(2),
		OptionC:       q.Option(3),
		OptionD:       q.Option(4),
		CorrectOption: question.NumberToLetter(q.Correct),
		Explanation:   q.Explanation,
	}
}

// ParseCSV parses a headered CSV payload into a question bank. An empty or
// header-only payload is an error; malformed CSV is an error.
func ParseCSV(data []byte) ([]question.Question, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var rows []Row
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no question rows found")
	}

	qs := make([]question.Question, len(rows))
	for i, r := range rows {
		qs[i] = ParseRow(r, i)
	}
	return qs, nil
}

// LoadFile reads and parses a CSV bank from disk.
func LoadFile(path string) ([]question.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	return ParseCSV(data)
}

// ExportCSV renders questions in the interchange schema, prefixed with a
// UTF-8 byte-order mark for spreadsheet compatibility.
func ExportCSV(qs []question.Question) ([]byte, error) {
	rows := make([]Row, len(qs))
	for i, q := range qs {
		rows[i] = formatRow(q)
	}
	body, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("marshal CSV: %w", err)
	}
	return append(append([]byte{}, utf8BOM...), body...), nil
}

// ExportFilename returns the review-export filename, timestamped to the
// minute.
func ExportFilename(now time.Time) string {
	return "review_" + now.Format("20060102_1504") + ".csv"
}

// WriteReviewFile writes the review subset to dir with a timestamped name
// and returns the full path.
func WriteReviewFile(dir string, qs []question.Question, now time.Time) (string, error) {
	data, err := ExportCSV(qs)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ExportFilename(now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write review file: %w", err)
	}
	return path, nil
}

// Lint reports bank-quality problems that do not prevent loading: missing
// answer keys, empty question text, empty options. Row numbers are 1-based.
func Lint(qs []question.Question) []string {
	var problems []string
	for _, q := range qs {
		if q.Text == "" {
			problems = append(problems, fmt.Sprintf("question %d: empty question text", q.ID))
		}
		for n := 1; n <= question.OptionCount; n++ {
			if q.Option(n) == "" {
				problems = append(problems, fmt.Sprintf("question %d: option %s is empty", q.ID, question.NumberToLetter(n)))
			}
		}
		if !q.HasCorrect() {
			problems = append(problems, fmt.Sprintf("question %d: no recognizable correct option", q.ID))
		}
	}
	return problems
}
