package bank

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/abhisek/examdeck/internal/question"
)

// FromClipboard imports a flashcard-style quiz export from the system
// clipboard. The clipboard must hold the JSON payload accepted by
// ParseAnkiJSON.
func FromClipboard() ([]question.Question, []string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil, fmt.Errorf("clipboard is empty")
	}
	return ParseAnkiJSON([]byte(text))
}

// ReviewToClipboard puts the review subset on the system clipboard as CSV.
func ReviewToClipboard(qs []question.Question) error {
	data, err := ExportCSV(qs)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
