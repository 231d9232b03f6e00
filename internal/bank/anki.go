package bank

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/examdeck/internal/question"
)

// ankiSchema describes the flashcard-export envelope: a top-level "quiz"
// array of entries. Entry-level quality rules (four options, a correct
// option) are enforced per entry afterwards so one bad card drops that card,
// not the whole import.
var ankiSchema = map[string]any{
	"type":     "object",
	"required": []any{"quiz"},
	"properties": map[string]any{
		"quiz": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"question", "answerOptions"},
				"properties": map[string]any{
					"question": map[string]any{"type": "string"},
					"answerOptions": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"text", "isCorrect"},
							"properties": map[string]any{
								"text":      map[string]any{"type": "string"},
								"isCorrect": map[string]any{"type": "boolean"},
								"rationale": map[string]any{"type": "string"},
							},
						},
					},
				},
			},
		},
	},
}

var (
	ankiCompiled    *jsonschema.Schema
	ankiCompileErr  error
	ankiCompileOnce sync.Once
)

func compiledAnkiSchema() (*jsonschema.Schema, error) {
	ankiCompileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not raw
		// bytes. Marshal then unmarshal to get a clean any representation.
		defBytes, err := json.Marshal(ankiSchema)
		if err != nil {
			ankiCompileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			ankiCompileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://anki-quiz.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			ankiCompileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		ankiCompiled, ankiCompileErr = c.Compile(schemaURL)
	})
	return ankiCompiled, ankiCompileErr
}

type ankiOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Rationale string `json:"rationale"`
}

type ankiEntry struct {
	Question      string       `json:"question"`
	AnswerOptions []ankiOption `json:"answerOptions"`
}

type ankiPayload struct {
	Quiz []ankiEntry `json:"quiz"`
}

func isJSONSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// ParseAnkiJSON imports a flashcard-style quiz export. The payload is either
// a {"quiz": [...]} envelope or a bare array of entries. Entries with fewer
// than four options, or with no option marked correct, are dropped; each
// drop is reported in the returned warnings. An import where every entry
// drops is an error.
func ParseAnkiJSON(data []byte) ([]question.Question, []string, error) {
	if trimmed := strings.TrimLeftFunc(string(data), isJSONSpace); strings.HasPrefix(trimmed, "[") {
		data = []byte(`{"quiz":` + trimmed + `}`)
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, nil, fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledAnkiSchema()
	if err != nil {
		return nil, nil, fmt.Errorf("compile quiz schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, nil, fmt.Errorf("quiz schema validation failed: %w", err)
	}

	var payload ankiPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, nil, fmt.Errorf("decode quiz: %w", err)
	}

	var qs []question.Question
	var warnings []string
	for i, entry := range payload.Quiz {
		q, reason := convertAnkiEntry(entry)
		if reason != "" {
			warnings = append(warnings, fmt.Sprintf("entry %d dropped: %s", i+1, reason))
			continue
		}
		q.ID = len(qs) + 1
		qs = append(qs, q)
	}
	if len(qs) == 0 {
		return nil, warnings, fmt.Errorf("no usable quiz entries")
	}
	return qs, warnings, nil
}

// convertAnkiEntry maps one quiz entry to a Question, synthesizing an
// explanation from the per-option rationales. A non-empty reason means the
// entry cannot become a four-option question and must be dropped.
func convertAnkiEntry(entry ankiEntry) (question.Question, string) {
	if len(entry.AnswerOptions) < question.OptionCount {
		return question.Question{}, fmt.Sprintf("%d options, need %d", len(entry.AnswerOptions), question.OptionCount)
	}

	opts := entry.AnswerOptions[:question.OptionCount]
	// When several options carry the correct mark, the last one wins.
	correct := 0
	for n, opt := range opts {
		if opt.IsCorrect {
			correct = n + 1
		}
	}
	if correct == 0 {
		return question.Question{}, "no option marked correct"
	}

	q := question.Question{
		Text:        entry.Question,
		Correct:     correct,
		Explanation: synthesizeExplanation(opts, correct),
	}
	for n, opt := range opts {
		q.Options[n] = opt.Text
	}
	return q, ""
}

// synthesizeExplanation builds the explanation text from rationales: the
// correct option's rationale first, headed by its letter, then a section
// listing the remaining options' rationales.
func synthesizeExplanation(opts []ankiOption, correct int) string {
	var b strings.Builder
	lead := strings.TrimSpace(opts[correct-1].Rationale)
	if lead != "" {
		fmt.Fprintf(&b, "%s) %s", question.NumberToLetter(correct), lead)
	}

	var details []string
	for n, opt := range opts {
		if n+1 == correct {
			continue
		}
		r := strings.TrimSpace(opt.Rationale)
		if r == "" {
			continue
		}
		details = append(details, fmt.Sprintf("%s) %s", question.NumberToLetter(n+1), r))
	}
	if len(details) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("【各選択肢の解説】\n")
		b.WriteString(strings.Join(details, "\n"))
	}
	return b.String()
}
