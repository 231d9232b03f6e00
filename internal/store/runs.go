package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one finished exam session as recorded in history.
type Run struct {
	ID            string
	FinishedAt    time.Time
	Mode          string
	Total         int
	Answered      int
	Correct       int
	Percentage    float64
	Flagged       int
	DurationSecs  int
	TimeLimitMins int
}

// Summary aggregates run history for the history command.
type Summary struct {
	Runs           int
	QuestionsSeen  int
	CorrectTotal   int
	AvgPercentage  float64
	BestPercentage float64
}

// RunRepo manages exam run history.
type RunRepo interface {
	// Record stores a finished run. A missing ID is assigned.
	Record(ctx context.Context, run *Run) error

	// Recent returns the most recent runs, newest first.
	Recent(ctx context.Context, limit int) ([]Run, error)

	// Summarize aggregates all recorded runs.
	Summarize(ctx context.Context) (Summary, error)
}

type runRepo struct {
	db *sql.DB
}

func (r *runRepo) Record(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO runs (id, finished_at, mode, total, answered, correct,
			percentage, flagged, duration_secs, time_limit_mins)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.FinishedAt.UTC(), run.Mode, run.Total, run.Answered,
		run.Correct, run.Percentage, run.Flagged, run.DurationSecs,
		run.TimeLimitMins)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

func (r *runRepo) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, finished_at, mode, total, answered, correct,
			percentage, flagged, duration_secs, time_limit_mins
		FROM runs
		ORDER BY finished_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.FinishedAt, &run.Mode, &run.Total,
			&run.Answered, &run.Correct, &run.Percentage, &run.Flagged,
			&run.DurationSecs, &run.TimeLimitMins); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func (r *runRepo) Summarize(ctx context.Context) (Summary, error) {
	var s Summary
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(total), 0),
			COALESCE(SUM(correct), 0),
			COALESCE(AVG(percentage), 0),
			COALESCE(MAX(percentage), 0)
		FROM runs`).
		Scan(&s.Runs, &s.QuestionsSeen, &s.CorrectTotal, &s.AvgPercentage, &s.BestPercentage)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize runs: %w", err)
	}
	return s, nil
}
