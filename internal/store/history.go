package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AnswerRecord is one submitted answer or reveal, kept for the stats view.
type AnswerRecord struct {
	SessionID string
	Code      string
	Direction string
	Given     string
	Correct   bool
	Revealed  bool
	At        time.Time
}

// HistoryRepo provides append and query access to the answer history.
type HistoryRepo interface {
	// Append records one answer. Best effort from the caller's side;
	// the quiz never blocks on history writes failing.
	Append(ctx context.Context, rec AnswerRecord) error

	// Recent returns the most recent records, newest first.
	Recent(ctx context.Context, limit int) ([]AnswerRecord, error)

	// CountByCode returns total and correct submission counts per code.
	CountByCode(ctx context.Context) (total, correct map[string]int, err error)
}

type historyRepo struct {
	db *sql.DB
}

func (r *historyRepo) Append(ctx context.Context, rec AnswerRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO answers (session_id, code, direction, given, correct, revealed, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Code, rec.Direction, rec.Given,
		boolToInt(rec.Correct), boolToInt(rec.Revealed), rec.At.UTC())
	if err != nil {
		return fmt.Errorf("append answer: %w", err)
	}
	return nil
}

func (r *historyRepo) Recent(ctx context.Context, limit int) ([]AnswerRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, code, direction, given, correct, revealed, at
		 FROM answers ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var recs []AnswerRecord
	for rows.Next() {
		var rec AnswerRecord
		var correct, revealed int
		if err := rows.Scan(&rec.SessionID, &rec.Code, &rec.Direction,
			&rec.Given, &correct, &revealed, &rec.At); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		rec.Correct = correct != 0
		rec.Revealed = revealed != 0
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *historyRepo) CountByCode(ctx context.Context) (map[string]int, map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT code, COUNT(*), SUM(correct) FROM answers GROUP BY code`)
	if err != nil {
		return nil, nil, fmt.Errorf("count answers: %w", err)
	}
	defer rows.Close()

	total := make(map[string]int)
	correct := make(map[string]int)
	for rows.Next() {
		var code string
		var n, c int
		if err := rows.Scan(&code, &n, &c); err != nil {
			return nil, nil, fmt.Errorf("scan count: %w", err)
		}
		total[code] = n
		correct[code] = c
	}
	return total, correct, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
