package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Keys for the durable progress values. Each holds one JSON-encoded value.
const (
	KeyMasteredSet      = "mastered-set"      // array of code strings
	KeyReviewSet        = "review-set"        // array of code strings
	KeyMistakeCount     = "mistake-count"     // number
	KeyDictionaryStatus = "dictionary-status" // object code -> 0/1/2
	KeyQuizDirection    = "quiz-direction"    // string enum
	KeyAutoAdvance      = "auto-advance"      // bool
	KeyShowMastered     = "show-mastered"     // bool
)

// ProgressRepo is the durable key-value mapping for learner progress.
// Values are opaque JSON; interpretation and defaults live with the caller.
type ProgressRepo interface {
	// Load returns the stored value for key. ok is false when the key
	// has never been written.
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Save stores value under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}

type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM progress WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (r *progressRepo) Save(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO progress (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (r *progressRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM progress WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
