package progress

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/joncalder/dialmap/internal/store"
)

// Direction selects what the learner is asked to produce.
type Direction string

const (
	// PlaceToCode shows a place name and asks for its dialling code.
	PlaceToCode Direction = "placeToCode"
	// CodeToPlace shows a dialling code and asks for the place name.
	CodeToPlace Direction = "codeToPlace"
)

// Status is the manual three-state dictionary study tag. It is fully
// independent of quiz mastery.
type Status int

const (
	StatusNew Status = iota
	StatusLearning
	StatusDone
)

// Next advances the status through its cycle: New → Learning → Done → New.
func (s Status) Next() Status {
	return (s + 1) % 3
}

// Label returns the display name for the status.
func (s Status) Label() string {
	switch s {
	case StatusLearning:
		return "Learning"
	case StatusDone:
		return "Done"
	default:
		return "New"
	}
}

// Tracker holds all durable learner state and writes every mutation
// straight through to the progress repo. Mutations are serialized behind
// one mutex so quiz operations never interleave.
type Tracker struct {
	mu   sync.Mutex
	repo store.ProgressRepo

	mastered     map[string]bool
	review       map[string]bool
	mistakes     int
	statuses     map[string]Status
	direction    Direction
	autoAdvance  bool
	showMastered bool
}

// Load reads all persisted state from repo. Absent or corrupt values fall
// back to defaults: empty sets, zero mistakes, placeToCode, auto-advance
// and show-mastered on. A fresh session beats surfacing a storage error.
func Load(ctx context.Context, repo store.ProgressRepo) (*Tracker, error) {
	t := &Tracker{
		repo:         repo,
		mastered:     make(map[string]bool),
		review:       make(map[string]bool),
		statuses:     make(map[string]Status),
		direction:    PlaceToCode,
		autoAdvance:  true,
		showMastered: true,
	}

	var codes []string
	if loadJSON(ctx, repo, store.KeyMasteredSet, &codes) {
		for _, c := range codes {
			t.mastered[c] = true
		}
	}
	codes = nil
	if loadJSON(ctx, repo, store.KeyReviewSet, &codes) {
		for _, c := range codes {
			t.review[c] = true
		}
	}

	var n int
	if loadJSON(ctx, repo, store.KeyMistakeCount, &n) && n >= 0 {
		t.mistakes = n
	}

	var statuses map[string]int
	if loadJSON(ctx, repo, store.KeyDictionaryStatus, &statuses) {
		for code, v := range statuses {
			if v >= 0 && v <= 2 {
				t.statuses[code] = Status(v)
			}
		}
	}

	var dir string
	if loadJSON(ctx, repo, store.KeyQuizDirection, &dir) {
		if d := Direction(dir); d == PlaceToCode || d == CodeToPlace {
			t.direction = d
		}
	}

	var b bool
	if loadJSON(ctx, repo, store.KeyAutoAdvance, &b) {
		t.autoAdvance = b
	}
	if loadJSON(ctx, repo, store.KeyShowMastered, &b) {
		t.showMastered = b
	}

	return t, nil
}

// loadJSON reads and decodes one key. Missing keys and corrupt values both
// report false so the caller keeps its default.
func loadJSON(ctx context.Context, repo store.ProgressRepo, key string, v any) bool {
	raw, ok, err := repo.Load(ctx, key)
	if err != nil || !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// IsMastered reports whether code has been answered correctly at least once.
func (t *Tracker) IsMastered(code string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mastered[code]
}

// MasteredCount returns the size of the mastered set.
func (t *Tracker) MasteredCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.mastered)
}

// MarkMastered adds code to the mastered set. Idempotent: re-adding a
// mastered code changes nothing and writes nothing.
func (t *Tracker) MarkMastered(ctx context.Context, code string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.mastered[code] {
		return nil
	}
	t.mastered[code] = true
	return t.saveSet(ctx, store.KeyMasteredSet, t.mastered)
}

// InReview reports whether code has ever been missed or revealed.
func (t *Tracker) InReview(code string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.review[code]
}

// ReviewCount returns the size of the review set.
func (t *Tracker) ReviewCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.review)
}

// RecordMiss counts one failure against code: the mistake counter goes up
// by one and code joins the review set (idempotently).
func (t *Tracker) RecordMiss(ctx context.Context, code string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.mistakes++
	if err := t.saveJSON(ctx, store.KeyMistakeCount, t.mistakes); err != nil {
		return err
	}
	if t.review[code] {
		return nil
	}
	t.review[code] = true
	return t.saveSet(ctx, store.KeyReviewSet, t.review)
}

// Mistakes returns the total number of incorrect submissions and reveals.
func (t *Tracker) Mistakes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mistakes
}

// StatusOf returns the dictionary status for code, StatusNew by default.
func (t *Tracker) StatusOf(code string) Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statuses[code]
}

// CycleStatus advances the dictionary status for code by one step.
// It never touches mastery, review, or the mistake counter.
func (t *Tracker) CycleStatus(ctx context.Context, code string) (Status, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.statuses[code].Next()
	if next == StatusNew {
		delete(t.statuses, code)
	} else {
		t.statuses[code] = next
	}

	out := make(map[string]int, len(t.statuses))
	for c, s := range t.statuses {
		out[c] = int(s)
	}
	return next, t.saveJSON(ctx, store.KeyDictionaryStatus, out)
}

// Direction returns the persisted quiz direction.
func (t *Tracker) Direction() Direction {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.direction
}

// SetDirection persists a new quiz direction.
func (t *Tracker) SetDirection(ctx context.Context, d Direction) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.direction = d
	return t.saveJSON(ctx, store.KeyQuizDirection, string(d))
}

// AutoAdvance returns the persisted auto-advance setting.
func (t *Tracker) AutoAdvance() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.autoAdvance
}

// SetAutoAdvance persists the auto-advance setting.
func (t *Tracker) SetAutoAdvance(ctx context.Context, on bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.autoAdvance = on
	return t.saveJSON(ctx, store.KeyAutoAdvance, on)
}

// ShowMastered returns the persisted show-mastered setting.
func (t *Tracker) ShowMastered() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.showMastered
}

// SetShowMastered persists the show-mastered setting.
func (t *Tracker) SetShowMastered(ctx context.Context, on bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.showMastered = on
	return t.saveJSON(ctx, store.KeyShowMastered, on)
}

// ResetQuiz clears the mastered set, review set, and mistake counter.
// Dictionary statuses and settings are untouched; resetting quiz mastery
// must never lose dictionary study progress. Destructive: callers confirm
// with the learner before calling.
func (t *Tracker) ResetQuiz(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.mastered = make(map[string]bool)
	t.review = make(map[string]bool)
	t.mistakes = 0

	if err := t.saveSet(ctx, store.KeyMasteredSet, t.mastered); err != nil {
		return err
	}
	if err := t.saveSet(ctx, store.KeyReviewSet, t.review); err != nil {
		return err
	}
	return t.saveJSON(ctx, store.KeyMistakeCount, 0)
}

// saveSet persists a code set as a sorted JSON array. Caller holds the lock.
func (t *Tracker) saveSet(ctx context.Context, key string, set map[string]bool) error {
	codes := make([]string, 0, len(set))
	for c := range set {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return t.saveJSON(ctx, key, codes)
}

// saveJSON persists one value under key. Caller holds the lock.
func (t *Tracker) saveJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return t.repo.Save(ctx, key, raw)
}
