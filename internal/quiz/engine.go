package quiz

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/joncalder/dialmap/internal/catalog"
	"github.com/joncalder/dialmap/internal/progress"
	"github.com/joncalder/dialmap/internal/store"
)

// Engine selects questions, evaluates answers, and updates mastery state.
// All mutations run to completion, including their store write-through,
// before the next is accepted.
type Engine struct {
	mu        sync.Mutex
	entries   []catalog.Entry
	prog      *progress.Tracker
	history   store.HistoryRepo
	sessionID string
	current   *catalog.Entry
}

// Outcome is the result of submitting an answer.
type Outcome struct {
	// Evaluated is false when the submission was ignored: no active
	// question, or an empty answer.
	Evaluated bool
	Correct   bool
	Entry     catalog.Entry
}

// RenderHint carries everything the view needs to color an entry without
// re-deriving business rules.
type RenderHint struct {
	Mastered bool
	Review   bool
	Current  bool
	Status   progress.Status
}

// New creates an engine over the catalog. history may be nil; answer
// logging is best effort and never blocks the quiz.
func New(entries []catalog.Entry, prog *progress.Tracker, history store.HistoryRepo) *Engine {
	return &Engine{
		entries:   entries,
		prog:      prog,
		history:   history,
		sessionID: uuid.New().String(),
	}
}

// Next picks a uniformly random unmastered entry as the new current
// question and returns it. Returns nil when every code is mastered, the
// terminal steady state. Callers should treat a non-nil result as a
// request to focus the map on it with animation.
func (e *Engine) Next(_ context.Context) *catalog.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	var pending []catalog.Entry
	for _, entry := range e.entries {
		if !e.prog.IsMastered(entry.Code) {
			pending = append(pending, entry)
		}
	}
	if len(pending) == 0 {
		e.current = nil
		return nil
	}

	picked := pending[rand.IntN(len(pending))]
	e.current = &picked
	return &picked
}

// Choose makes entry the current question directly (the learner clicked a
// marker). Unlike Next, this requests no camera animation.
func (e *Engine) Choose(entry catalog.Entry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = &entry
}

// Current returns the active question, or nil when none is active.
func (e *Engine) Current() *catalog.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil
	}
	c := *e.current
	return &c
}

// Submit evaluates raw against the current question under the persisted
// direction. Correct answers join the mastered set and clear the current
// question; incorrect ones bump the mistake counter, join the review set,
// and leave the question active for a retry. With no active question or an
// empty answer the submission is ignored.
func (e *Engine) Submit(ctx context.Context, raw string) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil || normalize(raw) == "" {
		return Outcome{}
	}

	q := *e.current
	dir := e.prog.Direction()
	correct := Evaluate(q, raw, dir)

	if correct {
		_ = e.prog.MarkMastered(ctx, q.Code)
		e.current = nil
	} else {
		_ = e.prog.RecordMiss(ctx, q.Code)
	}
	e.logAnswer(ctx, q, dir, raw, correct, false)

	return Outcome{Evaluated: true, Correct: correct, Entry: q}
}

// Reveal gives up on the current question. It counts as a failure for
// progress tracking and returns the expected answer text. The question
// stays active and mastery is unchanged.
func (e *Engine) Reveal(ctx context.Context) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return "", false
	}

	q := *e.current
	dir := e.prog.Direction()
	_ = e.prog.RecordMiss(ctx, q.Code)
	e.logAnswer(ctx, q, dir, "", false, true)

	if dir == progress.PlaceToCode {
		return q.Code, true
	}
	return q.Place, true
}

// Reset irreversibly clears quiz mastery, review, and mistakes, then
// selects a fresh question. Dictionary statuses survive. Confirmation is
// the caller's responsibility.
func (e *Engine) Reset(ctx context.Context) (*catalog.Entry, error) {
	if err := e.prog.ResetQuiz(ctx); err != nil {
		return nil, err
	}
	return e.Next(ctx), nil
}

// Pending returns how many catalog entries are not yet mastered.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, entry := range e.entries {
		if !e.prog.IsMastered(entry.Code) {
			n++
		}
	}
	return n
}

// Hint returns the render state for one entry.
func (e *Engine) Hint(entry catalog.Entry) RenderHint {
	e.mu.Lock()
	current := e.current != nil && e.current.Code == entry.Code
	e.mu.Unlock()

	return RenderHint{
		Mastered: e.prog.IsMastered(entry.Code),
		Review:   e.prog.InReview(entry.Code),
		Current:  current,
		Status:   e.prog.StatusOf(entry.Code),
	}
}

func (e *Engine) logAnswer(ctx context.Context, q catalog.Entry, dir progress.Direction, given string, correct, revealed bool) {
	if e.history == nil {
		return
	}
	_ = e.history.Append(ctx, store.AnswerRecord{
		SessionID: e.sessionID,
		Code:      q.Code,
		Direction: string(dir),
		Given:     given,
		Correct:   correct,
		Revealed:  revealed,
		At:        time.Now(),
	})
}

// Evaluate applies the lenient matching rules. placeToCode compares the
// normalized input against the code, prepending the leading zero when the
// learner omits it; codeToPlace accepts any substring of the place name.
// The asymmetry is deliberate: place names admit abbreviation, codes don't.
func Evaluate(q catalog.Entry, raw string, dir progress.Direction) bool {
	input := normalize(raw)
	if input == "" {
		return false
	}

	if dir == progress.PlaceToCode {
		if !strings.HasPrefix(input, "0") {
			input = "0" + input
		}
		return input == normalize(q.Code)
	}
	return strings.Contains(normalize(q.Place), input)
}

// normalize strips all whitespace and lowercases.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
