package dictionary

import (
	"context"
	"strings"

	"github.com/joncalder/dialmap/internal/catalog"
	"github.com/joncalder/dialmap/internal/progress"
)

// Tracker is the browsable dictionary over the catalog: filtering plus the
// manual three-state study tag per entry. It shares the catalog with the
// quiz engine but none of its logic; status changes never touch mastery.
type Tracker struct {
	entries []catalog.Entry
	prog    *progress.Tracker
}

// New creates a dictionary tracker over the catalog.
func New(entries []catalog.Entry, prog *progress.Tracker) *Tracker {
	return &Tracker{entries: entries, prog: prog}
}

// CycleStatus advances the study tag for code: New → Learning → Done → New.
func (t *Tracker) CycleStatus(ctx context.Context, code string) (progress.Status, error) {
	return t.prog.CycleStatus(ctx, code)
}

// StatusOf returns the study tag for code.
func (t *Tracker) StatusOf(code string) progress.Status {
	return t.prog.StatusOf(code)
}

// Filter returns the entries matching query: a case-insensitive substring
// of the place name, or the query's digits as a substring of the code.
// An empty query matches everything. Recomputed per call, nothing cached.
func (t *Tracker) Filter(query string) []catalog.Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]catalog.Entry, len(t.entries))
		copy(out, t.entries)
		return out
	}

	lower := strings.ToLower(query)
	digits := digitsOf(query)

	var out []catalog.Entry
	for _, e := range t.entries {
		if strings.Contains(strings.ToLower(e.Place), lower) {
			out = append(out, e)
			continue
		}
		if digits != "" && strings.Contains(e.Code, digits) {
			out = append(out, e)
		}
	}
	return out
}

// Entries returns the full catalog in place-name order.
func (t *Tracker) Entries() []catalog.Entry {
	return t.entries
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
