package dictionary

import (
	"context"
	"testing"

	"github.com/joncalder/dialmap/internal/catalog"
	"github.com/joncalder/dialmap/internal/progress"
	"github.com/joncalder/dialmap/internal/store"
)

var testEntries = []catalog.Entry{
	{Code: "01223", Place: "Cambridge"},
	{Code: "029", Place: "Cardiff"},
	{Code: "020", Place: "London"},
	{Code: "0161", Place: "Manchester"},
}

func newTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, err := progress.Load(context.Background(), store.NewMemoryProgressRepo())
	if err != nil {
		t.Fatalf("load progress: %v", err)
	}
	return New(testEntries, tr)
}

func codes(entries []catalog.Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Code)
	}
	return out
}

func TestFilterByPlace(t *testing.T) {
	tr := newTracker(t)

	got := tr.Filter("car")
	if len(got) != 1 || got[0].Place != "Cardiff" {
		t.Fatalf("Filter(car) = %v", codes(got))
	}

	// Case-varied query returns the same result set as the canonical form.
	upper := tr.Filter("CAR")
	if len(upper) != 1 || upper[0].Code != got[0].Code {
		t.Errorf("Filter(CAR) = %v, want same as Filter(car)", codes(upper))
	}
}

func TestFilterByCodeDigits(t *testing.T) {
	tr := newTracker(t)

	got := tr.Filter("161")
	if len(got) != 1 || got[0].Code != "0161" {
		t.Fatalf("Filter(161) = %v", codes(got))
	}

	// Whitespace in the query doesn't change the digit match.
	spaced := tr.Filter("1 6 1")
	if len(spaced) != 1 || spaced[0].Code != "0161" {
		t.Errorf("Filter(1 6 1) = %v, want [0161]", codes(spaced))
	}
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	tr := newTracker(t)
	if got := tr.Filter("  "); len(got) != len(testEntries) {
		t.Errorf("Filter(empty) len = %d, want %d", len(got), len(testEntries))
	}
}

func TestFilterNoMatch(t *testing.T) {
	tr := newTracker(t)
	if got := tr.Filter("zzz"); len(got) != 0 {
		t.Errorf("Filter(zzz) = %v, want none", codes(got))
	}
}

func TestCycleStatusIndependentOfQuiz(t *testing.T) {
	ctx := context.Background()
	prog, err := progress.Load(ctx, store.NewMemoryProgressRepo())
	if err != nil {
		t.Fatalf("load progress: %v", err)
	}
	tr := New(testEntries, prog)

	s, err := tr.CycleStatus(ctx, "020")
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if s != progress.StatusLearning {
		t.Errorf("status = %v, want Learning", s)
	}

	// Cycling never touches quiz state.
	if prog.Mistakes() != 0 || prog.MasteredCount() != 0 || prog.ReviewCount() != 0 {
		t.Error("cycle status leaked into quiz state")
	}
}
