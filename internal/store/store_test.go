package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestProgressLoadSave(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	// Absent key.
	_, ok, err := repo.Load(ctx, KeyMasteredSet)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if ok {
		t.Fatal("expected absent key")
	}

	// Write and read back.
	if err := repo.Save(ctx, KeyMasteredSet, []byte(`["020","0131"]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	v, ok, err := repo.Load(ctx, KeyMasteredSet)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok || string(v) != `["020","0131"]` {
		t.Fatalf("load = %q, %v", v, ok)
	}

	// Overwrite replaces.
	if err := repo.Save(ctx, KeyMasteredSet, []byte(`[]`)); err != nil {
		t.Fatalf("save (overwrite): %v", err)
	}
	v, _, _ = repo.Load(ctx, KeyMasteredSet)
	if string(v) != `[]` {
		t.Fatalf("after overwrite = %q", v)
	}

	// Delete.
	if err := repo.Delete(ctx, KeyMasteredSet); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.Load(ctx, KeyMasteredSet); ok {
		t.Fatal("expected key gone after delete")
	}
}

func TestHistoryAppendRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, correct := range []bool{true, false, true} {
		err := repo.Append(ctx, AnswerRecord{
			SessionID: "s1",
			Code:      "01865",
			Direction: "placeToCode",
			Given:     "1865",
			Correct:   correct,
			At:        base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	recs, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("recent len = %d, want 2", len(recs))
	}
	if !recs[0].Correct || recs[1].Correct {
		t.Errorf("recent order wrong: %+v", recs)
	}

	total, correct, err := repo.CountByCode(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total["01865"] != 3 || correct["01865"] != 2 {
		t.Errorf("counts = %d/%d, want 3/2", total["01865"], correct["01865"])
	}
}
