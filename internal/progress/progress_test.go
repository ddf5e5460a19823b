package progress

import (
	"context"
	"testing"

	"github.com/joncalder/dialmap/internal/store"
)

func newTracker(t *testing.T) (*Tracker, *store.MemoryProgressRepo) {
	t.Helper()
	repo := store.NewMemoryProgressRepo()
	tr, err := Load(context.Background(), repo)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return tr, repo
}

func TestDefaults(t *testing.T) {
	tr, _ := newTracker(t)

	if tr.MasteredCount() != 0 || tr.ReviewCount() != 0 || tr.Mistakes() != 0 {
		t.Error("expected empty progress")
	}
	if tr.Direction() != PlaceToCode {
		t.Errorf("direction = %s, want placeToCode", tr.Direction())
	}
	if !tr.AutoAdvance() || !tr.ShowMastered() {
		t.Error("expected auto-advance and show-mastered on by default")
	}
	if tr.StatusOf("020") != StatusNew {
		t.Error("expected StatusNew for unseen code")
	}
}

func TestWriteThroughAndReload(t *testing.T) {
	tr, repo := newTracker(t)
	ctx := context.Background()

	if err := tr.MarkMastered(ctx, "0131"); err != nil {
		t.Fatalf("mark mastered: %v", err)
	}
	if err := tr.RecordMiss(ctx, "020"); err != nil {
		t.Fatalf("record miss: %v", err)
	}
	if _, err := tr.CycleStatus(ctx, "029"); err != nil {
		t.Fatalf("cycle status: %v", err)
	}
	if err := tr.SetDirection(ctx, CodeToPlace); err != nil {
		t.Fatalf("set direction: %v", err)
	}
	if err := tr.SetAutoAdvance(ctx, false); err != nil {
		t.Fatalf("set auto-advance: %v", err)
	}

	// A fresh tracker over the same repo sees everything.
	tr2, err := Load(ctx, repo)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !tr2.IsMastered("0131") {
		t.Error("mastered set not persisted")
	}
	if !tr2.InReview("020") || tr2.Mistakes() != 1 {
		t.Error("miss not persisted")
	}
	if tr2.StatusOf("029") != StatusLearning {
		t.Errorf("status = %v, want Learning", tr2.StatusOf("029"))
	}
	if tr2.Direction() != CodeToPlace || tr2.AutoAdvance() {
		t.Error("settings not persisted")
	}
}

func TestIdempotentAdds(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := tr.MarkMastered(ctx, "0131"); err != nil {
			t.Fatalf("mark mastered: %v", err)
		}
	}
	if tr.MasteredCount() != 1 {
		t.Errorf("mastered count = %d, want 1", tr.MasteredCount())
	}

	// Review membership is idempotent; the mistake counter is not.
	tr.RecordMiss(ctx, "020")
	tr.RecordMiss(ctx, "020")
	if tr.ReviewCount() != 1 {
		t.Errorf("review count = %d, want 1", tr.ReviewCount())
	}
	if tr.Mistakes() != 2 {
		t.Errorf("mistakes = %d, want 2", tr.Mistakes())
	}
}

func TestCycleStatusWrapsAround(t *testing.T) {
	tr, _ := newTracker(t)
	ctx := context.Background()

	want := []Status{StatusLearning, StatusDone, StatusNew}
	for i, w := range want {
		got, err := tr.CycleStatus(ctx, "01865")
		if err != nil {
			t.Fatalf("cycle %d: %v", i, err)
		}
		if got != w {
			t.Errorf("cycle %d = %v, want %v", i, got, w)
		}
	}
	if tr.StatusOf("01865") != StatusNew {
		t.Error("three cycles should return to StatusNew")
	}
}

func TestResetQuizKeepsDictionary(t *testing.T) {
	tr, repo := newTracker(t)
	ctx := context.Background()

	tr.MarkMastered(ctx, "0131")
	tr.RecordMiss(ctx, "020")
	tr.CycleStatus(ctx, "029")
	tr.CycleStatus(ctx, "029")

	if err := tr.ResetQuiz(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if tr.MasteredCount() != 0 || tr.ReviewCount() != 0 || tr.Mistakes() != 0 {
		t.Error("quiz progress not cleared")
	}
	if tr.StatusOf("029") != StatusDone {
		t.Error("reset must not touch dictionary status")
	}

	// The clear survives a reload.
	tr2, _ := Load(ctx, repo)
	if tr2.MasteredCount() != 0 || tr2.Mistakes() != 0 {
		t.Error("reset not persisted")
	}
	if tr2.StatusOf("029") != StatusDone {
		t.Error("dictionary status lost across reset+reload")
	}
}

func TestCorruptValuesFallBackToDefaults(t *testing.T) {
	repo := store.NewMemoryProgressRepo()
	ctx := context.Background()
	repo.Save(ctx, store.KeyMasteredSet, []byte(`{not json`))
	repo.Save(ctx, store.KeyMistakeCount, []byte(`"many"`))
	repo.Save(ctx, store.KeyQuizDirection, []byte(`"sideways"`))
	repo.Save(ctx, store.KeyDictionaryStatus, []byte(`{"020": 9}`))

	tr, err := Load(ctx, repo)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tr.MasteredCount() != 0 {
		t.Error("corrupt mastered set should read as empty")
	}
	if tr.Mistakes() != 0 {
		t.Error("corrupt mistake count should read as zero")
	}
	if tr.Direction() != PlaceToCode {
		t.Error("unknown direction should fall back to placeToCode")
	}
	if tr.StatusOf("020") != StatusNew {
		t.Error("out-of-range status should read as New")
	}
}
