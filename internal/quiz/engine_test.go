package quiz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joncalder/dialmap/internal/catalog"
	"github.com/joncalder/dialmap/internal/progress"
	"github.com/joncalder/dialmap/internal/store"
)

var testEntries = []catalog.Entry{
	{Code: "01223", Place: "Cambridge", Lat: 52.2053, Lon: 0.1218},
	{Code: "020", Place: "London", Lat: 51.5074, Lon: -0.1278},
	{Code: "0161", Place: "Manchester", Lat: 53.4808, Lon: -2.2426},
}

func newEngine(t *testing.T) (*Engine, *progress.Tracker) {
	t.Helper()
	tr, err := progress.Load(context.Background(), store.NewMemoryProgressRepo())
	require.NoError(t, err)
	return New(testEntries, tr, store.NewMemoryHistoryRepo()), tr
}

func TestEvaluate(t *testing.T) {
	q := catalog.Entry{Code: "01234", Place: "Testtown"}

	tests := []struct {
		name  string
		input string
		dir   progress.Direction
		want  bool
	}{
		{"exact code", "01234", progress.PlaceToCode, true},
		{"missing leading zero", "1234", progress.PlaceToCode, true},
		{"code with spaces", " 0 1234 ", progress.PlaceToCode, true},
		{"wrong code", "01235", progress.PlaceToCode, false},
		{"full place", "Testtown", progress.CodeToPlace, true},
		{"place substring", "test", progress.CodeToPlace, true},
		{"place case and spaces", " TEST Town ", progress.CodeToPlace, true},
		{"wrong place", "wrongplace", progress.CodeToPlace, false},
		{"empty input", "   ", progress.CodeToPlace, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(q, tt.input, tt.dir))
		})
	}
}

func TestSubmitCorrectMasters(t *testing.T) {
	eng, tr := newEngine(t)
	ctx := context.Background()

	eng.Choose(testEntries[0]) // Cambridge, 01223
	out := eng.Submit(ctx, "1223")

	require.True(t, out.Evaluated)
	assert.True(t, out.Correct)
	assert.True(t, tr.IsMastered("01223"))
	assert.Equal(t, 0, tr.Mistakes())
	// Mastered question is done; next selection draws fresh.
	assert.Nil(t, eng.Current())
}

func TestSubmitIncorrectKeepsQuestionActive(t *testing.T) {
	eng, tr := newEngine(t)
	ctx := context.Background()

	require.NoError(t, tr.SetDirection(ctx, progress.CodeToPlace))
	eng.Choose(testEntries[1]) // London, 020
	out := eng.Submit(ctx, "wrongplace")

	require.True(t, out.Evaluated)
	assert.False(t, out.Correct)
	assert.Equal(t, 1, tr.Mistakes())
	assert.True(t, tr.InReview("020"))
	assert.False(t, tr.IsMastered("020"))

	// Same question stays active for the retry.
	cur := eng.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "020", cur.Code)

	// Retry succeeds.
	out = eng.Submit(ctx, "london")
	assert.True(t, out.Correct)
	assert.True(t, tr.IsMastered("020"))
	// A prior mistake doesn't remove the code from review.
	assert.True(t, tr.InReview("020"))
}

func TestSubmitWithoutQuestionIsNoOp(t *testing.T) {
	eng, tr := newEngine(t)

	out := eng.Submit(context.Background(), "020")
	assert.False(t, out.Evaluated)
	assert.Equal(t, 0, tr.Mistakes())
}

func TestRevealCountsAsFailure(t *testing.T) {
	eng, tr := newEngine(t)
	ctx := context.Background()

	eng.Choose(testEntries[2]) // Manchester, 0161
	text, ok := eng.Reveal(ctx)

	require.True(t, ok)
	assert.Equal(t, "0161", text) // placeToCode reveals the code
	assert.Equal(t, 1, tr.Mistakes())
	assert.True(t, tr.InReview("0161"))
	assert.False(t, tr.IsMastered("0161"))

	// Question remains active.
	require.NotNil(t, eng.Current())

	require.NoError(t, tr.SetDirection(ctx, progress.CodeToPlace))
	text, ok = eng.Reveal(ctx)
	require.True(t, ok)
	assert.Equal(t, "Manchester", text)
}

func TestRevealWithoutQuestionIsNoOp(t *testing.T) {
	eng, _ := newEngine(t)
	_, ok := eng.Reveal(context.Background())
	assert.False(t, ok)
}

func TestNextSkipsMastered(t *testing.T) {
	eng, tr := newEngine(t)
	ctx := context.Background()

	require.NoError(t, tr.MarkMastered(ctx, "020"))
	require.NoError(t, tr.MarkMastered(ctx, "0161"))

	for i := 0; i < 10; i++ {
		next := eng.Next(ctx)
		require.NotNil(t, next)
		assert.Equal(t, "01223", next.Code)
	}
	assert.Equal(t, 1, eng.Pending())
}

func TestNextAllMasteredReturnsNil(t *testing.T) {
	eng, tr := newEngine(t)
	ctx := context.Background()

	for _, e := range testEntries {
		require.NoError(t, tr.MarkMastered(ctx, e.Code))
	}
	assert.Nil(t, eng.Next(ctx))
	assert.Equal(t, 0, eng.Pending())
}

func TestResetClearsQuizOnly(t *testing.T) {
	eng, tr := newEngine(t)
	ctx := context.Background()

	tr.MarkMastered(ctx, "020")
	tr.RecordMiss(ctx, "0161")
	tr.CycleStatus(ctx, "01223")

	next, err := eng.Reset(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)

	assert.Equal(t, 0, tr.MasteredCount())
	assert.Equal(t, 0, tr.ReviewCount())
	assert.Equal(t, 0, tr.Mistakes())
	assert.Equal(t, progress.StatusLearning, tr.StatusOf("01223"))
	assert.Equal(t, len(testEntries), eng.Pending())
}

func TestHints(t *testing.T) {
	eng, tr := newEngine(t)
	ctx := context.Background()

	tr.MarkMastered(ctx, "020")
	tr.RecordMiss(ctx, "0161")
	tr.CycleStatus(ctx, "0161")
	eng.Choose(testEntries[2]) // 0161

	h := eng.Hint(testEntries[2])
	assert.False(t, h.Mastered)
	assert.True(t, h.Review)
	assert.True(t, h.Current)
	assert.Equal(t, progress.StatusLearning, h.Status)

	h = eng.Hint(testEntries[1]) // 020
	assert.True(t, h.Mastered)
	assert.False(t, h.Current)
}

func TestAnswerHistoryLogged(t *testing.T) {
	tr, err := progress.Load(context.Background(), store.NewMemoryProgressRepo())
	require.NoError(t, err)
	hist := store.NewMemoryHistoryRepo()
	eng := New(testEntries, tr, hist)
	ctx := context.Background()

	eng.Choose(testEntries[0])
	eng.Submit(ctx, "9999")
	eng.Reveal(ctx)
	eng.Submit(ctx, "01223")

	recs, err := hist.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.True(t, recs[0].Correct)
	assert.True(t, recs[1].Revealed)
	assert.False(t, recs[2].Correct)
}
