package store

import (
	"context"
	"sync"
)

// MemoryProgressRepo is an in-memory ProgressRepo for tests and for
// running without a database file.
type MemoryProgressRepo struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryProgressRepo creates an empty in-memory progress repo.
func NewMemoryProgressRepo() *MemoryProgressRepo {
	return &MemoryProgressRepo{values: make(map[string][]byte)}
}

func (m *MemoryProgressRepo) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryProgressRepo) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}

func (m *MemoryProgressRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// MemoryHistoryRepo is an in-memory HistoryRepo for tests.
type MemoryHistoryRepo struct {
	mu   sync.Mutex
	recs []AnswerRecord
}

// NewMemoryHistoryRepo creates an empty in-memory history repo.
func NewMemoryHistoryRepo() *MemoryHistoryRepo {
	return &MemoryHistoryRepo{}
}

func (m *MemoryHistoryRepo) Append(_ context.Context, rec AnswerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	return nil
}

func (m *MemoryHistoryRepo) Recent(_ context.Context, limit int) ([]AnswerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []AnswerRecord
	for i := len(m.recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.recs[i])
	}
	return out, nil
}

func (m *MemoryHistoryRepo) CountByCode(_ context.Context) (map[string]int, map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := make(map[string]int)
	correct := make(map[string]int)
	for _, rec := range m.recs {
		total[rec.Code]++
		if rec.Correct {
			correct[rec.Code]++
		}
	}
	return total, correct, nil
}
