package job

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

// MemoryStore keeps postings in insertion order. Ids are decimal sequence
// numbers.
type MemoryStore struct {
	mu    sync.RWMutex
	seq   uint64
	items []Posting
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Find(ctx context.Context, f Filter, p Page) ([]Posting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name := strings.ToLower(f.CompanyName)
	out := []Posting{}
	skipped := 0
	for _, it := range m.items {
		if f.SalaryMin != nil && it.Salary < *f.SalaryMin {
			continue
		}
		if f.SalaryMax != nil && it.Salary > *f.SalaryMax {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(it.CompanyName), name) {
			continue
		}
		if skipped < p.Offset {
			skipped++
			continue
		}
		if p.Limit > 0 && len(out) >= p.Limit {
			break
		}
		out = append(out, clone(it))
	}
	return out, nil
}

func (m *MemoryStore) FindOne(ctx context.Context, id string) (Posting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.index(id)
	if i < 0 {
		return Posting{}, ErrNotFound
	}
	return clone(m.items[i]), nil
}

func (m *MemoryStore) InsertOne(ctx context.Context, p *Posting) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	p.ID = strconv.FormatUint(m.seq, 10)
	if p.Skills == nil {
		p.Skills = []string{}
	}
	m.items = append(m.items, clone(*p))
	return nil
}

func (m *MemoryStore) UpdateOne(ctx context.Context, id string, f Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return ErrNotFound
	}
	f.apply(&m.items[i])
	return nil
}

func (m *MemoryStore) DeleteOne(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return ErrNotFound
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

// index must be called with mu held.
func (m *MemoryStore) index(id string) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(p Posting) Posting {
	p.Skills = append([]string{}, p.Skills...)
	return p
}
