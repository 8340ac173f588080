package stores

import (
	"context"
	"fmt"
	"sync"
)

// NewMemoryRows return an in-process RowStore, mainly for tests and
// redis-less runs.
func NewMemoryRows() RowStore {
	return &memoryRows{data: make(map[string][][]string)}
}

type memoryRows struct {
	mu   sync.Mutex
	data map[string][][]string // rows[0] is the header
}

func (s *memoryRows) HasCollection(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[name]
	return ok, nil
}

func (s *memoryRows) GetOrCreateCollection(ctx context.Context, name string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[name]; !ok {
		s.data[name] = [][]string{append([]string(nil), header...)}
	}
	return nil
}

func (s *memoryRows) AppendRow(ctx context.Context, name string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[name]; !ok {
		return fmt.Errorf("collection %q not found", name)
	}
	s.data[name] = append(s.data[name], append([]string(nil), row...))
	return nil
}

func (s *memoryRows) ScanRows(ctx context.Context, name string) (rows [][]string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, ok := s.data[name]
	if !ok {
		return
	}
	for _, row := range all[1:] {
		rows = append(rows, append([]string(nil), row...))
	}
	return
}

func (s *memoryRows) ClearRows(ctx context.Context, name string, indexes []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, ok := s.data[name]
	if !ok {
		return fmt.Errorf("collection %q not found", name)
	}
	for _, idx := range indexes {
		pos := idx + 1
		if pos < 1 || pos >= len(all) {
			return fmt.Errorf("collection %q: row %d out of range", name, idx)
		}
		all[pos] = make([]string, len(all[pos]))
	}
	return nil
}
