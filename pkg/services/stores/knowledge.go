package stores

import (
	"context"
	"fmt"

	"github.com/spf13/cast"

	"github.com/enrapt/muninn/pkg/models/kb"
)

// Knowledge reads the retrieval corpus collection. A data row is
// (id, text, v0 .. vN-1); the collection is maintained out of band and
// never mutated here.
type Knowledge struct {
	rows RowStore
	name string
	dim  int
}

func NewKnowledge(rows RowStore, name string, dim int) *Knowledge {
	return &Knowledge{rows: rows, name: name, dim: dim}
}

// LoadAll read every corpus row, fresh on every call. Vector
// dimensionality is validated here so scoring never sees a short or
// oversized vector.
func (s *Knowledge) LoadAll(ctx context.Context) (data kb.Entries, err error) {
	ok, err := s.rows.HasCollection(ctx, s.name)
	if err != nil {
		return
	}
	if !ok {
		return nil, fmt.Errorf("knowledge corpus %q not found", s.name)
	}
	rows, err := s.rows.ScanRows(ctx, s.name)
	if err != nil {
		return
	}
	for i, row := range rows {
		if len(row) < 2 || len(row[1]) == 0 {
			continue
		}
		vec := make(kb.Vector, 0, len(row)-2)
		for ci, cell := range row[2:] {
			f, err := cast.ToFloat64E(cell)
			if err != nil {
				return nil, fmt.Errorf("corpus %q row %d col %d: %w", s.name, i+2, ci+3, err)
			}
			vec = append(vec, float32(f))
		}
		if len(vec) != s.dim {
			return nil, fmt.Errorf("corpus %q row %d: vector length %d, want %d", s.name, i+2, len(vec), s.dim)
		}
		data = append(data, kb.Entry{Text: row[1], Vector: vec})
	}
	return
}
