package stores

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/enrapt/muninn/pkg/models/kb"
)

// TextEmbedder is the embedding capability the importer needs.
type TextEmbedder interface {
	Embed(ctx context.Context, text string) (kb.Vector, error)
}

var corpusHeads = []string{"id", "text"}

func validCorpusHead(rec []string) bool {
	return len(rec) >= len(corpusHeads) && rec[0] == corpusHeads[0] && rec[1] == corpusHeads[1]
}

// ImportCorpusCSV reads (id, text) records, embeds each text and appends
// the resulting corpus rows. The corpus collection is created when absent.
func (s *Knowledge) ImportCorpusCSV(ctx context.Context, emb TextEmbedder, r io.Reader) error {
	rd := csv.NewReader(r)
	rec, err := rd.Read()
	if err != nil {
		return err
	}
	if !validCorpusHead(rec) {
		return fmt.Errorf("invalid csv head: %+v", rec)
	}

	header := make([]string, 2, 2+s.dim)
	copy(header, corpusHeads)
	for i := 0; i < s.dim; i++ {
		header = append(header, "v"+strconv.Itoa(i))
	}
	if err = s.rows.GetOrCreateCollection(ctx, s.name, header); err != nil {
		return err
	}

	var idx int
	for {
		row, err := rd.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		idx++
		if len(row) < 2 || len(row[1]) == 0 {
			return fmt.Errorf("invalid csv row #%d: %+v", idx, row)
		}
		if err = s.importLine(ctx, emb, row[0], row[1]); err != nil {
			return err
		}
	}
}

func (s *Knowledge) importLine(ctx context.Context, emb TextEmbedder, id, text string) error {
	vec, err := emb.Embed(ctx, text)
	if err != nil {
		return err
	}
	if len(vec) != s.dim {
		return fmt.Errorf("embedding for %q: vector length %d, want %d", id, len(vec), s.dim)
	}
	row := make([]string, 0, 2+s.dim)
	row = append(row, id, text)
	for _, v := range vec {
		row = append(row, strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	return s.rows.AppendRow(ctx, s.name, row)
}
