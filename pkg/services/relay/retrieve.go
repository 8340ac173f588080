package relay

import (
	"context"
	"fmt"
	"sort"

	"github.com/enrapt/muninn/pkg/models/kb"
)

const dftTopK = 3

// Embedder turns one text into its embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (kb.Vector, error)
}

// Retriever ranks corpus entries against a query by inner product and
// returns the best snippets. Full rescan on every call; corpus sizes are
// tens to low hundreds of entries.
type Retriever struct {
	emb  Embedder
	topK int
}

func NewRetriever(emb Embedder) *Retriever {
	return &Retriever{emb: emb, topK: dftTopK}
}

// Retrieve return the texts of the topK most similar entries, ranked
// descending. Ties keep corpus order. The query vector and every entry
// vector must share one length.
func (r *Retriever) Retrieve(ctx context.Context, entries kb.Entries, query string) ([]string, error) {
	qv, err := r.emb.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	scored := make([]kb.ScoredEntry, 0, len(entries))
	for i, ent := range entries {
		sim, err := kb.Dot(qv, ent.Vector)
		if err != nil {
			return nil, fmt.Errorf("score entry #%d: %w", i, err)
		}
		scored = append(scored, kb.ScoredEntry{Entry: ent, Similarity: sim})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > r.topK {
		scored = scored[:r.topK]
	}

	texts := make([]string, len(scored))
	for i, se := range scored {
		texts[i] = se.Text
	}
	logger().Debugw("retrieved", "hits", len(texts), "corpus", len(entries))
	return texts, nil
}
