package relay

import (
	"context"
	"os"
	"testing"

	"github.com/cupogo/andvari/utils/zlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/enrapt/muninn/pkg/models/kb"
)

func TestMain(m *testing.M) {
	zlog.Set(zap.NewNop().Sugar())
	os.Exit(m.Run())
}

type stubEmbedder struct {
	vec kb.Vector
	err error
}

func (e stubEmbedder) Embed(ctx context.Context, text string) (kb.Vector, error) {
	return e.vec, e.err
}

// with query vector (1, 0) an entry's similarity is its first component
func simEntries(texts []string, sims []float32) kb.Entries {
	entries := make(kb.Entries, len(texts))
	for i := range texts {
		entries[i] = kb.Entry{Text: texts[i], Vector: kb.Vector{sims[i], 0}}
	}
	return entries
}

func TestRetrieveRanking(t *testing.T) {
	ret := NewRetriever(stubEmbedder{vec: kb.Vector{1, 0}})
	entries := simEntries(
		[]string{"a", "b", "c", "d"},
		[]float32{0.9, 0.3, 0.5, 0.95},
	)

	texts, err := ret.Retrieve(context.Background(), entries, "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a", "c"}, texts)
}

func TestRetrieveSmallCorpus(t *testing.T) {
	ret := NewRetriever(stubEmbedder{vec: kb.Vector{1, 0}})
	entries := simEntries([]string{"a", "b"}, []float32{0.1, 0.7})

	texts, err := ret.Retrieve(context.Background(), entries, "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, texts)
}

func TestRetrieveTiesKeepOrder(t *testing.T) {
	ret := NewRetriever(stubEmbedder{vec: kb.Vector{1, 0}})
	entries := simEntries([]string{"a", "b", "c"}, []float32{0.5, 0.5, 0.5})

	texts, err := ret.Retrieve(context.Background(), entries, "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, texts)
}

func TestRetrieveDimensionMismatch(t *testing.T) {
	ret := NewRetriever(stubEmbedder{vec: kb.Vector{1, 0, 0}})
	entries := simEntries([]string{"a"}, []float32{0.5})

	_, err := ret.Retrieve(context.Background(), entries, "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}

func TestRetrieveEmbedFail(t *testing.T) {
	ret := NewRetriever(stubEmbedder{err: assert.AnError})
	_, err := ret.Retrieve(context.Background(), kb.Entries{}, "q")
	require.ErrorIs(t, err, assert.AnError)
}
