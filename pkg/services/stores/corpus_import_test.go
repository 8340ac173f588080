package stores

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enrapt/muninn/pkg/models/kb"
)

type fixedEmbedder struct {
	vecs map[string]kb.Vector
}

func (e fixedEmbedder) Embed(ctx context.Context, text string) (kb.Vector, error) {
	return e.vecs[text], nil
}

func TestImportCorpusCSV(t *testing.T) {
	ctx := context.Background()
	rows := NewMemoryRows()
	k := NewKnowledge(rows, "embedding", 2)
	emb := fixedEmbedder{vecs: map[string]kb.Vector{
		"営業時間は平日9時から18時です。": {0.25, -0.5},
		"所在地は東京都港区です。":       {1, 0},
	}}

	csv := "id,text\n1,営業時間は平日9時から18時です。\n2,所在地は東京都港区です。\n"
	require.NoError(t, k.ImportCorpusCSV(ctx, emb, strings.NewReader(csv)))

	data, err := k.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, data, 2)
	assert.Equal(t, kb.Vector{0.25, -0.5}, data[0].Vector)
	assert.Equal(t, "所在地は東京都港区です。", data[1].Text)
}

func TestImportCorpusCSVBadHead(t *testing.T) {
	k := NewKnowledge(NewMemoryRows(), "embedding", 2)
	err := k.ImportCorpusCSV(context.Background(), fixedEmbedder{}, strings.NewReader("foo,bar\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid csv head")
}
