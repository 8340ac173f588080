package stores

import (
	"context"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/cupogo/andvari/utils/zlog"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	zlog.Set(zap.NewNop().Sugar())
	os.Exit(m.Run())
}

func newTestRedisRows(t *testing.T) RowStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return NewRedisRows(rc, "sheet")
}

func testRowStore(t *testing.T, rows RowStore) {
	ctx := context.Background()

	ok, err := rows.HasCollection(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = rows.ScanRows(ctx, "u1")
	require.NoError(t, err)

	err = rows.AppendRow(ctx, "u1", []string{"a", "b", "c"})
	require.Error(t, err)

	require.NoError(t, rows.GetOrCreateCollection(ctx, "u1", []string{"userID", "日時", "内容"}))
	ok, err = rows.HasCollection(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	// creating again must not touch the existing collection
	require.NoError(t, rows.GetOrCreateCollection(ctx, "u1", []string{"x"}))

	require.NoError(t, rows.AppendRow(ctx, "u1", []string{"u1:user", "2024/01/02 03:04:05", "hi"}))
	require.NoError(t, rows.AppendRow(ctx, "u1", []string{"u1:assistant", "2024/01/02 03:04:06", "hello"}))

	data, err := rows.ScanRows(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, data, 2)
	assert.Equal(t, []string{"u1:user", "2024/01/02 03:04:05", "hi"}, data[0])
	assert.Equal(t, []string{"u1:assistant", "2024/01/02 03:04:06", "hello"}, data[1])

	require.NoError(t, rows.ClearRows(ctx, "u1", []int{0}))
	data, err = rows.ScanRows(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, data, 2, "cleared rows stay in place")
	assert.Equal(t, []string{"", "", ""}, data[0])
	assert.Equal(t, "hello", data[1][2])
}

func TestRedisRows(t *testing.T) {
	testRowStore(t, newTestRedisRows(t))
}

func TestMemoryRows(t *testing.T) {
	testRowStore(t, NewMemoryRows())
}
