package stores

import (
	"context"
	"encoding/json"
	"fmt"
)

// RowStore is the capability a spreadsheet-like backing store exposes:
// named collections of ordered string rows, each created with a fixed
// header row. Data row indexes are zero-based and exclude the header.
type RowStore interface {
	HasCollection(ctx context.Context, name string) (bool, error)
	// GetOrCreateCollection creates the named collection with the given
	// header when absent; it never touches an existing collection.
	GetOrCreateCollection(ctx context.Context, name string, header []string) error
	AppendRow(ctx context.Context, name string, row []string) error
	// ScanRows returns all data rows in stored order, header excluded.
	ScanRows(ctx context.Context, name string) ([][]string, error)
	// ClearRows blanks the cells of the given data rows in place,
	// leaving empty rows rather than compacting the collection.
	ClearRows(ctx context.Context, name string, indexes []int) error
}

// NewRedisRows return a RowStore over a redis client. Each collection is
// one list keyed "<prefix>:<name>"; rows are JSON-encoded string slices
// with the header at list index 0.
func NewRedisRows(rc RedisClient, prefix string) RowStore {
	return &redisRows{rc: rc, prefix: prefix}
}

type redisRows struct {
	rc     RedisClient
	prefix string
}

func (s *redisRows) key(name string) string {
	return s.prefix + ":" + name
}

func (s *redisRows) HasCollection(ctx context.Context, name string) (bool, error) {
	n, err := s.rc.Exists(ctx, s.key(name)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisRows) GetOrCreateCollection(ctx context.Context, name string, header []string) error {
	ok, err := s.HasCollection(ctx, name)
	if err != nil || ok {
		return err
	}
	b, err := json.Marshal(header)
	if err != nil {
		return err
	}
	return s.rc.RPush(ctx, s.key(name), b).Err()
}

func (s *redisRows) AppendRow(ctx context.Context, name string, row []string) error {
	ok, err := s.HasCollection(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("collection %q not found", name)
	}
	b, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return s.rc.RPush(ctx, s.key(name), b).Err()
}

func (s *redisRows) ScanRows(ctx context.Context, name string) (rows [][]string, err error) {
	var items []string
	items, err = s.rc.LRange(ctx, s.key(name), 1, -1).Result()
	if err != nil {
		return
	}
	for _, item := range items {
		var row []string
		if err = json.Unmarshal([]byte(item), &row); err != nil {
			return
		}
		rows = append(rows, row)
	}
	return
}

func (s *redisRows) ClearRows(ctx context.Context, name string, indexes []int) error {
	key := s.key(name)
	for _, idx := range indexes {
		item, err := s.rc.LIndex(ctx, key, int64(idx)+1).Result()
		if err != nil {
			return err
		}
		var row []string
		if err = json.Unmarshal([]byte(item), &row); err != nil {
			return err
		}
		b, err := json.Marshal(make([]string, len(row)))
		if err != nil {
			return err
		}
		if err = s.rc.LSet(ctx, key, int64(idx)+1, b).Err(); err != nil {
			return err
		}
	}
	return nil
}
