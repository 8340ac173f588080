package stores

import (
	"context"
	"time"

	"github.com/enrapt/muninn/pkg/models/chat"
)

const (
	// TimeLayout is the stored timestamp format, local time.
	TimeLayout = "2006/01/02 15:04:05"
)

var historyHeader = []string{"userID", "日時", "内容"}

// History keeps one append-only collection of chat turns per user.
// A stored row is (userID:role, timestamp, content); fetch and reset
// match on the user segment of the identifier, both roles included.
type History struct {
	rows RowStore
}

func NewHistory(rows RowStore) *History {
	return &History{rows: rows}
}

// Append create the user's collection when absent and add one turn.
func (s *History) Append(ctx context.Context, key chat.TurnKey, content string, at time.Time) error {
	if err := s.rows.GetOrCreateCollection(ctx, key.UserID, historyHeader); err != nil {
		return err
	}
	row := []string{key.String(), at.Format(TimeLayout), content}
	if err := s.rows.AppendRow(ctx, key.UserID, row); err != nil {
		logger().Infow("append turn fail", "key", key, "err", err)
		return err
	}
	logger().Debugw("append turn ok", "key", key, "content", len(content))
	return nil
}

// Fetch return the user's turns in stored order, rehydrated as messages.
// Blanked rows left by a reset are skipped.
func (s *History) Fetch(ctx context.Context, userID string) (data chat.Messages, err error) {
	ok, err := s.rows.HasCollection(ctx, userID)
	if err != nil || !ok {
		return
	}
	rows, err := s.rows.ScanRows(ctx, userID)
	if err != nil {
		return
	}
	for _, row := range rows {
		if len(row) < 3 || len(row[0]) == 0 {
			continue
		}
		key := chat.ParseTurnKey(row[0])
		if key.MatchUser(userID) {
			data = append(data, chat.Message{Role: key.Role, Content: row[2]})
		}
	}
	return
}

// Reset blank every turn of the user in place. Idempotent: resetting an
// empty or absent history is a no-op.
func (s *History) Reset(ctx context.Context, userID string) error {
	ok, err := s.rows.HasCollection(ctx, userID)
	if err != nil || !ok {
		return err
	}
	rows, err := s.rows.ScanRows(ctx, userID)
	if err != nil {
		return err
	}
	var indexes []int
	for i, row := range rows {
		if len(row) > 0 && chat.ParseTurnKey(row[0]).MatchUser(userID) {
			indexes = append(indexes, i)
		}
	}
	if len(indexes) == 0 {
		return nil
	}
	return s.rows.ClearRows(ctx, userID, indexes)
}
