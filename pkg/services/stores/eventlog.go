package stores

import (
	"context"
	"time"
)

var eventLogHeader = []string{"日時", "内容"}

// EventLog appends one (timestamp, message) row per processed event or
// caught error.
type EventLog struct {
	rows RowStore
	name string
}

func NewEventLog(rows RowStore, name string) *EventLog {
	return &EventLog{rows: rows, name: name}
}

func (s *EventLog) Put(ctx context.Context, msg string) error {
	if err := s.rows.GetOrCreateCollection(ctx, s.name, eventLogHeader); err != nil {
		return err
	}
	row := []string{time.Now().Format(TimeLayout), msg}
	if err := s.rows.AppendRow(ctx, s.name, row); err != nil {
		logger().Infow("put event log fail", "err", err)
		return err
	}
	return nil
}
