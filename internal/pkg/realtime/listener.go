package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tarpworks/payroll-backend/internal/domain/change"
	"github.com/tarpworks/payroll-backend/internal/pkg/casing"
)

// notification is the payload written by the notify_change trigger.
type notification struct {
	Table     string          `json:"table"`
	EventType string          `json:"event_type"`
	Old       json.RawMessage `json:"old"`
	New       json.RawMessage `json:"new"`
}

// DecodeNotification turns a trigger payload into a change event with camelCase row keys.
func DecodeNotification(payload string) (change.Event, error) {
	var n notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return change.Event{}, fmt.Errorf("decode notification: %w", err)
	}
	if n.Table == "" {
		return change.Event{}, errors.New("decode notification: missing table")
	}

	oldRow, err := casing.JSONToCamel(n.Old)
	if err != nil {
		return change.Event{}, fmt.Errorf("convert old row: %w", err)
	}
	newRow, err := casing.JSONToCamel(n.New)
	if err != nil {
		return change.Event{}, fmt.Errorf("convert new row: %w", err)
	}

	eventType := change.EventType(n.EventType)
	switch eventType {
	case change.EventInsert, change.EventUpdate, change.EventDelete:
	default:
		return change.Event{}, fmt.Errorf("decode notification: unknown event type %q", n.EventType)
	}

	return change.Event{
		EventType: eventType,
		Table:     n.Table,
		Old:       oldRow,
		New:       newRow,
	}, nil
}

// Listener holds one pooled connection on LISTEN and republishes
// notifications to a change.Publisher.
type Listener struct {
	pool      *pgxpool.Pool
	channel   string
	publisher change.Publisher
	retry     time.Duration
}

func NewListener(pool *pgxpool.Pool, channel string, publisher change.Publisher) *Listener {
	return &Listener{
		pool:      pool,
		channel:   channel,
		publisher: publisher,
		retry:     2 * time.Second,
	}
}

// Run listens until ctx is cancelled, reconnecting after connection errors.
func (l *Listener) Run(ctx context.Context) {
	slog.Info("Realtime listener started", "channel", l.channel)
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			slog.Info("Realtime listener stopped", "channel", l.channel)
			return
		}
		slog.Error("Realtime listener disconnected", "channel", l.channel, "error", err, "retry_in", l.retry)

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.retry):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		event, err := DecodeNotification(n.Payload)
		if err != nil {
			slog.Warn("Realtime listener dropped notification", "error", err)
			continue
		}
		l.publisher.Publish(event)
	}
}
