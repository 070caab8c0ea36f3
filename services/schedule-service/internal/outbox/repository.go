package outbox

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brightsmile-dental/clinic-scheduling/libs/db"
	otelx "github.com/brightsmile-dental/clinic-scheduling/libs/otel"
)

// Repository stores events in the same transaction as the domain write and
// hands pending rows to the publisher.
type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

// Append writes evt to the outbox inside tx, capturing the caller's trace
// context so the publisher can continue the booking span across the broker
// hop.
func (r *Repository) Append(ctx context.Context, tx pgx.Tx, evt Event) error {
	traceparent, tracestate := otelx.TraceContextStrings(ctx)
	_, err := tx.Exec(ctx,
		`INSERT INTO outbox_events (aggregate_type, aggregate_id, event_type, payload, traceparent, tracestate)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		evt.AggregateType, evt.AggregateID, evt.EventType, evt.Payload, traceparent, tracestate)
	return err
}

// StoredEvent is an outbox row claimed for publishing.
type StoredEvent struct {
	ID            int64
	EventID       string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	Traceparent   string
	Tracestate    string
	CreatedAt     time.Time
}

// Pending claims up to limit unpublished rows in insertion order. SKIP LOCKED
// keeps concurrent publisher instances off each other's batches.
func (r *Repository) Pending(ctx context.Context, tx pgx.Tx, limit int) ([]StoredEvent, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, event_id, aggregate_type, aggregate_id, event_type, payload, traceparent, tracestate, created_at
		 FROM outbox_events
		 WHERE published_at IS NULL
		 ORDER BY id
		 LIMIT $1
		 FOR UPDATE SKIP LOCKED`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []StoredEvent
	for rows.Next() {
		var evt StoredEvent
		err := rows.Scan(&evt.ID, &evt.EventID, &evt.AggregateType, &evt.AggregateID,
			&evt.EventType, &evt.Payload, &evt.Traceparent, &evt.Tracestate, &evt.CreatedAt)
		if err != nil {
			return nil, err
		}
		pending = append(pending, evt)
	}
	return pending, rows.Err()
}

func (r *Repository) MarkPublished(ctx context.Context, tx pgx.Tx, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx,
		`UPDATE outbox_events SET published_at = now() WHERE id = ANY($1)`, ids)
	return err
}
