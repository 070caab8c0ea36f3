package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/brightsmile-dental/clinic-scheduling/libs/db"
	"github.com/brightsmile-dental/clinic-scheduling/libs/kafkax"
	otelx "github.com/brightsmile-dental/clinic-scheduling/libs/otel"
)

// Publisher drains the outbox table to Kafka on a polling loop. The batch
// is claimed, written, and marked published inside one transaction, so a
// crash mid-batch re-delivers rather than loses (consumers dedupe on
// event_id).
type Publisher struct {
	pool      *db.Pool
	repo      *Repository
	logger    *slog.Logger
	brokers   []string
	pollEvery time.Duration
	batchSize int
}

type PublisherConfig struct {
	Brokers   string
	PollEvery time.Duration
	BatchSize int
}

func NewPublisher(pool *db.Pool, repo *Repository, logger *slog.Logger, cfg PublisherConfig) *Publisher {
	if cfg.PollEvery <= 0 {
		cfg.PollEvery = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Publisher{
		pool:      pool,
		repo:      repo,
		logger:    logger,
		brokers:   kafkax.SplitBrokers(cfg.Brokers),
		pollEvery: cfg.PollEvery,
		batchSize: cfg.BatchSize,
	}
}

func (p *Publisher) Run(ctx context.Context) {
	if len(p.brokers) == 0 {
		p.logger.Warn("outbox publisher disabled (no kafka brokers configured)")
		return
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(p.brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	defer writer.Close()

	ticker := time.NewTicker(p.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.publishBatch(ctx, writer); err != nil {
				p.logger.Error("outbox publish failed", "err", err)
			}
		}
	}
}

func (p *Publisher) publishBatch(ctx context.Context, writer *kafka.Writer) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pending, err := p.repo.Pending(ctx, tx, p.batchSize)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return tx.Commit(ctx)
	}

	published := make([]int64, 0, len(pending))
	for _, evt := range pending {
		if err := writer.WriteMessages(ctx, p.message(ctx, evt)); err != nil {
			return err
		}
		published = append(published, evt.ID)
	}

	if err := p.repo.MarkPublished(ctx, tx, published); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// message rebuilds the Kafka message for a stored event, restoring the
// trace context captured when the event was appended.
func (p *Publisher) message(ctx context.Context, evt StoredEvent) kafka.Message {
	msgCtx := otelx.ContextWithTraceContext(ctx, evt.Traceparent, evt.Tracestate)
	msg := kafka.Message{
		Topic: evt.EventType,
		Key:   []byte(evt.AggregateID),
		Value: evt.Payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(evt.EventID)},
			{Key: "event_type", Value: []byte(evt.EventType)},
		},
	}
	msg.Headers = kafkax.InjectTraceHeaders(msgCtx, msg.Headers)
	return msg
}
