package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/trace"

	"github.com/brightsmile-dental/clinic-scheduling/libs/kafkax"
)

// Tails clinic events off the broker, one line per message, useful for
// watching the outbox publisher drain during local testing.
func main() {
	var (
		brokers = flag.String("brokers", getenv("KAFKA_BROKERS", "localhost:9092"), "comma-separated broker list")
		topics  = flag.String("topics", getenv("TOPICS", "clinic.appointment.booked.v1,clinic.consultation.requested.v1"), "comma-separated topics")
		group   = flag.String("group", getenv("GROUP_ID", "event-tail"), "consumer group id")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     kafkax.SplitBrokers(*brokers),
		GroupID:     *group,
		GroupTopics: strings.Split(*topics, ","),
	})
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		meta := kafkax.ExtractEventMeta(msg)
		traceID := ""
		if sc := trace.SpanContextFromContext(kafkax.ExtractTraceContext(ctx, msg)); sc.HasTraceID() {
			traceID = sc.TraceID().String()
		}
		fmt.Printf("%s %s id=%s key=%s trace=%s %s\n",
			msg.Time.UTC().Format(time.RFC3339), meta.EventType, meta.EventID,
			string(msg.Key), traceID, string(msg.Value))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
