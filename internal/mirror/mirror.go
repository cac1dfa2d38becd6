// Package mirror copies every published hub event to a Kafka topic for
// downstream consumers. It is strictly best effort: a full queue or a failed
// write drops the record and never affects ingestion or fan-out.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"device-telemetry-hub/internal/hub"
	k "device-telemetry-hub/internal/kafka"
	"device-telemetry-hub/internal/metrics"
	"device-telemetry-hub/internal/worker"
)

var ErrWriteMessage = errors.New("error writing message")

const defaultQueueSize = 1024

type Config struct {
	Writer    k.Writer
	QueueSize int
}

type record struct {
	key       string
	eventType string
	payload   []byte
}

type Mirror struct {
	worker *worker.Worker
	writer k.Writer
	queue  chan record
}

func New(cfg Config) *Mirror {
	size := cfg.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}
	m := &Mirror{
		writer: cfg.Writer,
		queue:  make(chan record, size),
	}
	m.worker = worker.New(worker.Config{
		Name:      "mirror-worker",
		Processor: m,
	})
	return m
}

// Tap implements hub.Tap.
func (m *Mirror) Tap(ctx context.Context, event hub.Event, payload []byte) {
	select {
	case m.queue <- record{key: event.DeviceID, eventType: string(event.Type), payload: payload}:
	default:
		metrics.MirrorRecordsDroppedTotal.WithLabelValues("queue_full").Inc()
		slog.WarnContext(ctx, "Mirror queue full, dropping event", "device_id", event.DeviceID, "type", event.Type)
	}
}

func (m *Mirror) Run(ctx context.Context) {
	m.worker.Run(ctx)
}

func (m *Mirror) ProcessMessage(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case rec := <-m.queue:
		return m.write(ctx, rec)
	}
}

func (m *Mirror) write(ctx context.Context, rec record) error {
	const fn = "Mirror:write"
	err := m.writer.WriteMessages(ctx, k.NewMessage(rec.key, rec.eventType, rec.payload))
	if err != nil {
		metrics.MirrorRecordsDroppedTotal.WithLabelValues("write").Inc()
		return fmt.Errorf("%s:%w:%w", fn, ErrWriteMessage, err)
	}
	metrics.MirrorRecordsWrittenTotal.Inc()
	return nil
}

// Close writes whatever is still queued, bounded by ctx, then closes the
// writer. Run must have returned before Close is called.
func (m *Mirror) Close(ctx context.Context) {
	slog.InfoContext(ctx, "Closing mirror resources...", "pending", len(m.queue))
	for len(m.queue) > 0 {
		rec := <-m.queue
		if err := m.write(ctx, rec); err != nil {
			slog.ErrorContext(ctx, "Error flushing mirror record", "error", err)
		}
	}
	if err := m.writer.Close(); err != nil {
		slog.ErrorContext(ctx, "Error closing mirror writer", "error", err)
	}
}
