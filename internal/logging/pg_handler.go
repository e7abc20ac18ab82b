package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	pgBatchSize     = 50
	pgFlushInterval = 5 * time.Second
)

// LogSink persists batches of system logs.
type LogSink interface {
	CreateBatch(ctx context.Context, logs []models.SystemLog) error
}

type pgBuffer struct {
	mu      sync.Mutex
	entries []models.SystemLog
}

// PGHandler is an slog.Handler that batches ERROR+ records into a LogSink.
// Handlers derived through WithAttrs share the same buffer.
type PGHandler struct {
	sink   LogSink
	buf    *pgBuffer
	attrs  []slog.Attr
	ticker *time.Ticker
	done   chan struct{}
	wg     *sync.WaitGroup
}

func NewPGHandler(sink LogSink) *PGHandler {
	h := &PGHandler{
		sink:   sink,
		buf:    &pgBuffer{entries: make([]models.SystemLog, 0, pgBatchSize)},
		ticker: time.NewTicker(pgFlushInterval),
		done:   make(chan struct{}),
		wg:     &sync.WaitGroup{},
	}
	h.wg.Add(1)
	go h.flushLoop()
	return h
}

func (h *PGHandler) flushLoop() {
	defer h.wg.Done()
	for {
		select {
		case <-h.ticker.C:
			h.Flush()
		case <-h.done:
			h.Flush()
			return
		}
	}
}

// Flush writes everything buffered so far.
func (h *PGHandler) Flush() {
	h.buf.mu.Lock()
	if len(h.buf.entries) == 0 {
		h.buf.mu.Unlock()
		return
	}
	batch := h.buf.entries
	h.buf.entries = make([]models.SystemLog, 0, pgBatchSize)
	h.buf.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.sink.CreateBatch(ctx, batch); err != nil {
		// Warn level keeps this record out of the handler itself.
		slog.Warn("failed to flush system logs", "error", err, "count", len(batch))
	}
}

// Stop flushes the buffer and stops the background loop.
func (h *PGHandler) Stop() {
	h.ticker.Stop()
	close(h.done)
	h.wg.Wait()
}

// Enabled only handles ERROR and above.
func (h *PGHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *PGHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			switch v := a.Value.Any().(type) {
			case float64:
				entry.LatencyMs = int(math.Round(v))
			case int64:
				entry.LatencyMs = int(v)
			}
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.buf.mu.Lock()
	h.buf.entries = append(h.buf.entries, entry)
	needFlush := len(h.buf.entries) >= pgBatchSize
	h.buf.mu.Unlock()

	if needFlush {
		go h.Flush()
	}
	return nil
}

func (h *PGHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup is a no-op: stored rows are flat.
func (h *PGHandler) WithGroup(string) slog.Handler {
	return h
}
