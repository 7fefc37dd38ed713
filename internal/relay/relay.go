// Package relay implements fire-and-forget notification dispatch with a
// bounded, most-recent-first delivery log. Delivery is simulated: an entry
// starts as processing and flips to success after a fixed delay. An optional
// transport additionally publishes the notification downstream; transport
// failures never propagate to the caller.
package relay

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindEmail  Kind = "email"
	KindSMS    Kind = "sms"
	KindSystem Kind = "system"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
)

type LogEntry struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      Kind      `json:"type"`
	Target    string    `json:"target"`
	Subject   string    `json:"subject,omitempty"`
	Content   string    `json:"content"`
	Status    Status    `json:"status"`
}

// Transport delivers a notification downstream. Implementations are
// best-effort; the relay swallows any error they return.
type Transport interface {
	Publish(ctx context.Context, entry LogEntry) error
}

type Relay struct {
	transport Transport
	capacity  int
	delay     time.Duration
	log       *slog.Logger

	mu      sync.Mutex
	entries []LogEntry
}

func New(transport Transport, capacity int, delay time.Duration, log *slog.Logger) *Relay {
	if capacity <= 0 {
		capacity = 20
	}
	return &Relay{transport: transport, capacity: capacity, delay: delay, log: log}
}

// Dispatch records the notification and returns immediately. The returned
// entry is a snapshot; its status resolves asynchronously.
func (r *Relay) Dispatch(ctx context.Context, kind Kind, target, content, subject string) LogEntry {
	entry := LogEntry{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Kind:      kind,
		Target:    target,
		Subject:   subject,
		Content:   content,
		Status:    StatusProcessing,
	}

	failed := false
	if r.transport != nil {
		if err := r.transport.Publish(ctx, entry); err != nil {
			r.log.Warn("notification transport publish", "kind", kind, "target", target, "error", err)
			failed = true
		}
	}
	if failed {
		entry.Status = StatusFailed
	}

	r.mu.Lock()
	r.entries = append([]LogEntry{entry}, r.entries...)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[:r.capacity]
	}
	r.mu.Unlock()

	if !failed {
		id := entry.ID
		time.AfterFunc(r.delay, func() { r.resolve(id) })
	}
	return entry
}

func (r *Relay) resolve(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].ID == id && r.entries[i].Status == StatusProcessing {
			r.entries[i].Status = StatusSuccess
			return
		}
	}
}

// Log returns a snapshot of the delivery log, most recent first.
func (r *Relay) Log() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
