package service

import (
	"context"

	"github.com/campusone/campus-hub-api/internal/relay"
)

// Notifier is the dispatch boundary the workflows fire notifications
// through. Delivery is best-effort and never blocks or fails the caller.
type Notifier interface {
	Dispatch(ctx context.Context, kind relay.Kind, target, content, subject string) relay.LogEntry
}
