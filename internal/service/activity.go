package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campusone/campus-hub-api/internal/model"
	"github.com/campusone/campus-hub-api/internal/store"
)

// activityCap bounds the security/workflow audit trail; the oldest entries
// are evicted first.
const activityCap = 100

// ActivityLog is the append-only, most-recent-first audit trail shared by
// the auth, replication, and appointment workflows.
type ActivityLog struct {
	store store.Store
	log   *slog.Logger

	mu      sync.Mutex
	entries []model.ActivityEntry
}

func NewActivityLog(ctx context.Context, st store.Store, log *slog.Logger) (*ActivityLog, error) {
	entries, err := st.LoadActivity(ctx)
	if err != nil {
		return nil, err
	}
	return &ActivityLog{store: st, log: log, entries: entries}, nil
}

// Record appends an entry and flushes the collection. Persistence failures
// are logged and swallowed.
func (a *ActivityLog) Record(ctx context.Context, user model.User, action, metadata string) {
	entry := model.ActivityEntry{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		UserID:    user.ID,
		UserEmail: user.Email,
		Action:    action,
		Metadata:  metadata,
	}

	a.mu.Lock()
	a.entries = append([]model.ActivityEntry{entry}, a.entries...)
	if len(a.entries) > activityCap {
		a.entries = a.entries[:activityCap]
	}
	snapshot := a.snapshotLocked()
	a.mu.Unlock()

	if err := a.store.SaveActivity(ctx, snapshot); err != nil {
		a.log.Warn("persist activity log", "error", err)
	}
}

// Merge folds imported entries into the trail, deduplicating by id and
// keeping the most recent entries within the cap.
func (a *ActivityLog) Merge(ctx context.Context, incoming []model.ActivityEntry) {
	a.mu.Lock()
	seen := make(map[uuid.UUID]bool, len(a.entries))
	for _, e := range a.entries {
		seen[e.ID] = true
	}
	for _, e := range incoming {
		if !seen[e.ID] {
			a.entries = append(a.entries, e)
			seen[e.ID] = true
		}
	}
	sort.SliceStable(a.entries, func(i, j int) bool {
		return a.entries[i].Timestamp.After(a.entries[j].Timestamp)
	})
	if len(a.entries) > activityCap {
		a.entries = a.entries[:activityCap]
	}
	snapshot := a.snapshotLocked()
	a.mu.Unlock()

	if err := a.store.SaveActivity(ctx, snapshot); err != nil {
		a.log.Warn("persist activity log", "error", err)
	}
}

// Entries returns a snapshot, most recent first.
func (a *ActivityLog) Entries() []model.ActivityEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *ActivityLog) snapshotLocked() []model.ActivityEntry {
	out := make([]model.ActivityEntry, len(a.entries))
	copy(out, a.entries)
	return out
}
