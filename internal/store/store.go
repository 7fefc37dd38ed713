package store

import (
	"context"

	"github.com/campusone/campus-hub-api/internal/model"
)

// Blob keys. Each collection is one independently persisted JSON value;
// writes always replace the whole collection.
const (
	keySession      = "session"
	keyUsers        = "users"
	keyShops        = "shops"
	keyAppointments = "appointments"
	keyActivity     = "activity"
)

// Store is the best-effort persistence layer behind every collection owner.
// Loads of absent keys return empty collections; save errors are surfaced so
// the caller can log a persistence warning, but in-memory state remains
// authoritative either way.
type Store interface {
	LoadSession(ctx context.Context) (*model.User, error)
	SaveSession(ctx context.Context, user *model.User) error
	ClearSession(ctx context.Context) error

	LoadUsers(ctx context.Context) ([]model.User, error)
	SaveUsers(ctx context.Context, users []model.User) error

	LoadShops(ctx context.Context) ([]model.Shop, error)
	SaveShops(ctx context.Context, shops []model.Shop) error

	LoadAppointments(ctx context.Context) ([]model.Appointment, error)
	SaveAppointments(ctx context.Context, appointments []model.Appointment) error

	LoadActivity(ctx context.Context) ([]model.ActivityEntry, error)
	SaveActivity(ctx context.Context, entries []model.ActivityEntry) error

	Ping(ctx context.Context) error
	Close() error
}
