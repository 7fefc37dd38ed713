package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/campusone/campus-hub-api/internal/model"
)

type memoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte

	// FailSaves makes every save error, for exercising the
	// persistence-warning path in tests.
	FailSaves error
}

// NewMemory keeps the collection blobs in a map. Values round-trip through
// JSON so the memory backend has the same encoding behavior as the
// persistent ones.
func NewMemory() Store {
	return &memoryStore{blobs: make(map[string][]byte)}
}

// NewFailingMemory returns a memory store whose saves all fail with err.
func NewFailingMemory(err error) Store {
	return &memoryStore{blobs: make(map[string][]byte), FailSaves: err}
}

func (s *memoryStore) get(key string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.blobs[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (s *memoryStore) put(key string, v any) error {
	if s.FailSaves != nil {
		return s.FailSaves
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = raw
	return nil
}

func (s *memoryStore) LoadSession(_ context.Context) (*model.User, error) {
	var user *model.User
	if err := s.get(keySession, &user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *memoryStore) SaveSession(_ context.Context, user *model.User) error {
	return s.put(keySession, user)
}

func (s *memoryStore) ClearSession(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, keySession)
	return nil
}

func (s *memoryStore) LoadUsers(_ context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.get(keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *memoryStore) SaveUsers(_ context.Context, users []model.User) error {
	return s.put(keyUsers, users)
}

func (s *memoryStore) LoadShops(_ context.Context) ([]model.Shop, error) {
	var shops []model.Shop
	if err := s.get(keyShops, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

func (s *memoryStore) SaveShops(_ context.Context, shops []model.Shop) error {
	return s.put(keyShops, shops)
}

func (s *memoryStore) LoadAppointments(_ context.Context) ([]model.Appointment, error) {
	var appointments []model.Appointment
	if err := s.get(keyAppointments, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *memoryStore) SaveAppointments(_ context.Context, appointments []model.Appointment) error {
	return s.put(keyAppointments, appointments)
}

func (s *memoryStore) LoadActivity(_ context.Context) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	if err := s.get(keyActivity, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *memoryStore) SaveActivity(_ context.Context, entries []model.ActivityEntry) error {
	return s.put(keyActivity, entries)
}

func (s *memoryStore) Ping(_ context.Context) error { return nil }

func (s *memoryStore) Close() error { return nil }
