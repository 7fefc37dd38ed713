package store

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/campusone/campus-hub-api/internal/model"
)

var bucketName = []byte("campushub")

type boltStore struct {
	db *bolt.DB
}

// NewBolt opens (or creates) a single-file bbolt database with one bucket
// holding the five collection blobs.
func NewBolt(path string) (Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) get(key string, out any) error {
	return s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get([]byte(key))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s blob: %w", key, err)
		}
		return nil
	})
}

func (s *boltStore) put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s blob: %w", key, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), raw)
	})
}

func (s *boltStore) delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
}

func (s *boltStore) LoadSession(_ context.Context) (*model.User, error) {
	var user *model.User
	if err := s.get(keySession, &user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *boltStore) SaveSession(_ context.Context, user *model.User) error {
	return s.put(keySession, user)
}

func (s *boltStore) ClearSession(_ context.Context) error {
	return s.delete(keySession)
}

func (s *boltStore) LoadUsers(_ context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.get(keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *boltStore) SaveUsers(_ context.Context, users []model.User) error {
	return s.put(keyUsers, users)
}

func (s *boltStore) LoadShops(_ context.Context) ([]model.Shop, error) {
	var shops []model.Shop
	if err := s.get(keyShops, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

func (s *boltStore) SaveShops(_ context.Context, shops []model.Shop) error {
	return s.put(keyShops, shops)
}

func (s *boltStore) LoadAppointments(_ context.Context) ([]model.Appointment, error) {
	var appointments []model.Appointment
	if err := s.get(keyAppointments, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *boltStore) SaveAppointments(_ context.Context, appointments []model.Appointment) error {
	return s.put(keyAppointments, appointments)
}

func (s *boltStore) LoadActivity(_ context.Context) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	if err := s.get(keyActivity, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *boltStore) SaveActivity(_ context.Context, entries []model.ActivityEntry) error {
	return s.put(keyActivity, entries)
}

func (s *boltStore) Ping(_ context.Context) error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketName) == nil {
			return fmt.Errorf("bucket %s missing", bucketName)
		}
		return nil
	})
}

func (s *boltStore) Close() error { return s.db.Close() }
