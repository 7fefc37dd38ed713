package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/campusone/campus-hub-api/internal/model"
)

const redisKeyPrefix = "campushub:"

type redisStore struct {
	client *redis.Client
}

// NewRedis stores each collection blob as a plain string under a prefixed
// key, for deployments that already run redis.
func NewRedis(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) get(ctx context.Context, key string, out any) error {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get %s blob: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode %s blob: %w", key, err)
	}
	return nil
}

func (s *redisStore) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s blob: %w", key, err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+key, raw, 0).Err(); err != nil {
		return fmt.Errorf("set %s blob: %w", key, err)
	}
	return nil
}

func (s *redisStore) LoadSession(ctx context.Context) (*model.User, error) {
	var user *model.User
	if err := s.get(ctx, keySession, &user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *redisStore) SaveSession(ctx context.Context, user *model.User) error {
	return s.put(ctx, keySession, user)
}

func (s *redisStore) ClearSession(ctx context.Context) error {
	return s.client.Del(ctx, redisKeyPrefix+keySession).Err()
}

func (s *redisStore) LoadUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.get(ctx, keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *redisStore) SaveUsers(ctx context.Context, users []model.User) error {
	return s.put(ctx, keyUsers, users)
}

func (s *redisStore) LoadShops(ctx context.Context) ([]model.Shop, error) {
	var shops []model.Shop
	if err := s.get(ctx, keyShops, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

func (s *redisStore) SaveShops(ctx context.Context, shops []model.Shop) error {
	return s.put(ctx, keyShops, shops)
}

func (s *redisStore) LoadAppointments(ctx context.Context) ([]model.Appointment, error) {
	var appointments []model.Appointment
	if err := s.get(ctx, keyAppointments, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *redisStore) SaveAppointments(ctx context.Context, appointments []model.Appointment) error {
	return s.put(ctx, keyAppointments, appointments)
}

func (s *redisStore) LoadActivity(ctx context.Context) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	if err := s.get(ctx, keyActivity, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *redisStore) SaveActivity(ctx context.Context, entries []model.ActivityEntry) error {
	return s.put(ctx, keyActivity, entries)
}

func (s *redisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *redisStore) Close() error { return s.client.Close() }
