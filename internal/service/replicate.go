package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/campusone/campus-hub-api/internal/model"
)

var ErrReplication = errors.New("malformed replication token")

// replicationPayload is the self-describing shape carried by an export
// token. The users field is mandatory on import.
type replicationPayload struct {
	Users    []model.User          `json:"users"`
	Activity []model.ActivityEntry `json:"activity,omitempty"`
}

// Export serializes the registry and activity trail into an opaque token.
// Decoding the token with Import round-trips exactly.
func (s *AuthService) Export(ctx context.Context, actor model.User) (string, error) {
	s.mu.Lock()
	payload := replicationPayload{Users: s.snapshotLocked(), Activity: s.activity.Entries()}
	s.mu.Unlock()

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode replication payload: %w", err)
	}
	s.activity.Record(ctx, actor, "replication.export", fmt.Sprintf("%d users", len(payload.Users)))
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Import merges a token produced by Export into the registry. Merge is by
// lowercased email with the incoming record taking precedence; importing
// the same token twice is a no-op the second time. A token that fails to
// decode or lacks the users field is rejected whole, leaving the registry
// untouched.
func (s *AuthService) Import(ctx context.Context, actor model.User, token string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrReplication, err)
	}
	var payload replicationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrReplication, err)
	}
	if payload.Users == nil {
		return 0, fmt.Errorf("%w: missing users", ErrReplication)
	}

	s.mu.Lock()
	for _, incoming := range payload.Users {
		incoming.Email = strings.ToLower(incoming.Email)
		if idx := s.findByEmailLocked(incoming.Email); idx >= 0 {
			s.users[idx] = incoming
		} else {
			s.users = append(s.users, incoming)
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.store.SaveUsers(ctx, snapshot); err != nil {
		s.log.Warn("persist user registry", "error", err)
	}
	if len(payload.Activity) > 0 {
		s.activity.Merge(ctx, payload.Activity)
	}
	s.activity.Record(ctx, actor, "replication.import", fmt.Sprintf("%d users", len(payload.Users)))
	return len(payload.Users), nil
}
