package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusone/campus-hub-api/internal/dto"
	"github.com/campusone/campus-hub-api/internal/model"
	"github.com/campusone/campus-hub-api/internal/relay"
	"github.com/campusone/campus-hub-api/internal/store"
)

var ErrCredentialMismatch = errors.New("credential mismatch")

// Names assigned when a login supplies none; these are refreshable on a
// later login, unlike a name the user chose.
var placeholderNames = map[string]bool{
	"":                   true,
	"Student Guest":      true,
	"Authorized Manager": true,
}

// AuthService owns the user registry: upsert-on-login identity keyed by
// lowercased email, session persistence, and token issuance. The merge
// reconciler (replicate.go) operates on the same registry.
type AuthService struct {
	store    store.Store
	notifier Notifier
	activity *ActivityLog
	log      *slog.Logger

	jwtSecret []byte
	jwtExpiry time.Duration

	mu    sync.Mutex
	users []model.User
}

func NewAuthService(ctx context.Context, st store.Store, notifier Notifier, activity *ActivityLog, log *slog.Logger, jwtSecret string, jwtExpiry time.Duration) (*AuthService, error) {
	users, err := st.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return &AuthService{
		store:     st,
		notifier:  notifier,
		activity:  activity,
		log:       log,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
		users:     users,
	}, nil
}

// Login creates the user on first sight of an email and authenticates
// against the stored credential afterwards. The stored record is kept; only
// a placeholder name is refreshed by a non-empty incoming one.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(req.Email)
	if req.Role == model.RoleSeller && req.ShopID == "" {
		return nil, fmt.Errorf("%w: seller login requires a shop id", ErrValidation)
	}

	s.mu.Lock()
	idx := s.findByEmailLocked(email)
	var user model.User
	if idx >= 0 {
		existing := &s.users[idx]
		if err := bcrypt.CompareHashAndPassword([]byte(existing.Password), []byte(req.Password)); err != nil {
			s.mu.Unlock()
			return nil, ErrCredentialMismatch
		}
		if req.Name != "" && placeholderNames[existing.Name] {
			existing.Name = req.Name
		}
		user = *existing
	} else {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("hash password: %w", err)
		}
		name := req.Name
		if name == "" {
			if req.Role == model.RoleSeller {
				name = "Authorized Manager"
			} else {
				name = "Student Guest"
			}
		}
		user = model.User{
			ID:       uuid.New(),
			Name:     name,
			Email:    email,
			Password: string(hashed),
			Role:     req.Role,
			ShopID:   req.ShopID,
		}
		s.users = append(s.users, user)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.store.SaveUsers(ctx, snapshot); err != nil {
		s.log.Warn("persist user registry", "error", err)
	}
	if err := s.store.SaveSession(ctx, &user); err != nil {
		s.log.Warn("persist session", "error", err)
	}

	s.activity.Record(ctx, user, "auth.login", string(user.Role))
	s.notifier.Dispatch(ctx, relay.KindEmail, user.Email,
		fmt.Sprintf("Hi %s, welcome to Campus Hub. Persistent link active.", user.Name),
		"Identity Handshake")

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	resp := toUserResponse(user)
	return &dto.AuthResponse{Token: token, User: resp}, nil
}

func (s *AuthService) Logout(ctx context.Context, user model.User) {
	if err := s.store.ClearSession(ctx); err != nil {
		s.log.Warn("clear session", "error", err)
	}
	s.activity.Record(ctx, user, "auth.logout", "")
}

// Users returns a registry snapshot without credentials.
func (s *AuthService) Users() []dto.UserResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.UserResponse, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func (s *AuthService) findByEmailLocked(email string) int {
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) {
			return i
		}
	}
	return -1
}

func (s *AuthService) generateToken(user model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":    user.ID.String(),
		"name":   user.Name,
		"email":  user.Email,
		"role":   string(user.Role),
		"shopId": user.ShopID,
		"exp":    time.Now().Add(s.jwtExpiry).Unix(),
		"iat":    time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *AuthService) snapshotLocked() []model.User {
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

func toUserResponse(user model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		ShopID: user.ShopID,
	}
}
