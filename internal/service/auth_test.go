package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusone/campus-hub-api/internal/dto"
	"github.com/campusone/campus-hub-api/internal/model"
	"github.com/campusone/campus-hub-api/internal/store"
)

func newAuthFixture(t *testing.T) (*AuthService, store.Store) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemory()
	log := discardLogger()
	activity, err := NewActivityLog(ctx, st, log)
	require.NoError(t, err)
	svc, err := NewAuthService(ctx, st, &stubNotifier{}, activity, log, "test-secret", time.Hour)
	require.NoError(t, err)
	return svc, st
}

func TestAuthService_Login_CreatesOnFirstSight(t *testing.T) {
	svc, st := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Name: "Adarsh Kumar", Email: "Adarsh@Students.Example.Edu",
		Password: "hunter22", Role: model.RoleUser,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "adarsh@students.example.edu", resp.User.Email)

	// Session blob persisted.
	session, err := st.LoadSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, resp.User.ID, session.ID)

	// Stored credential is a hash, not the password.
	users, err := st.LoadUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.NotEqual(t, "hunter22", users[0].Password)
}

func TestAuthService_Login_CredentialMismatch(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginRequest{
		Email: "a@x.com", Password: "right", Role: model.RoleUser,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{
		Email: "a@x.com", Password: "wrong", Role: model.RoleUser,
	})
	assert.ErrorIs(t, err, ErrCredentialMismatch)
}

func TestAuthService_Login_RefreshesPlaceholderName(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, dto.LoginRequest{
		Email: "a@x.com", Password: "pw", Role: model.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, "Student Guest", resp.User.Name)

	resp, err = svc.Login(ctx, dto.LoginRequest{
		Name: "Adarsh Kumar", Email: "a@x.com", Password: "pw", Role: model.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, "Adarsh Kumar", resp.User.Name)

	// A chosen name is kept; later logins do not overwrite it.
	resp, err = svc.Login(ctx, dto.LoginRequest{
		Name: "Someone Else", Email: "a@x.com", Password: "pw", Role: model.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, "Adarsh Kumar", resp.User.Name)
}

func TestAuthService_Login_SellerRequiresShop(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "salon@example.com", Password: "pw", Role: model.RoleSeller,
	})
	assert.ErrorIs(t, err, ErrValidation)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "salon@example.com", Password: "pw", Role: model.RoleSeller, ShopID: "shop-3",
	})
	require.NoError(t, err)
	assert.Equal(t, "shop-3", resp.User.ShopID)
}

func TestAuthService_Logout_ClearsSession(t *testing.T) {
	svc, st := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, dto.LoginRequest{
		Email: "a@x.com", Password: "pw", Role: model.RoleUser,
	})
	require.NoError(t, err)

	svc.Logout(ctx, model.User{ID: resp.User.ID, Email: resp.User.Email})

	session, err := st.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}
