package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorialhub/backend/internal/auth"
	"github.com/tutorialhub/backend/internal/models"
	repo "github.com/tutorialhub/backend/internal/repository"
)

type fakeUsers struct {
	byID map[string]models.User
	seq  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u models.User) (models.User, error) {
	for _, other := range f.byID {
		if other.Email == u.Email {
			return models.User{}, repo.ConflictError{Field: "email"}
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("u-%d", f.seq)
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (f *fakeUsers) List(_ context.Context, _ repo.ListUsersParams) ([]models.User, int64, error) {
	out := make([]models.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUsers) Update(_ context.Context, u models.User) (models.User, error) {
	if _, ok := f.byID[u.ID]; !ok {
		return models.User{}, repo.ErrNotFound
	}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func newUserService() (*UserService, *fakeUsers) {
	users := newFakeUsers()
	tm := auth.NewTokenManager("access-secret", "refresh-secret", "test", time.Minute, time.Hour)
	return NewUserService(users, tm), users
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	svc, users := newUserService()

	u, err := svc.Register(context.Background(), "  alice ", " Alice@Example.COM ", "password1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "password1", users.byID[u.ID].PasswordHash)
	assert.NoError(t, auth.VerifyPassword("password1", users.byID[u.ID].PasswordHash))
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newUserService()

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "short")
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestLogin(t *testing.T) {
	svc, users := newUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "alice@example.com", "password1")
	require.NoError(t, err)

	got, pair, err := svc.Login(ctx, "Alice@Example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	deactivated := users.byID[u.ID]
	deactivated.IsActive = false
	users.byID[u.ID] = deactivated
	_, _, err = svc.Login(ctx, "alice@example.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRoundTrip(t *testing.T) {
	svc, users := newUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "alice@example.com", "password1")
	require.NoError(t, err)
	_, pair, err := svc.Login(ctx, "alice@example.com", "password1")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.AccessToken)

	// an access token is not accepted where a refresh token belongs
	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	deactivated := users.byID[u.ID]
	deactivated.IsActive = false
	users.byID[u.ID] = deactivated
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminUpdateSelfDemotionBlocked(t *testing.T) {
	svc, users := newUserService()
	ctx := context.Background()

	admin, err := svc.AdminCreate(ctx, models.User{
		Username: "root", Email: "root@example.com", Role: models.RoleAdmin, IsActive: true,
	}, "password1")
	require.NoError(t, err)
	other, err := svc.AdminCreate(ctx, models.User{
		Username: "bob", Email: "bob@example.com", Role: models.RoleAdmin, IsActive: true,
	}, "password1")
	require.NoError(t, err)

	role := models.RoleUser
	_, err = svc.AdminUpdate(ctx, admin.ID, admin.ID, UserPatch{Role: &role})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, models.RoleAdmin, users.byID[admin.ID].Role)

	// demoting someone else is fine
	updated, err := svc.AdminUpdate(ctx, admin.ID, other.ID, UserPatch{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, updated.Role)

	// a self-patch that keeps the admin role is fine too
	keep := models.RoleAdmin
	_, err = svc.AdminUpdate(ctx, admin.ID, admin.ID, UserPatch{Role: &keep})
	assert.NoError(t, err)
}

func TestAdminDeleteSelfBlocked(t *testing.T) {
	svc, users := newUserService()
	ctx := context.Background()

	admin, err := svc.AdminCreate(ctx, models.User{
		Username: "root", Email: "root@example.com", Role: models.RoleAdmin, IsActive: true,
	}, "password1")
	require.NoError(t, err)

	err = svc.AdminDelete(ctx, admin.ID, admin.ID)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	_, ok := users.byID[admin.ID]
	assert.True(t, ok)
}
