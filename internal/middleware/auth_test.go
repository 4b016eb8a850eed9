package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorialhub/backend/internal/auth"
	"github.com/tutorialhub/backend/internal/models"
	repo "github.com/tutorialhub/backend/internal/repository"
)

type memUsers struct {
	byID map[string]models.User
}

func (m *memUsers) Create(_ context.Context, u models.User) (models.User, error) { return u, nil }
func (m *memUsers) GetByID(_ context.Context, id string) (models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}
func (m *memUsers) GetByEmail(_ context.Context, _ string) (models.User, error) {
	return models.User{}, repo.ErrNotFound
}
func (m *memUsers) List(_ context.Context, _ repo.ListUsersParams) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (m *memUsers) Update(_ context.Context, u models.User) (models.User, error) { return u, nil }
func (m *memUsers) Delete(_ context.Context, _ string) error                     { return nil }

func authFixture(t *testing.T) (*AuthMiddleware, *auth.TokenManager, *memUsers) {
	t.Helper()
	tm := auth.NewTokenManager("access-secret", "refresh-secret", "test", time.Minute, time.Hour)
	users := &memUsers{byID: map[string]models.User{
		"u-1": {ID: "u-1", Role: models.RoleUser, IsActive: true},
		"u-2": {ID: "u-2", Role: models.RoleAdmin, IsActive: true},
		"u-3": {ID: "u-3", Role: models.RoleUser, IsActive: false},
	}}
	return NewAuthMiddleware(tm, users), tm, users
}

func echoIdentity(t *testing.T, captured *Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := IdentityFrom(r.Context()); ok {
			*captured = id
		}
		w.WriteHeader(http.StatusOK)
	})
}

func accessToken(t *testing.T, tm *auth.TokenManager, userID, role string) string {
	t.Helper()
	access, _, _, err := tm.GeneratePair(userID, role)
	require.NoError(t, err)
	return access
}

func TestAuthenticateMissingToken(t *testing.T) {
	mw, _, _ := authFixture(t)

	rec := httptest.NewRecorder()
	var got Identity
	mw.Authenticate(echoIdentity(t, &got)).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateBadSignature(t *testing.T) {
	mw, _, _ := authFixture(t)
	wrong := auth.NewTokenManager("other-secret", "refresh-secret", "test", time.Minute, time.Hour)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, wrong, "u-1", models.RoleUser))
	rec := httptest.NewRecorder()
	var got Identity
	mw.Authenticate(echoIdentity(t, &got)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	mw, tm, _ := authFixture(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, tm, "u-3", models.RoleUser))
	rec := httptest.NewRecorder()
	var got Identity
	mw.Authenticate(echoIdentity(t, &got)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateDeletedUser(t *testing.T) {
	mw, tm, _ := authFixture(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, tm, "gone", models.RoleUser))
	rec := httptest.NewRecorder()
	var got Identity
	mw.Authenticate(echoIdentity(t, &got)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateAttachesIdentity(t *testing.T) {
	mw, tm, _ := authFixture(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, tm, "u-1", models.RoleUser))
	rec := httptest.NewRecorder()
	var got Identity
	mw.Authenticate(echoIdentity(t, &got)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Identity{UserID: "u-1", Role: models.RoleUser}, got)
}

func TestOptionalAuthenticateNeverFails(t *testing.T) {
	mw, tm, _ := authFixture(t)

	for name, header := range map[string]string{
		"no header":   "",
		"garbage":     "Bearer not-a-jwt",
		"valid token": "Bearer " + accessToken(t, tm, "u-1", models.RoleUser),
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			var got Identity
			mw.OptionalAuthenticate(echoIdentity(t, &got)).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestRequireAdminReChecksStore(t *testing.T) {
	mw, tm, users := authFixture(t)

	handler := mw.Authenticate(mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, tm, "u-2", models.RoleAdmin))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// non-admin with a valid token
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, tm, "u-1", models.RoleUser))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// token still claims admin, but the store says otherwise now
	demoted := users.byID["u-2"]
	demoted.Role = models.RoleUser
	users.byID["u-2"] = demoted
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, tm, "u-2", models.RoleAdmin))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminWithoutIdentity(t *testing.T) {
	mw, _, _ := authFixture(t)

	rec := httptest.NewRecorder()
	mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimitPerIP(t *testing.T) {
	limited := RateLimitPerIP(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another client has its own bucket
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
