package middleware

import (
	"net/http"
	"strings"

	"github.com/tutorialhub/backend/internal/api/httpx"
	"github.com/tutorialhub/backend/internal/auth"
	"github.com/tutorialhub/backend/internal/models"
	repo "github.com/tutorialhub/backend/internal/repository"
)

// AuthMiddleware verifies bearer credentials and resolves them to identities.
// There is no demo or development token format: every credential that reaches
// a handler went through signature verification and an active-user check.
type AuthMiddleware struct {
	tm    *auth.TokenManager
	users repo.Users
}

func NewAuthMiddleware(tm *auth.TokenManager, users repo.Users) *AuthMiddleware {
	return &AuthMiddleware{tm: tm, users: users}
}

func bearerToken(r *http.Request) (string, bool) {
	ah := r.Header.Get("Authorization")
	if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return "", false
	}
	return strings.TrimSpace(ah[len("Bearer "):]), true
}

// Authenticate requires a valid access token for an active user.
// Missing credential -> 401, bad signature or expired -> 403, structurally
// valid token for an inactive or deleted user -> 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := m.tm.ParseAccess(token)
		if err != nil {
			httpx.WriteError(w, http.StatusForbidden, "invalid or expired token")
			return
		}
		u, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil || !u.IsActive {
			httpx.WriteError(w, http.StatusUnauthorized, "account unavailable")
			return
		}
		ctx := WithIdentity(r.Context(), Identity{UserID: u.ID, Role: u.Role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthenticate attaches an identity when a valid token is present and
// never fails the request.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			if claims, err := m.tm.ParseAccess(token); err == nil {
				if u, err := m.users.GetByID(r.Context(), claims.UserID); err == nil && u.IsActive {
					r = r.WithContext(WithIdentity(r.Context(), Identity{UserID: u.ID, Role: u.Role}))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates a route to admins. The role is re-read from the store
// rather than trusted from the (possibly stale) claim.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		u, err := m.users.GetByID(r.Context(), id.UserID)
		if err != nil || !u.IsActive || u.Role != models.RoleAdmin {
			httpx.WriteError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
