package services

import (
	"context"
	"strings"
	"time"

	"github.com/tutorialhub/backend/internal/auth"
	"github.com/tutorialhub/backend/internal/models"
	repo "github.com/tutorialhub/backend/internal/repository"
)

type UserService struct {
	users repo.Users
	tm    *auth.TokenManager
}

func NewUserService(users repo.Users, tm *auth.TokenManager) *UserService {
	return &UserService{users: users, tm: tm}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	u := models.User{
		Username: strings.TrimSpace(username),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, invalid(err.Error())
	}
	if len(password) < 8 {
		return models.User{}, invalid("password must be at least 8 characters")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = hash
	return s.users.Create(ctx, u)
}

// TokenPair is the login/refresh response payload.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s *UserService) Login(ctx context.Context, email, password string) (models.User, TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || !u.IsActive {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.issuePair(u)
	return u, pair, err
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tm.ParseRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil || !u.IsActive {
		return TokenPair{}, ErrInvalidCredentials
	}
	return s.issuePair(u)
}

func (s *UserService) issuePair(u models.User) (TokenPair, error) {
	access, refresh, exp, err := s.tm.GeneratePair(u.ID, u.Role)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) AdminList(ctx context.Context, p repo.ListUsersParams) ([]models.User, int64, error) {
	return s.users.List(ctx, p)
}

func (s *UserService) AdminCreate(ctx context.Context, u models.User, password string) (models.User, error) {
	if err := u.Validate(); err != nil {
		return models.User{}, invalid(err.Error())
	}
	if len(password) < 8 {
		return models.User{}, invalid("password must be at least 8 characters")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = hash
	return s.users.Create(ctx, u)
}

// UserPatch is a partial admin update; nil fields are left untouched.
type UserPatch struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Role        *string `json:"role"`
	IsActive    *bool   `json:"is_active"`
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
}

// AdminUpdate applies a patch as actorID. Admins cannot demote themselves:
// the last admin locking themselves out is a support ticket nobody wants.
func (s *UserService) AdminUpdate(ctx context.Context, actorID, id string, p UserPatch) (models.User, error) {
	if p.Role != nil && *p.Role != models.RoleAdmin && actorID == id {
		return models.User{}, invalid("cannot demote self")
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if p.Username != nil {
		u.Username = strings.TrimSpace(*p.Username)
	}
	if p.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.Password != nil {
		if len(*p.Password) < 8 {
			return models.User{}, invalid("password must be at least 8 characters")
		}
		hash, err := auth.HashPassword(*p.Password)
		if err != nil {
			return models.User{}, err
		}
		u.PasswordHash = hash
	}
	if err := u.Validate(); err != nil {
		return models.User{}, invalid(err.Error())
	}
	return s.users.Update(ctx, u)
}

func (s *UserService) AdminDelete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return invalid("cannot delete self")
	}
	return s.users.Delete(ctx, id)
}
