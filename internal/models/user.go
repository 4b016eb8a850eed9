package models

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	DisplayName  string    `json:"display_name,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthorRef is the display-safe subset embedded in tutorial responses.
type AuthorRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (u *User) Validate() error {
	if len(strings.TrimSpace(u.Username)) < 3 {
		return errors.New("username too short")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("invalid email")
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return errors.New("unknown role")
	}
	return nil
}

func (u *User) Author() AuthorRef {
	return AuthorRef{ID: u.ID, Username: u.Username}
}
