package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	Type   string `json:"typ"` // "access" | "refresh"
	jwt.RegisteredClaims
}

// GeneratePair issues an access and refresh token for the given identity.
func (tm *TokenManager) GeneratePair(userID, role string) (access, refresh string, accessExp time.Time, err error) {
	now := time.Now()

	sign := func(typ string, ttl time.Duration, secret []byte) (string, time.Time, error) {
		claims := Claims{
			UserID: userID,
			Role:   role,
			Type:   typ,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tm.issuer,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		return signed, claims.ExpiresAt.Time, err
	}

	access, accessExp, err = sign("access", tm.accessTTL, tm.accessSecret)
	if err != nil {
		return "", "", time.Time{}, err
	}
	refresh, _, err = sign("refresh", tm.refreshTTL, tm.refreshSecret)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return access, refresh, accessExp, nil
}

// ParseAccess verifies an access token and returns its claims.
func (tm *TokenManager) ParseAccess(tokenStr string) (*Claims, error) {
	return tm.parse(tokenStr, "access", tm.accessSecret)
}

// ParseRefresh verifies a refresh token and returns its claims.
func (tm *TokenManager) ParseRefresh(tokenStr string) (*Claims, error) {
	return tm.parse(tokenStr, "refresh", tm.refreshSecret)
}

func (tm *TokenManager) parse(tokenStr, typ string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || claims.Type != typ {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
