// Package domain defines the token service contract: stateless JWT
// verification plus stateful refresh and revocation backed by the
// identity store.
package domain

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	identitydomain "github.com/feedbackpod/feedbackpod/internal/identity/domain"
)

var (
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrRefreshExpired = errors.New("refresh token expired")
)

// Claims is the signed access-token payload. Role and org are snapshots of
// the user at issuance; a refresh re-reads the current values.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	OrgID    string `json:"org_id"`
	jwt.RegisteredClaims
}

// Pair is the result of a successful login.
type Pair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type Service interface {
	// Issue signs an access token for user and persists a fresh refresh token.
	Issue(ctx context.Context, user *identitydomain.User) (*Pair, error)

	// Verify checks signature and expiry only. Revocation is the guard's
	// concern: verification stays stateless, the blacklist lookup is a
	// separate, stateful step.
	Verify(tokenString string) (*Claims, error)

	// Refresh exchanges a stored refresh token for a new access token bound
	// to the user's current role and org. Expired tokens are deleted on use.
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// Revoke blacklists the access token and deletes the refresh token. The
	// blacklist insert must succeed before the refresh row is touched: a
	// live refresh token is worse than a stale access token.
	Revoke(ctx context.Context, accessToken, refreshToken string) error

	// IsRevoked reports whether an access token has been blacklisted.
	IsRevoked(ctx context.Context, accessToken string) (bool, error)
}
