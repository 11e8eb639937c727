package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feedbackpod/feedbackpod/internal/clock"
	"github.com/feedbackpod/feedbackpod/internal/config"
	identitydomain "github.com/feedbackpod/feedbackpod/internal/identity/domain"
	"github.com/feedbackpod/feedbackpod/internal/token/domain"
)

type Service struct {
	log        *zap.Logger
	users      identitydomain.UserRepository
	tokens     identitydomain.TokenRepository
	genID      *snowflake.Node
	clk        clock.Clock
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(log *zap.Logger, cfg config.Config, users identitydomain.UserRepository, tokens identitydomain.TokenRepository, genID *snowflake.Node, clk clock.Clock) domain.Service {
	return &Service{
		log:        log.Named("token.service"),
		users:      users,
		tokens:     tokens,
		genID:      genID,
		clk:        clk,
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  time.Duration(cfg.AccessTokenHours) * time.Hour,
		refreshTTL: time.Duration(cfg.RefreshTokenDays) * 24 * time.Hour,
	}
}

func (s *Service) Issue(ctx context.Context, user *identitydomain.User) (*domain.Pair, error) {
	accessToken, err := s.sign(user)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	refresh := &identitydomain.RefreshToken{
		ID:        s.genID.Generate(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.refreshTTL),
	}
	if err := s.tokens.CreateRefreshToken(ctx, refresh); err != nil {
		return nil, err
	}

	return &domain.Pair{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
	}, nil
}

func (s *Service) Verify(tokenString string) (*domain.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clk.Now))
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*domain.Claims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	record, err := s.tokens.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	if s.clk.Now().After(record.ExpiresAt) {
		if err := s.tokens.DeleteRefreshToken(ctx, refreshToken); err != nil {
			s.log.Warn("failed to delete expired refresh token", zap.Error(err))
		}
		return "", domain.ErrRefreshExpired
	}

	// Re-read the user so role or org changes take effect without re-login.
	user, err := s.users.FindByID(ctx, record.UserID)
	if err != nil {
		return "", err
	}

	return s.sign(user)
}

func (s *Service) Revoke(ctx context.Context, accessToken, refreshToken string) error {
	entry := &identitydomain.BlacklistedToken{
		ID:            s.genID.Generate(),
		Token:         accessToken,
		BlacklistedAt: s.clk.Now(),
	}
	if err := s.tokens.Blacklist(ctx, entry); err != nil {
		// Abort before touching the refresh row; the access token will at
		// least expire on its own, a surviving refresh token would not.
		return err
	}

	return s.tokens.DeleteRefreshToken(ctx, refreshToken)
}

func (s *Service) IsRevoked(ctx context.Context, accessToken string) (bool, error) {
	return s.tokens.IsBlacklisted(ctx, accessToken)
}

func (s *Service) sign(user *identitydomain.User) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("jwt secret not configured")
	}

	now := s.clk.Now()
	claims := domain.Claims{
		UserID:   user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
		OrgID:    user.TenantOrgID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
