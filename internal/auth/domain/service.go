// Package domain contains the authentication service contract: login,
// registration, and root-admin bootstrap.
package domain

import (
	"context"
	"errors"

	identitydomain "github.com/feedbackpod/feedbackpod/internal/identity/domain"
	tokendomain "github.com/feedbackpod/feedbackpod/internal/token/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordRequired   = errors.New("password is required")
	ErrOwnerRequired      = errors.New("only an owner can create a new tenant")
	ErrRootAdminExists    = errors.New("root admin already exists")
)

type RegisterRequest struct {
	TenantName string `json:"tenantName"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Password   string `json:"password"`
	Role       string `json:"role"`
}

type RegisterResult struct {
	UserID        string
	TenantID      string
	OrgID         string
	TenantCreated bool
}

type LoginRequest struct {
	OrgID    string `json:"orgId"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateRootAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type Service interface {
	// CreateRootAdmin bootstraps the sole rootadm account. Once one exists,
	// only an authenticated rootadm (callerRole) may mint a successor.
	CreateRootAdmin(ctx context.Context, callerRole string, authenticated bool, req CreateRootAdminRequest) (*identitydomain.User, error)

	// Register creates a tenant plus its owner in one transaction, or
	// attaches a non-owner user to an existing tenant.
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)

	// Login verifies credentials and issues an access/refresh token pair.
	// An empty OrgID selects the root-admin login path.
	Login(ctx context.Context, req LoginRequest) (*tokendomain.Pair, error)

	ListUsers(ctx context.Context) ([]identitydomain.User, error)
	GetUsersByUsername(ctx context.Context, username string) ([]identitydomain.User, error)
}
