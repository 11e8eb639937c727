package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id snowflake.ID) (*User, error)
	FindByUsername(ctx context.Context, orgID, username string) (*User, error)
	FindRootAdmin(ctx context.Context) (*User, error)
	List(ctx context.Context) ([]User, error)
	ListByUsername(ctx context.Context, username string) ([]User, error)
	UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error
}

type TenantRepository interface {
	WithTx(tx *gorm.DB) TenantRepository
	Create(ctx context.Context, tenant *Tenant) error
	FindByName(ctx context.Context, name string) (*Tenant, error)
	FindByOrgID(ctx context.Context, orgID string) (*Tenant, error)
	OrgIDExists(ctx context.Context, orgID string) (bool, error)
	List(ctx context.Context) ([]Tenant, error)
	SetOwner(ctx context.Context, orgID string, owner snowflake.ID) error
	UpdateFields(ctx context.Context, orgID string, fields map[string]any) error
	Delete(ctx context.Context, orgID string) error
}

// TokenRepository persists the stateful half of the token service: refresh
// tokens and the access-token blacklist.
type TokenRepository interface {
	CreateRefreshToken(ctx context.Context, token *RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	Blacklist(ctx context.Context, entry *BlacklistedToken) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error)
}
