// Package domain contains core types for the identity store.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Roles recognised by the access control guard. There is no implicit
// hierarchy; every route declares the exact set it accepts.
const (
	RoleRootAdmin = "rootadm"
	RoleOwner     = "owner"
	RoleAdmin     = "admin"
	RoleUser      = "user"
)

const (
	StatusInactive = 0
	StatusActive   = 1
)

// User represents an account scoped to a tenant org. Exactly one rootadm
// exists system-wide, attached to the reserved root org id.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Username     string       `gorm:"type:text;not null;uniqueIndex" json:"username"`
	Email        string       `gorm:"type:text" json:"email"`
	TenantOrgID  string       `gorm:"column:tenant_org_id;type:text;index" json:"tenant_org_id"`
	FullName     string       `gorm:"column:full_name;type:text" json:"full_name"`
	PasswordHash string       `gorm:"column:password_hash;type:text;not null" json:"-"`
	Role         string       `gorm:"type:text;not null" json:"role"`
	CreatedDate  time.Time    `gorm:"column:created_date;not null" json:"created_date"`
	Status       int          `gorm:"not null;default:1" json:"status"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Tenant represents an organization. OrgID is the public-facing handle used
// in URLs and is immutable once assigned.
type Tenant struct {
	ID              snowflake.ID  `gorm:"primaryKey" json:"id"`
	Name            string        `gorm:"type:text;not null;uniqueIndex" json:"name"`
	CustomPrefixURL string        `gorm:"column:custom_prefix_url;type:text" json:"custom_prefix_url"`
	UUID            string        `gorm:"type:text;uniqueIndex" json:"uuid"`
	OrgID           string        `gorm:"column:org_id;type:text;not null;uniqueIndex" json:"org_id"`
	Owner           *snowflake.ID `gorm:"column:owner" json:"owner"`
	CreationDate    time.Time     `gorm:"column:creation_date;not null" json:"creation_date"`
	Status          int           `gorm:"not null;default:1" json:"status"`
}

// TableName sets the database table name.
func (Tenant) TableName() string { return "tenants" }

// RefreshToken is an opaque long-lived credential persisted per user.
// Tokens are reusable until expiry; they are deleted on logout or when a
// refresh attempt finds them expired.
type RefreshToken struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"column:user_id;not null;index" json:"user_id"`
	Token     string       `gorm:"type:text;not null;uniqueIndex" json:"-"`
	CreatedAt time.Time    `gorm:"column:created_at;not null" json:"created_at"`
	ExpiresAt time.Time    `gorm:"column:expires_at;not null;index" json:"expires_at"`
}

// TableName sets the database table name.
func (RefreshToken) TableName() string { return "refresh_tokens" }

// BlacklistedToken records a revoked access token. Append-only; entries are
// never expired or cleaned up.
type BlacklistedToken struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Token         string       `gorm:"type:text;not null;uniqueIndex" json:"-"`
	BlacklistedAt time.Time    `gorm:"column:blacklisted_at;not null" json:"blacklisted_at"`
}

// TableName sets the database table name.
func (BlacklistedToken) TableName() string { return "blacklisted_tokens" }
