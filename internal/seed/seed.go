// Package seed bootstraps the reserved root tenant so a fresh install is
// ready for root-admin setup without manual SQL.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/gorm"

	identitydomain "github.com/feedbackpod/feedbackpod/internal/identity/domain"
)

const rootTenantName = "Root"

// EnsureRootTenant creates the reserved root tenant when it does not exist.
// The root org id never collides with generated ids because generated ids
// are probed against this table.
func EnsureRootTenant(db *gorm.DB, node *snowflake.Node, rootOrgID string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if rootOrgID == "" {
		return errors.New("root org id is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&identitydomain.Tenant{}).
			Where("org_id = ?", rootOrgID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		tenant := &identitydomain.Tenant{
			ID:              node.Generate(),
			Name:            rootTenantName,
			CustomPrefixURL: "/tenants/o/" + rootOrgID + "/root",
			UUID:            uuid.NewString(),
			OrgID:           rootOrgID,
			CreationDate:    time.Now().UTC(),
			Status:          identitydomain.StatusActive,
		}
		return tx.Create(tenant).Error
	})
}

// RootAdminExists reports whether the singleton root administrator has been
// created yet.
func RootAdminExists(ctx context.Context, db *gorm.DB) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&identitydomain.User{}).
		Where("role = ?", identitydomain.RoleRootAdmin).
		Count(&count).Error
	return count > 0, err
}
