package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/feedbackpod/feedbackpod/internal/identity/domain"
	"github.com/feedbackpod/feedbackpod/pkg/db"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) WithTx(tx *gorm.DB) domain.UserRepository {
	return &userRepo{db: tx}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrUserExists
	}
	return err
}

func (r *userRepo) FindByID(ctx context.Context, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByUsername(ctx context.Context, orgID, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("tenant_org_id = ? AND username = ?", orgID, username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindRootAdmin(ctx context.Context) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("role = ?", domain.RoleRootAdmin).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Order("created_date ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) ListByUsername(ctx context.Context, username string) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).Find(&users).Error
	return users, err
}

func (r *userRepo) UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

type tenantRepo struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) domain.TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) WithTx(tx *gorm.DB) domain.TenantRepository {
	return &tenantRepo{db: tx}
}

func (r *tenantRepo) Create(ctx context.Context, tenant *domain.Tenant) error {
	err := r.db.WithContext(ctx).Create(tenant).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrTenantExists
	}
	return err
}

func (r *tenantRepo) FindByName(ctx context.Context, name string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepo) FindByOrgID(ctx context.Context, orgID string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.WithContext(ctx).Where("org_id = ?", orgID).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepo) OrgIDExists(ctx context.Context, orgID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Tenant{}).Where("org_id = ?", orgID).Count(&count).Error
	return count > 0, err
}

func (r *tenantRepo) List(ctx context.Context) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	err := r.db.WithContext(ctx).Order("creation_date ASC").Find(&tenants).Error
	return tenants, err
}

func (r *tenantRepo) SetOwner(ctx context.Context, orgID string, owner snowflake.ID) error {
	tx := r.db.WithContext(ctx).Model(&domain.Tenant{}).Where("org_id = ?", orgID).Update("owner", owner)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

func (r *tenantRepo) UpdateFields(ctx context.Context, orgID string, fields map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&domain.Tenant{}).Where("org_id = ?", orgID).Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

func (r *tenantRepo) Delete(ctx context.Context, orgID string) error {
	tx := r.db.WithContext(ctx).Where("org_id = ?", orgID).Delete(&domain.Tenant{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

type tokenRepo struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) domain.TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) CreateRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepo) FindRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var record domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRefreshNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *tokenRepo) DeleteRefreshToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&domain.RefreshToken{}).Error
}

func (r *tokenRepo) Blacklist(ctx context.Context, entry *domain.BlacklistedToken) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *tokenRepo) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.BlacklistedToken{}).Where("token = ?", token).Count(&count).Error
	return count > 0, err
}

func (r *tokenRepo) DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&domain.RefreshToken{})
	return tx.RowsAffected, tx.Error
}
