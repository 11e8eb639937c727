package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/feedbackpod/feedbackpod/internal/feedback/domain"
	"github.com/feedbackpod/feedbackpod/pkg/db"
)

type repo struct {
	db *gorm.DB
}

// New builds a gorm-backed feedback repository.
func New(conn *gorm.DB) domain.Repository {
	return &repo{db: conn}
}

func (r *repo) Create(ctx context.Context, fb *domain.Feedback) error {
	err := r.db.WithContext(ctx).Create(fb).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrDuplicateSubmission
	}
	return err
}

func (r *repo) TokenExists(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Feedback{}).
		Where("feedback_token = ?", token).
		Count(&count).Error
	return count > 0, err
}

func (r *repo) List(ctx context.Context) ([]domain.Feedback, error) {
	var rows []domain.Feedback
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repo) ListByEvent(ctx context.Context, orgID, eventCode string) ([]domain.Feedback, error) {
	var rows []domain.Feedback
	err := r.db.WithContext(ctx).
		Where("tenant_org_id = ? AND event_code = ?", orgID, eventCode).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repo) ListByOrg(ctx context.Context, orgID string) ([]domain.Feedback, error) {
	var rows []domain.Feedback
	err := r.db.WithContext(ctx).
		Where("tenant_org_id = ?", orgID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repo) FindByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	var fb domain.Feedback
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&fb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *repo) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Feedback{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, orgID string, id int64) error {
	res := r.db.WithContext(ctx).
		Where("tenant_org_id = ? AND id = ?", orgID, id).
		Delete(&domain.Feedback{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
