package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/feedbackpod/feedbackpod/internal/event/domain"
)

type repo struct {
	db *gorm.DB
}

// New builds a gorm-backed event repository.
func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repo) FindByCode(ctx context.Context, orgID, code string) (*domain.Event, error) {
	var ev domain.Event
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND event_code = ?", orgID, code).
		First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *repo) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("event_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *repo) ListByOrg(ctx context.Context, orgID string) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *repo) List(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&events).Error
	return events, err
}

func (r *repo) UpdateFields(ctx context.Context, orgID, code string, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("org_id = ? AND event_code = ?", orgID, code).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, orgID, code string) error {
	res := r.db.WithContext(ctx).
		Where("org_id = ? AND event_code = ?", orgID, code).
		Delete(&domain.Event{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
