package domain

import "context"

// Repository is the storage contract for feedback rows.
type Repository interface {
	Create(ctx context.Context, fb *Feedback) error
	TokenExists(ctx context.Context, token string) (bool, error)
	List(ctx context.Context) ([]Feedback, error)
	ListByEvent(ctx context.Context, orgID, eventCode string) ([]Feedback, error)
	ListByOrg(ctx context.Context, orgID string) ([]Feedback, error)
	FindByID(ctx context.Context, id int64) (*Feedback, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, orgID string, id int64) error
}
