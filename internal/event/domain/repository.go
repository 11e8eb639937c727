package domain

import "context"

// Repository is the storage contract for events.
type Repository interface {
	Create(ctx context.Context, event *Event) error
	FindByCode(ctx context.Context, orgID, code string) (*Event, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	ListByOrg(ctx context.Context, orgID string) ([]Event, error)
	List(ctx context.Context) ([]Event, error)
	UpdateFields(ctx context.Context, orgID, code string, fields map[string]any) error
	Delete(ctx context.Context, orgID, code string) error
}
