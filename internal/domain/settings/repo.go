package settings

import "context"

// Repository is the settings storage boundary.
type Repository interface {
	Get(ctx context.Context, key string) (*UISetting, error)
	List(ctx context.Context) ([]*UISetting, error)
	Upsert(ctx context.Context, s *UISetting) error
	Delete(ctx context.Context, key string) error
}
