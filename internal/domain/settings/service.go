package settings

import (
	"context"
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
)

type Service struct {
	repo   Repository
	policy *workflow.Policy
}

func NewService(repo Repository, policy *workflow.Policy) *Service {
	return &Service{repo: repo, policy: policy}
}

// Get reads one setting. Reads are open to any authenticated role so every
// screen can fetch its text and colors.
func (s *Service) Get(ctx context.Context, key string) (*UISetting, error) {
	return s.repo.Get(ctx, key)
}

func (s *Service) List(ctx context.Context) ([]*UISetting, error) {
	return s.repo.List(ctx)
}

// Set writes a setting. Admin only.
func (s *Service) Set(ctx context.Context, role workflow.Role, actorID string, setting *UISetting) error {
	if !s.policy.Allows(role, workflow.CapManageSettings) {
		return workflow.ErrRoleDenied
	}
	if setting.Key == "" {
		return fmt.Errorf("key is required")
	}
	setting.UpdatedBy = actorID
	return s.repo.Upsert(ctx, setting)
}

// Delete removes a setting, reverting the screen to its built-in default.
func (s *Service) Delete(ctx context.Context, role workflow.Role, key string) error {
	if !s.policy.Allows(role, workflow.CapManageSettings) {
		return workflow.ErrRoleDenied
	}
	return s.repo.Delete(ctx, key)
}
