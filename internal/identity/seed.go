package identity

import (
	"context"

	"github.com/simpleapi/simpleapi/internal/models"
	"github.com/simpleapi/simpleapi/internal/users"
	"github.com/simpleapi/simpleapi/pkg/logger"
)

const (
	seedUsername = "Tester"
	seedEmail    = "one@tester.io"
	seedPassword = "P4SsW0RD@."
)

// Seeder provisions the built-in role and a default account at startup.
type Seeder struct {
	store users.Store
}

func NewSeeder(store users.Store) *Seeder {
	return &Seeder{store: store}
}

// Initialize is idempotent: the role upsert is a no-op when present and the
// default user is only created when absent.
func (s *Seeder) Initialize(ctx context.Context) error {
	if err := s.store.EnsureRole(ctx, models.RoleUser); err != nil {
		return err
	}

	existing, err := s.store.FindByUsername(ctx, seedUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	u := &models.UserRecord{
		Username:       seedUsername,
		Email:          seedEmail,
		EmailConfirmed: true,
	}
	if err := s.store.Create(ctx, u, seedPassword); err != nil {
		return err
	}
	if err := s.store.AddToRole(ctx, u.ID, models.RoleUser); err != nil {
		return err
	}
	logger.Infof("Seeded default user %s / %s", seedUsername, seedEmail)
	return nil
}
