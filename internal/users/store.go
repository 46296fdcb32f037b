package users

import (
	"context"
	"errors"
	"strings"

	"github.com/simpleapi/simpleapi/internal/models"
)

var (
	// ErrNotFound is returned for lookups by id when no record exists.
	ErrNotFound = errors.New("user not found")
	// ErrUnknownRole is returned when assigning a role that was never created.
	ErrUnknownRole = errors.New("role does not exist")
)

// RejectedError is returned by Create when the store refuses the new record.
// It carries one reason per violated rule (duplicate identity, password
// policy) so callers can surface all of them at once.
type RejectedError struct {
	Reasons []string
}

func (e *RejectedError) Error() string {
	return "user can't be created: " + strings.Join(e.Reasons, "; ")
}

// Store is the credential store the identity service depends on. It owns
// password hashing, uniqueness enforcement and role/claim persistence.
// Find methods return (nil, nil) when no record matches.
type Store interface {
	// Create persists a new record, hashing the given password. The record's
	// ID is assigned by the store. Rejections return *RejectedError.
	Create(ctx context.Context, u *models.UserRecord, password string) error
	FindByEmail(ctx context.Context, email string) (*models.UserRecord, error)
	FindByUsername(ctx context.Context, username string) (*models.UserRecord, error)
	// VerifyPassword reports whether the cleartext password matches the
	// record's stored hash.
	VerifyPassword(ctx context.Context, u *models.UserRecord, password string) (bool, error)
	GetRoles(ctx context.Context, userID string) ([]string, error)
	GetClaims(ctx context.Context, userID string) ([]models.Claim, error)
	AddClaim(ctx context.Context, userID string, claim models.Claim) error
	SetLockout(ctx context.Context, userID string, enabled bool) error
	// EnsureRole creates the named role when it does not exist yet.
	EnsureRole(ctx context.Context, name string) error
	// AddToRole assigns an existing role to the user.
	AddToRole(ctx context.Context, userID, role string) error
}
