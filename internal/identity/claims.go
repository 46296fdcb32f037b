package identity

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/simpleapi/simpleapi/internal/models"
	"github.com/simpleapi/simpleapi/internal/users"
)

// BuildClaims assembles the claim set for a user. Every token gets subject,
// email, a fresh jti and not-before/issued-at stamps. Access tokens
// additionally carry the user's stored claims and one "role" claim per role;
// refresh tokens stay minimal.
func BuildClaims(ctx context.Context, store users.Store, u *models.UserRecord, includeAuthorizationClaims bool) ([]models.Claim, error) {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	claims := []models.Claim{
		{Type: "sub", Value: u.ID},
		{Type: "email", Value: u.Email},
		{Type: "jti", Value: uuid.NewString()},
		{Type: "nbf", Value: now},
		{Type: "iat", Value: now},
	}
	if !includeAuthorizationClaims {
		return claims, nil
	}

	stored, err := store.GetClaims(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	seen := make(map[models.Claim]struct{}, len(stored))
	for _, c := range stored {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		claims = append(claims, c)
	}

	roles, err := store.GetRoles(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		claims = append(claims, models.Claim{Type: "role", Value: role})
	}
	return claims, nil
}
