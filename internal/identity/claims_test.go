package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simpleapi/simpleapi/internal/models"
	"github.com/simpleapi/simpleapi/internal/users"
)

func seedClaimsUser(t *testing.T) (*users.MemoryStore, *models.UserRecord) {
	t.Helper()
	store := users.NewMemoryStore()
	ctx := context.Background()
	u := &models.UserRecord{Username: "alice", Email: "alice@example.com", EmailConfirmed: true}
	require.NoError(t, store.Create(ctx, u, "Secret123!"))
	require.NoError(t, store.EnsureRole(ctx, models.RoleUser))
	require.NoError(t, store.AddToRole(ctx, u.ID, models.RoleUser))
	require.NoError(t, store.AddClaim(ctx, u.ID, models.Claim{Type: "plan", Value: "pro"}))
	return store, u
}

func claimValues(claims []models.Claim, typ string) []string {
	var out []string
	for _, c := range claims {
		if c.Type == typ {
			out = append(out, c.Value)
		}
	}
	return out
}

func TestBuildClaims_AccessTokenSet(t *testing.T) {
	store, u := seedClaimsUser(t)

	claims, err := BuildClaims(context.Background(), store, u, true)
	require.NoError(t, err)

	require.Equal(t, []string{u.ID}, claimValues(claims, "sub"))
	require.Equal(t, []string{"alice@example.com"}, claimValues(claims, "email"))
	require.Len(t, claimValues(claims, "jti"), 1)
	require.Len(t, claimValues(claims, "nbf"), 1)
	require.Len(t, claimValues(claims, "iat"), 1)
	require.Equal(t, []string{models.RoleUser}, claimValues(claims, "role"))
	require.Equal(t, []string{"pro"}, claimValues(claims, "plan"))
}

func TestBuildClaims_RefreshTokenStaysMinimal(t *testing.T) {
	store, u := seedClaimsUser(t)

	claims, err := BuildClaims(context.Background(), store, u, false)
	require.NoError(t, err)

	require.Len(t, claims, 5)
	require.Empty(t, claimValues(claims, "role"))
	require.Empty(t, claimValues(claims, "plan"))
}

func TestBuildClaims_FreshJtiPerCall(t *testing.T) {
	store, u := seedClaimsUser(t)
	ctx := context.Background()

	first, err := BuildClaims(ctx, store, u, false)
	require.NoError(t, err)
	second, err := BuildClaims(ctx, store, u, false)
	require.NoError(t, err)

	require.NotEqual(t, claimValues(first, "jti"), claimValues(second, "jti"))
}

func TestBuildClaims_StoredClaimsNotDoubleAdded(t *testing.T) {
	store, u := seedClaimsUser(t)
	ctx := context.Background()
	// the same stored claim twice must only be added once
	require.NoError(t, store.AddClaim(ctx, u.ID, models.Claim{Type: "plan", Value: "pro"}))

	claims, err := BuildClaims(ctx, store, u, true)
	require.NoError(t, err)
	require.Equal(t, []string{"pro"}, claimValues(claims, "plan"))
}

func TestBuildClaims_EmptyEmail(t *testing.T) {
	store := users.NewMemoryStore()
	u := &models.UserRecord{ID: "u-1", Username: "noemail"}

	claims, err := BuildClaims(context.Background(), store, u, false)
	require.NoError(t, err)
	require.Equal(t, []string{""}, claimValues(claims, "email"))
}
