package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simpleapi/simpleapi/internal/models"
	"github.com/simpleapi/simpleapi/internal/users"
)

func TestSeeder_Initialize(t *testing.T) {
	store := users.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, NewSeeder(store).Initialize(ctx))

	u, err := store.FindByUsername(ctx, "Tester")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "one@tester.io", u.Email)
	require.True(t, u.EmailConfirmed)

	roles, err := store.GetRoles(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{models.RoleUser}, roles)
}

func TestSeeder_Idempotent(t *testing.T) {
	store := users.NewMemoryStore()
	ctx := context.Background()
	seeder := NewSeeder(store)

	require.NoError(t, seeder.Initialize(ctx))
	require.NoError(t, seeder.Initialize(ctx))
}

func TestSeededUserCanLogin(t *testing.T) {
	store := users.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, NewSeeder(store).Initialize(ctx))

	cred, err := NewSigningCredential("seed-test-secret-32-bytes-xxxxxx")
	require.NoError(t, err)
	svc := NewService(store, NewSigner(cred, "simpleapi", "simpleapi-clients"), 15*time.Minute)

	out, err := svc.Login(ctx, LoginInput{Email: "one@tester.io", Password: "P4SsW0RD@."})
	require.NoError(t, err)
	require.Equal(t, "Tester", out.Username)

	claims, err := svc.signer.Verify(ctx, out.AccessToken)
	require.NoError(t, err)
	require.Equal(t, []string{models.RoleUser}, rolesOf(claims))
}
