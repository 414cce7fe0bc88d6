package test_utils

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/cashflow/pkg/user"
	"github.com/stretchr/testify/require"
)

// CreateUser stores a user and returns a context carrying it.
func CreateUser(t *testing.T, db *pgxpool.Pool, username string) (context.Context, user.User) {
	t.Helper()
	ctx := context.Background()
	u := user.User{
		Uid:         username + "-uid",
		Username:    username,
		DisplayName: username,
		Settings:    user.Settings{Timezone: "Europe/Warsaw"},
	}
	id, err := user.NewUserRepo(db).CreateUser(ctx, u)
	require.NoError(t, err)
	u.Id = id
	return user.WithUser(ctx, u), u
}
