package user_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/cashflow/internal/test_utils"
	"github.com/klokku/cashflow/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, user.Repo) {
	if db == nil {
		t.Skip("database not available")
	}
	_, err := db.Exec(context.Background(), "TRUNCATE users CASCADE")
	require.NoError(t, err)
	return context.Background(), user.NewUserRepo(db)
}

func TestUserRepoImpl(t *testing.T) {
	t.Run("should create and read user", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)

		// when
		id, err := repo.CreateUser(ctx, user.User{Uid: "u-1", Username: "jane", DisplayName: "Jane", Settings: user.Settings{Timezone: "UTC"}})
		require.NoError(t, err)

		// then
		byId, err := repo.GetUser(ctx, id)
		require.NoError(t, err)
		byUid, err := repo.GetUserByUid(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, byId, byUid)
		assert.Equal(t, "Jane", byUid.DisplayName)
		assert.Equal(t, "UTC", byUid.Settings.Timezone)
	})

	t.Run("should report missing user", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)

		_, err := repo.GetUserByUid(ctx, "nope")

		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("should update display name and timezone", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		id, err := repo.CreateUser(ctx, user.User{Uid: "u-2", Username: "john", DisplayName: "John"})
		require.NoError(t, err)

		// when
		updated, err := repo.UpdateUser(ctx, id, user.User{DisplayName: "Johnny", Settings: user.Settings{Timezone: "America/Chicago"}})

		// then
		require.NoError(t, err)
		assert.Equal(t, "Johnny", updated.DisplayName)
		assert.Equal(t, "john", updated.Username)
		assert.Equal(t, "America/Chicago", updated.Settings.Timezone)
	})
}
