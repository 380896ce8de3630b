package userstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andaru/collectxml/users"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func TestStoreInsertAndLoad(t *testing.T) {
	check := assert.New(t)
	ctx := context.Background()
	store := setupTestStore(t)

	u, err := store.LoadByUserName(ctx, "alice")
	require.NoError(t, err)
	check.Nil(u)

	created, err := store.InsertUser(ctx, "alice", "password", users.RoleEntry)
	require.NoError(t, err)
	check.True(created.Enabled)

	loaded, err := store.LoadByUserName(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	check.Equal(created.ID, loaded.ID)
	check.Equal([]users.Role{users.RoleEntry}, loaded.Roles)

	ok, err := store.CheckPassword(ctx, "alice", "password")
	require.NoError(t, err)
	check.True(ok)
	ok, err = store.CheckPassword(ctx, "alice", "wrong")
	require.NoError(t, err)
	check.False(ok)
}

func TestStoreDuplicateIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	_, err := store.InsertUser(ctx, "alice", "password", users.RoleEntry)
	require.NoError(t, err)
	_, err = store.InsertUser(ctx, "alice", "password", users.RoleEntry)

	var perr *users.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "alice", perr.Name)
}

func TestStoreMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")
	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.InsertUser(context.Background(), "alice", "password", users.RoleEntry)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	u, err := store.LoadByUserName(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotNil(t, u)
}

func TestStoreWithResolver(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	r := users.NewResolver(store)
	cache := users.NewCache()
	a, err := r.Resolve(context.Background(), cache, "alice")
	require.NoError(t, err)
	b, err := r.Resolve(context.Background(), cache, "alice")
	require.NoError(t, err)
	assert.Same(t, a, b)
}
