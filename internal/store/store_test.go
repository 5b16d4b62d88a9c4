package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawel3ala/wavestone/internal/hash"
	"github.com/pawel3ala/wavestone/internal/models"
	"github.com/pawel3ala/wavestone/internal/transport"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func desk() *models.Product {
	return &models.Product{Name: "Desk", Price: 120, DateAdded: "2024-01-01", Category: "Electronics"}
}

func TestSeed_Idempotent(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.Seed("user", "pass"))
	require.NoError(t, st.Seed("user", "pass"))

	user, err := st.UserByUsername(context.Background(), "user")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.True(t, hash.CheckPassword(user.PasswordHash, "pass"))
}

func TestCreateUser_Duplicate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.CreateUser(ctx, "alice", "hash1")
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	_, err = st.CreateUser(ctx, "alice", "hash2")
	assert.ErrorIs(t, err, ErrDuplicate)

	// Exact-match lookup: a different casing is a different user.
	other, err := st.CreateUser(ctx, "Alice", "hash3")
	require.NoError(t, err)
	assert.Equal(t, 2, other.ID)

	_, err = st.UserByUsername(ctx, "ALICE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProduct_MonotonicIDs(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.CreateProduct(ctx, desk())
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := st.CreateProduct(ctx, &models.Product{Name: "Shirt", Price: 25, DateAdded: "2024-02-10", Category: "Clothing"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	// Deleting the newest record must not free its id for reuse.
	_, err = st.DeleteProduct(ctx, second.ID)
	require.NoError(t, err)

	third, err := st.CreateProduct(ctx, &models.Product{Name: "Bread", Price: 3, DateAdded: "2024-03-01", Category: "Food"})
	require.NoError(t, err)
	assert.Equal(t, 3, third.ID)
}

func TestUpdateProduct_ShallowMerge(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateProduct(ctx, desk())
	require.NoError(t, err)

	price := 99.0
	updated, err := st.UpdateProduct(ctx, created.ID, transport.ProductPatch{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, 99.0, updated.Price)
	assert.Equal(t, "Desk", updated.Name)
	assert.Equal(t, "2024-01-01", updated.DateAdded)
	assert.Equal(t, "Electronics", updated.Category)

	name := "Standing Desk"
	category := "Clothing"
	updated, err = st.UpdateProduct(ctx, created.ID, transport.ProductPatch{Name: &name, Category: &category})
	require.NoError(t, err)
	assert.Equal(t, "Standing Desk", updated.Name)
	assert.Equal(t, "Clothing", updated.Category)
	assert.Equal(t, 99.0, updated.Price)

	_, err = st.UpdateProduct(ctx, 9999, transport.ProductPatch{Price: &price})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateProduct(ctx, desk())
	require.NoError(t, err)

	_, err = st.DeleteProduct(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := st.DeleteProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, deleted)

	items, err := st.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = st.ProductByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProducts_EmptyIsNotNil(t *testing.T) {
	st := newTestStore(t)

	items, err := st.Products(context.Background())
	require.NoError(t, err)
	// GET /products must serialize as [] even when nothing was created.
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
