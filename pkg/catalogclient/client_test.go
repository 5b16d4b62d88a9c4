package catalogclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog is a minimal stand-in for the service, counting list fetches
// so the cache behaviour is observable.
type fakeCatalog struct {
	listCalls atomic.Int64
	products  []Product
}

func (f *fakeCatalog) handler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Username, Password string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "pass" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"auth": false, "token": nil, "message": "Invalid password."})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"auth": true, "token": "issued-token"})
	})

	mux.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"errors": []map[string]any{{
			"type": "field", "msg": "Username must be at least 4 characters long", "path": "username", "location": "body",
		}}})
	})

	requireBearer := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer issued-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"auth": false, "message": "No token provided."})
			return false
		}
		return true
	}

	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		f.listCalls.Add(1)
		json.NewEncoder(w).Encode(f.products)
	})

	mux.HandleFunc("POST /products", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		var p Product
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		p.ID = len(f.products) + 1
		f.products = append(f.products, p)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(p)
	})

	mux.HandleFunc("DELETE /products/1", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		deleted := f.products[0]
		f.products = f.products[1:]
		json.NewEncoder(w).Encode([]Product{deleted})
	})

	return mux
}

func newTestClient(t *testing.T) (*Client, *fakeCatalog, *MemorySessionStore) {
	t.Helper()

	fake := &fakeCatalog{}
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	session := &MemorySessionStore{}
	return New(srv.URL, session), fake, session
}

func TestLogin_PersistsToken(t *testing.T) {
	client, _, session := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Login(ctx, "user", "pass"))

	tok, err := session.Token()
	require.NoError(t, err)
	assert.Equal(t, "issued-token", tok)
}

func TestLogin_Failure(t *testing.T) {
	client, _, session := newTestClient(t)

	err := client.Login(context.Background(), "user", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid password.", apiErr.Message)

	tok, err := session.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestRegister_SurfacesFieldErrors(t *testing.T) {
	client, _, _ := newTestClient(t)

	_, err := client.Register(context.Background(), "ab", "Secret123!")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, "Username must be at least 4 characters long", apiErr.Errors[0].Msg)
}

func TestProducts_RequiresSession(t *testing.T) {
	client, _, _ := newTestClient(t)

	_, err := client.Products(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestProducts_CachedUntilMutation(t *testing.T) {
	client, fake, _ := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx, "user", "pass"))

	_, err := client.Products(ctx)
	require.NoError(t, err)
	_, err = client.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fake.listCalls.Load(), "second list must come from cache")

	created, err := client.CreateProduct(ctx, ProductInput{
		Name: "Desk", Price: 120, DateAdded: "2024-01-01", Category: "Electronics",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	items, err := client.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fake.listCalls.Load(), "mutation must invalidate the cache")
	require.Len(t, items, 1)
	assert.Equal(t, "Desk", items[0].Name)

	deleted, err := client.DeleteProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Desk", deleted.Name)

	items, err = client.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(3), fake.listCalls.Load())
}

func TestSignOut_ClearsSessionOnly(t *testing.T) {
	client, _, session := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx, "user", "pass"))

	require.NoError(t, client.SignOut())

	tok, err := session.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)

	// The next authorized call goes out without a token and is rejected.
	_, err = client.Products(ctx)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}
