// Package catalogclient is the typed data layer over the catalog API: it
// attaches the persisted bearer token to every authorized request and caches
// product queries until a mutation invalidates them.
package catalogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Product struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	DateAdded string  `json:"dateAdded"`
	Category  string  `json:"category"`
}

type ProductInput struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	DateAdded string  `json:"dateAdded"`
	Category  string  `json:"category"`
}

// ProductPatch sends only the non-nil fields; the service keeps the rest.
type ProductPatch struct {
	Name      *string  `json:"name,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	DateAdded *string  `json:"dateAdded,omitempty"`
	Category  *string  `json:"category,omitempty"`
}

type FieldError struct {
	Type     string `json:"type"`
	Value    any    `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// APIError carries the service's error payload verbatim so callers can show
// Message or the field errors to the user.
type APIError struct {
	StatusCode int
	Message    string       `json:"message"`
	Errors     []FieldError `json:"errors"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	}
	if len(e.Errors) > 0 {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Errors[0].Msg)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    SessionStore
	cache      *tagCache
}

func New(baseURL string, session SessionStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		session: session,
		cache:   newTagCache(),
	}
}

// do runs one request and decodes the response into out. The bearer token is
// read from the session store at request time, never cached on the client.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	tok, err := c.session.Token()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Register creates the account and returns the confirmation message. It does
// not log the new user in.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/register", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login signs in and persists the returned token in the session store.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp struct {
		Auth  bool    `json:"auth"`
		Token *string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", body, &resp); err != nil {
		return err
	}
	if resp.Token == nil || *resp.Token == "" {
		return fmt.Errorf("login: no token in response")
	}
	return c.session.SetToken(*resp.Token)
}

// SignOut only clears the local copy of the token; the service keeps no
// revocation list, so the token itself stays valid until it expires.
func (c *Client) SignOut() error {
	return c.session.Clear()
}

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	const key = "GET /products"
	if v, ok := c.cache.get(key); ok {
		return append([]Product(nil), v.([]Product)...), nil
	}

	var items []Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &items); err != nil {
		return nil, err
	}
	c.cache.set(key, items, TagProducts)
	return append([]Product(nil), items...), nil
}

func (c *Client) Product(ctx context.Context, id int) (*Product, error) {
	key := fmt.Sprintf("GET /products/%d", id)
	if v, ok := c.cache.get(key); ok {
		p := v.(Product)
		return &p, nil
	}

	var p Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &p); err != nil {
		return nil, err
	}
	c.cache.set(key, p, TagProducts)
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodPost, "/products", input, &p); err != nil {
		return nil, err
	}
	c.cache.invalidate(TagProducts)
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int, patch ProductPatch) (*Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), patch, &p); err != nil {
		return nil, err
	}
	c.cache.invalidate(TagProducts)
	return &p, nil
}

// DeleteProduct removes the record and returns it (the service responds with
// a one-element array).
func (c *Client) DeleteProduct(ctx context.Context, id int) (*Product, error) {
	var deleted []Product
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, &deleted); err != nil {
		return nil, err
	}
	c.cache.invalidate(TagProducts)
	if len(deleted) == 0 {
		return nil, fmt.Errorf("delete: empty response")
	}
	return &deleted[0], nil
}
