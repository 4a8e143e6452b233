package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client talks to the storefront's REST collaborator. All paths are
// relative to the configured base URL (e.g. https://host/api).
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the transport, mostly for tests.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithToken seeds the session credential at construction time.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// NewClient builds a collaborator client rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("storefront: base URL is required")
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("storefront: invalid base URL: %w", err)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    trimmed,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetToken installs the externally issued session credential.
func (c *Client) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

// ClearToken drops the session credential.
func (c *Client) ClearToken() {
	c.token = ""
}

// Authenticated reports whether a session credential is held. Callers
// use it to detect the auth precondition before issuing a call.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// ListProducts fetches the catalog, optionally filtered by category.
func (c *Client) ListProducts(ctx context.Context, category string) ([]Product, error) {
	path := "/products"
	if category = strings.TrimSpace(category); category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var products []Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product.
func (c *Client) GetProduct(ctx context.Context, id string) (Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// FetchCart reads the authoritative cart.
func (c *Client) FetchCart(ctx context.Context) (Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// AddCartItem asks the collaborator to merge a product into the cart.
func (c *Client) AddCartItem(ctx context.Context, req AddItemRequest) error {
	return c.do(ctx, http.MethodPost, "/cart/add", req, nil)
}

// RemoveCartItem drops a product line. Removal is idempotent from the
// caller's side: a not-found from the collaborator reads as success.
func (c *Client) RemoveCartItem(ctx context.Context, productID string) error {
	err := c.do(ctx, http.MethodDelete, "/cart/remove/"+url.PathEscape(productID), nil, nil)
	if typed, ok := err.(*Error); ok && typed.status == http.StatusNotFound {
		return nil
	}
	return err
}

// CreateOrder submits a checkout and returns the created ledger entry.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// ListOrders fetches the caller's order history.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Recommend asks the advisory collaborator for product picks.
func (c *Client) Recommend(ctx context.Context, preferences, category string) (Recommendation, error) {
	body := map[string]string{
		"user_preferences": preferences,
		"category":         category,
	}
	var rec Recommendation
	if err := c.do(ctx, http.MethodPost, "/ai/recommend", body, &rec); err != nil {
		return Recommendation{}, err
	}
	return rec, nil
}

type successEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return wrapError(KindValidation, err, "encode request")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return wrapError(KindNetwork, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapError(KindNetwork, err, "call collaborator")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return wrapError(KindNetwork, err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp.StatusCode, payload)
	}

	if dest == nil {
		return nil
	}
	var envelope successEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return wrapError(KindNetwork, err, "decode response envelope")
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		return wrapError(KindNetwork, err, "decode response body")
	}
	return nil
}

// errorFromResponse maps collaborator status codes onto the core's
// failure taxonomy. Unauthorized prompts for sign-in; client errors
// surface inline; everything else is a transient network failure.
func errorFromResponse(status int, payload []byte) error {
	message := http.StatusText(status)
	var envelope errorEnvelope
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	var kind Kind
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuthRequired
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		kind = KindValidation
	default:
		kind = KindNetwork
	}
	return &Error{kind: kind, message: message, status: status}
}
