// Package rest implements ports.BackendGateway over the storefront's
// remote HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/thedeposit/storefront-client/internal/api/metrics"
	"github.com/thedeposit/storefront-client/internal/core/domain"
	"github.com/thedeposit/storefront-client/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client talks to the storefront backend. The bearer token is read from
// the token store on every request, so a login in one component is
// immediately visible to all others sharing the store.
//
// The HTTP client timeout bounds every call; a line can therefore never
// stay busy longer than the configured timeout.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenStore
	logger  zerolog.Logger
}

// NewClient creates a Client for the given base URL. A timeout <= 0 falls
// back to defaultTimeout.
func NewClient(baseURL string, timeout time.Duration, tokens ports.TokenStore, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

func (c *Client) Login(ctx context.Context, creds ports.Credentials) (*ports.AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: resp.Token, User: resp.User}, nil
}

func (c *Client) Register(ctx context.Context, reg ports.Registration) (*ports.AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, "register", http.MethodPost, "/api/auth/register", reg, &resp); err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: resp.Token, User: resp.User}, nil
}

func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var resp profileResponse
	if err := c.do(ctx, "profile", http.MethodGet, "/api/auth/profile", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) FetchCart(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, "fetch_cart", http.MethodGet, "/api/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddItem(ctx context.Context, input ports.CartItemInput) (*domain.Cart, error) {
	var resp cartResponse
	if err := c.do(ctx, "add_item", http.MethodPost, "/api/cart/items", input, &resp); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}

func (c *Client) UpdateItem(ctx context.Context, itemID int64, update ports.CartItemUpdate) (*domain.Cart, error) {
	var resp cartResponse
	path := fmt.Sprintf("/api/cart/items/%d", itemID)
	if err := c.do(ctx, "update_item", http.MethodPatch, path, update, &resp); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}

// RemoveItem deletes a line. The endpoint acknowledges only; callers
// re-fetch the cart to re-synchronize.
func (c *Client) RemoveItem(ctx context.Context, itemID int64) error {
	var resp ackResponse
	path := fmt.Sprintf("/api/cart/items/%d", itemID)
	return c.do(ctx, "remove_item", http.MethodDelete, path, nil, &resp)
}

func (c *Client) ClearCart(ctx context.Context) error {
	var resp ackResponse
	return c.do(ctx, "clear_cart", http.MethodDelete, "/api/cart/items", nil, &resp)
}

func (c *Client) ConfirmCart(ctx context.Context, input ports.ConfirmInput) (*domain.OrderConfirmation, error) {
	var resp confirmResponse
	if err := c.do(ctx, "confirm_cart", http.MethodPost, "/api/cart/confirm", input, &resp); err != nil {
		return nil, err
	}
	return &domain.OrderConfirmation{OrderID: resp.OrderID, TotalAmount: resp.TotalAmount}, nil
}

// do executes one API call: marshals the body, injects the bearer token
// and a request id, and decodes either the success payload into out or
// the canonical error envelope into a typed error.
func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	timer := prometheus.NewTimer(metrics.BackendRequestDuration.WithLabelValues(operation))
	defer timer.ObserveDuration()

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", operation, err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	token, err := c.tokens.Load(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load token, sending unauthenticated request")
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(operation, "network_error").Inc()
		c.logger.Warn().Err(err).Str("operation", operation).Msg("backend unreachable")
		return &domain.NetworkError{Op: operation, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(operation, "network_error").Inc()
		return &domain.NetworkError{Op: operation, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.remoteError(operation, resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			metrics.BackendRequestsTotal.WithLabelValues(operation, "remote_error").Inc()
			return fmt.Errorf("decode %s response: %w", operation, err)
		}
	}

	metrics.BackendRequestsTotal.WithLabelValues(operation, "success").Inc()
	return nil
}

// remoteError maps a non-2xx response to the error taxonomy: 401 means the
// session is missing or expired, everything else carries the server's
// message verbatim.
func (c *Client) remoteError(operation string, status int, raw []byte) error {
	var envelope errorResponse
	_ = json.Unmarshal(raw, &envelope)
	message := envelope.Error
	if message == "" {
		message = http.StatusText(status)
	}

	c.logger.Debug().
		Str("operation", operation).
		Int("status", status).
		Str("message", message).
		Msg("backend rejected request")

	if status == http.StatusUnauthorized {
		metrics.BackendRequestsTotal.WithLabelValues(operation, "auth_required").Inc()
		return domain.ErrAuthRequired
	}

	metrics.BackendRequestsTotal.WithLabelValues(operation, "remote_error").Inc()
	return &domain.RemoteError{StatusCode: status, Message: message}
}
