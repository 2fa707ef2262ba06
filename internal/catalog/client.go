package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wagiedev/toolkit-mcp-go/internal/errors"
	"github.com/wagiedev/toolkit-mcp-go/internal/models"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 4 << 10

// Client is a typed wrapper over the catalog REST API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(cl *Client) {
		c := *cl.http
		c.Timeout = d
		cl.http = &c
	}
}

// WithLogger sets the client logger.
func WithLogger(log *slog.Logger) ClientOption {
	return func(cl *Client) {
		if log != nil {
			cl.log = log
		}
	}
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog base url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("catalog base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{},
		log:     slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.log = c.log.With("component", "catalog_client")

	return c, nil
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches every product.
func (c *Client) List(ctx context.Context) ([]models.ProductItem, error) {
	resp, err := c.do(ctx, "list", http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, statusError("list", resp)
	}

	products := make([]models.ProductItem, 0)
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, &errors.CollaboratorError{Op: "list", StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	return products, nil
}

// Get fetches one product. Any non-success status means absent and
// returns nil without an error.
func (c *Client) Get(ctx context.Context, id int64) (*models.ProductItem, error) {
	resp, err := c.do(ctx, "get", http.MethodGet, productPath(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		c.log.Debug("product absent", "id", id, "status", resp.StatusCode)

		return nil, nil
	}

	var p models.ProductItem
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, &errors.CollaboratorError{Op: "get", StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	return &p, nil
}

// Create adds a product and returns it as stored by the service.
func (c *Client) Create(ctx context.Context, in models.ProductInput) (models.ProductItem, error) {
	resp, err := c.do(ctx, "create", http.MethodPost, "/products", in)
	if err != nil {
		return models.ProductItem{}, err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return models.ProductItem{}, statusError("create", resp)
	}

	var p models.ProductItem
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return models.ProductItem{}, &errors.CollaboratorError{Op: "create", StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	return p, nil
}

// Update replaces a product. It reports false when the service answers 404.
func (c *Client) Update(ctx context.Context, id int64, in models.ProductInput) (bool, error) {
	return c.mutate(ctx, "update", http.MethodPut, id, in)
}

// Delete removes a product. It reports false when the service answers 404.
func (c *Client) Delete(ctx context.Context, id int64) (bool, error) {
	return c.mutate(ctx, "delete", http.MethodDelete, id, nil)
}

func (c *Client) mutate(ctx context.Context, op, method string, id int64, body any) (bool, error) {
	resp, err := c.do(ctx, op, method, productPath(id), body)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case success(resp.StatusCode):
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, statusError(op, resp)
	}
}

func (c *Client) do(ctx context.Context, op, method, path string, body any) (*http.Response, error) {
	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &errors.CollaboratorError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}

		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &errors.CollaboratorError{Op: op, Err: err}
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("catalog request failed", "op", op, "error", err)

		return nil, &errors.CollaboratorError{Op: op, Err: err}
	}

	c.log.Debug("catalog request", "op", op, "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	return resp, nil
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}

func success(code int) bool {
	return code >= 200 && code < 300
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	e := &errors.CollaboratorError{Op: op, StatusCode: resp.StatusCode}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		e.Err = fmt.Errorf("status %d: %s", resp.StatusCode, msg)
	}

	return e
}
