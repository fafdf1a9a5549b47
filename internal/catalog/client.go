package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenSource yields the bearer credential attached to content requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// Client calls the store API for storefront content: products, blogs,
// and testimonials. Responses are passed through as raw JSON.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a store content client
func NewClient(baseURL string, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// ListProducts fetches products, optionally filtered by category and page
func (c *Client) ListProducts(ctx context.Context, category string, page int) ([]byte, error) {
	u, err := url.Parse(c.baseURL + "/api/products/")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	if category != "" {
		q.Set("category", category)
	}
	if page > 0 {
		q.Set("page", fmt.Sprintf("%d", page))
	}
	u.RawQuery = q.Encode()

	return c.get(ctx, u.String())
}

// GetProduct fetches a single product by id
func (c *Client) GetProduct(ctx context.Context, id string) ([]byte, error) {
	return c.get(ctx, c.baseURL+"/api/products/"+url.PathEscape(id)+"/")
}

// ListBlogs fetches the blog posts
func (c *Client) ListBlogs(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.baseURL+"/api/blogs/")
}

// ListTestimonials fetches the customer testimonials
func (c *Client) ListTestimonials(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.baseURL+"/api/testimonials/")
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Store API request failed", zap.Error(err), zap.String("url", url))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("store API returned %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
