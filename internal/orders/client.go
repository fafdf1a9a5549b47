package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/domain"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/pricing"
	"github.com/vishaldhakal/nisimatsuya-sub001/pkg/errors"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// TokenSource yields the bearer credential attached to order submissions.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// Client submits orders to the remote order API
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an order submission client
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

// OrderRequest is the payload sent to the order creation endpoint.
// Constructed once per submission attempt and sent exactly once.
type OrderRequest struct {
	FullName        string             `json:"full_name"`
	ShippingAddress string             `json:"shipping_address"`
	Phone           string             `json:"phone_number"`
	Email           string             `json:"email"`
	TotalAmount     string             `json:"total_amount"`
	DeliveryFee     string             `json:"delivery_fee"`
	City            string             `json:"city"`
	State           string             `json:"state"`
	ZipCode         string             `json:"zip_code"`
	Status          string             `json:"status"`
	Items           []OrderRequestItem `json:"items"`
}

type OrderRequestItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type orderResponse struct {
	OrderNumber string `json:"order_number"`
}

// BuildOrderRequest assembles the wire payload from a validated form, the
// priced cart quote, and the cart lines
func BuildOrderRequest(form domain.CheckoutForm, quote pricing.Quote, items []domain.CartLineItem) OrderRequest {
	req := OrderRequest{
		FullName:        form.FullName,
		ShippingAddress: form.Address,
		Phone:           form.Phone,
		Email:           form.Email,
		TotalAmount:     fmt.Sprintf("%.2f", quote.Total),
		DeliveryFee:     fmt.Sprintf("%.2f", quote.ShippingFee),
		City:            form.City,
		State:           form.State,
		ZipCode:         form.PostalCode,
		Status:          string(domain.OrderStatusPending),
		Items:           make([]OrderRequestItem, 0, len(items)),
	}
	for _, item := range items {
		req.Items = append(req.Items, OrderRequestItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice,
		})
	}
	return req
}

// Submit posts an order request to the order API. The call is made once,
// with no retry; there is no exactly-once guarantee, so a transport
// failure after the server accepted the order surfaces as an error here
// and may produce a duplicate if the customer retries. Callers that want
// protection can pass an idempotency key, sent as the Idempotency-Key
// header; an empty key sends nothing.
//
// On success it returns the server-assigned order number, falling back to
// a generated ORD + 6 digit number when the response omits one. The
// fallback can collide and will not match any server-side record.
func (c *Client) Submit(ctx context.Context, order OrderRequest, idempotencyKey string) (string, error) {
	jsonData, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("failed to marshal order request: %w", err)
	}

	url := c.baseURL + "/api/orders/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idempotencyKey != "" {
		req.Header.Set(IdempotencyKeyHeader, idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Order submission request failed", zap.Error(err))
		return "", &errors.ErrSubmissionFailed{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read order submission response", zap.Error(err))
		return "", &errors.ErrSubmissionFailed{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Order API returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return "", &errors.ErrSubmissionFailed{StatusCode: resp.StatusCode}
	}

	var parsed orderResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.logger.Warn("Failed to parse order response, generating fallback order number", zap.Error(err))
		return fallbackOrderNumber(), nil
	}
	if parsed.OrderNumber == "" {
		c.logger.Warn("Order response missing order_number, generating fallback order number")
		return fallbackOrderNumber(), nil
	}

	return parsed.OrderNumber, nil
}

// fallbackOrderNumber generates a pseudo-random ORD + 6 digit identifier.
// Used only when the server omits order_number; not guaranteed unique.
func fallbackOrderNumber() string {
	return fmt.Sprintf("ORD%06d", rand.Intn(1000000))
}
