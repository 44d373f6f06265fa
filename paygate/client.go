// Package paygate is a thin client for the hosted-checkout payment
// gateway: session creation/lookup over HTTPS and signed webhook events.
package paygate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yamamaalobaid/damascus-tour-guide/config"
)

// Client is what the payment service depends on; tests swap in a fake.
type Client interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

type CheckoutSessionParams struct {
	AmountInCents int64
	Currency      string
	ProductName   string
	Description   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type CheckoutSession struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"payment_status"`
	PaymentIntentID string            `json:"payment_intent"`
	AmountTotal     int64             `json:"amount_total"`
	Currency        string            `json:"currency"`
	CustomerEmail   string            `json:"customer_email"`
	Metadata        map[string]string `json:"metadata"`
}

type PaymentIntent struct {
	ID               string            `json:"id"`
	Status           string            `json:"status"`
	Amount           int64             `json:"amount"`
	Currency         string            `json:"currency"`
	Metadata         map[string]string `json:"metadata"`
	LastErrorMessage string            `json:"last_error_message"`
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HTTPClient talks to the real gateway.
type HTTPClient struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		baseURL:   config.ConfigOr("PAYGATE_API_URL", "https://api.paygate.sy/v1"),
		secretKey: config.Config("PAYGATE_SECRET_KEY"),
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether gateway credentials are present. Payment
// endpoints answer 503 when they are not.
func (c *HTTPClient) Configured() bool {
	return c.secretKey != ""
}

func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("amount", strconv.FormatInt(params.AmountInCents, 10))
	form.Set("currency", strings.ToLower(params.Currency))
	form.Set("product_name", params.ProductName)
	form.Set("description", params.Description)
	form.Set("customer_email", params.CustomerEmail)
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	for k, v := range params.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	var session CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/checkout/sessions", strings.NewReader(form.Encode()), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPClient) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := c.do(ctx, http.MethodGet, "/checkout/sessions/"+url.PathEscape(sessionID), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("paygate: %s (%s)", apiErr.Message, apiErr.Code)
		}
		return fmt.Errorf("paygate: unexpected status %d", resp.StatusCode)
	}
	return json.Unmarshal(raw, out)
}
