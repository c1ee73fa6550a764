package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	razorpayAPIBaseURL = "https://api.razorpay.com"
	razorpayOrdersPath = "/v1/orders"
)

// RazorpayConfig holds API credentials for the Razorpay gateway
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string // overridable for tests
}

// Validate checks the config is complete
func (c *RazorpayConfig) Validate() error {
	if c.KeyID == "" {
		return fmt.Errorf("razorpay: key id is required")
	}
	if c.KeySecret == "" {
		return fmt.Errorf("razorpay: key secret is required")
	}
	return nil
}

// RazorpayAdapter implements Gateway against the Razorpay REST API
type RazorpayAdapter struct {
	config     *RazorpayConfig
	httpClient *http.Client
}

// NewRazorpayAdapter creates a new Razorpay adapter
func NewRazorpayAdapter(config *RazorpayConfig) (*RazorpayAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.BaseURL == "" {
		config.BaseURL = razorpayAPIBaseURL
	}
	return &RazorpayAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type razorpayOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type razorpayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateCheckout opens a Razorpay order and returns widget parameters
func (a *RazorpayAdapter) CreateCheckout(ctx context.Context, amountPaise int64, currency, receipt string, prefill Prefill) (*CheckoutSession, error) {
	if amountPaise <= 0 {
		return nil, fmt.Errorf("razorpay: amount must be positive, got %d", amountPaise)
	}
	if currency == "" {
		currency = "INR"
	}

	body, err := json.Marshal(razorpayOrderRequest{
		Amount:   amountPaise,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.BaseURL+razorpayOrdersPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(a.config.KeyID, a.config.KeySecret)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay: order create failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr razorpayErrorResponse
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("razorpay: %s (%s)", apiErr.Error.Description, apiErr.Error.Code)
		}
		return nil, fmt.Errorf("razorpay: unexpected status %d", resp.StatusCode)
	}

	var order razorpayOrderResponse
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("razorpay: failed to parse order response: %w", err)
	}

	return &CheckoutSession{
		GatewayOrderID: order.ID,
		KeyID:          a.config.KeyID,
		AmountPaise:    order.Amount,
		Currency:       order.Currency,
		Receipt:        order.Receipt,
		Prefill:        prefill,
	}, nil
}

// VerifyPayment validates the widget callback signature: HMAC-SHA256
// over "orderID|paymentID" keyed with the API secret, compared in
// constant time.
func (a *RazorpayAdapter) VerifyPayment(gatewayOrderID, paymentID, signature string) error {
	if gatewayOrderID == "" || paymentID == "" || signature == "" {
		return ErrSignatureMismatch
	}

	mac := hmac.New(sha256.New, []byte(a.config.KeySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}

// Ensure RazorpayAdapter implements Gateway
var _ Gateway = (*RazorpayAdapter)(nil)
