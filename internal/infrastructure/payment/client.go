package payment

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/oksasatya/go-storefront/internal/application"
	"github.com/oksasatya/go-storefront/internal/domain/entity"
)

const checkoutPath = "/api/checkout/url/"

// Client talks to a Fondy-compatible hosted checkout API.
type Client struct {
	BaseURL    string
	MerchantID string
	SecretKey  string
	HTTP       *http.Client
}

func NewClient(baseURL, merchantID, secret string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		MerchantID: merchantID,
		SecretKey:  secret,
		HTTP:       &http.Client{Timeout: timeout},
	}
}

type checkoutResponse struct {
	Response struct {
		ResponseStatus string `json:"response_status"`
		CheckoutURL    string `json:"checkout_url"`
		ErrorMessage   string `json:"error_message"`
		ErrorCode      int    `json:"error_code"`
	} `json:"response"`
}

// Signature signs the non-empty parameters sorted by key, prefixed with the secret.
func Signature(secret string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if k == "signature" || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, secret)
	for _, k := range keys {
		parts = append(parts, params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func (c *Client) params(req entity.PaymentRequest) map[string]string {
	p := map[string]string{
		"order_id":    req.OrderID,
		"order_desc":  req.OrderDesc,
		"currency":    req.Currency,
		"amount":      req.Amount,
		"merchant_id": c.MerchantID,
	}
	p["signature"] = Signature(c.SecretKey, p)
	return p
}

// CheckoutURL performs a single request; every failure wraps application.ErrPaymentGateway.
func (c *Client) CheckoutURL(ctx context.Context, req entity.PaymentRequest) (string, error) {
	body, err := json.Marshal(map[string]any{"request": c.params(req)})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", application.ErrPaymentGateway, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+checkoutPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", application.ErrPaymentGateway, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", application.ErrPaymentGateway, err)
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", application.ErrPaymentGateway, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", application.ErrPaymentGateway, res.StatusCode)
	}

	var out checkoutResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", application.ErrPaymentGateway, err)
	}
	r := out.Response
	if r.ResponseStatus != "success" {
		return "", fmt.Errorf("%w: %s (code %d)", application.ErrPaymentGateway, r.ErrorMessage, r.ErrorCode)
	}
	if r.CheckoutURL == "" {
		return "", fmt.Errorf("%w: empty checkout url", application.ErrPaymentGateway)
	}
	return r.CheckoutURL, nil
}

var _ application.Gateway = (*Client)(nil)
