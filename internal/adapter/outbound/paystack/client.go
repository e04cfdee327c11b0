// Package paystack implements the payment gateway port against the
// Paystack REST API. All outbound calls run through a circuit breaker
// so a degraded gateway fails fast instead of tying up request workers.
package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/outbound"
	"github.com/sporthub/server/internal/shared/config"
	"go.uber.org/zap"
)

// ErrInvalidSignature is returned when a webhook signature does not
// match the payload.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Client implements outbound.PaymentGatewayPort against Paystack.
type Client struct {
	baseURL       string
	secretKey     string
	preferredBank string
	httpClient    *http.Client
	breaker       *gobreaker.CircuitBreaker[[]byte]
	logger        *zap.Logger
}

var _ outbound.PaymentGatewayPort = (*Client)(nil)

// NewClient creates a new Paystack client.
func NewClient(cfg config.GatewayConfig, logger *zap.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "paystack",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("gateway circuit state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:     cfg.SecretKey,
		preferredBank: cfg.PreferredBank,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		breaker:       breaker,
		logger:        logger,
	}
}

// Name returns the gateway name.
func (c *Client) Name() string {
	return "paystack"
}

// apiResponse is the common Paystack envelope.
type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	raw, err := c.breaker.Execute(func() ([]byte, error) {
		var reader io.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("marshal request: %w", err)
			}
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.secretKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("call gateway: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("gateway error %d: %s", resp.StatusCode, data)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	var envelope apiResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !envelope.Status {
		return nil, fmt.Errorf("gateway rejected request: %s", envelope.Message)
	}
	return envelope.Data, nil
}

// CreateCustomer creates a customer on Paystack.
func (c *Client) CreateCustomer(ctx context.Context, email, name, phone string) (*outbound.GatewayCustomer, error) {
	first, last := splitName(name)
	data, err := c.do(ctx, http.MethodPost, "/customer", map[string]string{
		"email":      email,
		"first_name": first,
		"last_name":  last,
		"phone":      phone,
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		CustomerCode string `json:"customer_code"`
		Email        string `json:"email"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	return &outbound.GatewayCustomer{Code: out.CustomerCode, Email: out.Email}, nil
}

// CreateVirtualAccount issues a dedicated virtual account for a customer.
func (c *Client) CreateVirtualAccount(ctx context.Context, customerCode string) (*model.VirtualAccount, error) {
	data, err := c.do(ctx, http.MethodPost, "/dedicated_account", map[string]string{
		"customer":       customerCode,
		"preferred_bank": c.preferredBank,
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		AccountNumber string `json:"account_number"`
		AccountName   string `json:"account_name"`
		Bank          struct {
			Name string `json:"name"`
		} `json:"bank"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode dedicated account: %w", err)
	}

	c.logger.Info("dedicated account issued",
		zap.String("customer", customerCode),
		zap.String("bank", out.Bank.Name))

	return &model.VirtualAccount{
		AccountNumber: out.AccountNumber,
		BankName:      out.Bank.Name,
		AccountName:   out.AccountName,
	}, nil
}

// VerifyTransaction fetches a transaction by reference.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*outbound.GatewayTransaction, error) {
	data, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		PaidAt    string `json:"paid_at"`
		Channel   string `json:"channel"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	return &outbound.GatewayTransaction{
		Reference: out.Reference,
		Status:    out.Status,
		Amount:    out.Amount,
		Currency:  out.Currency,
		PaidAt:    out.PaidAt,
		Channel:   out.Channel,
	}, nil
}

// VerifyWebhookSignature checks the HMAC-SHA512 signature Paystack
// computes over the raw request body.
func (c *Client) VerifyWebhookSignature(payload []byte, signature string) error {
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

func splitName(name string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return name, ""
}
