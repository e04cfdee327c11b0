package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sporthub/server/internal/shared/config"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.GatewayConfig{
		BaseURL:       server.URL,
		SecretKey:     "sk_test_secret",
		PreferredBank: "titan-paystack",
		Timeout:       5 * time.Second,
	}, zap.NewNop())
	return client, server
}

func TestCreateCustomer(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/customer", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":true,"data":{"customer_code":"CUS_abc123","email":"ada@example.com"}}`))
	})

	customer, err := client.CreateCustomer(context.Background(), "ada@example.com", "Ada Obi", "+2348012345678")

	require.NoError(t, err)
	assert.Equal(t, "CUS_abc123", customer.Code)
	assert.Equal(t, "ada@example.com", customer.Email)
}

func TestCreateVirtualAccount(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dedicated_account", r.URL.Path)
		w.Write([]byte(`{"status":true,"data":{"account_number":"9981234567","account_name":"SPORTHUB/ADA OBI","bank":{"name":"Titan Bank"}}}`))
	})

	account, err := client.CreateVirtualAccount(context.Background(), "CUS_abc123")

	require.NoError(t, err)
	assert.Equal(t, "9981234567", account.AccountNumber)
	assert.Equal(t, "Titan Bank", account.BankName)
	assert.Equal(t, "SPORTHUB/ADA OBI", account.AccountName)
}

func TestVerifyTransaction(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/SPH-20260115-A1B2C3D4", r.URL.Path)
		w.Write([]byte(`{"status":true,"data":{"reference":"SPH-20260115-A1B2C3D4","status":"success","amount":5102,"currency":"NGN","channel":"bank_transfer"}}`))
	})

	tx, err := client.VerifyTransaction(context.Background(), "SPH-20260115-A1B2C3D4")

	require.NoError(t, err)
	assert.True(t, tx.Successful())
	assert.Equal(t, int64(5102), tx.Amount)
}

func TestRejectedRequest(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":false,"message":"Customer not found"}`))
	})

	_, err := client.VerifyTransaction(context.Background(), "SPH-20260115-MISSING")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Customer not found")
}

func TestVerifyWebhookSignature(t *testing.T) {
	client := NewClient(config.GatewayConfig{SecretKey: "sk_test_secret"}, zap.NewNop())
	payload := []byte(`{"event":"charge.success","data":{"reference":"SPH-X"}}`)

	mac := hmac.New(sha512.New, []byte("sk_test_secret"))
	mac.Write(payload)
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.NoError(t, client.VerifyWebhookSignature(payload, valid))
	assert.ErrorIs(t, client.VerifyWebhookSignature(payload, "deadbeef"), ErrInvalidSignature)
	assert.ErrorIs(t, client.VerifyWebhookSignature([]byte("tampered"), valid), ErrInvalidSignature)
}
