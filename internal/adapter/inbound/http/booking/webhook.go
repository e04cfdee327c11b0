package bookinghttp

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sporthub/server/internal/domain/booking"
	"github.com/sporthub/server/internal/port/inbound"
	"github.com/sporthub/server/internal/port/outbound"
)

// SignatureHeader is the header Paystack signs webhook bodies with.
const SignatureHeader = "x-paystack-signature"

// WebhookHandler handles payment gateway webhook requests.
type WebhookHandler struct {
	domain  booking.BookingDomain
	gateway outbound.PaymentGatewayPort
	logger  *zap.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(domain booking.BookingDomain, gateway outbound.PaymentGatewayPort, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{domain: domain, gateway: gateway, logger: logger}
}

// RegisterRoutes registers webhook routes. These are unauthenticated;
// the HMAC signature is the only credential.
func (h *WebhookHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/webhooks/paystack", h.HandlePaystackWebhook)
}

type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

// HandlePaystackWebhook handles POST /webhooks/paystack. The raw body
// is verified against the signature header before anything is decoded.
// A 200 is returned for events the engine does not act on so the
// gateway stops retrying them.
func (h *WebhookHandler) HandlePaystackWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid body"})
		return
	}

	if err := h.gateway.VerifyWebhookSignature(body, c.GetHeader(SignatureHeader)); err != nil {
		h.logger.Warn("webhook signature rejected",
			zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"status": "invalid signature"})
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid payload"})
		return
	}
	if payload.Data.Reference == "" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := h.domain.ProcessWebhookEvent(c.Request.Context(), payload.Event, payload.Data.Reference, body); err != nil {
		h.logger.Error("webhook processing failed",
			zap.String("event", payload.Event),
			zap.String("reference", payload.Data.Reference),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Compile-time check
var _ inbound.WebhookHttpPort = (*WebhookHandler)(nil)
