package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Ujjwal3492/Fitness/internal/webhook"
	"github.com/Ujjwal3492/Fitness/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// WebhookHandler receives WhatsApp Business webhook calls
type WebhookHandler struct {
	verifyToken string
	ingestor    *webhook.Ingestor
}

// NewWebhookHandler creates the webhook handler
func NewWebhookHandler(verifyToken string, ingestor *webhook.Ingestor) *WebhookHandler {
	return &WebhookHandler{verifyToken: verifyToken, ingestor: ingestor}
}

// Verify answers the subscription handshake by echoing hub.challenge
func (h *WebhookHandler) Verify(c echo.Context) error {
	log := logger.FromContext(c)

	mode := c.QueryParam("hub.mode")
	token := c.QueryParam("hub.verify_token")
	challenge := c.QueryParam("hub.challenge")

	if mode != "subscribe" || token == "" || token != h.verifyToken {
		log.Warn("Webhook verification rejected",
			zap.String("mode", mode),
			zap.Bool("token_present", token != ""))
		return c.String(http.StatusForbidden, http.StatusText(http.StatusForbidden))
	}

	log.Info("Webhook verified")
	return c.String(http.StatusOK, challenge)
}

// Receive stores keyword tagged messages as leads. Once the body parses the
// platform always gets EVENT_RECEIVED, even when single messages fail.
func (h *WebhookHandler) Receive(c echo.Context) error {
	log := logger.FromContext(c)

	var payload webhook.Payload
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		log.Warn("Malformed webhook payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Malformed webhook payload",
		})
	}

	res := h.ingestor.Ingest(c.Request().Context(), &payload)
	log.Info("Webhook processed",
		zap.Int("messages", res.Messages),
		zap.Int("matched", res.Matched),
		zap.Int("stored", res.Stored),
		zap.Int("failed", res.Failed))

	return c.String(http.StatusOK, "EVENT_RECEIVED")
}
