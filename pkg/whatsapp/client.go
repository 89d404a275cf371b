// Package whatsapp sends text messages through the WhatsApp Business
// Cloud API.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Ujjwal3492/Fitness/pkg/config"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when the API token or sender id is missing
var ErrNotConfigured = errors.New("whatsapp client is not configured")

// Client talks to the Graph API messages endpoint of one sender number
type Client struct {
	BaseURL    string
	APIVersion string
	SenderID   string
	APIToken   string
	HTTPClient *http.Client
	Logger     *zap.Logger
	ready      bool
}

// SendResponse is the Graph API reply to a sent message
type SendResponse struct {
	Contacts []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// ErrorResponse is the Graph API error envelope
type ErrorResponse struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

type textMessage struct {
	MessagingProduct string `json:"messaging_product"`
	RecipientType    string `json:"recipient_type"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		PreviewURL bool   `json:"preview_url"`
		Body       string `json:"body"`
	} `json:"text"`
}

// NewClient creates a client from the WhatsApp configuration
func NewClient(cfg config.WhatsAppConfig, logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		APIVersion: cfg.APIVersion,
		SenderID:   cfg.SenderID,
		APIToken:   cfg.APIToken,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logger,
		ready:      cfg.Ready(),
	}
}

// Ready reports whether messages can be sent
func (c *Client) Ready() bool {
	return c.ready
}

// SendText sends a plain text message to the phone number to
func (c *Client) SendText(ctx context.Context, to, body string) (*SendResponse, error) {
	if !c.ready {
		return nil, ErrNotConfigured
	}

	msg := textMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
	}
	msg.Text.Body = body

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/%s/messages", c.BaseURL, c.APIVersion, c.SenderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("WhatsApp send request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Logger.Error("Failed to read WhatsApp response", zap.Error(err))
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err != nil || errorResp.Error.Message == "" {
			c.Logger.Error("Failed to parse error response",
				zap.Int("status_code", resp.StatusCode),
				zap.String("response", string(respBody)))
			return nil, fmt.Errorf("error sending message: %d %s", resp.StatusCode, string(respBody))
		}
		c.Logger.Error("WhatsApp send failed",
			zap.Int("code", errorResp.Error.Code),
			zap.String("type", errorResp.Error.Type),
			zap.String("message", errorResp.Error.Message))
		return nil, fmt.Errorf("error sending message: %d %s", errorResp.Error.Code, errorResp.Error.Message)
	}

	var sendResp SendResponse
	if err := json.Unmarshal(respBody, &sendResp); err != nil {
		c.Logger.Error("Failed to parse send response", zap.Error(err))
		return nil, err
	}

	c.Logger.Info("WhatsApp message sent", zap.Int("messages", len(sendResp.Messages)))
	return &sendResp, nil
}
