package channels

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

	"campaign-engine/internal/enginerrors"
	"campaign-engine/internal/observability"
)

const (
	SignatureHeader   = "X-Webhook-Signature"
	IdempotencyHeader = "Idempotency-Key"
)

// Sign returns the signature header value for payload.
// Format: t=<timestamp>,v1=<hex hmac-sha256 of "<timestamp>.<payload>">
func Sign(secret string, payload []byte, timestamp int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", timestamp, payload)))
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

type webhookPayload struct {
	Channel     string `json:"channel"`
	CustomerID  string `json:"customer_id"`
	Address     string `json:"address"`
	Subject     string `json:"subject,omitempty"`
	Body        string `json:"body"`
	Idempotency string `json:"idempotency_key"`
}

type webhookResponse struct {
	ID string `json:"id"`
}

// WebhookAdapter delivers push and social messages to a gateway over a
// signed HTTP POST.
type WebhookAdapter struct {
	channel    string
	url        string
	secret     string
	httpClient *http.Client
	now        func() time.Time
	logger     *observability.Logger
}

func NewWebhookAdapter(channel, url, secret string, timeout time.Duration, logger *observability.Logger) *WebhookAdapter {
	return &WebhookAdapter{
		channel: channel,
		url:     url,
		secret:  secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now:    time.Now,
		logger: logger,
	}
}

func (a *WebhookAdapter) Channel() string {
	return a.channel
}

func (a *WebhookAdapter) Send(ctx context.Context, to Recipient, msg Message, idempotencyKey string) (Outcome, error) {
	ctx = observability.WithFields(ctx,
		observability.Channel(a.channel),
		observability.CustomerID(to.CustomerID),
		observability.Field{Key: "idempotency_key", Value: idempotencyKey},
	)

	if to.Address == "" {
		return Skipped(enginerrors.CodeNoAddress, fmt.Sprintf("customer has no %s address", a.channel)), nil
	}

	payload, err := json.Marshal(webhookPayload{
		Channel:     a.channel,
		CustomerID:  to.CustomerID,
		Address:     to.Address,
		Subject:     msg.Subject,
		Body:        msg.Body,
		Idempotency: idempotencyKey,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(payload))
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, Sign(a.secret, payload, a.now().Unix()))
	req.Header.Set(IdempotencyHeader, idempotencyKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Error(ctx, "failed to call channel gateway", err)
		return Outcome{}, enginerrors.TransientChannel(enginerrors.CodeChannelUnavailable, "gateway unreachable", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 10240))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var r webhookResponse
		_ = json.Unmarshal(body, &r)
		return Accepted(r.ID), nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		err := fmt.Errorf("gateway returned %d", resp.StatusCode)
		a.logger.Error(ctx, "channel gateway unavailable", err)
		return Outcome{}, enginerrors.TransientChannel(enginerrors.CodeChannelUnavailable, err.Error(), err)
	default:
		a.logger.Warn(ctx, fmt.Sprintf("channel gateway rejected message with %d", resp.StatusCode))
		return Rejected(fmt.Sprintf("HTTP_%d", resp.StatusCode), string(body)), nil
	}
}
