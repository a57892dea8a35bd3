package channels

import (
	"context"
	"fmt"

	"campaign-engine/internal/enginerrors"
	"campaign-engine/internal/observability"

	"github.com/resendlabs/resend-go"
)

// ResendAdapter sends email through Resend
type ResendAdapter struct {
	emails EmailAPI
	from   string
	logger *observability.Logger
}

// NewResendAdapter creates an email adapter from an API key
func NewResendAdapter(apiKey, from string, logger *observability.Logger) (*ResendAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("failed to create Resend client: api key is empty")
	}
	return NewResendAdapterWithAPI(&resendEmails{apiKey: apiKey}, from, logger), nil
}

func NewResendAdapterWithAPI(emails EmailAPI, from string, logger *observability.Logger) *ResendAdapter {
	return &ResendAdapter{
		emails: emails,
		from:   from,
		logger: logger,
	}
}

func (a *ResendAdapter) Channel() string {
	return Email
}

func (a *ResendAdapter) Send(ctx context.Context, to Recipient, msg Message, idempotencyKey string) (Outcome, error) {
	ctx = observability.WithFields(ctx,
		observability.Channel(Email),
		observability.CustomerID(to.CustomerID),
		observability.Field{Key: "idempotency_key", Value: idempotencyKey},
	)

	if to.Address == "" {
		return Skipped(enginerrors.CodeNoAddress, "customer has no email address"), nil
	}

	params := &resend.SendEmailRequest{
		From:    a.from,
		To:      []string{to.Address},
		Subject: msg.Subject,
		Html:    msg.Body,
	}

	res, status, err := a.emails.Send(ctx, params, idempotencyKey)
	switch {
	case err == nil:
		a.logger.Debug(ctx, "email accepted by resend")
		return Accepted(res.Id), nil
	case status >= 200 && status < 300:
		a.logger.Warn(ctx, fmt.Sprintf("resend accepted email but the response was unreadable: %s", err))
		return Accepted(""), nil
	case status == 0:
		a.logger.Error(ctx, "resend call got no answer", err)
		return Outcome{}, unansweredError("resend", err)
	case rejectedStatus(status):
		a.logger.Warn(ctx, fmt.Sprintf("resend rejected email with %d: %s", status, err))
		return Rejected(enginerrors.CodeProviderRejected, err.Error()), nil
	default:
		a.logger.Error(ctx, fmt.Sprintf("resend answered %d", status), err)
		return Outcome{}, enginerrors.TransientChannel(enginerrors.CodeChannelUnavailable, "resend send failed", err)
	}
}
