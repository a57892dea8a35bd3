package channels

import (
	"context"
	"errors"
	"fmt"

	"campaign-engine/internal/enginerrors"
	"campaign-engine/internal/observability"

	twclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioAdapter sends SMS through Twilio
type TwilioAdapter struct {
	messages MessageAPI
	from     string
	logger   *observability.Logger
}

// NewTwilioAdapter creates an SMS adapter from account credentials
func NewTwilioAdapter(accountSID, authToken, from string, logger *observability.Logger) *TwilioAdapter {
	return NewTwilioAdapterWithAPI(&twilioMessages{accountSID: accountSID, authToken: authToken}, from, logger)
}

func NewTwilioAdapterWithAPI(messages MessageAPI, from string, logger *observability.Logger) *TwilioAdapter {
	return &TwilioAdapter{
		messages: messages,
		from:     from,
		logger:   logger,
	}
}

func (a *TwilioAdapter) Channel() string {
	return SMS
}

func (a *TwilioAdapter) Send(ctx context.Context, to Recipient, msg Message, idempotencyKey string) (Outcome, error) {
	ctx = observability.WithFields(ctx,
		observability.Channel(SMS),
		observability.CustomerID(to.CustomerID),
		observability.Field{Key: "idempotency_key", Value: idempotencyKey},
	)

	if to.Address == "" {
		return Skipped(enginerrors.CodeNoAddress, "customer has no phone number"), nil
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to.Address)
	params.SetFrom(a.from)
	params.SetBody(msg.Body)

	resp, err := a.messages.CreateMessage(ctx, params, idempotencyKey)
	if err != nil {
		var restErr *twclient.TwilioRestError
		if !errors.As(err, &restErr) {
			a.logger.Error(ctx, "twilio call got no answer", err)
			return Outcome{}, unansweredError("twilio", err)
		}
		if rejectedStatus(restErr.Status) {
			a.logger.Warn(ctx, fmt.Sprintf("twilio rejected message: %d %s", restErr.Code, restErr.Message))
			return Rejected(fmt.Sprintf("TWILIO_%d", restErr.Code), restErr.Message), nil
		}
		a.logger.Error(ctx, "failed to send sms", err)
		return Outcome{}, enginerrors.TransientChannel(enginerrors.CodeChannelUnavailable, "twilio send failed", err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	return Accepted(sid), nil
}
