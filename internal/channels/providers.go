package channels

//go:generate go run go.uber.org/mock/mockgen@latest -source=providers.go -destination=mocks_test.go -package=channels

import (
	"context"
	"errors"
	"net"
	"net/http"

	"campaign-engine/internal/enginerrors"

	"github.com/resendlabs/resend-go"
	twclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const TwilioIdempotencyHeader = "I-Twilio-Idempotency-Token"

// EmailAPI sends one email through Resend under an idempotency key. status
// is the HTTP status Resend answered with, zero when no answer arrived.
type EmailAPI interface {
	Send(ctx context.Context, params *resend.SendEmailRequest, idempotencyKey string) (res resend.SendEmailResponse, status int, err error)
}

// MessageAPI creates one SMS through Twilio under an idempotency token.
type MessageAPI interface {
	CreateMessage(ctx context.Context, params *openapi.CreateMessageParams, idempotencyKey string) (*openapi.ApiV2010Message, error)
}

// keyedTransport binds one provider call to its context and idempotency
// header. The SDK clients take neither, so each call gets its own.
type keyedTransport struct {
	base   http.RoundTripper
	ctx    context.Context
	header string
	key    string
	status int
}

func (t *keyedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(t.ctx)
	req.Header.Set(t.header, t.key)
	resp, err := t.base.RoundTrip(req)
	if resp != nil {
		t.status = resp.StatusCode
	}
	return resp, err
}

type resendEmails struct {
	apiKey    string
	transport http.RoundTripper
}

func (r *resendEmails) Send(ctx context.Context, params *resend.SendEmailRequest, idempotencyKey string) (resend.SendEmailResponse, int, error) {
	rt := &keyedTransport{base: baseTransport(r.transport), ctx: ctx, header: IdempotencyHeader, key: idempotencyKey}
	client := resend.NewCustomClient(&http.Client{Transport: rt}, r.apiKey)
	res, err := client.Emails.Send(params)
	return res, rt.status, err
}

type twilioMessages struct {
	accountSID string
	authToken  string
	transport  http.RoundTripper
}

func (t *twilioMessages) CreateMessage(ctx context.Context, params *openapi.CreateMessageParams, idempotencyKey string) (*openapi.ApiV2010Message, error) {
	rt := &keyedTransport{base: baseTransport(t.transport), ctx: ctx, header: TwilioIdempotencyHeader, key: idempotencyKey}
	c := &twclient.Client{
		Credentials: twclient.NewCredentials(t.accountSID, t.authToken),
		HTTPClient: &http.Client{
			Transport: rt,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
	c.SetAccountSid(t.accountSID)
	msg, err := openapi.NewApiServiceWithClient(c).CreateMessage(params)
	var restErr *twclient.TwilioRestError
	switch {
	case err == nil, rt.status == 0, errors.As(err, &restErr):
		return msg, err
	case rt.status < 300:
		// accepted, the body was unreadable
		return &openapi.ApiV2010Message{}, nil
	default:
		// error body was not Twilio JSON, keep the status for classification
		return nil, &twclient.TwilioRestError{Status: rt.status, Message: err.Error()}
	}
}

func baseTransport(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		return http.DefaultTransport
	}
	return rt
}

// unansweredError classifies a provider call that got no HTTP answer. Only
// a failure to connect proves the request never left; anything later may
// have been accepted, so it is not retried.
func unansweredError(provider string, err error) error {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if (errors.As(err, &opErr) && opErr.Op == "dial") || errors.As(err, &dnsErr) {
		return enginerrors.TransientChannel(enginerrors.CodeChannelUnavailable, provider+" unreachable", err)
	}
	return enginerrors.DeliveryUnknown(provider+" send outcome unknown", err)
}

// rejectedStatus reports whether an HTTP answer refuses the message for good.
func rejectedStatus(status int) bool {
	return status >= 400 && status < 500 && status != http.StatusTooManyRequests
}
