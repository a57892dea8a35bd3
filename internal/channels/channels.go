// Package channels holds the outbound delivery adapters. Each adapter is a thin
// wrapper over its provider; retries and ledger bookkeeping live in the
// campaign dispatcher.
package channels

import (
	"context"
	"fmt"
	"sort"

	"campaign-engine/internal/enginerrors"
)

const (
	Email  = "email"
	SMS    = "sms"
	Push   = "push"
	Social = "social"
)

// Recipient is the resolved destination of one send.
type Recipient struct {
	CustomerID string
	Address    string
}

// Message is rendered, personalized content for one recipient.
type Message struct {
	Subject string
	Body    string
}

type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusSkipped  Status = "skipped"
)

// Outcome is what the provider said about a send. Transient failures are
// reported as errors instead, so the caller can retry with the same key.
type Outcome struct {
	Status            Status
	ProviderMessageID string
	Code              string
	Reason            string
}

func Accepted(providerID string) Outcome {
	return Outcome{Status: StatusAccepted, ProviderMessageID: providerID}
}

func Rejected(code, reason string) Outcome {
	return Outcome{Status: StatusRejected, Code: code, Reason: reason}
}

func Skipped(code, reason string) Outcome {
	return Outcome{Status: StatusSkipped, Code: code, Reason: reason}
}

// Adapter delivers one message. Sends must be idempotent for the same key.
type Adapter interface {
	Channel() string
	Send(ctx context.Context, to Recipient, msg Message, idempotencyKey string) (Outcome, error)
}

// Registry resolves adapters by channel name.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Channel()] = a
	}
	return r
}

// Get returns the adapter of a channel. A channel with no configured adapter
// is a transient condition, not a bad request.
func (r *Registry) Get(channel string) (Adapter, error) {
	a, ok := r.adapters[channel]
	if !ok {
		return nil, enginerrors.TransientChannel(enginerrors.CodeChannelUnavailable,
			fmt.Sprintf("no adapter configured for channel %q", channel), nil)
	}
	return a, nil
}

// Channels lists the configured channel names, sorted.
func (r *Registry) Channels() []string {
	out := make([]string, 0, len(r.adapters))
	for c := range r.adapters {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Valid reports whether channel is one the engine knows how to address.
func Valid(channel string) bool {
	switch channel {
	case Email, SMS, Push, Social:
		return true
	}
	return false
}
