package enginerrors

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error by how callers should react to it.
type Kind string

const (
	KindValidation            Kind = "validation"
	KindTransientChannel      Kind = "transient_channel"
	KindDataSourceUnavailable Kind = "data_source_unavailable"
	KindConsistencyViolation  Kind = "consistency_violation"
	KindNotFound              Kind = "not_found"
	KindConflict              Kind = "conflict"
	KindInternal              Kind = "internal"
)

// Machine-readable reason codes recorded on campaigns, ledger rows and
// workflow instances.
const (
	CodeInvalidCriteria       = "INVALID_CRITERIA"
	CodeInvalidInput          = "INVALID_INPUT"
	CodeContentNotApproved    = "CONTENT_NOT_APPROVED"
	CodeSegmentNotFound       = "SEGMENT_NOT_FOUND"
	CodeCampaignNotFound      = "CAMPAIGN_NOT_FOUND"
	CodeContentNotFound       = "CONTENT_NOT_FOUND"
	CodeRuleNotFound          = "RULE_NOT_FOUND"
	CodeInvalidTransition     = "INVALID_TRANSITION"
	CodeDataSourceUnavailable = "DATA_SOURCE_UNAVAILABLE"
	CodeChannelUnavailable    = "CHANNEL_UNAVAILABLE"
	CodeSegmentDeleted        = "SEGMENT_DELETED"
	CodeFailureRatioExceeded  = "FAILURE_RATIO_EXCEEDED"
	CodeConsentRevoked        = "CONSENT_REVOKED"
	CodeBudgetExhausted       = "BUDGET_EXHAUSTED"
	CodeDispatchInterrupted   = "DISPATCH_INTERRUPTED"
	CodeDispatchLeaseHeld     = "DISPATCH_LEASE_HELD"
	CodeProviderRejected      = "PROVIDER_REJECTED"
	CodeDeliveryUnknown       = "DELIVERY_UNKNOWN"
	CodeNoAddress             = "NO_ADDRESS"
	CodeInternal              = "INTERNAL_ERROR"
)

// Error is the error type returned across component boundaries.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind and code, so sentinel values like
// ErrDataSourceUnavailable work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if t.Code != "" && t.Code != e.Code {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is checks on kind alone.
var (
	ErrValidation            = &Error{Kind: KindValidation}
	ErrTransientChannel      = &Error{Kind: KindTransientChannel}
	ErrDataSourceUnavailable = &Error{Kind: KindDataSourceUnavailable}
	ErrConsistencyViolation  = &Error{Kind: KindConsistencyViolation}
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrConflict              = &Error{Kind: KindConflict}
)

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func TransientChannel(code, message string, err error) *Error {
	return &Error{Kind: KindTransientChannel, Code: code, Message: message, Err: err}
}

func DataSourceUnavailable(message string, err error) *Error {
	return &Error{Kind: KindDataSourceUnavailable, Code: CodeDataSourceUnavailable, Message: message, Err: err}
}

func ConsistencyViolation(code, message string) *Error {
	return &Error{Kind: KindConsistencyViolation, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

// DeliveryUnknown reports a send whose outcome at the provider cannot be
// known, such as a timeout after the request was written. It is not
// retryable: a retry could deliver twice.
func DeliveryUnknown(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeDeliveryUnknown, Message: message, Err: err}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf returns the reason code of the first *Error in err's chain.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	if err == nil {
		return ""
	}
	return CodeInternal
}

// Retryable reports whether the operation that produced err may succeed if
// attempted again unchanged.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindTransientChannel, KindDataSourceUnavailable:
		return true
	}
	return false
}
