package internal

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrorKind classifies every failure the core can report
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindMalformedURL
	KindUnsupportedURLShape
	KindMissingCredential
	KindInvalidOrExhaustedCredential
	KindResourceNotFoundOrPrivate
	KindRateLimited
	KindUpstreamError
	KindNetworkFailure
	KindUnparsableModelResponse
	KindNoUsableVariations
)

// String returns the stable name of the kind, used in logs, metrics and JSON output
func (k ErrorKind) String() string {
	switch k {
	case KindMalformedURL:
		return "malformed_url"
	case KindUnsupportedURLShape:
		return "unsupported_url_shape"
	case KindMissingCredential:
		return "missing_credential"
	case KindInvalidOrExhaustedCredential:
		return "invalid_or_exhausted_credential"
	case KindResourceNotFoundOrPrivate:
		return "resource_not_found_or_private"
	case KindRateLimited:
		return "rate_limited"
	case KindUpstreamError:
		return "upstream_error"
	case KindNetworkFailure:
		return "network_failure"
	case KindUnparsableModelResponse:
		return "unparsable_model_response"
	case KindNoUsableVariations:
		return "no_usable_variations"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Matching is by kind only.
var (
	ErrMalformedURL                 = &Error{Kind: KindMalformedURL}
	ErrUnsupportedURLShape          = &Error{Kind: KindUnsupportedURLShape}
	ErrMissingCredential            = &Error{Kind: KindMissingCredential}
	ErrInvalidOrExhaustedCredential = &Error{Kind: KindInvalidOrExhaustedCredential}
	ErrResourceNotFoundOrPrivate    = &Error{Kind: KindResourceNotFoundOrPrivate}
	ErrRateLimited                  = &Error{Kind: KindRateLimited}
	ErrUpstreamError                = &Error{Kind: KindUpstreamError}
	ErrNetworkFailure               = &Error{Kind: KindNetworkFailure}
	ErrUnparsableModelResponse      = &Error{Kind: KindUnparsableModelResponse}
	ErrNoUsableVariations           = &Error{Kind: KindNoUsableVariations}
)

// MaxExcerptLength bounds the raw model text kept on parse failures (in runes)
const MaxExcerptLength = 200

// Error is the single failure type returned by the core.
// Message is user-facing; Excerpt is only set for model-output failures.
type Error struct {
	Kind    ErrorKind
	Message string
	Excerpt string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = defaultMessage(e.Kind)
	}
	if e.Excerpt != "" {
		return fmt.Sprintf("%s (response excerpt: %q)", msg, e.Excerpt)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func newExcerptError(kind ErrorKind, message, raw string) *Error {
	return &Error{Kind: kind, Message: message, Excerpt: Excerpt(raw)}
}

// Excerpt returns raw trimmed to at most MaxExcerptLength runes
func Excerpt(raw string) string {
	raw = strings.TrimSpace(raw)
	if utf8.RuneCountInString(raw) <= MaxExcerptLength {
		return raw
	}
	runes := []rune(raw)
	return string(runes[:MaxExcerptLength]) + "…"
}

func defaultMessage(kind ErrorKind) string {
	switch kind {
	case KindMalformedURL:
		return "the input is not a valid URL"
	case KindUnsupportedURLShape:
		return "unsupported YouTube URL - use a watch, youtu.be or embed link"
	case KindMissingCredential:
		return "a required API key is not configured"
	case KindInvalidOrExhaustedCredential:
		return "the API key was rejected or its quota is exhausted"
	case KindResourceNotFoundOrPrivate:
		return "video not found or it is private"
	case KindRateLimited:
		return "too many requests - try again in a moment"
	case KindUpstreamError:
		return "the remote service reported an error"
	case KindNetworkFailure:
		return "network error - check your connection and try again"
	case KindUnparsableModelResponse:
		return "could not parse the model response"
	case KindNoUsableVariations:
		return "the model returned no usable title variations"
	default:
		return "unknown error"
	}
}
