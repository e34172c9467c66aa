package apiclient

import (
	"errors"
	"fmt"
)

// Kind classifies a failed request.
type Kind int

const (
	// KindTransport covers network failures and non-2xx responses.
	KindTransport Kind = iota + 1
	// KindDecode covers bodies that are not the expected JSON.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned by Client.GetJSON for every failure.
type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: GET %s: %v", e.Kind, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether any error in err's chain is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == k
	}
	return false
}
