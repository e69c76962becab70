package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a submission did not produce a result.
type FailureKind int

const (
	KindClient     FailureKind = iota // request could not be built or sent
	KindServer                        // response with a non-2xx status
	KindNoResponse                    // request sent, nothing came back
	KindValidation                    // rejected before any network I/O
)

func (k FailureKind) String() string {
	switch k {
	case KindServer:
		return "server"
	case KindNoResponse:
		return "no_response"
	case KindValidation:
		return "validation"
	default:
		return "client"
	}
}

const (
	MsgInvalidURL = "Please enter a valid URL."
	MsgNoResponse = "Error: No response from the server."
)

var ErrInvalidURL = errors.New("invalid url")

// ExtractError is returned by review sources. Status and Body are set for
// KindServer only.
type ExtractError struct {
	Kind   FailureKind
	Status int
	Body   string
	Err    error
}

func (e *ExtractError) Error() string {
	switch e.Kind {
	case KindServer:
		return fmt.Sprintf("review api status %d: %s", e.Status, e.Body)
	case KindNoResponse:
		if e.Err != nil {
			return "no response from review api: " + e.Err.Error()
		}
		return "no response from review api"
	case KindValidation:
		return ErrInvalidURL.Error()
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "client error"
	}
}

func (e *ExtractError) Unwrap() error { return e.Err }

// Classify maps any error onto a FailureKind. Errors that are not an
// *ExtractError count as client errors.
func Classify(err error) FailureKind {
	var xe *ExtractError
	if errors.As(err, &xe) {
		return xe.Kind
	}
	if errors.Is(err, ErrInvalidURL) {
		return KindValidation
	}
	return KindClient
}

// UserMessage renders err as the text shown to the user.
func UserMessage(err error) string {
	var xe *ExtractError
	if !errors.As(err, &xe) {
		if errors.Is(err, ErrInvalidURL) {
			return MsgInvalidURL
		}
		return "Error: " + err.Error()
	}
	switch xe.Kind {
	case KindServer:
		return "Error: " + xe.Body
	case KindNoResponse:
		return MsgNoResponse
	case KindValidation:
		return MsgInvalidURL
	default:
		return "Error: " + xe.Error()
	}
}
