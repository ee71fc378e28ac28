// Package azerrors defines the error-kind taxonomy shared by every component
// of the speech client: codec, transport, recognizer and synthesizer sessions
// all return or emit *Error rather than bare errors, so callers can branch on
// Kind instead of matching error strings.
package azerrors

import "fmt"

// Kind classifies an Error. It mirrors the fatal/non-fatal distinction the
// sessions rely on when deciding whether a stream item ends the session.
type Kind int

const (
	// KindUnknown is the zero value; never constructed on purpose.
	KindUnknown Kind = iota
	KindIOError
	KindParseError
	KindInvalidResponse
	KindInternalError
	KindRuntimeError
	KindServerDisconnect
	KindConnectionError
	KindTimeout
	KindLagged
	KindForbidden
	KindTooManyRequests
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindIOError:
		return "IOError"
	case KindParseError:
		return "ParseError"
	case KindInvalidResponse:
		return "InvalidResponse"
	case KindInternalError:
		return "InternalError"
	case KindRuntimeError:
		return "RuntimeError"
	case KindServerDisconnect:
		return "ServerDisconnect"
	case KindConnectionError:
		return "ConnectionError"
	case KindTimeout:
		return "Timeout"
	case KindLagged:
		return "Lagged"
	case KindForbidden:
		return "Forbidden"
	case KindTooManyRequests:
		return "TooManyRequests"
	case KindBadRequest:
		return "BadRequest"
	default:
		return "Unknown"
	}
}

// Fatal reports whether an error of this kind, read from a subscriber
// stream, must end the session reading it. Timeout, Lagged and ParseError
// (one frame the transport could not decode) are non-fatal; every other
// kind ends the stream. Errors a session raises itself while interpreting a
// message carry their own terminal flag and do not consult Fatal.
func (k Kind) Fatal() bool {
	switch k {
	case KindTimeout, KindLagged, KindParseError:
		return false
	default:
		return true
	}
}

// Error is the library-wide error value. Reason carries a human-readable
// description; Err, when non-nil, is the underlying cause (wrapped so
// errors.Is/As keeps working against it).
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

func Wrap(kind Kind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, azerrors.New(KindTimeout, "")) match on Kind alone,
// which is how the session loops test for a particular failure class without
// caring about the reason string.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
