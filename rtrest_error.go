package rtrest

import "fmt"

// ErrorKind classifies the failures reported by the codec and the client.
type ErrorKind int

const (
	// MalformedIdentifier: wrong type prefix, non-numeric or missing id.
	MalformedIdentifier ErrorKind = iota + 1
	// MalformedValue: a numeric field that does not parse.
	MalformedValue
	// UnknownEnumValue: status, history type or boolean token outside its closed set.
	UnknownEnumValue
	// UnexpectedContinuation: an indented line with no multi-line field open.
	UnexpectedContinuation
	// ServerReportedError: a "#" comment line inside a property response.
	ServerReportedError
	// ActionNotConfirmed: the create/edit/comment confirmation line is absent.
	ActionNotConfirmed
	// MissingPriorSnapshot: update encoding without the existing entity.
	MissingPriorSnapshot
	// UnsupportedOperation: the requested encoding does not exist for the entity.
	UnsupportedOperation
	// RequestFailed: the HTTP exchange itself failed.
	RequestFailed
	// UnexpectedStatus: RT answered with a status the call does not accept.
	UnexpectedStatus
)

var kindNames = map[ErrorKind]string{
	MalformedIdentifier:    "malformed identifier",
	MalformedValue:         "malformed value",
	UnknownEnumValue:       "unknown enum value",
	UnexpectedContinuation: "unexpected continuation",
	ServerReportedError:    "server reported error",
	ActionNotConfirmed:     "action not confirmed",
	MissingPriorSnapshot:   "missing prior snapshot",
	UnsupportedOperation:   "unsupported operation",
	RequestFailed:          "request failed",
	UnexpectedStatus:       "unexpected status",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error denotes a failure of the codec or of a call to the RT API.
// Value holds the offending line or value when there is one.
type Error struct {
	Kind  ErrorKind
	Value string
	err   string
	cause error
}

func (e Error) Error() string {
	if e.err == "" {
		return e.Kind.String()
	}
	return e.err
}

// Unwrap exposes the transport error behind a RequestFailed error.
func (e Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an Error of the same kind, so that the
// Err* sentinels below can be used with errors.Is.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrMalformedIdentifier    = Error{Kind: MalformedIdentifier}
	ErrMalformedValue         = Error{Kind: MalformedValue}
	ErrUnknownEnumValue       = Error{Kind: UnknownEnumValue}
	ErrUnexpectedContinuation = Error{Kind: UnexpectedContinuation}
	ErrServerReportedError    = Error{Kind: ServerReportedError}
	ErrActionNotConfirmed     = Error{Kind: ActionNotConfirmed}
	ErrMissingPriorSnapshot   = Error{Kind: MissingPriorSnapshot}
	ErrUnsupportedOperation   = Error{Kind: UnsupportedOperation}
	ErrRequestFailed          = Error{Kind: RequestFailed}
	ErrUnexpectedStatus       = Error{Kind: UnexpectedStatus}
)

func newError(kind ErrorKind, value, format string, args ...interface{}) Error {
	return Error{Kind: kind, Value: value, err: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, cause error, format string, args ...interface{}) Error {
	return Error{Kind: kind, err: fmt.Sprintf(format, args...) + ": " + cause.Error(), cause: cause}
}
