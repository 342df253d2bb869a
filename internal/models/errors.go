package models

import "fmt"

// ErrorKind classifies a generation failure. The kind decides the HTTP
// status at the API boundary and travels as the error type across the
// workflow boundary.
type ErrorKind string

const (
	ErrMissingCredentials ErrorKind = "MissingCredentials"
	ErrInputBlank         ErrorKind = "InputBlank"
	ErrInputTooLong       ErrorKind = "InputTooLong"
	ErrUnauthorized       ErrorKind = "Unauthorized"
	ErrForbidden          ErrorKind = "Forbidden"
	ErrRateLimited        ErrorKind = "RateLimited"
	ErrTimeout            ErrorKind = "Timeout"
	ErrNoConnectivity     ErrorKind = "NoConnectivity"
	ErrTransport          ErrorKind = "TransportError"
	ErrEmptyReply         ErrorKind = "EmptyServiceReply"
	ErrUnexpected         ErrorKind = "Unexpected"
)

// userMessages holds the short, actionable German text shown for each kind.
// Raw exception text is never surfaced to the user.
var userMessages = map[ErrorKind]string{
	ErrMissingCredentials: "API-Key fehlt. Bitte in den Einstellungen konfigurieren.",
	ErrInputBlank:         "Bitte zuerst eine Nachricht eingeben.",
	ErrInputTooLong:       "Nachricht zu lang (max. 4000 Zeichen).",
	ErrUnauthorized:       "API-Key prüfen",
	ErrForbidden:          "Zugriff verweigert",
	ErrRateLimited:        "Bitte kurz warten",
	ErrTimeout:            "Timeout: Bitte erneut versuchen",
	ErrNoConnectivity:     "Kein Internet",
	ErrTransport:          "Netzwerkfehler",
	ErrEmptyReply:         "Leere Antwort von der API",
	ErrUnexpected:         "Unerwarteter Fehler",
}

// GenerationError is the typed failure of a generate or rewrite call.
// Message is user-legible German; Cause keeps the original error for logs.
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// NewGenerationError creates an error of the given kind with its canonical
// user message.
func NewGenerationError(kind ErrorKind) *GenerationError {
	return &GenerationError{Kind: kind, Message: UserMessage(kind)}
}

// WrapGenerationError creates an error of the given kind keeping the
// underlying cause for diagnostics.
func WrapGenerationError(kind ErrorKind, cause error) *GenerationError {
	return &GenerationError{Kind: kind, Message: UserMessage(kind), Cause: cause}
}

// UserMessage returns the canonical German message for a kind.
func UserMessage(kind ErrorKind) string {
	if msg, ok := userMessages[kind]; ok {
		return msg
	}
	return userMessages[ErrUnexpected]
}

// KindFromString converts a serialized kind (e.g. a Temporal application
// error type) back to an ErrorKind, defaulting to Unexpected.
func KindFromString(s string) ErrorKind {
	kind := ErrorKind(s)
	if _, ok := userMessages[kind]; ok {
		return kind
	}
	return ErrUnexpected
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// IsValidation reports whether the error was raised before any network
// activity.
func (e *GenerationError) IsValidation() bool {
	switch e.Kind {
	case ErrMissingCredentials, ErrInputBlank, ErrInputTooLong:
		return true
	}
	return false
}
