package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthenticated indicates no signed-in user is available locally.
	// Callers must prompt for login; it is never retried.
	ErrUnauthenticated = errors.New("not signed in")

	// ErrSessionExpired indicates a 401 that survived one refresh attempt, or
	// one with no refresh token to try. Local credentials have been cleared.
	ErrSessionExpired = errors.New("session expired")

	// ErrNetwork indicates the request never reached the server.
	ErrNetwork = errors.New("network unreachable")

	// ErrValidation indicates the input was rejected, locally or with a 422.
	ErrValidation = errors.New("validation failed")

	// ErrServer indicates a 5xx response.
	ErrServer = errors.New("server error")

	// ErrRequest indicates any other non-2xx response.
	ErrRequest = errors.New("request rejected")

	// ErrInvalidResponse indicates a 2xx body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid api response")
)

const (
	msgNetwork         = "Network error. Please check your internet connection and try again."
	msgSessionExpired  = "Your session has expired. Please log in again."
	msgServer          = "Something went wrong on our side. Please try again later."
	msgUnauthenticated = "Please log in to continue."
)

// Error is the normalized form of every failed API call. It matches one of
// the package sentinels with errors.Is.
type Error struct {
	Status  int             // HTTP status; 0 when no response was received
	Message string          // safe to show to the user
	Data    json.RawMessage // response body when it was valid JSON

	kind  error
	cause error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

// UserMessage converts any error into a line suitable for display.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnauthenticated) {
		return msgUnauthenticated
	}
	return err.Error()
}

func networkError(cause error) *Error {
	return &Error{Message: msgNetwork, kind: ErrNetwork, cause: cause}
}

func sessionExpiredError() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msgSessionExpired, kind: ErrSessionExpired}
}

func validationError(message string) *Error {
	return &Error{Message: message, kind: ErrValidation}
}

// statusError normalizes a non-2xx response into an *Error.
func statusError(status int, body []byte) *Error {
	e := &Error{Status: status}
	if json.Valid(body) {
		e.Data = json.RawMessage(body)
	}
	detail := detailMessage(body)

	switch {
	case status == http.StatusUnprocessableEntity:
		e.kind = ErrValidation
		e.Message = firstNonEmpty(detail, "Some of the information you entered is invalid.")
	case status >= 500:
		e.kind = ErrServer
		e.Message = msgServer
	default:
		e.kind = ErrRequest
		e.Message = firstNonEmpty(detail, strings.ToLower(http.StatusText(status)), "request failed")
	}
	return e
}

// detailMessage extracts a human-readable message from the common error body
// shapes: {"detail": "..."}, {"detail": [{"msg": "..."}]} and
// {"message": "..."}.
func detailMessage(body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil && s != "" {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil {
			for _, it := range items {
				if it.Msg != "" {
					return it.Msg
				}
			}
		}
	}
	return firstNonEmpty(payload.Message, payload.Error)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// errorCode labels an error for call logging.
func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSessionExpired):
		return "SESSION_EXPIRED"
	case errors.Is(err, ErrNetwork):
		return "NETWORK"
	case errors.Is(err, ErrValidation):
		return "VALIDATION"
	case errors.Is(err, ErrServer):
		return "SERVER"
	case errors.Is(err, ErrRequest):
		return "REQUEST"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	default:
		return "UNKNOWN"
	}
}
