package upstream

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Error is the single normalized error type for all upstream API failures.
// Status is the HTTP status code of the upstream response, or 0 when the
// failure happened before a response was received (network fault, bad request
// construction).
type Error struct {
	Status  int
	Message string
}

var _ error = &Error{}

func (e *Error) Error() string {
	return fmt.Sprintf("ScreenApp API error (%s): %s", e.StatusLabel(), e.Message)
}

// StatusLabel returns the HTTP status as a string, or "UNKNOWN" when no
// response was received.
func (e *Error) StatusLabel() string {
	if e.Status == 0 {
		return "UNKNOWN"
	}
	return strconv.Itoa(e.Status)
}

// newErrorFromResponse builds an *Error from a non-2xx upstream response,
// preferring the upstream-provided message when the body carries one.
func newErrorFromResponse(status int, body []byte) *Error {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			msg = parsed.Message
		} else if parsed.Error != "" {
			msg = parsed.Error
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}
	return &Error{Status: status, Message: msg}
}
