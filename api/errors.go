package api

import (
	"encoding/json"
	"errors"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Status     string
	// Message is the backend's "message" field, when it sent one.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unexpected status code: " + e.Status
}

// Failure is what callers see of a failed backend call: the backend's message, or a fixed
// fallback for the operation.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// MessageOr returns the backend's message carried by err, or fallback.
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Wrap turns err into a Failure worded for the user.
func Wrap(err error, fallback string) error {
	if err == nil {
		return nil
	}
	return &Failure{Message: MessageOr(err, fallback), Err: err}
}

// StatusCode returns the HTTP status of the backend response behind err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func backendMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Message) == 0 {
		return ""
	}
	var msg string
	if err := json.Unmarshal(payload.Message, &msg); err != nil {
		return ""
	}
	return msg
}
