package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"bookvenue/api"
	"bookvenue/api/bookvenue"
	"bookvenue/availability"
	"bookvenue/dao/redis"
	"bookvenue/draft"
	"bookvenue/payment"
	services "bookvenue/service"
)

const (
	msgCancelled       = "You cancelled the payment."
	msgInternal        = "Internal server error"
	msgUnauthorized    = "Unauthorized"
	msgDraftChanged    = "The selected slots or their prices have changed. Please review your booking."
	msgSuperseded      = "A newer availability request replaced this one"
	msgPaymentUnstored = "Payment received but the booking could not be confirmed. Please contact support."
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("Error encoding response:", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message})
}

// writeError maps a service error to a status and a message the client can show.
func writeError(w http.ResponseWriter, err error) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[handlers] %d: %v", status, err)
	}
	writeMessage(w, status, message)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, api.ErrNoCredentials), errors.Is(err, api.ErrTokenExpired):
		return http.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, payment.ErrCancelled):
		return http.StatusPaymentRequired, msgCancelled
	case errors.Is(err, availability.ErrSuperseded):
		return http.StatusConflict, msgSuperseded
	case errors.Is(err, services.ErrDraftChanged):
		return http.StatusConflict, msgDraftChanged
	case errors.Is(err, bookvenue.ErrVenueNotFound),
		errors.Is(err, bookvenue.ErrBookingNotFound),
		errors.Is(err, redis.ErrCacheMiss):
		return http.StatusNotFound, failureMessage(err, err.Error())
	case errors.Is(err, draft.ErrNoSlotsSelected),
		errors.Is(err, availability.ErrUnknownSlot),
		errors.Is(err, services.ErrNoService),
		errors.Is(err, services.ErrNoCourt),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrContactRequired),
		errors.Is(err, services.ErrAddressRequired):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrPaymentNotRecorded):
		return http.StatusBadGateway, msgPaymentUnstored
	}

	var gwErr *payment.Error
	if errors.As(err, &gwErr) {
		return http.StatusPaymentRequired, gwErr.Error()
	}

	switch api.StatusCode(err) {
	case 0:
	case http.StatusUnauthorized:
		return http.StatusUnauthorized, failureMessage(err, msgUnauthorized)
	case http.StatusNotFound:
		return http.StatusNotFound, failureMessage(err, "Not found")
	default:
		return http.StatusBadGateway, failureMessage(err, msgInternal)
	}

	var f *api.Failure
	if errors.As(err, &f) {
		return http.StatusBadGateway, f.Message
	}
	return http.StatusInternalServerError, msgInternal
}

func failureMessage(err error, fallback string) string {
	var f *api.Failure
	if errors.As(err, &f) && f.Message != "" {
		return f.Message
	}
	return fallback
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
