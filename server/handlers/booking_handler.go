package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"bookvenue/draft"
	services "bookvenue/service"
)

const (
	TAB_QUERY_ARG = "tab"
	ID_PATH_VAR   = "id"

	msgBookingCancelled = "Booking cancelled"
)

// DraftResponse carries a built draft and the navigation parameters to confirm it with.
type DraftResponse struct {
	Draft  draft.Draft     `json:"draft"`
	Params draft.NavParams `json:"params"`
}

// CheckoutRequest confirms a draft. CardToken is required by card-charging gateways.
type CheckoutRequest struct {
	Params    draft.NavParams `json:"params"`
	CardToken string          `json:"cardToken,omitempty"`
}

type BookingHandler struct {
	bookingService  *services.BookingService
	checkoutService *services.CheckoutService
}

func NewBookingHandler(bookingService *services.BookingService, checkoutService *services.CheckoutService) *BookingHandler {
	return &BookingHandler{
		bookingService:  bookingService,
		checkoutService: checkoutService,
	}
}

// CreateDraft handles POST /v1/drafts
func (h *BookingHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req services.DraftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.VenueSlug == "" || req.Date == "" {
		writeMessage(w, http.StatusBadRequest, "venueSlug and date are required")
		return
	}

	d, params, err := h.bookingService.BuildDraft(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, DraftResponse{Draft: d, Params: params})
}

// Checkout handles POST /v1/checkout
func (h *BookingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, err := draft.ParseNavParams(req.Params); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	conf, err := h.checkoutService.Confirm(r.Context(), req.Params, req.CardToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conf)
}

// ListBookings handles GET /v1/bookings?tab={upcoming|past}
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	tab, err := services.ParseTab(r.URL.Query().Get(TAB_QUERY_ARG))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid argument "+TAB_QUERY_ARG)
		return
	}
	bookings, err := h.bookingService.ListBookings(r.Context(), tab)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// GetBooking handles GET /v1/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookingService.GetBooking(r.Context(), mux.Vars(r)[ID_PATH_VAR])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// CancelBooking handles POST /v1/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.bookingService.CancelBooking(r.Context(), mux.Vars(r)[ID_PATH_VAR]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, msgBookingCancelled)
}
