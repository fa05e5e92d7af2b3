package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// VenueRoutes serves the venue catalog and slot picker.
type VenueRoutes interface {
	Ping(w http.ResponseWriter, r *http.Request)
	ListVenues(w http.ResponseWriter, r *http.Request)
	GetVenuesNearby(w http.ResponseWriter, r *http.Request)
	CreateVenue(w http.ResponseWriter, r *http.Request)
	GetVenue(w http.ResponseWriter, r *http.Request)
	GetSlots(w http.ResponseWriter, r *http.Request)
	GetSlotsChart(w http.ResponseWriter, r *http.Request)
	GetCourtAvailability(w http.ResponseWriter, r *http.Request)
}

// BookingRoutes serves drafts, checkout and the caller's bookings.
type BookingRoutes interface {
	CreateDraft(w http.ResponseWriter, r *http.Request)
	Checkout(w http.ResponseWriter, r *http.Request)
	ListBookings(w http.ResponseWriter, r *http.Request)
	GetBooking(w http.ResponseWriter, r *http.Request)
	CancelBooking(w http.ResponseWriter, r *http.Request)
}

// ProfileRoutes serves the caller's profile.
type ProfileRoutes interface {
	GetMe(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	venueHandler   VenueRoutes
	bookingHandler BookingRoutes
	profileHandler ProfileRoutes
	router         *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	venueHandler VenueRoutes,
	bookingHandler BookingRoutes,
	profileHandler ProfileRoutes,
	router *mux.Router) *Router {
	return &Router{
		venueHandler:   venueHandler,
		bookingHandler: bookingHandler,
		profileHandler: profileHandler,
		router:         router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(forwardCredentials, logRequests)

	r.router.HandleFunc("/ping", r.venueHandler.Ping).Methods("GET")

	r.router.HandleFunc("/v1/venues", r.venueHandler.ListVenues).Methods("GET")
	r.router.HandleFunc("/v1/venues", r.venueHandler.CreateVenue).Methods("POST")
	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={km(float)}
	r.router.HandleFunc("/v1/venues/nearby", r.venueHandler.GetVenuesNearby).Methods("GET")
	r.router.HandleFunc("/v1/venues/{slug}", r.venueHandler.GetVenue).Methods("GET")
	// expects ?date={YYYY-MM-DD}&service={name}, both optional
	r.router.HandleFunc("/v1/venues/{slug}/slots", r.venueHandler.GetSlots).Methods("GET")
	r.router.HandleFunc("/v1/venues/{slug}/slots/chart", r.venueHandler.GetSlotsChart).Methods("GET")
	r.router.HandleFunc("/v1/availability/{facility}/{court}/{date}", r.venueHandler.GetCourtAvailability).Methods("GET")

	r.router.HandleFunc("/v1/drafts", r.bookingHandler.CreateDraft).Methods("POST")
	// the routes below act for the caller and need a forwarded bearer token
	r.router.Handle("/v1/checkout", requireCredentials(r.bookingHandler.Checkout)).Methods("POST")
	// expects ?tab={upcoming|past}, optional
	r.router.Handle("/v1/bookings", requireCredentials(r.bookingHandler.ListBookings)).Methods("GET")
	r.router.Handle("/v1/bookings/{id}", requireCredentials(r.bookingHandler.GetBooking)).Methods("GET")
	r.router.Handle("/v1/bookings/{id}/cancel", requireCredentials(r.bookingHandler.CancelBooking)).Methods("POST")

	r.router.Handle("/v1/me", requireCredentials(r.profileHandler.GetMe)).Methods("GET")
	r.router.Handle("/v1/me", requireCredentials(r.profileHandler.UpdateMe)).Methods("POST")
}
