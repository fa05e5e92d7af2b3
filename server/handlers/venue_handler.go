package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"bookvenue/availability"
	"bookvenue/models/venue"
	services "bookvenue/service"
	"bookvenue/util"
)

const (
	LAT_QUERY_ARG     = "lat"
	LON_QUERY_ARG     = "lon"
	RADIUS_QUERY_ARG  = "radius"
	DATE_QUERY_ARG    = "date"
	SERVICE_QUERY_ARG = "service"

	SLUG_PATH_VAR     = "slug"
	FACILITY_PATH_VAR = "facility"
	COURT_PATH_VAR    = "court"
	DATE_PATH_VAR     = "date"

	SESSION_HEADER = "X-Session-ID"

	maxSessionLen = 64
	// chart requests are tracked under their own session key
	chartSessionPrefix = "chart:"
)

type VenueHandler struct {
	venueService *services.VenueService
	clock        availability.Clock
}

func NewVenueHandler(venueService *services.VenueService, clock availability.Clock) *VenueHandler {
	if clock == nil {
		clock = availability.SystemClock{}
	}
	return &VenueHandler{venueService: venueService, clock: clock}
}

// Ping handles GET /ping
func (h *VenueHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

// ListVenues handles GET /v1/venues
func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venueService.ListVenues(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, venues)
}

// GetVenuesNearby handles GET /v1/venues/nearby?lat={float}&lon={float}&radius={km}
func (h *VenueHandler) GetVenuesNearby(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	args := make(map[string]float64, 3)
	for _, name := range []string{LAT_QUERY_ARG, LON_QUERY_ARG, RADIUS_QUERY_ARG} {
		v, err := parseArgFloat64(vals, name)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid argument "+name)
			return
		}
		args[name] = v
	}

	venues, err := h.venueService.NearbyVenues(args[LAT_QUERY_ARG], args[LON_QUERY_ARG], args[RADIUS_QUERY_ARG])
	if err != nil {
		log.Println("Error loading nearby venues:", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, venues)
}

// CreateVenue handles POST /v1/venues
func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req venue.FacilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OfficialName == "" {
		writeMessage(w, http.StatusBadRequest, "official_name is required")
		return
	}

	v, err := h.venueService.CreateVenue(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// GetVenue handles GET /v1/venues/{slug}
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	v, err := h.venueService.GetVenue(r.Context(), mux.Vars(r)[SLUG_PATH_VAR])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// GetSlots handles GET /v1/venues/{slug}/slots?date={YYYY-MM-DD}&service={name}. The date
// defaults to today.
func (h *VenueHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateArg(w, r.URL.Query())
	if !ok {
		return
	}
	view, err := h.venueService.ResolveSlots(r.Context(), session(r), mux.Vars(r)[SLUG_PATH_VAR], date, r.URL.Query().Get(SERVICE_QUERY_ARG))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetSlotsChart handles GET /v1/venues/{slug}/slots/chart and renders slot prices as HTML.
func (h *VenueHandler) GetSlotsChart(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateArg(w, r.URL.Query())
	if !ok {
		return
	}
	view, err := h.venueService.ResolveSlots(r.Context(), chartSessionPrefix+session(r), mux.Vars(r)[SLUG_PATH_VAR], date, r.URL.Query().Get(SERVICE_QUERY_ARG))
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	subtitle := fmt.Sprintf("%s, %s on %s", view.Service.Name, view.Court.CourtName, view.Date)
	if err := util.RenderSlotPriceChart(&buf, view.Venue.Name, subtitle, view.Slots); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GetCourtAvailability handles GET /v1/availability/{facility}/{court}/{date}
func (h *VenueHandler) GetCourtAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if _, err := availability.ParseDate(vars[DATE_PATH_VAR], nil); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid argument "+DATE_PATH_VAR)
		return
	}
	got, err := h.venueService.CourtAvailability(r.Context(), vars[FACILITY_PATH_VAR], vars[COURT_PATH_VAR], vars[DATE_PATH_VAR])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, got)
}

func (h *VenueHandler) dateArg(w http.ResponseWriter, vals url.Values) (string, bool) {
	date := vals.Get(DATE_QUERY_ARG)
	if date == "" {
		return h.clock.Now().Format(availability.DateLayout), true
	}
	if _, err := availability.ParseDate(date, nil); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid argument "+DATE_QUERY_ARG)
		return "", false
	}
	return date, true
}

// session identifies the picker a slots request belongs to; clients without a session id share
// one per remote host. Ids are cut to maxSessionLen bytes.
func session(r *http.Request) string {
	if s := r.Header.Get(SESSION_HEADER); s != "" {
		if len(s) > maxSessionLen {
			s = s[:maxSessionLen]
		}
		return s
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}
