package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookvenue/api"
	"bookvenue/api/bookvenue"
	"bookvenue/availability"
	"bookvenue/dao/redis"
	"bookvenue/db"
	"bookvenue/draft"
	"bookvenue/normalize"
	"bookvenue/payment"
	services "bookvenue/service"
)

type testHandlers struct {
	mock    *bookvenue.BookVenueApiClientMock
	gateway *payment.StubGateway
	tracker *availability.Tracker
	venue   *VenueHandler
	booking *BookingHandler
	profile *ProfileHandler
}

func newTestHandlers(t *testing.T) *testHandlers {
	t.Helper()
	mock, err := bookvenue.NewBookVenueApiClientMock(normalize.DefaultOptions())
	require.NoError(t, err)

	clock := availability.FixedClock(time.Date(2030, 3, 10, 9, 30, 0, 0, time.UTC))
	dao := redis.NewRedisVenueDAO(db.NewMockRedisClient(context.Background()))
	tracker := availability.NewTracker()
	venues := services.NewVenueService(dao, mock, mock, availability.NewResolver(clock), tracker)
	builder := draft.NewBuilder(draft.PriceAveraged, draft.DurationFixed60)
	gateway := payment.NewStubGateway()

	bookings := services.NewBookingService(mock, venues, builder, clock)

	return &testHandlers{
		mock:    mock,
		gateway: gateway,
		tracker: tracker,
		venue:   NewVenueHandler(venues, clock),
		booking: NewBookingHandler(
			bookings,
			services.NewCheckoutService(mock, mock, gateway, bookings, builder, "INR"),
		),
		profile: NewProfileHandler(services.NewProfileService(mock)),
	}
}

func serve(h http.HandlerFunc, req *http.Request, vars map[string]string) *httptest.ResponseRecorder {
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func message(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Message
}

func TestVenueHandler_ListAndNearby(t *testing.T) {
	h := newTestHandlers(t)

	rr := serve(h.venue.ListVenues, httptest.NewRequest("GET", "/v1/venues", nil), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var venues []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &venues))
	assert.Len(t, venues, 2)

	rr = serve(h.venue.GetVenuesNearby, httptest.NewRequest("GET", "/v1/venues/nearby?lat=28.5921&lon=77.0460&radius=5", nil), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &venues))
	require.Len(t, venues, 1)
	assert.Equal(t, "goal-turf", venues[0]["slug"])

	rr = serve(h.venue.GetVenuesNearby, httptest.NewRequest("GET", "/v1/venues/nearby?lat=abc&lon=1&radius=1", nil), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid argument lat", message(t, rr))
}

func TestVenueHandler_GetVenue(t *testing.T) {
	h := newTestHandlers(t)

	rr := serve(h.venue.GetVenue, httptest.NewRequest("GET", "/v1/venues/smash-arena", nil), map[string]string{"slug": "smash-arena"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Smash Arena"`)

	rr = serve(h.venue.GetVenue, httptest.NewRequest("GET", "/v1/venues/nowhere", nil), map[string]string{"slug": "nowhere"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestVenueHandler_CreateVenue(t *testing.T) {
	h := newTestHandlers(t)

	body := `{"official_name":"Ace Courts","address":"Gurugram","lat":28.4595,"lng":77.0266}`
	rr := serve(h.venue.CreateVenue, httptest.NewRequest("POST", "/v1/venues", bytes.NewBufferString(body)), nil)
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = serve(h.venue.CreateVenue, httptest.NewRequest("POST", "/v1/venues", bytes.NewBufferString(`{"address":"x"}`)), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVenueHandler_GetSlots(t *testing.T) {
	h := newTestHandlers(t)

	req := httptest.NewRequest("GET", "/v1/venues/smash-arena/slots", nil)
	req.Header.Set(SESSION_HEADER, "picker-1")
	rr := serve(h.venue.GetSlots, req, map[string]string{"slug": "smash-arena"})

	require.Equal(t, http.StatusOK, rr.Code)
	var view services.SlotsView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, "2030-03-10", view.Date)
	require.Len(t, view.Slots, 4)
	assert.Equal(t, "16:00 - 17:00", view.Slots[0].Label)

	req = httptest.NewRequest("GET", "/v1/venues/smash-arena/slots?date=tomorrow", nil)
	rr = serve(h.venue.GetSlots, req, map[string]string{"slug": "smash-arena"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest("GET", "/v1/venues/smash-arena/slots?service=Squash", nil)
	rr = serve(h.venue.GetSlots, req, map[string]string{"slug": "smash-arena"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVenueHandler_GetSlotsChart(t *testing.T) {
	h := newTestHandlers(t)

	req := httptest.NewRequest("GET", "/v1/venues/smash-arena/slots/chart?date=2030-03-11", nil)
	rr := serve(h.venue.GetSlotsChart, req, map[string]string{"slug": "smash-arena"})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "21:00 - 22:00")
}

func TestVenueHandler_ChartDoesNotReplacePickerSession(t *testing.T) {
	h := newTestHandlers(t)
	vars := map[string]string{"slug": "smash-arena"}

	req := httptest.NewRequest("GET", "/v1/venues/smash-arena/slots?date=2030-03-11", nil)
	req.Header.Set(SESSION_HEADER, "picker-1")
	require.Equal(t, http.StatusOK, serve(h.venue.GetSlots, req, vars).Code)

	req = httptest.NewRequest("GET", "/v1/venues/smash-arena/slots/chart?date=2030-03-12", nil)
	req.Header.Set(SESSION_HEADER, "picker-1")
	require.Equal(t, http.StatusOK, serve(h.venue.GetSlotsChart, req, vars).Code)

	shown, ok := h.tracker.Displayed("picker-1")
	require.True(t, ok)
	assert.Equal(t, "2030-03-11", shown.Date)
	chart, ok := h.tracker.Displayed("chart:picker-1")
	require.True(t, ok)
	assert.Equal(t, "2030-03-12", chart.Date)
}

func TestSession(t *testing.T) {
	req := httptest.NewRequest("GET", "/v1/venues/smash-arena/slots", nil)
	req.RemoteAddr = "10.0.0.1:53122"
	assert.Equal(t, "10.0.0.1", session(req))

	req.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", session(req))

	req.Header.Set(SESSION_HEADER, strings.Repeat("x", 500))
	assert.Len(t, session(req), maxSessionLen)
}

func TestVenueHandler_GetCourtAvailability(t *testing.T) {
	h := newTestHandlers(t)

	vars := map[string]string{"facility": "12", "court": "7", "date": "2030-03-11"}
	rr := serve(h.venue.GetCourtAvailability, httptest.NewRequest("GET", "/v1/availability/12/7/2030-03-11", nil), vars)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"courtId":"7"`)

	vars["date"] = "11-03-2030"
	rr = serve(h.venue.GetCourtAvailability, httptest.NewRequest("GET", "/v1/availability/12/7/11-03-2030", nil), vars)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func createDraft(t *testing.T, h *testHandlers) DraftResponse {
	t.Helper()
	body := `{"venueSlug":"smash-arena","date":"2030-03-11","slots":["09:00 - 10:00","18:00 - 19:00"]}`
	rr := serve(h.booking.CreateDraft, httptest.NewRequest("POST", "/v1/drafts", bytes.NewBufferString(body)), nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	var resp DraftResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func checkout(t *testing.T, h *testHandlers, params draft.NavParams) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(CheckoutRequest{Params: params})
	require.NoError(t, err)
	return serve(h.booking.Checkout, httptest.NewRequest("POST", "/v1/checkout", bytes.NewBuffer(body)), nil)
}

func TestBookingHandler_DraftAndCheckout(t *testing.T) {
	h := newTestHandlers(t)

	resp := createDraft(t, h)
	assert.Equal(t, float64(1300), resp.Draft.TotalAmount)
	assert.Equal(t, "1300", resp.Params[draft.ParamTotalAmount])

	rr := checkout(t, h, resp.Params)
	require.Equal(t, http.StatusOK, rr.Code)
	var conf services.Confirmation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &conf))
	assert.Equal(t, "order_mock_1", conf.Order.ID)
	assert.Len(t, h.mock.SuccessReports, 1)
}

func TestBookingHandler_CheckoutCancelled(t *testing.T) {
	h := newTestHandlers(t)
	h.gateway.Outcome = payment.OutcomeCancel

	rr := checkout(t, h, createDraft(t, h).Params)

	assert.Equal(t, http.StatusPaymentRequired, rr.Code)
	assert.Equal(t, "You cancelled the payment.", message(t, rr))
	assert.Empty(t, h.mock.FailureReports)
}

func TestBookingHandler_CheckoutDeclined(t *testing.T) {
	h := newTestHandlers(t)
	h.gateway.Outcome = payment.OutcomeFail

	rr := checkout(t, h, createDraft(t, h).Params)

	assert.Equal(t, http.StatusPaymentRequired, rr.Code)
	assert.Equal(t, "Payment declined", message(t, rr))
	assert.Len(t, h.mock.FailureReports, 1)
}

func TestBookingHandler_CheckoutForgedTotal(t *testing.T) {
	h := newTestHandlers(t)
	params := createDraft(t, h).Params
	params[draft.ParamTotalAmount] = "1"

	rr := checkout(t, h, params)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, msgDraftChanged, message(t, rr))
	assert.Empty(t, h.mock.SuccessReports)
}

func TestBookingHandler_CheckoutBadParams(t *testing.T) {
	h := newTestHandlers(t)

	rr := checkout(t, h, draft.NavParams{draft.ParamTotalAmount: "lots"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = checkout(t, h, draft.NavParams{draft.ParamFacilityID: "12", draft.ParamCourtID: "7"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, draft.ErrNoSlotsSelected.Error(), message(t, rr))
}

func TestBookingHandler_CreateDraftErrors(t *testing.T) {
	h := newTestHandlers(t)

	rr := serve(h.booking.CreateDraft, httptest.NewRequest("POST", "/v1/drafts", bytes.NewBufferString(`{"date":"2030-03-11"}`)), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body := `{"venueSlug":"smash-arena","date":"2030-03-11","slots":["08:00 - 09:00"]}`
	rr = serve(h.booking.CreateDraft, httptest.NewRequest("POST", "/v1/drafts", bytes.NewBufferString(body)), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBookingHandler_Bookings(t *testing.T) {
	h := newTestHandlers(t)

	rr := serve(h.booking.ListBookings, httptest.NewRequest("GET", "/v1/bookings?tab=past", nil), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var views []services.BookingView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "102", views[0].ID)
	assert.Equal(t, "07:00 - 08:30", views[0].TimeDisplay)

	rr = serve(h.booking.ListBookings, httptest.NewRequest("GET", "/v1/bookings?tab=someday", nil), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(h.booking.CancelBooking, httptest.NewRequest("POST", "/v1/bookings/101/cancel", nil), map[string]string{"id": "101"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Booking cancelled", message(t, rr))

	rr = serve(h.booking.GetBooking, httptest.NewRequest("GET", "/v1/bookings/101", nil), map[string]string{"id": "101"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"cancelled"`)

	rr = serve(h.booking.GetBooking, httptest.NewRequest("GET", "/v1/bookings/404", nil), map[string]string{"id": "404"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProfileHandler(t *testing.T) {
	h := newTestHandlers(t)

	rr := serve(h.profile.GetMe, httptest.NewRequest("GET", "/v1/me", nil), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Asha Verma"`)

	body := `{"name":"Asha","email":"not-an-email","contact":"1","address":"Noida"}`
	rr = serve(h.profile.UpdateMe, httptest.NewRequest("POST", "/v1/me", bytes.NewBufferString(body)), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, services.ErrInvalidEmail.Error(), message(t, rr))
}

func TestProfileHandler_Multipart(t *testing.T) {
	h := newTestHandlers(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Asha V"))
	require.NoError(t, mw.WriteField("email", "asha.v@example.com"))
	require.NoError(t, mw.WriteField("contact", "9000000000"))
	require.NoError(t, mw.WriteField("address", "Sector 50, Noida"))
	part, err := mw.CreateFormFile(PROFILE_IMAGE_KEY, "me.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte{0xff, 0xd8, 0xff})
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/v1/me", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := serve(h.profile.UpdateMe, req, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Asha V"`)
	assert.Contains(t, rr.Body.String(), "profile.jpg")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"superseded", availability.ErrSuperseded, http.StatusConflict, msgSuperseded},
		{"unauthorized", &api.Failure{Message: "Unauthenticated.", Err: &api.APIError{StatusCode: 401}}, http.StatusUnauthorized, "Unauthenticated."},
		{"no token forwarded", api.ErrNoCredentials, http.StatusUnauthorized, msgUnauthorized},
		{"stored token expired", api.ErrTokenExpired, http.StatusUnauthorized, msgUnauthorized},
		{"backend failure", &api.Failure{Message: "Failed to fetch venues", Err: errors.New("dial tcp: refused")}, http.StatusBadGateway, "Failed to fetch venues"},
		{"backend status", &api.Failure{Message: "Server exploded", Err: &api.APIError{StatusCode: 500}}, http.StatusBadGateway, "Server exploded"},
		{"unrecorded payment", services.ErrPaymentNotRecorded, http.StatusBadGateway, msgPaymentUnstored},
		{"cache miss", redis.ErrCacheMiss, http.StatusNotFound, redis.ErrCacheMiss.Error()},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, msgInternal},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			status, msg := classify(test.err)
			assert.Equal(t, test.status, status)
			assert.Equal(t, test.message, msg)
		})
	}
}
