package bookvenue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"bookvenue/api"
	"bookvenue/models/booking"
	"bookvenue/models/raw"
	"bookvenue/models/user"
	"bookvenue/models/venue"
	"bookvenue/normalize"
)

// Fallback messages shown when the backend gives no message of its own.
const (
	msgFetchVenues       = "Failed to fetch venues"
	msgVenueNotFound     = "Venue not found"
	msgFetchSlots        = "Failed to fetch slots"
	msgCreateVenue       = "Failed to create venue"
	msgFetchBookings     = "Failed to fetch bookings"
	msgFetchBooking      = "Failed to fetch booking"
	msgFetchAvailability = "Failed to fetch availability"
	msgCreateBooking     = "Failed to create booking"
	msgCancelBooking     = "Failed to cancel booking"
	msgPaymentStatus     = "Failed to update payment status"
	msgFetchUser         = "Failed to fetch user details"
	msgUpdateProfile     = "Failed to update profile"
)

// BookVenueApiClient embeds the common HTTPClient
type BookVenueApiClient struct {
	*api.HTTPClient
	opts normalize.Options
}

// NewBookVenueApiClient creates a new instance of BookVenueApiClient
func NewBookVenueApiClient(httpClient *api.HTTPClient, opts normalize.Options) *BookVenueApiClient {
	return &BookVenueApiClient{
		HTTPClient: httpClient,
		opts:       opts,
	}
}

// ListFacilities retrieves every facility in list shape
func (c *BookVenueApiClient) ListFacilities(ctx context.Context) ([]venue.Venue, error) {
	var response raw.FacilityListResponse
	if err := c.Request(ctx, http.MethodGet, "/get-all-facility", nil, nil, &response); err != nil {
		log.Printf("[BookVenueApiClient] Failed to fetch venues: %v", err)
		return nil, api.Wrap(err, msgFetchVenues)
	}

	venues := make([]venue.Venue, 0, len(response.Facility))
	for _, f := range response.Facility {
		venues = append(venues, normalize.FacilitySummary(f, c.opts))
	}
	return venues, nil
}

// GetFacilityBySlug retrieves one facility in detail shape
func (c *BookVenueApiClient) GetFacilityBySlug(ctx context.Context, slug string) (*venue.Venue, error) {
	var response raw.FacilityResponse
	err := c.Request(ctx, http.MethodGet, "/get-facility-by-slug/"+url.PathEscape(slug), nil, nil, &response)
	if api.StatusCode(err) == http.StatusNotFound {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		log.Printf("[BookVenueApiClient] Error fetching venue by slug %s: %v", slug, err)
		return nil, &api.Failure{Message: msgVenueNotFound, Err: err}
	}
	if response.Facility == nil {
		return nil, ErrVenueNotFound
	}

	v := normalize.FacilityDetail(*response.Facility, c.opts)
	return &v, nil
}

// GetSlotsByDate retrieves the services of a facility with each court's slots for date
func (c *BookVenueApiClient) GetSlotsByDate(ctx context.Context, slug, date string) ([]venue.Service, error) {
	var response raw.SlotsByDateResponse
	endpoint := "/get-slots-by-date/" + url.PathEscape(slug) + "/" + url.PathEscape(date)
	if err := c.Request(ctx, http.MethodGet, endpoint, nil, nil, &response); err != nil {
		return nil, api.Wrap(err, msgFetchSlots)
	}
	return normalize.Services(response.Services, c.opts), nil
}

// CreateFacility registers a new facility
func (c *BookVenueApiClient) CreateFacility(ctx context.Context, req venue.FacilityRequest) (*venue.Venue, error) {
	var response raw.CreateFacilityResponse
	if err := c.Request(ctx, http.MethodPost, "/create-facility", nil, req, &response); err != nil {
		log.Printf("[BookVenueApiClient] Error creating venue: %v", err)
		return nil, &api.Failure{Message: msgCreateVenue, Err: err}
	}
	if response.Facility == nil {
		return nil, nil
	}
	v := normalize.FacilityDetail(*response.Facility, c.opts)
	return &v, nil
}

// ListMyBookings retrieves the bookings of the token owner
func (c *BookVenueApiClient) ListMyBookings(ctx context.Context) ([]booking.Booking, error) {
	if err := c.authorized(ctx); err != nil {
		return nil, err
	}
	var response raw.MyBookingsResponse
	if err := c.Request(ctx, http.MethodGet, "/my-bookings", nil, nil, &response); err != nil {
		return nil, api.Wrap(err, msgFetchBookings)
	}

	bookings := make([]booking.Booking, 0, len(response.Bookings))
	for i, b := range response.Bookings {
		bookings = append(bookings, normalize.BookingSummary(b, i, c.opts))
	}
	return bookings, nil
}

// GetBooking retrieves a single booking
func (c *BookVenueApiClient) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	if err := c.authorized(ctx); err != nil {
		return nil, err
	}
	var body json.RawMessage
	err := c.Request(ctx, http.MethodGet, "/booking/"+url.PathEscape(id), nil, nil, &body)
	if api.StatusCode(err) == http.StatusNotFound {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, api.Wrap(err, msgFetchBooking)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || string(body) == "null" {
		return nil, ErrBookingNotFound
	}
	var envelope raw.BookingEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &api.Failure{Message: msgFetchBooking, Err: err}
	}

	b := normalize.BookingDetail(envelope.Unwrap(), id, c.opts)
	return &b, nil
}

// GetCourtAvailability retrieves the backend's availability for one court on one date
func (c *BookVenueApiClient) GetCourtAvailability(ctx context.Context, facilityID, courtID, date string) (*venue.CourtAvailability, error) {
	var response raw.CourtAvailabilityResponse
	endpoint := "/court-availability/" + url.PathEscape(facilityID) + "/" + url.PathEscape(courtID) + "/" + url.PathEscape(date)
	if err := c.Request(ctx, http.MethodGet, endpoint, nil, nil, &response); err != nil {
		return nil, api.Wrap(err, msgFetchAvailability)
	}

	out := &venue.CourtAvailability{
		FacilityID:  facilityID,
		CourtID:     courtID,
		Date:        date,
		Slots:       make([]venue.SlotOffer, 0, len(response.Slots)),
		BookedSlots: response.BookedSlots,
	}
	if response.Date != "" {
		out.Date = response.Date
	}
	for _, s := range response.Slots {
		out.Slots = append(out.Slots, normalize.SlotOffer(s))
	}
	return out, nil
}

// CreateBooking creates a pending booking and the payment order for it
func (c *BookVenueApiClient) CreateBooking(ctx context.Context, req booking.CreateRequest) (*booking.CreateResult, error) {
	if err := c.authorized(ctx); err != nil {
		return nil, err
	}
	var response raw.OrderResponse
	if err := c.Request(ctx, http.MethodPost, "/booking", nil, req, &response); err != nil {
		log.Printf("[BookVenueApiClient] Booking creation error: %v", err)
		return nil, api.Wrap(err, msgCreateBooking)
	}

	result := &booking.CreateResult{Success: true, Message: response.Message}
	if response.Order != nil {
		result.Order = &booking.Order{
			ID:       response.Order.ID.String(),
			Amount:   response.Order.Amount.Value,
			Currency: response.Order.Currency,
		}
	}
	return result, nil
}

// CancelBooking asks the backend to cancel a booking
func (c *BookVenueApiClient) CancelBooking(ctx context.Context, id string) error {
	if err := c.authorized(ctx); err != nil {
		return err
	}
	if err := c.Request(ctx, http.MethodGet, "/cancel-booking/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return api.Wrap(err, msgCancelBooking)
	}
	return nil
}

// PaymentSuccess reports a completed checkout
func (c *BookVenueApiClient) PaymentSuccess(ctx context.Context, report booking.PaymentSuccess) error {
	if err := c.authorized(ctx); err != nil {
		return err
	}
	if err := c.Request(ctx, http.MethodPost, "/payment-success", nil, report, nil); err != nil {
		return api.Wrap(err, msgPaymentStatus)
	}
	return nil
}

// PaymentFailure reports a failed checkout
func (c *BookVenueApiClient) PaymentFailure(ctx context.Context, report booking.PaymentFailure) error {
	if err := c.authorized(ctx); err != nil {
		return err
	}
	if err := c.Request(ctx, http.MethodPost, "/payment-failure", nil, report, nil); err != nil {
		return api.Wrap(err, msgPaymentStatus)
	}
	return nil
}

// GetUserDetails retrieves the token owner's profile
func (c *BookVenueApiClient) GetUserDetails(ctx context.Context) (*user.User, error) {
	if err := c.authorized(ctx); err != nil {
		return nil, err
	}
	var response raw.UserEnvelope
	if err := c.Request(ctx, http.MethodGet, "/user-details", nil, nil, &response); err != nil {
		return nil, api.Wrap(err, msgFetchUser)
	}
	u := normalize.User(response.Unwrap(), c.opts)
	return &u, nil
}

// UpdateUserProfile uploads the profile form, with the photo when one is given
func (c *BookVenueApiClient) UpdateUserProfile(ctx context.Context, update user.ProfileUpdate) (*user.User, error) {
	if err := c.authorized(ctx); err != nil {
		return nil, err
	}
	form := api.Form{
		Fields: [][2]string{
			{"name", update.Name},
			{"email", update.Email},
			{"contact", update.Contact},
			{"address", update.Address},
		},
	}
	if len(update.Image) > 0 {
		form.Files = append(form.Files, api.FilePart{
			Field:       "image",
			FileName:    "profile.jpg",
			ContentType: "image/jpeg",
			Data:        update.Image,
		})
	}

	var response raw.UserEnvelope
	if err := c.RequestMultipart(ctx, http.MethodPost, "/update-profile", form, &response); err != nil {
		return nil, api.Wrap(err, msgUpdateProfile)
	}
	u := normalize.User(response.Unwrap(), c.opts)
	if u.ID == "" && u.Name == "" {
		// the backend acknowledged without echoing the profile
		u = user.User{Name: update.Name, Email: update.Email, Phone: update.Contact, Address: update.Address}
	}
	return &u, nil
}

// authorized fails with api.ErrNoCredentials, or api.ErrTokenExpired, before a call that acts on
// behalf of a user would go out without a token.
func (c *BookVenueApiClient) authorized(ctx context.Context) error {
	if c.Credentials == nil {
		return api.ErrNoCredentials
	}
	_, err := c.Credentials.Token(ctx)
	return err
}

// IsNotFound reports whether err means the venue or booking does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrVenueNotFound) || errors.Is(err, ErrBookingNotFound)
}
