package bookvenue

import (
	"context"
	"errors"

	"bookvenue/models/booking"
	"bookvenue/models/user"
	"bookvenue/models/venue"
)

var (
	ErrVenueNotFound   = errors.New("venue not found")
	ErrBookingNotFound = errors.New("booking not found")
	// ErrNoOrder is returned when the backend accepted a booking but opened no payment order.
	ErrNoOrder = errors.New("backend opened no payment order")
)

// VenueAPI covers the facility endpoints of the booking backend
type VenueAPI interface {
	ListFacilities(ctx context.Context) ([]venue.Venue, error)
	GetFacilityBySlug(ctx context.Context, slug string) (*venue.Venue, error)
	GetSlotsByDate(ctx context.Context, slug, date string) ([]venue.Service, error)
	CreateFacility(ctx context.Context, req venue.FacilityRequest) (*venue.Venue, error)
}

// BookingAPI covers the booking and payment-report endpoints
type BookingAPI interface {
	ListMyBookings(ctx context.Context) ([]booking.Booking, error)
	GetBooking(ctx context.Context, id string) (*booking.Booking, error)
	GetCourtAvailability(ctx context.Context, facilityID, courtID, date string) (*venue.CourtAvailability, error)
	CreateBooking(ctx context.Context, req booking.CreateRequest) (*booking.CreateResult, error)
	CancelBooking(ctx context.Context, id string) error
	PaymentSuccess(ctx context.Context, report booking.PaymentSuccess) error
	PaymentFailure(ctx context.Context, report booking.PaymentFailure) error
}

// UserAPI covers the signed-in user's profile
type UserAPI interface {
	GetUserDetails(ctx context.Context) (*user.User, error)
	UpdateUserProfile(ctx context.Context, update user.ProfileUpdate) (*user.User, error)
}

// BookVenueAPI is the whole backend surface
type BookVenueAPI interface {
	VenueAPI
	BookingAPI
	UserAPI
}
