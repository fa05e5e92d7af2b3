package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"bookvenue/api/bookvenue"
	"bookvenue/availability"
	"bookvenue/draft"
	"bookvenue/models/booking"
)

// Tab splits the bookings list.
type Tab string

const (
	TabAll      Tab = ""
	TabUpcoming Tab = "upcoming"
	TabPast     Tab = "past"
)

const timeNotSpecified = "Time not specified"

// ErrDraftChanged is returned when a draft's court or total no longer matches what the venue
// currently offers.
var ErrDraftChanged = errors.New("booking draft does not match current availability")

// ParseTab validates a bookings tab name; the empty string selects every booking.
func ParseTab(s string) (Tab, error) {
	switch t := Tab(strings.ToLower(s)); t {
	case TabAll, TabUpcoming, TabPast:
		return t, nil
	}
	return "", fmt.Errorf("unknown bookings tab %q", s)
}

// BookingView is a booking with the fields the bookings screens derive from it.
type BookingView struct {
	booking.Booking
	TimeDisplay string `json:"timeDisplay"`
	Upcoming    bool   `json:"upcoming"`
}

// DraftRequest is the slot picker's selection when the user taps Book.
type DraftRequest struct {
	VenueSlug   string   `json:"venueSlug"`
	ServiceName string   `json:"serviceName"`
	Date        string   `json:"date"`
	Slots       []string `json:"slots"`
}

type BookingService struct {
	bookingApi bookvenue.BookingAPI
	venues     *VenueService
	builder    *draft.Builder
	clock      availability.Clock
}

// NewBookingService constructs a BookingService.
func NewBookingService(
	bookingApi bookvenue.BookingAPI,
	venues *VenueService,
	builder *draft.Builder,
	clock availability.Clock) *BookingService {

	if clock == nil {
		clock = availability.SystemClock{}
	}
	return &BookingService{
		bookingApi: bookingApi,
		venues:     venues,
		builder:    builder,
		clock:      clock,
	}
}

// ListBookings returns the caller's bookings on the given tab, in backend order.
func (bs *BookingService) ListBookings(ctx context.Context, tab Tab) ([]BookingView, error) {
	bookings, err := bs.bookingApi.ListMyBookings(ctx)
	if err != nil {
		return nil, err
	}

	now := bs.clock.Now()
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		v := view(b, now)
		if tab == TabUpcoming && !v.Upcoming || tab == TabPast && v.Upcoming {
			continue
		}
		views = append(views, v)
	}
	return views, nil
}

func (bs *BookingService) GetBooking(ctx context.Context, id string) (*BookingView, error) {
	b, err := bs.bookingApi.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	v := view(*b, bs.clock.Now())
	return &v, nil
}

func (bs *BookingService) CancelBooking(ctx context.Context, id string) error {
	return bs.bookingApi.CancelBooking(ctx, id)
}

// BuildDraft resolves the selected slot labels against the venue's current availability and
// returns the draft with the navigation parameters that carry it to checkout.
func (bs *BookingService) BuildDraft(ctx context.Context, req DraftRequest) (draft.Draft, draft.NavParams, error) {
	if len(req.Slots) == 0 {
		return draft.Draft{}, nil, draft.ErrNoSlotsSelected
	}
	sv, err := bs.venues.resolve(ctx, req.VenueSlug, req.Date, req.ServiceName)
	if err != nil {
		return draft.Draft{}, nil, err
	}

	d, err := bs.builder.Build(draft.Input{
		Venue:     sv.Venue,
		Service:   sv.Service,
		Court:     sv.Court,
		Date:      req.Date,
		Available: sv.Slots,
		Selected:  req.Slots,
	})
	if err != nil {
		return draft.Draft{}, nil, err
	}
	params, err := d.NavParams()
	if err != nil {
		return draft.Draft{}, nil, err
	}
	return d, params, nil
}

// RepriceDraft resolves d's slots against the venue's current availability and returns the draft
// priced there. It fails with ErrDraftChanged when the court or the total differs from d.
func (bs *BookingService) RepriceDraft(ctx context.Context, d draft.Draft) (draft.Draft, error) {
	if len(d.Slots) == 0 {
		return draft.Draft{}, draft.ErrNoSlotsSelected
	}
	sv, err := bs.venues.resolve(ctx, d.VenueSlug, d.Date, d.ServiceName)
	if err != nil {
		return draft.Draft{}, err
	}
	if sv.Venue.ID != d.FacilityID || sv.Court.ID != d.CourtID {
		return draft.Draft{}, fmt.Errorf("%w: court %s/%s", ErrDraftChanged, d.FacilityID, d.CourtID)
	}

	byStart := make(map[availability.TimeOfDay]string, len(sv.Slots))
	for _, s := range sv.Slots {
		byStart[s.Start] = s.Label
	}
	labels := make([]string, 0, len(d.Slots))
	for _, s := range d.Slots {
		start, err := availability.ParseTimeOfDay(s.StartTime)
		if err != nil {
			return draft.Draft{}, fmt.Errorf("%w: %s", availability.ErrUnknownSlot, s.StartTime)
		}
		label, ok := byStart[start]
		if !ok {
			return draft.Draft{}, fmt.Errorf("%w: %s", availability.ErrUnknownSlot, s.StartTime)
		}
		labels = append(labels, label)
	}

	priced, err := bs.builder.Build(draft.Input{
		Venue:     sv.Venue,
		Service:   sv.Service,
		Court:     sv.Court,
		Date:      d.Date,
		Available: sv.Slots,
		Selected:  labels,
	})
	if err != nil {
		return draft.Draft{}, err
	}
	if math.Abs(priced.TotalAmount-d.TotalAmount) >= 0.01 {
		return draft.Draft{}, fmt.Errorf("%w: total %v, now %v", ErrDraftChanged, d.TotalAmount, priced.TotalAmount)
	}
	priced.ID = d.ID
	return priced, nil
}

func view(b booking.Booking, now time.Time) BookingView {
	return BookingView{
		Booking:     b,
		TimeDisplay: TimeDisplay(b.StartTime, b.EndTime),
		Upcoming:    IsUpcoming(b.Date, now),
	}
}

// IsUpcoming reports whether date falls on or after the start of now's day. Missing or
// unparseable dates count as past.
func IsUpcoming(date string, now time.Time) bool {
	if date == "" {
		return false
	}
	d, err := availability.ParseDate(date, now.Location())
	if err != nil {
		return false
	}
	y, m, day := now.Date()
	return !d.Before(time.Date(y, m, day, 0, 0, 0, 0, now.Location()))
}

// TimeDisplay renders a booking's time range. Either side may be a comma-separated list of slot
// times, which collapses to its first and last entries.
func TimeDisplay(start, end string) string {
	if start == "" || end == "" {
		return timeNotSpecified
	}
	return mergeTimes(start) + " - " + mergeTimes(end)
}

func mergeTimes(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	times := strings.Split(s, ",")
	return strings.TrimSpace(times[0]) + " - " + strings.TrimSpace(times[len(times)-1])
}
