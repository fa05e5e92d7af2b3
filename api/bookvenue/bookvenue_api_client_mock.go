package bookvenue

import (
	"context"
	"embed"
	"fmt"
	"log"
	"sync"

	"bookvenue/models/booking"
	"bookvenue/models/raw"
	"bookvenue/models/user"
	"bookvenue/models/venue"
	"bookvenue/normalize"
	"bookvenue/util"
)

const (
	FACILITIES_FIXTURE      = "fixtures/facilities.json"
	SLOTS_BY_DATE_FIXTURE   = "fixtures/slots_by_date.json"
	MY_BOOKINGS_FIXTURE     = "fixtures/my_bookings.json"
	BOOKING_DETAILS_FIXTURE = "fixtures/booking_details.json"
	USER_FIXTURE            = "fixtures/user.json"
)

//go:embed fixtures/*.json
var fixtures embed.FS

// BookVenueApiClientMock serves the embedded fixtures and keeps booking changes in memory
type BookVenueApiClientMock struct {
	opts normalize.Options

	mu         sync.Mutex
	facilities []raw.Facility
	slots      map[string]raw.SlotsByDateResponse
	bookings   []raw.Booking
	details    map[string]raw.BookingDetail
	user       raw.User
	orders     int

	SuccessReports []booking.PaymentSuccess
	FailureReports []booking.PaymentFailure
}

// NewBookVenueApiClientMock creates a new instance of BookVenueApiClientMock
func NewBookVenueApiClientMock(opts normalize.Options) (*BookVenueApiClientMock, error) {
	facilities, err := util.ReadFacilityListFromFS(fixtures, FACILITIES_FIXTURE)
	if err != nil {
		return nil, err
	}
	slots, err := util.ReadSlotsByDateFromFS(fixtures, SLOTS_BY_DATE_FIXTURE)
	if err != nil {
		return nil, err
	}
	bookings, err := util.ReadMyBookingsFromFS(fixtures, MY_BOOKINGS_FIXTURE)
	if err != nil {
		return nil, err
	}
	envelopes, err := util.ReadBookingDetailsFromFS(fixtures, BOOKING_DETAILS_FIXTURE)
	if err != nil {
		return nil, err
	}
	u, err := util.ReadUserFromFS(fixtures, USER_FIXTURE)
	if err != nil {
		return nil, err
	}

	details := make(map[string]raw.BookingDetail, len(envelopes))
	for id, e := range envelopes {
		details[id] = e.Unwrap()
	}

	return &BookVenueApiClientMock{
		opts:       opts,
		facilities: facilities.Facility,
		slots:      slots,
		bookings:   bookings.Bookings,
		details:    details,
		user:       *u,
	}, nil
}

func (c *BookVenueApiClientMock) ListFacilities(ctx context.Context) ([]venue.Venue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	venues := make([]venue.Venue, 0, len(c.facilities))
	for _, f := range c.facilities {
		venues = append(venues, normalize.FacilitySummary(f, c.opts))
	}
	return venues, nil
}

func (c *BookVenueApiClientMock) GetFacilityBySlug(ctx context.Context, slug string) (*venue.Venue, error) {
	f, ok := c.facility(slug)
	if !ok {
		return nil, ErrVenueNotFound
	}
	v := normalize.FacilityDetail(f, c.opts)
	return &v, nil
}

// GetSlotsByDate serves the fixture slots for the slug; facilities without any get their courts
// without a slot list.
func (c *BookVenueApiClientMock) GetSlotsByDate(ctx context.Context, slug, date string) ([]venue.Service, error) {
	c.mu.Lock()
	resp, ok := c.slots[slug]
	c.mu.Unlock()
	if ok {
		return normalize.Services(resp.Services, c.opts), nil
	}

	f, ok := c.facility(slug)
	if !ok {
		return nil, ErrVenueNotFound
	}
	return normalize.Services(f.Services, c.opts), nil
}

func (c *BookVenueApiClientMock) CreateFacility(ctx context.Context, req venue.FacilityRequest) (*venue.Venue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := fmt.Sprintf("%d", 1000+len(c.facilities))
	f := raw.Facility{
		ID:            raw.Text(id),
		Slug:          raw.Text("facility-" + id),
		OfficialName:  raw.Text(req.OfficialName),
		Description:   req.Description,
		Address:       req.Address,
		Lat:           raw.Num(req.Lat),
		Lng:           raw.Num(req.Lng),
		Category:      raw.Text(req.Category),
		Duration:      raw.Text(req.Duration),
		MinimumAmount: raw.Num(req.MinimumAmount),
	}
	c.facilities = append(c.facilities, f)
	v := normalize.FacilityDetail(f, c.opts)
	return &v, nil
}

func (c *BookVenueApiClientMock) ListMyBookings(ctx context.Context) ([]booking.Booking, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]booking.Booking, 0, len(c.bookings))
	for i, b := range c.bookings {
		out = append(out, normalize.BookingSummary(b, i, c.opts))
	}
	return out, nil
}

func (c *BookVenueApiClientMock) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.details[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	b := normalize.BookingDetail(d, id, c.opts)
	return &b, nil
}

// GetCourtAvailability reports the fixture slot list of the court as free.
func (c *BookVenueApiClientMock) GetCourtAvailability(ctx context.Context, facilityID, courtID, date string) (*venue.CourtAvailability, error) {
	out := &venue.CourtAvailability{FacilityID: facilityID, CourtID: courtID, Date: date, Slots: []venue.SlotOffer{}}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, resp := range c.slots {
		for _, s := range normalize.Services(resp.Services, c.opts) {
			for _, court := range s.Courts {
				if court.ID == courtID && s.FacilityID == facilityID {
					out.Slots = append(out.Slots, court.ServerSlots...)
				}
			}
		}
	}
	return out, nil
}

func (c *BookVenueApiClientMock) CreateBooking(ctx context.Context, req booking.CreateRequest) (*booking.CreateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.orders++
	id := fmt.Sprintf("%d", 200+c.orders)
	orderID := fmt.Sprintf("order_mock_%d", c.orders)

	slots := make([]raw.BookingSlot, 0, len(req.SelectedSlots))
	for _, s := range req.SelectedSlots {
		slots = append(slots, raw.BookingSlot{StartTime: s.StartTime, EndTime: s.EndTime})
	}
	facility := c.facilityName(fmt.Sprintf("%d", req.FacilityID))
	c.bookings = append(c.bookings, raw.Booking{
		BookingID: raw.Text(id),
		Facility:  raw.Text(facility),
		Date:      req.Date,
		Price:     raw.Num(float64(req.TotalPrice)),
		Status:    string(booking.StatusPending),
		Slots:     slots,
	})
	log.Printf("[BookVenueApiClientMock] Created booking %s with order %s", id, orderID)

	return &booking.CreateResult{
		Success: true,
		Order:   &booking.Order{ID: orderID, Amount: float64(req.TotalPrice), Currency: "INR"},
		Message: "Booking created",
	}, nil
}

func (c *BookVenueApiClientMock) CancelBooking(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	for i := range c.bookings {
		if c.bookings[i].BookingID.String() == id {
			c.bookings[i].Status = string(booking.StatusCancelled)
			found = true
		}
	}
	if d, ok := c.details[id]; ok {
		d.Status = string(booking.StatusCancelled)
		c.details[id] = d
		found = true
	}
	if !found {
		return ErrBookingNotFound
	}
	return nil
}

func (c *BookVenueApiClientMock) PaymentSuccess(ctx context.Context, report booking.PaymentSuccess) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SuccessReports = append(c.SuccessReports, report)
	return nil
}

func (c *BookVenueApiClientMock) PaymentFailure(ctx context.Context, report booking.PaymentFailure) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.FailureReports = append(c.FailureReports, report)
	return nil
}

func (c *BookVenueApiClientMock) GetUserDetails(ctx context.Context) (*user.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := normalize.User(c.user, c.opts)
	return &u, nil
}

func (c *BookVenueApiClientMock) UpdateUserProfile(ctx context.Context, update user.ProfileUpdate) (*user.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.user.Name = update.Name
	c.user.Email = update.Email
	c.user.Contact = raw.Text(update.Contact)
	c.user.Phone = ""
	c.user.Address = update.Address
	if len(update.Image) > 0 {
		c.user.Image = "uploads/users/profile.jpg"
	}
	u := normalize.User(c.user, c.opts)
	return &u, nil
}

func (c *BookVenueApiClientMock) facility(slug string) (raw.Facility, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range c.facilities {
		if f.Slug.String() == slug {
			return f, true
		}
	}
	return raw.Facility{}, false
}

func (c *BookVenueApiClientMock) facilityName(id string) string {
	for _, f := range c.facilities {
		if f.ID.String() == id {
			return f.OfficialName.String()
		}
	}
	return ""
}
