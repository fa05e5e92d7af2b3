// models/raw/booking.go
package raw

// MyBookingsResponse is the envelope of GET /my-bookings.
type MyBookingsResponse struct {
	Bookings []Booking `json:"bookings"`
}

// Booking is one entry of the my-bookings list.
type Booking struct {
	BookingID Text          `json:"bookingId"`
	Facility  Text          `json:"facility"`
	Court     Text          `json:"court"`
	Date      string        `json:"date"`
	Price     Number        `json:"price"`
	Status    string        `json:"status"`
	Slots     []BookingSlot `json:"slots"`
}

// BookingSlot carries its times under snake_case or camelCase keys.
type BookingSlot struct {
	StartTime      string `json:"start_time"`
	StartTimeCamel string `json:"startTime"`
	EndTime        string `json:"end_time"`
	EndTimeCamel   string `json:"endTime"`
}

// Start returns start_time, falling back to startTime.
func (s BookingSlot) Start() string {
	if s.StartTime != "" {
		return s.StartTime
	}
	return s.StartTimeCamel
}

// End returns end_time, falling back to endTime.
func (s BookingSlot) End() string {
	if s.EndTime != "" {
		return s.EndTime
	}
	return s.EndTimeCamel
}

// BookingEnvelope is GET /booking/{id}; the booking is either wrapped or bare.
type BookingEnvelope struct {
	Booking *BookingDetail `json:"booking"`
	BookingDetail
}

// Unwrap returns the wrapped booking when present, else the bare one.
func (e BookingEnvelope) Unwrap() BookingDetail {
	if e.Booking != nil {
		return *e.Booking
	}
	return e.BookingDetail
}

// BookingDetail is a single booking with a denormalized facility snapshot.
type BookingDetail struct {
	ID            Text         `json:"id"`
	FacilityID    Text         `json:"facility_id"`
	FacilityName  string       `json:"facility_name"`
	FacilitySlug  string       `json:"facility_slug"`
	Facility      *FacilityRef `json:"facility"`
	CourtName     string       `json:"court_name"`
	Court         *CourtRef    `json:"court"`
	VenueImage    string       `json:"venue_image"`
	VenueLocation string       `json:"venue_location"`
	VenueLat      Number       `json:"venue_lat"`
	VenueLng      Number       `json:"venue_lng"`
	Date          string       `json:"date"`
	StartTime     string       `json:"start_time"`
	EndTime       string       `json:"end_time"`
	TotalPrice    Number       `json:"total_price"`
	Price         Number       `json:"price"`
	Status        string       `json:"status"`
}

// FacilityRef is the facility object nested in a booking detail.
type FacilityRef struct {
	OfficialName  string `json:"official_name"`
	Address       string `json:"address"`
	Slug          string `json:"slug"`
	FeaturedImage string `json:"featured_image"`
	Lat           Number `json:"lat"`
	Lng           Number `json:"lng"`
}

// CourtRef is the court object nested in a booking detail.
type CourtRef struct {
	CourtName string `json:"court_name"`
}

// OrderResponse is the body of POST /booking.
type OrderResponse struct {
	Order   *Order `json:"order"`
	Message string `json:"message"`
}

// Order is the gateway order created together with a pending booking.
type Order struct {
	ID       Text   `json:"id"`
	Amount   Number `json:"amount"`
	Currency string `json:"currency"`
}
