// models/raw/facility.go
package raw

import "encoding/json"

// FacilityListResponse is the envelope of GET /get-all-facility.
type FacilityListResponse struct {
	Facility []Facility `json:"facility"`
}

// FacilityResponse is the envelope of GET /get-facility-by-slug/{slug}.
type FacilityResponse struct {
	Facility *Facility `json:"facility"`
}

// Facility is a venue exactly as the backend sends it.
type Facility struct {
	ID            Text   `json:"id"`
	Slug          Text   `json:"slug"`
	OfficialName  Text   `json:"official_name"`
	Description   string `json:"description"`
	Address       string `json:"address"`
	Lat           Number `json:"lat"`
	Lng           Number `json:"lng"`
	Category      Text   `json:"category"`
	Duration      Text   `json:"duration"`
	MinimumAmount Number `json:"minimum_amount"`
	AvgRating     Number `json:"avg_rating"`
	TotalReviews  Number `json:"total_reviews"`
	FeaturedImage string `json:"featured_image"`

	// Images is usually a JSON-encoded string holding an array of relative paths.
	Images json.RawMessage `json:"images"`
	// Amenities is an array of objects, a JSON-encoded string of ids, or absent.
	Amenities json.RawMessage `json:"amenities"`

	Services []Service `json:"services"`
}

// Service is one sport offered at a facility.
type Service struct {
	ID         Text   `json:"id"`
	FacilityID Text   `json:"facility_id"`
	ServiceID  Text   `json:"service_id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Images     string `json:"images"`

	// The slug endpoint sends "courts" on some services and "court" on others.
	Courts []Court `json:"courts"`
	Court  []Court `json:"court"`
}

// AllCourts returns "courts" when present, else "court".
func (s Service) AllCourts() []Court {
	if s.Courts != nil {
		return s.Courts
	}
	return s.Court
}

// Court is a bookable resource with its day and night pricing windows.
type Court struct {
	ID                Text   `json:"id"`
	FacilityServiceID Text   `json:"facility_service_id"`
	CourtName         string `json:"court_name"`
	DayStartTime      string `json:"day_start_time"`
	DayEndTime        string `json:"day_end_time"`
	DaySlotPrice      Number `json:"day_slot_price"`
	NightStartTime    string `json:"night_start_time"`
	NightEndTime      string `json:"night_end_time"`
	NightSlotPrice    Number `json:"night_slot_price"`
	Duration          Number `json:"duration"`
	Breaks            Text   `json:"breaks"`

	// Slots is only sent by the slots-by-date endpoint. A nil slice means the key was absent.
	Slots []Slot `json:"slots"`
}

// Slot is one precomputed slot from the slots-by-date endpoint.
type Slot struct {
	Time      string `json:"time"`
	Price     Number `json:"price"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Amenity is the array form of a facility's amenities.
type Amenity struct {
	ID          Text   `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// SlotsByDateResponse is the body of GET /get-slots-by-date/{slug}/{date}.
type SlotsByDateResponse struct {
	Services []Service `json:"services"`
}

// CourtAvailabilityResponse is the body of GET /court-availability/{facility}/{court}/{date}.
type CourtAvailabilityResponse struct {
	Date        string   `json:"date"`
	Slots       []Slot   `json:"slots"`
	BookedSlots []string `json:"booked_slots"`
}

// CreateFacilityResponse is the body of POST /create-facility.
type CreateFacilityResponse struct {
	Message  string    `json:"message"`
	Facility *Facility `json:"facility"`
}
