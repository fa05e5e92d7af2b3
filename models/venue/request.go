package venue

// FacilityRequest is the body of POST /create-facility.
type FacilityRequest struct {
	OfficialName  string  `json:"official_name"`
	Description   string  `json:"description"`
	Address       string  `json:"address"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	Category      string  `json:"category,omitempty"`
	MinimumAmount float64 `json:"minimum_amount,omitempty"`
	Duration      string  `json:"duration,omitempty"`
}

// CourtAvailability is the backend's view of one court on one date.
type CourtAvailability struct {
	FacilityID  string      `json:"facilityId"`
	CourtID     string      `json:"courtId"`
	Date        string      `json:"date"`
	Slots       []SlotOffer `json:"slots"`
	BookedSlots []string    `json:"bookedSlots"`
}
