package venue

// Service is a sport offered at a venue, with its courts in backend order.
type Service struct {
	ID         string  `json:"id"`
	FacilityID string  `json:"facility_id"`
	ServiceID  string  `json:"service_id"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon,omitempty"`
	Courts     []Court `json:"courts"`
}

// FirstCourt returns the court the slot picker shows for this service.
func (s *Service) FirstCourt() (*Court, bool) {
	if len(s.Courts) == 0 {
		return nil, false
	}
	return &s.Courts[0], true
}

// Court carries a day window and a night window, each with its own hourly price.
type Court struct {
	ID                string `json:"id"`
	FacilityServiceID string `json:"facility_service_id"`
	CourtName         string `json:"court_name"`

	// Aliases kept for screens that read a single opening range.
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	SlotPrice float64 `json:"slot_price"`

	DayStartTime   string  `json:"day_start_time"`
	DayEndTime     string  `json:"day_end_time"`
	DaySlotPrice   float64 `json:"day_slot_price"`
	NightStartTime string  `json:"night_start_time"`
	NightEndTime   string  `json:"night_end_time"`
	NightSlotPrice float64 `json:"night_slot_price"`

	// Duration is the slot length in minutes; 0 when the backend value was not numeric.
	Duration int    `json:"duration"`
	Breaks   string `json:"breaks,omitempty"`

	// ServerSlots is the backend's precomputed slot list; HasServerSlots is false when none was sent.
	ServerSlots    []SlotOffer `json:"slots,omitempty"`
	HasServerSlots bool        `json:"-"`
}

// SlotOffer is a bookable slot as the backend lists it for a date.
type SlotOffer struct {
	Time      string  `json:"time"`
	Price     float64 `json:"price"`
	StartTime string  `json:"start_time,omitempty"`
	EndTime   string  `json:"end_time,omitempty"`
}
