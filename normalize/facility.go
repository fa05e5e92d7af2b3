package normalize

import (
	"bytes"
	"encoding/json"
	"log"
	"strconv"

	"bookvenue/models/raw"
	"bookvenue/models/venue"
)

const (
	defaultRating       = 4.5
	defaultOpeningTime  = "06:00"
	defaultClosingTime  = "23:00"
	summaryDefaultPrice = 100
	detailDefaultPrice  = 0
)

// DefaultAmenities is substituted whenever amenities are not sent as an array of objects.
func DefaultAmenities() []venue.Amenity {
	return []venue.Amenity{
		{ID: "1", Name: "Parking"},
		{ID: "2", Name: "Changing Rooms"},
		{ID: "3", Name: "Lighting"},
	}
}

// FacilitySummary normalizes an entry of the all-facilities list.
func FacilitySummary(f raw.Facility, opts Options) venue.Venue {
	opts = opts.withDefaults()
	services := Services(f.Services, opts)
	v := base(f, services, opts)

	v.Slug = f.Slug.Or(f.ID.String())
	v.Name = f.OfficialName.String()
	v.Description = f.Description
	v.Location = f.Address
	v.Type = "Sports"
	if len(services) > 0 && services[0].Name != "" {
		v.Type = services[0].Name
	}
	v.PricePerHour = price(f, summaryDefaultPrice)
	return v
}

// FacilityDetail normalizes the facility returned by the slug lookup.
func FacilityDetail(f raw.Facility, opts Options) venue.Venue {
	opts = opts.withDefaults()
	services := Services(f.Services, opts)
	v := base(f, services, opts)

	v.Slug = f.Slug.String()
	v.Name = f.OfficialName.Or("Unknown Venue")
	v.Description = orString(f.Description, "No description available")
	v.Location = orString(f.Address, "Location not available")
	v.Type = "Other"
	if len(services) > 0 && services[0].Name != "" {
		v.Type = services[0].Name
	}
	v.PricePerHour = price(f, detailDefaultPrice)
	return v
}

func base(f raw.Facility, services []venue.Service, opts Options) venue.Venue {
	v := venue.Venue{
		ID:           f.ID.String(),
		Rating:       orNumber(f.AvgRating, defaultRating),
		TotalReviews: int(orNumber(f.TotalReviews, 0)),
		Amenities:    Amenities(f.Amenities, opts),
		Images:       Images(f.Images, f.FeaturedImage, opts),
		Coordinates: venue.Coordinates{
			Latitude:  orNumber(f.Lat, 0),
			Longitude: orNumber(f.Lng, 0),
		},
		Category:    f.Category.String(),
		Duration:    f.Duration.String(),
		OpeningTime: defaultOpeningTime,
		ClosingTime: defaultClosingTime,
		Services:    services,
	}
	if f.MinimumAmount.Usable() {
		amount := f.MinimumAmount.Value
		v.MinimumAmount = &amount
	}
	if c, ok := firstRawCourt(f); ok {
		v.OpeningTime = orString(c.DayStartTime, defaultOpeningTime)
		v.ClosingTime = orString(c.NightEndTime, defaultClosingTime)
	}
	return v
}

// price is minimum_amount, else the first court's day price, else its night price, else fallback.
func price(f raw.Facility, fallback float64) float64 {
	candidates := []raw.Number{f.MinimumAmount}
	if c, ok := firstRawCourt(f); ok {
		candidates = append(candidates, c.DaySlotPrice, c.NightSlotPrice)
	}
	return firstPrice(fallback, candidates...)
}

func firstRawCourt(f raw.Facility) (raw.Court, bool) {
	if len(f.Services) == 0 {
		return raw.Court{}, false
	}
	courts := f.Services[0].AllCourts()
	if len(courts) == 0 {
		return raw.Court{}, false
	}
	return courts[0], true
}

// Images decodes the image list, prepends the featured image and guarantees a non-empty result.
func Images(images json.RawMessage, featured string, opts Options) []string {
	opts = opts.withDefaults()
	out := []string{}

	paths, err := decodeImagePaths(images)
	if err != nil {
		log.Printf("[normalize] Failed to parse facility images: %v", err)
	}
	for _, p := range paths {
		out = append(out, opts.AssetBaseURL+slashes(p))
	}

	if featured != "" {
		out = append([]string{opts.AssetBaseURL + featured}, out...)
	}

	if len(out) == 0 {
		out = []string{opts.FallbackImage}
	}
	return out
}

// decodeImagePaths accepts a JSON-encoded string holding an array, or a bare array.
func decodeImagePaths(data json.RawMessage) ([]string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	if data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return nil, err
		}
		if encoded == "" {
			return nil, nil
		}
		data = []byte(encoded)
	}

	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// Amenities maps the array form; every other form yields DefaultAmenities.
func Amenities(data json.RawMessage, opts Options) []venue.Amenity {
	opts = opts.withDefaults()
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return DefaultAmenities()
	}

	var items []raw.Amenity
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("[normalize] Failed to parse facility amenities: %v", err)
		return DefaultAmenities()
	}

	out := make([]venue.Amenity, 0, len(items))
	for _, a := range items {
		out = append(out, venue.Amenity{
			ID:          a.ID.String(),
			Name:        a.Name,
			Icon:        opts.AssetBaseURL + a.Icon,
			Description: a.Description,
		})
	}
	return out
}

// Services normalizes services and their courts.
func Services(services []raw.Service, opts Options) []venue.Service {
	opts = opts.withDefaults()
	out := make([]venue.Service, 0, len(services))
	for _, s := range services {
		vs := venue.Service{
			ID:         s.ID.String(),
			FacilityID: s.FacilityID.String(),
			ServiceID:  s.ServiceID.String(),
			Name:       s.Name,
		}
		if s.Icon != "" {
			vs.Icon = opts.AssetBaseURL + s.Icon
		}
		courts := s.AllCourts()
		vs.Courts = make([]venue.Court, 0, len(courts))
		for _, c := range courts {
			vs.Courts = append(vs.Courts, Court(c))
		}
		out = append(out, vs)
	}
	return out
}

// Court normalizes a court. start_time/end_time/slot_price alias the outer day/night bounds.
func Court(c raw.Court) venue.Court {
	day := orNumber(c.DaySlotPrice, 0)
	night := orNumber(c.NightSlotPrice, 0)
	court := venue.Court{
		ID:                c.ID.String(),
		FacilityServiceID: c.FacilityServiceID.String(),
		CourtName:         c.CourtName,
		StartTime:         c.DayStartTime,
		EndTime:           c.NightEndTime,
		SlotPrice:         day,
		DayStartTime:      c.DayStartTime,
		DayEndTime:        c.DayEndTime,
		DaySlotPrice:      day,
		NightStartTime:    c.NightStartTime,
		NightEndTime:      c.NightEndTime,
		NightSlotPrice:    night,
		Duration:          duration(c.Duration),
		Breaks:            c.Breaks.String(),
	}

	if c.Slots != nil {
		court.HasServerSlots = true
		court.ServerSlots = make([]venue.SlotOffer, 0, len(c.Slots))
		for _, s := range c.Slots {
			court.ServerSlots = append(court.ServerSlots, SlotOffer(s))
		}
	}
	return court
}

// SlotOffer normalizes a precomputed slot; a missing or non-numeric price reads as 0.
func SlotOffer(s raw.Slot) venue.SlotOffer {
	return venue.SlotOffer{
		Time:      s.Time,
		Price:     orNumber(s.Price, 0),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}

// duration returns whole minutes, or 0 for anything non-numeric or non-positive.
func duration(n raw.Number) int {
	if !n.Valid || n.Value <= 0 {
		return 0
	}
	if _, err := strconv.Atoi(strconv.FormatFloat(n.Value, 'f', -1, 64)); err != nil {
		return 0
	}
	return int(n.Value)
}
