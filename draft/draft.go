// Package draft turns a slot selection into a booking draft, the navigation parameters that carry it
// to the confirmation screen, and the create-booking request built from it.
package draft

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"bookvenue/availability"
	"bookvenue/models/venue"
)

// DefaultDuration is the slot length assumed when a court does not state one.
const DefaultDuration = 60

// ErrNoSlotsSelected is returned when a draft is built from an empty selection.
var ErrNoSlotsSelected = errors.New("no slots selected")

// Slot is one selected slot with the price it was resolved at.
type Slot struct {
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Price     float64 `json:"price"`
}

// Draft is an unsaved booking selection.
type Draft struct {
	ID          string  `json:"id"`
	VenueSlug   string  `json:"venueId"`
	VenueName   string  `json:"venueName"`
	FacilityID  string  `json:"facilityId"`
	ServiceID   string  `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	CourtID     string  `json:"courtId"`
	CourtName   string  `json:"courtName"`
	Date        string  `json:"date"`
	Slots       []Slot  `json:"slots"`
	TotalAmount float64 `json:"totalAmount"`
	SlotCount   int     `json:"totalSlots"`

	// CourtDuration is the court's configured slot length; 0 when unknown.
	CourtDuration int `json:"courtDuration,omitempty"`
}

// Input is what the slot picker hands over when the user taps Book.
type Input struct {
	Venue     venue.Venue
	Service   venue.Service
	Court     venue.Court
	Date      string
	Available []availability.Slot
	Selected  []string
}

// AddMinutes adds n minutes to an "HH:MM" time with hour carry. Results past 24:00 are returned
// as they are, e.g. 23:30 + 60 is "24:30".
func AddMinutes(hhmm string, n int) (string, error) {
	t, err := availability.ParseTimeOfDay(hhmm)
	if err != nil {
		return "", err
	}
	return t.Add(n).String(), nil
}

// Builder assembles drafts and create-booking requests under the configured policies.
type Builder struct {
	Prices    SlotPricePolicy
	Durations DurationPolicy
	NewID     func() string
}

// NewBuilder returns a Builder with the given policies.
func NewBuilder(prices SlotPricePolicy, durations DurationPolicy) *Builder {
	return &Builder{
		Prices:    prices,
		Durations: durations,
		NewID:     uuid.NewString,
	}
}

// Build resolves the selected labels against the available slots. The total is the sum of the
// prices the slots were resolved at, and each slot keeps its own price.
func (b *Builder) Build(in Input) (Draft, error) {
	if len(in.Selected) == 0 {
		return Draft{}, ErrNoSlotsSelected
	}

	sel := availability.NewSelection(in.Available)
	for _, label := range in.Selected {
		if sel.Has(label) {
			continue
		}
		if _, err := sel.Toggle(label); err != nil {
			return Draft{}, fmt.Errorf("%w: %s", err, label)
		}
	}
	picked := sel.Slots()

	step := in.Court.Duration
	if step <= 0 {
		step = DefaultDuration
	}

	d := Draft{
		ID:            b.newID(),
		VenueSlug:     in.Venue.Slug,
		VenueName:     in.Venue.Name,
		FacilityID:    in.Venue.ID,
		ServiceID:     in.Service.ID,
		ServiceName:   in.Service.Name,
		CourtID:       in.Court.ID,
		CourtName:     in.Court.CourtName,
		Date:          in.Date,
		CourtDuration: in.Court.Duration,
		Slots:         make([]Slot, 0, len(picked)),
	}
	for _, s := range picked {
		end := s.EndTime()
		if end == "" {
			end = s.Start.Add(step).String()
		}
		d.Slots = append(d.Slots, Slot{StartTime: s.StartTime(), EndTime: end, Price: s.Price})
		d.TotalAmount += s.Price
	}
	d.SlotCount = len(d.Slots)
	return d, nil
}

func (b *Builder) newID() string {
	if b.NewID == nil {
		return uuid.NewString()
	}
	return b.NewID()
}
