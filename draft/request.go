package draft

import (
	"fmt"
	"math"
	"strconv"

	"bookvenue/config"
	"bookvenue/models/booking"
	"bookvenue/models/user"
)

// SlotPricePolicy decides the per-slot price written into selected_slots.
type SlotPricePolicy string

const (
	// PriceAveraged writes round(total / count) for every slot.
	PriceAveraged SlotPricePolicy = config.SLOT_PRICE_POLICY_AVERAGED
	// PriceItemized writes each slot's own resolved price.
	PriceItemized SlotPricePolicy = config.SLOT_PRICE_POLICY_ITEMIZED
)

// DurationPolicy decides the duration sent with a create-booking request.
type DurationPolicy string

const (
	// DurationFixed60 always sends 60 minutes.
	DurationFixed60 DurationPolicy = config.BOOKING_DURATION_POLICY_FIXED
	// DurationCourt sends the court's configured slot length.
	DurationCourt DurationPolicy = config.BOOKING_DURATION_POLICY_COURT
)

// ParseSlotPricePolicy validates a configured price policy.
func ParseSlotPricePolicy(s string) (SlotPricePolicy, error) {
	switch p := SlotPricePolicy(s); p {
	case PriceAveraged, PriceItemized:
		return p, nil
	}
	return "", fmt.Errorf("unknown slot price policy %q", s)
}

// ParseDurationPolicy validates a configured duration policy.
func ParseDurationPolicy(s string) (DurationPolicy, error) {
	switch p := DurationPolicy(s); p {
	case DurationFixed60, DurationCourt:
		return p, nil
	}
	return "", fmt.Errorf("unknown duration policy %q", s)
}

// CreateRequest builds the create-booking body for a draft on behalf of the payer.
func (b *Builder) CreateRequest(d Draft, payer user.User) (booking.CreateRequest, error) {
	if len(d.Slots) == 0 {
		return booking.CreateRequest{}, ErrNoSlotsSelected
	}
	facilityID, err := strconv.ParseInt(d.FacilityID, 10, 64)
	if err != nil {
		return booking.CreateRequest{}, fmt.Errorf("invalid facility id %q", d.FacilityID)
	}
	courtID, err := strconv.ParseInt(d.CourtID, 10, 64)
	if err != nil {
		return booking.CreateRequest{}, fmt.Errorf("invalid court id %q", d.CourtID)
	}

	count := d.SlotCount
	if count <= 0 {
		count = len(d.Slots)
	}
	average := strconv.FormatInt(roundHalfUp(d.TotalAmount/float64(count)), 10)

	selected := make([]booking.SelectedSlot, 0, len(d.Slots))
	for _, s := range d.Slots {
		price := average
		if b.Prices == PriceItemized {
			price = strconv.FormatFloat(s.Price, 'f', -1, 64)
		}
		selected = append(selected, booking.SelectedSlot{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Price:     price,
		})
	}

	return booking.CreateRequest{
		FacilityID:    facilityID,
		CourtID:       courtID,
		Date:          d.Date,
		Duration:      b.duration(d),
		SlotCount:     count,
		TotalPrice:    roundHalfUp(d.TotalAmount),
		Name:          payer.Name,
		Email:         payer.Email,
		Contact:       payer.Phone,
		Address:       payer.Address,
		SelectedSlots: selected,
	}, nil
}

func (b *Builder) duration(d Draft) int {
	if b.Durations == DurationCourt && d.CourtDuration > 0 {
		return d.CourtDuration
	}
	return DefaultDuration
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
