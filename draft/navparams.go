package draft

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Navigation parameter names passed from the venue screen to the confirmation screen.
const (
	ParamDraftID     = "draftId"
	ParamVenueID     = "venueId"
	ParamVenueName   = "venueName"
	ParamFacilityID  = "facility_id"
	ParamServiceID   = "serviceId"
	ParamCourtID     = "courtId"
	ParamDate        = "date"
	ParamSlots       = "bookingSlots"
	ParamTotalAmount = "totalAmount"
	ParamCourtName   = "courtName"
	ParamServiceName = "serviceName"
	ParamTotalSlots  = "totalSlots"
	ParamDuration    = "courtDuration"
)

// NavParams is the string-typed navigation payload. Every value must be re-parsed on receipt.
type NavParams map[string]string

// navSlot is an element of the bookingSlots JSON array.
type navSlot struct {
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Price     *float64 `json:"price,omitempty"`
}

// NavParams encodes the draft for handoff to the confirmation screen.
func (d Draft) NavParams() (NavParams, error) {
	slots := make([]navSlot, 0, len(d.Slots))
	for _, s := range d.Slots {
		price := s.Price
		slots = append(slots, navSlot{StartTime: s.StartTime, EndTime: s.EndTime, Price: &price})
	}
	encoded, err := json.Marshal(slots)
	if err != nil {
		return nil, err
	}

	p := NavParams{
		ParamDraftID:     d.ID,
		ParamVenueID:     d.VenueSlug,
		ParamVenueName:   d.VenueName,
		ParamFacilityID:  d.FacilityID,
		ParamServiceID:   d.ServiceID,
		ParamCourtID:     d.CourtID,
		ParamDate:        d.Date,
		ParamSlots:       string(encoded),
		ParamTotalAmount: strconv.FormatFloat(d.TotalAmount, 'f', -1, 64),
		ParamCourtName:   d.CourtName,
		ParamServiceName: d.ServiceName,
		ParamTotalSlots:  strconv.Itoa(d.SlotCount),
	}
	if d.CourtDuration > 0 {
		p[ParamDuration] = strconv.Itoa(d.CourtDuration)
	}
	return p, nil
}

// ParseNavParams rebuilds a draft from navigation parameters. A missing bookingSlots value yields an
// empty slot list; missing numeric values read as zero.
func ParseNavParams(p NavParams) (Draft, error) {
	d := Draft{
		ID:          p[ParamDraftID],
		VenueSlug:   p[ParamVenueID],
		VenueName:   p[ParamVenueName],
		FacilityID:  p[ParamFacilityID],
		ServiceID:   p[ParamServiceID],
		ServiceName: p[ParamServiceName],
		CourtID:     p[ParamCourtID],
		CourtName:   p[ParamCourtName],
		Date:        p[ParamDate],
		Slots:       []Slot{},
	}

	if raw := p[ParamSlots]; raw != "" {
		var slots []navSlot
		if err := json.Unmarshal([]byte(raw), &slots); err != nil {
			return Draft{}, fmt.Errorf("invalid %s: %w", ParamSlots, err)
		}
		for _, s := range slots {
			slot := Slot{StartTime: s.StartTime, EndTime: s.EndTime}
			if s.Price != nil {
				slot.Price = *s.Price
			}
			d.Slots = append(d.Slots, slot)
		}
	}

	var err error
	if d.TotalAmount, err = parseFloat(p[ParamTotalAmount]); err != nil {
		return Draft{}, fmt.Errorf("invalid %s: %w", ParamTotalAmount, err)
	}
	if d.SlotCount, err = parseInt(p[ParamTotalSlots]); err != nil {
		return Draft{}, fmt.Errorf("invalid %s: %w", ParamTotalSlots, err)
	}
	if d.CourtDuration, err = parseInt(p[ParamDuration]); err != nil {
		return Draft{}, fmt.Errorf("invalid %s: %w", ParamDuration, err)
	}
	return d, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
