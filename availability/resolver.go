// Package availability turns a court's pricing windows, or the backend's slot list, into the
// bookable slots for one date.
package availability

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"bookvenue/models/venue"
)

// LabelSeparator joins start and end in a slot label, e.g. "09:00 - 10:00".
const LabelSeparator = " - "

// Slot is a half-open interval [Start, End) with the price resolved for it.
type Slot struct {
	Label string    `json:"time"`
	Start TimeOfDay `json:"-"`
	End   TimeOfDay `json:"-"`
	// HasEnd is false when the backend sent a bare start time.
	HasEnd bool    `json:"-"`
	Price  float64 `json:"price"`
}

// StartTime returns Start as "HH:MM".
func (s Slot) StartTime() string { return s.Start.String() }

// EndTime returns End as "HH:MM", or "" when the slot has no explicit end.
func (s Slot) EndTime() string {
	if !s.HasEnd {
		return ""
	}
	return s.End.String()
}

// Label builds the display label of [start, end).
func Label(start, end TimeOfDay) string {
	return start.String() + LabelSeparator + end.String()
}

// Window is an operating range priced at a single hourly rate.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
	Price float64
}

// Synthesize steps through the day window and then the night window in duration-minute
// increments. A slot is emitted only when it fits entirely inside its window. A slot is priced at
// the night rate when it starts at or after the night window's start.
//
// It returns nil when the duration is not positive or any window bound does not parse.
func Synthesize(court venue.Court) []Slot {
	if court.Duration <= 0 {
		return nil
	}

	bounds := make([]TimeOfDay, 0, 4)
	for _, s := range []string{court.DayStartTime, court.DayEndTime, court.NightStartTime, court.NightEndTime} {
		t, err := ParseTimeOfDay(s)
		if err != nil {
			return nil
		}
		bounds = append(bounds, t)
	}
	day := Window{Start: bounds[0], End: bounds[1], Price: court.DaySlotPrice}
	night := Window{Start: bounds[2], End: bounds[3], Price: court.NightSlotPrice}

	var slots []Slot
	for _, w := range []Window{day, night} {
		for t := w.Start; t.Add(court.Duration) <= w.End; t = t.Add(court.Duration) {
			price := day.Price
			if t >= night.Start {
				price = night.Price
			}
			end := t.Add(court.Duration)
			slots = append(slots, Slot{Label: Label(t, end), Start: t, End: end, HasEnd: true, Price: price})
		}
	}
	sortByStart(slots)
	return slots
}

// FromServer reads the backend's precomputed slot list. A label's start and end may be separated
// by a dash with or without surrounding spaces. Entries whose start time does not parse are
// skipped.
func FromServer(offers []venue.SlotOffer) []Slot {
	slots := make([]Slot, 0, len(offers))
	for _, o := range offers {
		s, err := parseOffer(o)
		if err != nil {
			log.Printf("[availability] Skipping slot %q: %v", o.Time, err)
			continue
		}
		slots = append(slots, s)
	}
	sortByStart(slots)
	return slots
}

func parseOffer(o venue.SlotOffer) (Slot, error) {
	startText, endText := o.StartTime, o.EndTime
	if startText == "" {
		// "09:00 - 10:00" and "09:00-10:00" are both sent
		startText, endText, _ = strings.Cut(o.Time, "-")
	}

	start, err := ParseTimeOfDay(startText)
	if err != nil {
		return Slot{}, err
	}
	slot := Slot{Label: o.Time, Start: start, Price: o.Price}
	if endText != "" {
		end, err := ParseTimeOfDay(endText)
		if err != nil {
			return Slot{}, fmt.Errorf("invalid end time: %w", err)
		}
		slot.End = end
		slot.HasEnd = true
	}
	if slot.Label == "" {
		slot.Label = start.String()
		if slot.HasEnd {
			slot.Label = Label(start, slot.End)
		}
	}
	return slot, nil
}

// Resolver produces the bookable slots of a court for a date.
type Resolver struct {
	Clock Clock
}

// NewResolver returns a Resolver reading the given clock.
func NewResolver(clock Clock) *Resolver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Resolver{Clock: clock}
}

// Resolve prefers the backend's slot list over synthesis. When date is today every slot that does
// not start strictly after the current minute is dropped.
func (r *Resolver) Resolve(court venue.Court, date string) ([]Slot, error) {
	now := r.Clock.Now()
	day, err := ParseDate(date, now.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	var slots []Slot
	if court.HasServerSlots {
		slots = FromServer(court.ServerSlots)
	} else {
		slots = Synthesize(court)
	}

	if !SameDay(now, day) {
		return slots, nil
	}
	return DropElapsed(slots, Of(now)), nil
}

// DropElapsed keeps the slots starting strictly after now.
func DropElapsed(slots []Slot, now TimeOfDay) []Slot {
	kept := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.Start > now {
			kept = append(kept, s)
		}
	}
	return kept
}

func sortByStart(slots []Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start < slots[j].Start
	})
}
