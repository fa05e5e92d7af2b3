package availability

import (
	"errors"
	"sort"
)

// ErrUnknownSlot is returned when toggling a label that is not on offer.
var ErrUnknownSlot = errors.New("slot not available")

// Selection is the set of slot labels a user has picked from the resolved list. The selected
// labels are kept in start-time order after every toggle.
type Selection struct {
	available map[string]Slot
	selected  []string
}

// NewSelection starts an empty selection over the resolved slots.
func NewSelection(available []Slot) *Selection {
	byLabel := make(map[string]Slot, len(available))
	for _, s := range available {
		byLabel[s.Label] = s
	}
	return &Selection{available: byLabel}
}

// Toggle adds label when absent and removes it when present. It reports whether the label is
// selected afterwards.
func (s *Selection) Toggle(label string) (bool, error) {
	if _, ok := s.available[label]; !ok {
		return false, ErrUnknownSlot
	}
	for i, l := range s.selected {
		if l == label {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return false, nil
		}
	}
	s.selected = append(s.selected, label)
	sort.SliceStable(s.selected, func(i, j int) bool {
		return s.available[s.selected[i]].Start < s.available[s.selected[j]].Start
	})
	return true, nil
}

// Has reports whether label is selected.
func (s *Selection) Has(label string) bool {
	for _, l := range s.selected {
		if l == label {
			return true
		}
	}
	return false
}

// Labels returns the selected labels in start-time order.
func (s *Selection) Labels() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

// Slots returns the selected slots in start-time order.
func (s *Selection) Slots() []Slot {
	out := make([]Slot, 0, len(s.selected))
	for _, l := range s.selected {
		out = append(out, s.available[l])
	}
	return out
}

// Len returns the number of selected slots.
func (s *Selection) Len() int {
	return len(s.selected)
}

// Total sums the resolved price of every selected slot.
func (s *Selection) Total() float64 {
	var total float64
	for _, l := range s.selected {
		total += s.available[l].Price
	}
	return total
}

// Clear drops every selection, as happens on a date or court change.
func (s *Selection) Clear() {
	s.selected = nil
}
