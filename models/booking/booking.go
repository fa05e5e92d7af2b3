package booking

import (
	"strings"

	"bookvenue/models/venue"
)

// Status is the server-owned lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus lowercases s; an empty status reads as pending. Values outside the known set are
// kept as they are.
func ParseStatus(s string) Status {
	if s == "" {
		return StatusPending
	}
	return Status(strings.ToLower(s))
}

// Known reports whether s is one of pending, confirmed or cancelled.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Booking is a reservation as the bookings screens render it.
type Booking struct {
	ID          string        `json:"id"`
	Venue       VenueSnapshot `json:"venue"`
	Date        string        `json:"date"`
	StartTime   string        `json:"startTime"`
	EndTime     string        `json:"endTime"`
	TotalAmount float64       `json:"totalAmount"`
	Status      Status        `json:"status"`
	Slots       int           `json:"slots,omitempty"`
}

// VenueSnapshot is the venue as denormalized onto a booking by the backend.
type VenueSnapshot struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Location    string            `json:"location"`
	Type        string            `json:"type"`
	Slug        string            `json:"slug"`
	Images      []string          `json:"images"`
	Coordinates venue.Coordinates `json:"coordinates"`
}
