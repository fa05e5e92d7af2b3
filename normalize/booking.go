package normalize

import (
	"strconv"

	"bookvenue/models/booking"
	"bookvenue/models/raw"
	"bookvenue/models/venue"
)

// Coordinates used when a booking carries no venue location.
const (
	DefaultLatitude  = 28.6139
	DefaultLongitude = 77.2090
)

const placeholderVenueID = "venue-1"

// Status lowercases a backend status. Unknown values pass through.
func Status(s string) booking.Status {
	return booking.ParseStatus(s)
}

// BookingSummary normalizes one entry of my-bookings. index is its position in the list and is
// used as the id when the backend omits bookingId.
func BookingSummary(b raw.Booking, index int, opts Options) booking.Booking {
	opts = opts.withDefaults()

	slots := 1
	var start, end string
	if b.Slots != nil {
		slots = len(b.Slots)
		var starts, ends []string
		for _, s := range b.Slots {
			if v := s.Start(); v != "" {
				starts = append(starts, v)
			}
			if v := s.End(); v != "" {
				ends = append(ends, v)
			}
		}
		if len(starts) > 0 {
			start = starts[0]
		}
		if len(ends) > 0 {
			end = ends[len(ends)-1]
		}
	}

	return booking.Booking{
		ID: b.BookingID.Or(strconv.Itoa(index)),
		Venue: booking.VenueSnapshot{
			ID:       placeholderVenueID,
			Name:     b.Facility.Or("Unknown Venue"),
			Location: "Location not available",
			Type:     b.Court.Or("Court"),
			Slug:     placeholderVenueID,
			Images:   []string{opts.FallbackImage},
			Coordinates: venue.Coordinates{
				Latitude:  DefaultLatitude,
				Longitude: DefaultLongitude,
			},
		},
		Date:        b.Date,
		StartTime:   start,
		EndTime:     end,
		TotalAmount: orNumber(b.Price, 0),
		Status:      Status(b.Status),
		Slots:       slots,
	}
}

// BookingDetail normalizes a single booking. id is the requested id, used when the payload has none.
func BookingDetail(b raw.BookingDetail, id string, opts Options) booking.Booking {
	opts = opts.withDefaults()
	f := b.Facility
	if f == nil {
		f = &raw.FacilityRef{}
	}

	image := b.VenueImage
	if image == "" {
		if f.FeaturedImage != "" {
			image = opts.AssetBaseURL + slashes(f.FeaturedImage)
		} else {
			image = opts.FallbackImage
		}
	}

	courtName := b.CourtName
	if courtName == "" && b.Court != nil {
		courtName = b.Court.CourtName
	}

	return booking.Booking{
		ID: b.ID.Or(id),
		Venue: booking.VenueSnapshot{
			ID:       b.FacilityID.Or(placeholderVenueID),
			Name:     orString(orString(b.FacilityName, f.OfficialName), "Unknown Venue"),
			Type:     orString(courtName, "Court"),
			Location: orString(orString(b.VenueLocation, f.Address), "Location not available"),
			Slug:     orString(orString(b.FacilitySlug, f.Slug), placeholderVenueID),
			Images:   []string{image},
			Coordinates: venue.Coordinates{
				Latitude:  firstPrice(DefaultLatitude, b.VenueLat, f.Lat),
				Longitude: firstPrice(DefaultLongitude, b.VenueLng, f.Lng),
			},
		},
		Date:        b.Date,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		TotalAmount: firstPrice(0, b.TotalPrice, b.Price),
		Status:      Status(b.Status),
	}
}
