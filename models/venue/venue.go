package venue

import "fmt"

// Venue is a facility in the shape the storefront screens render.
type Venue struct {
	ID           string      `json:"id"`
	Slug         string      `json:"slug"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Location     string      `json:"location"`
	Type         string      `json:"type"`
	PricePerHour float64     `json:"pricePerHour"`
	OpeningTime  string      `json:"openingTime"`
	ClosingTime  string      `json:"closingTime"`
	Rating       float64     `json:"rating"`
	TotalReviews int         `json:"totalReviews"`
	Amenities    []Amenity   `json:"amenities"`
	Images       []string    `json:"images"`
	Coordinates  Coordinates `json:"coordinates"`

	Category      string   `json:"category,omitempty"`
	MinimumAmount *float64 `json:"minimumAmount,omitempty"`
	Duration      string   `json:"duration,omitempty"`

	Services []Service `json:"services"`
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Amenity is a facility feature such as parking.
type Amenity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// PrimaryImage returns the first image, which screens treat as the cover.
func (v *Venue) PrimaryImage() string {
	if len(v.Images) == 0 {
		return ""
	}
	return v.Images[0]
}

// ServiceNames lists the services in backend order; the slot picker offers these.
func (v *Venue) ServiceNames() []string {
	names := make([]string, 0, len(v.Services))
	for _, s := range v.Services {
		names = append(names, s.Name)
	}
	return names
}

// FindService returns the service with the given display name.
func (v *Venue) FindService(name string) (*Service, bool) {
	for i := range v.Services {
		if v.Services[i].Name == name {
			return &v.Services[i], true
		}
	}
	return nil, false
}

func (v *Venue) ToString() string {
	return fmt.Sprintf("Venue(slug=%s, name=%s, location=%s, lat=%f, lon=%f)",
		v.Slug, v.Name, v.Location, v.Coordinates.Latitude, v.Coordinates.Longitude)
}
