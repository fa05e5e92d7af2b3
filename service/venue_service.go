package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"bookvenue/api/bookvenue"
	"bookvenue/availability"
	"bookvenue/dao/redis"
	"bookvenue/models/venue"
)

// DATE_STRIP_DAYS is how many days the slot picker offers, starting today.
const DATE_STRIP_DAYS = 15

var (
	// ErrNoService is returned when a venue offers no service to pick slots for.
	ErrNoService = errors.New("venue offers no bookable service")
	// ErrNoCourt is returned when the chosen service has no court.
	ErrNoCourt = errors.New("service has no court")
)

// SlotsView is everything the slot picker shows for one venue, service and date.
type SlotsView struct {
	Venue    venue.Venue         `json:"venue"`
	Service  venue.Service       `json:"service"`
	Court    venue.Court         `json:"court"`
	Date     string              `json:"date"`
	Slots    []availability.Slot `json:"slots"`
	Services []string            `json:"services"`
	Days     []availability.Day  `json:"days"`
}

type VenueService struct {
	venueDao   *redis.RedisVenueDAO
	venueApi   bookvenue.VenueAPI
	bookingApi bookvenue.BookingAPI
	resolver   *availability.Resolver
	tracker    *availability.Tracker
}

// NewVenueService constructs a new VenueService with Redis dependency injection.
func NewVenueService(
	venueDao *redis.RedisVenueDAO,
	venueApi bookvenue.VenueAPI,
	bookingApi bookvenue.BookingAPI,
	resolver *availability.Resolver,
	tracker *availability.Tracker) *VenueService {

	return &VenueService{
		venueDao:   venueDao,
		venueApi:   venueApi,
		bookingApi: bookingApi,
		resolver:   resolver,
		tracker:    tracker,
	}
}

// ListVenues reads the facility list from the backend and writes it through to the cache. When
// the backend fails the cached catalog is served instead, if there is one.
func (vs *VenueService) ListVenues(ctx context.Context) ([]venue.Venue, error) {
	venues, err := vs.venueApi.ListFacilities(ctx)
	if err != nil {
		cached, cacheErr := vs.venueDao.GetCatalog()
		if cacheErr != nil {
			return nil, err
		}
		log.Printf("[VenueService] Backend failed, serving %d cached venues: %v", len(cached), err)
		return cached, nil
	}

	if err := vs.venueDao.SetCatalog(venues); err != nil {
		log.Printf("[VenueService] Failed to cache venue catalog: %v", err)
	}
	for _, v := range venues {
		if err := vs.venueDao.UpsertVenue(v); err != nil {
			log.Printf("[VenueService] Failed to index venue %s: %v", v.Slug, err)
		}
	}
	return venues, nil
}

// GetVenue returns the facility detail for slug. When the backend fails for any reason other than
// the venue not existing, the venue cached by the last catalog refresh is served instead.
func (vs *VenueService) GetVenue(ctx context.Context, slug string) (*venue.Venue, error) {
	v, err := vs.venueApi.GetFacilityBySlug(ctx, slug)
	if err == nil || errors.Is(err, bookvenue.ErrVenueNotFound) {
		return v, err
	}

	cached, cacheErr := vs.venueDao.GetVenue(slug)
	if cacheErr != nil {
		return nil, err
	}
	log.Printf("[VenueService] Backend failed, serving cached venue %s: %v", slug, err)
	return cached, nil
}

// NearbyVenues searches the geo index built from the last catalog refresh.
func (vs *VenueService) NearbyVenues(lat, lon, radius float64) ([]venue.Venue, error) {
	return vs.venueDao.GetNearbyVenues(lat, lon, radius)
}

// CreateVenue registers a facility and indexes it.
func (vs *VenueService) CreateVenue(ctx context.Context, req venue.FacilityRequest) (*venue.Venue, error) {
	v, err := vs.venueApi.CreateFacility(ctx, req)
	if err != nil || v == nil {
		return v, err
	}
	if err := vs.venueDao.UpsertVenue(*v); err != nil {
		log.Printf("[VenueService] Failed to index new venue %s: %v", v.Slug, err)
	}
	return v, nil
}

// CourtAvailability returns the backend's view of one court on one date.
func (vs *VenueService) CourtAvailability(ctx context.Context, facilityID, courtID, date string) (*venue.CourtAvailability, error) {
	return vs.bookingApi.GetCourtAvailability(ctx, facilityID, courtID, date)
}

// ResolveSlots resolves the picker for a session. A request superseded by a newer one from the
// same session returns availability.ErrSuperseded and must not be shown.
func (vs *VenueService) ResolveSlots(ctx context.Context, session, slug, date, serviceName string) (*SlotsView, error) {
	key := availability.Key{Session: session, Date: date, Court: slug + "/" + serviceName}
	tracked, ticket := vs.tracker.Begin(ctx, key)

	view, err := vs.resolve(tracked, slug, date, serviceName)
	if err != nil {
		vs.tracker.Abandon(ticket)
		if ctx.Err() == nil && tracked.Err() != nil {
			return nil, availability.ErrSuperseded
		}
		return nil, err
	}
	if err := vs.tracker.Commit(ticket); err != nil {
		return nil, err
	}
	return view, nil
}

// resolve picks the named service, or the first one, and resolves its first court. The backend's
// slot list for the date is preferred; when it cannot be fetched the court's windows are
// synthesized from the facility detail.
func (vs *VenueService) resolve(ctx context.Context, slug, date, serviceName string) (*SlotsView, error) {
	v, err := vs.venueApi.GetFacilityBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	services, err := vs.venueApi.GetSlotsByDate(ctx, slug, date)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("[VenueService] Falling back to synthesized slots for %s on %s: %v", slug, date, err)
		services = v.Services
	}

	svc, err := pickService(services, serviceName)
	if err != nil {
		return nil, err
	}
	court, ok := svc.FirstCourt()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoCourt, svc.Name)
	}

	slots, err := vs.resolver.Resolve(*court, date)
	if err != nil {
		return nil, err
	}

	return &SlotsView{
		Venue:    *v,
		Service:  *svc,
		Court:    *court,
		Date:     date,
		Slots:    slots,
		Services: v.ServiceNames(),
		Days:     availability.NextDays(vs.resolver.Clock, DATE_STRIP_DAYS),
	}, nil
}

func pickService(services []venue.Service, name string) (*venue.Service, error) {
	if len(services) == 0 {
		return nil, ErrNoService
	}
	if name == "" {
		return &services[0], nil
	}
	for i := range services {
		if services[i].Name == name {
			return &services[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoService, name)
}
