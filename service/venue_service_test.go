package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookvenue/api/bookvenue"
	"bookvenue/availability"
	"bookvenue/dao/redis"
	"bookvenue/models/venue"
)

func labels(slots []availability.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Label)
	}
	return out
}

func TestVenueService_ListVenues_WritesThroughToCache(t *testing.T) {
	f := newFixture(t)

	venues, err := f.venues.ListVenues(context.Background())

	require.NoError(t, err)
	require.Len(t, venues, 2)
	cached, err := f.dao.GetCatalog()
	require.NoError(t, err)
	assert.Equal(t, venues, cached)

	nearby, err := f.venues.NearbyVenues(28.5708, 77.3261, 5)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, "smash-arena", nearby[0].Slug)
}

func TestVenueService_ListVenues_ServesCacheWhenBackendFails(t *testing.T) {
	f := newFixture(t)
	_, err := f.venues.ListVenues(context.Background())
	require.NoError(t, err)

	f.venueApi.failList = true
	venues, err := f.venues.ListVenues(context.Background())

	require.NoError(t, err)
	assert.Len(t, venues, 2)
}

func TestVenueService_ListVenues_ColdCacheReturnsBackendError(t *testing.T) {
	f := newFixture(t)
	f.venueApi.failList = true

	_, err := f.venues.ListVenues(context.Background())

	assert.ErrorIs(t, err, errBackendDown)
}

func TestVenueService_GetVenue_ServesCacheWhenBackendFails(t *testing.T) {
	f := newFixture(t)
	_, err := f.venues.ListVenues(context.Background())
	require.NoError(t, err)

	f.venueApi.failDetail = true
	v, err := f.venues.GetVenue(context.Background(), "smash-arena")
	require.NoError(t, err)
	assert.Equal(t, "smash-arena", v.Slug)

	_, err = f.venues.GetVenue(context.Background(), "never-listed")
	assert.ErrorIs(t, err, errBackendDown)
}

func TestVenueService_GetVenue_NotFoundSkipsCache(t *testing.T) {
	f := newFixture(t)
	_, err := f.venues.ListVenues(context.Background())
	require.NoError(t, err)

	_, err = f.venues.GetVenue(context.Background(), "no-such-venue")
	assert.ErrorIs(t, err, bookvenue.ErrVenueNotFound)
}

func TestVenueService_ResolveSlots_PrefersServerSlots(t *testing.T) {
	f := newFixture(t)

	view, err := f.venues.ResolveSlots(context.Background(), "s1", "smash-arena", "2030-03-11", "")

	require.NoError(t, err)
	assert.Equal(t, "Badminton", view.Service.Name)
	assert.Equal(t, "7", view.Court.ID)
	assert.Len(t, view.Slots, 7)
	assert.Equal(t, []string{"Badminton"}, view.Services)
	assert.Len(t, view.Days, DATE_STRIP_DAYS)
	assert.Equal(t, "2030-03-10", view.Days[0].FullDate)

	shown, ok := f.tracker.Displayed("s1")
	require.True(t, ok)
	assert.Equal(t, "2030-03-11", shown.Date)
}

func TestVenueService_ResolveSlots_DropsElapsedSlotsToday(t *testing.T) {
	f := newFixture(t)

	view, err := f.venues.ResolveSlots(context.Background(), "s1", "smash-arena", "2030-03-10", "Badminton")

	require.NoError(t, err)
	assert.Equal(t, []string{"16:00 - 17:00", "18:00 - 19:00", "19:00 - 20:00", "21:00 - 22:00"}, labels(view.Slots))
}

func TestVenueService_ResolveSlots_SynthesizesWithoutServerSlots(t *testing.T) {
	f := newFixture(t)

	view, err := f.venues.ResolveSlots(context.Background(), "s1", "goal-turf", "2030-03-11", "Football")

	require.NoError(t, err)
	require.Len(t, view.Slots, 10)
	assert.Equal(t, "07:00 - 08:30", view.Slots[0].Label)
	assert.Equal(t, float64(1200), view.Slots[0].Price)
	assert.Equal(t, "21:00 - 22:30", view.Slots[9].Label)
	assert.Equal(t, float64(1600), view.Slots[9].Price)
}

func TestVenueService_ResolveSlots_FallsBackToDetailWhenSlotsFail(t *testing.T) {
	f := newFixture(t)
	f.venueApi.failSlots = true

	view, err := f.venues.ResolveSlots(context.Background(), "s1", "smash-arena", "2030-03-11", "")

	require.NoError(t, err)
	// 06:00-17:00 and 17:00-23:00 in hour steps
	assert.Len(t, view.Slots, 17)
}

func TestVenueService_ResolveSlots_UnknownService(t *testing.T) {
	f := newFixture(t)

	_, err := f.venues.ResolveSlots(context.Background(), "s1", "smash-arena", "2030-03-11", "Tennis")

	assert.ErrorIs(t, err, ErrNoService)
	_, shown := f.tracker.Displayed("s1")
	assert.False(t, shown)
}

func TestVenueService_ResolveSlots_NewerRequestSupersedesOlder(t *testing.T) {
	f := newFixture(t)
	f.venueApi.holdFirst = true

	stale := make(chan error, 1)
	go func() {
		_, err := f.venues.ResolveSlots(context.Background(), "s1", "smash-arena", "2030-03-11", "")
		stale <- err
	}()
	<-f.venueApi.held

	view, err := f.venues.ResolveSlots(context.Background(), "s1", "smash-arena", "2030-03-12", "")
	require.NoError(t, err)
	assert.Equal(t, "2030-03-12", view.Date)

	assert.ErrorIs(t, <-stale, availability.ErrSuperseded)
	shown, ok := f.tracker.Displayed("s1")
	require.True(t, ok)
	assert.Equal(t, "2030-03-12", shown.Date)
}

func TestVenueService_CreateVenue_IndexesVenue(t *testing.T) {
	f := newFixture(t)

	v, err := f.venues.CreateVenue(context.Background(), venue.FacilityRequest{
		OfficialName: "Ace Courts",
		Address:      "Gurugram",
		Lat:          28.4595,
		Lng:          77.0266,
	})

	require.NoError(t, err)
	require.NotNil(t, v)
	cached, err := f.dao.GetVenue(v.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Ace Courts", cached.Name)
}

func TestVenueService_CourtAvailability(t *testing.T) {
	f := newFixture(t)

	got, err := f.venues.CourtAvailability(context.Background(), "12", "7", "2030-03-11")

	require.NoError(t, err)
	assert.Len(t, got.Slots, 7)
}

func TestCatalogRefresherService_RefreshCatalog(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.dao.UpsertVenue(venue.Venue{Slug: "closed-venue", Coordinates: venue.Coordinates{Latitude: 28.6, Longitude: 77.2}}))
	refresher := NewCatalogRefresherService(f.dao, f.venueApi)

	require.NoError(t, refresher.RefreshCatalog(context.Background()))

	slugs, err := f.dao.ListAllVenueSlugs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"smash-arena", "goal-turf"}, slugs)
	_, err = f.dao.GetVenue("closed-venue")
	assert.ErrorIs(t, err, redis.ErrCacheMiss)
}

func TestCatalogRefresherService_RefreshCatalog_BackendError(t *testing.T) {
	f := newFixture(t)
	f.venueApi.failList = true
	refresher := NewCatalogRefresherService(f.dao, f.venueApi)

	assert.ErrorIs(t, refresher.RefreshCatalog(context.Background()), errBackendDown)
	_, err := f.dao.GetCatalog()
	assert.ErrorIs(t, err, redis.ErrCacheMiss)
}
