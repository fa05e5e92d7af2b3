package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookvenue/api/bookvenue"
	"bookvenue/availability"
	"bookvenue/dao/redis"
	"bookvenue/db"
	"bookvenue/draft"
	"bookvenue/models/venue"
	"bookvenue/normalize"
	"bookvenue/payment"
)

var errBackendDown = errors.New("backend down")

// flakyVenueAPI wraps the fixture client and can fail or hold facility calls.
type flakyVenueAPI struct {
	*bookvenue.BookVenueApiClientMock

	failList   bool
	failSlots  bool
	failDetail bool

	mu        sync.Mutex
	holdFirst bool
	held      chan struct{}
}

func (f *flakyVenueAPI) ListFacilities(ctx context.Context) ([]venue.Venue, error) {
	if f.failList {
		return nil, errBackendDown
	}
	return f.BookVenueApiClientMock.ListFacilities(ctx)
}

func (f *flakyVenueAPI) GetFacilityBySlug(ctx context.Context, slug string) (*venue.Venue, error) {
	if f.failDetail {
		return nil, errBackendDown
	}
	return f.BookVenueApiClientMock.GetFacilityBySlug(ctx, slug)
}

func (f *flakyVenueAPI) GetSlotsByDate(ctx context.Context, slug, date string) ([]venue.Service, error) {
	f.mu.Lock()
	hold := f.holdFirst
	f.holdFirst = false
	f.mu.Unlock()

	if hold {
		close(f.held)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.failSlots {
		return nil, errBackendDown
	}
	return f.BookVenueApiClientMock.GetSlotsByDate(ctx, slug, date)
}

type fixture struct {
	mock     *bookvenue.BookVenueApiClientMock
	venueApi *flakyVenueAPI
	dao      *redis.RedisVenueDAO
	tracker  *availability.Tracker
	venues   *VenueService
	bookings *BookingService
	builder  *draft.Builder
	clock    availability.FixedClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mock, err := bookvenue.NewBookVenueApiClientMock(normalize.DefaultOptions())
	require.NoError(t, err)

	clock := availability.FixedClock(time.Date(2030, 3, 10, 9, 30, 0, 0, time.UTC))
	flaky := &flakyVenueAPI{BookVenueApiClientMock: mock, held: make(chan struct{})}
	dao := redis.NewRedisVenueDAO(db.NewMockRedisClient(context.Background()))
	tracker := availability.NewTracker()
	venues := NewVenueService(dao, flaky, mock, availability.NewResolver(clock), tracker)
	builder := draft.NewBuilder(draft.PriceAveraged, draft.DurationFixed60)
	builder.NewID = func() string { return "draft-1" }

	return &fixture{
		mock:     mock,
		venueApi: flaky,
		dao:      dao,
		tracker:  tracker,
		venues:   venues,
		bookings: NewBookingService(mock, venues, builder, clock),
		builder:  builder,
		clock:    clock,
	}
}

func (f *fixture) checkout(gateway payment.Gateway) *CheckoutService {
	return NewCheckoutService(f.mock, f.mock, gateway, f.bookings, f.builder, "INR")
}
