package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"bookvenue/db"
	"bookvenue/models/venue"
)

const VENUES_GEO_KEY_V1 = "bookvenue_venues_geo_v1"
const VENUES_GEO_PLACE_MEMBER_FORMAT_V1 = "bookvenue_venue_v1:%s"

// VENUES_CATALOG_KEY_V1 holds the whole facility list in list shape.
const VENUES_CATALOG_KEY_V1 = "bookvenue_catalog_v1"

// ErrCacheMiss is returned when nothing is cached under the requested key.
var ErrCacheMiss = errors.New("not cached")

// RedisVenueDAO caches the venue catalog and a geo index of venues in Redis.
type RedisVenueDAO struct {
	client db.RedisClient
}

// NewRedisVenueDAO initializes a RedisVenueDAO with the Redis client.
func NewRedisVenueDAO(client db.RedisClient) *RedisVenueDAO {
	return &RedisVenueDAO{client: client}
}

// UpsertVenue stores the venue's JSON under its slug and indexes it by coordinates.
func (dao *RedisVenueDAO) UpsertVenue(v venue.Venue) error {
	if v.Slug == "" {
		return fmt.Errorf("venue %q has no slug", v.ID)
	}
	ctx := dao.client.GetContext()
	memberKey := fmt.Sprintf(VENUES_GEO_PLACE_MEMBER_FORMAT_V1, v.Slug)
	return dao.client.AddLocationWithJSON(ctx, VENUES_GEO_KEY_V1, memberKey, v.Coordinates.Latitude, v.Coordinates.Longitude, v)
}

// GetVenue returns the cached venue for slug, or ErrCacheMiss.
func (dao *RedisVenueDAO) GetVenue(slug string) (*venue.Venue, error) {
	str, err := dao.client.Get(fmt.Sprintf(VENUES_GEO_PLACE_MEMBER_FORMAT_V1, slug))
	if errors.Is(err, db.ErrNil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue from redis: %w", err)
	}
	var v venue.Venue
	if err := json.Unmarshal([]byte(str), &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venue JSON: %w", err)
	}
	return &v, nil
}

// GetNearbyVenues retrieves venues within radius km, nearest first.
func (dao *RedisVenueDAO) GetNearbyVenues(lat, lon float64, radius float64) ([]venue.Venue, error) {
	venuesJSON, err := dao.client.GetLocationsWithinRadius(VENUES_GEO_KEY_V1, lat, lon, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisVenueDAO] failed to get venues: %w", err)
	}

	venues := make([]venue.Venue, len(venuesJSON))
	for i, venueJSON := range venuesJSON {
		if err := json.Unmarshal([]byte(venueJSON), &venues[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal venue JSON: %w", err)
		}
	}
	return venues, nil
}

// SetCatalog caches the facility list exactly as the list endpoint returned it.
func (dao *RedisVenueDAO) SetCatalog(venues []venue.Venue) error {
	data, err := json.Marshal(venues)
	if err != nil {
		return fmt.Errorf("failed to marshal venue catalog: %w", err)
	}
	if err := dao.client.Set(VENUES_CATALOG_KEY_V1, string(data)); err != nil {
		return fmt.Errorf("failed to set venue catalog in redis: %w", err)
	}
	return nil
}

// GetCatalog returns the cached facility list, or ErrCacheMiss.
func (dao *RedisVenueDAO) GetCatalog() ([]venue.Venue, error) {
	str, err := dao.client.Get(VENUES_CATALOG_KEY_V1)
	if errors.Is(err, db.ErrNil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue catalog from redis: %w", err)
	}
	var venues []venue.Venue
	if err := json.Unmarshal([]byte(str), &venues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venue catalog JSON: %w", err)
	}
	return venues, nil
}

// ListAllVenueSlugs returns the slugs of every venue in the geo index.
func (dao *RedisVenueDAO) ListAllVenueSlugs() ([]string, error) {
	pattern := fmt.Sprintf(VENUES_GEO_PLACE_MEMBER_FORMAT_V1, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list venue keys: %w", err)
	}
	prefix := fmt.Sprintf(VENUES_GEO_PLACE_MEMBER_FORMAT_V1, "")
	slugs := make([]string, 0, len(keys))
	for _, k := range keys {
		slugs = append(slugs, strings.TrimPrefix(k, prefix))
	}
	return slugs, nil
}

// DeleteVenue drops a venue from the geo index and its JSON.
func (dao *RedisVenueDAO) DeleteVenue(slug string) error {
	memberKey := fmt.Sprintf(VENUES_GEO_PLACE_MEMBER_FORMAT_V1, slug)
	if err := dao.client.RemoveLocation(VENUES_GEO_KEY_V1, memberKey); err != nil {
		return fmt.Errorf("failed to remove venue %s from geo index: %w", slug, err)
	}
	if err := dao.client.Del(memberKey); err != nil {
		return fmt.Errorf("failed to delete venue key %s: %w", memberKey, err)
	}
	log.Printf("[RedisVenueDAO] Deleted venue cache for %s", slug)
	return nil
}
