package services

import (
	"context"
	"log"
	"time"

	"bookvenue/api/bookvenue"
	"bookvenue/dao/redis"
)

// CatalogRefresherService periodically refreshes the cached venue catalog and geo index.
type CatalogRefresherService struct {
	venueDao *redis.RedisVenueDAO
	venueApi bookvenue.VenueAPI
}

// NewCatalogRefresherService constructs a new refresher with dependencies.
func NewCatalogRefresherService(
	venueDao *redis.RedisVenueDAO,
	venueApi bookvenue.VenueAPI,
) *CatalogRefresherService {
	return &CatalogRefresherService{
		venueDao: venueDao,
		venueApi: venueApi,
	}
}

// StartPeriodicJob launches the background loop at the given interval. It stops when ctx is done.
func (cr *CatalogRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go cr.startPeriodicJob(ctx, interval)
}

func (cr *CatalogRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[CatalogRefresherService] Stopping periodic catalog refresher job.")
			return
		case <-ticker.C:
			log.Println("[CatalogRefresherService] Running periodic catalog refresher job.")
			if err := cr.RefreshCatalog(ctx); err != nil {
				log.Printf("[CatalogRefresherService] RefreshCatalog returned error: %v", err)
			} else {
				log.Println("[CatalogRefresherService] RefreshCatalog completed successfully.")
			}
		}
	}
}

// RefreshCatalog replaces the cached catalog with the backend's facility list, indexes every
// venue and drops venues the backend no longer lists.
func (cr *CatalogRefresherService) RefreshCatalog(ctx context.Context) error {
	venues, err := cr.venueApi.ListFacilities(ctx)
	if err != nil {
		return err
	}
	log.Printf("[CatalogRefresherService] Fetched %d venues", len(venues))

	if err := cr.venueDao.SetCatalog(venues); err != nil {
		return err
	}

	listed := make(map[string]bool, len(venues))
	for _, v := range venues {
		if v.Slug == "" {
			continue
		}
		listed[v.Slug] = true
		if err := cr.venueDao.UpsertVenue(v); err != nil {
			log.Printf("[CatalogRefresherService] Failed to upsert venue %s: %v", v.Slug, err)
		}
	}

	cached, err := cr.venueDao.ListAllVenueSlugs()
	if err != nil {
		log.Printf("[CatalogRefresherService] Failed to list cached venues: %v", err)
		return nil
	}
	for _, slug := range cached {
		if listed[slug] {
			continue
		}
		if err := cr.venueDao.DeleteVenue(slug); err != nil {
			log.Printf("[CatalogRefresherService] Failed to drop stale venue %s: %v", slug, err)
		}
	}
	return nil
}
