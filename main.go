package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"bookvenue/config"
	"bookvenue/di"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[MAIN] No .env file loaded:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[MAIN] Invalid configuration: %v", err)
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		log.Fatalf("[MAIN] Failed to initialize container: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Println("[MAIN] Refreshing venue catalog")
	if err := container.CatalogRefresherService.RefreshCatalog(ctx); err != nil {
		log.Printf("[MAIN] Initial catalog refresh failed: %v", err)
	}
	container.CatalogRefresherService.StartPeriodicJob(ctx, container.CatalogRefreshInterval())

	container.BookVenueHttpServer.Start()
}
