package di

import (
	"context"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"bookvenue/api"
	"bookvenue/api/bookvenue"
	"bookvenue/availability"
	"bookvenue/config"
	"bookvenue/dao/redis"
	"bookvenue/db"
	"bookvenue/draft"
	"bookvenue/normalize"
	"bookvenue/payment"
	"bookvenue/server"
	"bookvenue/server/handlers"
	services "bookvenue/service"
)

// Container holds all application dependencies.
type Container struct {
	Config                  config.App
	RedisClient             db.RedisClient
	RedisVenueDao           *redis.RedisVenueDAO
	BookVenueAPI            bookvenue.BookVenueAPI
	CatalogAPI              bookvenue.VenueAPI
	PaymentGateway          payment.Gateway
	VenueService            *services.VenueService
	BookingService          *services.BookingService
	CheckoutService         *services.CheckoutService
	ProfileService          *services.ProfileService
	CatalogRefresherService *services.CatalogRefresherService
	VenueHandler            *handlers.VenueHandler
	BookingHandler          *handlers.BookingHandler
	ProfileHandler          *handlers.ProfileHandler
	MuxRouter               *mux.Router
	Router                  *server.Router
	BookVenueHttpServer     *server.BookVenueHttpServer
}

// NewContainer initializes and wires up all dependencies. Outside prod the backend, the payment
// gateway and Redis are replaced by in-process fakes.
func NewContainer(cfg config.App) (*Container, error) {
	log.Printf("initializing container - env: %s", cfg.Env)
	ctx := context.Background()
	prod := cfg.Env == config.ENV_PROD

	prices, err := draft.ParseSlotPricePolicy(cfg.SlotPricePolicy)
	if err != nil {
		return nil, err
	}
	durations, err := draft.ParseDurationPolicy(cfg.BookingDurationPolicy)
	if err != nil {
		return nil, err
	}

	// Initialize Redis client
	var redisClient db.RedisClient
	if prod {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		geoClient, err := db.NewGeoRedisClient(ctx, redisInternalClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		redisClient = geoClient
	} else {
		log.Printf("Using in-memory redis")
		redisClient = db.NewMockRedisClient(ctx)
	}

	redisVenueDao := redis.NewRedisVenueDAO(redisClient)

	opts := normalize.Options{AssetBaseURL: cfg.AssetBaseURL, FallbackImage: config.FALLBACK_IMAGE_URL}

	// Initialize the booking backend
	var bookVenueApi bookvenue.BookVenueAPI
	var catalogApi bookvenue.VenueAPI
	if prod {
		log.Printf("Using prod bookvenue api at %s", cfg.APIBaseURL)
		bookVenueApi, catalogApi = newBackendClients(cfg, opts)
	} else {
		log.Printf("Using mock bookvenue api")
		mock, err := bookvenue.NewBookVenueApiClientMock(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to load bookvenue fixtures: %w", err)
		}
		bookVenueApi = mock
		catalogApi = mock
	}

	// Initialize the payment gateway
	var gateway payment.Gateway
	if prod && cfg.OmisePublicKey != "" && cfg.OmiseSecretKey != "" {
		log.Printf("Using omise payment gateway")
		omiseClient, err := payment.NewOmiseClient(cfg.OmisePublicKey, cfg.OmiseSecretKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create omise client: %w", err)
		}
		gateway = payment.NewOmiseGateway(payment.OmiseCharger{Client: omiseClient}, cfg.OmiseSecretKey)
	} else {
		log.Printf("Using stub payment gateway")
		stub := payment.NewStubGateway()
		stub.SecretKey = []byte(cfg.OmiseSecretKey)
		gateway = stub
	}

	clock := availability.SystemClock{}
	builder := draft.NewBuilder(prices, durations)

	// Initialize service layer
	venueService := services.NewVenueService(
		redisVenueDao, bookVenueApi, bookVenueApi,
		availability.NewResolver(clock), availability.NewTracker())
	bookingService := services.NewBookingService(bookVenueApi, venueService, builder, clock)
	checkoutService := services.NewCheckoutService(bookVenueApi, bookVenueApi, gateway, bookingService, builder, cfg.PaymentCurrency)
	profileService := services.NewProfileService(bookVenueApi)
	catalogRefresherService := services.NewCatalogRefresherService(redisVenueDao, catalogApi)

	// Initialize handlers
	venueHandler := handlers.NewVenueHandler(venueService, clock)
	bookingHandler := handlers.NewBookingHandler(bookingService, checkoutService)
	profileHandler := handlers.NewProfileHandler(profileService)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(venueHandler, bookingHandler, profileHandler, muxRouter)
	httpServer := server.NewBookVenueHttpServer(router, muxRouter, cfg.ServerAddr)

	return &Container{
		Config:                  cfg,
		RedisClient:             redisClient,
		RedisVenueDao:           redisVenueDao,
		BookVenueAPI:            bookVenueApi,
		CatalogAPI:              catalogApi,
		PaymentGateway:          gateway,
		VenueService:            venueService,
		BookingService:          bookingService,
		CheckoutService:         checkoutService,
		ProfileService:          profileService,
		CatalogRefresherService: catalogRefresherService,
		VenueHandler:            venueHandler,
		BookingHandler:          bookingHandler,
		ProfileHandler:          profileHandler,
		MuxRouter:               muxRouter,
		Router:                  router,
		BookVenueHttpServer:     httpServer,
	}, nil
}

// CatalogRefreshInterval is the configured period of the catalog refresher.
func (c *Container) CatalogRefreshInterval() time.Duration {
	minutes := c.Config.CatalogRefreshMinutes
	if minutes <= 0 {
		minutes = config.VENUES_CATALOG_REFRESHER_SCHEDULE_MINUTES
	}
	return time.Duration(minutes) * time.Minute
}

// newBackendClients returns the client used while serving requests, which only forwards the
// caller's token, and the catalog refresher's client, which uses the service token.
func newBackendClients(cfg config.App, opts normalize.Options) (*bookvenue.BookVenueApiClient, *bookvenue.BookVenueApiClient) {
	requestClient := api.NewHTTPClientWithTimeout(cfg.APIBaseURL, cfg.HTTPTimeout).
		WithCredentials(api.ContextCredentials{})

	catalogClient := api.NewHTTPClientWithTimeout(cfg.APIBaseURL, cfg.HTTPTimeout)
	if creds := serviceCredentials(cfg); creds != nil {
		catalogClient.WithCredentials(creds)
	}
	return bookvenue.NewBookVenueApiClient(requestClient, opts), bookvenue.NewBookVenueApiClient(catalogClient, opts)
}

// serviceCredentials authenticates the catalog refresher, which runs outside any request.
func serviceCredentials(cfg config.App) api.CredentialProvider {
	if cfg.TokenFile != "" {
		return api.NewFileCredentials(config.ResolvePath(cfg.TokenFile))
	}
	if cfg.APIToken != "" {
		return api.NewStaticCredentials(cfg.APIToken)
	}
	return nil
}
