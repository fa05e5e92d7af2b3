package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Backend defaults
const BOOKVENUE_API_BASE_URL = "https://admin.bookvenue.app/api"
const BOOKVENUE_ASSET_BASE_URL = "https://admin.bookvenue.app/"
const BOOKVENUE_HTTP_TIMEOUT = 10 * time.Second

// Stock photo used whenever the backend gives a facility no usable image.
const FALLBACK_IMAGE_URL = "https://images.pexels.com/photos/1263426/pexels-photo-1263426.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Catalog refresher config
const VENUES_CATALOG_REFRESHER_SCHEDULE_MINUTES = 60

// Payment
const PAYMENT_DEFAULT_CURRENCY = "INR"

// Draft policies
const BOOKING_DURATION_POLICY_FIXED = "fixed"
const BOOKING_DURATION_POLICY_COURT = "court"
const SLOT_PRICE_POLICY_AVERAGED = "averaged"
const SLOT_PRICE_POLICY_ITEMIZED = "itemized"

// Environments
const ENV_PROD = "prod"
const ENV_DEV = "dev"

// App is the runtime configuration read from the environment.
type App struct {
	Env string `envconfig:"ENV" default:"prod"`

	APIBaseURL   string        `envconfig:"API_BASE_URL" default:"https://admin.bookvenue.app/api"`
	AssetBaseURL string        `envconfig:"ASSET_BASE_URL" default:"https://admin.bookvenue.app/"`
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`

	// Service-level bearer token, used when a request does not carry its own.
	APIToken  string `envconfig:"API_TOKEN"`
	TokenFile string `envconfig:"TOKEN_FILE"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"redis:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	CatalogRefreshMinutes int `envconfig:"CATALOG_REFRESH_MINUTES" default:"60"`

	ServerAddr string `envconfig:"SERVER_ADDR" default:":8080"`

	PaymentCurrency string `envconfig:"PAYMENT_CURRENCY" default:"INR"`
	OmisePublicKey  string `envconfig:"OMISE_PUBLIC_KEY"`
	OmiseSecretKey  string `envconfig:"OMISE_SECRET_KEY"`

	BookingDurationPolicy string `envconfig:"BOOKING_DURATION_POLICY" default:"fixed"`
	SlotPricePolicy       string `envconfig:"SLOT_PRICE_POLICY" default:"averaged"`
}

// Load reads App from the process environment.
func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}

// Default returns the configuration used when nothing is set in the environment.
func Default() App {
	return App{
		Env:                   ENV_PROD,
		APIBaseURL:            BOOKVENUE_API_BASE_URL,
		AssetBaseURL:          BOOKVENUE_ASSET_BASE_URL,
		HTTPTimeout:           BOOKVENUE_HTTP_TIMEOUT,
		RedisAddr:             REDIS_DB_ADDRESS,
		RedisPassword:         REDIS_DB_PASSWORD,
		RedisDB:               REDIS_DB,
		CatalogRefreshMinutes: VENUES_CATALOG_REFRESHER_SCHEDULE_MINUTES,
		ServerAddr:            ":8080",
		PaymentCurrency:       PAYMENT_DEFAULT_CURRENCY,
		BookingDurationPolicy: BOOKING_DURATION_POLICY_FIXED,
		SlotPricePolicy:       SLOT_PRICE_POLICY_AVERAGED,
	}
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

// ResolvePath makes a relative path absolute against BaseDir.
func ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(BaseDir(), path)
}
