package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type App struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	// Storage selects the repository backend: postgres or memory.
	Storage         string        `envconfig:"STORAGE" default:"postgres"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	// DB
	DBHost         string `envconfig:"DB_HOST" default:"localhost"`
	DBPort         string `envconfig:"DB_PORT" default:"5432"`
	DBUser         string `envconfig:"DB_USER" default:"postgres"`
	DBPassword     string `envconfig:"DB_PASSWORD"`
	DBName         string `envconfig:"DB_NAME" default:"parking_booking"`
	DBSSLMode      string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBRetries      int    `envconfig:"DB_CONNECT_RETRIES" default:"10"`

	// Redis
	RedisHost    string        `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort    string        `envconfig:"REDIS_PORT" default:"6379"`
	SlotCacheTTL time.Duration `envconfig:"SLOT_CACHE_TTL" default:"5m"`

	// RabbitMQ; events are dropped when RABBIT_URL is empty
	RabbitURL      string `envconfig:"RABBIT_URL"`
	EventsExchange string `envconfig:"EVENTS_EXCHANGE" default:"parking.events"`

	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`

	// Booking rules
	RequireApproval    bool          `envconfig:"REQUIRE_APPROVAL" default:"false"`
	MinBookingDuration time.Duration `envconfig:"MIN_BOOKING_DURATION" default:"15m"`
	AllowPastStart     bool          `envconfig:"ALLOW_PAST_START" default:"false"`
	Currency           string        `envconfig:"CURRENCY" default:"usd"`

	// Tracing; disabled when the endpoint is empty
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `envconfig:"OTEL_SERVICE_NAME" default:"parking-booking"`
}

func (c App) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file and then the process environment.
func Load() (App, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return App{}, fmt.Errorf("load .env: %w", err)
	}

	var c App
	if err := envconfig.Process("", &c); err != nil {
		return App{}, err
	}

	if c.Storage != StoragePostgres && c.Storage != StorageMemory {
		return App{}, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage)
	}

	return c, nil
}
