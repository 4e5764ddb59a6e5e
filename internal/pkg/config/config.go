package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (tax rate, TTL, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	Auth    AuthConfig
	Payment PaymentConfig
	Booking BookingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type AuthConfig struct {
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
}

type PaymentConfig struct {
	GatewayBaseURL string        `envconfig:"PAYMENT_GATEWAY_BASE_URL" required:"true"`
	GatewayKeyID   string        `envconfig:"PAYMENT_GATEWAY_KEY_ID" required:"true"`
	GatewaySecret  string        `envconfig:"PAYMENT_GATEWAY_SECRET" required:"true"`
	GatewayTimeout time.Duration `envconfig:"PAYMENT_GATEWAY_TIMEOUT" default:"10s"`
	Currency       string        `envconfig:"PAYMENT_CURRENCY" default:"INR"`
	// Attempt budget for intent creation per actor per window.
	IntentAttemptLimit  int           `envconfig:"PAYMENT_INTENT_ATTEMPT_LIMIT" default:"10"`
	IntentAttemptWindow time.Duration `envconfig:"PAYMENT_INTENT_ATTEMPT_WINDOW" default:"10m"`
}

type BookingConfig struct {
	// Tax rate in basis points; 1800 = 18%.
	TaxRateBasisPoints int           `envconfig:"BOOKING_TAX_RATE_BP" default:"1800"`
	PendingTTL         time.Duration `envconfig:"BOOKING_PENDING_TTL" default:"30m"`
	SweepInterval      time.Duration `envconfig:"BOOKING_SWEEP_INTERVAL" default:"5m"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	// Best effort; real environments inject variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Auth: AuthConfig{
			JWTSecret: "test-secret",
		},
		Payment: PaymentConfig{
			GatewayBaseURL:      "http://localhost:18080",
			GatewayKeyID:        "rzp_test_key",
			GatewaySecret:       "rzp_test_secret",
			GatewayTimeout:      2 * time.Second,
			Currency:            "INR",
			IntentAttemptLimit:  10,
			IntentAttemptWindow: 10 * time.Minute,
		},
		Booking: BookingConfig{
			TaxRateBasisPoints: 1800,
			PendingTTL:         30 * time.Minute,
			SweepInterval:      5 * time.Minute,
		},
	}
}
