package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config represents the application configuration structure.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8000" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"30s" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"1m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"15s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxBodyBytes limits the size of scan request bodies
		MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" env-default:"65536" yaml:"maxBodyBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigins lists CORS origins; "*" allows any origin
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-default:"*" env-separator:"," yaml:"allowedOrigins"`
	} `yaml:"http"`

	// Model points to the scoring artifacts
	Model struct {
		// TokenizerPath is the Keras tokenizer JSON export
		TokenizerPath string `env:"MODEL_TOKENIZER_PATH" env-default:"data/processed/tokenizer.json" yaml:"tokenizerPath"`
		// ScalerPath is the scaler JSON export
		ScalerPath string `env:"MODEL_SCALER_PATH" env-default:"data/processed/scaler.json" yaml:"scalerPath"`
		// ServingURL is the TensorFlow Serving REST endpoint
		ServingURL string `env:"MODEL_SERVING_URL" env-default:"http://localhost:8501" yaml:"servingUrl"`
		// Name is the served model name
		Name string `env:"MODEL_NAME" env-default:"phishnet" yaml:"name"`
		// Timeout bounds a single call to the model server
		Timeout time.Duration `env:"MODEL_TIMEOUT" env-default:"5s" yaml:"timeout"`
		// SequenceLength is the padded token sequence length the model was trained with
		SequenceLength int `env:"MODEL_SEQUENCE_LENGTH" env-default:"150" yaml:"sequenceLength"`
		// BreakerFailures opens the circuit after this many consecutive failures
		BreakerFailures uint32 `env:"MODEL_BREAKER_FAILURES" env-default:"5" yaml:"breakerFailures"`
		// BreakerTimeout is how long an open circuit stays open
		BreakerTimeout time.Duration `env:"MODEL_BREAKER_TIMEOUT" env-default:"30s" yaml:"breakerTimeout"`
	} `yaml:"model"`

	// Cache configures the optional verdict cache
	Cache struct {
		Enabled bool `env:"CACHE_ENABLED" env-default:"false" yaml:"enabled"`
		// URL is a redis:// connection string
		URL string `env:"CACHE_URL" env-default:"redis://localhost:6379/0" yaml:"url"`
		// TTL is how long a verdict stays cached
		TTL         time.Duration `env:"CACHE_TTL" env-default:"1h" yaml:"ttl"`
		PoolSize    int           `env:"CACHE_POOL_SIZE" env-default:"0" yaml:"poolSize"`
		DialTimeout time.Duration `env:"CACHE_DIAL_TIMEOUT" env-default:"2s" yaml:"dialTimeout"`
		ReadTimeout time.Duration `env:"CACHE_READ_TIMEOUT" env-default:"500ms" yaml:"readTimeout"`
	} `yaml:"cache"`

	// History configures the optional scan history database
	History struct {
		Enabled bool `env:"HISTORY_ENABLED" env-default:"false" yaml:"enabled"`
		// Username for database authentication
		Username string `env:"HISTORY_DB_USERNAME" env-default:"phishnet" yaml:"username"`
		// Password for database authentication
		Password string `env:"HISTORY_DB_PASSWORD" env-default:"phishnet" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"HISTORY_DB_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"HISTORY_DB_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"HISTORY_DB_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"HISTORY_DB_NAME" env-default:"phishnet" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"HISTORY_DB_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"HISTORY_DB_MAX_IDLE_CONNECTIONS" env-default:"2" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"HISTORY_DB_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"HISTORY_DB_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
		// DefaultPageSize is used when a history request has no limit
		DefaultPageSize uint `env:"HISTORY_DEFAULT_PAGE_SIZE" env-default:"20" yaml:"defaultPageSize"`
		// MaxPageSize caps the limit of a history request
		MaxPageSize uint `env:"HISTORY_MAX_PAGE_SIZE" env-default:"100" yaml:"maxPageSize"`
	} `yaml:"history"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load reads an optional dotenv file into the process environment and then
// the yaml config file at configPath. Environment variables override yaml
// values. An empty envPath or a missing env file is ignored.
func Load(configPath, envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load env file: %w", err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
