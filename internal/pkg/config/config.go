package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Cookie    CookieConfig
	Log       LogConfig
	JWT       JWTConfig
	AuthCache AuthCacheConfig
	Queue     QueueConfig
	Worker    WorkerConfig
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
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

// Verified tokens are cached so the auth middleware skips signature checks on hot paths.
type AuthCacheConfig struct {
	Size int           `envconfig:"AUTH_CACHE_SIZE" default:"1000"`
	TTL  time.Duration `envconfig:"AUTH_CACHE_TTL" default:"5m"`
}

type QueueConfig struct {
	// postgres | memory
	Store              string        `envconfig:"QUEUE_STORE" default:"postgres"`
	MaxAttempts        int           `envconfig:"QUEUE_MAX_ATTEMPTS" default:"3"`
	RetentionDays      int           `envconfig:"QUEUE_RETENTION_DAYS" default:"30"`
	CleanupSchedule    string        `envconfig:"QUEUE_CLEANUP_SCHEDULE" default:"@daily"`
	FailFastNotFound   bool          `envconfig:"QUEUE_FAIL_FAST_NOT_FOUND" default:"false"`
	LeaseGrace         time.Duration `envconfig:"QUEUE_LEASE_GRACE" default:"30s"`
	BookkeepingTimeout time.Duration `envconfig:"QUEUE_BOOKKEEPING_TIMEOUT" default:"10s"`
}

type WorkerConfig struct {
	Count           int           `envconfig:"WORKER_COUNT" default:"2"`
	PollInterval    time.Duration `envconfig:"WORKER_POLL_INTERVAL" default:"5s"`
	BatchSize       int           `envconfig:"WORKER_BATCH_SIZE" default:"5"`
	JobTimeout      time.Duration `envconfig:"WORKER_JOB_TIMEOUT" default:"30s"`
	ReaperInterval  time.Duration `envconfig:"WORKER_REAPER_INTERVAL" default:"1m"`
	ShutdownTimeout time.Duration `envconfig:"WORKER_SHUTDOWN_TIMEOUT" default:"45s"`
}

// Lease length for a claimed job: the attempt's budget plus slack for bookkeeping.
func (c Config) LeaseDuration() time.Duration {
	return c.Worker.JobTimeout + c.Queue.LeaseGrace
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Queue.Store != "postgres" && cfg.Queue.Store != "memory" {
		return Config{}, fmt.Errorf("unsupported QUEUE_STORE %q", cfg.Queue.Store)
	}
	if cfg.Worker.BatchSize < 1 || cfg.Worker.Count < 0 {
		return Config{}, fmt.Errorf("invalid worker settings: count=%d batch=%d", cfg.Worker.Count, cfg.Worker.BatchSize)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
			MaxConns: 10,
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
			AllowCredentials: true,
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: time.Hour,
		},
		AuthCache: AuthCacheConfig{
			Size: 100,
			TTL:  time.Minute,
		},
		Queue: QueueConfig{
			Store:              "memory",
			MaxAttempts:        3,
			RetentionDays:      30,
			CleanupSchedule:    "@daily",
			LeaseGrace:         time.Second,
			BookkeepingTimeout: 5 * time.Second,
		},
		Worker: WorkerConfig{
			Count:           1,
			PollInterval:    50 * time.Millisecond,
			BatchSize:       5,
			JobTimeout:      2 * time.Second,
			ReaperInterval:  time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
	}
}
