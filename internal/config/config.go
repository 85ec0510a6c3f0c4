package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Knowledge base drivers
const (
	KnowledgeBaseNone     = "none"
	KnowledgeBaseRedis    = "redis"
	KnowledgeBasePostgres = "postgres"
	KnowledgeBaseSQLite   = "sqlite"
)

// Weather providers
const (
	WeatherSimulated = "simulated"
	WeatherHTTP      = "http"
)

// Geocoder providers
const (
	GeocoderHash   = "hash"
	GeocoderGoogle = "google"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	SQLite        SQLiteConfig
	Redis         RedisConfig
	KnowledgeBase KnowledgeBaseConfig
	Weather       WeatherConfig
	Geocoder      GeocoderConfig
	Analyst       AnalystConfig
	Log           LogConfig
	Worker        WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type SQLiteConfig struct {
	Path string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type KnowledgeBaseConfig struct {
	Driver string
	TTL    time.Duration
}

type WeatherConfig struct {
	Provider         string
	BaseURL          string
	Country          string
	Timeout          time.Duration
	MaxRetries       int
	RefreshInterval  time.Duration
	BreakerTimeout   time.Duration
	BreakerFailures  uint32
	BreakerHalfOpens uint32
}

type GeocoderConfig struct {
	Provider string
	APIKey   string
}

type AnalystConfig struct {
	// Seed 0 - недетерминированный генератор
	Seed uint64
}

type LogConfig struct {
	Level  string
	Format string
}

type WorkerConfig struct {
	Enabled          bool
	ConsumerGroup    string
	MaxRetries       int
	ShutdownTimeout  time.Duration
	ReclaimIdle      time.Duration
	MonitorEnabled   bool
	MonitorInterval  time.Duration
	MonitorLocations []string
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("API_CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		SQLite: SQLiteConfig{
			Path: v.GetString("SQLITE_PATH"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		KnowledgeBase: KnowledgeBaseConfig{
			Driver: strings.ToLower(v.GetString("KB_DRIVER")),
			TTL:    time.Duration(v.GetInt("KB_TTL")) * time.Second,
		},
		Weather: WeatherConfig{
			Provider:         strings.ToLower(v.GetString("WEATHER_PROVIDER")),
			BaseURL:          strings.TrimRight(v.GetString("WEATHER_BASE_URL"), "/"),
			Country:          v.GetString("WEATHER_COUNTRY"),
			Timeout:          time.Duration(v.GetInt("WEATHER_TIMEOUT")) * time.Millisecond,
			MaxRetries:       v.GetInt("WEATHER_MAX_RETRIES"),
			RefreshInterval:  time.Duration(v.GetInt("WEATHER_REFRESH_INTERVAL")) * time.Second,
			BreakerTimeout:   time.Duration(v.GetInt("WEATHER_BREAKER_TIMEOUT")) * time.Second,
			BreakerFailures:  v.GetUint32("WEATHER_BREAKER_FAILURES"),
			BreakerHalfOpens: v.GetUint32("WEATHER_BREAKER_HALF_OPEN_REQUESTS"),
		},
		Geocoder: GeocoderConfig{
			Provider: strings.ToLower(v.GetString("GEOCODER_PROVIDER")),
			APIKey:   v.GetString("GEOCODER_API_KEY"),
		},
		Analyst: AnalystConfig{
			Seed: v.GetUint64("ANALYST_SEED"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Worker: WorkerConfig{
			Enabled:          v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:    v.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:       v.GetInt("WORKER_MAX_RETRIES"),
			ShutdownTimeout:  time.Duration(v.GetInt("WORKER_SHUTDOWN_TIMEOUT")) * time.Second,
			ReclaimIdle:      time.Duration(v.GetInt("WORKER_RECLAIM_IDLE")) * time.Second,
			MonitorEnabled:   v.GetBool("MONITOR_ENABLED"),
			MonitorInterval:  time.Duration(v.GetInt("MONITOR_INTERVAL")) * time.Second,
			MonitorLocations: parseList(v.GetString("MONITOR_LOCATIONS")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_CORS_ORIGINS", "*")
	v.SetDefault("API_ENV", "development")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "terrain")
	v.SetDefault("DB_NAME", "terrain")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("SQLITE_PATH", "terrain.db")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("KB_DRIVER", KnowledgeBaseNone)
	v.SetDefault("KB_TTL", 86400)

	v.SetDefault("WEATHER_PROVIDER", WeatherSimulated)
	v.SetDefault("WEATHER_BASE_URL", "http://localhost:8081")
	v.SetDefault("WEATHER_TIMEOUT", 5000)
	v.SetDefault("WEATHER_MAX_RETRIES", 3)
	v.SetDefault("WEATHER_REFRESH_INTERVAL", 900)
	v.SetDefault("WEATHER_BREAKER_TIMEOUT", 120)
	v.SetDefault("WEATHER_BREAKER_FAILURES", 5)
	v.SetDefault("WEATHER_BREAKER_HALF_OPEN_REQUESTS", 1)

	v.SetDefault("GEOCODER_PROVIDER", GeocoderHash)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_ENABLED", true)
	v.SetDefault("WORKER_CONSUMER_GROUP", "terrain-analyst-workers")
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("WORKER_SHUTDOWN_TIMEOUT", 30)
	v.SetDefault("WORKER_RECLAIM_IDLE", 60)
	v.SetDefault("MONITOR_ENABLED", false)
	v.SetDefault("MONITOR_INTERVAL", 900)
}

// Validate проверяет значения-перечисления
func (c *Config) Validate() error {
	switch c.KnowledgeBase.Driver {
	case KnowledgeBaseNone, KnowledgeBaseRedis, KnowledgeBasePostgres, KnowledgeBaseSQLite:
	default:
		return fmt.Errorf("unknown KB_DRIVER %q", c.KnowledgeBase.Driver)
	}
	switch c.Weather.Provider {
	case WeatherSimulated, WeatherHTTP:
	default:
		return fmt.Errorf("unknown WEATHER_PROVIDER %q", c.Weather.Provider)
	}
	switch c.Geocoder.Provider {
	case GeocoderHash:
	case GeocoderGoogle:
		if c.Geocoder.APIKey == "" {
			return fmt.Errorf("GEOCODER_API_KEY is required for the google geocoder")
		}
	default:
		return fmt.Errorf("unknown GEOCODER_PROVIDER %q", c.Geocoder.Provider)
	}
	return nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
