package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/monastery360/service-travel/pkg/database"
	"github.com/spf13/viper"
)

const envPrefix = "TRAVEL"

// KafkaConfig holds broker settings for booking events.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether any broker is configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// UpstreamConfig points at an outbound HTTP dependency.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// GeminiConfig holds generative-language API settings.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// ServiceConfig holds all configuration for the travel service.
type ServiceConfig struct {
	Port           string
	AppEnv         string
	LogLevel       string
	LogFile        string
	DBConfig       database.PostgresConfig
	KafkaConfig    KafkaConfig
	RedisURL       string
	Geocoding      UpstreamConfig
	Routing        UpstreamConfig
	Gemini         GeminiConfig
	FestivalsSheet string
	ChatRateLimit  string
	SessionTTL     time.Duration
	SweepInterval  time.Duration
	CORSOrigins    []string
	AdminToken     string
}

// IsDevelopment reports whether the service runs in development mode.
func (c *ServiceConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}

var defaults = map[string]any{
	"SERVICE_PORT":       "8080",
	"APP_ENV":            "development",
	"LOG_LEVEL":          "info",
	"DB_PORT":            "5432",
	"DB_USER":            "postgres",
	"DB_SSLMODE":         "disable",
	"KAFKA_TOPIC":        "travel.bookings",
	"GEOCODING_URL":      "https://nominatim.openstreetmap.org",
	"GEOCODING_TIMEOUT":  "5s",
	"ROUTING_URL":        "https://router.project-osrm.org",
	"ROUTING_TIMEOUT":    "10s",
	"GEMINI_MODEL":       "gemini-2.5-flash",
	"FESTIVALS_XLSX":     "data/sikkim_festivals_full.xlsx",
	"CHAT_RATE_LIMIT":    "20-M",
	"SESSION_TTL":        "2h",
	"SESSION_SWEEP":      "5m",
	"CORS_ALLOW_ORIGINS": "",
}

// Load reads configuration from environment variables, optionally seeded by a .env file.
// Each key is read as TRAVEL_<KEY> first, then <KEY>.
func Load() (*ServiceConfig, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*ServiceConfig, error) {
	keys := []string{
		"DB_HOST", "DB_PASSWORD", "DB_NAME", "KAFKA_BROKERS", "REDIS_URL", "LOG_FILE", "GEMINI_API_KEY", "ADMIN_TOKEN",
	}
	for k := range defaults {
		keys = append(keys, k)
	}
	for _, k := range keys {
		if err := v.BindEnv(k, envPrefix+"_"+k, k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
		if d, ok := defaults[k]; ok {
			v.SetDefault(k, d)
		}
	}

	cfg := &ServiceConfig{
		Port:     v.GetString("SERVICE_PORT"),
		AppEnv:   v.GetString("APP_ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),
		LogFile:  v.GetString("LOG_FILE"),
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		KafkaConfig: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		RedisURL: v.GetString("REDIS_URL"),
		Geocoding: UpstreamConfig{
			BaseURL: strings.TrimRight(v.GetString("GEOCODING_URL"), "/"),
			Timeout: v.GetDuration("GEOCODING_TIMEOUT"),
		},
		Routing: UpstreamConfig{
			BaseURL: strings.TrimRight(v.GetString("ROUTING_URL"), "/"),
			Timeout: v.GetDuration("ROUTING_TIMEOUT"),
		},
		Gemini: GeminiConfig{
			APIKey: v.GetString("GEMINI_API_KEY"),
			Model:  v.GetString("GEMINI_MODEL"),
		},
		FestivalsSheet: v.GetString("FESTIVALS_XLSX"),
		ChatRateLimit:  v.GetString("CHAT_RATE_LIMIT"),
		SessionTTL:     v.GetDuration("SESSION_TTL"),
		SweepInterval:  v.GetDuration("SESSION_SWEEP"),
		CORSOrigins:    splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		AdminToken:     v.GetString("ADMIN_TOKEN"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ServiceConfig) validate() error {
	if c.Port == "" {
		return fmt.Errorf("SERVICE_PORT is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be a positive duration")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP must be a positive duration")
	}
	if c.Geocoding.Timeout <= 0 || c.Routing.Timeout <= 0 {
		return fmt.Errorf("upstream timeouts must be positive durations")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
