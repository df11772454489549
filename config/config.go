// config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	CORSOrigins []string

	Database DatabaseConfig
	NewBook  NewBookConfig
	Resos    ResosConfig
	Widget   WidgetConfig
	Cache    CacheConfig
	Limits   RateLimitConfig

	RabbitURL      string
	MaxBatchNights int
}

type DatabaseConfig struct {
	// Enabled is set when a URL or host was configured.
	Enabled bool
	Driver  string // mysql | postgres
	URL     string
	User    string
	Pass    string
	Host    string
	Port    string
	Name    string
}

type NewBookConfig struct {
	BaseURL  string
	Username string
	Password string
	APIKey   string
	Region   string
	Timeout  time.Duration
}

type ResosConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// WidgetConfig holds the restaurant-facing settings the widget endpoints need.
type WidgetConfig struct {
	RestaurantPhone        string
	MaxPartySize           int
	MaxBookingWindowDays   int
	DefaultCloseoutMessage string

	HotelGuestFieldID   string
	HotelGuestYesChoice string
	BookingRefFieldID   string
	NoTableFieldName    string
}

type CacheConfig struct {
	StayTTL       time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// RateLimitConfig is requests per minute per client IP.
type RateLimitConfig struct {
	Read     int
	Write    int
	Resident int
}

// Load reads .env (optional) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	driver := strings.ToLower(getEnvOrDefault("DB_DRIVER", "mysql"))

	return Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		CORSOrigins: parseList(os.Getenv("CORS_ORIGINS")),
		Database: DatabaseConfig{
			Enabled: firstNonEmpty(os.Getenv("MYSQL_URL"), os.Getenv("DATABASE_URL"), os.Getenv("DB_HOST")) != "",
			Driver:  driver,
			URL:     firstNonEmpty(os.Getenv("MYSQL_URL"), os.Getenv("DATABASE_URL")),
			User:    getEnvOrDefault("DB_USER", "root"),
			Pass:    os.Getenv("DB_PASS"),
			Host:    getEnvOrDefault("DB_HOST", "127.0.0.1"),
			Port:    getEnvOrDefault("DB_PORT", defaultDBPort(driver)),
			Name:    getEnvOrDefault("DB_NAME", "table_booking"),
		},
		NewBook: NewBookConfig{
			BaseURL:  getEnvOrDefault("NEWBOOK_BASE_URL", "https://api.newbook.cloud/rest/"),
			Username: os.Getenv("NEWBOOK_USERNAME"),
			Password: os.Getenv("NEWBOOK_PASSWORD"),
			APIKey:   os.Getenv("NEWBOOK_API_KEY"),
			Region:   getEnvOrDefault("NEWBOOK_REGION", "au"),
			Timeout:  15 * time.Second,
		},
		Resos: ResosConfig{
			BaseURL: getEnvOrDefault("RESOS_BASE_URL", "https://api.resos.com/v1"),
			APIKey:  os.Getenv("RESOS_API_KEY"),
			Timeout: 30 * time.Second,
		},
		Widget: WidgetConfig{
			RestaurantPhone:        os.Getenv("RESTAURANT_PHONE"),
			MaxPartySize:           getEnvAsIntOrDefault("MAX_PARTY_SIZE", 12),
			MaxBookingWindowDays:   getEnvAsIntOrDefault("MAX_BOOKING_WINDOW_DAYS", 180),
			DefaultCloseoutMessage: getEnvOrDefault("CLOSEOUT_MESSAGE", "Call us on {phone} to check availability."),
			HotelGuestFieldID:      os.Getenv("RESOS_HOTEL_GUEST_FIELD"),
			HotelGuestYesChoice:    os.Getenv("RESOS_HOTEL_GUEST_YES_CHOICE"),
			BookingRefFieldID:      os.Getenv("RESOS_BOOKING_REF_FIELD"),
			NoTableFieldName:       getEnvOrDefault("NEWBOOK_NO_TABLE_FIELD", "Restaurant Status"),
		},
		Cache: CacheConfig{
			StayTTL:       time.Duration(getEnvAsIntOrDefault("STAY_CACHE_TTL_SECONDS", 300)) * time.Second,
			RedisAddr:     os.Getenv("REDIS_ADDR"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Limits: RateLimitConfig{
			Read:     getEnvAsIntOrDefault("RATE_LIMIT_READ", 30),
			Write:    getEnvAsIntOrDefault("RATE_LIMIT_WRITE", 5),
			Resident: getEnvAsIntOrDefault("RATE_LIMIT_RESIDENT", 10),
		},
		RabbitURL:      os.Getenv("RABBITMQ_URL"),
		MaxBatchNights: getEnvAsIntOrDefault("MAX_BATCH_NIGHTS", 14),
	}
}

func defaultDBPort(driver string) string {
	switch driver {
	case "postgres", "postgresql":
		return "5432"
	}
	return "3306"
}

func getEnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func getEnvAsIntOrDefault(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️  %s=%q is not a number, using %d", key, raw, def)
		return def
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
