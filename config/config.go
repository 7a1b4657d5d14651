package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Google Calendar configuration.
	CalendarID               string `mapstructure:"CALENDAR_ID"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`
	DefaultTimezone          string `mapstructure:"DEFAULT_TIMEZONE"`

	// Mail (SMTP) configuration.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	MailSender   string `mapstructure:"MAIL_SENDER"`
	OwnerEmail   string `mapstructure:"OWNER_EMAIL"`
	SiteBaseURL  string `mapstructure:"SITE_BASE_URL"`
	StudioName   string `mapstructure:"STUDIO_NAME"`

	// Booking parameters.
	BookingDurationMin int `mapstructure:"BOOKING_DURATION_MIN"`
	CacheTTLSec        int `mapstructure:"CACHE_TTL_SEC"`
	SessionTTLMin      int `mapstructure:"SESSION_TTL_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("CALENDAR_ID", "primary")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "instance/glowbook-svc-acct.json")
	viper.SetDefault("DEFAULT_TIMEZONE", "America/Chicago")
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("MAIL_SENDER", "no-reply@glowbook.local")
	viper.SetDefault("SITE_BASE_URL", "http://localhost:8080")
	viper.SetDefault("STUDIO_NAME", "Glow Studio")
	viper.SetDefault("BOOKING_DURATION_MIN", 60)
	viper.SetDefault("CACHE_TTL_SEC", 300)
	viper.SetDefault("SESSION_TTL_MIN", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// BookingDuration returns the configured appointment length.
func BookingDuration() time.Duration {
	return time.Duration(AppConfig.BookingDurationMin) * time.Minute
}

// CacheTTL returns the configured result-cache time-to-live.
func CacheTTL() time.Duration {
	return time.Duration(AppConfig.CacheTTLSec) * time.Second
}

// SessionTTL returns how long an idle visitor session survives.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLMin) * time.Minute
}
