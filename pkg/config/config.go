package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	placeholderVerifyToken = "YOUR_SECRET_WEBHOOK_VERIFY_TOKEN_HERE"
	placeholderAPIToken    = "YOUR_PERMANENT_ACCESS_TOKEN_HERE"
	placeholderSenderID    = "YOUR_SENDER_PHONE_NUMBER_ID_HERE"
)

// Config represents the application configuration
type Config struct {
	ServiceName string
	Server      ServerConfig
	Database    DatabaseConfig
	Log         LogConfig
	Metrics     MetricsConfig
	Media       MediaConfig
	Cache       CacheConfig
	WhatsApp    WhatsAppConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Env             string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver          string
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

// GetDSN returns the connection string for the configured driver.
// An explicit DATABASE_URL always wins over the individual parts.
func (c *DatabaseConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	if c.Driver == "sqlite" {
		return c.Name + ".db"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics-related configuration
type MetricsConfig struct {
	Prefix string
}

// MediaConfig selects and configures the media store backend
type MediaConfig struct {
	Backend        string
	StagingDir     string
	MaxUploadBytes int64

	// filesystem backend
	Dir           string
	PublicBaseURL string

	S3         S3Config
	Cloudinary CloudinaryConfig
}

// S3Config holds S3 (or S3 compatible) storage settings
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	KeyPrefix       string
}

// CloudinaryConfig holds Cloudinary account credentials
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// CacheConfig configures the list cache
type CacheConfig struct {
	Backend       string
	TTL           time.Duration
	Size          int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// WhatsAppConfig holds WhatsApp Business API settings
type WhatsAppConfig struct {
	APIToken     string
	SenderID     string
	APIVersion   string
	APIBaseURL   string
	VerifyToken  string
	Keyword      string
	AutoReply    bool
	ReplyMessage string
}

// Load loads the application configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "fitness"),
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", getEnv("PORT", "5000")),
			Env:             getEnv("APP_ENV", "development"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			URL:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "fitness"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnv("DB_LOG_LEVEL", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "fitness"),
		},
		Media: MediaConfig{
			Backend:        getEnv("MEDIA_BACKEND", "filesystem"),
			StagingDir:     getEnv("MEDIA_STAGING_DIR", os.TempDir()),
			MaxUploadBytes: int64(getEnvAsInt("MEDIA_MAX_UPLOAD_BYTES", 100<<20)),
			Dir:            getEnv("MEDIA_DIR", "var/storage/media"),
			PublicBaseURL:  getEnv("MEDIA_PUBLIC_BASE_URL", "/media"),
			S3: S3Config{
				Bucket:          getEnv("S3_BUCKET", ""),
				Region:          getEnv("S3_REGION", "us-east-1"),
				Endpoint:        getEnv("S3_ENDPOINT", ""),
				AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
				PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),
				KeyPrefix:       getEnv("S3_KEY_PREFIX", "media/"),
			},
			Cloudinary: CloudinaryConfig{
				CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
				APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
				APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
				Folder:    getEnv("CLOUDINARY_FOLDER", ""),
			},
		},
		Cache: CacheConfig{
			Backend:       getEnv("CACHE_BACKEND", "memory"),
			TTL:           getEnvAsDuration("CACHE_TTL", 5*time.Minute),
			Size:          getEnvAsInt("CACHE_SIZE", 64),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
		},
		WhatsApp: WhatsAppConfig{
			APIToken:     getEnv("WHATSAPP_API_TOKEN", placeholderAPIToken),
			SenderID:     getEnv("WHATSAPP_SENDER_ID", placeholderSenderID),
			APIVersion:   getEnv("WHATSAPP_API_VERSION", "v19.0"),
			APIBaseURL:   getEnv("WHATSAPP_API_BASE_URL", "https://graph.facebook.com"),
			VerifyToken:  getEnv("WHATSAPP_WEBHOOK_VERIFY_TOKEN", placeholderVerifyToken),
			Keyword:      getEnv("WHATSAPP_KEYWORD", "#feedback"),
			AutoReply:    getEnvAsBool("WHATSAPP_AUTO_REPLY", false),
			ReplyMessage: getEnv("WHATSAPP_REPLY_MESSAGE", "Thanks for your feedback! Our team will get back to you soon."),
		},
	}

	return cfg, nil
}

// Warnings reports required secrets that are missing or still set to a
// placeholder value. They are logged at startup; none of them is fatal.
func (c *Config) Warnings() []string {
	var warnings []string

	wa := c.WhatsApp
	if wa.VerifyToken == "" || wa.VerifyToken == placeholderVerifyToken {
		warnings = append(warnings, "WHATSAPP_WEBHOOK_VERIFY_TOKEN is not set, webhook verification will use a placeholder")
	}
	if wa.APIToken == "" || wa.APIToken == placeholderAPIToken {
		warnings = append(warnings, "WHATSAPP_API_TOKEN is not set")
	}
	if wa.SenderID == "" || wa.SenderID == placeholderSenderID {
		warnings = append(warnings, "WHATSAPP_SENDER_ID is not set")
	}

	switch c.Media.Backend {
	case "s3":
		if c.Media.S3.Bucket == "" {
			warnings = append(warnings, "S3_BUCKET is not set, media uploads will fail")
		}
	case "cloudinary":
		cl := c.Media.Cloudinary
		if cl.CloudName == "" || cl.APIKey == "" || cl.APISecret == "" {
			warnings = append(warnings, "Cloudinary credentials are incomplete, media uploads will fail")
		}
	}

	return warnings
}

// Ready reports whether outbound WhatsApp messages can be sent
func (c *WhatsAppConfig) Ready() bool {
	return c.APIToken != "" && c.APIToken != placeholderAPIToken &&
		c.SenderID != "" && c.SenderID != placeholderSenderID
}

// LogFields returns the non-secret configuration as zap fields
func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("server_port", c.Server.Port),
		zap.String("db_driver", c.Database.Driver),
		zap.String("db_host", c.Database.Host),
		zap.String("db_name", c.Database.Name),
		zap.String("media_backend", c.Media.Backend),
		zap.String("cache_backend", c.Cache.Backend),
	}
}

// Helper functions to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
