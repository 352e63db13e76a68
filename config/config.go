package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Catalog   CatalogConfig
	Cart      CartConfig
	PromptPay PromptPayConfig
	EmailJS   EmailJSConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// CatalogConfig selects where the static product catalog is read from.
// Source is one of "http", "s3" or "file".
type CatalogConfig struct {
	Source      string
	URL         string
	S3Region    string
	S3Bucket    string
	S3Key       string
	FilePath    string
	RefreshCron string // empty disables the background cache refresh
}

type CartConfig struct {
	MinSelectedItems int
	TTL              time.Duration
}

type PromptPayConfig struct {
	MerchantID string // PromptPay phone number of the shop
	QRBaseURL  string
	QRSize     string
}

type EmailJSConfig struct {
	BaseURL    string
	PublicKey  string
	ServiceID  string
	TemplateID string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "taladsod"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Catalog: CatalogConfig{
			Source:      getEnv("CATALOG_SOURCE", "http"),
			URL:         getEnv("CATALOG_URL", "http://localhost:3000/products.json"),
			S3Region:    getEnv("CATALOG_S3_REGION", "ap-southeast-1"),
			S3Bucket:    getEnv("CATALOG_S3_BUCKET", "taladsod-catalog"),
			S3Key:       getEnv("CATALOG_S3_KEY", "products.json"),
			FilePath:    getEnv("CATALOG_FILE", "./products.json"),
			RefreshCron: getEnv("CATALOG_REFRESH_CRON", ""),
		},
		Cart: CartConfig{
			MinSelectedItems: getEnvInt("CART_MIN_SELECTED_ITEMS", 10),
			TTL:              parseDuration(getEnv("CART_TTL", "168h")),
		},
		PromptPay: PromptPayConfig{
			MerchantID: getEnv("PROMPTPAY_MERCHANT_ID", "0812345678"),
			QRBaseURL:  getEnv("PROMPTPAY_QR_BASE_URL", "https://api.qrserver.com/v1/create-qr-code/"),
			QRSize:     getEnv("PROMPTPAY_QR_SIZE", "300x300"),
		},
		EmailJS: EmailJSConfig{
			BaseURL:    getEnv("EMAILJS_BASE_URL", "https://api.emailjs.com/api/v1.0/email/send"),
			PublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
			ServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
			TemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer %s for %s, using default %d", value, key, defaultValue)
		return defaultValue
	}
	return n
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 168h", s)
		return 168 * time.Hour
	}
	return duration
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
