package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
	Referral ReferralConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	JWTSecret    string
	AllowOrigins string
	AppBaseURL   string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AdminConfig struct {
	// InitialPassword seeds the admin password setting on first start.
	// After that the hash in the settings table is authoritative.
	InitialPassword string
}

type ReferralConfig struct {
	Threshold   int
	BonusAmount int
}

func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	threshold, _ := strconv.Atoi(getEnv("REFERRAL_THRESHOLD", "5"))
	bonus, _ := strconv.Atoi(getEnv("REFERRAL_BONUS", "30"))

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			JWTSecret:    getEnv("JWT_SECRET", "change-me-in-production"),
			AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
			AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "metodopds"),
			Password: getEnv("DB_PASSWORD", "metodopds"),
			Name:     getEnv("DB_NAME", "metodopds"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Admin: AdminConfig{
			InitialPassword: getEnv("ADMIN_INITIAL_PASSWORD", ""),
		},
		Referral: ReferralConfig{
			Threshold:   threshold,
			BonusAmount: bonus,
		},
	}

	if cfg.Server.Environment == "production" && cfg.Server.JWTSecret == "change-me-in-production" {
		return nil, errors.New("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

const (
	SessionTTL      = 7 * 24 * time.Hour
	AdminSessionTTL = 12 * time.Hour
)
