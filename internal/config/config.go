package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSSLMode  string `yaml:"db_sslmode"`

	ServerPort string `yaml:"server_port"`

	JWTSecret     string `yaml:"jwt_secret"`
	SessionMaxAge int    `yaml:"session_max_age"` // seconds

	PostsPerPage int           `yaml:"posts_per_page"`
	PageCacheTTL time.Duration `yaml:"page_cache_ttl"`
	RedisURL     string        `yaml:"redis_url"`

	R2AccountID       string `yaml:"r2_account_id"`
	R2AccessKeyID     string `yaml:"r2_access_key_id"`
	R2SecretAccessKey string `yaml:"r2_secret_access_key"`
	R2BucketName      string `yaml:"r2_bucket_name"`
	R2PublicURL       string `yaml:"r2_public_url"`
}

// MediaEnabled reports whether every R2 setting needed for uploads is present.
func (c *Config) MediaEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicURL != ""
}

// LoadConfig reads .env and the environment, then applies the optional YAML
// file at path on top. An empty path skips the YAML step.
func LoadConfig(path string) (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	sessionMaxAge, err := strconv.Atoi(os.Getenv("SESSION_MAX_AGE"))
	if err != nil || sessionMaxAge <= 0 {
		sessionMaxAge = 1209600 // two weeks
	}

	postsPerPage, err := strconv.Atoi(os.Getenv("POSTS_PER_PAGE"))
	if err != nil || postsPerPage <= 0 {
		postsPerPage = 10
	}

	pageCacheTTL, err := time.ParseDuration(os.Getenv("PAGE_CACHE_TTL"))
	if err != nil || pageCacheTTL <= 0 {
		pageCacheTTL = 20 * time.Second
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "require"
	}

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  sslMode,

		ServerPort: serverPort,

		JWTSecret:     os.Getenv("JWT_SECRET"),
		SessionMaxAge: sessionMaxAge,

		PostsPerPage: postsPerPage,
		PageCacheTTL: pageCacheTTL,
		RedisURL:     os.Getenv("REDIS_URL"),

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),
	}

	if path != "" {
		if err := applyYAML(cfg, path); err != nil {
			return nil, err
		}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// applyYAML overlays the keys present in the file; absent keys keep their
// environment values.
func applyYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// MigrationURL builds the postgres:// URL golang-migrate expects.
func (c *Config) MigrationURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}
