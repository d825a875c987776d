package config

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the API server configuration.
type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	LogLevel    string

	SessionCookieName     string
	SessionCookieSecret   string
	SessionCookieSecure   bool
	SessionCookieSameSite http.SameSite
	SessionTTL            time.Duration
	SessionPurgeSchedule  string

	PlayerAllowedHosts []string

	S3 S3Config
}

// S3Config describes the S3-compatible object store.
type S3Config struct {
	Endpoint       string
	AccessKey      string
	SecretKey      string
	Region         string
	ForcePathStyle bool
	BucketAvatars  string
	BucketCovers   string
}

// EdgeConfig holds the public edge process configuration.
type EdgeConfig struct {
	Env        string
	Port       string
	APIBaseURL string
	Prefix     string
	LogLevel   string
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the API configuration from the environment. Every problem is
// collected so a broken deployment reports all missing keys at once.
func Load() (*Config, error) {
	var errs []error

	env := getEnv("APP_ENV", "development")
	switch env {
	case "development", "production", "test":
	default:
		errs = append(errs, fmt.Errorf("APP_ENV must be one of development, production, test"))
	}

	cfg := &Config{
		Env:                  env,
		Port:                 getEnv("PORT", "4000"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		SessionPurgeSchedule: getEnv("SESSION_CLEANUP_SCHEDULE", "@every 1h"),
	}

	cfg.DatabaseURL = requireEnv("DATABASE_URL", &errs)
	if cfg.DatabaseURL != "" {
		if _, err := url.ParseRequestURI(cfg.DatabaseURL); err != nil {
			errs = append(errs, fmt.Errorf("DATABASE_URL must be a valid URL: %w", err))
		}
	}

	cfg.SessionCookieName = requireEnv("SESSION_COOKIE_NAME", &errs)
	cfg.SessionCookieSecret = requireEnv("SESSION_COOKIE_SECRET", &errs)
	if cfg.SessionCookieSecret != "" && len(cfg.SessionCookieSecret) < 16 {
		errs = append(errs, errors.New("SESSION_COOKIE_SECRET must be at least 16 characters"))
	}

	secure, err := getEnvBool("SESSION_COOKIE_SECURE", env == "production")
	if err != nil {
		errs = append(errs, err)
	}
	cfg.SessionCookieSecure = secure

	sameSite, err := parseSameSite(getEnv("SESSION_COOKIE_SAMESITE", "lax"))
	if err != nil {
		errs = append(errs, err)
	}
	cfg.SessionCookieSameSite = sameSite

	ttlHours, err := getEnvInt("SESSION_TTL_HOURS", 720)
	if err != nil {
		errs = append(errs, err)
	} else if ttlHours <= 0 {
		errs = append(errs, errors.New("SESSION_TTL_HOURS must be a positive integer"))
	}
	cfg.SessionTTL = time.Duration(ttlHours) * time.Hour

	cfg.PlayerAllowedHosts = splitList(os.Getenv("PLAYER_ALLOWED_HOSTS"), true)
	if len(cfg.PlayerAllowedHosts) == 0 {
		errs = append(errs, errors.New("PLAYER_ALLOWED_HOSTS must include at least one host"))
	}

	s3, s3Errs := loadS3()
	cfg.S3 = s3
	errs = append(errs, s3Errs...)

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func loadS3() (S3Config, []error) {
	var errs []error
	s3 := S3Config{
		Endpoint:      requireEnv("S3_ENDPOINT", &errs),
		AccessKey:     requireEnv("S3_ACCESS_KEY", &errs),
		SecretKey:     requireEnv("S3_SECRET_KEY", &errs),
		BucketAvatars: requireEnv("S3_BUCKET_AVATARS", &errs),
		BucketCovers:  requireEnv("S3_BUCKET_COVERS", &errs),
		Region:        getEnv("S3_REGION", "us-east-1"),
	}
	if s3.Endpoint != "" {
		if u, err := url.Parse(s3.Endpoint); err != nil || u.Host == "" {
			errs = append(errs, errors.New("S3_ENDPOINT must be a valid URL"))
		}
	}

	pathStyle, err := getEnvBool("S3_FORCE_PATH_STYLE", true)
	if err != nil {
		errs = append(errs, err)
	}
	s3.ForcePathStyle = pathStyle
	return s3, errs
}

// LoadEdge reads the edge proxy configuration.
func LoadEdge() (*EdgeConfig, error) {
	cfg := &EdgeConfig{
		Env:        getEnv("APP_ENV", "development"),
		Port:       getEnv("EDGE_PORT", "3000"),
		APIBaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:4000"), "/"),
		Prefix:     "/" + strings.Trim(getEnv("EDGE_PREFIX", "/api/backend"), "/"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid configuration: API_BASE_URL must be an absolute http(s) URL")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func requireEnv(key string, errs *[]error) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		*errs = append(*errs, fmt.Errorf("required environment variable %s is not set", key))
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid integer value for %s: %v", key, err)
	}
	return parsed, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	switch os.Getenv(key) {
	case "":
		return defaultValue, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return defaultValue, fmt.Errorf("%s must be true or false", key)
	}
}

func parseSameSite(value string) (http.SameSite, error) {
	switch strings.ToLower(value) {
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return http.SameSiteLaxMode, fmt.Errorf("SESSION_COOKIE_SAMESITE must be one of lax, strict, none")
	}
}

func splitList(value string, lower bool) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lower {
			part = strings.ToLower(part)
		}
		out = append(out, part)
	}
	return out
}
