package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig

	ExamAPI ExamAPIConfig
	Catalog CatalogConfig
	Search  SearchConfig
	History HistoryConfig
	Viewer  ViewerConfig
	Uploads UploadsConfig
	Review  ReviewConfig
	Stats   StatsConfig
	Cache   CacheConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExamAPIConfig points at the upstream exam-data API.
type ExamAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CatalogConfig controls the course-code catalog source and refresh cadence.
type CatalogConfig struct {
	URL             string
	FilePath        string
	RefreshInterval time.Duration
}

// SearchConfig bounds suggestion output.
type SearchConfig struct {
	MaxSubstringResults int
	MaxClosestResults   int
}

// HistoryConfig versions the persisted recent-activity schema.
type HistoryConfig struct {
	SchemaVersion string
}

// ViewerConfig controls viewer session lifetime.
type ViewerConfig struct {
	SessionTTL time.Duration
}

// UploadsConfig controls pending-upload storage and validation.
type UploadsConfig struct {
	StorageDir       string
	PublicBaseURL    string
	MaxFileSizeBytes int64
	CleanupInterval  time.Duration
	CleanupMaxAge    time.Duration
}

// ReviewConfig carries review-queue auth and signed download settings.
type ReviewConfig struct {
	AdminEmail        string
	AdminPasswordHash string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
}

// StatsConfig toggles statistics export.
type StatsConfig struct {
	ExportEnabled bool
}

// CacheConfig controls the exam-response dedup window.
type CacheConfig struct {
	Enabled bool
	ExamTTL time.Duration
}

// Load reads configuration from .env and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.ExamAPI = ExamAPIConfig{
		BaseURL: v.GetString("EXAM_API_BASE_URL"),
		Timeout: parseDuration(v.GetString("EXAM_API_TIMEOUT"), 10*time.Second),
	}

	cfg.Catalog = CatalogConfig{
		URL:             v.GetString("CATALOG_URL"),
		FilePath:        v.GetString("CATALOG_FILE_PATH"),
		RefreshInterval: parseDuration(v.GetString("CATALOG_REFRESH_INTERVAL"), 24*time.Hour),
	}

	cfg.Search = SearchConfig{
		MaxSubstringResults: v.GetInt("SEARCH_MAX_SUBSTRING_RESULTS"),
		MaxClosestResults:   v.GetInt("SEARCH_MAX_CLOSEST_RESULTS"),
	}

	cfg.History = HistoryConfig{
		SchemaVersion: v.GetString("HISTORY_SCHEMA_VERSION"),
	}

	cfg.Viewer = ViewerConfig{
		SessionTTL: parseDuration(v.GetString("VIEWER_SESSION_TTL"), 2*time.Hour),
	}

	maxUploadSize := v.GetInt64("UPLOADS_MAX_FILE_SIZE")
	if maxUploadSize <= 0 {
		maxUploadSize = 20 * 1024 * 1024
	}
	cfg.Uploads = UploadsConfig{
		StorageDir:       v.GetString("UPLOADS_STORAGE_DIR"),
		PublicBaseURL:    v.GetString("UPLOADS_PUBLIC_BASE_URL"),
		MaxFileSizeBytes: maxUploadSize,
		CleanupInterval:  parseDuration(v.GetString("UPLOADS_CLEANUP_INTERVAL"), time.Hour),
		CleanupMaxAge:    parseDuration(v.GetString("UPLOADS_CLEANUP_MAX_AGE"), 90*24*time.Hour),
	}

	cfg.Review = ReviewConfig{
		AdminEmail:        v.GetString("REVIEW_ADMIN_EMAIL"),
		AdminPasswordHash: v.GetString("REVIEW_ADMIN_PASSWORD_HASH"),
		SignedURLSecret:   v.GetString("REVIEW_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("REVIEW_SIGNED_URL_TTL"), 30*time.Minute),
	}

	cfg.Stats = StatsConfig{
		ExportEnabled: v.GetBool("ENABLE_STATS_EXPORT"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_EXAM_CACHE"),
		ExamTTL: parseDuration(v.GetString("EXAM_CACHE_TTL"), 10*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "exam_archive")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("EXAM_API_BASE_URL", "https://api.liutentor.se/api")
	v.SetDefault("EXAM_API_TIMEOUT", "10s")

	v.SetDefault("CATALOG_URL", "")
	v.SetDefault("CATALOG_FILE_PATH", "./courseCodes.json")
	v.SetDefault("CATALOG_REFRESH_INTERVAL", "24h")

	v.SetDefault("SEARCH_MAX_SUBSTRING_RESULTS", 60)
	v.SetDefault("SEARCH_MAX_CLOSEST_RESULTS", 5)

	v.SetDefault("HISTORY_SCHEMA_VERSION", "1.2")

	v.SetDefault("VIEWER_SESSION_TTL", "2h")

	v.SetDefault("UPLOADS_STORAGE_DIR", "./pending-pdfs")
	v.SetDefault("UPLOADS_PUBLIC_BASE_URL", "")
	v.SetDefault("UPLOADS_CLEANUP_INTERVAL", "1h")
	v.SetDefault("UPLOADS_CLEANUP_MAX_AGE", "2160h")

	v.SetDefault("REVIEW_ADMIN_EMAIL", "")
	v.SetDefault("REVIEW_ADMIN_PASSWORD_HASH", "")
	v.SetDefault("REVIEW_SIGNED_URL_SECRET", "")
	v.SetDefault("REVIEW_SIGNED_URL_TTL", "30m")

	v.SetDefault("ENABLE_STATS_EXPORT", true)

	v.SetDefault("ENABLE_EXAM_CACHE", true)
	v.SetDefault("EXAM_CACHE_TTL", "10m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
