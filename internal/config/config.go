package config

import (
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	ConnectTimeoutSec  int
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// UploadConfig bounds multipart uploads (PDFs and templates).
type UploadConfig struct {
	MaxBytes int64
}

// TemplateConfig controls how workbooks are filled and where outputs go.
type TemplateConfig struct {
	// SkipSheets are left untouched when a fill targets every sheet.
	SkipSheets []string
	// OutputPrefix is the object key prefix for generated workbooks.
	OutputPrefix string
	// DownloadURLExpirySec is the lifetime of presigned output links.
	DownloadURLExpirySec int
}

// ExtractConfig lists the fields reported back as missing after extraction.
type ExtractConfig struct {
	RequiredFields []string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Upload   UploadConfig
	Template TemplateConfig
	Extract  ExtractConfig
}

// DefaultMaxUploadBytes mirrors the 50MB ceiling of the upload form.
const DefaultMaxUploadBytes int64 = 50 * 1024 * 1024

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			ConnectTimeoutSec:  getEnvInt("DB_CONNECT_TIMEOUT_SEC", 5),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Upload: UploadConfig{
			MaxBytes: getEnvInt64("UPLOAD_MAX_BYTES", DefaultMaxUploadBytes),
		},
		Template: TemplateConfig{
			SkipSheets:           getEnvList("TEMPLATE_SKIP_SHEETS", []string{"Data"}),
			OutputPrefix:         getEnv("TEMPLATE_OUTPUT_PREFIX", "outputs"),
			DownloadURLExpirySec: getEnvInt("TEMPLATE_DOWNLOAD_EXPIRY_SEC", 3600),
		},
		Extract: ExtractConfig{
			RequiredFields: getEnvList("EXTRACT_REQUIRED_FIELDS", []string{
				"Invoice Number", "PO", "Total Cartons", "DEST",
			}),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil && i > 0 {
			return i
		}
	}
	return def
}

// getEnvList splits a comma separated value; field names may contain spaces.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	out := make([]string, 0)
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
