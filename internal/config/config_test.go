package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("TEMPLATE_SKIP_SHEETS", "Data, Lookup ,")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, int64(1024), cfg.Upload.MaxBytes)
	assert.Equal(t, []string{"Data", "Lookup"}, cfg.Template.SkipSheets)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "")
	t.Setenv("TEMPLATE_SKIP_SHEETS", "")
	t.Setenv("EXTRACT_REQUIRED_FIELDS", "")

	cfg := Load()

	assert.Equal(t, DefaultMaxUploadBytes, cfg.Upload.MaxBytes)
	assert.Equal(t, []string{"Data"}, cfg.Template.SkipSheets)
	assert.Equal(t, "outputs", cfg.Template.OutputPrefix)
	assert.Equal(t, []string{"Invoice Number", "PO", "Total Cartons", "DEST"}, cfg.Extract.RequiredFields)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvInt64(t *testing.T) {
	key := "TEST_INT64_VAR"

	t.Setenv(key, "52428800")
	assert.Equal(t, int64(52428800), getEnvInt64(key, 1))

	t.Setenv(key, "-5")
	assert.Equal(t, int64(7), getEnvInt64(key, 7))
}
