package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
api:
  port: "9090"
  environment: production
  jwt_signing_key: secret
  allowed_cors_domains:
    - https://shop.example
remote:
  base_url: http://remote.example/
  call_timeout: 20s
credentials:
  driver: postgres
postgres:
  host: db
  user: storefront
  password: pw
  db: storefront
gold:
  default_days: 60
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, EnvProduction, conf.API.Environment)
	assert.Equal(t, []string{"https://shop.example"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "http://remote.example/", conf.Remote.BaseURL)
	assert.Equal(t, 20*time.Second, conf.Remote.CallTimeout)
	assert.Equal(t, 15*time.Second, conf.Remote.ConnectTimeout, "default")
	assert.Equal(t, DriverPostgres, conf.Credentials.Driver)
	assert.Equal(t, 60, conf.Gold.DefaultDays)
	assert.Equal(t, 24, conf.Gold.Karat, "default")
	assert.Equal(t, "debug", conf.Gin.Mode, "default")
	assert.Equal(t, "host=db port=5432 user=storefront password=pw dbname=storefront sslmode=disable", conf.Postgres.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_API_PORT", "7070")
	t.Setenv("APP_REMOTE_BASE_URL", "http://other.example/")
	t.Setenv("APP_LOG_LEVEL", "debug")

	conf, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "7070", conf.API.Port)
	assert.Equal(t, "http://other.example/", conf.Remote.BaseURL)
	assert.Equal(t, "debug", conf.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing signing key",
			content: "api:\n  port: \"1\"\n",
		},
		{
			name:    "unknown driver",
			content: "api:\n  jwt_signing_key: k\ncredentials:\n  driver: mysql\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
