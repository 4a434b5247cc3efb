package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
upstream:
  base_url: https://site.example.com/
database:
  redis:
    address: localhost:6379
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://site.example.com", cfg.Upstream.BaseURL)
	assert.Equal(t, "https://site.example.com/api/waitlist", cfg.Upstream.WaitlistURL())
	assert.Equal(t, "https://site.example.com/api/partnerships", cfg.Upstream.PartnershipsURL())
	assert.Equal(t, 15000, cfg.Upstream.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 24*60, cfg.Intake.DraftTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Database.Postgres.Enabled())
	assert.Equal(t, 10, cfg.Database.Redis.PoolSize)
	assert.Equal(t, 2, cfg.Database.Redis.MinIdle)
	assert.Equal(t, 5000, cfg.Database.Redis.DialTimeout)
	assert.Equal(t, 3000, cfg.Database.Redis.ReadTimeout)
	assert.Equal(t, 3000, cfg.Database.Redis.WriteTimeout)
}

func TestLoadFromFile_EnvOverridesAndExpansion(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "http://localhost:3000")
	t.Setenv("REDIS_PASSWORD_FOR_TEST", "s3cret")

	path := writeConfig(t, `
upstream:
  base_url: https://ignored.example.com
database:
  redis:
    address: cache:6379
    password: ${REDIS_PASSWORD_FOR_TEST}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.Upstream.BaseURL)
	assert.Equal(t, "s3cret", cfg.Database.Redis.Password)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{
			name: "missing upstream",
			body: `
database:
  redis:
    address: localhost:6379
`,
			errMsg: "upstream.base_url is required",
		},
		{
			name: "non-http upstream",
			body: `
upstream:
  base_url: ftp://files.example.com
database:
  redis:
    address: localhost:6379
`,
			errMsg: "upstream.base_url must be an http(s) URL",
		},
		{
			name: "missing redis",
			body: `
upstream:
  base_url: https://site.example.com
`,
			errMsg: "database.redis.address is required",
		},
		{
			name: "postgres host without database",
			body: `
upstream:
  base_url: https://site.example.com
database:
  redis:
    address: localhost:6379
  postgres:
    host: db
    user: intake
`,
			errMsg: "database.postgres.database is required when host is set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "intake", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=intake sslmode=disable", p.GetDSN())
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
