package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validKey = "0123456789abcdef0123456789abcdef"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvSignatureKey, "")
	t.Setenv(EnvJWTSecret, "")
	t.Setenv(EnvDBPassword, "")
}

func TestLoad_FileValuesAndDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
password = "secret"

[auth]
jwt_secret = "jwt"

[qr]
signature_key = "`+validKey+`"

[scheduler]
enabled = true
spec = "*/5 * * * *"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "*/5 * * * *", cfg.Scheduler.Spec)
	assert.Equal(t, 55*time.Second, cfg.Scheduler.Timeout())
	assert.Equal(t, 20*time.Minute, cfg.Scheduler.UnpaidGrace())
	assert.True(t, strings.Contains(cfg.Database.DSN(), "host=db port=5432"))
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSignatureKey, validKey+"-from-env")
	t.Setenv(EnvJWTSecret, "env-jwt")
	t.Setenv(EnvDBPassword, "env-pass")

	path := writeConfig(t, `
[auth]
jwt_secret = "file-jwt"

[qr]
signature_key = "`+validKey+`"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, validKey+"-from-env", cfg.QR.SignatureKey)
	assert.Equal(t, "env-jwt", cfg.Auth.JWTSecret)
	assert.Equal(t, "env-pass", cfg.Database.Password)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"missing signature key", func(c *Config) { c.QR.SignatureKey = "" }},
		{"short signature key", func(c *Config) { c.QR.SignatureKey = "short" }},
		{"bad cron spec", func(c *Config) { c.Scheduler.Spec = "every minute" }},
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth.JWTSecret = "jwt"
			cfg.QR.SignatureKey = validKey
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidate_DisabledSchedulerIgnoresSpec(t *testing.T) {
	cfg := Default()
	cfg.Auth.JWTSecret = "jwt"
	cfg.QR.SignatureKey = validKey
	cfg.Scheduler.Enabled = false
	cfg.Scheduler.Spec = ""

	assert.NoError(t, cfg.Validate())
}
