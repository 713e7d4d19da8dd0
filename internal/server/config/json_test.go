package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"endpoint_addr_http":                 "www.example:8080",
		"endpoint_addr_grpc":                 "www.example:9000",
		"database_dsn":                       "postgres://x",
		"secret_key":                         "my_secret_key",
		"access_token_validity_duration":     "30m",
		"verification_key_validity_duration": "48h",
		"public_base_url":                    "https://accounts.example.com",
		"client_ids":                         []string{"web"},
		"cors_origins":                       []string{"https://a", "https://b"},
		"smtp_config_file":                   "smtp.yml",
		"mail_outbox_dir":                    "/tmp/outbox",
		"mail_from":                          "from@example.com",
		"log_level":                          "warn",
		"log_file":                           "/tmp/acc.log",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", full}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:8080", cfg.EndpointAddrHTTP)
		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 48*time.Hour, cfg.VerificationKeyValidityDuration)
		assert.Equal(t, "https://accounts.example.com", cfg.PublicBaseURL)
		assert.Equal(t, []string{"web"}, cfg.ClientIDs)
		assert.Equal(t, []string{"https://a", "https://b"}, cfg.CORSOrigins)
		assert.Equal(t, "smtp.yml", cfg.SMTPConfigFile)
		assert.Equal(t, "/tmp/outbox", cfg.MailOutboxDir)
		assert.Equal(t, "from@example.com", cfg.MailFrom)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "/tmp/acc.log", cfg.LogFile)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"secret_key": "from-file",
		})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "from-file", cfg.SecretKey)
		assert.Equal(t, ":8000", cfg.EndpointAddrHTTP)
		assert.Equal(t, 10*time.Hour, cfg.AccessTokenValidityDuration)
		assert.Equal(t, []string{"web", "accountctl"}, cfg.ClientIDs)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrHTTP: "defaults:1234", SecretKey: "key"}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "key", cfg.SecretKey)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "absent.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
