package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
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
		"server_base_url":       "https://bank.example/api",
		"admin_email":           "root@bank.example",
		"request_timeout":       "4s",
		"online_check_interval": 10_000_000_000,
		"database_path":         "/var/lib/bank.db",
		"log_level":             "warn",
		"log_format":            "json",
		"statement_dir":         "/tmp/st",
		"s3_bucket":             "statements",
		"s3_region":             "eu-west-1",
		"s3_base_endpoint":      "http://127.0.0.1:9000",
		"s3_access_key":         "minioadmin",
		"s3_secret_key":         "miniosecret",
	})

	t.Run("loads every field", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", full}

		cfg := &Config{}
		parseJson(cfg)

		want := &Config{
			ServerBaseURL:       "https://bank.example/api",
			AdminEmail:          "root@bank.example",
			RequestTimeout:      4 * time.Second,
			OnlineCheckInterval: 10 * time.Second,
			DatabasePath:        "/var/lib/bank.db",
			LogLevel:            "warn",
			LogFormat:           "json",
			StatementDir:        "/tmp/st",
			S3Bucket:            "statements",
			S3Region:            "eu-west-1",
			S3BaseEndpoint:      "http://127.0.0.1:9000",
			S3AccessKey:         "minioadmin",
			S3SecretKey:         "miniosecret",
		}
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("absent keys keep defaults", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"log_level": "debug"})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "http://127.0.0.1:5000/api", cfg.ServerBaseURL)
		assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{ServerBaseURL: "http://defaults:1234", OnlineCheckInterval: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "http://defaults:1234", cfg.ServerBaseURL)
		assert.Equal(t, 42*time.Second, cfg.OnlineCheckInterval)
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
