package config

import "time"

// Config holds runtime settings for the bank CLI.
//
// Fields:
//   - ServerBaseURL: root of the backend JSON API, e.g. http://127.0.0.1:5000/api.
//   - AdminEmail: the identity that is given the administrator role.
//   - RequestTimeout: upper bound for a single backend call.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DatabasePath: SQLite file for local metadata (last login email).
//   - StatementDir: where statements are written when no bucket is set.
//   - S3*: bucket settings; a non-empty S3Bucket sends statements to S3.
type Config struct {
	ServerBaseURL       string
	AdminEmail          string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	DatabasePath        string
	LogLevel            string
	LogFormat           string

	StatementDir   string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000/api"
	c.AdminEmail = "admin@login.com"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabasePath = "bankclient.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.StatementDir = "statements"
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
