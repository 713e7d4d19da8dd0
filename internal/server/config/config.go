// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the gophaccounts server.
//
// Fields:
//   - EndpointAddrHTTP / EndpointAddrGRPC: bind addresses of the two transports.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: lifetime of issued access tokens.
//   - VerificationKeyValidityDuration: lifetime of e-mail confirmation keys.
//   - PublicBaseURL: absolute URL used to build confirmation links.
//   - ClientIDs: registered OAuth clients allowed to use the password grant.
//   - CORSOrigins: allowed browser origins for the HTTP API.
//   - SMTPConfigFile: YAML list of SMTP servers. Empty disables SMTP delivery.
//   - MailOutboxDir: directory receiving .eml copies of outgoing mail.
//   - MailFrom: sender address.
//   - LogLevel / LogFile: logger level and optional rotated file.
type Config struct {
	EndpointAddrHTTP                string
	EndpointAddrGRPC                string
	DatabaseDSN                     string
	SecretKey                       string
	AccessTokenValidityDuration     time.Duration
	VerificationKeyValidityDuration time.Duration
	PublicBaseURL                   string
	ClientIDs                       []string
	CORSOrigins                     []string
	SMTPConfigFile                  string
	MailOutboxDir                   string
	MailFrom                        string
	LogLevel                        string
	LogFile                         string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 10 * time.Hour
	c.VerificationKeyValidityDuration = 72 * time.Hour
	c.PublicBaseURL = "http://localhost:8000"
	c.ClientIDs = []string{"web", "accountctl"}
	c.CORSOrigins = []string{"http://localhost:3000"}
	c.SMTPConfigFile = ""
	c.MailOutboxDir = "outbox"
	c.MailFrom = "noreply@localhost"
	c.LogLevel = "info"
	c.LogFile = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
