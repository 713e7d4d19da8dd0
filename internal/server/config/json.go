package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophaccounts/internal/flagx"
	"github.com/dmitrijs2005/gophaccounts/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Duration
// fields accept both "72h" strings and integer nanoseconds.
//
// Fields absent from the file leave the corresponding Config value as is.
type JsonConfig struct {
	EndpointAddrHTTP                *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC                *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                     *string         `json:"database_dsn"`
	SecretKey                       *string         `json:"secret_key"`
	AccessTokenValidityDuration     *timex.Duration `json:"access_token_validity_duration"`
	VerificationKeyValidityDuration *timex.Duration `json:"verification_key_validity_duration"`
	PublicBaseURL                   *string         `json:"public_base_url"`
	ClientIDs                       []string        `json:"client_ids"`
	CORSOrigins                     []string        `json:"cors_origins"`
	SMTPConfigFile                  *string         `json:"smtp_config_file"`
	MailOutboxDir                   *string         `json:"mail_outbox_dir"`
	MailFrom                        *string         `json:"mail_from"`
	LogLevel                        *string         `json:"log_level"`
	LogFile                         *string         `json:"log_file"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flags. Without those flags nothing is loaded. An unreadable
// file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.VerificationKeyValidityDuration != nil {
		config.VerificationKeyValidityDuration = c.VerificationKeyValidityDuration.Duration
	}
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	if c.ClientIDs != nil {
		config.ClientIDs = c.ClientIDs
	}
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}
	setString(&config.SMTPConfigFile, c.SMTPConfigFile)
	setString(&config.MailOutboxDir, c.MailOutboxDir)
	setString(&config.MailFrom, c.MailFrom)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFile, c.LogFile)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
