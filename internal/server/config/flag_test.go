package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:8080", "-g", "127.0.0.1:9090", "-d", "db", "-s", "secret",
				"-t", "15", "-v", "24", "-u", "https://accounts.example.com",
				"-i", "web, cli", "-r", "https://app.example.com",
				"-m", "smtp.yml", "-o", "/var/mail", "-f", "no-reply@example.com",
				"-l", "debug", "-L", "/var/log/acc.log",
			},
			expected: &Config{
				EndpointAddrHTTP:                "127.0.0.1:8080",
				EndpointAddrGRPC:                "127.0.0.1:9090",
				DatabaseDSN:                     "db",
				SecretKey:                       "secret",
				AccessTokenValidityDuration:     15 * time.Minute,
				VerificationKeyValidityDuration: 24 * time.Hour,
				PublicBaseURL:                   "https://accounts.example.com",
				ClientIDs:                       []string{"web", "cli"},
				CORSOrigins:                     []string{"https://app.example.com"},
				SMTPConfigFile:                  "smtp.yml",
				MailOutboxDir:                   "/var/mail",
				MailFrom:                        "no-reply@example.com",
				LogLevel:                        "debug",
				LogFile:                         "/var/log/acc.log",
			},
		},
		{
			name: "unknown flags are filtered out",
			args: []string{"cmd", "-x", "1", "-c", "cfg.json", "-a", ":9000"},
			expected: &Config{
				EndpointAddrHTTP: ":9000",
				ClientIDs:        []string{},
				CORSOrigins:      []string{},
			},
		},
		{
			name:        "non-numeric duration panics",
			args:        []string{"cmd", "-t", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b ,"))
	assert.Equal(t, []string{}, splitList(""))
}
