package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-g string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN, empty for the in-memory store
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-v int      verification key validity, hours
//	-u string   public base URL for confirmation links
//	-i string   comma separated client ids
//	-r string   comma separated CORS origins
//	-m string   SMTP servers YAML file
//	-o string   mail outbox directory
//	-f string   mail sender address
//	-l string   log level
//	-L string   log file
//
// Duration flags are accepted as integers and converted to time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-v", "-u", "-i", "-r", "-m", "-o", "-f", "-l", "-L"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	verificationKeyValidity := fs.Int("v", int(config.VerificationKeyValidityDuration.Hours()), "verification_key_validity_duration (in hours)")

	fs.StringVar(&config.PublicBaseURL, "u", config.PublicBaseURL, "public base URL")
	clientIDs := fs.String("i", strings.Join(config.ClientIDs, ","), "registered client ids")
	corsOrigins := fs.String("r", strings.Join(config.CORSOrigins, ","), "allowed CORS origins")
	fs.StringVar(&config.SMTPConfigFile, "m", config.SMTPConfigFile, "SMTP servers config file")
	fs.StringVar(&config.MailOutboxDir, "o", config.MailOutboxDir, "mail outbox directory")
	fs.StringVar(&config.MailFrom, "f", config.MailFrom, "mail sender address")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFile, "L", config.LogFile, "log file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.VerificationKeyValidityDuration = time.Duration(*verificationKeyValidity) * time.Hour
	config.ClientIDs = splitList(*clientIDs)
	config.CORSOrigins = splitList(*corsOrigins)
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
