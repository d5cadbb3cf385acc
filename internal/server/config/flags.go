package config

import (
	"flag"
	"strings"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   PostgreSQL DSN
//	-s string   token HMAC secret key
//	-g string   token algorithm (HS256, HS384, HS512)
//	-t int      access token validity, minutes
//	-z string   local time zone ("UTC+8", "Asia/Shanghai")
//	-o string   comma separated CORS origins
//	-u string   default user name
//	-p string   default user password
//	-l string   log level
//
// The function first filters args to only the flags it recognizes using
// flagx.FilterArgs, so -c/-config handled by parseJson does not collide.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-g", "-t", "-z", "-o", "-u", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.TokenAlgorithm, "g", config.TokenAlgorithm, "token signing algorithm")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.TimeZone, "z", config.TimeZone, "local time zone")
	origins := fs.String("o", strings.Join(config.CORSAllowedOrigins, ","), "comma separated CORS origins")
	fs.StringVar(&config.DefaultUserName, "u", config.DefaultUserName, "default user name")
	fs.StringVar(&config.DefaultUserPassword, "p", config.DefaultUserPassword, "default user password")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.CORSAllowedOrigins = flagx.SplitList(*origins)
}
