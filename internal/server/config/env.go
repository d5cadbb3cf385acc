package config

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/flagx"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// EnvConfig maps environment variables onto server settings. Unset variables
// leave the corresponding Config field untouched.
type EnvConfig struct {
	EndpointAddrHTTP            string        `env:"JOURNAL_ADDR"`
	DatabaseDSN                 string        `env:"JOURNAL_DATABASE_DSN"`
	SecretKey                   string        `env:"JOURNAL_SECRET_KEY"`
	TokenAlgorithm              string        `env:"JOURNAL_TOKEN_ALGORITHM"`
	AccessTokenValidityDuration time.Duration `env:"JOURNAL_ACCESS_TOKEN_TTL"`
	TimeZone                    string        `env:"JOURNAL_TIMEZONE"`
	CORSAllowedOrigins          string        `env:"JOURNAL_CORS_ORIGINS"`
	DefaultUserName             string        `env:"JOURNAL_DEFAULT_USER"`
	DefaultUserPassword         string        `env:"JOURNAL_DEFAULT_PASSWORD"`
	BcryptCost                  int           `env:"JOURNAL_BCRYPT_COST"`
	LogLevel                    string        `env:"JOURNAL_LOG_LEVEL"`
	LoginRateLimit              int           `env:"JOURNAL_LOGIN_RATE_LIMIT"`
	LoginRateBurst              int           `env:"JOURNAL_LOGIN_RATE_BURST"`
	ShutdownTimeout             time.Duration `env:"JOURNAL_SHUTDOWN_TIMEOUT"`
}

// dotenvLoad is a seam for tests.
var dotenvLoad = func() error { return godotenv.Load() }

// parseEnv overlays Config with environment variables. A .env file in the
// working directory, if present, is loaded first; variables already set in
// the process environment win over the file.
//
// It panics if a variable is set but cannot be decoded (e.g. a malformed
// duration), matching the behavior of the JSON and flag loaders.
func parseEnv(config *Config) {
	_ = dotenvLoad()

	var ec EnvConfig
	if err := envdecode.StrictDecode(&ec); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return
		}
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, ec.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, ec.DatabaseDSN)
	setString(&config.SecretKey, ec.SecretKey)
	setString(&config.TokenAlgorithm, ec.TokenAlgorithm)
	setDuration(&config.AccessTokenValidityDuration, ec.AccessTokenValidityDuration)
	setString(&config.TimeZone, ec.TimeZone)
	if ec.CORSAllowedOrigins != "" {
		config.CORSAllowedOrigins = flagx.SplitList(ec.CORSAllowedOrigins)
	}
	setString(&config.DefaultUserName, ec.DefaultUserName)
	setString(&config.DefaultUserPassword, ec.DefaultUserPassword)
	setInt(&config.BcryptCost, ec.BcryptCost)
	setString(&config.LogLevel, ec.LogLevel)
	setInt(&config.LoginRateLimit, ec.LoginRateLimit)
	setInt(&config.LoginRateBurst, ec.LoginRateBurst)
	setDuration(&config.ShutdownTimeout, ec.ShutdownTimeout)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}
