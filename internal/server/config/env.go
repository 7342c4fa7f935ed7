package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables.
//
// Recognized variables:
//
//	ADDRESS                   HTTP bind address (e.g. ":5000")
//	DATABASE_DSN              PostgreSQL DSN
//	ACCESS_TOKEN_SECRET       HMAC secret for access tokens
//	ACCESS_TOKEN_EXPIRES_IN   access token lifetime (time.ParseDuration format)
//	REFRESH_TOKEN_SECRET      HMAC secret for refresh tokens
//	REFRESH_TOKEN_EXPIRES_IN  refresh token lifetime (time.ParseDuration format)
//	BCRYPT_COST               password hash cost factor
//
// Malformed duration or integer values panic: a misconfigured environment
// is a fatal startup condition, not something to silently fall back from.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_SECRET"); ok {
		config.AccessTokenSecret = v
	}
	if v, ok := os.LookupEnv("REFRESH_TOKEN_SECRET"); ok {
		config.RefreshTokenSecret = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_EXPIRES_IN"); ok {
		config.AccessTokenValidityDuration = mustParseDuration(v)
	}
	if v, ok := os.LookupEnv("REFRESH_TOKEN_EXPIRES_IN"); ok {
		config.RefreshTokenValidityDuration = mustParseDuration(v)
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		cost, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.BCryptCost = cost
	}
}

func mustParseDuration(v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}
