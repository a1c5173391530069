package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it.
//
// Recognized variables:
//
//	SKILLSWAP_ADDR            bind address
//	SKILLSWAP_DATABASE_DSN    PostgreSQL DSN
//	SKILLSWAP_SECRET_KEY      JWT HMAC secret
//	SKILLSWAP_SESSION_HOURS   session validity, hours
//	SKILLSWAP_OTP_PER_MINUTE  OTP send rate limit
//	SKILLSWAP_S3_USER / SKILLSWAP_S3_PASSWORD
//	SKILLSWAP_S3_BUCKET / SKILLSWAP_S3_REGION / SKILLSWAP_S3_ENDPOINT
func parseEnv(config *Config) {
	// missing .env is fine
	_ = godotenv.Load()

	setString := func(key string, target *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*target = v
		}
	}

	setString("SKILLSWAP_ADDR", &config.EndpointAddr)
	setString("SKILLSWAP_DATABASE_DSN", &config.DatabaseDSN)
	setString("SKILLSWAP_SECRET_KEY", &config.SecretKey)
	setString("SKILLSWAP_S3_USER", &config.S3RootUser)
	setString("SKILLSWAP_S3_PASSWORD", &config.S3RootPassword)
	setString("SKILLSWAP_S3_BUCKET", &config.S3Bucket)
	setString("SKILLSWAP_S3_REGION", &config.S3Region)
	setString("SKILLSWAP_S3_ENDPOINT", &config.S3BaseEndpoint)

	if v, ok := os.LookupEnv("SKILLSWAP_SESSION_HOURS"); ok {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			config.SessionValidityDuration = time.Duration(hours) * time.Hour
		}
	}
	if v, ok := os.LookupEnv("SKILLSWAP_OTP_PER_MINUTE"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.OTPRateLimitPerMinute = n
		}
	}
}
