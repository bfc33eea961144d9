package config

import "os"

// parseEnv overrides secrets and deployment mode from environment variables.
// Only a small set is supported; everything else goes through flags or JSON.
//
//	WENOTES_SECRET_KEY    JWT HMAC secret
//	WENOTES_DATABASE_DSN  PostgreSQL DSN
//	WENOTES_ENV           "development" or "production"
//	WENOTES_S3_USER       S3 root user
//	WENOTES_S3_PASSWORD   S3 root password
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("WENOTES_SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("WENOTES_DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("WENOTES_ENV"); ok {
		config.Env = v
	}
	if v, ok := os.LookupEnv("WENOTES_S3_USER"); ok {
		config.S3RootUser = v
	}
	if v, ok := os.LookupEnv("WENOTES_S3_PASSWORD"); ok {
		config.S3RootPassword = v
	}
}
