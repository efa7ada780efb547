package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AuthModeFirebase = "firebase"
	AuthModeJWT      = "jwt"
)

// DefaultJWTSecret is only accepted in development.
const DefaultJWTSecret = "dev-secret-change-me"

var (
	ErrUnknownAuthMode  = errors.New("AUTH_MODE must be firebase or jwt")
	ErrJWTInProduction  = errors.New("AUTH_MODE=jwt is not allowed in production; use firebase")
	ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set outside development")
)

type Config struct {
	Port    string
	Env     string
	DBDSN   string
	LogFile string

	AuthMode                string
	FirebaseProjectID       string
	FirebaseCredentialsFile string
	FirebaseCredentialsJSON string
	JWTSecret               string
	AutoProvisionUsers      bool

	RateLimitPerMin int
	BodyLimitBytes  int
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	dsn := getEnv("DB_DSN", "sellerhub.db") // sqlite file in project root

	cfg := Config{
		Port:    getEnv("PORT", "8080"),
		Env:     getEnv("APP_ENV", "development"),
		DBDSN:   dsn,
		LogFile: getEnv("LOG_FILE", ""),

		AuthMode:                strings.ToLower(getEnv("AUTH_MODE", AuthModeJWT)),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		FirebaseCredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),
		JWTSecret:               getEnv("JWT_SECRET", DefaultJWTSecret),
		AutoProvisionUsers:      getEnvAsBool("AUTO_PROVISION_USERS", true),

		RateLimitPerMin: getEnvAsInt("RATE_LIMIT_PER_MIN", 120),
		BodyLimitBytes:  getEnvAsInt("BODY_LIMIT_BYTES", 1<<20),
	}
	return cfg
}

func (c Config) Production() bool { return c.Env == "production" }

// Validate refuses identity settings that would let anyone mint accepted tokens.
func (c Config) Validate() error {
	switch c.AuthMode {
	case AuthModeFirebase:
		return nil
	case AuthModeJWT:
		if c.Production() {
			return ErrJWTInProduction
		}
		if c.JWTSecret == DefaultJWTSecret && c.Env != "development" {
			return ErrDefaultJWTSecret
		}
		return nil
	default:
		return fmt.Errorf("%w, got %q", ErrUnknownAuthMode, c.AuthMode)
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}
