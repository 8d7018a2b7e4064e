// Package config loads service configuration from environment
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment driven setting of the service
type Config struct {
	Port int

	DB DBConfig

	SecretKey      string
	JWTIssuer      string
	AccessTokenTTL time.Duration

	AllowOrigins       []string
	RateLimitPerSecond uint

	LogLevel   string
	AuthLog    bool
	PageSize   int
	AdminEmail string
	AdminPass  string
}

// DBConfig holds the configuration parameters for connecting to a database.
type DBConfig struct {
	Host      string
	Port      string
	User      string
	Password  string
	DBName    string
	Constr    string
	UseConstr bool
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getEnvInt("PORT", 8080),
		DB: DBConfig{
			Host:      os.Getenv("DB_HOST"),
			Port:      getEnv("DB_PORT", "5432"),
			User:      os.Getenv("DB_USERNAME"),
			Password:  os.Getenv("DB_PASSWORD"),
			DBName:    os.Getenv("DB_DATABASE"),
			Constr:    os.Getenv("DB_CONNECTION_STR"),
			UseConstr: getEnvBool("USE_CONNECTION_STR", false),
		},
		SecretKey:          getEnv("SECRET_KEY", "dev-secret-change"),
		JWTIssuer:          getEnv("JWT_ISSUER", "job-board"),
		AccessTokenTTL:     time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MINUTES", 24*60)) * time.Minute,
		AllowOrigins:       splitList(getEnv("ALLOW_ORIGIN", "*")),
		RateLimitPerSecond: uint(positive(getEnvInt("RATE_LIMIT_REQUESTS_PER_SECOND", 5), 5)),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		AuthLog:            getEnvBool("LOGGING", false),
		PageSize:           positive(getEnvInt("PAGE_SIZE", 20), 20),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPass:          os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

func positive(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
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
