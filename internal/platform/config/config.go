package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	APIPort     string
	Environment string

	JWTKey          []byte
	JWTExp          time.Duration
	CookieExp       time.Duration
	ResetTokenTTL   time.Duration
	BcryptCost      int
	RateLimitMax    int
	RateLimitWindow time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MailDriver          string // "postmark" or "dev"
	MailFrom            string
	PostmarkServerToken string
}

// Load reads .env (if present) and the process environment once at startup.
// The returned Config is injected into every component and never mutated.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:     getEnv("API_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", EnvDevelopment),

		JWTKey:          []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:          time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		CookieExp:       time.Duration(getEnvAsInt("JWT_COOKIE_EXPIRES_IN_DAYS", 90)) * 24 * time.Hour,
		ResetTokenTTL:   time.Duration(getEnvAsInt("RESET_TOKEN_TTL_MINUTES", 10)) * time.Minute,
		BcryptCost:      getEnvAsInt("BCRYPT_COST", 12),
		RateLimitMax:    getEnvAsInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_MINUTES", 60)) * time.Minute,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "tourbase_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		MailDriver:          getEnv("MAIL_DRIVER", "dev"),
		MailFrom:            getEnv("MAIL_FROM", "hello@tourbase.local"),
		PostmarkServerToken: getEnv("POSTMARK_SERVER_TOKEN", ""),
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg
}

// IsProduction reports whether production-only behavior (e.g. the secure
// cookie flag) should be enabled.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
