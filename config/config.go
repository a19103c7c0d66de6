package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	Debug            bool
	JWTSecret        string
	MySQLDSN         string
	RedisHost        string
	RedisPass        string
	RedisDB          int
	SmtpHost         string
	SmtpPort         string
	SmtpUser         string
	SmtpPass         string
	ErrorReportEmail string
	AppURL           string
	StaticDir        string
	ResetTokenTTL    time.Duration
}

// Load construit la config depuis l'environnement. Pas de singleton :
// l'instance est passée explicitement à chaque service qui en a besoin.
func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "3000"),
		Debug:            os.Getenv("APP_DEBUG") == "true",
		JWTSecret:        os.Getenv("JWT_SECRET"),
		MySQLDSN:         getEnv("MYSQL_DSN", "plumyr:plumyr@tcp(localhost:3306)/plumyr?charset=utf8mb4&parseTime=True&loc=UTC"),
		RedisHost:        getEnv("REDIS_HOST", "localhost:6379"),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		SmtpHost:         os.Getenv("SMTP_HOST"),
		SmtpPort:         getEnv("SMTP_PORT", "587"),
		SmtpUser:         os.Getenv("SMTP_USER"),
		SmtpPass:         os.Getenv("SMTP_PASS"),
		ErrorReportEmail: os.Getenv("ERROR_REPORT_EMAIL"),
		AppURL:           getEnv("APP_URL", "http://localhost:3000"),
		StaticDir:        getEnv("STATIC_DIR", "./static/profile"),
		ResetTokenTTL:    time.Duration(getEnvInt("RESET_TOKEN_TTL", 1800)) * time.Second,
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
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
