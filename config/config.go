package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds everything read from the environment at startup. It is built
// once in main and handed to the pieces that need it, never mutated after.
type Config struct {
	Env  string
	Port string

	MongoURI string
	DBName   string

	JWTSecret string

	RedisURI string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	FrontendURL string
	UploadDir   string

	RunMigrations bool
}

// Load reads the environment into a Config. A missing JWT secret is a hard
// error so the process refuses to start rather than signing tokens with an
// empty key.
func Load() (*Config, error) {
	cfg := &Config{
		Env:           getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:        getEnv("DB_NAME", "mediconsult"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisURI:      os.Getenv("REDIS_URI"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		SMTPFrom:      getEnv("SMTP_FROM", "no-reply@mediconsult.local"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
	}

	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, errors.New("SMTP_PORT must be a number")
	}
	cfg.SMTPPort = port

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not configured")
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SMTPConfigured reports whether outbound mail can be sent at all. When false
// the mailer degrades to a logged no-op.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
