package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

// Config is built once in main and handed to whatever needs it. Nothing in
// this codebase reads the environment after startup.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"APP_ENV" envDefault:"development"`

	// Either a full DSN / mysql:// URL, or the discrete parts below.
	DatabaseURL string `env:"DATABASE_URL"`
	DBUser      string `env:"DB_USER" envDefault:"root"`
	DBPass      string `env:"DB_PASS"`
	DBHost      string `env:"DB_HOST" envDefault:"127.0.0.1"`
	DBPort      string `env:"DB_PORT" envDefault:"3306"`
	DBName      string `env:"DB_NAME" envDefault:"rent_db"`

	JWTSecret     string        `env:"JWT_SECRET"`
	JWTExpiresIn  time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`
	JWTCookieDays int           `env:"JWT_COOKIE_EXPIRES_IN" envDefault:"7"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
	FrontendURL string   `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`
	CloudinaryURL   string `env:"CLOUDINARY_URL"`

	MailjetAPIKey    string `env:"MJ_APIKEY_PUBLIC"`
	MailjetSecretKey string `env:"MJ_APIKEY_PRIVATE"`
	MailFromEmail    string `env:"MAIL_FROM_EMAIL" envDefault:"noreply@rentease.local"`
	MailFromName     string `env:"MAIL_FROM_NAME" envDefault:"RentEase"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
