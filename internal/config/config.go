package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	EmailBackendSmtp = "smtp"
	EmailBackendSes  = "ses"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE" envDefault:"false"`

	Port           uint16   `env:"PORT" envDefault:"9090"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	Secret        string `env:"SECRET"`
	PostgresqlURL string `env:"POSTGRESQL_URL"`

	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"1h"`
	PasswordResetBaseURL       string        `env:"PASSWORD_RESET_BASE_URL"`

	EmailBackend        string `env:"EMAIL_BACKEND" envDefault:"smtp"`
	EmailSenderAddress  string `env:"EMAIL_SENDER_ADDRESS"`
	EmailSenderPassword string `env:"EMAIL_SENDER_PASSWORD"`
	SmtpHost            string `env:"SMTP_HOST"`
	SmtpPort            int    `env:"SMTP_PORT" envDefault:"587"`

	AwsRegion    string `env:"AWS_REGION"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey string `env:"AWS_SECRET_KEY"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}

	if config.Secret == "" {
		return nil, fmt.Errorf("SECRET must be set")
	}
	if config.PostgresqlURL == "" {
		return nil, fmt.Errorf("POSTGRESQL_URL must be set")
	}
	if config.PasswordResetValidDuration <= 0 {
		return nil, fmt.Errorf("PASSWORD_RESET_VALID_DURATION must be positive")
	}
	if config.PasswordResetBaseURL == "" {
		return nil, fmt.Errorf("PASSWORD_RESET_BASE_URL must be set")
	}
	if _, err := url.Parse(config.PasswordResetBaseURL); err != nil {
		return nil, fmt.Errorf("invalid PASSWORD_RESET_BASE_URL value: %w", err)
	}

	switch config.EmailBackend {
	case EmailBackendSmtp:
		if config.SmtpHost == "" {
			return nil, fmt.Errorf("SMTP_HOST must be set")
		}
		if config.EmailSenderAddress == "" {
			return nil, fmt.Errorf("EMAIL_SENDER_ADDRESS must be set")
		}
	case EmailBackendSes:
		if config.AwsRegion == "" {
			return nil, fmt.Errorf("AWS_REGION must be set")
		}
		if config.EmailSenderAddress == "" {
			return nil, fmt.Errorf("EMAIL_SENDER_ADDRESS must be set")
		}
	default:
		return nil, fmt.Errorf("invalid EMAIL_BACKEND value: %s", config.EmailBackend)
	}

	return config, nil
}
