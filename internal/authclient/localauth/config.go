package localauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the local backend's secrets and token policy. It is read from
// the environment so secrets stay out of the config file.
type Config struct {
	Secret      string        `env:"ENERNOVA_LOCAL_AUTH_SECRET"       envDefault:"enernova-local-development-secret"`
	Issuer      string        `env:"ENERNOVA_LOCAL_AUTH_ISSUER"       envDefault:"enernova"`
	TokenTTL    time.Duration `env:"ENERNOVA_LOCAL_AUTH_TOKEN_TTL"    envDefault:"24h"`
	DefaultRole string        `env:"ENERNOVA_LOCAL_AUTH_DEFAULT_ROLE" envDefault:"contributor"`
	BcryptCost  int           `env:"ENERNOVA_LOCAL_AUTH_BCRYPT_COST"  envDefault:"10"`
}

// MinSecretLength is the shortest accepted signing secret.
const MinSecretLength = 16

// LoadConfigFromEnv parses and validates the environment configuration.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config for values the backend cannot run with.
func (c Config) Validate() error {
	var errs []error
	if len(c.Secret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("local auth secret must be at least %d bytes", MinSecretLength))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("local auth token ttl must be positive, got %s", c.TokenTTL))
	}
	if c.DefaultRole == "" {
		errs = append(errs, errors.New("local auth default role is required"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("local auth bcrypt cost must be within %d..%d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	return errors.Join(errs...)
}
