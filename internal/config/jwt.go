package config

import "fmt"

// JWTConfig holds configuration for JWT token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// JWT returns the token configuration for the auth section.
func (a AuthConfig) JWT() (*JWTConfig, error) {
	cfg := &JWTConfig{Secret: a.Secret, ExpirationHours: a.ExpirationHours}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("'server.auth.secret' is required when auth is enabled")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("'server.auth.secret' must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("'server.auth.expiration_hours' must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
