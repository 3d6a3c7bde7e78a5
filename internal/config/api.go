// Package config assembles the API server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	envcfg "databreach-registry/pkg/config"
)

const (
	minJWTSecretLength = 32
	defaultMaxBody     = 1 << 20
)

var weakSecrets = []string{"secret", "password", "test", "admin", "default", "changeme"}

// APIConfig is everything cmd/api needs besides the database settings.
type APIConfig struct {
	Addr            string
	Version         string
	APIKeys         []string
	JWTSecret       string
	AdminUser       string
	AdminPassword   string
	TokenTTL        time.Duration
	WriteRPS        float64
	WriteBurst      int
	TokenRPS        float64
	TokenBurst      int
	CORSOrigins     []string
	TrustedProxies  []string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// LoadAPIConfig reads and validates the API settings.
func LoadAPIConfig() (APIConfig, error) {
	cfg := APIConfig{
		Addr:            envcfg.GetEnvString("HTTP_ADDR", ":8080"),
		Version:         envcfg.GetEnvString("VERSION", "dev"),
		APIKeys:         envcfg.GetEnvStringList("API_KEYS", nil),
		JWTSecret:       envcfg.GetEnvString("JWT_SECRET", ""),
		AdminUser:       envcfg.GetEnvString("ADMIN_USER", ""),
		AdminPassword:   envcfg.GetEnvString("ADMIN_USER_PASSWORD", ""),
		TokenTTL:        envcfg.GetEnvDuration("JWT_TTL", time.Hour),
		WriteRPS:        envcfg.GetEnvFloat("RATELIMIT_WRITE_RPS", 5),
		WriteBurst:      envcfg.GetEnvInt("RATELIMIT_WRITE_BURST", 10),
		TokenRPS:        envcfg.GetEnvFloat("RATELIMIT_TOKEN_RPS", 5.0/60),
		TokenBurst:      envcfg.GetEnvInt("RATELIMIT_TOKEN_BURST", 5),
		CORSOrigins:     envcfg.GetEnvStringList("CORS_ALLOWED_ORIGINS", nil),
		TrustedProxies:  envcfg.GetEnvStringList("TRUSTED_PROXIES", nil),
		MaxBodyBytes:    int64(envcfg.GetEnvInt("HTTP_MAX_BODY_BYTES", defaultMaxBody)),
		ShutdownTimeout: envcfg.GetEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 5*time.Second),
	}
	if err := cfg.Validate(); err != nil {
		return APIConfig{}, err
	}
	return cfg, nil
}

// TokenIssuingEnabled reports whether POST /auth/token can hand out tokens.
func (c APIConfig) TokenIssuingEnabled() bool {
	return c.AdminUser != "" && c.JWTSecret != ""
}

// Validate rejects configurations that would leave writes unprotected or use weak secrets.
func (c APIConfig) Validate() error {
	var errs []error

	if len(c.APIKeys) == 0 && c.JWTSecret == "" {
		errs = append(errs, errors.New("API_KEYS or JWT_SECRET must be set"))
	}
	if c.JWTSecret != "" {
		if len(c.JWTSecret) < minJWTSecretLength {
			errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength))
		}
		for _, weak := range weakSecrets {
			if c.JWTSecret == weak || c.JWTSecret == weak+"123" {
				errs = append(errs, errors.New("JWT_SECRET must not be a common weak value"))
				break
			}
		}
	}
	if c.AdminUser != "" && c.AdminPassword == "" {
		errs = append(errs, errors.New("ADMIN_USER_PASSWORD is required when ADMIN_USER is set"))
	}
	if c.AdminUser != "" && c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required when ADMIN_USER is set"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL must be positive, got %v", c.TokenTTL))
	}
	if c.WriteRPS <= 0 || c.WriteBurst <= 0 {
		errs = append(errs, errors.New("RATELIMIT_WRITE_RPS and RATELIMIT_WRITE_BURST must be positive"))
	}
	if c.TokenRPS <= 0 || c.TokenBurst <= 0 {
		errs = append(errs, errors.New("RATELIMIT_TOKEN_RPS and RATELIMIT_TOKEN_BURST must be positive"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("HTTP_MAX_BODY_BYTES must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %v", c.ShutdownTimeout))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid api config: %w", err)
	}
	return nil
}
