// Package config loads the runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start. DatabaseURL selects
// PostgreSQL when set; otherwise the SQLite file at SQLitePath is used.
type Config struct {
	Addr       string `env:"ADDR,default=:8080"`
	WebDir     string `env:"WEB_DIR,default=web"`
	ReportFile string `env:"REPORT_FILE,default=reports.txt"`

	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH,default=market.db"`

	// CredentialScheme selects how passwords are stored and verified:
	// "plaintext" (historical default) or "bcrypt".
	CredentialScheme string `env:"CREDENTIAL_SCHEME,default=plaintext"`

	SecureCookie bool `env:"SECURE_COOKIE,default=false"`

	OIDC OIDCConfig
}

// OIDCConfig configures the optional SSO login flow. SSO is enabled only
// when all required fields are present.
type OIDCConfig struct {
	Issuer       string `env:"OIDC_ISSUER"`
	ClientID     string `env:"OIDC_CLIENT_ID"`
	ClientSecret string `env:"OIDC_CLIENT_SECRET"`
	RedirectURL  string `env:"OIDC_REDIRECT_URL"`
}

// Enabled reports whether the SSO flow is configured.
func (c OIDCConfig) Enabled() bool {
	return c.Issuer != "" && c.ClientID != "" && c.ClientSecret != "" && c.RedirectURL != ""
}

// Load reads an optional .env file and decodes the configuration from the
// environment.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
