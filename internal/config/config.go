// Package config handles runtime settings for the user API: defaults
// first, then environment overrides.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime settings for the user API server.
//
// Fields:
//   - HTTPAddr: bind address for the HTTP endpoint.
//   - SigningKey: HMAC secret for signing JWTs. Do not use the default in prod.
//   - SigningMethod: JWT signing algorithm name (HS256/HS384/HS512).
//   - AccessTokenTTL / RefreshTokenTTL: token lifetimes.
//   - CookieName: cookie carrying the access token.
//   - StoreLatency: optional per-operation delay emulating storage I/O.
//   - UpstreamURL: source for the JSON passthrough endpoint.
type Config struct {
	HTTPAddr        string
	SigningKey      string
	SigningMethod   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CookieName      string
	StoreLatency    time.Duration
	UpstreamURL     string
}

// LoadDefaults populates Config with development defaults.
// NOTE: The signing key is insecure for production and must be overridden.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8000"
	c.SigningKey = "secretKey"
	c.SigningMethod = "HS256"
	c.AccessTokenTTL = 15 * time.Minute
	c.RefreshTokenTTL = 30 * 24 * time.Hour
	c.CookieName = "access-token"
	c.StoreLatency = 0
	c.UpstreamURL = "https://jsonplaceholder.typicode.com/posts"
}

// LoadConfig builds a Config by applying defaults and then overlaying
// values from the environment.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.parseEnv()
	return cfg
}

func (c *Config) parseEnv() {
	if v, ok := os.LookupEnv("HTTP_ADDR"); ok {
		c.HTTPAddr = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		c.SigningKey = v
	}
	if v, ok := os.LookupEnv("ALGORITHM"); ok {
		c.SigningMethod = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_EXPIRE_MINUTES"); ok {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			c.AccessTokenTTL = time.Duration(minutes) * time.Minute
		}
	}
	if v, ok := os.LookupEnv("REFRESH_TOKEN_EXPIRE_DAYS"); ok {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			c.RefreshTokenTTL = time.Duration(days) * 24 * time.Hour
		}
	}
	if v, ok := os.LookupEnv("COOKIE_NAME"); ok {
		c.CookieName = v
	}
	if v, ok := os.LookupEnv("STORE_LATENCY"); ok {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			c.StoreLatency = d
		}
	}
	if v, ok := os.LookupEnv("UPSTREAM_URL"); ok {
		c.UpstreamURL = v
	}
}

// GetSigningKey returns the shared HMAC secret.
func (c *Config) GetSigningKey() string { return c.SigningKey }

// GetSigningMethod returns the JWT signing algorithm name.
func (c *Config) GetSigningMethod() string { return c.SigningMethod }

// GetAccessTokenTTL returns the access token lifetime.
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }

// GetRefreshTokenTTL returns the refresh token lifetime.
func (c *Config) GetRefreshTokenTTL() time.Duration { return c.RefreshTokenTTL }

// GetCookieName returns the access token cookie name.
func (c *Config) GetCookieName() string { return c.CookieName }
