// Package config assembles runtime settings for the lockbox CLI from
// defaults, an optional JSON file, and command-line flags, in that order
// of precedence.
package config

import "time"

// Config holds runtime settings.
//
// The throttle and session values default to the application's historical
// behavior: five attempts per fifteen-minute window, sessions valid for
// twenty-four hours.
type Config struct {
	DatabasePath string

	MaxLoginAttempts   int
	LoginLockoutWindow time.Duration
	SessionTTL         time.Duration

	// HardenedCodec switches the storage transform from the legacy
	// compatibility scheme to argon2id + AES-GCM. Existing records
	// written with the other codec become unreadable.
	HardenedCodec bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "lockbox.db"
	c.MaxLoginAttempts = 5
	c.LoginLockoutWindow = 15 * time.Minute
	c.SessionTTL = 24 * time.Hour
	c.HardenedCodec = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
