package config

import (
	"encoding/json"
	"os"

	"github.com/BAWimmer/lockbox/internal/flagx"
	"github.com/BAWimmer/lockbox/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so the file can spell intervals as "15m" or as
// integer nanoseconds. Pointer fields distinguish "absent" from zero.
type JsonConfig struct {
	DatabasePath       *string         `json:"database_path"`
	MaxLoginAttempts   *int            `json:"max_login_attempts"`
	LoginLockoutWindow *timex.Duration `json:"login_lockout_window"`
	SessionTTL         *timex.Duration `json:"session_ttl"`
	HardenedCodec      *bool           `json:"hardened_codec"`
}

// parseJson overlays cfg with values loaded from the JSON file named by
// the -c/-config flags. When no file is named, cfg is left untouched.
// Read or unmarshal errors panic; LoadConfig runs before any state
// exists, so there is nothing to clean up.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.MaxLoginAttempts != nil {
		cfg.MaxLoginAttempts = *jc.MaxLoginAttempts
	}
	if jc.LoginLockoutWindow != nil {
		cfg.LoginLockoutWindow = jc.LoginLockoutWindow.Duration
	}
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.HardenedCodec != nil {
		cfg.HardenedCodec = *jc.HardenedCodec
	}
}
