// Package config loads server-wide configuration from YAML.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hollowfall/delve/internal/logger"
)

// ServerConfig holds server-wide configuration settings.
type ServerConfig struct {
	// ListenAddr is the address the websocket server binds to.
	ListenAddr string `yaml:"listen_addr"`

	// DataDir is where the YAML catalogs live.
	DataDir string `yaml:"data_dir"`

	Database  DatabaseConfig  `yaml:"database"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Engine    EngineConfig    `yaml:"engine"`
	Logging   logger.Config   `yaml:"logging"`
}

// DatabaseConfig selects the persistence backend.
type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	// DSN is a file path for sqlite, a connection string for postgres.
	DSN string `yaml:"dsn"`
}

// WebSocketConfig holds WebSocket-specific settings.
type WebSocketConfig struct {
	// AllowedOrigins is a list of origins allowed to connect. Empty list
	// enforces same-origin policy; "*" allows all.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// EngineConfig holds combat engine tuning.
type EngineConfig struct {
	// RespawnWindowSeconds is how long a cleared room stays empty before it
	// may respawn.
	RespawnWindowSeconds int `yaml:"respawn_window_seconds"`

	// LockTTLMillis bounds how long one action may hold a room's lease.
	LockTTLMillis int `yaml:"lock_ttl_millis"`

	// LockAttempts and LockBackoffMillis bound lease acquisition retries.
	LockAttempts      int `yaml:"lock_attempts"`
	LockBackoffMillis int `yaml:"lock_backoff_millis"`
}

// DefaultConfig returns a ServerConfig with working defaults.
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		ListenAddr: ":4443",
		DataDir:    "data",
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "data/delve.db",
		},
		WebSocket: WebSocketConfig{
			AllowedOrigins: []string{}, // Same-origin only by default
			MaxMessageSize: 4096,
		},
		Engine: EngineConfig{
			RespawnWindowSeconds: 90,
			LockTTLMillis:        2000,
			LockAttempts:         5,
			LockBackoffMillis:    50,
		},
		Logging: logger.DefaultConfig(),
	}
}

// LoadConfig loads server configuration from a YAML file. A missing file
// yields the defaults; a malformed one is an error.
func LoadConfig(path string) (*ServerConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}
	return config, nil
}

// IsOriginAllowed checks if the given origin may connect. Returns true when
// AllowedOrigins contains "*" or the exact origin, or when the list is empty
// and the origin matches the request host (same-origin).
func (c *WebSocketConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// isSameOrigin checks if the origin matches the request host.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // No origin header means a non-browser client
	}
	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")
	return originHost == requestHost
}
