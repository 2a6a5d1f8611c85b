package config

import (
	"fmt"
	"log/slog"
	"strings"

	"ownable/crypto"
	"ownable/storage"
)

// Network returns the configured LTO network.
func (c *Config) Network() (crypto.NetworkID, error) {
	return crypto.ParseNetworkID(c.NetworkID)
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log: %w", err)
	}
	return level, nil
}

func (c *Config) Validate() error {
	if _, err := c.Network(); err != nil {
		return fmt.Errorf("NetworkID: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.ArchiveBackend)) {
	case storage.BackendLevelDB, storage.BackendBolt:
	default:
		return fmt.Errorf("ArchiveBackend: unsupported backend %q", c.ArchiveBackend)
	}
	return nil
}
