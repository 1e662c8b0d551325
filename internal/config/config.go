// Package config loads ambient runtime settings (database path, actor
// identity, collaborator timeouts, report defaults) the way the teacher's
// internal/config package does: a package-level viper.Viper singleton,
// directory-walking discovery of a project config file, and MIGRATE_-
// prefixed environment variable overrides. Per spec.md §6 ("the core itself
// reads no environment variables"), this package is consumed only by
// cmd/migrator — internal/store, internal/progress, internal/toolsurface,
// and internal/collab never import it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var v *viper.Viper

// Initialize sets up the viper configuration singleton. Call once at
// cmd/migrator startup.
func Initialize() error {
	v = viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("config")

	configFileSet := false

	// 1. Walk up from CWD looking for .migration/config.yaml, so commands
	// work from any subdirectory of a project.
	if cwd, err := os.Getwd(); err == nil {
		for dir := cwd; dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
			configPath := filepath.Join(dir, ".migration", "config.yaml")
			if _, statErr := os.Stat(configPath); statErr == nil {
				v.SetConfigFile(configPath)
				configFileSet = true
				break
			}
		}
	}

	// 2. User config directory (~/.config/migrator/config.yaml).
	if !configFileSet {
		if configDir, err := os.UserConfigDir(); err == nil {
			configPath := filepath.Join(configDir, "migrator", "config.yaml")
			if _, statErr := os.Stat(configPath); statErr == nil {
				v.SetConfigFile(configPath)
				configFileSet = true
			}
		}
	}

	v.SetEnvPrefix("MIGRATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("db", "")
	v.SetDefault("actor", "")
	v.SetDefault("lock-timeout", "5s")
	v.SetDefault("report.format", "markdown")
	v.SetDefault("collaborator.timeout", "60s")

	if configFileSet {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	return nil
}

// DBPath resolves the migration-state database file path: the "db" config
// key if set, else an OS-scoped user-data directory (the reference layout
// spec.md §6 describes).
func DBPath() string {
	if path := GetString("db"); path != "" {
		return path
	}
	dataDir, err := os.UserHomeDir()
	if err != nil {
		dataDir = "."
	}
	return filepath.Join(dataDir, ".migration", "migration.db")
}

// Actor resolves the identity recorded against tool-call audit entries:
// flagValue, then the "actor" config key, then the host name.
func Actor(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if actor := GetString("actor"); actor != "" {
		return actor
	}
	if u, err := os.Hostname(); err == nil && u != "" {
		return u
	}
	return "unknown"
}

// LockTimeout bounds how long Open waits to acquire the store's file lock.
func LockTimeout() time.Duration {
	d := GetDuration("lock-timeout")
	if d <= 0 {
		return 5 * time.Second
	}
	return d
}

// CollaboratorTimeout bounds every Browser/Device collaborator call.
func CollaboratorTimeout() time.Duration {
	d := GetDuration("collaborator.timeout")
	if d <= 0 {
		return 60 * time.Second
	}
	return d
}

// ReportFormat resolves the default generate_migration_report format.
func ReportFormat() string {
	f := GetString("report.format")
	if f == "" {
		return "markdown"
	}
	return f
}

func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// Set overrides a configuration value, primarily for tests and for applying
// command-line flags after Initialize.
func Set(key string, value interface{}) {
	if v != nil {
		v.Set(key, value)
	}
}
