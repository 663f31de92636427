// Package config loads the namespace provisioning engine's TOML
// configuration file, mirroring the key table and defaults of the original
// pam_isolate implementation.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where the engine looks for its configuration absent an
// override.
const DefaultPath = "/etc/pam_isolate.toml"

// DefaultUserEnv is the environment marker name used when the config omits
// user_env.
const DefaultUserEnv = "PAM_NETNS_USER"

// DefaultLoopback is the loopback interface name used when net.loopback is
// omitted.
const DefaultLoopback = "lo"

// DefaultLogLevel is used when log_level is omitted.
const DefaultLogLevel = "warn"

// Users lists the usernames the caller should skip provisioning for.
type Users struct {
	Ignore []string `toml:"ignore"`
}

// Mount configures the per-user scratch tmpfs. A nil *Mount on AppConfig
// means the mount subsystem (C3/C4) is skipped entirely.
type Mount struct {
	Tmp  string `toml:"tmp"`
	Size string `toml:"size"`
}

// Net configures the loopback interface name inside the user namespace.
type Net struct {
	Loopback string `toml:"loopback"`
}

// AppConfig is the parsed, defaulted configuration used by the
// provisioning coordinator and its callers.
type AppConfig struct {
	Users    Users                  `toml:"users"`
	LogLevel string                 `toml:"log_level"`
	Mount    *Mount                 `toml:"mount"`
	UserEnv  string                 `toml:"user_env"`
	Net      Net                    `toml:"net"`
	Sysctl   map[string]interface{} `toml:"sysctl"`
}

// Default returns the configuration that applies when no file is present,
// matching the defaults table in the external interfaces section.
func Default() AppConfig {
	return AppConfig{
		LogLevel: DefaultLogLevel,
		UserEnv:  DefaultUserEnv,
		Net:      Net{Loopback: DefaultLoopback},
	}
}

// Load reads and parses the TOML file at path, filling in defaults for any
// key the file omits. A missing file is not an error: the values of
// Default() apply.
func Load(path string) (AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return AppConfig{}, err
	}

	// Decode onto the defaults so omitted keys keep their default value.
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return AppConfig{}, err
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.UserEnv == "" {
		cfg.UserEnv = DefaultUserEnv
	}
	if cfg.Net.Loopback == "" {
		cfg.Net.Loopback = DefaultLoopback
	}
	return cfg, nil
}

// IsIgnored reports whether username appears in users.ignore.
func (c AppConfig) IsIgnored(username string) bool {
	for _, u := range c.Users.Ignore {
		if u == username {
			return true
		}
	}
	return false
}
