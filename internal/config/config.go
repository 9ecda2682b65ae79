package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/psommers/rolegate/internal/auth"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Config holds the configuration for the rolegate server.
type Config struct {
	// Listen is the address the rolegate server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// SessionKey is the key used to sign session cookies.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionName is the name of the session cookie.
	SessionName string `yaml:"session_name" mapstructure:"session_name"`
	// SessionMaxAge is the maximum age of a session cookie in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// SecureCookies marks the session cookie as HTTPS only.
	SecureCookies bool `yaml:"secure_cookies" mapstructure:"secure_cookies"`
	// Users is the static list of accounts that may sign in.
	Users []UserConfig `yaml:"users" mapstructure:"users"`
}

// UserConfig describes a single account.
type UserConfig struct {
	// Username is the unique login name.
	Username string `yaml:"username" mapstructure:"username"`
	// Password is compared verbatim against the submitted password.
	Password string `yaml:"password" mapstructure:"password"`
	// Role is one of auth.Roles.
	Role string `yaml:"role" mapstructure:"role"`
}

// DefaultUsers returns the demo accounts used when no users are configured.
func DefaultUsers() []UserConfig {
	return []UserConfig{
		{Username: "admin", Password: "admin123", Role: auth.RoleAdmin.String()},
		{Username: "user", Password: "user123", Role: auth.RoleUser.String()},
	}
}

// AuthUsers converts the configured users into credential store entries.
func (c *Config) AuthUsers() []auth.User {
	return lo.Map(c.Users, func(u UserConfig, _ int) auth.User {
		return auth.User{
			Username: u.Username,
			Password: u.Password,
			Role:     auth.Role(u.Role),
		}
	})
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// A missing config file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("ROLEGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.rolegate")
		v.AddConfigPath("/etc/rolegate")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with ROLEGATE_ prefix will override config file values")
	}

	if err := applyFallbacks(&c); err != nil {
		return nil, err
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:5000")
	v.SetDefault("session_key", "")
	v.SetDefault("session_name", "rolegate_session")
	v.SetDefault("session_max_age", 3600)
	v.SetDefault("secure_cookies", false)
}

// applyFallbacks fills in values that cannot be expressed as static viper defaults.
func applyFallbacks(c *Config) error {
	if len(c.Users) == 0 {
		log.Warn("No users configured, falling back to demo accounts")
		c.Users = DefaultUsers()
	}

	if c.SessionKey == "" {
		key, err := GenerateSessionKey()
		if err != nil {
			return fmt.Errorf("failed to generate session key: %w", err)
		}
		log.Warn("No session key configured, using a random key; sessions will not survive a restart")
		c.SessionKey = key
	}

	return nil
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing rolegate config")
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}

	if c.SessionKey == "" {
		return fmt.Errorf("session key is required")
	}

	if c.SessionName == "" {
		return fmt.Errorf("session name is required")
	}

	if c.SessionMaxAge < 0 {
		return fmt.Errorf("session max age must not be negative")
	}

	if err := auth.ValidateUsers(c.AuthUsers()); err != nil {
		return fmt.Errorf("invalid users: %w", err)
	}

	return nil
}

// GenerateSessionKey returns a random 32 byte key encoded as hex.
func GenerateSessionKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
