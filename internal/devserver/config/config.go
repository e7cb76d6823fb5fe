// Package config holds the configuration of the Trackme development server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Version is the supported config file format version.
const Version = "0.1"

// AuthConfig holds token issuing configuration
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`   // HMAC secret used to sign access tokens
	TokenExpiry string `toml:"token_expiry"` // Lifetime of an access token, e.g. "7d"
}

// GetTokenExpiry returns the token lifetime as time.Duration
func (a *AuthConfig) GetTokenExpiry() (time.Duration, error) {
	return ParseDuration(a.TokenExpiry)
}

// SeedConfig describes the demo account created at startup.
type SeedConfig struct {
	Enabled  bool   `toml:"enabled"`
	Email    string `toml:"email"`
	Name     string `toml:"name"`
	Password string `toml:"password"`
}

// NutritionConfig configures the remote nutrition lookup. Without an API
// key meals are estimated from built-in values.
type NutritionConfig struct {
	AppID  string `toml:"app_id"`
	APIKey string `toml:"api_key"`
	APIURL string `toml:"api_url"`
}

// ConfigParam holds all configuration parameters for the development server
type ConfigParam struct {
	FormatVersion string `toml:"format_version"` // Version of this configuration file format

	ServerPort     string `toml:"server_port"`     // Port for the server
	HandleCORS     bool   `toml:"handle_cors"`     // Whether to handle CORS
	Debug          bool   `toml:"debug"`           // Allow all origins and print routes
	RequestTimeout string `toml:"request_timeout"` // Per request deadline, empty for none
	APIVersion     string `toml:"api_version"`     // Version reported by GET /

	Auth      AuthConfig      `toml:"auth"`
	Seed      SeedConfig      `toml:"seed"`
	Nutrition NutritionConfig `toml:"nutrition"`
}

var cfg = DefaultConfig()

// Config returns the current configuration
func Config() *ConfigParam {
	return cfg
}

// SetConfig replaces the current configuration.
func SetConfig(c *ConfigParam) {
	cfg = c
}

// DefaultConfig returns a configuration suitable for local development.
func DefaultConfig() *ConfigParam {
	return &ConfigParam{
		FormatVersion: Version,
		ServerPort:    "8000",
		HandleCORS:    true,
		APIVersion:    "1.0.0",
		Auth: AuthConfig{
			JWTSecret:   "trackme-development-secret",
			TokenExpiry: "7d",
		},
		Seed: SeedConfig{
			Enabled:  true,
			Email:    "demo@trackme.app",
			Name:     "Sarah",
			Password: "trackme",
		},
		Nutrition: NutritionConfig{
			APIURL: "https://api.nutritionix.com/v1_1",
		},
	}
}

// ParseDuration parses a duration string in the format "<number><unit>" where unit can be:
// - y: years
// - d: days
// - h: hours
// - m: minutes
// - s: seconds
func ParseDuration(input string) (time.Duration, error) {
	if len(input) < 2 {
		return 0, fmt.Errorf("invalid input format")
	}

	unit := input[len(input)-1:]
	valueStr := input[:len(input)-1]
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", err)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative duration: %s", input)
	}

	var duration time.Duration
	switch unit {
	case "d":
		duration = time.Duration(value) * 24 * time.Hour
	case "h":
		duration = time.Duration(value) * time.Hour
	case "m":
		duration = time.Duration(value) * time.Minute
	case "s":
		duration = time.Duration(value) * time.Second
	case "y":
		duration = time.Duration(value) * 365 * 24 * time.Hour
	default:
		return 0, fmt.Errorf("unknown time unit: %s", unit)
	}

	return duration, nil
}

// GetRequestTimeout returns the request deadline, 0 if none is configured.
func (c *ConfigParam) GetRequestTimeout() time.Duration {
	if c.RequestTimeout == "" {
		return 0
	}
	d, err := ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0
	}
	return d
}

// ValidateConfig checks if all required configuration values are present and valid
func ValidateConfig(cfg *ConfigParam) error {
	if err := validateConfigFormatVersion(cfg); err != nil {
		return err
	}
	if err := validateServerConfig(cfg); err != nil {
		return err
	}
	if err := validateAuthConfig(cfg); err != nil {
		return err
	}
	if err := validateSeedConfig(cfg); err != nil {
		return err
	}
	return nil
}

func validateConfigFormatVersion(cfg *ConfigParam) error {
	if cfg.FormatVersion != Version {
		return fmt.Errorf("unsupported config file format version: %s", cfg.FormatVersion)
	}
	return nil
}

func validateServerConfig(cfg *ConfigParam) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("server_port is required")
	}
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return fmt.Errorf("invalid server_port: %s", cfg.ServerPort)
	}
	if cfg.RequestTimeout != "" {
		if _, err := ParseDuration(cfg.RequestTimeout); err != nil {
			return fmt.Errorf("invalid request_timeout: %v", err)
		}
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "1.0.0"
	}
	return nil
}

func validateAuthConfig(cfg *ConfigParam) error {
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if cfg.Auth.TokenExpiry == "" {
		return fmt.Errorf("auth.token_expiry is required")
	}
	if _, err := ParseDuration(cfg.Auth.TokenExpiry); err != nil {
		return fmt.Errorf("invalid auth.token_expiry: %v", err)
	}
	return nil
}

func validateSeedConfig(cfg *ConfigParam) error {
	if !cfg.Seed.Enabled {
		return nil
	}
	if cfg.Seed.Email == "" {
		return fmt.Errorf("seed.email is required when seeding is enabled")
	}
	if cfg.Seed.Password == "" {
		return fmt.Errorf("seed.password is required when seeding is enabled")
	}
	if cfg.Seed.Name == "" {
		cfg.Seed.Name = cfg.Seed.Email
	}
	return nil
}

// LoadConfig loads configuration from a file. Values missing from the file
// keep their defaults.
func LoadConfig(filename string) error {
	if filename == "" {
		return fmt.Errorf("config filename is required")
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	c := DefaultConfig()
	if _, err := toml.Decode(string(content), c); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}

	if err := ValidateConfig(c); err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}

	ApplyEnvOverrides(c)
	cfg = c
	return nil
}

// ApplyEnvOverrides sets credentials found in the environment, which win
// over the config file.
func ApplyEnvOverrides(c *ConfigParam) {
	if key := os.Getenv("NUTRITION_API_KEY"); key != "" {
		c.Nutrition.APIKey = key
	}
	if id := os.Getenv("NUTRITION_APP_ID"); id != "" {
		c.Nutrition.AppID = id
	}
	if secret := os.Getenv("TRACKME_JWT_SECRET"); secret != "" {
		c.Auth.JWTSecret = secret
	}
}
