package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

// ConfigVersion is the version of the config file format.
const ConfigVersion = "0.1.0"

// ServerURLEnv overrides the server URL of the config file.
const ServerURLEnv = "TRACKME_API_URL"

// DefaultServerURL is used when no server is configured.
const DefaultServerURL = "http://localhost:8000"

// Config is the CLI configuration stored in the config file.
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version"`
	// ServerURL is the base URL of the Trackme server
	ServerURL string `yaml:"server_url,omitempty"`
	// Token is the bearer token of the logged in user
	Token string `yaml:"token,omitempty"`
	// Email of the logged in user
	Email string `yaml:"email,omitempty"`
}

var cfg *Config

// GetDefaultConfigPath returns the default path for the config file
// It uses the OS-specific config directory (e.g., ~/.config/trackme on Linux)
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "trackme", DefaultConfigFile), nil
}

// LoadConfig reads the config file. A missing file yields an empty
// configuration.
func LoadConfig(file string) (*Config, error) {
	yamlStr, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{Version: ConfigVersion}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	var c Config
	if err = yaml.Unmarshal(yamlStr, &c); err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}
	if c.Version == "" {
		c.Version = ConfigVersion
	}
	c.ServerURL = MorphServer(c.ServerURL)
	return &c, nil
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	if cfg == nil {
		cfg = &Config{Version: ConfigVersion}
	}
	return cfg
}

// WriteConfig writes the configuration to file, readable by the owner only.
func (c *Config) WriteConfig(file string) error {
	if file == "" {
		return errors.New("file path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	yamlStr, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("unable to generate configuration: %w", err)
	}

	if err := os.WriteFile(file, yamlStr, os.FileMode(0600)); err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}
	return nil
}

// MorphServer ensures the server URL is properly formatted
// Adds http:// prefix if missing and removes trailing slashes
func MorphServer(server string) string {
	server = strings.TrimSpace(server)
	if server == "" {
		return server
	}
	server = strings.TrimRight(server, "/")
	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "http://" + server
	}
	return server
}

// serverURL resolves the server in order: --server, TRACKME_API_URL, the
// config file, the default.
func serverURL() string {
	if serverFlag != "" {
		return MorphServer(serverFlag)
	}
	if env := os.Getenv(ServerURLEnv); env != "" {
		return MorphServer(env)
	}
	if s := GetConfig().ServerURL; s != "" {
		return s
	}
	return DefaultServerURL
}

// loadDotEnv loads .env from the working directory if there is one.
// Variables already set in the environment win.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	_ = godotenv.Load(filepath.Join(cwd, ".env")) // no error if .env doesn't exist
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  `Manage CLI configuration settings like the server URL and the stored token.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	setServerCmd := &cobra.Command{
		Use:   "set-server URL",
		Short: "Set the server URL",
		Long: `Set the server URL. The stored token is cleared since it belongs to the old server.

Examples:
  trackme config set-server localhost:8000
  trackme config set-server https://api.trackme.app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := GetConfig()
			c.ServerURL = MorphServer(args[0])
			c.Token = ""
			c.Email = ""
			if err := c.WriteConfig(configFile); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			if jsonOutput {
				return printValue(cmd, map[string]string{
					"server":      c.ServerURL,
					"config_file": configFile,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Server configured: %s\n", c.ServerURL)
			fmt.Fprintf(out, "Config file: %s\n", configFile)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the configuration in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := GetConfig()
			token := "not set"
			if c.Token != "" {
				token = "set"
			}
			return printValue(cmd, map[string]string{
				"config_file": configFile,
				"server_url":  serverURL(),
				"email":       c.Email,
				"token":       token,
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clearToken(cmd, "Token cleared")
		},
	}

	configCmd.AddCommand(setServerCmd, showCmd, clearCmd)
	return configCmd
}

// clearToken removes the token from the config file and reports msg.
func clearToken(cmd *cobra.Command, msg string) error {
	c := GetConfig()
	c.Token = ""
	c.Email = ""
	if err := c.WriteConfig(configFile); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return printDone(cmd, msg, nil)
}
