package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml"

	"javaboot/logging"
)

const (
	// EnvConfigPath names the environment variable consulted when --config is absent.
	EnvConfigPath = "JAVABOOT_CONFIG_PATH"

	// DefaultConfigFile is looked up in the working directory. It is optional.
	DefaultConfigFile = "javaboot.toml"
)

// GeneralConfig holds general configuration parameters
type GeneralConfig struct {
	LogLevel     string `toml:"log_level"`
	LogPath      string `toml:"log_path"`
	VendorPrefix string `toml:"vendor_prefix"` // runtimes go to <home>/<vendor_prefix>/<platform folder>
	HomeDir      string `toml:"home_dir"`      // overrides the user home directory
}

// NetworkConfig tunes the download client
type NetworkConfig struct {
	Timeout       string `toml:"timeout"`
	Retries       int    `toml:"retries"`
	RetryCooldown string `toml:"retry_cooldown"`
}

// CertificateEntry is a PEM certificate added to freshly installed runtimes
type CertificateEntry struct {
	Alias string `toml:"alias"`
	Path  string `toml:"path"`
}

// CertificatesConfig configures the runtime trust store
type CertificatesConfig struct {
	CacertsPassword string             `toml:"cacerts_password"`
	CacertsPath     string             `toml:"cacerts_path"` // relative to the runtime root
	Entries         []CertificateEntry `toml:"entries"`
}

// Config represents the main configuration structure
type Config struct {
	General      GeneralConfig      `toml:"general"`
	Network      NetworkConfig      `toml:"network"`
	Certificates CertificatesConfig `toml:"certificates"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel:     "info",
			VendorPrefix: "acdc-java",
		},
		Network: NetworkConfig{
			Timeout:       "30s",
			Retries:       1,
			RetryCooldown: "2s",
		},
		Certificates: CertificatesConfig{
			CacertsPassword: "changeit",
		},
	}
}

// ExpandTilde expands ~ to the user's home directory
func ExpandTilde(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadConfig loads and parses the configuration file
// Priority: cliPath > JAVABOOT_CONFIG_PATH env var > ./javaboot.toml
// Only the last one may be missing, in which case defaults apply.
func LoadConfig(cliPath string) (*Config, error) {
	configPath, explicit := resolvePath(cliPath)

	logging.PreLog("DEBUG", "📂 Loading configuration from: %s", configPath)

	file, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			logging.PreLog("DEBUG", "📂 No %s found, using default configuration", configPath)
			cfg := Default()
			return cfg, cfg.Validate()
		}
		logging.PreLog("ERROR", "❌ Failed to read config file: %v", err)
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(file)
	if err != nil {
		logging.PreLog("ERROR", "❌ Failed to parse config file '%s': %v", configPath, err)
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	logging.PreLog("DEBUG", "🔍 Decoded Config: %+v", *cfg)

	// Apply temporary log level to filter PreLog()
	logging.SetPreLogLevel(cfg.General.LogLevel)

	if err := cfg.Validate(); err != nil {
		logging.PreLog("ERROR", "❌ Configuration validation failed: %v", err)
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logging.PreLog("DEBUG", "✅ Configuration successfully loaded and validated.")
	return cfg, nil
}

func resolvePath(cliPath string) (string, bool) {
	if cliPath != "" {
		return cliPath, true
	}
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		return envPath, true
	}
	return DefaultConfigFile, false
}

// Parse decodes TOML data on top of the defaults. Keys absent from data keep
// their default value. The result is not validated.
func Parse(data []byte) (*Config, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := tree.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	def := Default()
	if cfg.General.LogLevel == "" {
		cfg.General.LogLevel = def.General.LogLevel
	}
	if cfg.General.VendorPrefix == "" {
		cfg.General.VendorPrefix = def.General.VendorPrefix
	}
	if cfg.Network.Timeout == "" {
		cfg.Network.Timeout = def.Network.Timeout
	}
	if cfg.Network.RetryCooldown == "" {
		cfg.Network.RetryCooldown = def.Network.RetryCooldown
	}
	// zero retries is a legitimate setting, so only an absent key falls back
	if !tree.Has("network.retries") {
		cfg.Network.Retries = def.Network.Retries
	}
	if cfg.Certificates.CacertsPassword == "" {
		cfg.Certificates.CacertsPassword = def.Certificates.CacertsPassword
	}
	return &cfg, nil
}

// EnsureDirectoriesExist checks and creates required directories
func EnsureDirectoriesExist(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil, cannot ensure directories")
	}

	if cfg.General.LogPath == "" {
		logging.LogDebug("LogPath is empty. Logs will be written only to stderr.")
		return nil
	}

	logging.LogDebug("📂 Ensuring directory exists: %s", cfg.General.LogPath)
	if err := os.MkdirAll(cfg.General.LogPath, 0755); err != nil {
		logging.LogError("❌ Failed to create directory %s: %v", cfg.General.LogPath, err)
		return fmt.Errorf("failed to create directory %s: %w", cfg.General.LogPath, err)
	}
	return nil
}

// Validate checks the configuration validity and expands ~ in paths
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.General.LogLevel); err != nil {
		return fmt.Errorf("general.log_level: %w", err)
	}

	if c.General.VendorPrefix == "" || strings.ContainsAny(c.General.VendorPrefix, `/\`) || strings.HasPrefix(c.General.VendorPrefix, ".") {
		return fmt.Errorf("general.vendor_prefix must be a plain directory name, got %q", c.General.VendorPrefix)
	}

	var err error
	if c.General.LogPath, err = ExpandTilde(c.General.LogPath); err != nil {
		return fmt.Errorf("failed to expand log_path: %w", err)
	}
	if c.General.HomeDir, err = ExpandTilde(c.General.HomeDir); err != nil {
		return fmt.Errorf("failed to expand home_dir: %w", err)
	}

	if c.Network.Retries < 0 {
		return fmt.Errorf("network.retries must not be negative, got %d", c.Network.Retries)
	}
	if d, err := time.ParseDuration(c.Network.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("network.timeout: invalid duration %q", c.Network.Timeout)
	}
	if d, err := time.ParseDuration(c.Network.RetryCooldown); err != nil || d < 0 {
		return fmt.Errorf("network.retry_cooldown: invalid duration %q", c.Network.RetryCooldown)
	}

	for i, entry := range c.Certificates.Entries {
		if entry.Alias == "" {
			return fmt.Errorf("certificates.entries[%d]: alias must be set", i)
		}
		path, err := ExpandTilde(entry.Path)
		if err != nil {
			return fmt.Errorf("certificates.entries[%d]: %w", i, err)
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("certificate file not found: %s", path)
		}
		c.Certificates.Entries[i].Path = path
	}
	return nil
}

// TimeoutDuration parses network.timeout; zero if it is invalid.
func (n NetworkConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(n.Timeout)
	return d
}

// RetryCooldownDuration parses network.retry_cooldown; zero if it is invalid.
func (n NetworkConfig) RetryCooldownDuration() time.Duration {
	d, _ := time.ParseDuration(n.RetryCooldown)
	return d
}

// Home returns the directory runtimes are installed under.
func (c *Config) Home() (string, error) {
	if c.General.HomeDir != "" {
		return c.General.HomeDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return home, nil
}
