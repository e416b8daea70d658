/*
Package config manages TOML config for hsnserve.

	[data]
	path = "SAC_MSTR.csv"
	watch = false
	debounce_ms = 200

	[server]
	max_query_len = 128
	log_requests = false

	[cli]
	default_mode = "code"
	color = true

Missing keys keep their defaults. A file that fails to decode as a whole is
recovered section by section.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/hsnserve/internal/utils"
	"github.com/charmbracelet/log"
)

// CLI modes.
const (
	ModeCode = "code"
	ModeText = "text"
)

// Config holds the entire config structure
type Config struct {
	Data   DataConfig   `toml:"data"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// DataConfig locates the code table.
type DataConfig struct {
	Path       string `toml:"path"`
	Watch      bool   `toml:"watch"`
	DebounceMs int    `toml:"debounce_ms"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxQueryLen int  `toml:"max_query_len"`
	LogRequests bool `toml:"log_requests"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultMode string `toml:"default_mode"`
	Color       bool   `toml:"color"`
}

// Debounce returns the reload debounce as a duration.
func (d DataConfig) Debounce() time.Duration {
	return time.Duration(d.DebounceMs) * time.Millisecond
}

// GetConfigDir returns the config directory with fallback priority:
// 1. platform user config dir
// 2. current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := utils.ConfigDirFor(homeDir)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/hsnserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path:       "SAC_MSTR.csv",
			Watch:      false,
			DebounceMs: 200,
		},
		Server: ServerConfig{
			MaxQueryLen: 128,
			LogRequests: false,
		},
		CLI: CliConfig{
			DefaultMode: ModeCode,
			Color:       true,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.normalize()
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if dataSection, ok := utils.ExtractSection(tempConfig, "data"); ok {
		extractDataConfig(dataSection, &config.Data)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	config.normalize()
	return config, nil
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Data.Path == "" {
		c.Data.Path = def.Data.Path
	}
	if c.Data.DebounceMs <= 0 {
		c.Data.DebounceMs = def.Data.DebounceMs
	}
	if c.Server.MaxQueryLen <= 0 {
		c.Server.MaxQueryLen = def.Server.MaxQueryLen
	}
	if c.CLI.DefaultMode != ModeCode && c.CLI.DefaultMode != ModeText {
		log.Warnf("Unknown cli.default_mode %q, using %q", c.CLI.DefaultMode, def.CLI.DefaultMode)
		c.CLI.DefaultMode = def.CLI.DefaultMode
	}
}

func extractDataConfig(data map[string]any, d *DataConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		d.Path = val
	}
	if val, ok := utils.ExtractBool(data, "watch"); ok {
		d.Watch = val
	}
	if val, ok := utils.ExtractInt64(data, "debounce_ms"); ok {
		d.DebounceMs = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_query_len"); ok {
		server.MaxQueryLen = val
	}
	if val, ok := utils.ExtractBool(data, "log_requests"); ok {
		server.LogRequests = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractString(data, "default_mode"); ok {
		cli.DefaultMode = val
	}
	if val, ok := utils.ExtractBool(data, "color"); ok {
		cli.Color = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the data settings and saves to file. Nil arguments keep
// their current value.
func (c *Config) Update(configPath string, dataPath *string, watch *bool) error {
	if dataPath != nil {
		c.Data.Path = *dataPath
	}
	if watch != nil {
		c.Data.Watch = *watch
	}
	return SaveConfig(c, configPath)
}
