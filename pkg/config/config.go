/*
Package config manages TOML config for WordSolve services.

The file lives in the user config dir as wordsolve.toml and is created with
defaults on first run:

	[server]
	min_letters = 4
	max_letters = 7
	enable_filter = true
	reload_every = 100
	metrics_addr = ""

	[dict]
	path = "sorted_uniques.json"
	format = ""

	[cli]
	default_no_filter = false
	show_timing = true
	history_file = ""

A file that fails to decode is salvaged section by section; anything still
missing falls back to the defaults.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/bastiangx/wordsolve/pkg/letters"
	"github.com/charmbracelet/log"
)

// FileName is the default config file name.
const FileName = "wordsolve.toml"

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MinLetters   int    `toml:"min_letters"`
	MaxLetters   int    `toml:"max_letters"`
	EnableFilter bool   `toml:"enable_filter"`
	ReloadEvery  int    `toml:"reload_every"`
	MetricsAddr  string `toml:"metrics_addr"`
}

// DictConfig holds dictionary index options.
type DictConfig struct {
	Path   string `toml:"path"`
	Format string `toml:"format"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultNoFilter bool   `toml:"default_no_filter"`
	ShowTiming      bool   `toml:"show_timing"`
	HistoryFile     string `toml:"history_file"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MinLetters:   4,
			MaxLetters:   letters.MaxSignature,
			EnableFilter: true,
			ReloadEvery:  100,
		},
		Dict: DictConfig{
			Path: "sorted_uniques.json",
		},
		CLI: CliConfig{
			ShowTiming: true,
		},
	}
}

// Sanitize clamps values that would put the solver outside its supported range.
func (c *Config) Sanitize() {
	s := &c.Server
	if s.MaxLetters < 1 || s.MaxLetters > letters.MaxSignature {
		log.Warnf("max_letters=%d out of range [1, %d], using %d", s.MaxLetters, letters.MaxSignature, letters.MaxSignature)
		s.MaxLetters = letters.MaxSignature
	}
	if s.MinLetters < 1 {
		s.MinLetters = 1
	}
	if s.MinLetters > s.MaxLetters {
		log.Warnf("min_letters=%d above max_letters=%d, clamping", s.MinLetters, s.MaxLetters)
		s.MinLetters = s.MaxLetters
	}
	if s.ReloadEvery < 0 {
		s.ReloadEvery = 0
	}
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. defaultPath (created with defaults if missing)
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath, defaultPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	if defaultPath == "" {
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

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// default values.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.Sanitize()
	return config, nil
}

// tryPartialParse salvages whichever sections still decode
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	config.Sanitize()
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt(data, "min_letters"); ok {
		server.MinLetters = val
	}
	if val, ok := utils.ExtractInt(data, "max_letters"); ok {
		server.MaxLetters = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
	if val, ok := utils.ExtractInt(data, "reload_every"); ok {
		server.ReloadEvery = val
	}
	if val, ok := utils.ExtractString(data, "metrics_addr"); ok {
		server.MetricsAddr = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractString(data, "format"); ok {
		dict.Format = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
	if val, ok := utils.ExtractBool(data, "show_timing"); ok {
		cli.ShowTiming = val
	}
	if val, ok := utils.ExtractString(data, "history_file"); ok {
		cli.HistoryFile = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the server values that are non-nil and saves to file.
// An empty configPath only updates the in-memory copy.
func (c *Config) Update(configPath string, minLetters, maxLetters *int, enableFilter *bool) error {
	server := &c.Server
	if minLetters != nil {
		server.MinLetters = *minLetters
	}
	if maxLetters != nil {
		server.MaxLetters = *maxLetters
	}
	if enableFilter != nil {
		server.EnableFilter = *enableFilter
	}
	c.Sanitize()
	if configPath == "" {
		return nil
	}
	return SaveConfig(c, configPath)
}
