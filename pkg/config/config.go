/*
Package config manages the TOML config for trielab.

Defaults come first: a missing file is created with DefaultConfig, and a file that
fails to decode is recovered section by section so one bad key does not discard the
rest.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/trielab/internal/utils"
	"github.com/bastiangx/trielab/pkg/engine"
	"github.com/bastiangx/trielab/pkg/fuzzy"
	"github.com/charmbracelet/log"
)

const appDir = "trielab"

// Config holds the entire config structure
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Suggest SuggestConfig `toml:"suggest"`
	Fuzzy   FuzzyConfig   `toml:"fuzzy"`
	Genome  GenomeConfig  `toml:"genome"`
	Censor  CensorConfig  `toml:"censor"`
	CLI     CliConfig     `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit"`
	MinPrefix    int  `toml:"min_prefix"`
	MaxPrefix    int  `toml:"max_prefix"`
	EnableFilter bool `toml:"enable_filter"`
}

// SuggestConfig controls ranking and the prefix hot cache.
type SuggestConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	CacheSize    int  `toml:"cache_size"`
	CaseFold     bool `toml:"case_fold"`
}

// FuzzyConfig holds the correction alphabet.
type FuzzyConfig struct {
	Alphabet string `toml:"alphabet"`
}

// GenomeConfig holds the k-mer window.
type GenomeConfig struct {
	K int `toml:"k"`
}

// CensorConfig holds the redaction placeholder; only its first rune is used.
type CensorConfig struct {
	Placeholder string `toml:"placeholder"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			MinPrefix:    1,
			MaxPrefix:    60,
			EnableFilter: true,
		},
		Suggest: SuggestConfig{
			DefaultLimit: 10,
			CacheSize:    256,
			CaseFold:     true,
		},
		Fuzzy: FuzzyConfig{
			Alphabet: fuzzy.DefaultAlphabet,
		},
		Genome: GenomeConfig{
			K: 6,
		},
		Censor: CensorConfig{
			Placeholder: "*",
		},
		CLI: CliConfig{
			DefaultLimit:    24,
			DefaultMinLen:   1,
			DefaultMaxLen:   24,
			DefaultNoFilter: false,
		},
	}
}

// EngineOptions maps the config onto engine construction options.
func (c *Config) EngineOptions() engine.Options {
	opts := engine.DefaultOptions()
	if c.Fuzzy.Alphabet != "" {
		opts.Alphabet = c.Fuzzy.Alphabet
	}
	if c.Suggest.CacheSize >= 0 {
		opts.CacheSize = c.Suggest.CacheSize
	}
	opts.CaseFold = c.Suggest.CaseFold
	if c.Genome.K > 0 {
		opts.K = c.Genome.K
	}
	if r := []rune(c.Censor.Placeholder); len(r) > 0 {
		opts.Placeholder = r[0]
	}
	return opts
}

// Validate reports settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.MinPrefix < 0 || c.Server.MaxPrefix < c.Server.MinPrefix {
		return fmt.Errorf("server prefix bounds [%d, %d] are invalid", c.Server.MinPrefix, c.Server.MaxPrefix)
	}
	if c.Server.MaxLimit < 1 {
		return fmt.Errorf("server max_limit must be positive, got %d", c.Server.MaxLimit)
	}
	if c.Genome.K < 1 {
		return fmt.Errorf("genome k must be positive, got %d", c.Genome.K)
	}
	return nil
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/trielab
// 2. ~/Library/Application Support/trielab (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", appDir)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", appDir)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
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
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/trielab/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
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

// LoadConfig loads from a TOML file, falling back to per-section recovery.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every section that decodes and defaults the rest.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "suggest"); ok {
		extractSuggestConfig(section, &config.Suggest)
	}
	if section, ok := utils.ExtractSection(tempConfig, "fuzzy"); ok {
		if val, ok := utils.ExtractString(section, "alphabet"); ok {
			config.Fuzzy.Alphabet = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "genome"); ok {
		if val, ok := utils.ExtractInt64(section, "k"); ok {
			config.Genome.K = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "censor"); ok {
		if val, ok := utils.ExtractString(section, "placeholder"); ok {
			config.Censor.Placeholder = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
}

func extractSuggestConfig(data map[string]any, s *SuggestConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		s.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		s.CacheSize = val
	}
	if val, ok := utils.ExtractBool(data, "case_fold"); ok {
		s.CaseFold = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := utils.ExtractInt64(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
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

// Update changes the server values and saves to file
func (c *Config) Update(configPath string, maxLimit, minPrefix, maxPrefix *int, enableFilter *bool) error {
	server := &c.Server
	if maxLimit != nil {
		server.MaxLimit = *maxLimit
	}
	if minPrefix != nil {
		server.MinPrefix = *minPrefix
	}
	if maxPrefix != nil {
		server.MaxPrefix = *maxPrefix
	}
	if enableFilter != nil {
		server.EnableFilter = *enableFilter
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return SaveConfig(c, configPath)
}
