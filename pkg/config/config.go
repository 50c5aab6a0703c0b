/*
Package config manages TOML config for stemserve.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/bastiangx/stemserve/internal/utils"
	"github.com/bastiangx/stemserve/pkg/analysis"
	"github.com/bastiangx/stemserve/pkg/cost"
	"github.com/bastiangx/stemserve/pkg/paradigm"
	"github.com/bastiangx/stemserve/pkg/table"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Cost   CostConfig   `toml:"cost"`
	Engine EngineConfig `toml:"engine"`
	Table  TableConfig  `toml:"table"`
	Server ServerConfig `toml:"server"`
}

// CostConfig holds the cost model coefficients.
type CostConfig struct {
	cost.Weights
	LambdaBits int `toml:"lambda_bits"`
}

// EngineConfig holds analysis options.
type EngineConfig struct {
	Workers   int  `toml:"workers"`
	Normalize bool `toml:"normalize"`
	CacheSize int  `toml:"cache_size"`
}

// TableConfig holds table reader options.
type TableConfig struct {
	Delimiter  string `toml:"delimiter"`
	SkipHeader bool   `toml:"skip_header"`
}

// ServerConfig has request limits for IPC mode.
type ServerConfig struct {
	MaxRows    int `toml:"max_rows"`
	MaxColumns int `toml:"max_columns"`
	MaxWordLen int `toml:"max_word_len"`
	// MaxShortestLen bounds the shortest form of a row. Subsequence
	// extraction visits every subset of that form's letters.
	MaxShortestLen int `toml:"max_shortest_len"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Cost: CostConfig{
			Weights:    cost.DefaultWeights(),
			LambdaBits: paradigm.DefaultLambdaBits,
		},
		Engine: EngineConfig{
			Workers:   0,
			Normalize: true,
			CacheSize: analysis.DefaultCacheSize,
		},
		Table: TableConfig{
			Delimiter:  ",",
			SkipHeader: false,
		},
		Server: ServerConfig{
			MaxRows:        512,
			MaxColumns:     64,
			MaxWordLen:     48,
			MaxShortestLen: 16,
		},
	}
}

// CostWeights returns the cost model weights.
func (c *Config) CostWeights() cost.Weights {
	return c.Cost.Weights
}

// ParadigmOptions returns the scoring options for paradigm construction.
func (c *Config) ParadigmOptions() paradigm.Options {
	return paradigm.Options{
		Weights:    c.CostWeights(),
		LambdaBits: c.Cost.LambdaBits,
	}
}

// AnalysisOptions returns options for an analysis.Analyzer.
func (c *Config) AnalysisOptions() analysis.Options {
	return analysis.Options{
		Paradigm:  c.ParadigmOptions(),
		Workers:   c.Engine.Workers,
		Normalize: c.Engine.Normalize,
		CacheSize: c.Engine.CacheSize,
	}
}

// TableOptions returns options for the table reader.
func (c *Config) TableOptions() table.Options {
	return table.Options{
		Delimiter:  c.Table.DelimiterRune(),
		SkipHeader: c.Table.SkipHeader,
		Normalize:  c.Engine.Normalize,
	}
}

// DelimiterRune decodes the configured delimiter. "tab" and "\t" both
// mean a tab; anything unusable falls back to a comma.
func (t TableConfig) DelimiterRune() rune {
	switch t.Delimiter {
	case "tab", `\t`, "\t":
		return '\t'
	case "":
		return ','
	}
	r, size := utf8.DecodeRuneInString(t.Delimiter)
	if r == utf8.RuneError || size != len(t.Delimiter) || r == '\n' || r == '\r' || r == '"' {
		log.Warnf("Invalid table delimiter %q, using ','", t.Delimiter)
		return ','
	}
	return r
}

// Validate reports settings the engine cannot run with.
func (c *Config) Validate() error {
	if err := c.ParadigmOptions().Validate(); err != nil {
		return err
	}
	if c.Engine.Workers < 0 {
		return fmt.Errorf("engine.workers must not be negative, got %d", c.Engine.Workers)
	}
	if c.Engine.CacheSize < 0 {
		return fmt.Errorf("engine.cache_size must not be negative, got %d", c.Engine.CacheSize)
	}
	if c.Server.MaxRows <= 0 || c.Server.MaxColumns <= 0 || c.Server.MaxWordLen <= 0 || c.Server.MaxShortestLen <= 0 {
		return fmt.Errorf("server limits must be positive, got rows=%d columns=%d word_len=%d shortest_len=%d",
			c.Server.MaxRows, c.Server.MaxColumns, c.Server.MaxWordLen, c.Server.MaxShortestLen)
	}
	return nil
}

// GetConfigDir returns the config directory with fallback priority:
// 1. platform config dir ($XDG_CONFIG_HOME or ~/.config on unix)
// 2. ~/.stemserve, the temp dir or the executable dir if not writable
// 3. ~/Library/Application Support/ (macOS) when no resolver is available
func GetConfigDir() (string, error) {
	path, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	resolver, err := utils.NewPathResolver()
	if err == nil {
		return resolver.GetConfigPath("config.toml")
	}
	log.Errorf("Failed to resolve config paths: %v", err)

	homeDir, err := os.UserHomeDir()
	if err == nil {
		// Not conventional, fallback when the executable cannot be located
		macOSPath := filepath.Join(homeDir, "Library", "Application Support", utils.AppDirName)
		if result := utils.CheckDirStatus(macOSPath); result.Writable {
			return filepath.Join(macOSPath, "config.toml"), nil
		}
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return filepath.Join(execDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/stemserve/config.toml
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

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Files that fail to decode as a whole
// are salvaged key by key; a config that decodes but cannot run is an error.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		log.Debugf("Full decode of %s failed: %v", configPath, err)
		config = tryPartialParse(configPath)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return config, nil
}

// tryPartialParse keeps every recognisable key of a damaged file
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := utils.ExtractSection(tempConfig, "cost"); ok {
		extractCostConfig(section, &config.Cost)
	}
	if section, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(section, &config.Engine)
	}
	if section, ok := utils.ExtractSection(tempConfig, "table"); ok {
		extractTableConfig(section, &config.Table)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	return config
}

// extractCostConfig extracts cost coefficients from a map
func extractCostConfig(data map[string]any, c *CostConfig) {
	fields := map[string]*int{
		"stem_used":      &c.StemUsed,
		"stem_not_used":  &c.StemNotUsed,
		"affix_used":     &c.AffixUsed,
		"affix_not_used": &c.AffixNotUsed,
		"extra":          &c.Extra,
		"lambda_bits":    &c.LambdaBits,
	}
	for key, field := range fields {
		if val, ok := utils.ExtractInt64(data, key); ok {
			*field = val
		}
	}
}

// extractEngineConfig extracts engine configuration from a map
func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		engine.Workers = val
	}
	if val, ok := utils.ExtractBool(data, "normalize"); ok {
		engine.Normalize = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		engine.CacheSize = val
	}
}

// extractTableConfig extracts table reader configuration from a map
func extractTableConfig(data map[string]any, t *TableConfig) {
	if val, ok := utils.ExtractString(data, "delimiter"); ok {
		t.Delimiter = val
	}
	if val, ok := utils.ExtractBool(data, "skip_header"); ok {
		t.SkipHeader = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_rows"); ok {
		server.MaxRows = val
	}
	if val, ok := utils.ExtractInt64(data, "max_columns"); ok {
		server.MaxColumns = val
	}
	if val, ok := utils.ExtractInt64(data, "max_word_len"); ok {
		server.MaxWordLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_shortest_len"); ok {
		server.MaxShortestLen = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
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

// Update changes the engine values and saves to file
func (c *Config) Update(configPath string, workers *int, normalize *bool) error {
	if workers != nil {
		c.Engine.Workers = *workers
	}
	if normalize != nil {
		c.Engine.Normalize = *normalize
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return SaveConfig(c, configPath)
}
