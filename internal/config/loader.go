package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched for in config directories.
const ConfigFile = "pairs.yaml"

// LoadPairs loads the game configuration.
// Search order: customPath -> ~/.pairs/configs/pairs.yaml -> ./configs/pairs.yaml -> embedded default.
// Files are decoded on top of the defaults, so a partial file only overrides what it names.
func LoadPairs(customPath string) (PairsConfig, error) {
	cfg := embeddedDefaults()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := cfg
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				return candidate, candidate.Validate()
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		candidate := cfg
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, candidate.Validate()
		}
	}

	return cfg, nil
}

// embeddedDefaults parses the embedded YAML, falling back to the hardcoded defaults.
func embeddedDefaults() PairsConfig {
	var cfg PairsConfig
	if err := yaml.Unmarshal(defaultPairsYAML, &cfg); err != nil {
		return DefaultPairsConfig()
	}
	if cfg.Validate() != nil {
		return DefaultPairsConfig()
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pairs", "configs", filename)
}
