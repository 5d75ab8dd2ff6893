package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source names where a configuration was loaded from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// LoadLumines loads Lumines configuration.
// Search order: customPath -> ~/.lumines/configs/lumines.yaml -> ./configs/lumines.yaml -> embedded default
func LoadLumines(customPath string) (LuminesConfig, error) {
	cfg, _, err := LoadLuminesFrom(customPath)
	return cfg, err
}

// LoadLuminesFrom is LoadLumines that also reports which source won.
// Files that fail to parse or validate are skipped, except an explicit
// customPath, which is an error.
func LoadLuminesFrom(customPath string) (LuminesConfig, Source, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readFile(customPath)
		if err != nil {
			return cfg, SourceCustom, err
		}
		return cfg, SourceCustom, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("lumines.yaml"); userCfgPath != "" {
		if cfg, err := readFile(userCfgPath); err == nil {
			return cfg, SourceUser, nil
		}
	}

	// Try local configs directory
	if cfg, err := readFile(filepath.Join("configs", "lumines.yaml")); err == nil {
		return cfg, SourceLocal, nil
	}

	// Use embedded default YAML
	cfg, err := parse(defaultLuminesYAML, "embedded default")
	if err != nil {
		return DefaultLuminesConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

func readFile(path string) (LuminesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LuminesConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	return parse(data, path)
}

// parse decodes YAML over the hardcoded defaults, so a file may set only
// the keys it changes, and validates the result.
func parse(data []byte, name string) (LuminesConfig, error) {
	cfg := DefaultLuminesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg LuminesConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lumines", "configs", filename)
}

// ApplyLuminesPreset modifies the config based on a difficulty preset.
func ApplyLuminesPreset(cfg *LuminesConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
