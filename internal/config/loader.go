package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPlatformer loads the platformer configuration.
// Search order: customPath -> ~/.platformer/configs/platformer.yaml -> ./configs/platformer.yaml -> embedded default.
// Files only need to list the values they change; everything else keeps its default.
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultPlatformerConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg := DefaultPlatformerConfig()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultPlatformerConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", "platformer.yaml")); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultPlatformerConfig()
	if err := yaml.Unmarshal(defaultPlatformerYAML, &cfg); err != nil {
		return DefaultPlatformerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file; unreadable or malformed files are skipped.
func tryLoad(path string) (PlatformerConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PlatformerConfig{}, false
	}
	cfg := DefaultPlatformerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PlatformerConfig{}, false
	}
	return cfg, true
}

// UserConfigPath returns ~/.platformer/configs/platformer.yaml, or empty if
// home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "configs", "platformer.yaml")
}

// ApplyPlatformerPreset modifies the config based on a difficulty preset.
// Normal (and the empty preset) leaves the loaded values untouched.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.Lives = 5
		cfg.Session.Time = 500
		cfg.Enemies.WalkSpeed = 0.4
		cfg.Player.DamageGrace = 180
	case DifficultyHard:
		cfg.Session.Lives = 2
		cfg.Session.Time = 300
		cfg.Enemies.WalkSpeed = 0.7
		cfg.Enemies.ShellIdleTicks = 200
		cfg.Enemies.PiranhaSafeDistance = 16
	}
}
