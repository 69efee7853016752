package card

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML card and resolves it against the built-in defaults.
func Parse(data []byte) (Config, error) {
	var user UserConfig
	if err := yaml.Unmarshal(data, &user); err != nil {
		return Config{}, fmt.Errorf("decode card: %w", err)
	}
	return Resolve(Defaults(), user)
}

// LoadFile reads and resolves a YAML card file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read card: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
