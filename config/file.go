package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadFile overlays the settings found in path onto cfg. Fields absent from the
// file keep the value cfg already holds, so environment defaults survive.
// The format follows the file extension: .json, .toml, anything else is yaml.
func LoadFile(path string, cfg any) error {
	if cfg == nil {
		return errors.New("config target is nil")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return nil
}

// Load reads the environment and then applies the optional file at path on top.
func Load[T any](path string) (T, error) {
	cfg, err := FromEnv[T]()
	if err != nil {
		return cfg, err
	}
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if err = LoadFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
