package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"hzcli/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig []byte

// Load reads the configuration at path, or the first existing default
// location when path is empty, then normalizes and validates it. A missing
// file is not an error: defaults are returned with exists=false alongside the
// path that would have been read.
func Load(path string) (*Config, string, bool, error) {
	resolved, exists, err := locate(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// locate resolves an explicit path as-is. Without one it tries the user
// config file, then hzcli.toml in the working directory, and reports the user
// config path when neither exists.
func locate(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := fileutil.Exists(expanded)
		if err != nil {
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, exists, nil
	}

	userPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{userPath, projectPath} {
		if ok, _ := fileutil.Exists(candidate); ok {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

// DefaultConfigPath returns the absolute path of ~/.config/hzcli/config.toml.
func DefaultConfigPath() (string, error) {
	return ExpandPath(defaultConfigPath)
}

// ExpandPath resolves a leading "~" against the home directory and returns an
// absolute, cleaned path. The empty string is returned unchanged.
func ExpandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") || strings.HasPrefix(value, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, value[1:])
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return abs, nil
}

// ErrSampleExists is returned by WriteSample when the target already exists
// and overwrite was not requested.
var ErrSampleExists = errors.New("config file already exists")

// WriteSample writes the annotated sample configuration to path, creating
// parent directories. An existing file is only replaced when overwrite is set.
func WriteSample(path string, overwrite bool) error {
	if !overwrite {
		exists, err := fileutil.Exists(path)
		if err != nil {
			return fmt.Errorf("check config path: %w", err)
		}
		if exists {
			return fmt.Errorf("%w at %s", ErrSampleExists, path)
		}
	}
	if err := fileutil.WriteFileAtomic(path, sampleConfig, 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// CreateSample writes the sample configuration to path, replacing any
// existing file.
func CreateSample(path string) error {
	return WriteSample(path, true)
}
