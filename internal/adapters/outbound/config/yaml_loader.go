package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pycoding/pycoding/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file read from the project root.
const FileName = ".pycoding.yaml"

// Environment variables that override values from FileName.
const (
	EnvVenv      = "PYCODING_VENV"
	EnvLinter    = "PYCODING_LINTER"
	EnvFormatter = "PYCODING_FORMATTER"
	EnvLineWidth = "PYCODING_LINE_WIDTH"
)

// YAMLLoader implements domain.ConfigLoader by reading .pycoding.yaml.
type YAMLLoader struct {
	getenv func(string) string
}

// New creates a YAMLLoader that reads overrides from the process environment.
func New() *YAMLLoader { return &YAMLLoader{getenv: os.Getenv} }

// Load reads .pycoding.yaml from projectPath and applies PYCODING_* overrides.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	cfg, err := l.readFile(projectPath)
	if err != nil {
		return domain.ProjectConfig{}, err
	}

	overridden, err := l.applyEnv(cfg)
	if err != nil {
		return domain.ProjectConfig{}, err
	}
	if err := overridden.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid PYCODING_* override: %w", err)
	}
	return overridden, nil
}

func (l *YAMLLoader) readFile(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Validate before overrides so errors point at the file.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

func (l *YAMLLoader) applyEnv(cfg domain.ProjectConfig) (domain.ProjectConfig, error) {
	if v := strings.TrimSpace(l.getenv(EnvVenv)); v != "" {
		cfg.VenvName = v
	}
	if v := strings.TrimSpace(l.getenv(EnvLinter)); v != "" {
		cfg.Linter = v
	}
	if v := strings.TrimSpace(l.getenv(EnvFormatter)); v != "" {
		cfg.Formatter = v
	}
	if v := strings.TrimSpace(l.getenv(EnvLineWidth)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", EnvLineWidth, err)
		}
		cfg.LineWidth = n
	}
	return cfg, nil
}
