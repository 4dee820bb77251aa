package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the optional .rill.yaml a host project may place alongside
// its scripts: the per-host-call timeout, a loop iteration limit (parsed
// from the file but not applied by `rill run`), the configured
// extensions, and the auto-exception regex patterns. Grounded on funvibe-funxy's internal/ext/config.go
// YAML-driven config shape.
type Config struct {
	TimeoutMS             int               `yaml:"timeout_ms,omitempty"`
	IterationLimit        int               `yaml:"iteration_limit,omitempty"`
	Extensions            []ExtensionConfig `yaml:"extensions,omitempty"`
	AutoExceptionPatterns []string          `yaml:"auto_exception_patterns,omitempty"`
}

// ExtensionConfig declares one extension to mount: its kind (kvsqlite,
// mcp, or chatcompletion), the namespace it mounts under, and
// kind-specific options (a SQLite path, an MCP server command, an LLM
// base URL/API key/model).
type ExtensionConfig struct {
	Kind      string            `yaml:"kind"`
	Namespace string            `yaml:"namespace"`
	Options   map[string]string `yaml:"options,omitempty"`
}

// Timeout returns the configured timeout as a time.Duration, zero if
// unset.
func (c *Config) Timeout() time.Duration {
	if c == nil || c.TimeoutMS <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// LoadConfig reads and parses a .rill.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// FindConfig searches for .rill.yaml starting from dir and walking up
// through parent directories, the same upward-search go-dws-adjacent
// tooling uses for funxy.yaml.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ".rill.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// resolveConfig loads the config from --config, or from an upward
// search of the cwd if --config was not given. A missing config is not
// an error: the CLI runs with built-in defaults.
func resolveConfig() (*Config, error) {
	path := configPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return &Config{}, nil
		}
		found, err := FindConfig(cwd)
		if err != nil || found == "" {
			return &Config{}, nil
		}
		path = found
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
