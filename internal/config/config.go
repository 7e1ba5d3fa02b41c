package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// DefaultConfigFile is the settings file looked up in the working directory.
const DefaultConfigFile = ".vprop.yaml"

// DefaultRecordFile is the canonical version record path used when the
// settings file does not override it.
const DefaultRecordFile = "version.json"

// DelegateConfig describes a vendored library that ships its own
// version-rewrite procedure, invoked as an external command.
type DelegateConfig struct {
	Name    string `yaml:"name"`
	Dir     string `yaml:"dir"`
	Command string `yaml:"command"`
}

// Config is the main configuration structure for vprop.
type Config struct {
	// RecordPath is the path to the canonical version record.
	RecordPath string `yaml:"record,omitempty"`

	// Root is the directory tree scanned for manifests. Defaults to ".".
	Root string `yaml:"root,omitempty"`

	// ExcludeDirs extends the default set of pruned directory names.
	ExcludeDirs []string `yaml:"exclude-dirs,omitempty"`

	// PrimaryBranches are the branches whose pushes map to a minor bump.
	PrimaryBranches []string `yaml:"primary-branches,omitempty"`

	// ReleaseBranches are the branches on which a manual release trigger
	// maps to a major bump.
	ReleaseBranches []string `yaml:"release-branches,omitempty"`

	// DocPatterns extends the documentation allowlist used by the
	// skip decision.
	DocPatterns []string `yaml:"doc-patterns,omitempty"`

	// Delegates lists third-party updaters invoked with the old and new
	// version after the engine's own patching.
	Delegates []DelegateConfig `yaml:"delegates,omitempty"`
}

// LoadConfigFn loads the configuration. It is a variable so tests can
// substitute a constructed config.
var LoadConfigFn = loadConfig

func loadConfig() (*Config, error) {
	// Highest priority: ENV variable for the record path
	if envPath := os.Getenv("VPROP_PATH"); envPath != "" {
		cleanPath := filepath.Clean(envPath)
		// Reject relative paths with traversal (use absolute paths instead)
		if strings.Contains(cleanPath, "..") {
			return nil, fmt.Errorf("invalid VPROP_PATH: path traversal not allowed, use absolute path instead")
		}
		return withDefaults(&Config{RecordPath: cleanPath}), nil
	}

	data, err := os.ReadFile(DefaultConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return withDefaults(&Config{}), nil
		}
		return nil, err
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DefaultConfigFile, err)
	}

	return withDefaults(&cfg), nil
}

func withDefaults(cfg *Config) *Config {
	if cfg.RecordPath == "" {
		cfg.RecordPath = DefaultRecordFile
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if len(cfg.PrimaryBranches) == 0 {
		cfg.PrimaryBranches = []string{"main", "master"}
	}
	if len(cfg.ReleaseBranches) == 0 {
		cfg.ReleaseBranches = []string{"release"}
	}
	return cfg
}

// Save writes the configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo writes the configuration to the specified file path.
func (c *Config) SaveTo(configFile string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config for %q: %w", configFile, err)
	}

	if err := os.WriteFile(configFile, data, ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}

// ConfigFilePerm defines secure file permissions for config files
// (owner read/write only).
const ConfigFilePerm os.FileMode = 0o600
