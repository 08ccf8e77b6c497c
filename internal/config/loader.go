package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".safeurl"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file format. Every field is optional;
// zero values leave the corresponding Config field untouched.
type File struct {
	// Endpoint overrides the classifier predict URL.
	Endpoint string `yaml:"endpoint"`

	// Proxy overrides the SOCKS5 proxy address ("host:port").
	Proxy string `yaml:"proxy"`

	// TimeoutSeconds overrides the classifier call timeout, in seconds.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// BatchSize overrides the concurrent check count.
	BatchSize int `yaml:"batch_size"`

	// Keywords overrides the phrase list searched for in URLs.
	Keywords []string `yaml:"keywords"`

	// CommonTLDs overrides the non-suspicious top-level label list.
	CommonTLDs []string `yaml:"common_tlds"`
}

// LoadConfigFile loads configuration overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error based on whether the path was explicitly specified by
// the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .safeurl in the current directory
// 3. Look for .safeurl in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply merges file overrides into the config. Only fields the file
// actually sets are applied; CLI flags are applied after this, so flags
// win over the file.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}
	if f.Endpoint != "" {
		c.Endpoint = f.Endpoint
	}
	if f.Proxy != "" {
		c.ProxyAddress = f.Proxy
	}
	if f.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(f.TimeoutSeconds) * time.Second
	}
	if f.BatchSize > 0 {
		c.BatchSize = f.BatchSize
	}
	if len(f.Keywords) > 0 {
		c.Keywords = append([]string(nil), f.Keywords...)
	}
	if len(f.CommonTLDs) > 0 {
		c.CommonTLDs = append([]string(nil), f.CommonTLDs...)
	}
}
