package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/tacogips/genstep/internal/debug"
)

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if the file
	// doesn't exist or path is empty.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements the Loader interface for file-based configuration loading.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from path. The format follows the extension:
// .toml, .yaml/.yml, anything else is JSON. Missing fields take defaults.
func (l *FileLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid configuration syntax", err)
	}

	mergeConfig(&cfg, DefaultConfig())
	debug.Debug("[config] loaded %s", path)
	return &cfg, nil
}

// LoadOrDefault loads configuration or returns defaults if the file doesn't exist.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := l.Load(path)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) && cfgErr.Type == ConfigNotFound {
			debug.Debug("[config] %s not found, using defaults", path)
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	return Validate(config)
}

// Discover returns the configuration file to use for a run in dir: the
// first project file present, else the per-user file if present, else "".
func Discover(dir string) string {
	for _, name := range ProjectFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	if path := DefaultConfigPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ApplyEnv fills OutDir from OUT_DIR when set.
func ApplyEnv(cfg *Config) {
	if dir := os.Getenv(OutDirEnv); dir != "" {
		cfg.OutDir = dir
	}
}

// mergeConfig fills zero-valued fields of cfg from defaults.
func mergeConfig(cfg, defaults *Config) {
	if cfg.Source == "" {
		cfg.Source = defaults.Source
	}
	if cfg.FileName == "" {
		cfg.FileName = defaults.FileName
	}
	if cfg.Expand.Engine == "" {
		cfg.Expand.Engine = defaults.Expand.Engine
	}
	if cfg.Expand.MaxIncludeDepth == 0 {
		cfg.Expand.MaxIncludeDepth = defaults.Expand.MaxIncludeDepth
	}
}
