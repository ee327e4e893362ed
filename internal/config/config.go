// Package config handles the configuration directory, the optional
// config.yaml and .env files, and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional YAML settings file.
	ConfigFile = "config.yaml"

	// EnvFile is the optional dotenv file read from the config directory.
	EnvFile = ".env"

	// DefaultCacheFile is the SQLite cache filename.
	DefaultCacheFile = "cache.db"

	// DefaultBaseURL is the remote API root.
	DefaultBaseURL = "https://dummyjson.com/"

	// DefaultPageSize is the number of tasks fetched per page.
	DefaultPageSize = 30

	// DefaultTimeout bounds a single API call.
	DefaultTimeout = 5 * time.Second

	// DefaultOwnerID is sent as userId when creating tasks.
	DefaultOwnerID = 1
)

// Environment variables that override file settings.
const (
	EnvBaseURL  = "TODO_BASE_URL"
	EnvPageSize = "TODO_PAGE_SIZE"
	EnvTimeout  = "TODO_TIMEOUT"
	EnvOwnerID  = "TODO_OWNER_ID"
	EnvCache    = "TODO_CACHE"
	EnvToken    = "TODO_API_TOKEN"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// NoCache runs without the durable cache.
	NoCache bool

	BaseURL   string
	PageSize  int
	Timeout   time.Duration
	OwnerID   int
	CacheFile string

	// Token, when set, is sent as a bearer token on every API request.
	Token string
}

// fileConfig mirrors config.yaml.
type fileConfig struct {
	BaseURL  string `yaml:"base_url"`
	PageSize int    `yaml:"page_size"`
	Timeout  string `yaml:"timeout"`
	OwnerID  int    `yaml:"owner_id"`
	Cache    string `yaml:"cache"`
	Token    string `yaml:"token"`
}

// New creates a Config with defaults for the given directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:       dir,
		BaseURL:   DefaultBaseURL,
		PageSize:  DefaultPageSize,
		Timeout:   DefaultTimeout,
		OwnerID:   DefaultOwnerID,
		CacheFile: DefaultCacheFile,
	}
}

// Load builds a Config from defaults, then config.yaml, then .env and the
// process environment. Real environment variables win over .env entries.
func Load(configDir string) (*Config, error) {
	cfg := New(configDir)

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	dotenv, err := cfg.readEnvFile()
	if err != nil {
		return nil, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if fc.PageSize != 0 {
		c.PageSize = fc.PageSize
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid %s: timeout: %w", ConfigFile, err)
		}
		c.Timeout = d
	}
	if fc.OwnerID != 0 {
		c.OwnerID = fc.OwnerID
	}
	if fc.Cache != "" {
		c.CacheFile = fc.Cache
	}
	if fc.Token != "" {
		c.Token = fc.Token
	}
	return nil
}

func (c *Config) readEnvFile() (map[string]string, error) {
	path := filepath.Join(c.Dir, EnvFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvFile, err)
	}
	return env, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := lookup(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", EnvPageSize, v)
		}
		c.PageSize = n
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", EnvTimeout, v)
		}
		c.Timeout = d
	}
	if v, ok := lookup(EnvOwnerID); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", EnvOwnerID, v)
		}
		c.OwnerID = n
	}
	if v, ok := lookup(EnvCache); ok && v != "" {
		c.CacheFile = v
	}
	if v, ok := lookup(EnvToken); ok && v != "" {
		c.Token = v
	}
	return nil
}

// Validate reports settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("invalid page size: %d", c.PageSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// CachePath returns the path to the SQLite cache. An absolute CacheFile
// is used as is.
func (c *Config) CachePath() string {
	if filepath.IsAbs(c.CacheFile) {
		return c.CacheFile
	}
	return filepath.Join(c.Dir, c.CacheFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
