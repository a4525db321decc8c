// Package config loads perfreport settings from TOML files and the
// environment.
//
// Settings are resolved in this order, later sources winning:
//
//  1. built-in defaults ([Default])
//  2. the first config file found: an explicit --config path, else
//     ./perfreport.toml, else $XDG_CONFIG_HOME/perfreport/config.toml
//  3. PERFREPORT_* environment variables
//
// A minimal file:
//
//	dir = "ci/lighthouse"
//
//	[rewrite]
//	patterns = ['s#http://localhost:\d+#https://staging.example.com#']
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/perfreport/pkg/blob"
	"github.com/matzehuels/perfreport/pkg/errors"
	"github.com/matzehuels/perfreport/pkg/urlrewrite"
)

const (
	appName = "perfreport"

	// FileName is the per-project config file looked up in the working directory.
	FileName = "perfreport.toml"

	// DefaultDirName is the artifact directory created under the working directory.
	DefaultDirName = ".perfreport"

	BackendFile  = "file"
	BackendRedis = "redis"
)

// Environment variables that override file settings.
const (
	EnvDir       = "PERFREPORT_DIR"
	EnvBackend   = "PERFREPORT_BACKEND"
	EnvRedisAddr = "PERFREPORT_REDIS_ADDR"
	EnvRedisDB   = "PERFREPORT_REDIS_DB"
)

// Config holds every setting the CLI needs.
type Config struct {
	Dir     string        `toml:"dir"`
	Backend string        `toml:"backend"`
	Redis   RedisConfig   `toml:"redis"`
	Rewrite RewriteConfig `toml:"rewrite"`
	Report  ReportConfig  `toml:"report"`

	// Source is the file the config was loaded from, if any.
	Source string `toml:"-"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// RewriteConfig holds default URL rewrite patterns.
type RewriteConfig struct {
	Patterns []string `toml:"patterns"`
}

// ReportConfig tunes the built-in HTML renderer.
type ReportConfig struct {
	Title     string `toml:"title"`
	MaxAudits int    `toml:"max_audits"`
}

// Default returns the built-in configuration. The artifact directory is
// resolved against the current working directory.
func Default() *Config {
	dir := DefaultDirName
	if wd, err := os.Getwd(); err == nil {
		dir = filepath.Join(wd, DefaultDirName)
	}
	return &Config{
		Dir:     dir,
		Backend: BackendFile,
		Redis:   RedisConfig{Addr: "localhost:6379", Prefix: appName + ":"},
		Report:  ReportConfig{Title: "Lighthouse Report", MaxAudits: 25},
	}
}

// Load reads path on top of the defaults. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Source = path
	return cfg, nil
}

// Find returns the first config file that exists, or "" if none does.
func Find(workDir string) string {
	candidates := []string{filepath.Join(workDir, FileName)}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "config.toml"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// Resolve loads explicitPath if set, otherwise the first file [Find]
// returns, otherwise the defaults; then applies environment overrides and
// validates the result.
func Resolve(explicitPath string) (*Config, error) {
	path := explicitPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working dir: %w", err)
		}
		path = Find(wd)
	}

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDir); ok && v != "" {
		c.Dir = v
	}
	if v, ok := lookup(EnvBackend); ok && v != "" {
		c.Backend = v
	}
	if v, ok := lookup(EnvRedisAddr); ok && v != "" {
		c.Redis.Addr = v
	}
	if v, ok := lookup(EnvRedisDB); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvRedisDB)
		}
		c.Redis.DB = db
	}
	return nil
}

// Validate checks the configuration for mistakes that would only surface
// later, including compiling every rewrite pattern.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if err := errors.ValidatePath(c.Dir); err != nil {
			return err
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis backend requires redis.addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown backend %q (want %s or %s)", c.Backend, BackendFile, BackendRedis)
	}
	if _, err := urlrewrite.NewRewriter(c.Rewrite.Patterns); err != nil {
		return err
	}
	return nil
}

// OpenBackend builds the configured storage backend.
func (c *Config) OpenBackend() (blob.Backend, error) {
	switch c.Backend {
	case BackendFile:
		return blob.NewFileBackend(c.Dir), nil
	case BackendRedis:
		return blob.NewRedisBackend(blob.RedisOptions{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   c.Redis.Prefix,
		}), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown backend %q", c.Backend)
}

// configDir returns the user config directory using XDG standard
// (~/.config/perfreport/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
