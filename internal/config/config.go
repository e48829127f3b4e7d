// Package config loads the aspectpath configuration file.
//
// The file lives at $XDG_CONFIG_HOME/aspectpath/config.toml (falling back to
// ~/.config/aspectpath/config.toml). Every key is optional; command-line
// flags override whatever the file sets.
//
//	data = "default"          # "default", a file path or an http(s) URL
//	spacer = "hex"
//	strategy = "dfs"          # or "layered"
//	preferred = ["lux"]
//
//	[cache]
//	backend = "file"          # "none", "file" or "redis"
//	ttl = "720h"
//
//	[session]
//	backend = "file"          # "memory", "file", "redis" or "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/aspectpath/pkg/aspects"
	"github.com/matzehuels/aspectpath/pkg/cache"
	apperrors "github.com/matzehuels/aspectpath/pkg/errors"
	"github.com/matzehuels/aspectpath/pkg/session"
	"github.com/matzehuels/aspectpath/pkg/solver"
)

const appName = "aspectpath"

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Session backends.
const (
	SessionMemory = "memory"
	SessionFile   = "file"
	SessionRedis  = "redis"
	SessionMongo  = "mongo"
)

// Config is the decoded configuration file.
type Config struct {
	Data      string        `toml:"data"`
	Spacer    string        `toml:"spacer"`
	Strategy  string        `toml:"strategy"`
	Preferred []string      `toml:"preferred"`
	Cache     CacheConfig   `toml:"cache"`
	Session   SessionConfig `toml:"session"`
	Server    ServerConfig  `toml:"server"`
}

// CacheConfig selects and configures the solution cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	Prefix    string   `toml:"prefix"`
}

// SessionConfig selects and configures the session store.
type SessionConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	SolveTimeout    Duration `toml:"solve_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Duration is a time.Duration written as a string such as "30s" or "720h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Data:     aspects.DefaultSource,
		Spacer:   solver.DefaultSpacer,
		Strategy: string(solver.StrategyDFS),
		Cache: CacheConfig{
			Backend:   CacheFile,
			TTL:       Duration{cache.TTLSolution},
			RedisAddr: "localhost:6379",
			Prefix:    appName + ":",
		},
		Session: SessionConfig{
			Backend:       SessionFile,
			TTL:           Duration{session.DefaultTTL},
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: appName,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration{10 * time.Second},
			WriteTimeout:    Duration{30 * time.Second},
			SolveTimeout:    Duration{10 * time.Second},
			ShutdownTimeout: Duration{5 * time.Second},
		},
	}
}

// Path returns the default configuration file path.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the default cache directory using XDG standard
// (~/.cache/aspectpath/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the file at path on top of [Default]. A missing file is not
// an error unless required is set. Unknown keys are rejected so that typos
// do not go unnoticed.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if required {
				return cfg, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return Default(), nil
		}
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, apperrors.New(apperrors.ErrCodeInvalidConfig, "config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated values and required fields.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Spacer) == "" {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "spacer cannot be empty")
	}
	if _, err := solver.ParseStrategy(c.Strategy); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "strategy")
	}
	if !slices.Contains([]string{CacheNone, CacheFile, CacheRedis}, c.Cache.Backend) {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if !slices.Contains([]string{SessionMemory, SessionFile, SessionRedis, SessionMongo}, c.Session.Backend) {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown session backend %q", c.Session.Backend)
	}
	for _, a := range c.Preferred {
		if err := apperrors.ValidateIdentifier(a); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "preferred")
		}
	}
	return nil
}

// Write encodes c as TOML to path, creating parent directories.
func (c Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}
