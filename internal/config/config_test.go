package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/matzehuels/aspectpath/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
data = "recipes.toml"
strategy = "layered"
preferred = ["lux", "motus"]

[cache]
backend = "redis"
ttl = "2h"

[session]
backend = "mongo"
mongo_database = "research"

[server]
addr = ":9000"
solve_timeout = "3s"
`)
	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Data != "recipes.toml" || cfg.Strategy != "layered" || len(cfg.Preferred) != 2 {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.TTL.Duration != 2*time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Session.MongoDatabase != "research" || cfg.Server.SolveTimeout.Duration != 3*time.Second {
		t.Errorf("session = %+v, server = %+v", cfg.Session, cfg.Server)
	}
	if cfg.Spacer != "hex" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Error("unset keys should keep their defaults")
	}
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.toml")

	cfg, err := Load(path, false)
	if err != nil || cfg.Data != Default().Data {
		t.Errorf("Load(missing, optional) = %+v, %v", cfg, err)
	}
	if _, err := Load(path, true); !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing, required) error = %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", `data = `, ""},
		{"unknown key", `colour = "red"`, "colour"},
		{"unknown nested key", "[cache]\nbackedn = \"file\"", "cache.backedn"},
		{"bad duration", "[cache]\nttl = \"soon\"", ""},
		{"bad strategy", `strategy = "bfs"`, "strategy"},
		{"bad cache backend", "[cache]\nbackend = \"memcached\"", "memcached"},
		{"bad session backend", "[session]\nbackend = \"sqlite\"", "sqlite"},
		{"empty spacer", `spacer = ""`, "spacer"},
		{"bad preferred", `preferred = ["a b"]`, "preferred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), true)
			if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
				t.Fatalf("Load() error = %v, want INVALID_CONFIG", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Preferred = []string{"lux"}
	cfg.Server.Addr = ":7000"
	if err := cfg.Write(path); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	got, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Server.Addr != ":7000" || got.Cache.TTL != cfg.Cache.TTL || len(got.Preferred) != 1 {
		t.Errorf("round trip = %+v", got)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	if p, _ := Path(); p != filepath.Join("/tmp/cfg", "aspectpath", "config.toml") {
		t.Errorf("Path() = %s", p)
	}
	if d, _ := CacheDir(); d != filepath.Join("/tmp/cache", "aspectpath") {
		t.Errorf("CacheDir() = %s", d)
	}
}
