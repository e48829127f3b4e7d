package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/aspectpath/pkg/cache"
)

func TestCachePathCommand(t *testing.T) {
	dir := setupEnv(t)

	out := mustExecute(t, "cache", "path")
	want := filepath.Join(dir, "cache", "aspectpath")
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := setupEnv(t)

	mustExecute(t, "solve", "ignis", "aer")
	if out := mustExecute(t, "solve", "ignis", "aer"); !strings.Contains(out, iconCached) {
		t.Fatalf("expected a cached step before clearing, got %q", out)
	}

	out := mustExecute(t, "cache", "clear")
	if !strings.Contains(out, "Cleared solution cache") || !strings.Contains(out, filepath.Join(dir, "cache")) {
		t.Errorf("cache clear = %q", out)
	}

	if out := mustExecute(t, "solve", "ignis", "aer"); strings.Contains(out, iconCached) {
		t.Errorf("solve after clear should recompute, got %q", out)
	}
}

func TestCacheStatsAndPrune(t *testing.T) {
	setupEnv(t)

	mustExecute(t, "solve", "ignis", "aer")

	out := mustExecute(t, "cache", "stats", "--json")
	var st cache.Stats
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatalf("stats output %q: %v", out, err)
	}
	if st.Entries != 1 || st.Expired != 0 || st.Bytes == 0 {
		t.Errorf("stats = %+v, want one live entry", st)
	}

	out = mustExecute(t, "cache", "stats")
	if !strings.Contains(out, "Entries") || !strings.Contains(out, "Size") {
		t.Errorf("stats = %q", out)
	}

	out = mustExecute(t, "cache", "prune")
	if !strings.Contains(out, "Removed 0 stale entries") {
		t.Errorf("prune = %q", out)
	}
}
