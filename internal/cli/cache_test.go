package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	env := newTestEnv(t)

	dir, err := cacheDir(CacheConfig{})
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(env.dir, "cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	custom := filepath.Join(env.dir, "elsewhere")
	if dir, _ := cacheDir(CacheConfig{Dir: custom}); dir != custom {
		t.Errorf("cacheDir(Dir) = %q, want %q", dir, custom)
	}
}

func TestCachePath(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if want := filepath.Join(env.dir, "cache", appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCacheClear(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.run(t, "cache", "clear"); err != nil {
		t.Fatalf("clear empty: %v", err)
	}
	if !strings.Contains(env.status.String(), "Cache is empty") {
		t.Errorf("clear on missing dir: %q", env.status.String())
	}

	input := env.write(t, "langs.json", sampleJSON)
	if _, err := env.run(t, "render", input); err != nil {
		t.Fatalf("render: %v", err)
	}
	dir := filepath.Join(env.dir, "cache", appName)
	if entries, _ := os.ReadDir(dir); len(entries) == 0 {
		t.Fatal("render left no cache entries")
	}

	env.status.Reset()
	if _, err := env.run(t, "cache", "clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("cache still holds %d entries", len(entries))
	}
	if !strings.Contains(env.status.String(), "Cleared file cache") {
		t.Errorf("clear output = %q", env.status.String())
	}

	env.status.Reset()
	if _, err := env.run(t, "render", input); err != nil {
		t.Fatalf("render after clear: %v", err)
	}
	if !strings.Contains(env.status.String(), "fresh") {
		t.Error("render after clear should not be cached")
	}
}

func TestCacheClearMemoryBackend(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "[cache]\nbackend = \"memory\"\n")

	if _, err := env.run(t, "cache", "clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !strings.Contains(env.status.String(), "Cleared memory cache") {
		t.Errorf("clear output = %q", env.status.String())
	}
}
