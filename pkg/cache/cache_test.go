package cache

import (
	"context"
	"errors"
	"math"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

// exercise runs the behaviour every storing backend must share.
func exercise(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "artifact:svg:abc"); err != nil || hit {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "artifact:svg:abc", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "artifact:svg:abc")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("Get = %q, want %q", data, "<svg/>")
	}

	if err := c.Set(ctx, "artifact:svg:abc", []byte("<svg></svg>"), 0); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if data, _, _ := c.Get(ctx, "artifact:svg:abc"); string(data) != "<svg></svg>" {
		t.Errorf("Get after overwrite = %q", data)
	}

	if err := c.Delete(ctx, "artifact:svg:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "artifact:svg:abc"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	exercise(t, c)
}

func TestMemoryCache(t *testing.T) {
	exercise(t, NewMemoryCache())
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry file should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v, want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Clear left %d entries", len(entries))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Clear removed the cache dir: %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("fresh entry should hit")
	}
	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expiry, want 0", c.Len())
	}
}

func TestMemoryCacheCopiesInput(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, 0)
	buf[0] = 'x'
	if data, _, _ := c.Get(ctx, "k"); string(data) != "abc" {
		t.Errorf("Get = %q, want abc", data)
	}
}

func TestMemoryCacheConcurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%8))
			_ = c.Set(ctx, key, []byte{byte(i)}, time.Hour)
			_, _, _ = c.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	if c.Len() != 8 {
		t.Errorf("Len() = %d, want 8", c.Len())
	}
}

func TestKeysWithNonFiniteOptions(t *testing.T) {
	k := NewDefaultKeyer()
	nan := ArtifactKeyOpts{Format: "svg", FontSize: math.NaN()}

	if k.ArtifactKey("hashA", nan) == k.ArtifactKey("hashB", nan) {
		t.Error("distinct inputs share an artifact key under NaN options")
	}
	if k.ArtifactKey("hashA", nan) == k.ArtifactKey("hashA", ArtifactKeyOpts{Format: "svg", FontSize: math.Inf(1)}) {
		t.Error("NaN and +Inf font sizes share an artifact key")
	}
	if k.ArtifactKey("hashA", nan) != k.ArtifactKey("hashA", nan) {
		t.Error("ArtifactKey should be deterministic")
	}
	layout := LayoutKeyOpts{Padding: math.Inf(-1)}
	if k.LayoutKey("hashA", layout) == k.LayoutKey("hashB", layout) {
		t.Error("distinct inputs share a layout key under -Inf padding")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{VizType: "sunburst", Width: 800, Height: 800})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{VizType: "sunburst", Width: 600, Height: 800})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(lk1, "layout:sunburst:") {
		t.Errorf("LayoutKey prefix unexpected: %s", lk1)
	}
	if lk1 != k.LayoutKey("hash123", LayoutKeyOpts{VizType: "sunburst", Width: 800, Height: 800}) {
		t.Error("LayoutKey should be deterministic")
	}

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Style: "simple"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Style: "simple"})
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Style: "gradient"})
	ak4 := k.ArtifactKey("hash456", ArtifactKeyOpts{Format: "svg", Style: "simple"})
	if ak1 == ak2 || ak1 == ak3 || ak1 == ak4 {
		t.Error("Different artifact inputs should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:svg:") {
		t.Errorf("ArtifactKey prefix unexpected: %s", ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "server:")
	inner := NewDefaultKeyer()

	opts := ArtifactKeyOpts{Format: "svg"}
	if got, want := scoped.ArtifactKey("h", opts), "server:"+inner.ArtifactKey("h", opts); got != want {
		t.Errorf("ArtifactKey = %s, want %s", got, want)
	}
	if got := NewScopedKeyer(nil, "p:").LayoutKey("h", LayoutKeyOpts{}); !strings.HasPrefix(got, "p:layout:") {
		t.Errorf("nil inner keyer: %s", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		backend string
		check   func(Cache) bool
	}{
		{"none", func(c Cache) bool { _, ok := c.(NullCache); return ok }},
		{"memory", func(c Cache) bool { _, ok := c.(*MemoryCache); return ok }},
		{"file", func(c Cache) bool { _, ok := c.(*FileCache); return ok }},
		{"", func(c Cache) bool { _, ok := c.(*FileCache); return ok }},
	}
	for _, tt := range tests {
		c, err := Open(ctx, Config{Backend: tt.backend, Dir: t.TempDir()})
		if err != nil {
			t.Fatalf("Open(%q): %v", tt.backend, err)
		}
		if !tt.check(c) {
			t.Errorf("Open(%q) returned %T", tt.backend, c)
		}
		c.Close()
	}
	if _, err := Open(ctx, Config{Backend: "memcached"}); err == nil {
		t.Error("Open(memcached) should fail")
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("SUNBURST_TEST_REDIS")
	if addr == "" {
		t.Skip("SUNBURST_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "sunburst-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	defer c.Clear(ctx)
	exercise(t, c)
}

func TestEscapeGlob(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sunburst:", "sunburst:"},
		{"a*b", `a\*b`},
		{"team?[1]", `team\?\[1\]`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeGlob(tt.in); got != tt.want {
			t.Errorf("escapeGlob(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("SUNBURST_TEST_MONGO")
	if uri == "" {
		t.Skip("SUNBURST_TEST_MONGO not set")
	}
	ctx := context.Background()
	c, err := NewMongoCache(ctx, MongoConfig{URI: uri, Database: "sunburst_test"})
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer c.Close()
	defer c.Clear(ctx)
	exercise(t, c)
}

func TestBackendError(t *testing.T) {
	if backendError(BackendRedis, "get", nil) != nil {
		t.Error("backendError(nil) should return nil")
	}

	timeout := backendError(BackendRedis, "get", context.DeadlineExceeded)
	if !errors.Is(timeout, ErrUnavailable) {
		t.Error("deadline should be transient")
	}
	if !errors.Is(timeout, context.DeadlineExceeded) {
		t.Error("errors.Is should see the cause")
	}
	if got, want := timeout.Error(), "redis cache get: context deadline exceeded"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var be *BackendError
	permanent := backendError(BackendMongo, "set", errors.New("bad document"))
	if errors.Is(permanent, ErrUnavailable) {
		t.Error("plain error should not be transient")
	}
	if !errors.As(permanent, &be) || be.Backend != BackendMongo || be.Op != "set" {
		t.Errorf("errors.As = %+v", be)
	}
}

func TestRetry(t *testing.T) {
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = time.Second })
	ctx := context.Background()
	transient := &BackendError{Backend: BackendRedis, Op: "ping", Err: errors.New("refused"), Transient: true}
	errPermanent := errors.New("permanent")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantErr   error
		wantCalls int
	}{
		{"success", 0, nil, nil, 1},
		{"permanent", 1, errPermanent, errPermanent, 1},
		{"recovers", 1, transient, nil, 2},
		{"exhausted", 5, transient, transient, connectAttempts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := retry(ctx, connectAttempts, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if err != tt.wantErr || calls != tt.wantCalls {
				t.Errorf("err %v calls %d, want %v calls %d", err, calls, tt.wantErr, tt.wantCalls)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry(ctx, connectAttempts, func() error {
		return &BackendError{Backend: BackendRedis, Op: "ping", Err: errors.New("refused"), Transient: true}
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
