package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/server"
)

func TestLoadConfig(t *testing.T) {
	env := newTestEnv(t)
	path := env.write(t, "full.toml", `
[render]
width = 800
height = 640
style = "gradient"
formats = ["svg", "png"]
font_size = 12
measure = "font"
padding = 0
pad_angle = 0.02
labels = false

[cache]
backend = "Redis"
redis_addr = "cache:6379"
redis_db = 2
redis_prefix = "sb:"
mongo_database = "charts"

[server]
addr = ":9090"
max_body_size = 2048
timeout = "5s"
`)

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	var opts pipeline.Options
	cfg.Render.apply(&opts)
	if opts.Width != 800 || opts.Height != 640 {
		t.Errorf("frame = %gx%g, want 800x640", opts.Width, opts.Height)
	}
	if opts.Style != "gradient" || opts.FontSize != 12 || opts.Measure != pipeline.MeasureFont {
		t.Errorf("render options = %+v", opts)
	}
	if len(opts.Formats) != 2 || opts.Formats[1] != "png" {
		t.Errorf("formats = %v, want [svg png]", opts.Formats)
	}
	if opts.Padding == nil || *opts.Padding != 0 {
		t.Errorf("padding = %v, want explicit 0", opts.Padding)
	}
	if opts.PadAngle == nil || *opts.PadAngle != 0.02 {
		t.Errorf("pad angle = %v, want 0.02", opts.PadAngle)
	}
	if opts.MinSweep != nil {
		t.Errorf("min sweep = %v, want unset", *opts.MinSweep)
	}
	if opts.LabelsEnabled() {
		t.Error("labels should be disabled")
	}

	cc := cfg.Cache.cacheConfig()
	if cc.Backend != cache.BackendRedis {
		t.Errorf("backend = %q, want %q", cc.Backend, cache.BackendRedis)
	}
	if cc.Redis.Addr != "cache:6379" || cc.Redis.DB != 2 || cc.Redis.Prefix != "sb:" {
		t.Errorf("redis config = %+v", cc.Redis)
	}
	if cc.Mongo.Database != "charts" {
		t.Errorf("mongo database = %q, want charts", cc.Mongo.Database)
	}

	if cfg.Server.Addr != ":9090" || cfg.Server.MaxBodySize != 2048 {
		t.Errorf("server config = %+v", cfg.Server)
	}
	if d, err := cfg.Server.timeout(); err != nil || d != 5*time.Second {
		t.Errorf("timeout = %v, %v; want 5s", d, err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	env := newTestEnv(t)

	cfg, err := LoadConfig(filepath.Join(env.dir, "missing.toml"), false)
	if err != nil {
		t.Fatalf("LoadConfig(missing, implicit): %v", err)
	}
	if cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("default backend = %q, want %q", cfg.Cache.Backend, cache.BackendFile)
	}
	if cfg.Server.Addr != server.DefaultAddr {
		t.Errorf("default addr = %q, want %q", cfg.Server.Addr, server.DefaultAddr)
	}

	// Values not in the file keep their defaults.
	path := env.write(t, "partial.toml", "[render]\nwidth = 100\n")
	cfg, err = LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig(partial): %v", err)
	}
	if cfg.Render.Width != 100 || cfg.Server.Addr != server.DefaultAddr {
		t.Errorf("partial config = %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "[render\nwidth = 1", errors.ErrCodeInvalidInput},
		{"unknown key", "[render]\nwidht = 800\n", errors.ErrCodeInvalidInput},
		{"unknown section", "[colors]\nprimary = \"red\"\n", errors.ErrCodeInvalidInput},
		{"bad style", "[render]\nstyle = \"neon\"\n", errors.ErrCodeInvalidStyle},
		{"bad format", "[render]\nformats = [\"gif\"]\n", errors.ErrCodeInvalidFormat},
		{"bad timeout", "[server]\ntimeout = \"soon\"\n", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := env.write(t, tt.name+".toml", tt.content)
			_, err := LoadConfig(path, true)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}

	_, err := LoadConfig(filepath.Join(env.dir, "missing.toml"), true)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing config: code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestConfigFlag(t *testing.T) {
	env := newTestEnv(t)
	path := env.write(t, "custom.toml", "[cache]\ndir = \""+filepath.ToSlash(filepath.Join(env.dir, "custom-cache"))+"\"\n")

	out, err := env.run(t, "--config", path, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if want := filepath.Join(env.dir, "custom-cache") + "\n"; filepath.FromSlash(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}

	if _, err := env.run(t, "--config", filepath.Join(env.dir, "nope.toml"), "cache", "path"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing --config: err = %v, want FILE_NOT_FOUND", err)
	}
}
