package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/server"
)

// configFileName is the file looked up under the user config directory.
const configFileName = "config.toml"

// Config is the on-disk CLI configuration. Command-line flags override every
// value set here.
//
//	[render]
//	width = 800
//	style = "gradient"
//	formats = ["svg", "png"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds defaults for render and inspect.
type RenderConfig struct {
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	Style    string   `toml:"style"`
	Formats  []string `toml:"formats"`
	FontSize float64  `toml:"font_size"`
	Measure  string   `toml:"measure"`
	Padding  *float64 `toml:"padding"`
	MinSweep *float64 `toml:"min_sweep"`
	PadAngle *float64 `toml:"pad_angle"`
	Labels   *bool    `toml:"labels"`
}

// CacheConfig selects the render cache backend.
type CacheConfig struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	RedisAddr       string `toml:"redis_addr"`
	RedisPassword   string `toml:"redis_password"`
	RedisDB         int    `toml:"redis_db"`
	RedisPrefix     string `toml:"redis_prefix"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ServerConfig holds defaults for serve.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	MaxBodySize int64  `toml:"max_body_size"`
	Timeout     string `toml:"timeout"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Cache:  CacheConfig{Backend: cache.BackendFile},
		Server: ServerConfig{Addr: server.DefaultAddr},
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/sunburst/config.toml.
func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, configFileName), nil
}

// LoadConfig reads the TOML file at path on top of DefaultConfig. A missing
// file yields the defaults unless explicit is set. Unknown keys are rejected
// so typos do not go unnoticed.
func LoadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Render.Style != "" {
		if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
			return err
		}
	}
	if len(c.Render.Formats) > 0 {
		if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
			return err
		}
	}
	if _, err := c.Server.timeout(); err != nil {
		return err
	}
	return nil
}

// apply copies the configured render defaults into opts.
func (r RenderConfig) apply(opts *pipeline.Options) {
	if r.Width > 0 {
		opts.Width = r.Width
	}
	if r.Height > 0 {
		opts.Height = r.Height
	}
	if r.Style != "" {
		opts.Style = r.Style
	}
	if len(r.Formats) > 0 {
		opts.Formats = append([]string(nil), r.Formats...)
	}
	if r.FontSize > 0 {
		opts.FontSize = r.FontSize
	}
	if r.Measure != "" {
		opts.Measure = r.Measure
	}
	if r.Padding != nil {
		opts.Padding = pipeline.Float(*r.Padding)
	}
	if r.MinSweep != nil {
		opts.MinSweep = pipeline.Float(*r.MinSweep)
	}
	if r.PadAngle != nil {
		opts.PadAngle = pipeline.Float(*r.PadAngle)
	}
	if r.Labels != nil {
		opts.Labels = pipeline.Bool(*r.Labels)
	}
}

// cacheConfig converts to the cache package's backend config.
func (c CacheConfig) cacheConfig() cache.Config {
	return cache.Config{
		Backend: strings.ToLower(c.Backend),
		Dir:     c.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.RedisPrefix,
		},
		Mongo: cache.MongoConfig{
			URI:        c.MongoURI,
			Database:   c.MongoDatabase,
			Collection: c.MongoCollection,
		},
	}
}

func (s ServerConfig) timeout() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "server timeout %q", s.Timeout)
	}
	return d, nil
}
