package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/zap/zapcore"

	"github.com/tessob/wasmgate/errors"
)

const (
	DefaultListen   = ":8080"
	DefaultLogLevel = "info"

	// Hard ceiling of the WASM 32-bit memory index space.
	maxMemoryPages = 65536
)

// Module names a WASM module to load at startup.
type Module struct {
	Alias string `hcl:"alias,label"`
	Path  string `hcl:"path"`
}

// Config is the decoded configuration file.
type Config struct {
	Listen           string   `hcl:"listen,optional"`
	LogLevel         string   `hcl:"log_level,optional"`
	LogFile          string   `hcl:"log_file,optional"`
	CacheDir         string   `hcl:"cache_dir,optional"`
	MemoryLimitPages uint32   `hcl:"memory_limit_pages,optional"`
	Modules          []Module `hcl:"module,block"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:   DefaultListen,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads and decodes a configuration file.
func Load(path string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Config{}, errors.Config("parse "+path, diags)
	}
	return decode(file.Body, path)
}

// Parse decodes configuration from memory. filename labels
// diagnostics.
func Parse(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, errors.Config("parse "+filename, diags)
	}
	return decode(file.Body, filename)
}

func decode(body hcl.Body, filename string) (Config, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(body, nil, &cfg); diags.HasErrors() {
		return Config{}, errors.Config("decode "+filename, diags)
	}

	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values that HCL decoding cannot.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Config("log_level "+c.LogLevel, err)
	}
	if c.MemoryLimitPages > maxMemoryPages {
		return errors.New(errors.StageConfig, errors.KindInvalidConfig).
			Value(c.MemoryLimitPages).
			Detail("memory_limit_pages %d exceeds the addressable maximum %d", c.MemoryLimitPages, maxMemoryPages).
			Build()
	}

	seen := make(map[string]struct{}, len(c.Modules))
	for _, m := range c.Modules {
		if m.Path == "" {
			return errors.New(errors.StageConfig, errors.KindInvalidConfig).
				Detail("module %q has an empty path", m.Alias).
				Build()
		}
		if _, dup := seen[m.Alias]; dup {
			return errors.New(errors.StageConfig, errors.KindInvalidConfig).
				Detail("duplicate module alias %q", m.Alias).
				Build()
		}
		seen[m.Alias] = struct{}{}
	}
	return nil
}
