package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tessob/wasmgate/config"
	"github.com/tessob/wasmgate/errors"
)

func TestParse_Full(t *testing.T) {
	src := `
listen             = "127.0.0.1:9090"
log_level          = "debug"
log_file           = "/tmp/wasmgate.log"
cache_dir          = "/tmp/wasmgate-cache"
memory_limit_pages = 256

module "sum" {
  path = "testdata/sum.wasm"
}

module "counter" {
  path = "testdata/counter.wasm"
}
`
	cfg, err := config.Parse([]byte(src), "wasmgate.hcl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Listen != "127.0.0.1:9090" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.LogFile != "/tmp/wasmgate.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if cfg.CacheDir != "/tmp/wasmgate-cache" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.MemoryLimitPages != 256 {
		t.Errorf("MemoryLimitPages = %d", cfg.MemoryLimitPages)
	}
	if len(cfg.Modules) != 2 {
		t.Fatalf("Modules = %+v", cfg.Modules)
	}
	if cfg.Modules[0].Alias != "sum" || cfg.Modules[0].Path != "testdata/sum.wasm" {
		t.Errorf("module 0 = %+v", cfg.Modules[0])
	}
	if cfg.Modules[1].Alias != "counter" || cfg.Modules[1].Path != "testdata/counter.wasm" {
		t.Errorf("module 1 = %+v", cfg.Modules[1])
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse(nil, "empty.hcl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Listen != config.DefaultListen {
		t.Errorf("Listen = %q, want %q", cfg.Listen, config.DefaultListen)
	}
	if cfg.LogLevel != config.DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, config.DefaultLogLevel)
	}
	if len(cfg.Modules) != 0 {
		t.Errorf("Modules = %+v", cfg.Modules)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `listen = `, "parse"},
		{"unknown attribute", `listne = ":8080"`, "decode"},
		{"module without path", `module "a" {}`, "decode"},
		{"bad level", `log_level = "shout"`, "log_level"},
		{"duplicate alias", "module \"a\" {\n  path = \"x.wasm\"\n}\nmodule \"a\" {\n  path = \"y.wasm\"\n}", "duplicate"},
		{"empty path", "module \"a\" {\n  path = \"\"\n}", "empty path"},
		{"pages overflow", `memory_limit_pages = 65537`, "addressable maximum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.src), "bad.hcl")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, &errors.Error{Stage: errors.StageConfig, Kind: errors.KindInvalidConfig}) {
				t.Fatalf("wrong error: %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wasmgate.hcl")
	if err := os.WriteFile(path, []byte("listen = \":7070\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":7070" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.hcl"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, &errors.Error{Stage: errors.StageConfig, Kind: errors.KindInvalidConfig}) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := config.NewLogger(config.Default())
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if logger == nil {
		t.Fatal("nil logger")
	}

	_, err = config.NewLogger(config.Config{LogLevel: "shout"})
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewLogger_WithFile(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "gate.log")

	logger, err := config.NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("boot")
	if err := logger.Sync(); err != nil {
		// stdout sync fails on some platforms; the file write is what
		// matters here.
		t.Logf("sync: %v", err)
	}

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "boot") {
		t.Errorf("log file missing entry: %q", data)
	}
}
