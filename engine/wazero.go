package engine

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/tessob/wasmgate/errors"
)

// Engine owns the wazero runtime shared by every module loaded through it.
type Engine struct {
	runtime wazero.Runtime
	cache   wazero.CompilationCache
}

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages caps guest linear memory per instance in pages
	// (64KB each). 0 means the wazero default (65536 pages = 4GB).
	// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
	MemoryLimitPages uint32

	// CacheDir enables a disk-backed compilation cache at the given
	// directory, shared across processes. Empty disables caching.
	CacheDir string
}

// New creates a new engine with default configuration
func New(ctx context.Context) (*Engine, error) {
	return NewWithConfig(ctx, nil)
}

// NewWithConfig creates a new engine with custom configuration
func NewWithConfig(ctx context.Context, cfg *Config) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)

	var cache wazero.CompilationCache
	if cfg != nil {
		if cfg.MemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
		if cfg.CacheDir != "" {
			var err error
			cache, err = wazero.NewCompilationCacheWithDir(cfg.CacheDir)
			if err != nil {
				return nil, errors.Config("create compilation cache", err)
			}
			runtimeCfg = runtimeCfg.WithCompilationCache(cache)
		}
	}

	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	return &Engine{runtime: runtime, cache: cache}, nil
}

// Compile validates and compiles raw module bytes. Malformed or invalid
// bytes fail with a compile error; nothing is retained on failure.
func (e *Engine) Compile(ctx context.Context, wasmBytes []byte, sourcePath string) (wazero.CompiledModule, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Compile(sourcePath, err)
	}
	return compiled, nil
}

// Instantiate creates a live instance from a compiled module with an empty
// import set. The instance is anonymous so repeated instantiation of the
// same content never collides on the runtime's name table. A module that
// declares imports, or whose start section traps, fails here with a
// recoverable instantiation error.
func (e *Engine) Instantiate(ctx context.Context, compiled wazero.CompiledModule, sourcePath string) (*Instance, error) {
	modConfig := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions() // run only the wasm start section, not _start

	mod, err := e.runtime.InstantiateModule(ctx, compiled, modConfig)
	if err != nil {
		return nil, errors.Instantiation(sourcePath, err)
	}
	return &Instance{module: mod}, nil
}

// Close releases the runtime and all instances created from it
func (e *Engine) Close(ctx context.Context) error {
	err := e.runtime.Close(ctx)
	if e.cache != nil {
		if cerr := e.cache.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		Logger().Warn("engine close", zap.Error(err))
	}
	return err
}

// Instance is a live guest module.
//
// The handle may be shared across goroutines: each call site resolves its
// own api.Function via Function, the wazero pattern for concurrent callers.
type Instance struct {
	module api.Module
}

// Function returns the exported function with the given name, or nil if the
// instance exports no function under that name.
func (i *Instance) Function(name string) api.Function {
	return i.module.ExportedFunction(name)
}

// FunctionDefinitions returns the signature definitions of every exported
// function, keyed by export name. Non-function exports (memories, globals,
// tables) do not appear.
func (i *Instance) FunctionDefinitions() map[string]api.FunctionDefinition {
	return i.module.ExportedFunctionDefinitions()
}

// Close releases the instance
func (i *Instance) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}
