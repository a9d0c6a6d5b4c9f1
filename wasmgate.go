package wasmgate

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/tessob/wasmgate/bridge"
	"github.com/tessob/wasmgate/engine"
	"github.com/tessob/wasmgate/errors"
	"github.com/tessob/wasmgate/introspect"
	"github.com/tessob/wasmgate/registry"
)

// Options configures a Gate. The zero value is usable: no logging, no
// memory limit, no compilation cache.
type Options struct {
	// Logger receives structured load and introspection events.
	Logger *zap.Logger

	// MemoryLimitPages caps guest linear memory in 64KiB pages.
	// Zero means the runtime default.
	MemoryLimitPages uint32

	// CacheDir enables a file-backed compilation cache shared across
	// processes.
	CacheDir string
}

// Gate owns a WASM engine and the registry of instances loaded into
// it. All methods are safe for concurrent use.
type Gate struct {
	engine   *engine.Engine
	registry *registry.Registry
}

// New creates a Gate with an empty registry.
func New(ctx context.Context, opts *Options) (*Gate, error) {
	cfg := &engine.Config{}
	if opts != nil {
		if opts.Logger != nil {
			engine.SetLogger(opts.Logger)
		}
		cfg.MemoryLimitPages = opts.MemoryLimitPages
		cfg.CacheDir = opts.CacheDir
	}

	eng, err := engine.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Gate{
		engine:   eng,
		registry: registry.New(),
	}, nil
}

// Load reads a module from disk, instantiates it, and registers it
// under its content-derived identifier. Loading the same bytes again
// yields the same identifier and replaces the registered instance.
func (g *Gate) Load(ctx context.Context, path string) (string, error) {
	wasmBytes, err := os.ReadFile(path)
	if err != nil {
		return "", errors.IO(path, err)
	}
	return g.LoadBytes(ctx, wasmBytes, path)
}

// LoadBytes instantiates module bytes and registers the instance.
// sourcePath labels the bytes in errors and logs; it is not read.
//
// The module is instantiated with an empty import set, so modules
// declaring imports fail here. A failure leaves the registry
// untouched.
func (g *Gate) LoadBytes(ctx context.Context, wasmBytes []byte, sourcePath string) (string, error) {
	compiled, err := g.engine.Compile(ctx, wasmBytes, sourcePath)
	if err != nil {
		return "", err
	}

	inst, err := g.engine.Instantiate(ctx, compiled, sourcePath)
	if err != nil {
		return "", err
	}

	id := registry.IdentityFor(wasmBytes)
	g.registry.Insert(registry.Record{
		ID:         id,
		Instance:   inst,
		SourcePath: sourcePath,
	})

	engine.Logger().Info("module registered",
		zap.String("instance", id),
		zap.String("path", sourcePath),
		zap.Int("size_bytes", len(wasmBytes)))

	return id, nil
}

// Invoke calls an exported function on a registered instance. The
// returned bool reports whether the call produced a value.
func (g *Gate) Invoke(ctx context.Context, id, function string, args ...int64) (int64, bool, error) {
	return bridge.Invoke(ctx, g.registry, id, function, args)
}

// Exports lists the exported functions of every registered instance.
func (g *Gate) Exports() []introspect.Descriptor {
	return introspect.List(g.registry)
}

// Instances returns the identifiers of all registered instances in
// ascending order.
func (g *Gate) Instances() []string {
	recs := g.registry.Snapshot()
	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ID
	}
	return ids
}

// ExportsOf lists the exported functions of one registered instance.
func (g *Gate) ExportsOf(id string) ([]introspect.Descriptor, error) {
	rec, ok := g.registry.Get(id)
	if !ok {
		return nil, errors.InstanceNotFound(id)
	}
	return introspect.ListInstance(rec), nil
}

// Close shuts the engine down. Registered instances become unusable.
func (g *Gate) Close(ctx context.Context) error {
	return g.engine.Close(ctx)
}
