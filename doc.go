// Package wasmgate loads WebAssembly modules into content-addressed
// instances and bridges integer function calls into them.
//
// A module's identity is derived from its bytes: the SHA-256 digest is
// rendered as lowercase hex and hashed into a version 5 UUID under the
// OID namespace. Loading the same bytes always yields the same
// identifier, and re-loading replaces the registered instance in
// place.
//
// # Architecture Overview
//
// The library is organized into small packages with distinct
// responsibilities:
//
//	wasmgate/            Root package with the Gate facade
//	├── engine/          wazero runtime wrapper: compile, instantiate, close
//	├── registry/        Content-addressed instance store and identity derivation
//	├── bridge/          Integer call dispatch into registered instances
//	├── introspect/      Export signature catalog rows
//	├── config/          HCL configuration for the server and CLI
//	├── server/          HTTP surface over the Gate
//	├── errors/          Structured error types for every pipeline stage
//	└── cmd/wasmgate/    Command line interface
//
// # Quick Start
//
// Load a module and call an export:
//
//	gate, err := wasmgate.New(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gate.Close(ctx)
//
//	id, err := gate.Load(ctx, "sum.wasm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	value, hasValue, err := gate.Invoke(ctx, id, "sum", 1, 2)
//	fmt.Println(value, hasValue) // 3 true
//
// # Call Boundary
//
// Arguments and results cross the guest boundary as int64. i32
// parameters take the low 32 bits of the supplied argument, i64
// parameters pass through unchanged. A call yields a value only when
// the function declares exactly one i32 or i64 result; any other
// result shape completes without a value. Floating point, vector, and
// reference-typed parameters are rejected before the guest runs.
//
// # Instantiation Contract
//
// Modules are instantiated with an empty import set. A module that
// declares imports, or traps in its start section, fails to load with
// a recoverable error; the registry is never touched on failure and
// the process never aborts.
//
// # Thread Safety
//
// Gate methods are safe for concurrent use. Lookups snapshot the
// registry before executing, so a load racing a call never blocks it,
// and a replaced instance stays valid for calls already in flight.
package wasmgate
