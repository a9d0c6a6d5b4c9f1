// Package engine provides the low-level WebAssembly execution layer.
//
// This package wraps wazero to compile raw module bytes and instantiate them
// with an empty import set. Everything above it (registry, bridge,
// introspection) works against the Instance handle it produces.
//
// # Architecture
//
// The engine package provides two main types:
//
//	Engine   - Creates and owns the wazero runtime shared by all modules
//	Instance - A live guest module exposing its exported functions
//
// # Instantiation Flow
//
//  1. Engine.Compile() validates and compiles the module binary
//  2. Engine.Instantiate() creates an anonymous Instance with no imports
//  3. Instance.Function() resolves exported functions for invocation
//
// Modules are instantiated with no host modules registered, so a module that
// declares imports fails instantiation with a structured, recoverable error.
// The module's start section runs during instantiation; a trap there is also
// reported as an instantiation error, never a process fault. The WASI-style
// `_start` convention is deliberately not invoked.
//
// # Thread Safety
//
// Engine is safe for concurrent use. Instance handles may be shared across
// goroutines as long as each call resolves its own api.Function via
// Instance.Function, which is the wazero-documented pattern for concurrent
// callers.
package engine
