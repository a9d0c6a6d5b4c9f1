// Package wasmgen assembles small WebAssembly binaries in process.
//
// Tests use it to synthesize modules with known exports instead of shipping
// fixture files: a function with a chosen signature and body, a deliberately
// trapping start section, an unsatisfiable import, or non-function exports.
// The output is a complete core module (magic, version, and sections in
// required order) accepted by any spec-compliant engine.
package wasmgen
