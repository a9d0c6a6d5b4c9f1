// Package bridge dispatches host calls into registered WASM instances.
//
// Invoke resolves an instance by id, an exported function by name, and
// marshals int64 arguments across the guest boundary. Only i32 and i64
// parameters are supported: i32 parameters take the low 32 bits of the
// supplied argument, i64 parameters pass through unchanged. A call
// yields a value only when the function declares exactly one i32 or
// i64 result; every other result shape (none, floats, vectors,
// multi-value) completes without a value.
//
// Lookup and execution are decoupled: the registry is consulted once,
// the read lock is released, and the guest runs on the resolved handle.
// Replacing an instance mid-call therefore never stalls the writer and
// never invalidates the running call.
package bridge
