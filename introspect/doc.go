// Package introspect renders the exported function signatures of
// registered instances as catalog rows.
//
// Each row carries the owning instance identifier, the export name,
// and the parameter and result types as comma-joined tags in
// declaration order: i32 renders as "int4", i64 as "int8", f32 and
// f64 as "numeric", v128 as "decimal". Exports with reference-typed
// signatures (externref, funcref) have no rendering and are omitted
// with a warning. Rows are ordered by instance identifier, then by
// export name.
//
// Listing reads a registry snapshot, so a concurrent load never blocks
// or tears an enumeration in progress.
package introspect
