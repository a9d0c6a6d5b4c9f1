// Package registry provides the process-wide instance store.
//
// Instances are keyed by a content-addressed identifier derived from the
// module bytes, so loading byte-identical content twice yields the same key
// and replaces the record in place. The store follows a single-writer,
// multi-reader discipline: inserts take the write lock, lookups and
// iteration take the read lock and return owned snapshots. Guest execution
// never happens under either lock.
//
// There is no removal, no capacity bound, and no persistence. A registry is
// explicitly constructed and passed to whoever needs it; nothing in this
// package is global.
package registry
