package registry

import (
	"sort"
	"sync"

	"github.com/tessob/wasmgate/engine"
)

// Record is one registered instance. Records are immutable once inserted;
// replacement swaps the whole value under the write lock.
type Record struct {
	// ID is the content-addressed identifier (see IdentityFor).
	ID string

	// Instance is the live guest module handle.
	Instance *engine.Instance

	// SourcePath is where the bytes were loaded from. Diagnostic only.
	SourcePath string
}

// Registry is a concurrent instance store: one writer at a time, many
// concurrent readers.
type Registry struct {
	mu      sync.RWMutex
	records map[string]Record
}

// New creates an empty registry
func New() *Registry {
	return &Registry{records: make(map[string]Record)}
}

// Insert stores a record under its identifier, replacing any existing entry
// with the same key. The replaced instance handle is not closed: in-flight
// calls may still hold it, and instance lifetime is owned by the engine.
func (r *Registry) Insert(rec Record) {
	r.mu.Lock()
	r.records[rec.ID] = rec
	r.mu.Unlock()
}

// Get returns an owned copy of the record under id. The read lock is
// released before returning, so a caller can execute guest code against its
// snapshot without holding up writers; a concurrent replacement does not
// affect the copy already taken.
func (r *Registry) Get(id string) (Record, bool) {
	r.mu.RLock()
	rec, ok := r.records[id]
	r.mu.RUnlock()
	return rec, ok
}

// Snapshot returns owned copies of all records, ordered by identifier.
// The map itself is unordered; sorting makes iteration deterministic for
// introspection output.
func (r *Registry) Snapshot() []Record {
	r.mu.RLock()
	recs := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		recs = append(recs, rec)
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs
}

// Len reports the number of registered instances
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
