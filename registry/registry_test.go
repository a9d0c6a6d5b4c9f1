package registry

import (
	"fmt"
	"sync"
	"testing"
)

func TestRegistry_InsertGet(t *testing.T) {
	r := New()

	rec := Record{ID: "id-1", SourcePath: "/tmp/a.wasm"}
	r.Insert(rec)

	got, ok := r.Get("id-1")
	if !ok {
		t.Fatal("Get returned ok=false for inserted record")
	}
	if got.SourcePath != "/tmp/a.wasm" {
		t.Errorf("SourcePath = %q, want %q", got.SourcePath, "/tmp/a.wasm")
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := New()

	if _, ok := r.Get("nope"); ok {
		t.Error("Get returned ok=true for an identifier never inserted")
	}
}

func TestRegistry_InsertReplaces(t *testing.T) {
	r := New()

	r.Insert(Record{ID: "id-1", SourcePath: "old.wasm"})
	r.Insert(Record{ID: "id-1", SourcePath: "new.wasm"})

	got, ok := r.Get("id-1")
	if !ok {
		t.Fatal("record missing after replacement")
	}
	if got.SourcePath != "new.wasm" {
		t.Errorf("SourcePath = %q, want replacement to win", got.SourcePath)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d after replacing the same key, want 1", r.Len())
	}
}

func TestRegistry_SnapshotOrdered(t *testing.T) {
	r := New()

	// Insert out of order; snapshot must come back sorted by id.
	for _, id := range []string{"c", "a", "b"} {
		r.Insert(Record{ID: id})
	}

	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("Snapshot len = %d, want 3", len(snap))
	}
	for i, want := range []string{"a", "b", "c"} {
		if snap[i].ID != want {
			t.Errorf("Snapshot[%d].ID = %q, want %q", i, snap[i].ID, want)
		}
	}
}

func TestRegistry_SnapshotIsOwned(t *testing.T) {
	r := New()
	r.Insert(Record{ID: "x", SourcePath: "one.wasm"})

	snap := r.Snapshot()
	r.Insert(Record{ID: "x", SourcePath: "two.wasm"})

	// The snapshot taken before the replacement still holds the old value.
	if snap[0].SourcePath != "one.wasm" {
		t.Errorf("snapshot mutated by later insert: %q", snap[0].SourcePath)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				r.Insert(Record{ID: fmt.Sprintf("w%d-%d", w, i)})
			}
		}(w)
	}
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				r.Get("w0-0")
				r.Snapshot()
				r.Len()
			}
		}()
	}
	wg.Wait()

	if r.Len() != 200 {
		t.Errorf("Len = %d after concurrent inserts, want 200", r.Len())
	}
}
