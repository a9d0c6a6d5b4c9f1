package registry

import (
	"testing"
)

func TestIdentityFor_Deterministic(t *testing.T) {
	content := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	first := IdentityFor(content)
	second := IdentityFor(content)

	if first != second {
		t.Errorf("identical bytes produced different identifiers: %q vs %q", first, second)
	}
}

func TestIdentityFor_DistinctContent(t *testing.T) {
	a := IdentityFor([]byte("module a"))
	b := IdentityFor([]byte("module b"))

	if a == b {
		t.Errorf("distinct bytes produced the same identifier %q", a)
	}
}

func TestIdentityFor_Shape(t *testing.T) {
	id := IdentityFor([]byte("anything"))

	if len(id) != 36 {
		t.Fatalf("identifier length = %d, want 36 (hyphenated UUID)", len(id))
	}
	for _, pos := range []int{8, 13, 18, 23} {
		if id[pos] != '-' {
			t.Errorf("identifier %q missing hyphen at position %d", id, pos)
		}
	}
	// Version nibble: SHA-1 name-based UUIDs are version 5.
	if id[14] != '5' {
		t.Errorf("identifier %q has version nibble %c, want 5", id, id[14])
	}
}

func TestIdentityFor_EmptyInput(t *testing.T) {
	// Degenerate but legal: hashing zero bytes still yields a stable id.
	if IdentityFor(nil) != IdentityFor([]byte{}) {
		t.Error("nil and empty slices should hash identically")
	}
}
