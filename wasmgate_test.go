package wasmgate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tetratelabs/wazero/api"

	"github.com/tessob/wasmgate"
	"github.com/tessob/wasmgate/errors"
	"github.com/tessob/wasmgate/internal/wasmgen"
)

func newGate(t *testing.T) *wasmgate.Gate {
	t.Helper()
	gate, err := wasmgate.New(context.Background(), nil)
	if err != nil {
		t.Fatalf("wasmgate.New: %v", err)
	}
	t.Cleanup(func() { gate.Close(context.Background()) })
	return gate
}

func writeModule(t *testing.T, bin []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "module.wasm")
	if err := os.WriteFile(path, bin, 0o644); err != nil {
		t.Fatalf("write module: %v", err)
	}
	return path
}

func TestGate_LoadAndInvoke(t *testing.T) {
	gate := newGate(t)
	path := writeModule(t, wasmgen.SumI32())

	id, err := gate.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	value, hasValue, err := gate.Invoke(context.Background(), id, "sum", 2, 3)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !hasValue || value != 5 {
		t.Errorf("sum(2, 3) = (%d, %t), want (5, true)", value, hasValue)
	}
}

func TestGate_LoadMissingFile(t *testing.T) {
	gate := newGate(t)

	_, err := gate.Load(context.Background(), filepath.Join(t.TempDir(), "absent.wasm"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, &errors.Error{Stage: errors.StageLoad, Kind: errors.KindIO}) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestGate_LoadGarbage(t *testing.T) {
	gate := newGate(t)

	_, err := gate.LoadBytes(context.Background(), []byte("not a wasm module"), "garbage.wasm")
	if err == nil {
		t.Fatal("expected error for malformed bytes")
	}
	if !errors.Is(err, &errors.Error{Stage: errors.StageLoad, Kind: errors.KindCompile}) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestGate_LoadModuleWithImports(t *testing.T) {
	gate := newGate(t)

	bin := wasmgen.New().
		ImportFunc("env", "host_clock", nil, []api.ValueType{wasmgen.I64}).
		ExportFunc("noop", nil, nil, nil).
		Encode()

	_, err := gate.LoadBytes(context.Background(), bin, "imports.wasm")
	if err == nil {
		t.Fatal("expected error for module with imports")
	}
	if !errors.Is(err, &errors.Error{Stage: errors.StageLoad, Kind: errors.KindInstantiation}) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestGate_StartTrapIsRecoverable(t *testing.T) {
	gate := newGate(t)

	_, err := gate.LoadBytes(context.Background(), wasmgen.New().StartTrap().Encode(), "trap.wasm")
	if err == nil {
		t.Fatal("expected error for trapping start section")
	}
	if !errors.Is(err, &errors.Error{Stage: errors.StageLoad, Kind: errors.KindInstantiation}) {
		t.Fatalf("wrong error: %v", err)
	}

	// The failure must not leak into the registry or poison the gate.
	if rows := gate.Exports(); len(rows) != 0 {
		t.Errorf("failed load left registry entries: %+v", rows)
	}
	id, err := gate.LoadBytes(context.Background(), wasmgen.SumI32(), "sum.wasm")
	if err != nil {
		t.Fatalf("load after failure: %v", err)
	}
	if value, _, err := gate.Invoke(context.Background(), id, "sum", 1, 1); err != nil || value != 2 {
		t.Errorf("gate unusable after failed load: value=%d err=%v", value, err)
	}
}

func TestGate_SameBytesSameIdentity(t *testing.T) {
	gate := newGate(t)
	bin := wasmgen.SumI32()

	first, err := gate.LoadBytes(context.Background(), bin, "a.wasm")
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := gate.LoadBytes(context.Background(), bin, "b.wasm")
	if err != nil {
		t.Fatalf("second load: %v", err)
	}

	if first != second {
		t.Errorf("identifiers diverged for identical bytes: %s vs %s", first, second)
	}
	if rows := gate.Exports(); len(rows) != 1 {
		t.Errorf("re-load duplicated the instance: %+v", rows)
	}
}

func TestGate_DistinctBytesDistinctIdentity(t *testing.T) {
	gate := newGate(t)

	a, err := gate.LoadBytes(context.Background(), wasmgen.SumI32(), "a.wasm")
	if err != nil {
		t.Fatalf("load a: %v", err)
	}
	b, err := gate.LoadBytes(context.Background(), wasmgen.AddI64(), "b.wasm")
	if err != nil {
		t.Fatalf("load b: %v", err)
	}

	if a == b {
		t.Errorf("distinct modules share identifier %s", a)
	}
}

func TestGate_ExportsOf(t *testing.T) {
	gate := newGate(t)

	id, err := gate.LoadBytes(context.Background(), wasmgen.SumI32(), "sum.wasm")
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}

	rows, err := gate.ExportsOf(id)
	if err != nil {
		t.Fatalf("ExportsOf: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1: %+v", len(rows), rows)
	}
	row := rows[0]
	if row.InstanceID != id || row.Name != "sum" || row.Inputs != "int4,int4" || row.Outputs != "int4" {
		t.Errorf("unexpected row: %+v", row)
	}

	_, err = gate.ExportsOf("ffffffff-ffff-ffff-ffff-ffffffffffff")
	if !errors.Is(err, &errors.Error{Stage: errors.StageLookup, Kind: errors.KindInstanceNotFound}) {
		t.Errorf("wrong error for unknown instance: %v", err)
	}
}

func TestGate_WithOptions(t *testing.T) {
	gate, err := wasmgate.New(context.Background(), &wasmgate.Options{
		MemoryLimitPages: 16,
		CacheDir:         t.TempDir(),
	})
	if err != nil {
		t.Fatalf("wasmgate.New: %v", err)
	}
	defer gate.Close(context.Background())

	id, err := gate.LoadBytes(context.Background(), wasmgen.SumI32(), "sum.wasm")
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if value, _, err := gate.Invoke(context.Background(), id, "sum", 20, 22); err != nil || value != 42 {
		t.Errorf("sum(20, 22) = %d, err=%v", value, err)
	}
}
