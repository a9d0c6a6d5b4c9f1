package wasmgen

import (
	"github.com/tetratelabs/wazero/api"
)

// Value types accepted in generated signatures. I32..F64 alias the wazero
// api constants; V128, Funcref, and Extern carry the remaining binary-format
// encodings, which the api package does not export.
const (
	I32     = api.ValueTypeI32
	I64     = api.ValueTypeI64
	F32     = api.ValueTypeF32
	F64     = api.ValueTypeF64
	V128    api.ValueType = 0x7b
	Funcref api.ValueType = 0x70
	Extern                = api.ValueTypeExternref
)

// Section ids and export kinds for the parts of the format the builder emits.
const (
	secType   byte = 1
	secImport byte = 2
	secFunc   byte = 3
	secMemory byte = 5
	secGlobal byte = 6
	secExport byte = 7
	secStart  byte = 8
	secCode   byte = 10

	kindFunc   byte = 0
	kindMemory byte = 2
	kindGlobal byte = 3

	funcTypeTag byte = 0x60
)

type sig struct {
	params  []api.ValueType
	results []api.ValueType
}

type funcImport struct {
	module  string
	name    string
	typeIdx uint32
}

type definedFunc struct {
	exportName string // empty leaves the function unexported
	typeIdx    uint32
	body       []byte
}

type globalDef struct {
	exportName string
	init       int32
}

// Module accumulates declarations and encodes them into a binary.
// Methods chain; Encode may be called repeatedly.
type Module struct {
	types      []sig
	imports    []funcImport
	funcs      []definedFunc
	globals    []globalDef
	memoryName string
	hasMemory  bool
	startFunc  int // position in funcs, -1 when unset
}

// New creates an empty module builder
func New() *Module {
	return &Module{startFunc: -1}
}

// typeIndex interns a function signature, reusing an existing entry when the
// same shape was declared before.
func (m *Module) typeIndex(params, results []api.ValueType) uint32 {
	for i, t := range m.types {
		if sigEqual(t.params, params) && sigEqual(t.results, results) {
			return uint32(i)
		}
	}
	m.types = append(m.types, sig{params: params, results: results})
	return uint32(len(m.types) - 1)
}

func sigEqual(a, b []api.ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ImportFunc declares a function import. Instantiating the result against an
// empty import set then fails, which is exactly what instantiation-failure
// tests need.
func (m *Module) ImportFunc(module, name string, params, results []api.ValueType) *Module {
	idx := m.typeIndex(params, results)
	m.imports = append(m.imports, funcImport{module: module, name: name, typeIdx: idx})
	return m
}

// ExportFunc defines a function with the given signature and body and
// exports it under name. A nil body produces an empty function, legal for
// any signature with no results.
func (m *Module) ExportFunc(name string, params, results []api.ValueType, body *Body) *Module {
	idx := m.typeIndex(params, results)
	m.funcs = append(m.funcs, definedFunc{exportName: name, typeIdx: idx, body: body.bytes()})
	return m
}

// StartTrap adds an unexported function that traps and marks it as the
// module's start function, so instantiation faults after a clean compile.
func (m *Module) StartTrap() *Module {
	idx := m.typeIndex(nil, nil)
	m.funcs = append(m.funcs, definedFunc{typeIdx: idx, body: NewBody().Unreachable().bytes()})
	m.startFunc = len(m.funcs) - 1
	return m
}

// ExportMemory adds a one-page linear memory exported under name
func (m *Module) ExportMemory(name string) *Module {
	m.hasMemory = true
	m.memoryName = name
	return m
}

// ExportGlobalI32 adds an immutable i32 global exported under name
func (m *Module) ExportGlobalI32(name string, init int32) *Module {
	m.globals = append(m.globals, globalDef{exportName: name, init: init})
	return m
}

// Encode produces the module binary
func (m *Module) Encode() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	// Type section
	var sec []byte
	if len(m.types) > 0 {
		sec = appendUleb(nil, uint32(len(m.types)))
		for _, t := range m.types {
			sec = append(sec, funcTypeTag)
			sec = appendUleb(sec, uint32(len(t.params)))
			for _, p := range t.params {
				sec = append(sec, byte(p))
			}
			sec = appendUleb(sec, uint32(len(t.results)))
			for _, r := range t.results {
				sec = append(sec, byte(r))
			}
		}
		out = appendSection(out, secType, sec)
	}

	// Import section
	if len(m.imports) > 0 {
		sec = appendUleb(nil, uint32(len(m.imports)))
		for _, imp := range m.imports {
			sec = appendName(sec, imp.module)
			sec = appendName(sec, imp.name)
			sec = append(sec, kindFunc)
			sec = appendUleb(sec, imp.typeIdx)
		}
		out = appendSection(out, secImport, sec)
	}

	// Function section
	if len(m.funcs) > 0 {
		sec = appendUleb(nil, uint32(len(m.funcs)))
		for _, f := range m.funcs {
			sec = appendUleb(sec, f.typeIdx)
		}
		out = appendSection(out, secFunc, sec)
	}

	// Memory section: one memory, min one page, no max
	if m.hasMemory {
		sec = appendUleb(nil, 1)
		sec = append(sec, 0x00)
		sec = appendUleb(sec, 1)
		out = appendSection(out, secMemory, sec)
	}

	// Global section: immutable i32 globals with const initializers
	if len(m.globals) > 0 {
		sec = appendUleb(nil, uint32(len(m.globals)))
		for _, g := range m.globals {
			sec = append(sec, byte(I32), 0x00, opI32Const)
			sec = appendSleb32(sec, g.init)
			sec = append(sec, opEnd)
		}
		out = appendSection(out, secGlobal, sec)
	}

	// Export section. Function indices start after imports.
	numExports := len(m.globals)
	if m.hasMemory {
		numExports++
	}
	for _, f := range m.funcs {
		if f.exportName != "" {
			numExports++
		}
	}
	if numExports > 0 {
		sec = appendUleb(nil, uint32(numExports))
		for i, f := range m.funcs {
			if f.exportName == "" {
				continue
			}
			sec = appendName(sec, f.exportName)
			sec = append(sec, kindFunc)
			sec = appendUleb(sec, uint32(len(m.imports)+i))
		}
		if m.hasMemory {
			sec = appendName(sec, m.memoryName)
			sec = append(sec, kindMemory)
			sec = appendUleb(sec, 0)
		}
		for i, g := range m.globals {
			sec = appendName(sec, g.exportName)
			sec = append(sec, kindGlobal)
			sec = appendUleb(sec, uint32(i))
		}
		out = appendSection(out, secExport, sec)
	}

	// Start section
	if m.startFunc >= 0 {
		sec = appendUleb(nil, uint32(len(m.imports)+m.startFunc))
		out = appendSection(out, secStart, sec)
	}

	// Code section: no locals, body, end
	if len(m.funcs) > 0 {
		sec = appendUleb(nil, uint32(len(m.funcs)))
		for _, f := range m.funcs {
			body := append([]byte{0x00}, f.body...)
			body = append(body, opEnd)
			sec = appendUleb(sec, uint32(len(body)))
			sec = append(sec, body...)
		}
		out = appendSection(out, secCode, sec)
	}

	return out
}

// SumI32 returns a module exporting sum(i32, i32) -> i32, the canonical
// loadable test module.
func SumI32() []byte {
	return New().
		ExportFunc("sum", []api.ValueType{I32, I32}, []api.ValueType{I32},
			NewBody().LocalGet(0).LocalGet(1).I32Add()).
		Encode()
}

// AddI64 returns a module exporting add64(i64, i64) -> i64.
func AddI64() []byte {
	return New().
		ExportFunc("add64", []api.ValueType{I64, I64}, []api.ValueType{I64},
			NewBody().LocalGet(0).LocalGet(1).I64Add()).
		Encode()
}
