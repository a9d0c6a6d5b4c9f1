package engine

import "github.com/tetratelabs/wazero/api"

// Value types not exposed by the wazero api package. The byte values are
// the WebAssembly binary-format encodings, same scheme as api.ValueTypeI32
// and friends.
const (
	ValueTypeV128    api.ValueType = 0x7b
	ValueTypeFuncref api.ValueType = 0x70
)

// ValueTypeName returns the text-format name of a value type, covering the
// vector and funcref types api.ValueTypeName reports as "unknown".
func ValueTypeName(t api.ValueType) string {
	switch t {
	case ValueTypeV128:
		return "v128"
	case ValueTypeFuncref:
		return "funcref"
	}
	return api.ValueTypeName(t)
}
