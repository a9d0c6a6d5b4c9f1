package bridge

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/tessob/wasmgate/engine"
	"github.com/tessob/wasmgate/errors"
	"github.com/tessob/wasmgate/registry"
)

// Invoke calls an exported function on a registered instance.
//
// args supplies one int64 per declared parameter. The returned bool
// reports whether the call produced a value: true for a single i32 or
// i64 result, false otherwise.
func Invoke(ctx context.Context, reg *registry.Registry, id, name string, args []int64) (int64, bool, error) {
	rec, ok := reg.Get(id)
	if !ok {
		return 0, false, errors.InstanceNotFound(id)
	}

	fn := rec.Instance.Function(name)
	if fn == nil {
		return 0, false, errors.FunctionNotFound(id, name)
	}

	def := fn.Definition()
	params := def.ParamTypes()
	if len(params) != len(args) {
		return 0, false, errors.ArityMismatch(id, name, len(params), len(args))
	}

	stack, err := coerceArgs(id, name, params, args)
	if err != nil {
		return 0, false, err
	}

	results, err := fn.Call(ctx, stack...)
	if err != nil {
		return 0, false, errors.ExecutionFault(id, name, err)
	}

	return shapeResult(def.ResultTypes(), results)
}

// coerceArgs lowers int64 arguments onto the guest stack. i32
// parameters keep the low 32 bits of the argument, i64 parameters pass
// through. Any other parameter type rejects the call before the guest
// runs.
func coerceArgs(id, name string, params []api.ValueType, args []int64) ([]uint64, error) {
	stack := make([]uint64, len(args))
	for i, p := range params {
		switch p {
		case api.ValueTypeI32:
			stack[i] = uint64(uint32(args[i]))
		case api.ValueTypeI64:
			stack[i] = uint64(args[i])
		default:
			return nil, errors.UnsupportedParam(id, name, i, engine.ValueTypeName(p))
		}
	}
	return stack, nil
}

// shapeResult maps the raw result stack to at most one int64. A single
// i32 result is sign extended, a single i64 result is reinterpreted
// as-is. Everything else, including an empty result list, reports no
// value.
func shapeResult(types []api.ValueType, results []uint64) (int64, bool, error) {
	if len(types) != 1 || len(results) != 1 {
		return 0, false, nil
	}
	switch types[0] {
	case api.ValueTypeI32:
		return int64(int32(uint32(results[0]))), true, nil
	case api.ValueTypeI64:
		return int64(results[0]), true, nil
	default:
		return 0, false, nil
	}
}
