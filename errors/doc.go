// Package errors provides structured error types for the wasmgate library.
//
// Errors are categorized by Stage (where in the pipeline the error occurred)
// and Kind (error category). The Error type includes the instance identifier
// and function name where known, plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.StageCall, errors.KindUnsupportedType).
//		Instance(id).
//		Function("sum").
//		Detail("parameter 2 has type f64").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InstanceNotFound(id)
//	err := errors.ArityMismatch(id, "sum", 2, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Stage and Kind, so callers can test a category without
// reconstructing the full error:
//
//	errors.Is(err, &errors.Error{Stage: errors.StageCall, Kind: errors.KindArityMismatch})
package errors
