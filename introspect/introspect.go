package introspect

import (
	"sort"
	"strings"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/tessob/wasmgate/engine"
	"github.com/tessob/wasmgate/registry"
)

// Descriptor is one catalog row for an exported function.
type Descriptor struct {
	InstanceID string `json:"instance_id"`
	Name       string `json:"name"`
	Inputs     string `json:"inputs"`
	Outputs    string `json:"outputs"`
}

// List renders the exported functions of every registered instance,
// ordered by instance identifier and export name.
func List(reg *registry.Registry) []Descriptor {
	var out []Descriptor
	for _, rec := range reg.Snapshot() {
		out = append(out, ListInstance(rec)...)
	}
	return out
}

// ListInstance renders the exported functions of a single instance,
// ordered by export name.
func ListInstance(rec registry.Record) []Descriptor {
	defs := rec.Instance.FunctionDefinitions()

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		def := defs[name]
		inputs, ok := renderTypes(def.ParamTypes())
		if !ok {
			skip(rec.ID, name)
			continue
		}
		outputs, ok := renderTypes(def.ResultTypes())
		if !ok {
			skip(rec.ID, name)
			continue
		}
		out = append(out, Descriptor{
			InstanceID: rec.ID,
			Name:       name,
			Inputs:     inputs,
			Outputs:    outputs,
		})
	}
	return out
}

func skip(id, name string) {
	engine.Logger().Warn("skipping export with reference-typed signature",
		zap.String("instance", id),
		zap.String("function", name))
}

// renderTypes joins the tags for a type list. The second return is
// false when the list contains a type with no tag.
func renderTypes(types []api.ValueType) (string, bool) {
	if len(types) == 0 {
		return "", true
	}
	var b strings.Builder
	for i, t := range types {
		tag, ok := typeTag(t)
		if !ok {
			return "", false
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(tag)
	}
	return b.String(), true
}

func typeTag(t api.ValueType) (string, bool) {
	switch t {
	case api.ValueTypeI32:
		return "int4", true
	case api.ValueTypeI64:
		return "int8", true
	case api.ValueTypeF32, api.ValueTypeF64:
		return "numeric", true
	case engine.ValueTypeV128:
		return "decimal", true
	default:
		return "", false
	}
}
