package wasmgen

import (
	"encoding/binary"
	"math"
)

// Instruction opcodes used by generated bodies.
const (
	opUnreachable byte = 0x00
	opEnd         byte = 0x0b
	opDrop        byte = 0x1a
	opLocalGet    byte = 0x20
	opI32Const    byte = 0x41
	opI64Const    byte = 0x42
	opF64Const    byte = 0x44
	opI32Add      byte = 0x6a
	opI32Sub      byte = 0x6b
	opI64Add      byte = 0x7c
)

// Body builds a function's instruction stream. The terminating end opcode
// is appended during module encoding, not here.
type Body struct {
	buf []byte
}

// NewBody creates an empty instruction stream
func NewBody() *Body {
	return &Body{}
}

// LocalGet pushes local i
func (b *Body) LocalGet(i uint32) *Body {
	b.buf = append(b.buf, opLocalGet)
	b.buf = appendUleb(b.buf, i)
	return b
}

// I32Const pushes an i32 constant
func (b *Body) I32Const(v int32) *Body {
	b.buf = append(b.buf, opI32Const)
	b.buf = appendSleb32(b.buf, v)
	return b
}

// I64Const pushes an i64 constant
func (b *Body) I64Const(v int64) *Body {
	b.buf = append(b.buf, opI64Const)
	b.buf = appendSleb64(b.buf, v)
	return b
}

// F64Const pushes an f64 constant
func (b *Body) F64Const(v float64) *Body {
	b.buf = append(b.buf, opF64Const)
	var raw [8]byte
	binary.LittleEndian.PutUint64(raw[:], math.Float64bits(v))
	b.buf = append(b.buf, raw[:]...)
	return b
}

// I32Add pops two i32 values and pushes their sum
func (b *Body) I32Add() *Body {
	b.buf = append(b.buf, opI32Add)
	return b
}

// I32Sub pops two i32 values and pushes their difference
func (b *Body) I32Sub() *Body {
	b.buf = append(b.buf, opI32Sub)
	return b
}

// I64Add pops two i64 values and pushes their sum
func (b *Body) I64Add() *Body {
	b.buf = append(b.buf, opI64Add)
	return b
}

// Drop discards the top of the stack
func (b *Body) Drop() *Body {
	b.buf = append(b.buf, opDrop)
	return b
}

// Unreachable traps immediately
func (b *Body) Unreachable() *Body {
	b.buf = append(b.buf, opUnreachable)
	return b
}

func (b *Body) bytes() []byte {
	if b == nil {
		return nil
	}
	return b.buf
}
