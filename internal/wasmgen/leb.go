package wasmgen

// LEB128 and name encoding helpers for the WebAssembly binary format.

func appendUleb(dst []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}

func appendSleb32(dst []byte, v int32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}

func appendSleb64(dst []byte, v int64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}

// appendName writes a length-prefixed UTF-8 name.
func appendName(dst []byte, s string) []byte {
	dst = appendUleb(dst, uint32(len(s)))
	return append(dst, s...)
}

// appendSection writes a section id, its byte length, and its content.
// Empty sections are skipped entirely.
func appendSection(dst []byte, id byte, content []byte) []byte {
	if len(content) == 0 {
		return dst
	}
	dst = append(dst, id)
	dst = appendUleb(dst, uint32(len(content)))
	return append(dst, content...)
}
