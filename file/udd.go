package file

import "github.com/arinc665/arinc665/primitives"

// User Defined Data blocks are opaque, so — like every other variable-size
// field this codec family addresses by pointer — they carry their own
// 16-bit byte-length prefix at the pointer's target. Invariant 4 (spec
// §3.2) requires 2-byte alignment; encodeUDD enforces it by padding, and
// per Open Question 2 the pad is part of the canonical value, so it
// round-trips on re-encode rather than being stripped.
func encodeUDD(data []byte) []byte {
	padded := primitives.PadUDD(data)
	buf := make([]byte, 2+len(padded))
	primitives.Order.PutUint16(buf[0:2], uint16(len(padded)))
	copy(buf[2:], padded)
	return buf
}

func decodeUDD(buf []byte, off int) ([]byte, int, error) {
	if off+2 > len(buf) {
		return nil, 0, errOutOfRange("user defined data length")
	}
	n := int(primitives.Order.Uint16(buf[off : off+2]))
	start := off + 2
	end := start + n
	if end > len(buf) {
		return nil, 0, errOutOfRange("user defined data body")
	}
	return append([]byte{}, buf[start:end]...), end - off, nil
}
