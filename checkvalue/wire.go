package checkvalue

import (
	"fmt"

	"github.com/arinc665/arinc665/primitives"
)

// Encode renders v in its canonical wire form: a 16-bit length (in 16-bit
// words, including the length/type/value fields themselves), a 16-bit type
// id, then the value bytes, followed by one zero pad byte when their count
// is odd (a CRC-8 value) so the structure stays 2-byte aligned. A NotUsed
// value encodes as the empty slice (§4.1: "if the entire structure is
// zero-length, the field is Not Used").
func Encode(v Value) ([]byte, error) {
	if v.IsNotUsed() {
		return nil, nil
	}
	data := v.Data
	if len(data)%2 != 0 {
		data = append(append([]byte{}, data...), 0)
	}
	totalBytes := 2 + 2 + len(data)
	if totalBytes%2 != 0 {
		return nil, fmt.Errorf("checkvalue: encoded structure must be 2-byte aligned")
	}
	lengthWords := uint16(totalBytes / 2)
	buf := make([]byte, 4, totalBytes)
	primitives.Order.PutUint16(buf[0:2], lengthWords)
	primitives.Order.PutUint16(buf[2:4], uint16(v.Type))
	buf = append(buf, data...)
	return buf, nil
}

// Decode decodes a Check Value structure starting at offset off in buf,
// returning the value and the number of bytes consumed. A zero-length
// structure decodes to NotUsed and consumes 0 bytes — callers must treat a
// preceding pointer of 0 (or the relevant "absent" convention for the
// enclosing table) as the signal to skip calling Decode at all; Decode
// itself only handles the "present but empty" wire shape used by tables
// that always reserve the length/type prefix. For a type with a fixed digest
// size, value bytes beyond that size (Encode's pad byte) are dropped.
func Decode(buf []byte, off int) (Value, int, error) {
	if off+4 > len(buf) {
		return Value{}, 0, fmt.Errorf("checkvalue: structure header out of range at %d", off)
	}
	lengthWords := primitives.Order.Uint16(buf[off : off+2])
	if lengthWords == 0 {
		return Value{Type: NotUsed}, 0, nil
	}
	totalBytes := int(lengthWords) * 2
	if off+totalBytes > len(buf) {
		return Value{}, 0, fmt.Errorf("checkvalue: structure body out of range at %d (len %d)", off, totalBytes)
	}
	typ := Type(primitives.Order.Uint16(buf[off+2 : off+4]))
	data := append([]byte{}, buf[off+4:off+totalBytes]...)
	if size, err := DigestSize(typ); err == nil && size < len(data) {
		data = data[:size]
	}
	return Value{Type: typ, Data: data}, totalBytes, nil
}

// Compute streams p through a fresh generator for typ and returns the
// resulting Value. It is a convenience wrapper over NewGenerator for the
// common one-shot case; two-pass computations (Load Header Check Values)
// use NewGenerator directly so header and payload bytes can be streamed in
// separate calls.
func Compute(typ Type, p []byte) (Value, error) {
	if typ == NotUsed {
		return Value{Type: NotUsed}, nil
	}
	gen, err := NewGenerator(typ)
	if err != nil {
		return Value{}, err
	}
	gen.Write(p)
	return gen.Finalize(), nil
}
