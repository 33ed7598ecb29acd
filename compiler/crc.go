package compiler

import "github.com/arinc665/arinc665/primitives"

// crc16Of computes the per-row CRC-16 FILES.LUM and Load Header entries use
// for a whole file's bytes as written (not the File CRC of §4.2's outer
// envelope, which only ever covers its own file's own trailer-exclusive
// prefix).
func crc16Of(b []byte) uint16 {
	return primitives.CRC16(0xFFFF, b)
}
