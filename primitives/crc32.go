package primitives

import "hash/crc32"

// LoadCRCTable is the standard IEEE 802.3 CRC-32 table used for the
// whole-load CRC-32 (§4.1, §4.2.4).
var LoadCRCTable = crc32.IEEETable

// LoadCRC32 computes the ARINC 665 Load CRC over p.
func LoadCRC32(p []byte) uint32 {
	return crc32.Checksum(p, LoadCRCTable)
}
