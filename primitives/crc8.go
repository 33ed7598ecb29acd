package primitives

import "hash"

// CRC8Polynomial is the polynomial used for the Check-Value plug-in set's
// CRC-8 algorithm. Same grounding note as CRC16Polynomial: no pack/ecosystem
// library covers CRC-8, so this mirrors the CRC-16 engine's table-driven
// shape.
const CRC8Polynomial uint8 = 0x07

var crc8Table = makeCRC8Table(CRC8Polynomial)

func makeCRC8Table(poly uint8) [256]uint8 {
	var table [256]uint8
	for i := 0; i < 256; i++ {
		crc := uint8(i)
		for bit := 0; bit < 8; bit++ {
			if crc&0x80 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}

// CRC8 computes a CRC-8 over p starting from init.
func CRC8(init uint8, p []byte) uint8 {
	crc := init
	for _, b := range p {
		crc = crc8Table[crc^b]
	}
	return crc
}

type crc8Hash struct {
	crc uint8
}

// NewCRC8 returns a hash.Hash computing CRC-8, initialized to 0.
func NewCRC8() hash.Hash {
	return &crc8Hash{}
}

func (h *crc8Hash) Write(p []byte) (int, error) {
	h.crc = CRC8(h.crc, p)
	return len(p), nil
}

func (h *crc8Hash) Sum(b []byte) []byte { return append(b, h.crc) }
func (h *crc8Hash) Reset()              { h.crc = 0 }
func (h *crc8Hash) Size() int           { return 1 }
func (h *crc8Hash) BlockSize() int      { return 1 }
