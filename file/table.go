package file

import (
	"fmt"

	"github.com/arinc665/arinc665"
	"github.com/arinc665/arinc665/primitives"
)

// Every ARINC 665 row-table (Files table, Loads table, Batches table, a
// Load Header's Data-Files/Support-Files tables, a Batch's target-hardware
// table) is a singly linked chain: each entry opens with a 16-bit
// next-entry pointer (in 16-bit words, relative to the entry's own start;
// 0 means "this is the last entry"). The Files/Loads/Batches/target-hardware
// tables additionally open with a 16-bit entry count. These helpers
// implement the chain once so every codec shares the walking/validation
// logic instead of re-deriving it (Design Note "Pointers as 16-bit-word
// counts").
//
// Open Question 1 (§9) is resolved here to the stricter variant: a
// next-entry pointer of 0 on any entry that is not actually last is a fatal
// InvalidFileError, and conversely a nonzero pointer on the table's last
// entry (by count, or by actually reaching the end of buf) is equally
// fatal.

// encodeChain concatenates entries into a next-pointer-prefixed chain.
// Each element of bodies is one entry's type-specific encoding (excluding
// the next-pointer field); the caller is responsible for 2-byte-aligning
// each body.
func encodeChain(bodies [][]byte) []byte {
	offsets := make([]int, len(bodies))
	pos := 0
	for i, b := range bodies {
		offsets[i] = pos
		pos += 2 + len(b)
	}
	buf := make([]byte, pos)
	for i, b := range bodies {
		var next uint16
		if i < len(bodies)-1 {
			next = uint16((offsets[i+1] - offsets[i]) / 2)
		}
		primitives.Order.PutUint16(buf[offsets[i]:offsets[i]+2], next)
		copy(buf[offsets[i]+2:], b)
	}
	return buf
}

// encodeCountedChain prefixes encodeChain's output with a 16-bit entry
// count, per the Files/Loads/Batches/target-hardware table shape.
func encodeCountedChain(bodies [][]byte) []byte {
	chain := encodeChain(bodies)
	buf := make([]byte, 2+len(chain))
	primitives.Order.PutUint16(buf[0:2], uint16(len(bodies)))
	copy(buf[2:], chain)
	return buf
}

// parseEntryFunc decodes one entry's type-specific fields from body
// (everything after the next-pointer) and returns how many bytes it
// consumed.
type parseEntryFunc func(body []byte) (consumed int, err error)

// decodeCountedChain walks a count-prefixed chained table starting at
// offset off in buf, calling parseOne once per entry, and returns the total
// number of bytes consumed (including the count prefix).
func decodeCountedChain(name string, buf []byte, off int, parseOne parseEntryFunc) (int, error) {
	if off+2 > len(buf) {
		return 0, &arinc665.InvalidFileError{File: name, Reason: "table count out of range"}
	}
	count := int(primitives.Order.Uint16(buf[off : off+2]))
	pos := off + 2
	for i := 0; i < count; i++ {
		consumed, err := decodeOneEntry(name, buf, pos, i == count-1, parseOne)
		if err != nil {
			return 0, err
		}
		pos += consumed
	}
	return pos - off, nil
}

// decodeChain walks an uncounted chained table (Load Header data/support
// file tables) starting at offset off in buf until an entry's next-pointer
// is 0, returning the total bytes consumed and the number of entries found.
func decodeChain(name string, buf []byte, off int, parseOne parseEntryFunc) (consumed int, count int, err error) {
	pos := off
	for {
		if pos+2 > len(buf) {
			return 0, 0, &arinc665.InvalidFileError{File: name, Reason: "chained table entry out of range"}
		}
		next := primitives.Order.Uint16(buf[pos : pos+2])
		entryConsumed, perr := parseOne(buf[pos+2:])
		if perr != nil {
			return 0, 0, perr
		}
		entryLen := 2 + entryConsumed
		count++
		pos += entryLen
		if next == 0 {
			break
		}
		if int(next)*2 != entryLen {
			return 0, 0, &arinc665.InvalidFileError{
				File:   name,
				Reason: fmt.Sprintf("next-entry pointer %d does not match entry length %d", next, entryLen),
			}
		}
	}
	return pos - off, count, nil
}

func decodeOneEntry(name string, buf []byte, pos int, isLast bool, parseOne parseEntryFunc) (int, error) {
	if pos+2 > len(buf) {
		return 0, &arinc665.InvalidFileError{File: name, Reason: "table entry out of range"}
	}
	next := primitives.Order.Uint16(buf[pos : pos+2])
	consumed, err := parseOne(buf[pos+2:])
	if err != nil {
		return 0, err
	}
	entryLen := 2 + consumed
	if isLast {
		if next != 0 {
			return 0, &arinc665.InvalidFileError{File: name, Reason: "last table entry has a nonzero next-entry pointer"}
		}
	} else {
		if next == 0 {
			return 0, &arinc665.InvalidFileError{File: name, Reason: "non-last table entry has a zero next-entry pointer"}
		}
		if int(next)*2 != entryLen {
			return 0, &arinc665.InvalidFileError{
				File:   name,
				Reason: fmt.Sprintf("next-entry pointer %d does not match entry length %d", next, entryLen),
			}
		}
	}
	return entryLen, nil
}
