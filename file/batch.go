package file

import (
	"fmt"

	"github.com/arinc665/arinc665"
	"github.com/arinc665/arinc665/primitives"
)

// BatchLoadRef is one (load header filename, load part number) pair inside
// a BatchTargetHardware entry's ordered load list.
type BatchLoadRef struct {
	HeaderFilename string
	PartNumber     string
}

// BatchTargetHardware is one entry of a Batch file's target-hardware table
// (§4.2.5): a target-HW-ID-with-position and the ordered loads to
// apply to it.
type BatchTargetHardware struct {
	IDWithPosition string
	Loads          []BatchLoadRef
}

// BatchFile models a *.LUB Batch file. Like the list files it only ever
// carries the simple one-checksum trailer — there is no load-style
// two-pass CRC here, since a batch is a manifest, not a payload.
type BatchFile struct {
	Version        arinc665.Version
	PartNumber     string
	Comment        string
	TargetHardware []BatchTargetHardware
}

const batchFixedHeader = 4 + 4 + 4 // PN ptr, Comment ptr, TargetHardware table ptr

// Encode renders b as a complete *.LUB byte image.
func (b BatchFile) Encode() ([]byte, error) {
	fv, err := arinc665.FormatVersionFor(b.Version)
	if err != nil {
		return nil, err
	}

	pnBytes, err := primitives.EncodeString(b.PartNumber)
	if err != nil {
		return nil, err
	}
	commentBytes, err := primitives.EncodeString(b.Comment)
	if err != nil {
		return nil, err
	}
	entryBodies := make([][]byte, len(b.TargetHardware))
	for i, e := range b.TargetHardware {
		eb, err := encodeBatchTargetHardware(e)
		if err != nil {
			return nil, fmt.Errorf("file: encode batch target hardware %d: %w", i, err)
		}
		entryBodies[i] = eb
	}
	tableBytes := encodeCountedChain(entryBodies)

	body := make([]byte, batchFixedHeader)
	pos := batchFixedHeader

	pnOff := pos
	body = append(body, pnBytes...)
	pos += len(pnBytes)

	commentOff := pos
	body = append(body, commentBytes...)
	pos += len(commentBytes)

	tableOff := pos
	body = append(body, tableBytes...)

	primitives.Order.PutUint32(body[0:4], uint32(primitives.WordOffsetForByte(int64(envelopeHeaderLen+pnOff))))
	primitives.Order.PutUint32(body[4:8], uint32(primitives.WordOffsetForByte(int64(envelopeHeaderLen+commentOff))))
	primitives.Order.PutUint32(body[8:12], uint32(primitives.WordOffsetForByte(int64(envelopeHeaderLen+tableOff))))

	return AssembleSimple(fv, body)
}

// DecodeBatch decodes a complete *.LUB byte image.
func DecodeBatch(buf []byte) (BatchFile, error) {
	const name = "<batch file>"
	_, version, body, err := ParseSimple(name, buf)
	if err != nil {
		return BatchFile{}, err
	}
	if len(body) < batchFixedHeader {
		return BatchFile{}, &arinc665.InvalidFileError{File: name, Reason: "body shorter than fixed header"}
	}

	pnPtr := primitives.WordOffset(primitives.Order.Uint32(body[0:4]))
	commentPtr := primitives.WordOffset(primitives.Order.Uint32(body[4:8]))
	tablePtr := primitives.WordOffset(primitives.Order.Uint32(body[8:12]))

	for _, p := range []primitives.WordOffset{pnPtr, commentPtr, tablePtr} {
		if err := validatePointer(name, p, len(buf)); err != nil {
			return BatchFile{}, err
		}
	}

	pn, _, err := primitives.DecodeString(body, bodyOffset(pnPtr))
	if err != nil {
		return BatchFile{}, fmt.Errorf("file: batch part number: %w", err)
	}
	comment, _, err := primitives.DecodeString(body, bodyOffset(commentPtr))
	if err != nil {
		return BatchFile{}, fmt.Errorf("file: batch comment: %w", err)
	}

	var entries []BatchTargetHardware
	_, err = decodeCountedChain(name, body, bodyOffset(tablePtr), func(entry []byte) (int, error) {
		e, consumed, err := decodeBatchTargetHardware(entry)
		if err != nil {
			return 0, err
		}
		entries = append(entries, e)
		return consumed, nil
	})
	if err != nil {
		return BatchFile{}, err
	}

	return BatchFile{
		Version:        version,
		PartNumber:     pn,
		Comment:        comment,
		TargetHardware: entries,
	}, nil
}

func encodeBatchTargetHardware(e BatchTargetHardware) ([]byte, error) {
	idBytes, err := primitives.EncodeString(e.IDWithPosition)
	if err != nil {
		return nil, err
	}
	buf := append([]byte{}, idBytes...)
	var count [2]byte
	primitives.Order.PutUint16(count[:], uint16(len(e.Loads)))
	buf = append(buf, count[:]...)
	for _, ref := range e.Loads {
		nameBytes, err := primitives.EncodeString(ref.HeaderFilename)
		if err != nil {
			return nil, err
		}
		pnBytes, err := primitives.EncodeString(ref.PartNumber)
		if err != nil {
			return nil, err
		}
		buf = append(buf, nameBytes...)
		buf = append(buf, pnBytes...)
	}
	return buf, nil
}

func decodeBatchTargetHardware(buf []byte) (BatchTargetHardware, int, error) {
	id, n1, err := primitives.DecodeString(buf, 0)
	if err != nil {
		return BatchTargetHardware{}, 0, err
	}
	pos := n1
	if pos+2 > len(buf) {
		return BatchTargetHardware{}, 0, errOutOfRange("batch target hardware load count")
	}
	count := int(primitives.Order.Uint16(buf[pos : pos+2]))
	pos += 2
	loads := make([]BatchLoadRef, 0, count)
	for i := 0; i < count; i++ {
		filename, n1, err := primitives.DecodeString(buf, pos)
		if err != nil {
			return BatchTargetHardware{}, 0, err
		}
		pos += n1
		pn, n2, err := primitives.DecodeString(buf, pos)
		if err != nil {
			return BatchTargetHardware{}, 0, err
		}
		pos += n2
		loads = append(loads, BatchLoadRef{HeaderFilename: filename, PartNumber: pn})
	}
	return BatchTargetHardware{IDWithPosition: id, Loads: loads}, pos, nil
}
