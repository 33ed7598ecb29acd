package file

import (
	"fmt"

	"github.com/arinc665/arinc665"
	"github.com/arinc665/arinc665/primitives"
)

// BatchListRow is one entry of a BatchListFile's batches table (§4.2.3).
type BatchListRow struct {
	Filename             string
	PartNumber           string
	MemberSequenceNumber uint16
}

// BatchListFile models BATCHES.LUM.
type BatchListFile struct {
	Version                 arinc665.Version
	MediaSetPN              string
	MediaSequenceNumber     uint8
	NumberOfMediaSetMembers uint8
	Batches                 []BatchListRow
	UserDefinedData         []byte
}

const batchListFixedHeader = 4 + 1 + 1 + 4 + 4

// Encode renders b as a complete BATCHES.LUM byte image.
func (b BatchListFile) Encode() ([]byte, error) {
	fv, err := arinc665.FormatVersionFor(b.Version)
	if err != nil {
		return nil, err
	}

	pnBytes, err := primitives.EncodeString(b.MediaSetPN)
	if err != nil {
		return nil, err
	}
	rowBodies := make([][]byte, len(b.Batches))
	for i, row := range b.Batches {
		rb, err := encodeBatchListRow(row)
		if err != nil {
			return nil, fmt.Errorf("file: encode BATCHES.LUM row %d: %w", i, err)
		}
		rowBodies[i] = rb
	}
	tableBytes := encodeCountedChain(rowBodies)
	uddBytes := encodeUDD(b.UserDefinedData)

	body := make([]byte, batchListFixedHeader)
	pos := batchListFixedHeader

	pnOff := pos
	body = append(body, pnBytes...)
	pos += len(pnBytes)

	body[4] = b.MediaSequenceNumber
	body[5] = b.NumberOfMediaSetMembers

	tableOff := pos
	body = append(body, tableBytes...)
	pos += len(tableBytes)

	uddOff := pos
	body = append(body, uddBytes...)

	primitives.Order.PutUint32(body[0:4], uint32(primitives.WordOffsetForByte(int64(envelopeHeaderLen+pnOff))))
	primitives.Order.PutUint32(body[6:10], uint32(primitives.WordOffsetForByte(int64(envelopeHeaderLen+tableOff))))
	primitives.Order.PutUint32(body[10:14], uint32(primitives.WordOffsetForByte(int64(envelopeHeaderLen+uddOff))))

	return AssembleSimple(fv, body)
}

// DecodeBatchList decodes a complete BATCHES.LUM byte image.
func DecodeBatchList(buf []byte) (BatchListFile, error) {
	const name = "BATCHES.LUM"
	_, version, body, err := ParseSimple(name, buf)
	if err != nil {
		return BatchListFile{}, err
	}
	if len(body) < batchListFixedHeader {
		return BatchListFile{}, &arinc665.InvalidFileError{File: name, Reason: "body shorter than fixed header"}
	}

	pnPtr := primitives.WordOffset(primitives.Order.Uint32(body[0:4]))
	mediaSeq := body[4]
	numMembers := body[5]
	tablePtr := primitives.WordOffset(primitives.Order.Uint32(body[6:10]))
	uddPtr := primitives.WordOffset(primitives.Order.Uint32(body[10:14]))

	for _, p := range []primitives.WordOffset{pnPtr, tablePtr, uddPtr} {
		if err := validatePointer(name, p, len(buf)); err != nil {
			return BatchListFile{}, err
		}
	}

	pn, _, err := primitives.DecodeString(body, bodyOffset(pnPtr))
	if err != nil {
		return BatchListFile{}, fmt.Errorf("file: %s media set PN: %w", name, err)
	}

	var rows []BatchListRow
	_, err = decodeCountedChain(name, body, bodyOffset(tablePtr), func(entry []byte) (int, error) {
		row, consumed, err := decodeBatchListRow(entry)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
		return consumed, nil
	})
	if err != nil {
		return BatchListFile{}, err
	}

	udd, _, err := decodeUDD(body, bodyOffset(uddPtr))
	if err != nil {
		return BatchListFile{}, fmt.Errorf("file: %s UDD: %w", name, err)
	}

	return BatchListFile{
		Version:                 version,
		MediaSetPN:              pn,
		MediaSequenceNumber:     mediaSeq,
		NumberOfMediaSetMembers: numMembers,
		Batches:                 rows,
		UserDefinedData:         udd,
	}, nil
}

func encodeBatchListRow(row BatchListRow) ([]byte, error) {
	nameBytes, err := primitives.EncodeString(row.Filename)
	if err != nil {
		return nil, err
	}
	pnBytes, err := primitives.EncodeString(row.PartNumber)
	if err != nil {
		return nil, err
	}
	buf := append([]byte{}, nameBytes...)
	buf = append(buf, pnBytes...)
	var seq [2]byte
	primitives.Order.PutUint16(seq[:], row.MemberSequenceNumber)
	buf = append(buf, seq[:]...)
	return buf, nil
}

func decodeBatchListRow(buf []byte) (BatchListRow, int, error) {
	name, n1, err := primitives.DecodeString(buf, 0)
	if err != nil {
		return BatchListRow{}, 0, err
	}
	pn, n2, err := primitives.DecodeString(buf, n1)
	if err != nil {
		return BatchListRow{}, 0, err
	}
	pos := n1 + n2
	if pos+2 > len(buf) {
		return BatchListRow{}, 0, errOutOfRange("batches table row member sequence")
	}
	memberSeq := primitives.Order.Uint16(buf[pos : pos+2])
	pos += 2
	return BatchListRow{Filename: name, PartNumber: pn, MemberSequenceNumber: memberSeq}, pos, nil
}

// BelongsToSameMediaSet implements §4.2.1/§4.2.3's cross-medium
// equivalence test for BATCHES.LUM, skipping member-sequence-number
// comparison for the same reason LoadListFile does.
func (b BatchListFile) BelongsToSameMediaSet(other BatchListFile) bool {
	if b.MediaSetPN != other.MediaSetPN || b.NumberOfMediaSetMembers != other.NumberOfMediaSetMembers {
		return false
	}
	if !bytesEqual(b.UserDefinedData, other.UserDefinedData) {
		return false
	}
	if len(b.Batches) != len(other.Batches) {
		return false
	}
	for i := range b.Batches {
		if b.Batches[i].Filename != other.Batches[i].Filename || b.Batches[i].PartNumber != other.Batches[i].PartNumber {
			return false
		}
	}
	return true
}
