package file

import (
	"fmt"

	"github.com/arinc665/arinc665"
	"github.com/arinc665/arinc665/primitives"
)

// LoadListRow is one entry of a LoadListFile's loads table (§4.2.2).
type LoadListRow struct {
	HeaderFilename       string
	PartNumber           string
	MemberSequenceNumber uint16
	TargetHardwareIDs    []string
}

// LoadListFile models LOADS.LUM.
type LoadListFile struct {
	Version                 arinc665.Version
	MediaSetPN              string
	MediaSequenceNumber     uint8
	NumberOfMediaSetMembers uint8
	Loads                   []LoadListRow
	UserDefinedData         []byte
}

const loadListFixedHeader = 4 + 1 + 1 + 4 + 4 // PN ptr, seq, members, table ptr, UDD ptr

// Encode renders l as a complete LOADS.LUM byte image.
func (l LoadListFile) Encode() ([]byte, error) {
	fv, err := arinc665.FormatVersionFor(l.Version)
	if err != nil {
		return nil, err
	}

	pnBytes, err := primitives.EncodeString(l.MediaSetPN)
	if err != nil {
		return nil, err
	}
	rowBodies := make([][]byte, len(l.Loads))
	for i, row := range l.Loads {
		b, err := encodeLoadListRow(row)
		if err != nil {
			return nil, fmt.Errorf("file: encode LOADS.LUM row %d: %w", i, err)
		}
		rowBodies[i] = b
	}
	tableBytes := encodeCountedChain(rowBodies)
	uddBytes := encodeUDD(l.UserDefinedData)

	body := make([]byte, loadListFixedHeader)
	pos := loadListFixedHeader

	pnOff := pos
	body = append(body, pnBytes...)
	pos += len(pnBytes)

	body[4] = l.MediaSequenceNumber
	body[5] = l.NumberOfMediaSetMembers

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

// DecodeLoadList decodes a complete LOADS.LUM byte image.
func DecodeLoadList(buf []byte) (LoadListFile, error) {
	const name = "LOADS.LUM"
	_, version, body, err := ParseSimple(name, buf)
	if err != nil {
		return LoadListFile{}, err
	}
	if len(body) < loadListFixedHeader {
		return LoadListFile{}, &arinc665.InvalidFileError{File: name, Reason: "body shorter than fixed header"}
	}

	pnPtr := primitives.WordOffset(primitives.Order.Uint32(body[0:4]))
	mediaSeq := body[4]
	numMembers := body[5]
	tablePtr := primitives.WordOffset(primitives.Order.Uint32(body[6:10]))
	uddPtr := primitives.WordOffset(primitives.Order.Uint32(body[10:14]))

	for _, p := range []primitives.WordOffset{pnPtr, tablePtr, uddPtr} {
		if err := validatePointer(name, p, len(buf)); err != nil {
			return LoadListFile{}, err
		}
	}

	pn, _, err := primitives.DecodeString(body, bodyOffset(pnPtr))
	if err != nil {
		return LoadListFile{}, fmt.Errorf("file: %s media set PN: %w", name, err)
	}

	var rows []LoadListRow
	_, err = decodeCountedChain(name, body, bodyOffset(tablePtr), func(entry []byte) (int, error) {
		row, consumed, err := decodeLoadListRow(entry)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
		return consumed, nil
	})
	if err != nil {
		return LoadListFile{}, err
	}

	udd, _, err := decodeUDD(body, bodyOffset(uddPtr))
	if err != nil {
		return LoadListFile{}, fmt.Errorf("file: %s UDD: %w", name, err)
	}

	return LoadListFile{
		Version:                 version,
		MediaSetPN:              pn,
		MediaSequenceNumber:     mediaSeq,
		NumberOfMediaSetMembers: numMembers,
		Loads:                   rows,
		UserDefinedData:         udd,
	}, nil
}

func encodeLoadListRow(row LoadListRow) ([]byte, error) {
	nameBytes, err := primitives.EncodeString(row.HeaderFilename)
	if err != nil {
		return nil, err
	}
	pnBytes, err := primitives.EncodeString(row.PartNumber)
	if err != nil {
		return nil, err
	}
	thwBytes, err := primitives.EncodeStringList(row.TargetHardwareIDs)
	if err != nil {
		return nil, err
	}
	buf := append([]byte{}, nameBytes...)
	buf = append(buf, pnBytes...)
	var seq [2]byte
	primitives.Order.PutUint16(seq[:], row.MemberSequenceNumber)
	buf = append(buf, seq[:]...)
	buf = append(buf, thwBytes...)
	return buf, nil
}

func decodeLoadListRow(buf []byte) (LoadListRow, int, error) {
	name, n1, err := primitives.DecodeString(buf, 0)
	if err != nil {
		return LoadListRow{}, 0, err
	}
	pn, n2, err := primitives.DecodeString(buf, n1)
	if err != nil {
		return LoadListRow{}, 0, err
	}
	pos := n1 + n2
	if pos+2 > len(buf) {
		return LoadListRow{}, 0, errOutOfRange("loads table row member sequence")
	}
	memberSeq := primitives.Order.Uint16(buf[pos : pos+2])
	pos += 2
	thw, n4, err := primitives.DecodeStringList(buf, pos)
	if err != nil {
		return LoadListRow{}, 0, err
	}
	pos += n4
	return LoadListRow{HeaderFilename: name, PartNumber: pn, MemberSequenceNumber: memberSeq, TargetHardwareIDs: thw}, pos, nil
}

// BelongsToSameMediaSet implements §4.2.1/§4.2.2's cross-medium
// equivalence test for LOADS.LUM: CRC and member-sequence-number
// comparisons are skipped for Loads table rows (they have no CRC, and the
// member sequence can be filled in per-medium).
func (l LoadListFile) BelongsToSameMediaSet(other LoadListFile) bool {
	if l.MediaSetPN != other.MediaSetPN || l.NumberOfMediaSetMembers != other.NumberOfMediaSetMembers {
		return false
	}
	if !bytesEqual(l.UserDefinedData, other.UserDefinedData) {
		return false
	}
	if len(l.Loads) != len(other.Loads) {
		return false
	}
	for i := range l.Loads {
		a, b := l.Loads[i], other.Loads[i]
		if a.HeaderFilename != b.HeaderFilename || a.PartNumber != b.PartNumber || !stringsEqual(a.TargetHardwareIDs, b.TargetHardwareIDs) {
			return false
		}
	}
	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
