package file

import (
	"fmt"

	"github.com/arinc665/arinc665"
	"github.com/arinc665/arinc665/checkvalue"
	"github.com/arinc665/arinc665/primitives"
)

// FileListRow is one entry of a FileListFile's files table (§4.2.1).
type FileListRow struct {
	Filename             string
	PathName             string
	MemberSequenceNumber uint16
	CRC                  uint16
	// CheckValue is only ever non-NotUsed for Supplement345 files.
	CheckValue checkvalue.Value
}

// FileListFile models FILES.LUM.
type FileListFile struct {
	Version                 arinc665.Version
	MediaSetPN              string
	MediaSequenceNumber     uint8
	NumberOfMediaSetMembers uint8
	Files                   []FileListRow
	UserDefinedData         []byte
	// FileCheckValue covers the File List File itself; Supplement345 only.
	FileCheckValue checkvalue.Value
}

const filesListFixedHeaderSupplement2 = 4 /* MediaSetPNPtr */ + 1 + 1 + 4 /* FilesTablePtr */ + 4 /* UDDPtr */
const filesListFixedHeaderSupplement345 = filesListFixedHeaderSupplement2 + 4 /* FileCheckValuePtr */

// Encode renders f as a complete FILES.LUM byte image.
func (f FileListFile) Encode() ([]byte, error) {
	fv, err := arinc665.FormatVersionFor(f.Version)
	if err != nil {
		return nil, err
	}
	supplement345 := f.Version == arinc665.Supplement345

	fixedLen := filesListFixedHeaderSupplement2
	if supplement345 {
		fixedLen = filesListFixedHeaderSupplement345
	}

	pnBytes, err := primitives.EncodeString(f.MediaSetPN)
	if err != nil {
		return nil, err
	}

	rowBodies := make([][]byte, len(f.Files))
	for i, row := range f.Files {
		b, err := encodeFileListRow(row, supplement345)
		if err != nil {
			return nil, fmt.Errorf("file: encode FILES.LUM row %d: %w", i, err)
		}
		rowBodies[i] = b
	}
	tableBytes := encodeCountedChain(rowBodies)

	uddBytes := encodeUDD(f.UserDefinedData)

	var cvBytes []byte
	if supplement345 {
		cvBytes, err = checkvalue.Encode(f.FileCheckValue)
		if err != nil {
			return nil, err
		}
	}

	body := make([]byte, fixedLen)
	pos := fixedLen

	pnOff := pos
	body = append(body, pnBytes...)
	pos += len(pnBytes)

	body[4] = f.MediaSequenceNumber
	body[5] = f.NumberOfMediaSetMembers

	tableOff := pos
	body = append(body, tableBytes...)
	pos += len(tableBytes)

	uddOff := pos
	body = append(body, uddBytes...)
	pos += len(uddBytes)

	primitives.Order.PutUint32(body[0:4], uint32(primitives.WordOffsetForByte(int64(envelopeHeaderLen+pnOff))))
	primitives.Order.PutUint32(body[6:10], uint32(primitives.WordOffsetForByte(int64(envelopeHeaderLen+tableOff))))
	primitives.Order.PutUint32(body[10:14], uint32(primitives.WordOffsetForByte(int64(envelopeHeaderLen+uddOff))))

	if supplement345 {
		cvOff := pos
		body = append(body, cvBytes...)
		pos += len(cvBytes)
		if len(cvBytes) == 0 {
			primitives.Order.PutUint32(body[14:18], 0)
		} else {
			primitives.Order.PutUint32(body[14:18], uint32(primitives.WordOffsetForByte(int64(envelopeHeaderLen+cvOff))))
		}
	}

	return AssembleSimple(fv, body)
}

// DecodeFileList decodes a complete FILES.LUM byte image.
func DecodeFileList(buf []byte) (FileListFile, error) {
	const name = "FILES.LUM"
	_, version, body, err := ParseSimple(name, buf)
	if err != nil {
		return FileListFile{}, err
	}
	supplement345 := version == arinc665.Supplement345

	fixedLen := filesListFixedHeaderSupplement2
	if supplement345 {
		fixedLen = filesListFixedHeaderSupplement345
	}
	if len(body) < fixedLen {
		return FileListFile{}, &arinc665.InvalidFileError{File: name, Reason: "body shorter than fixed header"}
	}

	pnPtr := primitives.WordOffset(primitives.Order.Uint32(body[0:4]))
	mediaSeq := body[4]
	numMembers := body[5]
	tablePtr := primitives.WordOffset(primitives.Order.Uint32(body[6:10]))
	uddPtr := primitives.WordOffset(primitives.Order.Uint32(body[10:14]))
	var cvPtr primitives.WordOffset
	if supplement345 {
		cvPtr = primitives.WordOffset(primitives.Order.Uint32(body[14:18]))
	}

	for _, p := range []primitives.WordOffset{pnPtr, tablePtr, uddPtr, cvPtr} {
		if err := validatePointer(name, p, len(buf)); err != nil {
			return FileListFile{}, err
		}
	}

	pn, _, err := primitives.DecodeString(body, bodyOffset(pnPtr))
	if err != nil {
		return FileListFile{}, fmt.Errorf("file: %s media set PN: %w", name, err)
	}

	var rows []FileListRow
	_, err = decodeCountedChain(name, body, bodyOffset(tablePtr), func(entry []byte) (int, error) {
		row, consumed, err := decodeFileListRow(entry, supplement345)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
		return consumed, nil
	})
	if err != nil {
		return FileListFile{}, err
	}

	udd, _, err := decodeUDD(body, bodyOffset(uddPtr))
	if err != nil {
		return FileListFile{}, fmt.Errorf("file: %s UDD: %w", name, err)
	}

	var cv checkvalue.Value
	if supplement345 && !cvPtr.Absent() {
		cv, _, err = checkvalue.Decode(body, bodyOffset(cvPtr))
		if err != nil {
			return FileListFile{}, fmt.Errorf("file: %s file check value: %w", name, err)
		}
	}

	return FileListFile{
		Version:                 version,
		MediaSetPN:              pn,
		MediaSequenceNumber:     mediaSeq,
		NumberOfMediaSetMembers: numMembers,
		Files:                   rows,
		UserDefinedData:         udd,
		FileCheckValue:          cv,
	}, nil
}

// bodyOffset converts a file-relative pointer to an offset within the body
// slice ParseSimple returned (which starts at the 6-byte envelope header).
func bodyOffset(p primitives.WordOffset) int { return int(p.Bytes()) - envelopeHeaderLen }

func encodeFileListRow(row FileListRow, supplement345 bool) ([]byte, error) {
	nameBytes, err := primitives.EncodeString(row.Filename)
	if err != nil {
		return nil, err
	}
	pathBytes, err := primitives.EncodeString(row.PathName)
	if err != nil {
		return nil, err
	}
	buf := append([]byte{}, nameBytes...)
	buf = append(buf, pathBytes...)
	var tail [4]byte
	primitives.Order.PutUint16(tail[0:2], row.MemberSequenceNumber)
	primitives.Order.PutUint16(tail[2:4], row.CRC)
	buf = append(buf, tail[:]...)
	if supplement345 {
		cvBytes, err := checkvalue.Encode(row.CheckValue)
		if err != nil {
			return nil, err
		}
		buf = append(buf, cvBytes...)
	}
	return buf, nil
}

func decodeFileListRow(buf []byte, supplement345 bool) (FileListRow, int, error) {
	name, n1, err := primitives.DecodeString(buf, 0)
	if err != nil {
		return FileListRow{}, 0, err
	}
	path, n2, err := primitives.DecodeString(buf, n1)
	if err != nil {
		return FileListRow{}, 0, err
	}
	pos := n1 + n2
	if pos+4 > len(buf) {
		return FileListRow{}, 0, errOutOfRange("files table row trailer")
	}
	memberSeq := primitives.Order.Uint16(buf[pos : pos+2])
	crc := primitives.Order.Uint16(buf[pos+2 : pos+4])
	pos += 4
	row := FileListRow{Filename: name, PathName: path, MemberSequenceNumber: memberSeq, CRC: crc}
	if supplement345 {
		cv, n, err := checkvalue.Decode(buf, pos)
		if err != nil {
			return FileListRow{}, 0, err
		}
		row.CheckValue = cv
		pos += n
	}
	return row, pos, nil
}

// BelongsToSameMediaSet implements §4.2.1's cross-medium equivalence
// test: part number, member count, UDD and the files table must agree
// (row-for-row, including CRC and member sequence number — unlike the
// Loads/Batches list comparisons, which skip those two fields because
// their rows don't carry a CRC and their member sequence can legitimately
// be filled in per-medium during compilation).
func (f FileListFile) BelongsToSameMediaSet(other FileListFile) bool {
	if f.MediaSetPN != other.MediaSetPN {
		return false
	}
	if f.NumberOfMediaSetMembers != other.NumberOfMediaSetMembers {
		return false
	}
	if !bytesEqual(f.UserDefinedData, other.UserDefinedData) {
		return false
	}
	if len(f.Files) != len(other.Files) {
		return false
	}
	for i := range f.Files {
		a, b := f.Files[i], other.Files[i]
		if a.Filename != b.Filename || a.PathName != b.PathName ||
			a.MemberSequenceNumber != b.MemberSequenceNumber ||
			a.CRC != b.CRC || !a.CheckValue.Equal(b.CheckValue) {
			return false
		}
	}
	return true
}

func bytesEqual(a, b []byte) bool {
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
