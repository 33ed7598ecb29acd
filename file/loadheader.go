package file

import (
	"fmt"

	"github.com/arinc665/arinc665"
	"github.com/arinc665/arinc665/checkvalue"
	"github.com/arinc665/arinc665/primitives"
)

// LoadHeaderFile models a *.LUH Load Header (§4.2.4) — the most
// complex of the five file types. Unlike the list files and the Batch file,
// its trailer carries two checksums instead of one: a File CRC-16 at
// end-6 covering the header the same way every other codec's trailer does,
// and a whole-load CRC-32 at end-4 covering the header plus every data and
// support file the load references. Computing both correctly — along with
// the optional whole-load Check Value that can straddle the CRC-16 — is
// the two-pass procedure EncodeWithIntegrity implements; see its doc
// comment and the "Two-pass CRC on Load Headers" Design Note.
type LoadHeaderFile struct {
	Version arinc665.Version

	// PartFlags is the 16-bit field at envelope offset 6. Supplement 2
	// defines no bits here (the field is spare and must be zero);
	// Supplement 3/4/5 uses bit 0 as the load's download marker.
	PartFlags uint16

	PartNumber        string
	TargetHardwareIDs []string
	DataFiles         []DataFileEntry
	SupportFiles      []SupportFileEntry
	UserDefinedData   []byte

	// LoadType is Supplement345-only; nil means the field is absent.
	LoadType *LoadType
	// TargetHardwareWithPositions is Supplement345-only.
	TargetHardwareWithPositions []TargetHardwareWithPositions

	// LoadCheckValueType selects the algorithm EncodeWithIntegrity uses to
	// synthesize LoadCheckValue. checkvalue.NotUsed means the field is
	// absent (Supplement 2 files, or a Supplement345 file that opts out).
	LoadCheckValueType checkvalue.Type

	// LoadCRC and LoadCheckValue are populated by DecodeLoadHeader (as
	// read) and by EncodeWithIntegrity (as computed); Encode writes
	// whatever is currently set without recomputing either.
	LoadCRC        uint32
	LoadCheckValue checkvalue.Value
}

// DataFileEntry is one row of a Load Header's Data Files table (spec
// §4.2.4). LengthWords is present in every supplement (Supplement 2 stores
// it as the file's only length field); ByteLength and CheckValue are
// Supplement345 additions, and when present must satisfy
// LengthWords == ceil(ByteLength/2).
type DataFileEntry struct {
	Filename    string
	PartNumber  string
	LengthWords uint32
	CRC         uint16
	ByteLength  uint64          // Supplement345 only
	CheckValue  checkvalue.Value // Supplement345 only
}

// SupportFileEntry is one row of a Load Header's Support Files table. Its
// length has always been carried in bytes, in every supplement — unlike
// DataFileEntry, there is no word-count/byte-count duality here.
type SupportFileEntry struct {
	Filename   string
	PartNumber string
	ByteLength uint32
	CRC        uint16
	CheckValue checkvalue.Value // Supplement345 only
}

// LoadType names the Supplement345 Load Type Description/ID pair.
type LoadType struct {
	Description string
	ID          uint16
}

// TargetHardwareWithPositions is one entry of the Supplement345
// Target-HW-IDs-with-Positions table: a target hardware ID together with
// the ordered list of positions it is to be loaded into.
type TargetHardwareWithPositions struct {
	TargetHardwareID string
	Positions        []string
}

const loadHeaderTrailerLen = 6 // File CRC-16 (2) + Load CRC-32 (4)

const loadHeaderFixedSupplement2 = 2 /* PartFlags */ + 4*5 // PN, THW, DataFiles, SupportFiles, UDD pointers
const loadHeaderFixedSupplement345 = loadHeaderFixedSupplement2 + 4*3 // + LoadType, THWWithPositions, LoadCheckValue pointers

// Encode renders h using whatever LoadCRC/LoadCheckValue are currently set,
// without recomputing either. Use this for re-serializing an already
// decoded header (e.g. a decompiler round-trip test); use
// EncodeWithIntegrity to produce a freshly compiled load.
func (h *LoadHeaderFile) Encode() ([]byte, error) {
	prefix, err := h.encodeBody()
	if err != nil {
		return nil, err
	}
	return h.assembleTrailer(prefix, primitives.CRC16(0xFFFF, prefix), h.LoadCRC), nil
}

// EncodeWithIntegrity runs the two-pass procedure the LoadHeaderFile doc
// comment refers to: it encodes the header with a zeroed placeholder of the
// declared Check Value size, streams that header prefix followed by
// dataFileBytes and supportFileBytes (each in the same order as h.DataFiles
// / h.SupportFiles) through the Check Value generator, splices the result
// back into the header, recomputes the File CRC-16 over the spliced bytes,
// and finally computes the Load CRC-32 over the same spliced prefix plus
// the payload bytes. It mutates h.LoadCheckValue and h.LoadCRC with the
// computed values and returns the complete encoded file.
//
// Do not attempt a single-pass version of this: the Check Value's own
// bytes sit inside the range the CRC-16 and CRC-32 both cover, so the
// placeholder must be struck out, hashed, spliced, and only then checksummed.
func (h *LoadHeaderFile) EncodeWithIntegrity(dataFileBytes, supportFileBytes [][]byte) ([]byte, error) {
	origCV := h.LoadCheckValue

	placeholder, err := placeholderCheckValue(h.LoadCheckValueType)
	if err != nil {
		h.LoadCheckValue = origCV
		return nil, err
	}
	h.LoadCheckValue = placeholder

	prefix, err := h.encodeBody()
	if err != nil {
		h.LoadCheckValue = origCV
		return nil, err
	}

	if h.LoadCheckValueType != checkvalue.NotUsed {
		gen, err := checkvalue.NewGenerator(h.LoadCheckValueType)
		if err != nil {
			h.LoadCheckValue = origCV
			return nil, err
		}
		gen.Write(prefix)
		for _, b := range dataFileBytes {
			gen.Write(b)
		}
		for _, b := range supportFileBytes {
			gen.Write(b)
		}
		h.LoadCheckValue = gen.Finalize()

		prefix, err = h.encodeBody()
		if err != nil {
			h.LoadCheckValue = origCV
			return nil, err
		}
	}

	crc16 := primitives.CRC16(0xFFFF, prefix)

	crc32Input := make([]byte, 0, len(prefix)+sumLens(dataFileBytes)+sumLens(supportFileBytes))
	crc32Input = append(crc32Input, prefix...)
	for _, b := range dataFileBytes {
		crc32Input = append(crc32Input, b...)
	}
	for _, b := range supportFileBytes {
		crc32Input = append(crc32Input, b...)
	}
	h.LoadCRC = primitives.LoadCRC32(crc32Input)

	return h.assembleTrailer(prefix, crc16, h.LoadCRC), nil
}

// VerifyLoadIntegrity re-runs EncodeWithIntegrity against the data/support
// file bytes the decompiler has actually read from media, and reports
// whether the result matches h's recorded LoadCRC and LoadCheckValue. The
// recomputation overwrites h's LoadCRC/LoadCheckValue fields (the same way
// EncodeWithIntegrity always does), and the recorded values are restored
// before VerifyLoadIntegrity returns.
//
// A Signature-type Load Check Value cannot be recomputed this way (nothing
// in this codec can re-sign), so it is instead checked with
// checkvalue.VerifySignature over the same covered bytes the hash-based
// path would have hashed.
func (h *LoadHeaderFile) VerifyLoadIntegrity(dataFileBytes, supportFileBytes [][]byte) error {
	wantCRC := h.LoadCRC
	wantCV := h.LoadCheckValue

	if h.LoadCheckValueType == checkvalue.Signature {
		prefix, err := h.encodeBody()
		if err != nil {
			return err
		}
		covered := make([]byte, 0, len(prefix)+sumLens(dataFileBytes)+sumLens(supportFileBytes))
		covered = append(covered, prefix...)
		for _, b := range dataFileBytes {
			covered = append(covered, b...)
		}
		for _, b := range supportFileBytes {
			covered = append(covered, b...)
		}
		if err := checkvalue.VerifySignature(wantCV, covered); err != nil {
			return err
		}
		crc32Input := covered
		got := primitives.LoadCRC32(crc32Input)
		if got != wantCRC {
			return &arinc665.CrcMismatchError{Field: arinc665.CrcFieldLoad, Got: uint64(got), Expected: uint64(wantCRC)}
		}
		return nil
	}

	if _, err := h.EncodeWithIntegrity(dataFileBytes, supportFileBytes); err != nil {
		return err
	}
	if h.LoadCRC != wantCRC {
		err := &arinc665.CrcMismatchError{Field: arinc665.CrcFieldLoad, Got: uint64(h.LoadCRC), Expected: uint64(wantCRC)}
		h.LoadCRC, h.LoadCheckValue = wantCRC, wantCV
		return err
	}
	if !h.LoadCheckValue.Equal(wantCV) {
		err := &arinc665.CheckValueMismatchError{Scope: arinc665.CheckValueScopeLoad, Name: h.PartNumber}
		h.LoadCRC, h.LoadCheckValue = wantCRC, wantCV
		return err
	}
	h.LoadCRC, h.LoadCheckValue = wantCRC, wantCV
	return nil
}

func placeholderCheckValue(typ checkvalue.Type) (checkvalue.Value, error) {
	if typ == checkvalue.NotUsed {
		return checkvalue.Value{Type: checkvalue.NotUsed}, nil
	}
	size, err := checkvalue.DigestSize(typ)
	if err != nil {
		return checkvalue.Value{}, err
	}
	return checkvalue.Value{Type: typ, Data: make([]byte, size)}, nil
}

func sumLens(bs [][]byte) int {
	n := 0
	for _, b := range bs {
		n += len(b)
	}
	return n
}

// assembleTrailer appends the 6-byte File CRC-16 / Load CRC-32 trailer to
// prefix (which already contains the file-length/version/body, i.e.
// everything except the trailer) and returns the complete file.
func (h *LoadHeaderFile) assembleTrailer(prefix []byte, crc16 uint16, crc32 uint32) []byte {
	buf := make([]byte, len(prefix)+loadHeaderTrailerLen)
	copy(buf, prefix)
	primitives.Order.PutUint16(buf[len(prefix):len(prefix)+2], crc16)
	primitives.Order.PutUint32(buf[len(prefix)+2:], crc32)
	return buf
}

// encodeBody renders everything except the trailer: file length, format
// version, Part Flags, and every pointer-addressed field, using whatever
// h.LoadCheckValue currently holds.
func (h *LoadHeaderFile) encodeBody() ([]byte, error) {
	fv, err := arinc665.FormatVersionFor(h.Version)
	if err != nil {
		return nil, err
	}
	supplement345 := h.Version == arinc665.Supplement345

	fixedLen := loadHeaderFixedSupplement2
	if supplement345 {
		fixedLen = loadHeaderFixedSupplement345
	}

	pnBytes, err := primitives.EncodeString(h.PartNumber)
	if err != nil {
		return nil, err
	}
	thwBytes, err := primitives.EncodeStringList(h.TargetHardwareIDs)
	if err != nil {
		return nil, err
	}

	dataBodies := make([][]byte, len(h.DataFiles))
	for i, e := range h.DataFiles {
		b, err := encodeDataFileEntry(e, supplement345)
		if err != nil {
			return nil, fmt.Errorf("file: encode load header data file %d: %w", i, err)
		}
		dataBodies[i] = b
	}
	dataTableBytes := encodeChain(dataBodies)

	supportBodies := make([][]byte, len(h.SupportFiles))
	for i, e := range h.SupportFiles {
		b, err := encodeSupportFileEntry(e, supplement345)
		if err != nil {
			return nil, fmt.Errorf("file: encode load header support file %d: %w", i, err)
		}
		supportBodies[i] = b
	}
	supportTableBytes := encodeChain(supportBodies)

	uddBytes := encodeUDD(h.UserDefinedData)

	var loadTypeBytes []byte
	if supplement345 && h.LoadType != nil {
		descBytes, err := primitives.EncodeString(h.LoadType.Description)
		if err != nil {
			return nil, err
		}
		var id [2]byte
		primitives.Order.PutUint16(id[:], h.LoadType.ID)
		loadTypeBytes = append(append([]byte{}, descBytes...), id[:]...)
	}

	var thwPosBytes []byte
	if supplement345 {
		entries := make([][]byte, len(h.TargetHardwareWithPositions))
		for i, e := range h.TargetHardwareWithPositions {
			idBytes, err := primitives.EncodeString(e.TargetHardwareID)
			if err != nil {
				return nil, err
			}
			posBytes, err := primitives.EncodeStringList(e.Positions)
			if err != nil {
				return nil, err
			}
			entries[i] = append(idBytes, posBytes...)
		}
		if len(entries) > 0 {
			thwPosBytes = encodeChain(entries)
		}
	}

	var loadCVBytes []byte
	if supplement345 {
		loadCVBytes, err = checkvalue.Encode(h.LoadCheckValue)
		if err != nil {
			return nil, err
		}
	}

	body := make([]byte, fixedLen)
	pos := fixedLen

	primitives.Order.PutUint16(body[0:2], h.PartFlags)

	pnOff := pos
	body = append(body, pnBytes...)
	pos += len(pnBytes)

	thwOff := pos
	body = append(body, thwBytes...)
	pos += len(thwBytes)

	dataOff := pos
	body = append(body, dataTableBytes...)
	pos += len(dataTableBytes)

	supportOff := pos
	body = append(body, supportTableBytes...)
	pos += len(supportTableBytes)

	uddOff := pos
	body = append(body, uddBytes...)
	pos += len(uddBytes)

	putPtr := func(fieldOff int, dataOff int, present bool) {
		if !present {
			primitives.Order.PutUint32(body[fieldOff:fieldOff+4], 0)
			return
		}
		primitives.Order.PutUint32(body[fieldOff:fieldOff+4],
			uint32(primitives.WordOffsetForByte(int64(envelopeHeaderLen+dataOff))))
	}
	putPtr(2, pnOff, true)
	putPtr(6, thwOff, len(h.TargetHardwareIDs) > 0)
	putPtr(10, dataOff, len(h.DataFiles) > 0)
	putPtr(14, supportOff, len(h.SupportFiles) > 0)
	putPtr(18, uddOff, true)

	if supplement345 {
		var loadTypeOff, thwPosOff, loadCVOff int
		if loadTypeBytes != nil {
			loadTypeOff = pos
			body = append(body, loadTypeBytes...)
			pos += len(loadTypeBytes)
		}
		if thwPosBytes != nil {
			thwPosOff = pos
			body = append(body, thwPosBytes...)
			pos += len(thwPosBytes)
		}
		if len(loadCVBytes) > 0 {
			loadCVOff = pos
			body = append(body, loadCVBytes...)
			pos += len(loadCVBytes)
		}
		putPtr(22, loadTypeOff, loadTypeBytes != nil)
		putPtr(26, thwPosOff, thwPosBytes != nil)
		putPtr(30, loadCVOff, len(loadCVBytes) > 0)
	}

	total := envelopeHeaderLen + len(body) + loadHeaderTrailerLen
	if total%2 != 0 {
		return nil, fmt.Errorf("file: load header must be 2-byte aligned, got %d bytes", total)
	}
	prefix := make([]byte, envelopeHeaderLen+len(body))
	primitives.Order.PutUint32(prefix[0:4], uint32(total/2))
	primitives.Order.PutUint16(prefix[4:6], uint16(fv))
	copy(prefix[envelopeHeaderLen:], body)
	return prefix, nil
}

// DecodeLoadHeader decodes a complete *.LUH byte image, validating the File
// CRC-16 but not the Load CRC-32 or Load Check Value — those require the
// referenced data/support file bytes and are checked separately via
// VerifyLoadIntegrity once the decompiler has read them.
func DecodeLoadHeader(buf []byte) (LoadHeaderFile, error) {
	const name = "<load header>"
	if len(buf) < envelopeHeaderLen+loadHeaderFixedSupplement2+loadHeaderTrailerLen {
		return LoadHeaderFile{}, &arinc665.InvalidFileError{File: name, Reason: "shorter than the minimum load header"}
	}
	lengthWords := primitives.Order.Uint32(buf[0:4])
	if int(lengthWords)*2 != len(buf) {
		return LoadHeaderFile{}, &arinc665.InvalidFileError{
			File:   name,
			Reason: fmt.Sprintf("declared length %d words does not match buffer length %d bytes", lengthWords, len(buf)),
		}
	}
	fv := arinc665.FormatVersion(primitives.Order.Uint16(buf[4:6]))
	version, ok := arinc665.VersionOf(fv)
	if !ok {
		return LoadHeaderFile{}, &arinc665.InvalidFileError{File: name, Reason: fmt.Sprintf("unsupported format version 0x%04x", fv)}
	}
	supplement345 := version == arinc665.Supplement345

	fixedLen := loadHeaderFixedSupplement2
	if supplement345 {
		fixedLen = loadHeaderFixedSupplement345
	}
	trailerOff := len(buf) - loadHeaderTrailerLen
	if envelopeHeaderLen+fixedLen > trailerOff {
		return LoadHeaderFile{}, &arinc665.InvalidFileError{File: name, Reason: "body shorter than fixed header"}
	}

	crc16Got := primitives.Order.Uint16(buf[trailerOff : trailerOff+2])
	crc16Want := primitives.CRC16(0xFFFF, buf[:trailerOff])
	if crc16Got != crc16Want {
		return LoadHeaderFile{}, &arinc665.CrcMismatchError{Field: arinc665.CrcFieldHeader, Got: uint64(crc16Got), Expected: uint64(crc16Want)}
	}
	loadCRC := primitives.Order.Uint32(buf[trailerOff+2 : trailerOff+6])

	body := buf[envelopeHeaderLen:trailerOff]

	partFlags := primitives.Order.Uint16(body[0:2])
	if !supplement345 && partFlags != 0 {
		return LoadHeaderFile{}, &arinc665.InvalidFileError{File: name, Reason: "non-zero spare in Part Flags"}
	}

	pnPtr := primitives.WordOffset(primitives.Order.Uint32(body[2:6]))
	thwPtr := primitives.WordOffset(primitives.Order.Uint32(body[6:10]))
	dataPtr := primitives.WordOffset(primitives.Order.Uint32(body[10:14]))
	supportPtr := primitives.WordOffset(primitives.Order.Uint32(body[14:18]))
	uddPtr := primitives.WordOffset(primitives.Order.Uint32(body[18:22]))

	ptrs := []primitives.WordOffset{pnPtr, thwPtr, dataPtr, supportPtr, uddPtr}

	var loadTypePtr, thwPosPtr, loadCVPtr primitives.WordOffset
	if supplement345 {
		loadTypePtr = primitives.WordOffset(primitives.Order.Uint32(body[22:26]))
		thwPosPtr = primitives.WordOffset(primitives.Order.Uint32(body[26:30]))
		loadCVPtr = primitives.WordOffset(primitives.Order.Uint32(body[30:34]))
		ptrs = append(ptrs, loadTypePtr, thwPosPtr, loadCVPtr)
	}
	for _, p := range ptrs {
		if err := validatePointer(name, p, len(buf)); err != nil {
			return LoadHeaderFile{}, err
		}
	}

	pn, _, err := primitives.DecodeString(body, bodyOffset(pnPtr))
	if err != nil {
		return LoadHeaderFile{}, fmt.Errorf("file: load header part number: %w", err)
	}

	var thw []string
	if !thwPtr.Absent() {
		thw, _, err = primitives.DecodeStringList(body, bodyOffset(thwPtr))
		if err != nil {
			return LoadHeaderFile{}, fmt.Errorf("file: load header target hardware IDs: %w", err)
		}
	}

	var dataFiles []DataFileEntry
	if !dataPtr.Absent() {
		_, _, err = decodeChain(name, body, bodyOffset(dataPtr), func(entry []byte) (int, error) {
			e, consumed, err := decodeDataFileEntry(entry, supplement345)
			if err != nil {
				return 0, err
			}
			dataFiles = append(dataFiles, e)
			return consumed, nil
		})
		if err != nil {
			return LoadHeaderFile{}, err
		}
	}

	var supportFiles []SupportFileEntry
	if !supportPtr.Absent() {
		_, _, err = decodeChain(name, body, bodyOffset(supportPtr), func(entry []byte) (int, error) {
			e, consumed, err := decodeSupportFileEntry(entry, supplement345)
			if err != nil {
				return 0, err
			}
			supportFiles = append(supportFiles, e)
			return consumed, nil
		})
		if err != nil {
			return LoadHeaderFile{}, err
		}
	}

	udd, _, err := decodeUDD(body, bodyOffset(uddPtr))
	if err != nil {
		return LoadHeaderFile{}, fmt.Errorf("file: load header UDD: %w", err)
	}

	var loadType *LoadType
	var thwWithPos []TargetHardwareWithPositions
	var loadCV checkvalue.Value

	if supplement345 {
		if !loadTypePtr.Absent() {
			off := bodyOffset(loadTypePtr)
			desc, n, err := primitives.DecodeString(body, off)
			if err != nil {
				return LoadHeaderFile{}, fmt.Errorf("file: load header load type: %w", err)
			}
			off += n
			if off+2 > len(body) {
				return LoadHeaderFile{}, &arinc665.InvalidFileError{File: name, Reason: "load type ID out of range"}
			}
			id := primitives.Order.Uint16(body[off : off+2])
			loadType = &LoadType{Description: desc, ID: id}
		}
		if !thwPosPtr.Absent() {
			_, _, err = decodeChain(name, body, bodyOffset(thwPosPtr), func(entry []byte) (int, error) {
				thwID, n1, err := primitives.DecodeString(entry, 0)
				if err != nil {
					return 0, err
				}
				positions, n2, err := primitives.DecodeStringList(entry, n1)
				if err != nil {
					return 0, err
				}
				thwWithPos = append(thwWithPos, TargetHardwareWithPositions{TargetHardwareID: thwID, Positions: positions})
				return n1 + n2, nil
			})
			if err != nil {
				return LoadHeaderFile{}, err
			}
		}
		if !loadCVPtr.Absent() {
			loadCV, _, err = checkvalue.Decode(body, bodyOffset(loadCVPtr))
			if err != nil {
				return LoadHeaderFile{}, fmt.Errorf("file: load header load check value: %w", err)
			}
		}
	}

	return LoadHeaderFile{
		Version:                     version,
		PartFlags:                   partFlags,
		PartNumber:                  pn,
		TargetHardwareIDs:           thw,
		DataFiles:                   dataFiles,
		SupportFiles:                supportFiles,
		UserDefinedData:             udd,
		LoadType:                    loadType,
		TargetHardwareWithPositions: thwWithPos,
		LoadCheckValueType:          loadCV.Type,
		LoadCRC:                     loadCRC,
		LoadCheckValue:              loadCV,
	}, nil
}

func encodeDataFileEntry(e DataFileEntry, supplement345 bool) ([]byte, error) {
	nameBytes, err := primitives.EncodeString(e.Filename)
	if err != nil {
		return nil, err
	}
	pnBytes, err := primitives.EncodeString(e.PartNumber)
	if err != nil {
		return nil, err
	}
	buf := append([]byte{}, nameBytes...)
	buf = append(buf, pnBytes...)
	var tail [6]byte
	primitives.Order.PutUint32(tail[0:4], e.LengthWords)
	primitives.Order.PutUint16(tail[4:6], e.CRC)
	buf = append(buf, tail[:]...)
	if supplement345 {
		if want := uint32((e.ByteLength + 1) / 2); e.LengthWords != want {
			return nil, &arinc665.InvalidFileError{
				File: "<load header data file>",
				Reason: fmt.Sprintf("word count %d inconsistent with byte length %d for %q",
					e.LengthWords, e.ByteLength, e.Filename),
			}
		}
		var bl [8]byte
		primitives.Order.PutUint64(bl[:], e.ByteLength)
		buf = append(buf, bl[:]...)
		cvBytes, err := checkvalue.Encode(e.CheckValue)
		if err != nil {
			return nil, err
		}
		buf = append(buf, cvBytes...)
	}
	return buf, nil
}

func decodeDataFileEntry(buf []byte, supplement345 bool) (DataFileEntry, int, error) {
	name, n1, err := primitives.DecodeString(buf, 0)
	if err != nil {
		return DataFileEntry{}, 0, err
	}
	pn, n2, err := primitives.DecodeString(buf, n1)
	if err != nil {
		return DataFileEntry{}, 0, err
	}
	pos := n1 + n2
	if pos+6 > len(buf) {
		return DataFileEntry{}, 0, errOutOfRange("load header data file trailer")
	}
	lengthWords := primitives.Order.Uint32(buf[pos : pos+4])
	crc := primitives.Order.Uint16(buf[pos+4 : pos+6])
	pos += 6
	e := DataFileEntry{Filename: name, PartNumber: pn, LengthWords: lengthWords, CRC: crc}
	if supplement345 {
		if pos+8 > len(buf) {
			return DataFileEntry{}, 0, errOutOfRange("load header data file byte length")
		}
		byteLength := primitives.Order.Uint64(buf[pos : pos+8])
		pos += 8
		if want := uint32((byteLength + 1) / 2); lengthWords != want {
			return DataFileEntry{}, 0, &arinc665.InvalidFileError{
				File: "<load header data file>",
				Reason: fmt.Sprintf("word count %d inconsistent with byte length %d for %q",
					lengthWords, byteLength, name),
			}
		}
		e.ByteLength = byteLength
		cv, n, err := checkvalue.Decode(buf, pos)
		if err != nil {
			return DataFileEntry{}, 0, err
		}
		e.CheckValue = cv
		pos += n
	}
	return e, pos, nil
}

func encodeSupportFileEntry(e SupportFileEntry, supplement345 bool) ([]byte, error) {
	nameBytes, err := primitives.EncodeString(e.Filename)
	if err != nil {
		return nil, err
	}
	pnBytes, err := primitives.EncodeString(e.PartNumber)
	if err != nil {
		return nil, err
	}
	buf := append([]byte{}, nameBytes...)
	buf = append(buf, pnBytes...)
	var tail [6]byte
	primitives.Order.PutUint32(tail[0:4], e.ByteLength)
	primitives.Order.PutUint16(tail[4:6], e.CRC)
	buf = append(buf, tail[:]...)
	if supplement345 {
		cvBytes, err := checkvalue.Encode(e.CheckValue)
		if err != nil {
			return nil, err
		}
		buf = append(buf, cvBytes...)
	}
	return buf, nil
}

func decodeSupportFileEntry(buf []byte, supplement345 bool) (SupportFileEntry, int, error) {
	name, n1, err := primitives.DecodeString(buf, 0)
	if err != nil {
		return SupportFileEntry{}, 0, err
	}
	pn, n2, err := primitives.DecodeString(buf, n1)
	if err != nil {
		return SupportFileEntry{}, 0, err
	}
	pos := n1 + n2
	if pos+6 > len(buf) {
		return SupportFileEntry{}, 0, errOutOfRange("load header support file trailer")
	}
	byteLength := primitives.Order.Uint32(buf[pos : pos+4])
	crc := primitives.Order.Uint16(buf[pos+4 : pos+6])
	pos += 6
	e := SupportFileEntry{Filename: name, PartNumber: pn, ByteLength: byteLength, CRC: crc}
	if supplement345 {
		cv, n, err := checkvalue.Decode(buf, pos)
		if err != nil {
			return SupportFileEntry{}, 0, err
		}
		e.CheckValue = cv
		pos += n
	}
	return e, pos, nil
}
