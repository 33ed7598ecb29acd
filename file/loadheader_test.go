package file

import (
	"bytes"
	"errors"
	"testing"

	"github.com/arinc665/arinc665"
	"github.com/arinc665/arinc665/checkvalue"
)

func sampleLoadHeader345() *LoadHeaderFile {
	return &LoadHeaderFile{
		Version:           arinc665.Supplement345,
		PartFlags:         0x0001,
		PartNumber:        "LOAD-PN-0001",
		TargetHardwareIDs: []string{"THW-A", "THW-B"},
		DataFiles: []DataFileEntry{
			{Filename: "APPL.BIN", PartNumber: "DF-PN-1", LengthWords: 3, CRC: 0x1234, ByteLength: 5},
			{Filename: "CAL.BIN", PartNumber: "DF-PN-2", LengthWords: 2, CRC: 0x5678, ByteLength: 4},
		},
		SupportFiles: []SupportFileEntry{
			{Filename: "README.TXT", PartNumber: "SF-PN-1", ByteLength: 11, CRC: 0xABCD},
		},
		UserDefinedData:    []byte("udd"),
		LoadType:           &LoadType{Description: "Operational", ID: 1},
		LoadCheckValueType: checkvalue.SHA256,
		TargetHardwareWithPositions: []TargetHardwareWithPositions{
			{TargetHardwareID: "THW-A", Positions: []string{"POS1", "POS2"}},
		},
	}
}

func TestLoadHeaderEncodeWithIntegrityRoundTrip(t *testing.T) {
	h := sampleLoadHeader345()
	dataBytes := [][]byte{bytes.Repeat([]byte{0xAA}, 5), bytes.Repeat([]byte{0xBB}, 4)}
	supportBytes := [][]byte{bytes.Repeat([]byte{0xCC}, 11)}

	buf, err := h.EncodeWithIntegrity(dataBytes, supportBytes)
	if err != nil {
		t.Fatalf("EncodeWithIntegrity: %v", err)
	}
	if h.LoadCheckValue.IsNotUsed() {
		t.Fatal("expected a synthesized load check value")
	}
	if h.LoadCRC == 0 {
		t.Fatal("expected a nonzero load CRC")
	}

	decoded, err := DecodeLoadHeader(buf)
	if err != nil {
		t.Fatalf("DecodeLoadHeader: %v", err)
	}
	if decoded.PartNumber != h.PartNumber {
		t.Errorf("part number: got %q want %q", decoded.PartNumber, h.PartNumber)
	}
	if len(decoded.DataFiles) != 2 || len(decoded.SupportFiles) != 1 {
		t.Fatalf("unexpected table sizes: %+v", decoded)
	}
	if decoded.LoadType == nil || decoded.LoadType.ID != 1 {
		t.Errorf("load type not round-tripped: %+v", decoded.LoadType)
	}
	if decoded.LoadCRC != h.LoadCRC {
		t.Errorf("load CRC: got %x want %x", decoded.LoadCRC, h.LoadCRC)
	}
	if !decoded.LoadCheckValue.Equal(h.LoadCheckValue) {
		t.Errorf("load check value not round-tripped")
	}

	if err := decoded.VerifyLoadIntegrity(dataBytes, supportBytes); err != nil {
		t.Errorf("VerifyLoadIntegrity: %v", err)
	}
}

func TestLoadHeaderVerifyLoadIntegrityDetectsTamper(t *testing.T) {
	h := sampleLoadHeader345()
	dataBytes := [][]byte{bytes.Repeat([]byte{0xAA}, 5), bytes.Repeat([]byte{0xBB}, 4)}
	supportBytes := [][]byte{bytes.Repeat([]byte{0xCC}, 11)}

	buf, err := h.EncodeWithIntegrity(dataBytes, supportBytes)
	if err != nil {
		t.Fatalf("EncodeWithIntegrity: %v", err)
	}
	decoded, err := DecodeLoadHeader(buf)
	if err != nil {
		t.Fatalf("DecodeLoadHeader: %v", err)
	}

	tamperedData := [][]byte{bytes.Repeat([]byte{0xFF}, 5), dataBytes[1]}
	if err := decoded.VerifyLoadIntegrity(tamperedData, supportBytes); err == nil {
		t.Fatal("expected VerifyLoadIntegrity to reject tampered data file bytes")
	}
}

func TestLoadHeaderDataFileWordByteInconsistency(t *testing.T) {
	h := sampleLoadHeader345()
	h.DataFiles[0].LengthWords = 99 // inconsistent with ByteLength: 5
	_, err := h.EncodeWithIntegrity([][]byte{bytes.Repeat([]byte{0xAA}, 5), bytes.Repeat([]byte{0xBB}, 4)}, nil)
	if err == nil {
		t.Fatal("expected an error for inconsistent word/byte length")
	}
	var invalid *arinc665.InvalidFileError
	if !asInvalidFileError(err, &invalid) {
		t.Fatalf("expected InvalidFileError, got %v (%T)", err, err)
	}
}

func asInvalidFileError(err error, target **arinc665.InvalidFileError) bool {
	return errors.As(err, target)
}

func TestLoadHeaderSupplement2NonZeroSpareRejected(t *testing.T) {
	h := &LoadHeaderFile{
		Version:    arinc665.Supplement2,
		PartFlags:  0x0001,
		PartNumber: "PN",
	}
	buf, err := h.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := DecodeLoadHeader(buf); err == nil {
		t.Fatal("expected non-zero spare in Part Flags to be rejected for Supplement2")
	}
}
