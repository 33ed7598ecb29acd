// Copyright 2026 The arinc665 Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package file implements the five ARINC 665 file codecs — FileListFile,
// LoadListFile, BatchListFile, LoadHeaderFile and BatchFile — sharing the
// common envelope (§4.2): a 32-bit File Length in 16-bit words, a
// 16-bit File Format Version, type-specific fields, and a trailing 16-bit
// File CRC computed over everything before it. Decoders share one
// body-parsing routine per file type and branch only on optional trailing
// fields, per Design Note "Version branching" — never a whole codec
// duplicated per supplement.
package file

import (
	"fmt"

	"github.com/arinc665/arinc665"
	"github.com/arinc665/arinc665/primitives"
)

const (
	envelopeHeaderLen  = 6 // File Length (4) + File Format Version (2)
	envelopeTrailerLen = 2 // File CRC (2)
)

// AssembleSimple builds a complete file buffer for the FileList/LoadList/
// BatchList/Batch codecs, whose trailer is only the 16-bit File CRC:
// [File Length][Format Version][body][File CRC]. It computes the length
// and CRC fields itself.
func AssembleSimple(fv arinc665.FormatVersion, body []byte) ([]byte, error) {
	total := envelopeHeaderLen + len(body) + envelopeTrailerLen
	if total%2 != 0 {
		return nil, fmt.Errorf("file: envelope must be 2-byte aligned, got %d bytes", total)
	}
	buf := make([]byte, total)
	primitives.Order.PutUint32(buf[0:4], uint32(total/2))
	primitives.Order.PutUint16(buf[4:6], uint16(fv))
	copy(buf[envelopeHeaderLen:], body)
	crc := primitives.CRC16(0xFFFF, buf[:total-envelopeTrailerLen])
	primitives.Order.PutUint16(buf[total-envelopeTrailerLen:], crc)
	return buf, nil
}

// ParseSimple validates the envelope of a simple-trailer file and returns
// its format version, the type-specific body slice (buf[6:len-2]), and the
// Version family it belongs to.
func ParseSimple(name string, buf []byte) (fv arinc665.FormatVersion, version arinc665.Version, body []byte, err error) {
	if len(buf) < envelopeHeaderLen+envelopeTrailerLen {
		return 0, 0, nil, &arinc665.InvalidFileError{File: name, Reason: "shorter than the minimum envelope"}
	}
	lengthWords := primitives.Order.Uint32(buf[0:4])
	if int(lengthWords)*2 != len(buf) {
		return 0, 0, nil, &arinc665.InvalidFileError{
			File:   name,
			Reason: fmt.Sprintf("declared length %d words does not match buffer length %d bytes", lengthWords, len(buf)),
		}
	}
	fv = arinc665.FormatVersion(primitives.Order.Uint16(buf[4:6]))
	version, ok := arinc665.VersionOf(fv)
	if !ok {
		return 0, 0, nil, &arinc665.InvalidFileError{File: name, Reason: fmt.Sprintf("unsupported format version 0x%04x", fv)}
	}
	crcOff := len(buf) - envelopeTrailerLen
	want := primitives.Order.Uint16(buf[crcOff:])
	got := primitives.CRC16(0xFFFF, buf[:crcOff])
	if got != want {
		return 0, 0, nil, &arinc665.CrcMismatchError{Field: arinc665.CrcFieldHeader, Got: uint64(got), Expected: uint64(want)}
	}
	return fv, version, buf[envelopeHeaderLen:crcOff], nil
}

// validatePointer checks §8's universal pointer property:
// p == 0 || p*2 < fileLength*2.
func validatePointer(name string, p primitives.WordOffset, fileLen int) error {
	if p.Absent() {
		return nil
	}
	if int(p.Bytes()) >= fileLen {
		return &arinc665.InvalidFileError{
			File:   name,
			Reason: fmt.Sprintf("pointer %d (byte %d) is outside the file (length %d)", p, p.Bytes(), fileLen),
		}
	}
	return nil
}
