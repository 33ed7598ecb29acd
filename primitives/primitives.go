// Copyright 2026 The arinc665 Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package primitives implements the ARINC 665 byte-layout building blocks
// shared by every file codec: big-endian scalars, length-prefixed strings
// padded to 2-byte alignment, string lists, and the WordOffset pointer unit.
package primitives

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Order is the byte order of every scalar field on the wire.
var Order = binary.BigEndian

// WordOffset is a count of 16-bit words from the start of a file — the unit
// every intra-file pointer is expressed in. A value of 0 means "absent".
// Keeping pointers in this named type (rather than a raw byte offset)
// prevents the off-by-two errors that plague the C++ original: conversion
// to a byte offset happens only at the byte-read boundary, via Bytes.
type WordOffset uint32

// Bytes converts a word-count pointer to a byte offset.
func (w WordOffset) Bytes() int64 { return int64(w) * 2 }

// WordOffsetForByte converts a byte offset to a WordOffset pointer. The
// caller must ensure off is even; ARINC 665 fields are always 2-byte
// aligned so this never needs rounding in correct output.
func WordOffsetForByte(off int64) WordOffset { return WordOffset(off / 2) }

// Absent reports whether the pointer encodes "not present".
func (w WordOffset) Absent() bool { return w == 0 }

// Charset decodes/encodes the bytes of an ARINC 665 "character". The
// default, Windows1252, follows avionics ground-tooling practice of
// extended-Latin part numbers and comments; pure ASCII text round-trips
// identically through it since ASCII is a strict subset.
var Charset = charmap.Windows1252

// EncodeString encodes s as a 16-bit character count followed by its bytes,
// padded with one zero byte if the count is odd so the next field stays
// 2-byte aligned.
func EncodeString(s string) ([]byte, error) {
	enc, err := Charset.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("primitives: encode string %q: %w", s, err)
	}
	if len(enc) > 0xFFFF {
		return nil, fmt.Errorf("primitives: string %q too long (%d chars)", s, len(enc))
	}
	buf := make([]byte, 2, 2+len(enc)+1)
	Order.PutUint16(buf, uint16(len(enc)))
	buf = append(buf, enc...)
	if len(enc)%2 != 0 {
		buf = append(buf, 0)
	}
	return buf, nil
}

// DecodeString decodes a length-prefixed, pad-to-even string starting at
// offset off in buf. It returns the string and the number of bytes consumed
// (including the length prefix and any pad byte).
func DecodeString(buf []byte, off int) (string, int, error) {
	if off+2 > len(buf) {
		return "", 0, fmt.Errorf("primitives: string length prefix out of range at %d", off)
	}
	n := int(Order.Uint16(buf[off:]))
	start := off + 2
	end := start + n
	if end > len(buf) {
		return "", 0, fmt.Errorf("primitives: string body out of range at %d (len %d)", start, n)
	}
	dec, err := Charset.NewDecoder().Bytes(buf[start:end])
	if err != nil {
		return "", 0, fmt.Errorf("primitives: decode string at %d: %w", start, err)
	}
	consumed := 2 + n
	if n%2 != 0 {
		consumed++
	}
	return string(dec), consumed, nil
}

// EncodeStringList encodes a 16-bit count followed by that many
// length-prefixed strings.
func EncodeStringList(items []string) ([]byte, error) {
	var buf bytes.Buffer
	var countBuf [2]byte
	Order.PutUint16(countBuf[:], uint16(len(items)))
	buf.Write(countBuf[:])
	for _, s := range items {
		enc, err := EncodeString(s)
		if err != nil {
			return nil, err
		}
		buf.Write(enc)
	}
	return buf.Bytes(), nil
}

// DecodeStringList decodes a string list starting at offset off in buf,
// returning the items and the number of bytes consumed.
func DecodeStringList(buf []byte, off int) ([]string, int, error) {
	if off+2 > len(buf) {
		return nil, 0, fmt.Errorf("primitives: string list count out of range at %d", off)
	}
	count := int(Order.Uint16(buf[off:]))
	pos := off + 2
	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		s, n, err := DecodeString(buf, pos)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
		pos += n
	}
	return items, pos - off, nil
}

// PadUDD pads a user-defined-data blob to an even length with a single
// zero byte, per invariant 4. It returns the (possibly unchanged) slice.
func PadUDD(b []byte) []byte {
	if len(b)%2 == 0 {
		return b
	}
	return append(append([]byte{}, b...), 0)
}
