// Copyright 2026 The arinc665 Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package checkvalue implements the ARINC 665 Check Value plug-in set: a
// polymorphic {init, update, finalize} generator over {None, CRC8, CRC16,
// CRC32, CRC64, MD5, SHA1, SHA256, SHA512, Signature}, plus its canonical
// wire encoding (§4.1). Exposing it as a capability object rather than
// a codec-specific switch means a new algorithm is added here once and
// every file codec picks it up for free (Design Note "Check-Value plug-in
// set").
package checkvalue

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"hash/crc32"
	"hash/crc64"

	"github.com/arinc665/arinc665/primitives"
)

// Type is the 16-bit algorithm type id stored on the wire.
type Type uint16

// Algorithm identifiers. Values are this codec's own assignment — ARINC
// 665-5 leaves the type-id space implementation-defined beyond declaring it
// a 16-bit tag — so they need only be self-consistent between encode and
// decode, which they are here.
const (
	NotUsed Type = iota
	CRC8
	CRC16
	CRC32
	CRC64
	MD5
	SHA1
	SHA256
	SHA512
	// Signature is the "…" slot: a detached PKCS#7 SignedData digital
	// signature over the covered bytes, verified via go.mozilla.org/pkcs7.
	Signature
)

func (t Type) String() string {
	switch t {
	case NotUsed:
		return "NotUsed"
	case CRC8:
		return "CRC8"
	case CRC16:
		return "CRC16"
	case CRC32:
		return "CRC32"
	case CRC64:
		return "CRC64"
	case MD5:
		return "MD5"
	case SHA1:
		return "SHA1"
	case SHA256:
		return "SHA256"
	case SHA512:
		return "SHA512"
	case Signature:
		return "Signature"
	default:
		return fmt.Sprintf("Type(%d)", uint16(t))
	}
}

// Generator is a streaming Check Value computation: bytes are fed via
// Write, and Finalize yields the typed wire Value. Signature is the one
// Type that cannot be produced by streaming hashing (it requires an
// externally supplied signature blob); NewGenerator rejects it for
// encoding and VerifySignature is used instead for decode-time checks.
type Generator interface {
	hash.Hash
	Type() Type
	// Finalize returns the canonical Value for what has been written so
	// far. It does not reset the generator.
	Finalize() Value
}

// Value is a decoded or computed Check Value ready for wire encoding or
// comparison.
type Value struct {
	Type Type
	Data []byte
}

// IsNotUsed reports whether this Value represents the empty/absent Check
// Value (§4.1: "if the entire structure is zero-length, the field is
// Not Used").
func (v Value) IsNotUsed() bool { return v.Type == NotUsed || len(v.Data) == 0 }

// Equal reports whether two Values represent the same algorithm and bytes.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type || len(v.Data) != len(other.Data) {
		return false
	}
	for i := range v.Data {
		if v.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}

type genericGenerator struct {
	hash.Hash
	typ Type
}

func (g *genericGenerator) Type() Type { return g.typ }

func (g *genericGenerator) Finalize() Value {
	return Value{Type: g.typ, Data: g.Sum(nil)}
}

// NewGenerator returns a fresh Generator for typ. It returns an error for
// NotUsed (nothing to generate) and Signature (not streaming-hashable; use
// an external signer and VerifySignature instead).
func NewGenerator(typ Type) (Generator, error) {
	switch typ {
	case CRC8:
		return &genericGenerator{Hash: primitives.NewCRC8(), typ: typ}, nil
	case CRC16:
		return &genericGenerator{Hash: crc16Hash{primitives.NewCRC16()}, typ: typ}, nil
	case CRC32:
		return &genericGenerator{Hash: crc32.NewIEEE(), typ: typ}, nil
	case CRC64:
		return &genericGenerator{Hash: crc64.New(crc64.MakeTable(crc64.ISO)), typ: typ}, nil
	case MD5:
		return &genericGenerator{Hash: md5.New(), typ: typ}, nil
	case SHA1:
		return &genericGenerator{Hash: sha1.New(), typ: typ}, nil
	case SHA256:
		return &genericGenerator{Hash: sha256.New(), typ: typ}, nil
	case SHA512:
		return &genericGenerator{Hash: sha512.New(), typ: typ}, nil
	case NotUsed:
		return nil, fmt.Errorf("checkvalue: NotUsed has no generator")
	case Signature:
		return nil, fmt.Errorf("checkvalue: Signature is not a streaming hash; use VerifySignature")
	default:
		return nil, fmt.Errorf("checkvalue: unknown type %v", typ)
	}
}

// crc16Hash wraps the primitives CRC-16 engine as the hash.Hash a Generator
// embeds; Sum appends Sum16 as 2 big-endian bytes, the wire size of an
// ARINC 665 CRC-16 check value.
type crc16Hash struct {
	h primitives.Hash16
}

func (c crc16Hash) Write(p []byte) (int, error) { return c.h.Write(p) }
func (c crc16Hash) Sum(b []byte) []byte {
	v := c.h.Sum16()
	return append(b, byte(v>>8), byte(v))
}
func (c crc16Hash) Reset()         { c.h.Reset() }
func (c crc16Hash) Size() int      { return 2 }
func (c crc16Hash) BlockSize() int { return 1 }
