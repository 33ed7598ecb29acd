// Copyright 2026 The arinc665 Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package arinc665 holds the shared error catalogue and version tags for the
// ARINC 665 media-set codec, model, compiler and decompiler.
package arinc665

import (
	"errors"
	"fmt"
)

// Sentinel errors returned directly (no extra fields).
var (
	// ErrUnsupportedVersion is returned when an encoder/decoder is asked to
	// target a file-format version outside the supported supplement ranges.
	ErrUnsupportedVersion = errors.New("arinc665: unsupported file format version")

	// ErrInconsistentAcrossMedia is returned by the decompiler when a list
	// file on medium N>1 does not belong to the same media set as medium
	// 1's list file (its BelongsToSameMediaSet check fails).
	ErrInconsistentAcrossMedia = errors.New("arinc665: list file differs across media")

	// ErrDuplicateName is returned when a container already has a child of
	// the requested name.
	ErrDuplicateName = errors.New("arinc665: duplicate name")

	// ErrInUse is returned when removing an entity that is still referenced.
	ErrInUse = errors.New("arinc665: entity is in use")
)

// InvalidFileError reports a malformed ARINC 665 file: wrong length, wrong
// version tag, non-zero spare, a bad pointer, a next-entry-pointer rule
// violation, or an inconsistent length field.
type InvalidFileError struct {
	File   string // well-known filename or codec name, e.g. "FILES.LUM"
	Reason string
}

func (e *InvalidFileError) Error() string {
	return fmt.Sprintf("arinc665: invalid %s: %s", e.File, e.Reason)
}

// CrcField identifies which CRC a CrcMismatchError refers to.
type CrcField int

const (
	// CrcFieldHeader is the per-file CRC-16 header checksum.
	CrcFieldHeader CrcField = iota
	// CrcFieldFileListRow is the per-row CRC-16 inside FILES.LUM.
	CrcFieldFileListRow
	// CrcFieldLoad is the whole-load CRC-32.
	CrcFieldLoad
)

func (f CrcField) String() string {
	switch f {
	case CrcFieldHeader:
		return "header CRC-16"
	case CrcFieldFileListRow:
		return "file-list row CRC-16"
	case CrcFieldLoad:
		return "load CRC-32"
	default:
		return "unknown CRC field"
	}
}

// CrcMismatchError is returned when a computed CRC does not match the value
// recorded on disk.
type CrcMismatchError struct {
	Field    CrcField
	Got      uint64
	Expected uint64
}

func (e *CrcMismatchError) Error() string {
	return fmt.Sprintf("arinc665: %s mismatch: got 0x%x, expected 0x%x",
		e.Field, e.Got, e.Expected)
}

// CheckValueScope identifies what a CheckValueMismatchError's check value
// was computed over.
type CheckValueScope int

const (
	// CheckValueScopeFile is a single file's check value (FILES.LUM row,
	// data/support file entry).
	CheckValueScopeFile CheckValueScope = iota
	// CheckValueScopeLoad is the whole-load check value.
	CheckValueScopeLoad
)

func (s CheckValueScope) String() string {
	switch s {
	case CheckValueScopeFile:
		return "file"
	case CheckValueScopeLoad:
		return "load"
	default:
		return "unknown"
	}
}

// CheckValueMismatchError is returned when a computed check value does not
// match the value recorded on disk.
type CheckValueMismatchError struct {
	Scope CheckValueScope
	Name  string
}

func (e *CheckValueMismatchError) Error() string {
	return fmt.Sprintf("arinc665: %s check value mismatch for %q", e.Scope, e.Name)
}

// CrossReferenceKind identifies the kind of cross-reference involved in a
// CrossReferenceMissingError or CrossReferenceAmbiguousError.
type CrossReferenceKind int

const (
	// CrossReferenceDataFile is a Load's data-file reference.
	CrossReferenceDataFile CrossReferenceKind = iota
	// CrossReferenceSupportFile is a Load's support-file reference.
	CrossReferenceSupportFile
	// CrossReferenceLoad is a Batch's load reference.
	CrossReferenceLoad
)

func (k CrossReferenceKind) String() string {
	switch k {
	case CrossReferenceDataFile:
		return "data file"
	case CrossReferenceSupportFile:
		return "support file"
	case CrossReferenceLoad:
		return "load"
	default:
		return "unknown"
	}
}

// CrossReferenceMissingError is returned when a Load references an absent
// RegularFile, or a Batch references an absent Load.
type CrossReferenceMissingError struct {
	Kind CrossReferenceKind
	Name string
}

func (e *CrossReferenceMissingError) Error() string {
	return fmt.Sprintf("arinc665: %s reference %q not found", e.Kind, e.Name)
}

// CrossReferenceAmbiguousError is returned when multiple candidates remain
// after scoping and (for files) CRC disambiguation.
type CrossReferenceAmbiguousError struct {
	Kind       CrossReferenceKind
	Name       string
	Candidates int
}

func (e *CrossReferenceAmbiguousError) Error() string {
	return fmt.Sprintf("arinc665: %s reference %q is ambiguous (%d candidates)",
		e.Kind, e.Name, e.Candidates)
}

// DuplicateError is returned on model mutation when a name already exists
// within a container.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("arinc665: duplicate name %q: %v", e.Name, ErrDuplicateName)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicateName }

// InUseError is returned on deletion of an entity still referenced by
// another entity.
type InUseError struct {
	Name string
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("arinc665: %q is in use: %v", e.Name, ErrInUse)
}

func (e *InUseError) Unwrap() error { return ErrInUse }

// IoError wraps an error returned by an IO abstraction callback (§6.1),
// identifying which callback and path failed.
type IoError struct {
	Op   string // e.g. "ReadFile", "CreateDirectory"
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("arinc665: io error during %s(%s): %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }
