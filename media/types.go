// Copyright 2026 The arinc665 Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package media implements the in-memory ARINC 665 Media Set tree (spec
// §3): MediaSet, Directory, and the tagged-union File (RegularFile, Load,
// Batch), their cross-file invariants, and the effective-medium /
// effective-check-value-type resolution chains that the compiler and
// decompiler both depend on.
package media

import "github.com/arinc665/arinc665/checkvalue"

// MediumNumber identifies one medium (1..255) of a MediaSet.
type MediumNumber uint8

// CheckValueOverride distinguishes "explicitly set to X" from "not set,
// inherit from the parent" for the optional check-value-type fields spec
// §3.3's defaulting chain resolves. A zero CheckValueOverride is "not set" —
// it is not the same thing as explicitly overriding to checkvalue.NotUsed.
type CheckValueOverride struct {
	typ checkvalue.Type
	set bool
}

// Override returns a CheckValueOverride explicitly set to typ (which may
// itself be checkvalue.NotUsed — that is a real override, distinct from an
// absent one).
func Override(typ checkvalue.Type) CheckValueOverride {
	return CheckValueOverride{typ: typ, set: true}
}

// Unset is the zero value: no override, inherit from the parent default.
var Unset = CheckValueOverride{}

// Get returns the held type and whether an override is actually set.
func (o CheckValueOverride) Get() (checkvalue.Type, bool) { return o.typ, o.set }

// or resolves o against fallback per §3.3's defaulting chain.
func (o CheckValueOverride) or(fallback checkvalue.Type) checkvalue.Type {
	if o.set {
		return o.typ
	}
	return fallback
}

// LoadType names a Load's optional Load-Type-Description/ID pair (spec
// §3.1, §4.2.4).
type LoadType struct {
	Description string
	ID          uint16
}

// TargetHardwarePositions is one (target-hardware-id → ordered positions)
// pair of a Load (§3.1).
type TargetHardwarePositions struct {
	TargetHardwareID string
	Positions        []string
}

// LoadFileRef is one entry of a Load's data-files or support-files list: a
// weak reference to a RegularFile in the same MediaSet, the part number
// under which the Load refers to it, and an optional per-entry check-value
// override.
type LoadFileRef struct {
	File           *RegularFile
	PartNumber     string
	CheckValueType CheckValueOverride
}

// BatchTarget is one (target-hardware-id-with-position → ordered Loads)
// pair of a Batch (§3.1).
type BatchTarget struct {
	IDWithPosition string
	Loads          []*Load
}

// MediaSetDefaults bundles the five check-value-type defaults and the three
// UDD blobs a MediaSet is built from. New uses it to seed a MediaSet
// constructed from scratch (the decompiler passes one carrying FILES.LUM's
// user defined data).
type MediaSetDefaults struct {
	MediaSetCheckValueType      CheckValueOverride
	ListOfFilesCheckValueType   CheckValueOverride
	ListOfLoadsCheckValueType   CheckValueOverride
	ListOfBatchesCheckValueType CheckValueOverride
	FilesCheckValueType         CheckValueOverride

	FilesUDD   []byte
	LoadsUDD   []byte
	BatchesUDD []byte
}
