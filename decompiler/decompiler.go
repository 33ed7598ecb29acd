// Copyright 2026 The arinc665 Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package decompiler implements the ARINC 665 Media Set decompiler (spec
// §4.5): it reads a set of medium directories through the IO abstraction
// and reconstructs an in-memory media.MediaSet, optionally verifying every
// declared checksum along the way.
package decompiler

import (
	"strings"

	"github.com/arinc665/arinc665"
	"github.com/arinc665/arinc665/checkvalue"
	"github.com/arinc665/arinc665/file"
	"github.com/arinc665/arinc665/media"
	"github.com/arinc665/arinc665/primitives"
)

// FileHandle is any model entity that carries a filename: a RegularFile, a
// Load, or a Batch (§4.5 Output: "a map FileHandle → set of observed
// CheckValues").
type FileHandle interface{ Name() string }

// Result is the decompiler's output.
type Result struct {
	MediaSet    *media.MediaSet
	CheckValues map[FileHandle][]checkvalue.Observed
}

func (r *Result) observe(h FileHandle, o checkvalue.Observed) {
	r.CheckValues[h] = append(r.CheckValues[h], o)
}

// Decompile reads every medium in mediums (medium 1 must be first) through
// io and returns the reconstructed MediaSet.
func Decompile(io IO, mediums []media.MediumNumber, opts Options) (*Result, error) {
	logger := opts.logger()
	if len(mediums) == 0 || mediums[0] != 1 {
		return nil, stateErr(StateStart, &arinc665.InvalidFileError{
			File: "<media set>", Reason: "decompilation requires medium 1 to be present and listed first",
		})
	}

	result := &Result{CheckValues: make(map[FileHandle][]checkvalue.Observed)}

	fl1Bytes, err := io.ReadFile(1, `\FILES.LUM`)
	if err != nil {
		return nil, stateErr(StateReadFiles, err)
	}
	fl1, err := file.DecodeFileList(fl1Bytes)
	if err != nil {
		return nil, stateErr(StateReadFiles, err)
	}

	byFilename := make(map[string]file.FileListRow, len(fl1.Files))
	for _, row := range fl1.Files {
		if row.Filename == "FILES.LUM" {
			return nil, stateErr(StateReadFiles, &arinc665.InvalidFileError{File: "FILES.LUM", Reason: "FILES.LUM must not list itself"})
		}
		byFilename[row.Filename] = row
	}
	loadsRow, ok := byFilename["LOADS.LUM"]
	if !ok {
		return nil, stateErr(StateReadFiles, &arinc665.InvalidFileError{File: "FILES.LUM", Reason: "missing mandatory LOADS.LUM entry"})
	}
	if loadsRow.PathName != `\` {
		return nil, stateErr(StateReadFiles, &arinc665.InvalidFileError{File: "FILES.LUM", Reason: "LOADS.LUM entry must be at root"})
	}
	batchesRow, hasBatches := byFilename["BATCHES.LUM"]
	if hasBatches && batchesRow.PathName != `\` {
		return nil, stateErr(StateReadFiles, &arinc665.InvalidFileError{File: "FILES.LUM", Reason: "BATCHES.LUM entry must be at root"})
	}

	ms := media.New(fl1.MediaSetPN, &media.MediaSetDefaults{FilesUDD: fl1.UserDefinedData})
	if opts.Progress != nil {
		opts.Progress(fl1.MediaSetPN, 1, len(mediums))
	}

	ll1Bytes, err := io.ReadFile(1, `\LOADS.LUM`)
	if err != nil {
		return nil, stateErr(StateReadLoads, err)
	}
	ll1, err := file.DecodeLoadList(ll1Bytes)
	if err != nil {
		return nil, stateErr(StateReadLoads, err)
	}
	ms.LoadsUDD = ll1.UserDefinedData

	var bl1 file.BatchListFile
	if hasBatches {
		bl1Bytes, err := io.ReadFile(1, `\BATCHES.LUM`)
		if err != nil {
			return nil, stateErr(StateReadBatches, err)
		}
		bl1, err = file.DecodeBatchList(bl1Bytes)
		if err != nil {
			return nil, stateErr(StateReadBatches, err)
		}
		ms.BatchesUDD = bl1.UserDefinedData
	}

	loadRowByFilename := make(map[string]file.LoadListRow, len(ll1.Loads))
	for _, r := range ll1.Loads {
		flRow, ok := byFilename[r.HeaderFilename]
		if !ok || flRow.MemberSequenceNumber != r.MemberSequenceNumber {
			return nil, stateErr(StateReadLoads, &arinc665.InvalidFileError{File: "LOADS.LUM", Reason: "row " + r.HeaderFilename + " disagrees with FILES.LUM"})
		}
		loadRowByFilename[r.HeaderFilename] = r
	}
	batchRowByFilename := make(map[string]file.BatchListRow, len(bl1.Batches))
	for _, r := range bl1.Batches {
		flRow, ok := byFilename[r.Filename]
		if !ok || flRow.MemberSequenceNumber != r.MemberSequenceNumber {
			return nil, stateErr(StateReadBatches, &arinc665.InvalidFileError{File: "BATCHES.LUM", Reason: "row " + r.Filename + " disagrees with FILES.LUM"})
		}
		batchRowByFilename[r.Filename] = r
	}

	// Build the tree from medium 1's FILES.LUM: every row is either a
	// plain RegularFile (read and inserted now) or a Load/Batch (inserted
	// now as an empty shell, populated from its own LUH/LUB below).
	for _, row := range fl1.Files {
		if row.Filename == "LOADS.LUM" || row.Filename == "BATCHES.LUM" {
			continue
		}
		dir, err := ensureDir(ms.Root(), row.PathName)
		if err != nil {
			return nil, stateErr(StateBuildModel, err)
		}
		seq := media.MediumNumber(row.MemberSequenceNumber)

		switch classifyFilename(row.Filename) {
		case kindLoad:
			if _, err := dir.AddLoad(row.Filename, &seq); err != nil {
				return nil, stateErr(StateBuildModel, err)
			}
		case kindBatch:
			if _, err := dir.AddBatch(row.Filename, &seq); err != nil {
				return nil, stateErr(StateBuildModel, err)
			}
		default:
			rf, err := dir.AddFile(row.Filename, &seq)
			if err != nil {
				return nil, stateErr(StateBuildModel, err)
			}
			b, err := io.ReadFile(seq, media.Path(rf))
			if err != nil {
				return nil, stateErr(StateVerifyFiles, err)
			}
			rf.Payload = b

			if opts.CheckFileIntegrity {
				if got := primitives.CRC16(0xFFFF, b); got != row.CRC {
					return nil, stateErr(StateVerifyFiles, &arinc665.CrcMismatchError{Field: arinc665.CrcFieldFileListRow, Got: uint64(got), Expected: uint64(row.CRC)})
				}
				result.observe(rf, checkvalue.Observed{Source: checkvalue.SourceCRC16, Value: checkvalue.Value{Type: checkvalue.CRC16, Data: []byte{byte(row.CRC >> 8), byte(row.CRC)}}})
				if !row.CheckValue.IsNotUsed() {
					got, err := checkvalue.Compute(row.CheckValue.Type, b)
					if err != nil {
						return nil, stateErr(StateVerifyFiles, err)
					}
					if !got.Equal(row.CheckValue) {
						return nil, stateErr(StateVerifyFiles, &arinc665.CheckValueMismatchError{Scope: arinc665.CheckValueScopeFile, Name: row.Filename})
					}
					result.observe(rf, checkvalue.Observed{Source: checkvalue.SourceFileListDeclared, Value: row.CheckValue})
				}
			}
		}
	}

	// Every additional medium must agree with medium 1's list files.
	for _, m := range mediums[1:] {
		if opts.Progress != nil {
			opts.Progress(fl1.MediaSetPN, int(m), len(mediums))
		}
		flNBytes, err := io.ReadFile(m, `\FILES.LUM`)
		if err != nil {
			return nil, stateErr(StateReadFiles, err)
		}
		flN, err := file.DecodeFileList(flNBytes)
		if err != nil {
			return nil, stateErr(StateReadFiles, err)
		}
		if !fl1.BelongsToSameMediaSet(flN) {
			return nil, stateErr(StateVerifyFiles, arinc665.ErrInconsistentAcrossMedia)
		}

		llNBytes, err := io.ReadFile(m, `\LOADS.LUM`)
		if err != nil {
			return nil, stateErr(StateReadLoads, err)
		}
		llN, err := file.DecodeLoadList(llNBytes)
		if err != nil {
			return nil, stateErr(StateReadLoads, err)
		}
		if !ll1.BelongsToSameMediaSet(llN) {
			return nil, stateErr(StateVerifyFiles, arinc665.ErrInconsistentAcrossMedia)
		}

		if hasBatches {
			blNBytes, err := io.ReadFile(m, `\BATCHES.LUM`)
			if err != nil {
				return nil, stateErr(StateReadBatches, err)
			}
			blN, err := file.DecodeBatchList(blNBytes)
			if err != nil {
				return nil, stateErr(StateReadBatches, err)
			}
			if !bl1.BelongsToSameMediaSet(blN) {
				return nil, stateErr(StateVerifyFiles, arinc665.ErrInconsistentAcrossMedia)
			}
		}
		logger.Debugf("medium %d agrees with medium 1", m)
	}

	// Decode every Load Header and link its cross-references.
	loads := ms.RecursiveLoads()
	for _, l := range loads {
		listRow, ok := loadRowByFilename[l.Name()]
		if !ok {
			return nil, stateErr(StateLinkLoads, &arinc665.InvalidFileError{File: l.Name(), Reason: "not present in LOADS.LUM"})
		}
		lhBytes, err := io.ReadFile(media.EffectiveMedium(l), media.Path(l))
		if err != nil {
			return nil, stateErr(StateLinkLoads, err)
		}
		lh, err := file.DecodeLoadHeader(lhBytes)
		if err != nil {
			return nil, stateErr(StateLinkLoads, err)
		}
		if lh.PartNumber != listRow.PartNumber {
			return nil, stateErr(StateLinkLoads, &arinc665.InvalidFileError{File: l.Name(), Reason: "part number disagrees with LOADS.LUM"})
		}
		if !sameMultiset(lh.TargetHardwareIDs, listRow.TargetHardwareIDs) {
			return nil, stateErr(StateLinkLoads, &arinc665.InvalidFileError{File: l.Name(), Reason: "target hardware IDs disagree with LOADS.LUM"})
		}

		l.PartNumber = lh.PartNumber
		l.PartFlags = lh.PartFlags
		l.UserDefinedData = lh.UserDefinedData
		if lh.LoadType != nil {
			l.LoadType = &media.LoadType{Description: lh.LoadType.Description, ID: lh.LoadType.ID}
		}
		if len(lh.TargetHardwareWithPositions) > 0 {
			thw := make([]media.TargetHardwarePositions, len(lh.TargetHardwareWithPositions))
			for j, t := range lh.TargetHardwareWithPositions {
				thw[j] = media.TargetHardwarePositions{TargetHardwareID: t.TargetHardwareID, Positions: t.Positions}
			}
			l.TargetHardware = thw
		} else {
			thw := make([]media.TargetHardwarePositions, len(lh.TargetHardwareIDs))
			for j, id := range lh.TargetHardwareIDs {
				thw[j] = media.TargetHardwarePositions{TargetHardwareID: id}
			}
			l.TargetHardware = thw
		}

		dataBytes := make([][]byte, len(lh.DataFiles))
		for j, entry := range lh.DataFiles {
			rf, err := resolveFileRef(l.Parent(), arinc665.CrossReferenceDataFile, entry.Filename, entry.CRC)
			if err != nil {
				return nil, stateErr(StateLinkLoads, err)
			}
			if err := l.AddDataFile(rf, entry.PartNumber, media.Unset); err != nil {
				return nil, stateErr(StateLinkLoads, err)
			}
			dataBytes[j] = rf.Payload
		}
		supportBytes := make([][]byte, len(lh.SupportFiles))
		for j, entry := range lh.SupportFiles {
			rf, err := resolveFileRef(l.Parent(), arinc665.CrossReferenceSupportFile, entry.Filename, entry.CRC)
			if err != nil {
				return nil, stateErr(StateLinkLoads, err)
			}
			if err := l.AddSupportFile(rf, entry.PartNumber, media.Unset); err != nil {
				return nil, stateErr(StateLinkLoads, err)
			}
			supportBytes[j] = rf.Payload
		}

		if opts.CheckFileIntegrity {
			if err := lh.VerifyLoadIntegrity(dataBytes, supportBytes); err != nil {
				return nil, stateErr(StateVerifyLoadCRCs, err)
			}
			result.observe(l, checkvalue.Observed{Source: checkvalue.SourceRecomputed, Value: checkvalue.Value{Type: checkvalue.CRC32, Data: crc32Bytes(lh.LoadCRC)}})
			if lh.LoadCheckValueType != checkvalue.NotUsed {
				result.observe(l, checkvalue.Observed{Source: checkvalue.SourceLoadHeaderDeclared, Value: lh.LoadCheckValue})
			}
		}
	}

	// Decode every Batch and link its referenced loads.
	for _, b := range ms.RecursiveBatches() {
		row, ok := batchRowByFilename[b.Name()]
		if !ok {
			return nil, stateErr(StateLinkBatches, &arinc665.InvalidFileError{File: b.Name(), Reason: "not present in BATCHES.LUM"})
		}
		bfBytes, err := io.ReadFile(media.EffectiveMedium(b), media.Path(b))
		if err != nil {
			return nil, stateErr(StateLinkBatches, err)
		}
		bf, err := file.DecodeBatch(bfBytes)
		if err != nil {
			return nil, stateErr(StateLinkBatches, err)
		}
		if bf.PartNumber != row.PartNumber {
			return nil, stateErr(StateLinkBatches, &arinc665.InvalidFileError{File: b.Name(), Reason: "part number disagrees with BATCHES.LUM"})
		}
		b.Comment = bf.Comment

		for _, t := range bf.TargetHardware {
			loadsForTarget := make([]*media.Load, len(t.Loads))
			for j, ref := range t.Loads {
				found, err := resolveLoadRef(b.Parent(), ref.HeaderFilename, ref.PartNumber)
				if err != nil {
					return nil, stateErr(StateLinkBatches, err)
				}
				loadsForTarget[j] = found
			}
			if err := b.AddTarget(t.IDWithPosition, loadsForTarget); err != nil {
				return nil, stateErr(StateLinkBatches, err)
			}
		}
	}

	result.MediaSet = ms
	return result, nil
}

type kind int

const (
	kindRegular kind = iota
	kindLoad
	kindBatch
)

func classifyFilename(name string) kind {
	upper := strings.ToUpper(name)
	switch {
	case strings.HasSuffix(upper, ".LUH"):
		return kindLoad
	case strings.HasSuffix(upper, ".LUB"):
		return kindBatch
	default:
		return kindRegular
	}
}

func ensureDir(root *media.Directory, pathName string) (*media.Directory, error) {
	if pathName == "" || pathName == `\` {
		return root, nil
	}
	trimmed := strings.TrimPrefix(pathName, `\`)
	cur := root
	for _, part := range strings.Split(trimmed, `\`) {
		if part == "" {
			continue
		}
		var next *media.Directory
		for _, sub := range cur.Subdirectories() {
			if sub.Name() == part {
				next = sub
				break
			}
		}
		if next == nil {
			created, err := cur.AddSubdirectory(part, nil)
			if err != nil {
				return nil, err
			}
			next = created
		}
		cur = next
	}
	return cur, nil
}

// resolveFileRef implements §4.5 step 6's resolution procedure:
// recursive search from dir, then CRC-16 disambiguation. A genuine CRC tie
// among candidates is reported as ambiguous rather than guessed at; a
// declared CRC that matches none of the name-only candidates falls back to
// the first one found, on the assumption the reference itself is sound and
// the stored CRC is what is stale.
func resolveFileRef(dir *media.Directory, refKind arinc665.CrossReferenceKind, filename string, crc uint16) (*media.RegularFile, error) {
	var candidates []*media.RegularFile
	for _, rf := range dir.RecursiveRegularFiles() {
		if rf.Name() == filename {
			candidates = append(candidates, rf)
		}
	}
	switch len(candidates) {
	case 0:
		return nil, &arinc665.CrossReferenceMissingError{Kind: refKind, Name: filename}
	case 1:
		return candidates[0], nil
	default:
		var crcMatches []*media.RegularFile
		for _, c := range candidates {
			if primitives.CRC16(0xFFFF, c.Payload) == crc {
				crcMatches = append(crcMatches, c)
			}
		}
		switch len(crcMatches) {
		case 1:
			return crcMatches[0], nil
		case 0:
			return candidates[0], nil
		default:
			return nil, &arinc665.CrossReferenceAmbiguousError{Kind: refKind, Name: filename, Candidates: len(crcMatches)}
		}
	}
}

// resolveLoadRef implements the same scoping rule for a Batch's load
// references, disambiguating by the referenced part number (Loads carry no
// CRC of their own to compare against, unlike data/support files).
func resolveLoadRef(dir *media.Directory, filename, partNumber string) (*media.Load, error) {
	var candidates []*media.Load
	for _, l := range dir.RecursiveLoads() {
		if l.Name() == filename {
			candidates = append(candidates, l)
		}
	}
	switch len(candidates) {
	case 0:
		return nil, &arinc665.CrossReferenceMissingError{Kind: arinc665.CrossReferenceLoad, Name: filename}
	case 1:
		if candidates[0].PartNumber != partNumber {
			return nil, &arinc665.InvalidFileError{File: filename, Reason: "part number disagrees with batch reference"}
		}
		return candidates[0], nil
	default:
		var pnMatches []*media.Load
		for _, c := range candidates {
			if c.PartNumber == partNumber {
				pnMatches = append(pnMatches, c)
			}
		}
		if len(pnMatches) == 1 {
			return pnMatches[0], nil
		}
		return nil, &arinc665.CrossReferenceAmbiguousError{Kind: arinc665.CrossReferenceLoad, Name: filename, Candidates: len(candidates)}
	}
}

func sameMultiset(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	for _, s := range b {
		counts[s]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}

func crc32Bytes(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}
