// Copyright 2026 The arinc665 Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package compiler implements the ARINC 665 Media Set compiler (spec
// §4.4): it walks an in-memory media.MediaSet and emits a complete,
// deterministic byte layout for every medium through the IO abstraction.
package compiler

import (
	"fmt"
	"strings"

	"github.com/arinc665/arinc665"
	"github.com/arinc665/arinc665/checkvalue"
	"github.com/arinc665/arinc665/file"
	"github.com/arinc665/arinc665/media"
)

// Compile emits ms to io as version, following the policies in opts.
func Compile(ms *media.MediaSet, version arinc665.Version, io IO, opts Options) error {
	logger := opts.logger()

	if err := ms.Validate(); err != nil {
		return err
	}

	last := ms.LastMediumNumber()
	if last == 0 {
		logger.Warnf("compiling an empty media set %q", ms.PartNumber)
		return nil
	}

	for m := media.MediumNumber(1); m <= last; m++ {
		if err := io.CreateMedium(m); err != nil {
			return err
		}
	}

	for m := media.MediumNumber(1); m <= last; m++ {
		if opts.Progress != nil {
			opts.Progress(ms.PartNumber, int(m), int(last))
		}
		if err := compileTree(ms.Root(), m, io); err != nil {
			return err
		}
	}

	loads := ms.RecursiveLoads()
	batches := ms.RecursiveBatches()

	for _, l := range loads {
		if len(l.UserDefinedData)%2 != 0 {
			logger.Warnf("compiler: padding odd-length user defined data of load %s with a zero byte", l.Name())
		}
		if err := compileLoad(ms, l, version, io, opts); err != nil {
			return fmt.Errorf("compiler: load %s: %w", l.Name(), err)
		}
	}

	for _, b := range batches {
		if err := compileBatch(ms, b, version, io, opts); err != nil {
			return fmt.Errorf("compiler: batch %s: %w", b.Name(), err)
		}
	}

	loadRows := buildLoadListRows(loads)
	batchRows := buildBatchListRows(batches)
	hasBatches := len(batches) > 0

	for _, u := range []struct {
		name string
		data []byte
	}{{"FILES.LUM", ms.FilesUDD}, {"LOADS.LUM", ms.LoadsUDD}, {"BATCHES.LUM", ms.BatchesUDD}} {
		if len(u.data)%2 != 0 && (hasBatches || u.name != "BATCHES.LUM") {
			logger.Warnf("compiler: padding odd-length %s user defined data with a zero byte", u.name)
		}
	}

	for m := media.MediumNumber(1); m <= last; m++ {
		ll := file.LoadListFile{
			Version:                 version,
			MediaSetPN:              ms.PartNumber,
			MediaSequenceNumber:     uint8(m),
			NumberOfMediaSetMembers: uint8(last),
			Loads:                   loadRows,
			UserDefinedData:         ms.LoadsUDD,
		}
		b, err := ll.Encode()
		if err != nil {
			return fmt.Errorf("compiler: encode LOADS.LUM for medium %d: %w", m, err)
		}
		if err := io.WriteFile(m, `\LOADS.LUM`, b); err != nil {
			return err
		}

		if hasBatches {
			bl := file.BatchListFile{
				Version:                 version,
				MediaSetPN:              ms.PartNumber,
				MediaSequenceNumber:     uint8(m),
				NumberOfMediaSetMembers: uint8(last),
				Batches:                 batchRows,
				UserDefinedData:         ms.BatchesUDD,
			}
			bb, err := bl.Encode()
			if err != nil {
				return fmt.Errorf("compiler: encode BATCHES.LUM for medium %d: %w", m, err)
			}
			if err := io.WriteFile(m, `\BATCHES.LUM`, bb); err != nil {
				return err
			}
		}
	}

	for m := media.MediumNumber(1); m <= last; m++ {
		rows, err := buildFileListRows(ms, io, last, hasBatches)
		if err != nil {
			return err
		}
		fl := file.FileListFile{
			Version:                 version,
			MediaSetPN:              ms.PartNumber,
			MediaSequenceNumber:     uint8(m),
			NumberOfMediaSetMembers: uint8(last),
			Files:                   rows,
			UserDefinedData:         ms.FilesUDD,
		}
		// FileCheckValue covers the File List File's own bytes, which are
		// not yet known until Encode runs; left NotUsed here since no
		// worked scenario specifies a splice procedure for it the way
		// Load Headers have one (Design Notes only describe the Load
		// Header's two-pass CRC, not an analogous one for FILES.LUM).
		fb, err := fl.Encode()
		if err != nil {
			return fmt.Errorf("compiler: encode FILES.LUM for medium %d: %w", m, err)
		}
		if err := io.WriteFile(m, `\FILES.LUM`, fb); err != nil {
			return err
		}
	}

	return nil
}

// compileTree creates directories and writes regular-file bytes belonging
// to medium m, depth-first in the model's traversal (insertion) order.
func compileTree(dir *media.Directory, m media.MediumNumber, io IO) error {
	for _, n := range dir.Children() {
		switch c := n.(type) {
		case *media.Directory:
			if !subtreeHasMedium(c, m) {
				continue
			}
			if err := io.CreateDirectory(m, media.Path(c)); err != nil {
				return err
			}
			if err := compileTree(c, m, io); err != nil {
				return err
			}
		case *media.RegularFile:
			if media.EffectiveMedium(c) != m {
				continue
			}
			if err := io.CreateFile(m, media.Path(c), c.Payload); err != nil {
				return err
			}
		}
	}
	return nil
}

// subtreeHasMedium reports whether any descendant of dir has effective
// medium m, used to skip creating directories with no content on a given
// medium.
func subtreeHasMedium(dir *media.Directory, m media.MediumNumber) bool {
	for _, n := range dir.Children() {
		switch c := n.(type) {
		case *media.Directory:
			if subtreeHasMedium(c, m) {
				return true
			}
		default:
			if media.EffectiveMedium(c) == m {
				return true
			}
		}
	}
	return false
}

// dirAndName returns the containing directory's path (the FILES.LUM row
// "path name") of a node's full model path, "\" for a root-level node.
func dirAndName(fullPath string) (dirPath string) {
	idx := strings.LastIndex(fullPath, `\`)
	if idx <= 0 {
		return `\`
	}
	return fullPath[:idx]
}

// joinPath joins a FILES.LUM row's directory path and filename back into a
// model-relative path, avoiding a doubled separator when dirPath is the
// root "\".
func joinPath(dirPath, filename string) string {
	if dirPath == `\` {
		return `\` + filename
	}
	return dirPath + `\` + filename
}

func compileLoad(ms *media.MediaSet, l *media.Load, version arinc665.Version, io IO, opts Options) error {
	m := media.EffectiveMedium(l)
	relPath := media.Path(l)

	if l.PrebuiltHeader != nil && opts.LoadHeaderPolicy != PolicyAll {
		if opts.LoadHeaderPolicy == PolicyNoneExisting {
			exists, err := io.CheckFileExistence(m, relPath)
			if err != nil {
				return err
			}
			if exists {
				return nil
			}
		}
		return io.CreateFile(m, relPath, l.PrebuiltHeader)
	}

	dataBytes := make([][]byte, len(l.DataFiles))
	dataEntries := make([]file.DataFileEntry, len(l.DataFiles))
	for i, ref := range l.DataFiles {
		b, err := io.ReadFile(media.EffectiveMedium(ref.File), media.Path(ref.File))
		if err != nil {
			return err
		}
		dataBytes[i] = b
		cvType := ref.EffectiveCheckValueType(l, false)
		var cv checkvalue.Value
		if version == arinc665.Supplement345 && cvType != checkvalue.NotUsed {
			cv, err = checkvalue.Compute(cvType, b)
			if err != nil {
				return err
			}
		}
		entry := file.DataFileEntry{
			Filename:    ref.File.Name(),
			PartNumber:  ref.PartNumber,
			LengthWords: uint32((len(b) + 1) / 2),
			CRC:         crc16Of(b),
		}
		if version == arinc665.Supplement345 {
			entry.ByteLength = uint64(len(b))
			entry.CheckValue = cv
		}
		dataEntries[i] = entry
	}

	supportBytes := make([][]byte, len(l.SupportFiles))
	supportEntries := make([]file.SupportFileEntry, len(l.SupportFiles))
	for i, ref := range l.SupportFiles {
		b, err := io.ReadFile(media.EffectiveMedium(ref.File), media.Path(ref.File))
		if err != nil {
			return err
		}
		supportBytes[i] = b
		entry := file.SupportFileEntry{
			Filename:   ref.File.Name(),
			PartNumber: ref.PartNumber,
			ByteLength: uint32(len(b)),
			CRC:        crc16Of(b),
		}
		if version == arinc665.Supplement345 {
			cvType := ref.EffectiveCheckValueType(l, true)
			if cvType != checkvalue.NotUsed {
				cv, err := checkvalue.Compute(cvType, b)
				if err != nil {
					return err
				}
				entry.CheckValue = cv
			}
		}
		supportEntries[i] = entry
	}

	thwIDs := make([]string, len(l.TargetHardware))
	var thwPositions []file.TargetHardwareWithPositions
	for i, thw := range l.TargetHardware {
		thwIDs[i] = thw.TargetHardwareID
		if version == arinc665.Supplement345 {
			thwPositions = append(thwPositions, file.TargetHardwareWithPositions{
				TargetHardwareID: thw.TargetHardwareID,
				Positions:        thw.Positions,
			})
		}
	}

	var loadType *file.LoadType
	if version == arinc665.Supplement345 && l.LoadType != nil {
		loadType = &file.LoadType{Description: l.LoadType.Description, ID: l.LoadType.ID}
	}

	lh := &file.LoadHeaderFile{
		Version:                     version,
		PartFlags:                   l.PartFlags,
		PartNumber:                  l.PartNumber,
		TargetHardwareIDs:           thwIDs,
		DataFiles:                   dataEntries,
		SupportFiles:                supportEntries,
		UserDefinedData:             l.UserDefinedData,
		LoadType:                    loadType,
		TargetHardwareWithPositions: thwPositions,
	}
	if version == arinc665.Supplement345 {
		lh.LoadCheckValueType = l.EffectiveLoadCheckValueType()
	}

	encoded, err := lh.EncodeWithIntegrity(dataBytes, supportBytes)
	if err != nil {
		return err
	}
	return io.WriteFile(m, relPath, encoded)
}

func compileBatch(ms *media.MediaSet, b *media.Batch, version arinc665.Version, io IO, opts Options) error {
	m := media.EffectiveMedium(b)
	relPath := media.Path(b)

	if b.PrebuiltFile != nil && opts.BatchFilePolicy != PolicyAll {
		if opts.BatchFilePolicy == PolicyNoneExisting {
			exists, err := io.CheckFileExistence(m, relPath)
			if err != nil {
				return err
			}
			if exists {
				return nil
			}
		}
		return io.CreateFile(m, relPath, b.PrebuiltFile)
	}

	targets := make([]file.BatchTargetHardware, len(b.TargetHardware))
	for i, t := range b.TargetHardware {
		loads := make([]file.BatchLoadRef, len(t.Loads))
		for j, l := range t.Loads {
			loads[j] = file.BatchLoadRef{HeaderFilename: l.Name(), PartNumber: l.PartNumber}
		}
		targets[i] = file.BatchTargetHardware{IDWithPosition: t.IDWithPosition, Loads: loads}
	}

	bf := file.BatchFile{
		Version:        version,
		PartNumber:     b.PartNumber,
		Comment:        b.Comment,
		TargetHardware: targets,
	}
	encoded, err := bf.Encode()
	if err != nil {
		return err
	}
	return io.WriteFile(m, relPath, encoded)
}

func buildLoadListRows(loads []*media.Load) []file.LoadListRow {
	rows := make([]file.LoadListRow, len(loads))
	for i, l := range loads {
		ids := make([]string, len(l.TargetHardware))
		for j, t := range l.TargetHardware {
			ids[j] = t.TargetHardwareID
		}
		rows[i] = file.LoadListRow{
			HeaderFilename:       l.Name(),
			PartNumber:           l.PartNumber,
			MemberSequenceNumber: uint16(media.EffectiveMedium(l)),
			TargetHardwareIDs:    ids,
		}
	}
	return rows
}

func buildBatchListRows(batches []*media.Batch) []file.BatchListRow {
	rows := make([]file.BatchListRow, len(batches))
	for i, b := range batches {
		rows[i] = file.BatchListRow{
			Filename:             b.Name(),
			PartNumber:           b.PartNumber,
			MemberSequenceNumber: uint16(media.EffectiveMedium(b)),
		}
	}
	return rows
}

// buildFileListRows reads every file of the media set back through io from
// its own medium to populate its row's CRC-16 and Check Value, per §4.4
// step 6. It covers regular files, Load Header files and Batch files on
// every medium, and the LOADS.LUM / BATCHES.LUM of every medium 1..last,
// but never FILES.LUM itself, so every medium's FILES.LUM carries the same
// rows.
func buildFileListRows(ms *media.MediaSet, io IO, last media.MediumNumber, hasBatches bool) ([]file.FileListRow, error) {
	var rows []file.FileListRow
	effCV := ms.EffectiveFilesCheckValueType()

	addRow := func(name media.MediumNumber, filename, pathName string, cvType checkvalue.Type) error {
		b, err := io.ReadFile(name, joinPath(pathName, filename))
		if err != nil {
			return err
		}
		row := file.FileListRow{
			Filename:             filename,
			PathName:             pathName,
			MemberSequenceNumber: uint16(name),
			CRC:                  crc16Of(b),
		}
		if cvType != checkvalue.NotUsed {
			cv, err := checkvalue.Compute(cvType, b)
			if err != nil {
				return err
			}
			row.CheckValue = cv
		}
		rows = append(rows, row)
		return nil
	}

	for _, f := range ms.RecursiveRegularFiles() {
		fm := media.EffectiveMedium(f)
		full := media.Path(f)
		if err := addRow(fm, f.Name(), dirAndName(full), f.EffectiveCheckValueType()); err != nil {
			return nil, err
		}
	}
	for _, l := range ms.RecursiveLoads() {
		fm := media.EffectiveMedium(l)
		full := media.Path(l)
		if err := addRow(fm, l.Name(), dirAndName(full), effCV); err != nil {
			return nil, err
		}
	}
	for _, b := range ms.RecursiveBatches() {
		fm := media.EffectiveMedium(b)
		full := media.Path(b)
		if err := addRow(fm, b.Name(), dirAndName(full), effCV); err != nil {
			return nil, err
		}
	}

	for m := media.MediumNumber(1); m <= last; m++ {
		if err := addRow(m, "LOADS.LUM", `\`, effCV); err != nil {
			return nil, err
		}
		if hasBatches {
			if err := addRow(m, "BATCHES.LUM", `\`, effCV); err != nil {
				return nil, err
			}
		}
	}

	return rows, nil
}
