package media

import "github.com/arinc665/arinc665"

// MediaSet is the root of the tree (§3.1). It exclusively owns every
// descendant; cross-references (Load→File, Batch→Load) are non-owning weak
// pointers whose lifetime is bound to the MediaSet (§3.4, Design Note
// "Back-references without cycles" — implemented here as direct pointers
// inside one arena rather than reference-counted nodes, since the MediaSet
// is the sole owner and Go's GC reclaims the whole arena together once it is
// dropped).
type MediaSet struct {
	PartNumber string

	FilesUDD   []byte
	LoadsUDD   []byte
	BatchesUDD []byte

	MediaSetCheckValueType      CheckValueOverride
	ListOfFilesCheckValueType   CheckValueOverride
	ListOfLoadsCheckValueType   CheckValueOverride
	ListOfBatchesCheckValueType CheckValueOverride
	FilesCheckValueType         CheckValueOverride

	root *Directory

	// Flat registries kept alongside the tree purely for O(back-refs) the
	// way §4.3's loadsWithFile/batchesWithLoad need; the tree itself
	// remains the single source of ownership and traversal order.
	regularFiles []*RegularFile
	loads        []*Load
	batches      []*Batch
}

// New creates an empty MediaSet, optionally seeded from defaults (pass nil
// for a bare MediaSet with every default Unset/empty).
func New(partNumber string, defaults *MediaSetDefaults) *MediaSet {
	ms := &MediaSet{PartNumber: partNumber}
	ms.root = newDirectory("", nil, ms)
	if defaults != nil {
		ms.MediaSetCheckValueType = defaults.MediaSetCheckValueType
		ms.ListOfFilesCheckValueType = defaults.ListOfFilesCheckValueType
		ms.ListOfLoadsCheckValueType = defaults.ListOfLoadsCheckValueType
		ms.ListOfBatchesCheckValueType = defaults.ListOfBatchesCheckValueType
		ms.FilesCheckValueType = defaults.FilesCheckValueType
		ms.FilesUDD = defaults.FilesUDD
		ms.LoadsUDD = defaults.LoadsUDD
		ms.BatchesUDD = defaults.BatchesUDD
	}
	return ms
}

// Root returns the MediaSet's root Directory ("\"), through which every
// containment operation (§4.3) is reached.
func (ms *MediaSet) Root() *Directory { return ms.root }

// RecursiveRegularFiles returns every RegularFile in the MediaSet,
// depth-first in traversal order.
func (ms *MediaSet) RecursiveRegularFiles() []*RegularFile { return ms.root.RecursiveRegularFiles() }

// RecursiveLoads returns every Load in the MediaSet, depth-first.
func (ms *MediaSet) RecursiveLoads() []*Load { return ms.root.RecursiveLoads() }

// RecursiveBatches returns every Batch in the MediaSet, depth-first.
func (ms *MediaSet) RecursiveBatches() []*Batch { return ms.root.RecursiveBatches() }

// RecursiveFiles narrows RecursiveFiles by filter (§4.3).
func (ms *MediaSet) RecursiveFiles(filter RecursiveFileFilter) []node { return ms.root.RecursiveFiles(filter) }

// LoadsWithFile returns every Load that references file as a data or
// support file (§4.3 Back-references), used by removal's
// deletion-safety check (invariant 3).
func (ms *MediaSet) LoadsWithFile(file *RegularFile) []*Load {
	var out []*Load
	for _, l := range ms.loads {
		for _, ref := range l.DataFiles {
			if ref.File == file {
				out = append(out, l)
				goto next
			}
		}
		for _, ref := range l.SupportFiles {
			if ref.File == file {
				out = append(out, l)
				break
			}
		}
	next:
	}
	return out
}

// BatchesWithLoad returns every Batch that references load.
func (ms *MediaSet) BatchesWithLoad(load *Load) []*Batch {
	var out []*Batch
	for _, b := range ms.batches {
		for _, target := range b.TargetHardware {
			for _, l := range target.Loads {
				if l == load {
					out = append(out, b)
					goto next
				}
			}
		}
	next:
	}
	return out
}

// LastMediumNumber computes max(effective medium numbers) across every file
// in the set (§3.1 Medium invariant). It returns 0 for an empty
// MediaSet.
func (ms *MediaSet) LastMediumNumber() MediumNumber {
	var last MediumNumber
	for _, n := range ms.RecursiveFiles(RecursiveFileFilter{}) {
		if m := EffectiveMedium(n); m > last {
			last = m
		}
	}
	return last
}

// Validate checks invariants 5 and 7 (every effective medium number in
// 1..255, non-empty part number) ahead of compilation, failing fast before
// any IO is touched (§4.4). Name uniqueness (invariant 6) is enforced when
// children are added, and odd-length user defined data (invariant 4) is
// padded by the encoders rather than rejected here.
func (ms *MediaSet) Validate() error {
	if ms.PartNumber == "" {
		return &arinc665.InvalidFileError{File: "<media set>", Reason: "part number is empty"}
	}
	for _, f := range ms.RecursiveFiles(RecursiveFileFilter{}) {
		m := EffectiveMedium(f)
		if m == 0 || m > 255 {
			return &arinc665.InvalidFileError{File: f.nodeName(), Reason: "effective medium number out of range"}
		}
	}
	return nil
}
