package media

import "github.com/arinc665/arinc665/checkvalue"

// EffectiveMedium resolves n's effective medium number: n's own override if
// set, else the nearest ancestor directory's override, else 1 (§3.1
// Medium).
func EffectiveMedium(n node) MediumNumber {
	if m := n.ownMedium(); m != nil {
		return *m
	}
	type parented interface{ getParent() *Directory }
	p, ok := n.(parented)
	if !ok {
		return 1
	}
	dir := p.getParent()
	for dir != nil {
		if m := dir.ownMedium(); m != nil {
			return *m
		}
		dir = dir.parent
	}
	return 1
}

// EffectiveMediaSetCheckValueType implements effective(MediaSet.mediaSet)
// (§3.3).
func (ms *MediaSet) EffectiveMediaSetCheckValueType() checkvalue.Type {
	return ms.MediaSetCheckValueType.or(checkvalue.NotUsed)
}

// EffectiveListOfFilesCheckValueType implements effective(MediaSet.listOfFiles).
func (ms *MediaSet) EffectiveListOfFilesCheckValueType() checkvalue.Type {
	return ms.ListOfFilesCheckValueType.or(ms.EffectiveMediaSetCheckValueType())
}

// EffectiveFilesCheckValueType implements effective(MediaSet.files), the
// MediaSet-wide fallback every individual File's own override falls back to.
func (ms *MediaSet) EffectiveFilesCheckValueType() checkvalue.Type {
	return ms.FilesCheckValueType.or(ms.EffectiveMediaSetCheckValueType())
}

// EffectiveListOfLoadsCheckValueType implements effective(MediaSet.listOfLoads).
func (ms *MediaSet) EffectiveListOfLoadsCheckValueType() checkvalue.Type {
	return ms.ListOfLoadsCheckValueType.or(ms.EffectiveFilesCheckValueType())
}

// EffectiveListOfBatchesCheckValueType implements effective(MediaSet.listOfBatches).
func (ms *MediaSet) EffectiveListOfBatchesCheckValueType() checkvalue.Type {
	return ms.ListOfBatchesCheckValueType.or(ms.EffectiveFilesCheckValueType())
}

// EffectiveCheckValueType implements effective(File) for a RegularFile:
// its own override, else the MediaSet-wide files default.
func (f *RegularFile) EffectiveCheckValueType() checkvalue.Type {
	return f.checkValue.or(f.ms.EffectiveFilesCheckValueType())
}

// EffectiveLoadCheckValueType implements effective(Load.load).
func (l *Load) EffectiveLoadCheckValueType() checkvalue.Type {
	return l.LoadCheckValueType.or(l.ms.EffectiveMediaSetCheckValueType())
}

// EffectiveDataFilesCheckValueType implements effective(Load.dataFiles).
func (l *Load) EffectiveDataFilesCheckValueType() checkvalue.Type {
	return l.DataFilesCheckValueType.or(l.ms.EffectiveMediaSetCheckValueType())
}

// EffectiveSupportFilesCheckValueType implements effective(Load.supportFiles).
func (l *Load) EffectiveSupportFilesCheckValueType() checkvalue.Type {
	return l.SupportFilesCheckValueType.or(l.ms.EffectiveMediaSetCheckValueType())
}

// EffectiveCheckValueType resolves ref's per-entry override against the
// Load's dataFiles/supportFiles default, given which list ref belongs to.
func (ref LoadFileRef) EffectiveCheckValueType(l *Load, isSupport bool) checkvalue.Type {
	fallback := l.EffectiveDataFilesCheckValueType()
	if isSupport {
		fallback = l.EffectiveSupportFilesCheckValueType()
	}
	return ref.CheckValueType.or(fallback)
}
