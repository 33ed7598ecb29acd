package media

// Load is a software part: a Load Header plus the data and support files it
// references (§3.1).
type Load struct {
	name           string
	parent         *Directory
	ms             *MediaSet
	mediumOverride *MediumNumber
	checkValue     CheckValueOverride

	PartNumber      string
	PartFlags       uint16 // bit 0 = download marker, per §3.1
	TargetHardware  []TargetHardwarePositions
	LoadType        *LoadType
	DataFiles       []LoadFileRef
	SupportFiles    []LoadFileRef
	UserDefinedData []byte

	LoadCheckValueType         CheckValueOverride
	DataFilesCheckValueType    CheckValueOverride
	SupportFilesCheckValueType CheckValueOverride

	// PrebuiltHeader, when non-nil, is a complete *.LUH byte image the
	// compiler may copy verbatim instead of synthesizing one, under the
	// NoneExisting/None load-header-creation policies (§4.4).
	PrebuiltHeader []byte
}

func (l *Load) nodeName() string         { return l.name }
func (l *Load) setParent(p *Directory)   { l.parent = p }
func (l *Load) getParent() *Directory    { return l.parent }
func (l *Load) ownMedium() *MediumNumber { return l.mediumOverride }

// Name returns the load's filename (the *.LUH name).
func (l *Load) Name() string { return l.name }

// Parent returns the directory containing this load, used by the
// decompiler's cross-reference resolution (§4.5 step 6a: "search
// recursively from the load's parent directory").
func (l *Load) Parent() *Directory { return l.parent }

// SetMediumOverride sets or clears this load's own medium number.
func (l *Load) SetMediumOverride(m *MediumNumber) { l.mediumOverride = m }

// AddDataFile appends a data-file reference, validating that file belongs
// to the same MediaSet (invariant 1).
func (l *Load) AddDataFile(file *RegularFile, partNumber string, cv CheckValueOverride) error {
	if err := l.validateFileRef(file); err != nil {
		return err
	}
	l.DataFiles = append(l.DataFiles, LoadFileRef{File: file, PartNumber: partNumber, CheckValueType: cv})
	return nil
}

// AddSupportFile appends a support-file reference, validating that file
// belongs to the same MediaSet.
func (l *Load) AddSupportFile(file *RegularFile, partNumber string, cv CheckValueOverride) error {
	if err := l.validateFileRef(file); err != nil {
		return err
	}
	l.SupportFiles = append(l.SupportFiles, LoadFileRef{File: file, PartNumber: partNumber, CheckValueType: cv})
	return nil
}

func (l *Load) validateFileRef(file *RegularFile) error {
	if file == nil {
		return crossReferenceNotOwned("data/support file", nil)
	}
	if file.ms != l.ms {
		return crossReferenceNotOwned("data/support file", file)
	}
	return nil
}
