package media

// Batch is a grouped load manifest (§3.1): part number, free-form
// comment, and an ordered list of (target-hardware-id-with-position →
// ordered Loads) pairs.
type Batch struct {
	name           string
	parent         *Directory
	ms             *MediaSet
	mediumOverride *MediumNumber

	PartNumber     string
	Comment        string
	TargetHardware []BatchTarget

	// PrebuiltFile, when non-nil, is a complete *.LUB byte image the
	// compiler may copy verbatim instead of synthesizing one, under the
	// NoneExisting/None batch-file-creation policies (§4.4).
	PrebuiltFile []byte
}

func (b *Batch) nodeName() string         { return b.name }
func (b *Batch) setParent(p *Directory)   { b.parent = p }
func (b *Batch) getParent() *Directory    { return b.parent }
func (b *Batch) ownMedium() *MediumNumber { return b.mediumOverride }

// Name returns the batch's filename (the *.LUB name).
func (b *Batch) Name() string { return b.name }

// Parent returns the directory containing this batch, used by the
// decompiler's load cross-reference resolution (§4.5 step 8).
func (b *Batch) Parent() *Directory { return b.parent }

// SetMediumOverride sets or clears this batch's own medium number.
func (b *Batch) SetMediumOverride(m *MediumNumber) { b.mediumOverride = m }

// AddTarget appends a (target-hardware-id-with-position → loads) entry,
// validating that every referenced Load belongs to the same MediaSet
// (invariant 2).
func (b *Batch) AddTarget(idWithPosition string, loads []*Load) error {
	for _, l := range loads {
		if l == nil {
			return crossReferenceNotOwned("load", nil)
		}
		if l.ms != b.ms {
			return crossReferenceNotOwned("load", l)
		}
	}
	b.TargetHardware = append(b.TargetHardware, BatchTarget{IDWithPosition: idWithPosition, Loads: append([]*Load{}, loads...)})
	return nil
}
