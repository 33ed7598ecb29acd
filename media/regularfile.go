package media

// RegularFile is an opaque-payload file (§3.1).
type RegularFile struct {
	name           string
	parent         *Directory
	ms             *MediaSet
	mediumOverride *MediumNumber
	checkValue     CheckValueOverride

	// Payload is the file's raw bytes, as the compiler will write them.
	Payload []byte
	// Description is free-text model metadata; it has no on-disk
	// representation beyond FILES.LUM's own fields, so it round-trips only
	// through the model, not through a wire field.
	Description string
}

func (f *RegularFile) nodeName() string         { return f.name }
func (f *RegularFile) setParent(p *Directory)   { f.parent = p }
func (f *RegularFile) getParent() *Directory    { return f.parent }
func (f *RegularFile) ownMedium() *MediumNumber { return f.mediumOverride }

// Name returns the file's name.
func (f *RegularFile) Name() string { return f.name }

// SetMediumOverride sets or clears this file's own medium number.
func (f *RegularFile) SetMediumOverride(m *MediumNumber) { f.mediumOverride = m }

// SetCheckValueType sets or clears (Unset) this file's own check-value-type
// override.
func (f *RegularFile) SetCheckValueType(o CheckValueOverride) { f.checkValue = o }
