package compiler

import "github.com/arinc665/arinc665/media"

// IO is the subset of the §6.1 callback contract the compiler drives.
// fsio.Backend satisfies this directly; tests typically supply an in-memory
// fake.
type IO interface {
	CreateMedium(m media.MediumNumber) error
	CreateDirectory(m media.MediumNumber, relPath string) error
	CheckFileExistence(m media.MediumNumber, relPath string) (bool, error)
	CreateFile(m media.MediumNumber, relPath string, bytes []byte) error
	WriteFile(m media.MediumNumber, relPath string, bytes []byte) error
	ReadFile(m media.MediumNumber, relPath string) ([]byte, error)
}

// CreationPolicy controls whether the compiler synthesises a Load Header or
// Batch File from the model, or copies a pre-existing payload the model
// already carries (§4.4).
type CreationPolicy int

const (
	// PolicyAll synthesises every Load Header / Batch File from the model,
	// ignoring any PrebuiltHeader/PrebuiltFile the model carries.
	PolicyAll CreationPolicy = iota
	// PolicyNoneExisting copies a Load's PrebuiltHeader / Batch's
	// PrebuiltFile via CreateFile unless CheckFileExistence reports a file
	// already at its path on the output medium, in which case that file is
	// left untouched. A Load/Batch without prebuilt bytes is synthesised
	// from the model, with no existence check.
	PolicyNoneExisting
	// PolicyNone copies every PrebuiltHeader/PrebuiltFile verbatim via
	// CreateFile, without checking the output medium. A Load/Batch without
	// prebuilt bytes is still synthesised from the model; it is not
	// rejected.
	PolicyNone
)

func (p CreationPolicy) String() string {
	switch p {
	case PolicyAll:
		return "All"
	case PolicyNoneExisting:
		return "NoneExisting"
	case PolicyNone:
		return "None"
	default:
		return "unknown"
	}
}
