package decompiler

import "github.com/arinc665/arinc665/media"

// IO is the subset of the §6.1 callback contract the decompiler
// drives: read-only access to each medium's bytes.
type IO interface {
	ReadFile(m media.MediumNumber, relPath string) ([]byte, error)
	FileSize(m media.MediumNumber, relPath string) (int64, error)
}
