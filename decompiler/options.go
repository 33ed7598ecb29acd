package decompiler

import "github.com/arinc665/arinc665/log"

// ProgressHandler reports decompile progress, matching §6.1's
// ProgressHandler signature.
type ProgressHandler func(partNumber string, currentMedium, totalMedia int)

// Options configures a Decompile run.
type Options struct {
	// CheckFileIntegrity, when set, verifies every regular file's bytes
	// against the CRC-16 and declared Check Value of its FILES.LUM row, and
	// every Load's Load CRC-32 and Load Check Value against its data and
	// support files (§4.5 steps 3 and 7). The FILES.LUM rows of Load Header
	// and Batch files are not checked against those files' bytes.
	CheckFileIntegrity bool

	Logger *log.Helper

	Progress ProgressHandler
}

func (o Options) logger() *log.Helper {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}
