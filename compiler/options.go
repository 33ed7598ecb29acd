package compiler

import "github.com/arinc665/arinc665/log"

// ProgressHandler reports compile progress, matching §6.1's
// ProgressHandler signature.
type ProgressHandler func(partNumber string, currentMedium, totalMedia int)

// Options configures a Compile run.
type Options struct {
	LoadHeaderPolicy CreationPolicy
	BatchFilePolicy  CreationPolicy

	// Logger receives warnings (e.g. UDD re-padding) and trace-level
	// progress.
	Logger *log.Helper

	// Progress, if set, is invoked once per medium, in ascending medium
	// order, with the media set part number, the medium number and the
	// number of media, before that medium's directories and regular files
	// are written.
	Progress ProgressHandler
}

func (o Options) logger() *log.Helper {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}
