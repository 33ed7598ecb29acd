package file

import "github.com/arinc665/arinc665"

func errOutOfRange(what string) error {
	return &arinc665.InvalidFileError{File: "<nested>", Reason: what + " out of range"}
}
