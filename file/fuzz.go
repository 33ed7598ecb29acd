package file

// Fuzz exercises DecodeFileList against arbitrary input, mirroring the
// teacher's top-level Fuzz(data []byte) int entry point for go-fuzz.
func Fuzz(data []byte) int {
	fl, err := DecodeFileList(data)
	if err != nil {
		return 0
	}
	if _, err := fl.Encode(); err != nil {
		return 0
	}
	return 1
}
