package file

import (
	"testing"

	"github.com/arinc665/arinc665"
)

func FuzzDecodeFileList(f *testing.F) {
	f.Add([]byte{})
	seed := FileListFile{Version: arinc665.Supplement2, MediaSetPN: "PN-0001", NumberOfMediaSetMembers: 1}
	if buf, err := seed.Encode(); err == nil {
		f.Add(buf)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		fl, err := DecodeFileList(data)
		if err != nil {
			return
		}
		if _, err := fl.Encode(); err != nil {
			t.Fatalf("re-encode of a successfully decoded FILES.LUM failed: %v", err)
		}
	})
}
