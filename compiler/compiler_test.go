package compiler

import (
	"testing"

	"github.com/arinc665/arinc665"
	"github.com/arinc665/arinc665/checkvalue"
	"github.com/arinc665/arinc665/file"
	"github.com/arinc665/arinc665/media"
)

// fakeIO is a minimal in-memory compiler.IO, keyed by medium and
// "\"-rooted path, standing in for a real filesystem backend in tests.
type fakeIO struct {
	media map[media.MediumNumber]bool
	dirs  map[media.MediumNumber]map[string]bool
	files map[media.MediumNumber]map[string][]byte
}

func newFakeIO() *fakeIO {
	return &fakeIO{
		media: make(map[media.MediumNumber]bool),
		dirs:  make(map[media.MediumNumber]map[string]bool),
		files: make(map[media.MediumNumber]map[string][]byte),
	}
}

func (f *fakeIO) CreateMedium(m media.MediumNumber) error {
	f.media[m] = true
	f.dirs[m] = make(map[string]bool)
	f.files[m] = make(map[string][]byte)
	return nil
}

func (f *fakeIO) CreateDirectory(m media.MediumNumber, relPath string) error {
	f.dirs[m][relPath] = true
	return nil
}

func (f *fakeIO) CheckFileExistence(m media.MediumNumber, relPath string) (bool, error) {
	_, ok := f.files[m][relPath]
	return ok, nil
}

func (f *fakeIO) CreateFile(m media.MediumNumber, relPath string, bytes []byte) error {
	f.files[m][relPath] = append([]byte{}, bytes...)
	return nil
}

func (f *fakeIO) WriteFile(m media.MediumNumber, relPath string, bytes []byte) error {
	f.files[m][relPath] = append([]byte{}, bytes...)
	return nil
}

func (f *fakeIO) ReadFile(m media.MediumNumber, relPath string) ([]byte, error) {
	b, ok := f.files[m][relPath]
	if !ok {
		return nil, &arinc665.InvalidFileError{File: relPath, Reason: "no such file on medium"}
	}
	return b, nil
}

func TestCompileMinimalSingleMedium(t *testing.T) {
	ms := media.New("PN-MS-001", nil)
	if _, err := ms.Root().AddFile("README.TXT", nil); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	readme := ms.Root().RecursiveRegularFiles()[0]
	readme.Payload = []byte("hello world")

	io := newFakeIO()
	if err := Compile(ms, arinc665.Supplement2, io, Options{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	flBytes, err := io.ReadFile(1, `\FILES.LUM`)
	if err != nil {
		t.Fatalf("reading FILES.LUM: %v", err)
	}
	fl, err := file.DecodeFileList(flBytes)
	if err != nil {
		t.Fatalf("DecodeFileList: %v", err)
	}
	if fl.MediaSetPN != "PN-MS-001" {
		t.Errorf("MediaSetPN = %q, want PN-MS-001", fl.MediaSetPN)
	}
	if len(fl.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2 (README.TXT + LOADS.LUM)", len(fl.Files))
	}
	var readmeRow *file.FileListRow
	for i := range fl.Files {
		if fl.Files[i].Filename == "README.TXT" {
			readmeRow = &fl.Files[i]
		}
	}
	if readmeRow == nil {
		t.Fatal("FILES.LUM has no README.TXT row")
	}
	if want := crc16Of(readme.Payload); readmeRow.CRC != want {
		t.Errorf("README.TXT row CRC = 0x%x, want 0x%x", readmeRow.CRC, want)
	}

	llBytes, err := io.ReadFile(1, `\LOADS.LUM`)
	if err != nil {
		t.Fatalf("reading LOADS.LUM: %v", err)
	}
	ll, err := file.DecodeLoadList(llBytes)
	if err != nil {
		t.Fatalf("DecodeLoadList: %v", err)
	}
	if len(ll.Loads) != 0 {
		t.Errorf("len(Loads) = %d, want 0", len(ll.Loads))
	}

	if _, err := io.ReadFile(1, `\BATCHES.LUM`); err == nil {
		t.Error("BATCHES.LUM should not be written when the media set has no batches")
	}
}

func TestCompileLoadRoundTripCRC(t *testing.T) {
	ms := media.New("PN-MS-002", nil)
	root := ms.Root()
	data1, err := root.AddFile("DATA1.BIN", nil)
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	data1.Payload = []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	data2, err := root.AddFile("DATA2.BIN", nil)
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	data2.Payload = []byte{0xAA, 0xBB}

	load, err := root.AddLoad("APP.LUH", nil)
	if err != nil {
		t.Fatalf("AddLoad: %v", err)
	}
	load.PartNumber = "PN-LOAD-001"
	load.LoadCheckValueType = media.Override(checkvalue.CRC32)
	if err := load.AddDataFile(data1, "PN-DATA1", media.Unset); err != nil {
		t.Fatalf("AddDataFile: %v", err)
	}
	if err := load.AddDataFile(data2, "PN-DATA2", media.Unset); err != nil {
		t.Fatalf("AddDataFile: %v", err)
	}

	io := newFakeIO()
	if err := Compile(ms, arinc665.Supplement345, io, Options{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	luhBytes, err := io.ReadFile(1, `\APP.LUH`)
	if err != nil {
		t.Fatalf("reading APP.LUH: %v", err)
	}
	lh, err := file.DecodeLoadHeader(luhBytes)
	if err != nil {
		t.Fatalf("DecodeLoadHeader: %v", err)
	}
	if lh.PartNumber != "PN-LOAD-001" {
		t.Errorf("PartNumber = %q, want PN-LOAD-001", lh.PartNumber)
	}
	if len(lh.DataFiles) != 2 {
		t.Fatalf("len(DataFiles) = %d, want 2", len(lh.DataFiles))
	}

	if err := lh.VerifyLoadIntegrity([][]byte{data1.Payload, data2.Payload}, nil); err != nil {
		t.Errorf("VerifyLoadIntegrity failed on freshly compiled load: %v", err)
	}
}

func TestCompileUserDefinedDataPadding(t *testing.T) {
	ms := media.New("PN-MS-003", &media.MediaSetDefaults{
		FilesUDD: []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE},
	})
	if _, err := ms.Root().AddFile("A.BIN", nil); err != nil {
		t.Fatalf("AddFile: %v", err)
	}

	io := newFakeIO()
	if err := Compile(ms, arinc665.Supplement2, io, Options{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	flBytes, err := io.ReadFile(1, `\FILES.LUM`)
	if err != nil {
		t.Fatalf("reading FILES.LUM: %v", err)
	}
	fl, err := file.DecodeFileList(flBytes)
	if err != nil {
		t.Fatalf("DecodeFileList: %v", err)
	}
	want := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0x00}
	if len(fl.UserDefinedData) != len(want) {
		t.Fatalf("UserDefinedData = % x, want % x", fl.UserDefinedData, want)
	}
	for i := range want {
		if fl.UserDefinedData[i] != want[i] {
			t.Fatalf("UserDefinedData = % x, want % x", fl.UserDefinedData, want)
		}
	}
}
