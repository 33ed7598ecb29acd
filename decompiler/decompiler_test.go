package decompiler

import (
	"testing"

	"github.com/arinc665/arinc665"
	"github.com/arinc665/arinc665/compiler"
	"github.com/arinc665/arinc665/file"
	"github.com/arinc665/arinc665/media"
	"github.com/arinc665/arinc665/primitives"
)

// fakeIO is a minimal in-memory IO satisfying both compiler.IO (so tests can
// build fixtures with the real compiler) and decompiler.IO, keyed by medium
// and "\"-rooted path.
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

func (f *fakeIO) FileSize(m media.MediumNumber, relPath string) (int64, error) {
	b, err := f.ReadFile(m, relPath)
	if err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

// buildRoundTripSet constructs a MediaSet with one plain file, one load
// (two data files) and one batch referencing the load, compiling it through
// the real compiler to produce a fixture a decompiler test can read back.
func buildRoundTripSet(t *testing.T) (*fakeIO, *media.MediaSet) {
	t.Helper()
	ms := media.New("PN-MS-RT", nil)
	root := ms.Root()

	support, err := root.AddFile("README.TXT", nil)
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	support.Payload = []byte("release notes")

	data, err := root.AddFile("DATA.BIN", nil)
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	data.Payload = []byte{0x10, 0x20, 0x30, 0x40}

	load, err := root.AddLoad("APP.LUH", nil)
	if err != nil {
		t.Fatalf("AddLoad: %v", err)
	}
	load.PartNumber = "PN-LOAD-RT"
	load.TargetHardware = []media.TargetHardwarePositions{{TargetHardwareID: "THW-A", Positions: []string{"1", "2"}}}
	if err := load.AddDataFile(data, "PN-DATA-RT", media.Unset); err != nil {
		t.Fatalf("AddDataFile: %v", err)
	}
	if err := load.AddSupportFile(support, "PN-SUPPORT-RT", media.Unset); err != nil {
		t.Fatalf("AddSupportFile: %v", err)
	}

	batch, err := root.AddBatch("REL.LUB", nil)
	if err != nil {
		t.Fatalf("AddBatch: %v", err)
	}
	batch.PartNumber = "PN-BATCH-RT"
	batch.Comment = "initial release"
	if err := batch.AddTarget("THW-A_POS1", []*media.Load{load}); err != nil {
		t.Fatalf("AddTarget: %v", err)
	}

	io := newFakeIO()
	if err := compiler.Compile(ms, arinc665.Supplement345, io, compiler.Options{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return io, ms
}

func TestDecompileRoundTrip(t *testing.T) {
	io, _ := buildRoundTripSet(t)

	result, err := Decompile(io, []media.MediumNumber{1}, Options{CheckFileIntegrity: true})
	if err != nil {
		t.Fatalf("Decompile: %v", err)
	}
	ms := result.MediaSet
	if ms.PartNumber != "PN-MS-RT" {
		t.Errorf("PartNumber = %q, want PN-MS-RT", ms.PartNumber)
	}

	loads := ms.RecursiveLoads()
	if len(loads) != 1 {
		t.Fatalf("len(RecursiveLoads()) = %d, want 1", len(loads))
	}
	load := loads[0]
	if load.PartNumber != "PN-LOAD-RT" {
		t.Errorf("load PartNumber = %q, want PN-LOAD-RT", load.PartNumber)
	}
	if len(load.DataFiles) != 1 || load.DataFiles[0].File.Name() != "DATA.BIN" {
		t.Fatalf("load DataFiles = %+v, want one entry named DATA.BIN", load.DataFiles)
	}
	if len(load.SupportFiles) != 1 || load.SupportFiles[0].File.Name() != "README.TXT" {
		t.Fatalf("load SupportFiles = %+v, want one entry named README.TXT", load.SupportFiles)
	}

	batches := ms.RecursiveBatches()
	if len(batches) != 1 {
		t.Fatalf("len(RecursiveBatches()) = %d, want 1", len(batches))
	}
	batch := batches[0]
	if batch.PartNumber != "PN-BATCH-RT" || batch.Comment != "initial release" {
		t.Errorf("batch = %+v, want PN-BATCH-RT/initial release", batch)
	}
	if len(batch.TargetHardware) != 1 || len(batch.TargetHardware[0].Loads) != 1 || batch.TargetHardware[0].Loads[0] != load {
		t.Fatalf("batch TargetHardware = %+v, want one target referencing the decompiled load", batch.TargetHardware)
	}
}

func TestDecompileCrossMediumInconsistency(t *testing.T) {
	ms := media.New("PN-MS-XM", nil)
	if _, err := ms.Root().AddFile("A.BIN", nil); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	two := media.MediumNumber(2)
	if _, err := ms.Root().AddFile("B.BIN", &two); err != nil {
		t.Fatalf("AddFile: %v", err)
	}

	io := newFakeIO()
	if err := compiler.Compile(ms, arinc665.Supplement2, io, compiler.Options{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	flNBytes, err := io.ReadFile(2, `\FILES.LUM`)
	if err != nil {
		t.Fatalf("reading medium 2 FILES.LUM: %v", err)
	}
	flN, err := file.DecodeFileList(flNBytes)
	if err != nil {
		t.Fatalf("DecodeFileList: %v", err)
	}
	flN.MediaSetPN = "PN-CORRUPTED"
	corrupted, err := flN.Encode()
	if err != nil {
		t.Fatalf("re-encode corrupted FILES.LUM: %v", err)
	}
	io.files[2][`\FILES.LUM`] = corrupted

	_, err = Decompile(io, []media.MediumNumber{1, 2}, Options{})
	if err == nil {
		t.Fatal("expected an error decompiling an inconsistent medium 2, got nil")
	}
	se, ok := err.(*StateError)
	if !ok {
		t.Fatalf("expected *StateError, got %T: %v", err, err)
	}
	if se.Err != arinc665.ErrInconsistentAcrossMedia {
		t.Errorf("underlying error = %v, want ErrInconsistentAcrossMedia", se.Err)
	}
}

func TestDecompileCrossReferenceAmbiguous(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	crc := primitives.CRC16(0xFFFF, payload)

	fl := file.FileListFile{
		Version:    arinc665.Supplement2,
		MediaSetPN: "PN-MS-AMBIG",
		NumberOfMediaSetMembers: 1,
		Files: []file.FileListRow{
			{Filename: "DATA.BIN", PathName: `\DIR1`, MemberSequenceNumber: 1, CRC: crc},
			{Filename: "DATA.BIN", PathName: `\DIR2`, MemberSequenceNumber: 1, CRC: crc},
			{Filename: "APP.LUH", PathName: `\`, MemberSequenceNumber: 1, CRC: 0},
			{Filename: "LOADS.LUM", PathName: `\`, MemberSequenceNumber: 1, CRC: 0},
		},
	}
	flBytes, err := fl.Encode()
	if err != nil {
		t.Fatalf("encode FILES.LUM: %v", err)
	}

	ll := file.LoadListFile{
		Version:    arinc665.Supplement2,
		MediaSetPN: "PN-MS-AMBIG",
		NumberOfMediaSetMembers: 1,
		Loads: []file.LoadListRow{
			{HeaderFilename: "APP.LUH", PartNumber: "PN-LOAD-AMBIG", MemberSequenceNumber: 1},
		},
	}
	llBytes, err := ll.Encode()
	if err != nil {
		t.Fatalf("encode LOADS.LUM: %v", err)
	}

	lh := &file.LoadHeaderFile{
		Version:    arinc665.Supplement2,
		PartNumber: "PN-LOAD-AMBIG",
		DataFiles: []file.DataFileEntry{
			{Filename: "DATA.BIN", PartNumber: "PN-DATA-AMBIG", LengthWords: uint32((len(payload) + 1) / 2), CRC: crc},
		},
	}
	lhBytes, err := lh.EncodeWithIntegrity([][]byte{payload}, nil)
	if err != nil {
		t.Fatalf("encode APP.LUH: %v", err)
	}

	io := newFakeIO()
	if err := io.CreateMedium(1); err != nil {
		t.Fatalf("CreateMedium: %v", err)
	}
	io.files[1][`\FILES.LUM`] = flBytes
	io.files[1][`\LOADS.LUM`] = llBytes
	io.files[1][`\APP.LUH`] = lhBytes
	io.files[1][`\DIR1\DATA.BIN`] = payload
	io.files[1][`\DIR2\DATA.BIN`] = payload

	_, err = Decompile(io, []media.MediumNumber{1}, Options{})
	if err == nil {
		t.Fatal("expected a cross-reference ambiguity error, got nil")
	}
	var ambig *arinc665.CrossReferenceAmbiguousError
	se, ok := err.(*StateError)
	if !ok {
		t.Fatalf("expected *StateError wrapping ambiguity, got %T: %v", err, err)
	}
	ambig, ok = se.Err.(*arinc665.CrossReferenceAmbiguousError)
	if !ok {
		t.Fatalf("expected *arinc665.CrossReferenceAmbiguousError, got %T: %v", se.Err, se.Err)
	}
	if ambig.Kind != arinc665.CrossReferenceDataFile || ambig.Name != "DATA.BIN" {
		t.Errorf("ambiguity = %+v, want DataFile/DATA.BIN", ambig)
	}
}
