package media

import (
	"testing"

	"github.com/arinc665/arinc665"
	"github.com/arinc665/arinc665/checkvalue"
)

func newTestSet() *MediaSet {
	return New("PN-TEST-001", &MediaSetDefaults{
		MediaSetCheckValueType: Override(checkvalue.CRC32),
	})
}

func TestAddFileDuplicateNameRejected(t *testing.T) {
	ms := newTestSet()
	root := ms.Root()
	if _, err := root.AddFile("README.TXT", nil); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if _, err := root.AddFile("README.TXT", nil); err == nil {
		t.Fatal("expected duplicate name error, got nil")
	} else if _, ok := err.(*arinc665.DuplicateError); !ok {
		t.Fatalf("expected *arinc665.DuplicateError, got %T", err)
	}
}

func TestRemoveChildInUseRejected(t *testing.T) {
	ms := newTestSet()
	root := ms.Root()
	f, err := root.AddFile("DATA.BIN", nil)
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	l, err := root.AddLoad("LOAD1.LUH", nil)
	if err != nil {
		t.Fatalf("AddLoad: %v", err)
	}
	if err := l.AddDataFile(f, "PN-DATA-001", Unset); err != nil {
		t.Fatalf("AddDataFile: %v", err)
	}
	if err := root.RemoveChild("DATA.BIN"); err == nil {
		t.Fatal("expected in-use error, got nil")
	} else if _, ok := err.(*arinc665.InUseError); !ok {
		t.Fatalf("expected *arinc665.InUseError, got %T", err)
	}
	if err := root.RemoveChild("LOAD1.LUH"); err != nil {
		t.Fatalf("removing the load should succeed: %v", err)
	}
	if err := root.RemoveChild("DATA.BIN"); err != nil {
		t.Fatalf("file should now be removable: %v", err)
	}
}

func TestCrossMediaSetReferenceRejected(t *testing.T) {
	ms1 := newTestSet()
	ms2 := newTestSet()
	f, err := ms2.Root().AddFile("FOREIGN.BIN", nil)
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	l, err := ms1.Root().AddLoad("LOAD1.LUH", nil)
	if err != nil {
		t.Fatalf("AddLoad: %v", err)
	}
	if err := l.AddDataFile(f, "PN-FOREIGN", Unset); err == nil {
		t.Fatal("expected cross-media-set reference error, got nil")
	}
}

func TestEffectiveMediumInheritance(t *testing.T) {
	ms := newTestSet()
	root := ms.Root()
	two := MediumNumber(2)
	sub, err := root.AddSubdirectory("SUB", &two)
	if err != nil {
		t.Fatalf("AddSubdirectory: %v", err)
	}
	f, err := sub.AddFile("A.BIN", nil)
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if got := EffectiveMedium(f); got != 2 {
		t.Errorf("EffectiveMedium(f) = %d, want 2", got)
	}
	three := MediumNumber(3)
	f.SetMediumOverride(&three)
	if got := EffectiveMedium(f); got != 3 {
		t.Errorf("EffectiveMedium(f) = %d, want 3 after own override", got)
	}
	unrooted, err := root.AddFile("B.BIN", nil)
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if got := EffectiveMedium(unrooted); got != 1 {
		t.Errorf("EffectiveMedium(unrooted) = %d, want 1 (default)", got)
	}
}

func TestEffectiveCheckValueTypeChain(t *testing.T) {
	ms := New("PN-CHAIN", &MediaSetDefaults{
		MediaSetCheckValueType: Override(checkvalue.CRC32),
	})
	if got := ms.EffectiveFilesCheckValueType(); got != checkvalue.CRC32 {
		t.Errorf("EffectiveFilesCheckValueType() = %v, want CRC32 (falls back to mediaSet)", got)
	}
	ms.FilesCheckValueType = Override(checkvalue.SHA256)
	if got := ms.EffectiveFilesCheckValueType(); got != checkvalue.SHA256 {
		t.Errorf("EffectiveFilesCheckValueType() = %v, want SHA256 override", got)
	}
	f, err := ms.Root().AddFile("X.BIN", nil)
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if got := f.EffectiveCheckValueType(); got != checkvalue.SHA256 {
		t.Errorf("file EffectiveCheckValueType() = %v, want inherited SHA256", got)
	}
	f.SetCheckValueType(Override(checkvalue.MD5))
	if got := f.EffectiveCheckValueType(); got != checkvalue.MD5 {
		t.Errorf("file EffectiveCheckValueType() = %v, want own override MD5", got)
	}
}

func TestPathConstruction(t *testing.T) {
	ms := newTestSet()
	sub, err := ms.Root().AddSubdirectory("LOADS", nil)
	if err != nil {
		t.Fatalf("AddSubdirectory: %v", err)
	}
	f, err := sub.AddFile("L1.LUH", nil)
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if got, want := Path(f), `\LOADS\L1.LUH`; got != want {
		t.Errorf("Path(f) = %q, want %q", got, want)
	}
}

func TestLastMediumNumber(t *testing.T) {
	ms := newTestSet()
	root := ms.Root()
	if got := ms.LastMediumNumber(); got != 0 {
		t.Errorf("empty set LastMediumNumber() = %d, want 0", got)
	}
	five := MediumNumber(5)
	if _, err := root.AddFile("A.BIN", &five); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if _, err := root.AddFile("B.BIN", nil); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if got := ms.LastMediumNumber(); got != 5 {
		t.Errorf("LastMediumNumber() = %d, want 5", got)
	}
}

func TestBatchesWithLoadBackReference(t *testing.T) {
	ms := newTestSet()
	root := ms.Root()
	l, err := root.AddLoad("L1.LUH", nil)
	if err != nil {
		t.Fatalf("AddLoad: %v", err)
	}
	b, err := root.AddBatch("B1.LUB", nil)
	if err != nil {
		t.Fatalf("AddBatch: %v", err)
	}
	if err := b.AddTarget("THW1-1", []*Load{l}); err != nil {
		t.Fatalf("AddTarget: %v", err)
	}
	refs := ms.BatchesWithLoad(l)
	if len(refs) != 1 || refs[0] != b {
		t.Fatalf("BatchesWithLoad(l) = %v, want [b]", refs)
	}
	if err := root.RemoveChild("L1.LUH"); err == nil {
		t.Fatal("expected in-use error removing a load referenced by a batch")
	}
}
