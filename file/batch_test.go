package file

import (
	"testing"

	"github.com/arinc665/arinc665"
)

func TestBatchFileRoundTrip(t *testing.T) {
	b := BatchFile{
		Version:    arinc665.Supplement345,
		PartNumber: "BATCH-PN-0001",
		Comment:    "production batch",
		TargetHardware: []BatchTargetHardware{
			{
				IDWithPosition: "THW-A@POS1",
				Loads: []BatchLoadRef{
					{HeaderFilename: "LOAD1.LUH", PartNumber: "LOAD-PN-1"},
					{HeaderFilename: "LOAD2.LUH", PartNumber: "LOAD-PN-2"},
				},
			},
			{
				IDWithPosition: "THW-B@POS1",
				Loads:          []BatchLoadRef{{HeaderFilename: "LOAD1.LUH", PartNumber: "LOAD-PN-1"}},
			},
		},
	}

	buf, err := b.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := DecodeBatch(buf)
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	if decoded.PartNumber != b.PartNumber || decoded.Comment != b.Comment {
		t.Errorf("header mismatch: %+v", decoded)
	}
	if len(decoded.TargetHardware) != 2 {
		t.Fatalf("expected 2 target hardware entries, got %d", len(decoded.TargetHardware))
	}
	if len(decoded.TargetHardware[0].Loads) != 2 || decoded.TargetHardware[0].Loads[1].HeaderFilename != "LOAD2.LUH" {
		t.Errorf("loads not round-tripped: %+v", decoded.TargetHardware[0])
	}
}

func TestBatchFileEmptyTargetHardware(t *testing.T) {
	b := BatchFile{Version: arinc665.Supplement2, PartNumber: "PN", Comment: ""}
	buf, err := b.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := DecodeBatch(buf)
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	if len(decoded.TargetHardware) != 0 {
		t.Errorf("expected no target hardware entries, got %d", len(decoded.TargetHardware))
	}
}
