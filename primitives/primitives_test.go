package primitives

import "testing"

func TestStringRoundTrip(t *testing.T) {
	tests := []struct {
		in string
	}{
		{"README.TXT"},
		{""},
		{"A"},
		{"ODD"},
		{"FOUR"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			enc, err := EncodeString(tt.in)
			if err != nil {
				t.Fatalf("EncodeString(%q) failed: %v", tt.in, err)
			}
			if len(enc)%2 != 0 {
				t.Fatalf("EncodeString(%q) produced odd-length buffer: %d", tt.in, len(enc))
			}
			got, n, err := DecodeString(enc, 0)
			if err != nil {
				t.Fatalf("DecodeString failed: %v", err)
			}
			if got != tt.in {
				t.Errorf("round trip: got %q, want %q", got, tt.in)
			}
			if n != len(enc) {
				t.Errorf("consumed %d bytes, want %d", n, len(enc))
			}
		})
	}
}

func TestStringListRoundTrip(t *testing.T) {
	in := []string{"THW-A", "THW-B", "X"}
	enc, err := EncodeStringList(in)
	if err != nil {
		t.Fatalf("EncodeStringList failed: %v", err)
	}
	got, n, err := DecodeStringList(enc, 0)
	if err != nil {
		t.Fatalf("DecodeStringList failed: %v", err)
	}
	if n != len(enc) {
		t.Errorf("consumed %d bytes, want %d", n, len(enc))
	}
	if len(got) != len(in) {
		t.Fatalf("got %d items, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("item %d: got %q, want %q", i, got[i], in[i])
		}
	}
}

func TestWordOffsetByteConversion(t *testing.T) {
	w := WordOffsetForByte(20)
	if w != 10 {
		t.Fatalf("WordOffsetForByte(20) = %d, want 10", w)
	}
	if w.Bytes() != 20 {
		t.Fatalf("Bytes() = %d, want 20", w.Bytes())
	}
	if !WordOffset(0).Absent() {
		t.Fatal("WordOffset(0) should be Absent")
	}
	if WordOffset(1).Absent() {
		t.Fatal("WordOffset(1) should not be Absent")
	}
}

func TestCRC16KnownVector(t *testing.T) {
	// "123456789" is the standard CRC-CCITT (XModem family) check string;
	// with init 0xFFFF this is the CRC-16/IBM-3740 variant whose check
	// value is well known to be 0x29B1.
	got := CRC16(0xFFFF, []byte("123456789"))
	if got != 0x29B1 {
		t.Errorf("CRC16 = 0x%04x, want 0x29b1", got)
	}
}

func TestCRC16StreamingMatchesOneShot(t *testing.T) {
	data := []byte("ABCD")
	a := CRC16(0xFFFF, data)
	h := NewCRC16()
	h.Write(data)
	b := h.Sum16()
	if a != b {
		t.Errorf("CRC16 = 0x%04x, NewCRC16 = 0x%04x", a, b)
	}
}

func TestPadUDD(t *testing.T) {
	if got := PadUDD([]byte{1, 2, 3}); len(got) != 4 || got[3] != 0 {
		t.Errorf("PadUDD odd = %v, want len 4 trailing 0", got)
	}
	if got := PadUDD([]byte{1, 2}); len(got) != 2 {
		t.Errorf("PadUDD even must not grow: %v", got)
	}
}
