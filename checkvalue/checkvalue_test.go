package checkvalue

import "testing"

func TestComputeAndWireRoundTrip(t *testing.T) {
	types := []Type{CRC8, CRC16, CRC32, CRC64, MD5, SHA1, SHA256, SHA512}
	data := []byte("the quick brown fox jumps over the lazy dog")

	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			v, err := Compute(typ, data)
			if err != nil {
				t.Fatalf("Compute(%v) failed: %v", typ, err)
			}
			if v.IsNotUsed() {
				t.Fatalf("Compute(%v) produced NotUsed", typ)
			}
			enc, err := Encode(v)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if len(enc)%2 != 0 {
				t.Fatalf("encoded Check Value must be 2-byte aligned, got %d bytes", len(enc))
			}
			got, n, err := Decode(enc, 0)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if n != len(enc) {
				t.Errorf("consumed %d bytes, want %d", n, len(enc))
			}
			if !got.Equal(v) {
				t.Errorf("round trip mismatch: got %+v, want %+v", got, v)
			}
		})
	}
}

func TestNotUsedEncodesEmpty(t *testing.T) {
	enc, err := Encode(Value{Type: NotUsed})
	if err != nil {
		t.Fatalf("Encode(NotUsed) failed: %v", err)
	}
	if len(enc) != 0 {
		t.Errorf("Encode(NotUsed) = %v, want empty", enc)
	}
}

func TestDecodeZeroLengthIsNotUsed(t *testing.T) {
	buf := []byte{0x00, 0x00, 0xAA, 0xBB}
	v, n, err := Decode(buf, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if n != 0 {
		t.Errorf("consumed %d bytes, want 0", n)
	}
	if !v.IsNotUsed() {
		t.Errorf("expected NotUsed, got %+v", v)
	}
}

func TestDifferentDataNotEqual(t *testing.T) {
	a, _ := Compute(CRC32, []byte("abc"))
	b, _ := Compute(CRC32, []byte("abd"))
	if a.Equal(b) {
		t.Error("distinct inputs produced equal check values")
	}
}
