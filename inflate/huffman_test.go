package inflate

import (
	"errors"
	"testing"
)

// packBits turns a string of '0'/'1' characters, in the order the bits are
// meant to be read off the wire, into bytes using DEFLATE's LSB-first
// byte-internal packing (bit i of the string lands at bit i%8 of byte i/8).
func packBits(bits string) []byte {
	buf := make([]byte, (len(bits)+7)/8)
	for i, c := range bits {
		if c == '1' {
			buf[i/8] |= 1 << uint(i%8)
		}
	}
	return buf
}

// Scenario A: count by length.
func TestBuildHuffmanCountByLength(t *testing.T) {
	lens := []int{3, 3, 3, 3, 3, 2, 4, 4}
	h, err := buildHuffman(lens, maxCodeLength)
	if err != nil {
		t.Fatalf("buildHuffman: %v", err)
	}
	want := map[int]int{2: 1, 3: 5, 4: 2}
	for l, n := range want {
		if h.count[l] != n {
			t.Errorf("count[%d] = %d, want %d", l, h.count[l], n)
		}
	}
}

// Scenario B: next_code by length.
func TestBuildHuffmanNextCode(t *testing.T) {
	lens := []int{3, 3, 3, 3, 3, 2, 4, 4}
	h, err := buildHuffman(lens, maxCodeLength)
	if err != nil {
		t.Fatalf("buildHuffman: %v", err)
	}
	want := map[int]int{2: 0, 3: 2, 4: 14}
	for l, code := range want {
		if h.firstCode[l] != code {
			t.Errorf("firstCode[%d] = %d, want %d", l, h.firstCode[l], code)
		}
	}
}

// Scenario C: canonical build assigns the expected bit pattern to each
// symbol.
func TestBuildHuffmanCanonicalDecode(t *testing.T) {
	lens := []int{3, 3, 3, 3, 3, 2, 4, 4}
	h, err := buildHuffman(lens, maxCodeLength)
	if err != nil {
		t.Fatalf("buildHuffman: %v", err)
	}

	cases := []struct {
		bits string
		sym  int
	}{
		{"00", 5},
		{"010", 0},
		{"011", 1},
		{"100", 2},
		{"101", 3},
		{"110", 4},
		{"1110", 6},
		{"1111", 7},
	}
	for _, c := range cases {
		r := NewBitReader(packBits(c.bits))
		sym, err := h.Decode(r)
		if err != nil {
			t.Errorf("bits %s: %v", c.bits, err)
			continue
		}
		if sym != c.sym {
			t.Errorf("bits %s: got symbol %d, want %d", c.bits, sym, c.sym)
		}
	}
}

// Scenario D: fixed literal/length table smoke test.
func TestFixedLitLenTable(t *testing.T) {
	h, err := buildHuffman(fixedLitLenLengths(), maxCodeLength)
	if err != nil {
		t.Fatalf("buildHuffman: %v", err)
	}

	cases := []struct {
		bits string
		sym  int
	}{
		{"00110000", 0},
		{"10111111", 143},
		{"110010000", 144},
		{"111111111", 255},
		{"0000000", 256},
		{"11000000", 280},
	}
	for _, c := range cases {
		r := NewBitReader(packBits(c.bits))
		sym, err := h.Decode(r)
		if err != nil {
			t.Errorf("bits %s: %v", c.bits, err)
			continue
		}
		if sym != c.sym {
			t.Errorf("bits %s: got symbol %d, want %d", c.bits, sym, c.sym)
		}
	}
}

func TestBuildHuffmanOverSubscribed(t *testing.T) {
	// Two length-1 codes would exhaust the entire length-1 space (both "0"
	// and "1"), leaving no room for a length-2 code.
	lens := []int{1, 1, 2}
	_, err := buildHuffman(lens, maxCodeLength)
	if err == nil {
		t.Fatal("expected an error for an over-subscribed code")
	}
	if !errors.Is(err, ErrCorruptStream) {
		t.Errorf("got %v, want an error wrapping ErrCorruptStream", err)
	}
}

func TestBuildHuffmanUnderSubscribed(t *testing.T) {
	// One length-1 code and one length-3 code leave unused code space: an
	// incomplete (under-subscribed) table, corrupt per section 4.2.
	lens := []int{1, 3}
	_, err := buildHuffman(lens, maxCodeLength)
	if err == nil {
		t.Fatal("expected an error for an under-subscribed code")
	}
	if !errors.Is(err, ErrCorruptStream) {
		t.Errorf("got %v, want an error wrapping ErrCorruptStream", err)
	}
}

func TestBuildHuffmanSingleSymbolWrongLength(t *testing.T) {
	// A one-symbol alphabet is only the permitted degenerate case when its
	// declared length is 1; any other length is corrupt rather than a
	// silent desync.
	lens := []int{0, 0, 3}
	_, err := buildHuffman(lens, maxCodeLength)
	if err == nil {
		t.Fatal("expected an error for a one-symbol table with length != 1")
	}
	if !errors.Is(err, ErrCorruptStream) {
		t.Errorf("got %v, want an error wrapping ErrCorruptStream", err)
	}
}

func TestBuildHuffmanSingleSymbol(t *testing.T) {
	lens := []int{0, 1, 0}
	h, err := buildHuffman(lens, maxCodeLength)
	if err != nil {
		t.Fatalf("buildHuffman: %v", err)
	}
	r := NewBitReader(packBits("0"))
	sym, err := h.Decode(r)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if sym != 1 {
		t.Errorf("got symbol %d, want 1", sym)
	}
}
