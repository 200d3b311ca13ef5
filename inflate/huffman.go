package inflate

// Huffman is a canonical Huffman decoding table (RFC 1951 section 3.2.2).
// It is built once per alphabet from a vector of per-symbol code lengths and
// then used to decode a sequence of symbols from a BitReader.
//
// Representation: a per-length table of (code value -> symbol), which is
// the "per-length sub-table" option noted as acceptable in the design notes.
// firstCode[l] and firstSymbolIndex[l] give, for each length l, the numeric
// value of the first code of that length and the index into symbolsByLen
// where symbols of that length begin (symbols of equal length are stored in
// ascending symbol order, matching their assigned codes).
type Huffman struct {
	count            [maxCodeLength + 1]int // symbols of each length
	firstCode        [maxCodeLength + 1]int
	firstSymbolIndex [maxCodeLength + 1]int
	symbolsByLen     []int
	maxLen           int
	single           bool // true for the one-symbol degenerate alphabet
}

// buildHuffman constructs a canonical Huffman table from lens, where
// lens[s] is the bit length of symbol s (0 meaning s is absent). maxLen
// bounds the code length (15 for literal/length and distance, 7 for the
// code-length alphabet).
//
// It enforces RFC 1951's canonical construction: bl_count by length, then
// next_code by length, then per-symbol assignment in ascending symbol
// order. An over-subscribed alphabet (too many codes for its lengths) or an
// under-subscribed (incomplete) one is corrupt input; both reach here only
// from untrusted dynamic-block headers. An alphabet with exactly one used
// symbol, declared with code length 1, is a permitted degenerate case,
// decoded with a single 0 bit by convention; a one-symbol alphabet declared
// with any other length is itself corrupt (not the convention the spec
// describes).
func buildHuffman(lens []int, maxLen int) (*Huffman, error) {
	h := &Huffman{maxLen: maxLen}

	for _, l := range lens {
		// Unreachable from untrusted input: every caller derives maxLen
		// from a 3-bit or fixed constant and clamps lens to that range
		// before calling (dynamic.go's code-length symbols are 0..18, read
		// via 3/7-bit fields that cannot exceed maxCodeLength).
		if l < 0 || l > maxLen {
			return nil, InternalError("code length out of range")
		}
		if l > 0 {
			h.count[l]++
		}
	}

	used := 0
	for l := 1; l <= maxLen; l++ {
		used += h.count[l]
	}
	if used == 0 {
		// Empty alphabet: never produces a valid symbol, but building it is
		// not itself an error (a dynamic block's distance alphabet may be
		// empty when no back-references are used).
		return h, nil
	}
	if used == 1 {
		if h.count[1] != 1 {
			return nil, CorruptInputError(0)
		}
		var onlySymbol int
		for s, l := range lens {
			if l > 0 {
				onlySymbol = s
				break
			}
		}
		h.single = true
		h.symbolsByLen = []int{onlySymbol}
		return h, nil
	}

	// next_code[k] = (code + bl_count[k-1]) << 1, accumulated from k=1.
	code := 0
	var nextCode [maxCodeLength + 1]int
	left := 1 // number of possible codes of the current length, before assignment
	for l := 1; l <= maxLen; l++ {
		code = (code + h.count[l-1]) << 1
		nextCode[l] = code
		h.firstCode[l] = code

		left <<= 1
		left -= h.count[l]
		if left < 0 {
			return nil, CorruptInputError(0)
		}
	}
	if left != 0 {
		return nil, CorruptInputError(0)
	}

	// Lay out symbolsByLen: symbols grouped by length, ascending within a
	// length, so a (length, code-index-within-length) pair maps directly to
	// a slot.
	offset := 0
	for l := 1; l <= maxLen; l++ {
		h.firstSymbolIndex[l] = offset
		offset += h.count[l]
	}
	h.symbolsByLen = make([]int, offset)
	cursor := h.firstSymbolIndex
	for s, l := range lens {
		if l == 0 {
			continue
		}
		h.symbolsByLen[cursor[l]] = s
		cursor[l]++
	}

	return h, nil
}

// Decode reads one Huffman code from r and returns the symbol it encodes.
// Bits are read one at a time (BitReader.ReadHuffmanBit) and accumulated
// MSB-first into a running code value; the loop terminates as soon as the
// accumulated (length, code) pair falls within the range assigned to that
// length, which is guaranteed to happen at a length <= h.maxLen for a
// well-formed table.
func (h *Huffman) Decode(r *BitReader) (int, error) {
	if h.single {
		// The lone used symbol is read with a single 0 bit by convention;
		// any bit value resolves to it since there is nothing to
		// disambiguate.
		if _, err := r.ReadHuffmanBit(); err != nil {
			return 0, err
		}
		return h.symbolsByLen[0], nil
	}

	code := 0
	for length := 1; length <= h.maxLen; length++ {
		bit, err := r.ReadHuffmanBit()
		if err != nil {
			return 0, err
		}
		code = code<<1 | int(bit)

		count := h.count[length]
		if count == 0 {
			continue
		}
		first := h.firstCode[length]
		if code >= first && code-first < count {
			idx := h.firstSymbolIndex[length] + (code - first)
			return h.symbolsByLen[idx], nil
		}
	}
	return 0, CorruptInputError(r.BitOffset())
}
