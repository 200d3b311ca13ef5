package inflate

// Constants from RFC 1951 section 3.2.5 and 3.2.7.
const (
	maxLitLenSymbols  = 288 // 286 used, 286-287 padding for canonical construction
	maxDistSymbols    = 32  // 30 used
	maxCodeLenSymbols = 19
	maxCodeLength     = 15 // literal/length and distance alphabets
	maxCLCodeLength   = 7  // code-length alphabet

	endOfBlock       = 256
	lengthCodesStart = 257
	lengthCodesEnd   = 285
)

// codeLengthOrder is the fixed permutation in which the 3-bit code lengths
// for the 19-symbol code-length alphabet are transmitted in a dynamic
// block's header (RFC 1951 section 3.2.7).
var codeLengthOrder = [maxCodeLenSymbols]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// lengthBase and lengthExtra give the base value and extra-bit count for
// length symbols 257..285 (indexed by sym-257).
var lengthBase = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27,
	31, 35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtra = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2,
	2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase and distExtra give the base value and extra-bit count for the 30
// distance symbols.
var distBase = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129,
	193, 257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var distExtra = [30]uint8{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6,
	6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// fixedLitLenLengths are the code lengths for BTYPE=1 (fixed Huffman)
// blocks' literal/length alphabet, RFC 1951 section 3.2.6. Symbols 286 and
// 287 never appear in valid input but are included so the canonical codes
// assigned to 280..285 match the standard.
func fixedLitLenLengths() []int {
	lens := make([]int, maxLitLenSymbols)
	for s := 0; s <= 143; s++ {
		lens[s] = 8
	}
	for s := 144; s <= 255; s++ {
		lens[s] = 9
	}
	for s := 256; s <= 279; s++ {
		lens[s] = 7
	}
	for s := 280; s <= 287; s++ {
		lens[s] = 8
	}
	return lens
}

// fixedDistLengths are the code lengths for BTYPE=1 blocks' distance
// alphabet: every one of the 32 symbols has length 5.
func fixedDistLengths() []int {
	lens := make([]int, maxDistSymbols)
	for i := range lens {
		lens[i] = 5
	}
	return lens
}
