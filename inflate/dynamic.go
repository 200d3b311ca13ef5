package inflate

// readDynamicTables reads a dynamic block's header (the part following
// BFINAL/BTYPE) and returns the literal/length and distance code tables it
// describes (RFC 1951 section 3.2.7).
func readDynamicTables(r *BitReader) (litlen, dist *Huffman, err error) {
	hlit, err := r.ReadLSB(5)
	if err != nil {
		return nil, nil, err
	}
	nlit := int(hlit) + 257 // 257..286

	hdist, err := r.ReadLSB(5)
	if err != nil {
		return nil, nil, err
	}
	ndist := int(hdist) + 1 // 1..32

	hclen, err := r.ReadLSB(4)
	if err != nil {
		return nil, nil, err
	}
	nclen := int(hclen) + 4 // 4..19

	var clLens [maxCodeLenSymbols]int
	for i := 0; i < nclen; i++ {
		v, err := r.ReadLSB(3)
		if err != nil {
			return nil, nil, err
		}
		clLens[codeLengthOrder[i]] = int(v)
	}
	// Remaining permutation positions are implicitly length 0.

	clTable, err := buildHuffman(clLens[:], maxCLCodeLength)
	if err != nil {
		return nil, nil, err
	}

	total := nlit + ndist
	lens := make([]int, total)
	prev := -1
	for i := 0; i < total; {
		sym, err := clTable.Decode(r)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case sym <= 15:
			lens[i] = sym
			prev = sym
			i++
		case sym == 16:
			if prev < 0 {
				return nil, nil, CorruptInputError(r.BitOffset())
			}
			extra, err := r.ReadLSB(2)
			if err != nil {
				return nil, nil, err
			}
			count := int(extra) + 3
			if i+count > total {
				return nil, nil, CorruptInputError(r.BitOffset())
			}
			for j := 0; j < count; j++ {
				lens[i] = prev
				i++
			}
		case sym == 17:
			extra, err := r.ReadLSB(3)
			if err != nil {
				return nil, nil, err
			}
			count := int(extra) + 3
			if i+count > total {
				return nil, nil, CorruptInputError(r.BitOffset())
			}
			for j := 0; j < count; j++ {
				lens[i] = 0
				i++
			}
			prev = 0
		case sym == 18:
			extra, err := r.ReadLSB(7)
			if err != nil {
				return nil, nil, err
			}
			count := int(extra) + 11
			if i+count > total {
				return nil, nil, CorruptInputError(r.BitOffset())
			}
			for j := 0; j < count; j++ {
				lens[i] = 0
				i++
			}
			prev = 0
		default:
			return nil, nil, CorruptInputError(r.BitOffset())
		}
	}

	litlen, err = buildHuffman(lens[:nlit], maxCodeLength)
	if err != nil {
		return nil, nil, err
	}
	dist, err = buildHuffman(lens[nlit:], maxCodeLength)
	if err != nil {
		return nil, nil, err
	}
	return litlen, dist, nil
}
