package inflate

// decodeHuffmanBlock consumes Huffman-coded symbols from r using litlen and
// dist, emitting literals and resolving length/distance back-references
// into w, until the block's end-of-block marker (symbol 256) is read.
func decodeHuffmanBlock(r *BitReader, litlen, dist *Huffman, w *window) error {
	for {
		sym, err := litlen.Decode(r)
		if err != nil {
			return err
		}

		switch {
		case sym < endOfBlock:
			if err := w.emit(byte(sym)); err != nil {
				return err
			}

		case sym == endOfBlock:
			return nil

		case sym <= lengthCodesEnd:
			idx := sym - lengthCodesStart
			extra, err := r.ReadLSB(lengthExtra[idx])
			if err != nil {
				return err
			}
			length := lengthBase[idx] + int(extra)

			dsym, err := dist.Decode(r)
			if err != nil {
				return err
			}
			if dsym >= len(distBase) {
				return CorruptInputError(r.BitOffset())
			}
			dextra, err := r.ReadLSB(distExtra[dsym])
			if err != nil {
				return err
			}
			distance := distBase[dsym] + int(dextra)

			if err := w.copyBack(length, distance); err != nil {
				return err
			}

		default:
			// Symbols 286 and 287 participate in fixed-table construction
			// but never appear as valid input.
			return CorruptInputError(r.BitOffset())
		}
	}
}
