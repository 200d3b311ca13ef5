package inflate

import "sync"

// The fixed Huffman tables (BTYPE=1) are the same for every fixed block in
// every stream, so they are built once and reused, the way the teacher's
// own flate.fixedHuffmanDecoder is initialized exactly once with sync.Once.
var (
	fixedOnce          sync.Once
	fixedLitLenTable   *Huffman
	fixedDistTable     *Huffman
	fixedTableBuildErr error
)

func fixedTables() (*Huffman, *Huffman, error) {
	fixedOnce.Do(func() {
		fixedLitLenTable, fixedTableBuildErr = buildHuffman(fixedLitLenLengths(), maxCodeLength)
		if fixedTableBuildErr != nil {
			return
		}
		fixedDistTable, fixedTableBuildErr = buildHuffman(fixedDistLengths(), maxCodeLength)
	})
	return fixedLitLenTable, fixedDistTable, fixedTableBuildErr
}
