package cstream

import "bufio"

// SniffAlgorithm peeks at the leading bytes of br and reports which
// decompressing filter the content calls for, or AlgorithmNone for
// pass-through. Peeking consumes nothing: whichever filter is chosen
// observes the untouched original byte sequence from its start.
//
// Sources shorter than the longest signature are still sniffed against
// whatever bytes exist; an empty or unrecognized prefix selects
// pass-through.
func SniffAlgorithm(br *bufio.Reader) (Algorithm, bool) {
	prefix, err := br.Peek(maxMagicLen)
	if err != nil && len(prefix) == 0 {
		return AlgorithmNone, false
	}
	return IsCompressed(prefix)
}
