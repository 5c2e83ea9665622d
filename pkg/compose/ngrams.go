// Package compose implements vector composition operators (spec.md §4.5),
// vector rejection (§4.7), and subword n-gram extraction used by
// densestore's out-of-vocabulary reconstruction (§4.6).
package compose

import "strings"

// boundaryPad wraps word with the boundary markers the original n-gram
// extractor uses so that n-grams near the start/end of a word are
// distinguishable from ones that occur mid-word.
func boundaryPad(word string) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(word)
	b.WriteByte('>')
	return b.String()
}

// ExtractNGramsSizeN returns every character n-gram of exactly length n in
// word, left to right, unpadded (no '<'/'>' boundary markers). Operates on
// runes so multi-byte characters count as one position, e.g.
// ExtractNGramsSizeN("Häuserchen", 3) starts with "Häu" and ends with
// "hen". Returns nil if n is not in [1, len(word)] by rune count.
func ExtractNGramsSizeN(word string, n int) []string {
	runes := []rune(word)
	if n <= 0 || n > len(runes) {
		return nil
	}
	out := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		out = append(out, string(runes[i:i+n]))
	}
	return out
}

// ExtractAllNGrams returns every character n-gram of word for n in
// [minN, maxN], boundary-padded with '<'/'>' and ordered by increasing
// length, left-to-right within each length. Operates on runes so
// multi-byte characters count as one position, matching the original's
// codepoint-based windowing.
func ExtractAllNGrams(word string, minN, maxN int) []string {
	if minN <= 0 {
		minN = 1
	}
	if maxN < minN {
		maxN = minN
	}
	padded := []rune(boundaryPad(word))
	var out []string
	for n := minN; n <= maxN; n++ {
		if n > len(padded) {
			break
		}
		for i := 0; i+n <= len(padded); i++ {
			out = append(out, string(padded[i:i+n]))
		}
	}
	return out
}
