// Package textsim implements character-level sequence similarity used by
// entity resolution. The measure is the Ratcliff/Obershelp ratio: twice the
// number of matching characters over the total length of both strings,
// where matches are found by recursively splitting around the longest
// common substring.
package textsim

// Ratio returns the similarity of two strings in [0.0, 1.0]. It is
// symmetric, returns 1.0 for identical non-empty strings, and 0.0 when
// either string is empty. Comparison is case-sensitive; callers that want
// case-insensitive matching lower-case both sides first.
func Ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	ar := []rune(a)
	br := []rune(b)
	m := matchingChars(ar, br)
	return 2.0 * float64(m) / float64(len(ar)+len(br))
}

// matchingChars counts matched characters by locating the longest common
// substring and recursing into the unmatched pieces on either side.
func matchingChars(a, b []rune) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingChars(a[:ai], b[:bi])
	total += matchingChars(a[ai+size:], b[bi+size:])
	return total
}

// longestCommonSubstring finds the leftmost longest run of characters
// common to a and b, returning its start offsets and length.
func longestCommonSubstring(a, b []rune) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	// lengths[j] is the length of the common run ending at a[i], b[j-1]
	// from the previous row. A single rolling row keeps this O(len(b)) space.
	lengths := make([]int, len(b)+1)

	for i := 0; i < len(a); i++ {
		prev := 0
		for j := 1; j <= len(b); j++ {
			current := lengths[j]
			if a[i] == b[j-1] {
				lengths[j] = prev + 1
				if lengths[j] > size {
					size = lengths[j]
					ai = i - size + 1
					bi = j - size
				}
			} else {
				lengths[j] = 0
			}
			prev = current
		}
	}

	return ai, bi, size
}
