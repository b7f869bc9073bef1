package sorting

import (
	"cmp"
	"strings"
	"unicode/utf8"
)

// NaturalCompare compares strings treating runs of digits as numbers,
// so "file2" sorts before "file10". Equal numbers with more leading zeros sort later.
func NaturalCompare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if c := cmp.Compare(len(na), len(nb)); c != 0 {
				return c
			}
			if c := strings.Compare(na, nb); c != 0 {
				return c
			}
			if c := cmp.Compare(i-si, j-sj); c != 0 {
				return c
			}
			continue
		}
		ra, sa := utf8.DecodeRuneInString(a[i:])
		rb, sb := utf8.DecodeRuneInString(b[j:])
		if ra != rb {
			return cmp.Compare(ra, rb)
		}
		i += sa
		j += sb
	}
	return cmp.Compare(len(a)-i, len(b)-j)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
