package plan

import (
	"sort"
	"strconv"
	"strings"
)

// SortByName reorders subnets by natural name order, so that dept2
// sorts before dept10. Allocate returns placement order; this is for
// callers that want a stable presentation keyed on the request names.
func SortByName(subnets []Subnet) {
	sort.SliceStable(subnets, func(i, j int) bool {
		return natCompare(subnets[i].Name, subnets[j].Name) < 0
	})
}

// Compare s and t using Dave Koelle's Alphanum algorithm for natural
// sorting: runs of digits compare as numbers, everything else as text.
func natCompare(s, t string) int {
	for len(s) > 0 && len(t) > 0 {
		cs := nextChunk(s)
		s = s[len(cs):]
		ct := nextChunk(t)
		t = t[len(ct):]

		if isASCIIDigit(rune(cs[0])) && isASCIIDigit(rune(ct[0])) {
			is, _ := strconv.Atoi(cs)
			it, _ := strconv.Atoi(ct)
			if is != it {
				if is > it {
					return 1
				}
				return -1
			}
		}
		if cmp := strings.Compare(cs, ct); cmp != 0 {
			return cmp
		}
	}

	return len(s) - len(t)
}

// nextChunk returns the leading run of digits or non-digits of s.
func nextChunk(s string) string {
	digits := isASCIIDigit(rune(s[0]))
	i := 1
	for i < len(s) && isASCIIDigit(rune(s[i])) == digits {
		i++
	}
	return s[:i]
}
