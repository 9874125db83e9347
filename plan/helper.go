package plan

func isASCIIAlpha(c rune) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z'
}

func isASCIIDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isASCIIAlNum(c rune) bool {
	return isASCIIAlpha(c) || isASCIIDigit(c)
}

func isASCIIAlNumHyp(c rune) bool {
	return isASCIIAlNum(c) || c == '-'
}

// ValidName reports whether s works as a subnet name: hostname-like,
// so plans can feed DNS and DHCP configuration unchanged.
func ValidName(s string) bool {
	if len(s) == 0 {
		return false
	}
	if !isASCIIAlpha(rune(s[0])) {
		return false
	}
	for _, c := range s[1:] {
		if !isASCIIAlNumHyp(c) {
			return false
		}
	}
	return isASCIIAlNum(rune(s[len(s)-1]))
}
