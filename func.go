package mailsyntax

import "encoding/binary"

// // // // // // // // // //

const (
	MinEmailLength  = 3
	MaxEmailLength  = 320
	MaxUserLength   = 64
	MaxDomainLength = 255
	MaxLabelLength  = 63

	maxIPLiteralLength = 45 + 2

	asciiMask uint64 = 0x8080808080808080
)

var (
	userTable         [256]bool
	alphanumericTable [256]bool
	domainTable       [256]bool
	ipLiteralTable    [256]bool
)

func init() {
	for c := 'a'; c <= 'z'; c++ {
		alphanumericTable[c] = true
		alphanumericTable[c-'a'+'A'] = true
	}
	for c := '0'; c <= '9'; c++ {
		alphanumericTable[c] = true
	}

	for c, ok := range alphanumericTable {
		userTable[c] = ok
		domainTable[c] = ok
	}
	for _, c := range []byte(".!#$%&'*+/=?^_`{|}~-") {
		userTable[c] = true
	}
	domainTable['-'] = true

	for _, c := range []byte("0123456789abcdefABCDEF.:") {
		ipLiteralTable[c] = true
	}
}

func isUserChar(c byte) bool         { return userTable[c] }
func isAlphanumericChar(c byte) bool { return alphanumericTable[c] }
func isDomainChar(c byte) bool       { return domainTable[c] }

//

// ValidationResult is the verdict for a domain label or a whole domain.
type ValidationResult uint8

const (
	Valid ValidationResult = iota
	Invalid
	RequiresIdnCheck
)

func (r ValidationResult) String() string {
	switch r {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case RequiresIdnCheck:
		return "requires-idn-check"
	}
	return "unknown"
}

// //

func scanLogin(s []byte, prevDot bool) (ok, lastDot bool) {
	for _, c := range s {
		if c > 127 || !isUserChar(c) {
			return false, prevDot
		}
		if c == '.' {
			if prevDot {
				return false, true
			}
			prevDot = true
		} else {
			prevDot = false
		}
	}
	return true, prevDot
}

// isValidLogin reports whether s is an acceptable local part: dot-atom characters only,
// no leading, trailing or doubled dots, ASCII only.
func isValidLogin(s []byte) bool {
	if len(s) == 0 || len(s) > MaxUserLength {
		return false
	}
	if s[0] == '.' || s[len(s)-1] == '.' {
		return false
	}
	if len(s) < 8 {
		ok, _ := scanLogin(s, false)
		return ok
	}

	var prevDot, ok bool
	n := len(s) &^ 7
	for i := 0; i < n; i += 8 {
		chunk := s[i : i+8]
		if binary.LittleEndian.Uint64(chunk)&asciiMask != 0 {
			return false
		}
		if ok, prevDot = scanLogin(chunk, prevDot); !ok {
			return false
		}
	}

	ok, _ = scanLogin(s[n:], prevDot)
	return ok
}

// validateLabel checks one dot-delimited domain segment. The edges must be ASCII alphanumeric;
// non-ASCII interior bytes turn the verdict into RequiresIdnCheck and the label is judged again
// after conversion.
func validateLabel(label []byte) ValidationResult {
	if len(label) == 0 || len(label) > MaxLabelLength {
		return Invalid
	}
	if !isAlphanumericChar(label[0]) || !isAlphanumericChar(label[len(label)-1]) {
		return Invalid
	}
	if len(label) == 1 {
		return Valid
	}

	nonASCII := false
	for _, c := range label[1 : len(label)-1] {
		if c > 127 {
			nonASCII = true
		} else if !isDomainChar(c) {
			return Invalid
		}
	}

	if nonASCII {
		return RequiresIdnCheck
	}
	return Valid
}

func validateDomain(s []byte) ValidationResult {
	if len(s) == 0 || len(s) > MaxDomainLength {
		return Invalid
	}
	if s[0] == '.' || s[len(s)-1] == '.' {
		return Invalid
	}

	result := Valid
	labels := 0
	start := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != '.' {
			continue
		}
		if i == start {
			return Invalid
		}

		switch validateLabel(s[start:i]) {
		case Invalid:
			return Invalid
		case RequiresIdnCheck:
			result = RequiresIdnCheck
		}
		labels++
		start = i + 1
	}

	if labels == 0 {
		return Invalid
	}
	return result
}

// findSeparator returns the index of the last '@' that leaves both sides non-empty, or -1.
func findSeparator(s []byte) int {
	if len(s) < MinEmailLength {
		return -1
	}
	for i := len(s) - 2; i >= 1; i-- {
		if s[i] == '@' {
			return i
		}
	}
	return -1
}
