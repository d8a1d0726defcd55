package resolver

import "strings"

// Match reports whether a stored location code matches a call number.
//
// In the default mode the stored code must equal the probed window. When
// matchBeginning is set the whole call number must start with the stored
// code and the code must end on a word boundary: "A1" matches "A1 foo" but
// not "A1B foo". Both comparisons ignore case.
func Match(storedCode, window, fullInput string, matchBeginning bool) bool {
	if storedCode == "" {
		return false
	}
	if matchBeginning {
		return hasWordPrefix(fullInput, storedCode)
	}
	return strings.EqualFold(storedCode, window)
}

// MatchPrefix reports whether the call number starts with the stored code,
// without requiring a word boundary. "A 100 2" matches "A 100 25".
func MatchPrefix(storedCode, fullInput string) bool {
	if storedCode == "" {
		return false
	}
	return strings.HasPrefix(strings.ToUpper(fullInput), strings.ToUpper(storedCode))
}

func hasWordPrefix(s, prefix string) bool {
	s, prefix = strings.ToUpper(s), strings.ToUpper(prefix)
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	return len(s) == len(prefix) || s[len(prefix)] == ' '
}
