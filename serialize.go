package bankpulse

import "strings"

// Serialization helpers for the flat formats used when persisting results:
// theme names are semicolon-joined, keyword lists comma-joined. Parsing is
// lenient about the bracketed list literals older exports used, but never
// evaluates them as code.

// JoinThemes serializes theme names to a semicolon-joined string.
func JoinThemes(themes []string) string {
	return strings.Join(themes, "; ")
}

// SplitThemes parses a semicolon-joined theme string back into names.
func SplitThemes(s string) []string {
	return splitAndTrim(s, ";")
}

// JoinKeywords serializes keywords to a comma-joined string.
func JoinKeywords(keywords []string) string {
	return strings.Join(keywords, ", ")
}

// ParseKeywordList parses a stored keyword list. It accepts plain
// comma-joined strings as well as bracketed list literals such as
// ['login', 'otp'] or ["login", "otp"].
func ParseKeywordList(s string) []string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, `'"`)
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
