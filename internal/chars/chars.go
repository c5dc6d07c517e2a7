// Package chars classifies the code points the URL parser cares about.
// All predicates work on single bytes: every class of interest is ASCII, and
// multi-byte UTF-8 sequences never contain ASCII bytes.
package chars

import "strings"

type table [256]bool

func newTable(members string) *table {
	var t table
	for i := 0; i < len(members); i++ {
		t[members[i]] = true
	}
	return &t
}

var (
	forbiddenHost   = newTable("\x00\t\n\r #/:<>?@[\\]^|")
	forbiddenDomain = func() *table {
		t := *forbiddenHost
		for c := 0; c <= 0x1F; c++ {
			t[c] = true
		}
		t['%'] = true
		t[0x7F] = true
		return &t
	}()
)

func IsASCIIAlpha(c byte) bool { return 'a' <= c|0x20 && c|0x20 <= 'z' }

func IsASCIIDigit(c byte) bool { return '0' <= c && c <= '9' }

func IsASCIIAlnum(c byte) bool { return IsASCIIAlpha(c) || IsASCIIDigit(c) }

func IsASCIIHexDigit(c byte) bool {
	return IsASCIIDigit(c) || ('a' <= c|0x20 && c|0x20 <= 'f')
}

// IsSchemeChar reports whether c may appear after the first scheme letter.
func IsSchemeChar(c byte) bool { return IsASCIIAlnum(c) || c == '+' || c == '-' || c == '.' }

func IsC0ControlOrSpace(c byte) bool { return c <= 0x20 }

func IsTabOrNewline(c byte) bool { return c == '\t' || c == '\n' || c == '\r' }

// IsForbiddenHostCodePoint reports whether c may never appear in a host.
func IsForbiddenHostCodePoint(c byte) bool { return forbiddenHost[c] }

// IsForbiddenDomainCodePoint reports whether c may never appear in an ASCII domain.
func IsForbiddenDomainCodePoint(c byte) bool { return forbiddenDomain[c] }

func ContainsForbiddenHostCodePoint(s string) bool {
	for i := 0; i < len(s); i++ {
		if forbiddenHost[s[i]] {
			return true
		}
	}
	return false
}

func ContainsForbiddenDomainCodePoint(s string) bool {
	for i := 0; i < len(s); i++ {
		if forbiddenDomain[s[i]] {
			return true
		}
	}
	return false
}

func HasTabOrNewline(s string) bool {
	return strings.ContainsAny(s, "\t\n\r")
}

// RemoveTabOrNewline drops every ASCII tab or newline from s.
func RemoveTabOrNewline(s string) string {
	if !HasTabOrNewline(s) {
		return s
	}
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if !IsTabOrNewline(s[i]) {
			b = append(b, s[i])
		}
	}
	return string(b)
}

// TrimC0ControlOrSpace removes leading and trailing C0 controls and spaces.
func TrimC0ControlOrSpace(s string) string {
	i, j := 0, len(s)
	for i < j && IsC0ControlOrSpace(s[i]) {
		i++
	}
	for j > i && IsC0ControlOrSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}

// IsSingleDotSegment reports whether s is "." or "%2e" in any case.
func IsSingleDotSegment(s string) bool {
	return s == "." || strings.EqualFold(s, "%2e")
}

// IsDoubleDotSegment reports whether s is "..", ".%2e", "%2e." or "%2e%2e" in any case.
func IsDoubleDotSegment(s string) bool {
	switch len(s) {
	case 2:
		return s == ".."
	case 4:
		return strings.EqualFold(s, ".%2e") || strings.EqualFold(s, "%2e.")
	case 6:
		return strings.EqualFold(s, "%2e%2e")
	}
	return false
}

// IsWindowsDriveLetter reports whether s is an ASCII letter followed by ':' or '|'.
func IsWindowsDriveLetter(s string) bool {
	return len(s) == 2 && IsASCIIAlpha(s[0]) && (s[1] == ':' || s[1] == '|')
}

// IsNormalizedWindowsDriveLetter reports whether s is an ASCII letter followed by ':'.
func IsNormalizedWindowsDriveLetter(s string) bool {
	return len(s) == 2 && IsASCIIAlpha(s[0]) && s[1] == ':'
}

// StartsWithWindowsDriveLetter reports whether s begins with a drive letter
// that is either the whole string or followed by '/', '\', '?' or '#'.
func StartsWithWindowsDriveLetter(s string) bool {
	if len(s) < 2 || !IsWindowsDriveLetter(s[:2]) {
		return false
	}
	if len(s) == 2 {
		return true
	}
	switch s[2] {
	case '/', '\\', '?', '#':
		return true
	}
	return false
}

// IsASCII reports whether s contains only ASCII bytes.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
