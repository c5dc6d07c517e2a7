// Package percent implements the percent-encode sets, percent-encoding and
// percent-decoding used by URL components.
package percent

import (
	"strings"
	"unicode/utf8"
)

// Set is a percent-encode set: a byte is encoded when Set[c] is true.
type Set [256]bool

func newSet(base *Set, extra string) *Set {
	var s Set
	if base != nil {
		s = *base
	}
	for i := 0; i < len(extra); i++ {
		s[extra[i]] = true
	}
	return &s
}

// Percent-encode sets, each one a superset of C0Control.
var (
	C0Control = func() *Set {
		var s Set
		for c := range 256 {
			s[c] = c < 0x20 || c > 0x7E
		}
		return &s
	}()
	Fragment       = newSet(C0Control, " \"<>`")
	Query          = newSet(C0Control, " \"#<>")
	SpecialQuery   = newSet(Query, "'")
	Path           = newSet(Query, "?`{}")
	Userinfo       = newSet(Path, "/:;=@[\\]^|")
	Component      = newSet(Userinfo, "$%&+,")
	FormURLEncoded = newSet(Component, "!'()~")
)

const upperhex = "0123456789ABCDEF"

// NeedsEncoding reports whether any byte of s belongs to set.
func NeedsEncoding(s string, set *Set) bool {
	for i := 0; i < len(s); i++ {
		if set[s[i]] {
			return true
		}
	}
	return false
}

// Encode replaces every byte of s that belongs to set with its "%XX" form.
// s is returned as is when nothing needs encoding.
func Encode(s string, set *Set) string {
	i := 0
	for i < len(s) && !set[s[i]] {
		i++
	}
	if i == len(s) {
		return s
	}
	return string(AppendEncode(append(make([]byte, 0, len(s)+16), s[:i]...), s[i:], set))
}

// AppendEncode appends the encoded form of s to dst.
func AppendEncode(dst []byte, s string, set *Set) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if set[c] {
			dst = append(dst, '%', upperhex[c>>4], upperhex[c&15])
		} else {
			dst = append(dst, c)
		}
	}
	return dst
}

// EncodeForm encodes s with the application/x-www-form-urlencoded set,
// writing spaces as '+'.
func EncodeForm(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			sb.WriteByte('+')
		case FormURLEncoded[c]:
			sb.WriteByte('%')
			sb.WriteByte(upperhex[c>>4])
			sb.WriteByte(upperhex[c&15])
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// Decode converts every "%XX" sequence with two hex digits into the byte it
// denotes. Other '%' bytes are kept. The result may be invalid UTF-8.
func Decode(s string) string {
	i := strings.IndexByte(s, '%')
	if i < 0 {
		return s
	}
	b := make([]byte, 0, len(s))
	b = append(b, s[:i]...)
	for ; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			b = append(b, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		b = append(b, s[i])
	}
	return string(b)
}

// DecodeForm decodes an application/x-www-form-urlencoded name or value:
// '+' becomes a space, "%XX" is decoded and invalid UTF-8 becomes U+FFFD.
func DecodeForm(s string) string {
	if strings.IndexByte(s, '+') >= 0 {
		s = strings.ReplaceAll(s, "+", " ")
	}
	return ToValidUTF8(Decode(s))
}

// ToValidUTF8 replaces each invalid byte of s with U+FFFD.
func ToValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.WriteString(s[:size])
		}
		s = s[size:]
	}
	return sb.String()
}

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
