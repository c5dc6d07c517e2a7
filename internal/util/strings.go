// Package util provides common utility functions.
package util

import (
	"strings"
	"sync"
)

// LCase lowercases ASCII letters only, leaving every other byte untouched.
func LCase[T ~string](s T) T {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return T(b)
		}
	}
	return s
}

// EqFold reports whether s1 and s2 are equal under ASCII case folding.
func EqFold[T1, T2 ~string](s1 T1, s2 T2) bool {
	if len(s1) != len(s2) {
		return false
	}
	for i := 0; i < len(s1); i++ {
		c1, c2 := s1[i], s2[i]
		if 'A' <= c1 && c1 <= 'Z' {
			c1 += 'a' - 'A'
		}
		if 'A' <= c2 && c2 <= 'Z' {
			c2 += 'a' - 'A'
		}
		if c1 != c2 {
			return false
		}
	}
	return true
}

// Ellipsis truncates s to maxLen runes, appending "..." when truncated.
func Ellipsis(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[0:maxLen]) + "..."
}

var strBldrPool = &sync.Pool{
	New: func() any {
		sb := new(strings.Builder)
		sb.Grow(256)
		return sb
	},
}

func GetStringBuilder() *strings.Builder {
	return strBldrPool.Get().(*strings.Builder) //nolint:forcetypeassert
}

func FreeStringBuilder(sb *strings.Builder) {
	if sb.Cap() > 64*1024 {
		return
	}
	sb.Reset()
	strBldrPool.Put(sb)
}
