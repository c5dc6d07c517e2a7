// Package grammar matches URL tokens against their ABNF rules.
package grammar

import "github.com/ghettovoice/abnf"

// IsScheme reports whether s is a URL scheme as a whole.
func IsScheme[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := Scheme([]byte(s), ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}
