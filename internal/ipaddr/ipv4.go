// Package ipaddr parses and serializes the IPv4 and IPv6 host forms accepted
// by URLs. The IPv4 parser accepts the legacy forms browsers still honour:
// fewer than four parts, octal ("0" prefix) and hexadecimal ("0x" prefix) numbers.
package ipaddr

//go:generate go tool errtrace -w .

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gourl/internal/chars"
	"github.com/ghettovoice/gourl/internal/errorutil"
)

const (
	ErrInvalidIPv4 errorutil.Error = "invalid IPv4 address"
	ErrInvalidIPv6 errorutil.Error = "invalid IPv6 address"
)

// EndsInNumber reports whether the last non-empty dot-separated label of
// domain is an IPv4 number, in which case the domain must be parsed as IPv4.
func EndsInNumber(domain string) bool {
	if domain == "" {
		return false
	}
	last := domain
	if last[len(last)-1] == '.' {
		last = last[:len(last)-1]
		if last == "" {
			return false
		}
	}
	if i := strings.LastIndexByte(last, '.'); i >= 0 {
		last = last[i+1:]
	}
	if last == "" {
		return false
	}
	allDigits := true
	for i := 0; i < len(last); i++ {
		if !chars.IsASCIIDigit(last[i]) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return true
	}
	_, err := parseIPv4Number(last)
	return err == nil
}

// ParseIPv4 parses s into a 32-bit address.
func ParseIPv4(s string) (uint32, error) {
	parts := strings.Split(s, ".")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) > 4 {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidIPv4, "too many parts in %q", s))
	}

	nums := make([]uint64, len(parts))
	for i, p := range parts {
		n, err := parseIPv4Number(p)
		if err != nil {
			return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidIPv4, err))
		}
		nums[i] = n
	}

	last := len(nums) - 1
	for i := range last {
		if nums[i] > 255 {
			return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidIPv4, "part %d out of range", i))
		}
	}
	if nums[last] >= 1<<(8*(5-len(nums))) {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidIPv4, "last part out of range"))
	}

	addr := nums[last]
	for i := range last {
		addr += nums[i] << (8 * (3 - i))
	}
	return uint32(addr), nil
}

func parseIPv4Number(s string) (uint64, error) {
	if s == "" {
		return 0, errtrace.Wrap(errorutil.Errorf("empty part"))
	}
	base := 10
	switch {
	case len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X'):
		s, base = s[2:], 16
	case len(s) >= 2 && s[0] == '0':
		s, base = s[1:], 8
	}
	if s == "" {
		return 0, nil
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		var ok bool
		switch base {
		case 8:
			ok = '0' <= c && c <= '7'
		case 10:
			ok = chars.IsASCIIDigit(c)
		default:
			ok = chars.IsASCIIHexDigit(c)
		}
		if !ok {
			return 0, errtrace.Wrap(errorutil.Errorf("invalid digit %q in base %d number", c, base))
		}
	}
	n, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		// only overflow is possible here, any such number is out of range anyway
		return 1 << 40, nil
	}
	return n, nil
}

// FormatIPv4 serializes addr in dotted decimal form.
func FormatIPv4(addr uint32) string {
	b := make([]byte, 0, 15)
	for i := 3; i >= 0; i-- {
		b = strconv.AppendUint(b, uint64(addr>>(8*i)&0xFF), 10)
		if i > 0 {
			b = append(b, '.')
		}
	}
	return string(b)
}
