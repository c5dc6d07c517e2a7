package url

//go:generate go tool mockgen -destination=../internal/testutil/mapmock/mock_mapper.go -package=mapmock . DomainMapper

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gourl/internal/chars"
	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/internal/ipaddr"
	"github.com/ghettovoice/gourl/internal/percent"
	"github.com/ghettovoice/gourl/internal/util"
)

// HostType tells how the host of a URL was parsed.
type HostType uint8

const (
	HostNone HostType = iota
	HostEmpty
	HostDomain
	HostIPv4
	HostIPv6
	HostOpaque
)

func (t HostType) String() string {
	switch t {
	case HostNone:
		return "none"
	case HostEmpty:
		return "empty"
	case HostDomain:
		return "domain"
	case HostIPv4:
		return "ipv4"
	case HostIPv6:
		return "ipv6"
	case HostOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// DomainMapper converts a percent-decoded domain to its ASCII form.
// The result is lowercase and has no label separators other than '.'.
type DomainMapper interface {
	ToASCII(domain string) (string, error)
}

// parseHost parses the host text of a special or non-special URL
// and returns its serialization.
func parseHost(input string, special bool, mapper DomainMapper) (string, HostType, error) {
	if strings.HasPrefix(input, "[") {
		if !strings.HasSuffix(input, "]") || len(input) < 2 {
			return "", HostNone, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidIPv6, "unclosed bracket in %q", input))
		}
		addr, err := ipaddr.ParseIPv6(input[1 : len(input)-1])
		if err != nil {
			return "", HostNone, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidIPv6, err))
		}
		return "[" + addr.String() + "]", HostIPv6, nil
	}

	if !special {
		return errtrace.Wrap3(parseOpaqueHost(input))
	}

	domain := percent.ToValidUTF8(percent.Decode(input))
	ascii, err := mapper.ToASCII(domain)
	if err != nil {
		return "", HostNone, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHost, err))
	}
	if ascii == "" {
		return "", HostNone, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHost, "empty domain in %q", input))
	}
	for i := 0; i < len(ascii); i++ {
		if chars.IsForbiddenDomainCodePoint(ascii[i]) {
			return "", HostNone, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHost, "forbidden domain code point %q in %q", ascii[i], input))
		}
	}

	if ipaddr.EndsInNumber(ascii) {
		addr, err := ipaddr.ParseIPv4(ascii)
		if err != nil {
			return "", HostNone, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidIPv4, err))
		}
		return ipaddr.FormatIPv4(addr), HostIPv4, nil
	}
	return ascii, HostDomain, nil
}

func parseOpaqueHost(input string) (string, HostType, error) {
	for i := 0; i < len(input); i++ {
		if chars.IsForbiddenHostCodePoint(input[i]) {
			return "", HostNone, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHost, "forbidden host code point %q in %q", input[i], input))
		}
	}
	if input == "" {
		return "", HostEmpty, nil
	}
	return percent.Encode(input, percent.C0Control), HostOpaque, nil
}

// parseFileHost parses the host of a file URL, "localhost" becomes the empty host.
func parseFileHost(input string, mapper DomainMapper) (string, HostType, error) {
	if input == "" {
		return "", HostEmpty, nil
	}
	host, typ, err := parseHost(input, true, mapper)
	if err != nil {
		return "", HostNone, errtrace.Wrap(err)
	}
	if util.EqFold(host, "localhost") {
		return "", HostEmpty, nil
	}
	return host, typ, nil
}

// hostEnd returns the index in s where the host text ends: the first ':'
// outside brackets, '/', '?', '#' or for special URLs '\'.
func hostEnd(s string, special bool) int {
	inBrackets := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '[':
			inBrackets = true
		case ']':
			inBrackets = false
		case ':':
			if !inBrackets {
				return i
			}
		case '/', '?', '#':
			return i
		case '\\':
			if special {
				return i
			}
		}
	}
	return len(s)
}
