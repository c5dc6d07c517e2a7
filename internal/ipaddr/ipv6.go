package ipaddr

import (
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gourl/internal/chars"
	"github.com/ghettovoice/gourl/internal/errorutil"
)

// IPv6 is an IPv6 address as eight 16-bit pieces.
type IPv6 [8]uint16

// ParseIPv6 parses the text between the brackets of an IPv6 host.
func ParseIPv6(s string) (IPv6, error) {
	var (
		addr       IPv6
		pieceIndex = 0
		compress   = -1
		i          = 0
	)
	fail := func(msg string) (IPv6, error) {
		return IPv6{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidIPv6, "%s in %q", msg, s))
	}

	if i < len(s) && s[i] == ':' {
		if i+1 >= len(s) || s[i+1] != ':' {
			return fail("unexpected leading colon")
		}
		i += 2
		pieceIndex++
		compress = pieceIndex
	}

	for i < len(s) {
		if pieceIndex == 8 {
			return fail("too many pieces")
		}
		if s[i] == ':' {
			if compress != -1 {
				return fail("multiple compressions")
			}
			i++
			pieceIndex++
			compress = pieceIndex
			continue
		}

		value, length := 0, 0
		for length < 4 && i < len(s) && chars.IsASCIIHexDigit(s[i]) {
			value = value*0x10 + hexValue(s[i])
			i++
			length++
		}

		if i < len(s) && s[i] == '.' {
			if length == 0 {
				return fail("empty IPv4 part")
			}
			i -= length
			if pieceIndex > 6 {
				return fail("IPv4 part does not fit")
			}
			numbersSeen := 0
			for i < len(s) {
				ipv4Piece := -1
				if numbersSeen > 0 {
					if s[i] == '.' && numbersSeen < 4 {
						i++
					} else {
						return fail("invalid IPv4 part")
					}
				}
				if i >= len(s) || !chars.IsASCIIDigit(s[i]) {
					return fail("invalid IPv4 part")
				}
				for i < len(s) && chars.IsASCIIDigit(s[i]) {
					n := int(s[i] - '0')
					switch ipv4Piece {
					case -1:
						ipv4Piece = n
					case 0:
						return fail("leading zero in IPv4 part")
					default:
						ipv4Piece = ipv4Piece*10 + n
					}
					if ipv4Piece > 255 {
						return fail("IPv4 part out of range")
					}
					i++
				}
				addr[pieceIndex] = addr[pieceIndex]*0x100 + uint16(ipv4Piece)
				numbersSeen++
				if numbersSeen == 2 || numbersSeen == 4 {
					pieceIndex++
				}
			}
			if numbersSeen != 4 {
				return fail("too few IPv4 parts")
			}
			break
		}

		if i < len(s) && s[i] == ':' {
			i++
			if i >= len(s) {
				return fail("unexpected trailing colon")
			}
		} else if i < len(s) {
			return fail("unexpected character")
		}
		addr[pieceIndex] = uint16(value)
		pieceIndex++
	}

	if compress != -1 {
		swaps := pieceIndex - compress
		pieceIndex = 7
		for pieceIndex != 0 && swaps > 0 {
			addr[pieceIndex], addr[compress+swaps-1] = addr[compress+swaps-1], addr[pieceIndex]
			pieceIndex--
			swaps--
		}
	} else if pieceIndex != 8 {
		return fail("too few pieces")
	}
	return addr, nil
}

func hexValue(c byte) int {
	switch {
	case c <= '9':
		return int(c - '0')
	case c >= 'a':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// String serializes the address in its shortest form: lowercase hex pieces
// with the first longest run of two or more zero pieces compressed to "::".
func (addr IPv6) String() string {
	start, length := -1, 0
	for i := 0; i < 8; {
		if addr[i] != 0 {
			i++
			continue
		}
		j := i
		for j < 8 && addr[j] == 0 {
			j++
		}
		if j-i > length && j-i >= 2 {
			start, length = i, j-i
		}
		i = j
	}

	b := make([]byte, 0, 39)
	for i := 0; i < 8; i++ {
		if i == start {
			if i == 0 {
				b = append(b, ':')
			}
			b = append(b, ':')
			i += length - 1
			continue
		}
		b = strconv.AppendUint(b, uint64(addr[i]), 16)
		if i < 7 {
			b = append(b, ':')
		}
	}
	return string(b)
}
