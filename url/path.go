package url

import (
	"bytes"
	"strings"

	"github.com/ghettovoice/gourl/internal/chars"
	"github.com/ghettovoice/gourl/internal/percent"
)

// appendPath parses rest as path segments and appends them to the path.
// Parsing stops at '?' and '#' unless setter is true, in which case they are
// encoded as segment data. It returns the number of consumed bytes.
func (u *URL) appendPath(rest string, setter bool) int {
	var (
		special = u.IsSpecial()
		file    = u.schemeType == SchemeFile
		path    = append(make([]byte, 0, len(u.path)+len(rest)+1), u.path...)
		i       int
	)
	for {
		end := i
		for end < len(rest) {
			c := rest[end]
			if c == '/' || (special && c == '\\') || (!setter && (c == '?' || c == '#')) {
				break
			}
			end++
		}
		seg := rest[i:end]
		atSep := end < len(rest) && (rest[end] == '/' || (special && rest[end] == '\\'))

		switch {
		case chars.IsDoubleDotSegment(seg):
			path = shortenPath(path, file)
			if !atSep {
				path = append(path, '/')
			}
		case chars.IsSingleDotSegment(seg):
			if !atSep {
				path = append(path, '/')
			}
		default:
			if file && len(path) == 0 && chars.IsWindowsDriveLetter(seg) {
				seg = seg[:1] + ":"
			}
			path = append(path, '/')
			path = percent.AppendEncode(path, seg, percent.Path)
		}

		if !atSep {
			u.path = string(path)
			return end
		}
		i = end + 1
	}
}

// shortenPath drops the last path segment. A file path that is a single
// normalized Windows drive letter is kept as is.
func shortenPath(path []byte, file bool) []byte {
	if file && len(path) == 3 && chars.IsNormalizedWindowsDriveLetter(string(path[1:])) {
		return path
	}
	if i := bytes.LastIndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}

func firstPathSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}

// stripTrailingSpaces removes trailing spaces from an opaque path once nothing
// follows it in the serialization.
func (u *URL) stripTrailingSpaces() {
	if !u.opaque || u.hasQuery || u.hasFragment {
		return
	}
	u.path = strings.TrimRight(u.path, " ")
}
