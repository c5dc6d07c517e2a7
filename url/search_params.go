package url

import (
	"iter"
	"slices"
	"strings"
	"unicode/utf16"

	"github.com/ghettovoice/gourl/internal/percent"
	"github.com/ghettovoice/gourl/internal/util"
)

// SearchParams is an ordered list of name-value pairs parsed from or
// serialized to application/x-www-form-urlencoded text.
// Names may repeat, the order of pairs is preserved.
//
// The zero value is an empty list ready to use.
type SearchParams struct {
	pairs [][2]string
}

// NewSearchParams creates search params holding the given pairs in order.
func NewSearchParams(pairs ...[2]string) *SearchParams {
	return &SearchParams{pairs: slices.Clone(pairs)}
}

// ParseSearchParams parses a query string. A leading '?' is ignored.
func ParseSearchParams(s string) *SearchParams {
	sp := &SearchParams{}
	sp.Reset(s)
	return sp
}

// Reset replaces all pairs with the ones parsed from s.
func (sp *SearchParams) Reset(s string) {
	sp.pairs = sp.pairs[:0]
	s = strings.TrimPrefix(s, "?")
	for piece := range strings.SplitSeq(s, "&") {
		if piece == "" {
			continue
		}
		name, value, _ := strings.Cut(piece, "=")
		sp.pairs = append(sp.pairs, [2]string{percent.DecodeForm(name), percent.DecodeForm(value)})
	}
}

// Len returns the number of pairs.
func (sp *SearchParams) Len() int {
	if sp == nil {
		return 0
	}
	return len(sp.pairs)
}

// Append adds a pair to the end of the list.
func (sp *SearchParams) Append(name, value string) {
	sp.pairs = append(sp.pairs, [2]string{name, value})
}

// Set replaces the value of the first pair named name and removes the other
// pairs with that name. The pair is appended when there is none.
func (sp *SearchParams) Set(name, value string) {
	i := slices.IndexFunc(sp.pairs, func(p [2]string) bool { return p[0] == name })
	if i < 0 {
		sp.Append(name, value)
		return
	}
	sp.pairs[i][1] = value
	rest := sp.pairs[:i+1]
	for _, p := range sp.pairs[i+1:] {
		if p[0] != name {
			rest = append(rest, p)
		}
	}
	sp.pairs = rest
}

// Get returns the value of the first pair named name.
func (sp *SearchParams) Get(name string) (string, bool) {
	if sp == nil {
		return "", false
	}
	for _, p := range sp.pairs {
		if p[0] == name {
			return p[1], true
		}
	}
	return "", false
}

// GetAll returns the values of all pairs named name in order.
func (sp *SearchParams) GetAll(name string) []string {
	if sp == nil {
		return nil
	}
	var vals []string
	for _, p := range sp.pairs {
		if p[0] == name {
			vals = append(vals, p[1])
		}
	}
	return vals
}

// Has reports whether a pair named name exists.
func (sp *SearchParams) Has(name string) bool {
	_, ok := sp.Get(name)
	return ok
}

// HasValue reports whether the pair name=value exists.
func (sp *SearchParams) HasValue(name, value string) bool {
	return sp != nil && slices.Contains(sp.pairs, [2]string{name, value})
}

// Delete removes all pairs named name.
func (sp *SearchParams) Delete(name string) {
	sp.pairs = slices.DeleteFunc(sp.pairs, func(p [2]string) bool { return p[0] == name })
}

// DeleteValue removes all pairs name=value.
func (sp *SearchParams) DeleteValue(name, value string) {
	sp.pairs = slices.DeleteFunc(sp.pairs, func(p [2]string) bool { return p[0] == name && p[1] == value })
}

// Sort sorts pairs by name comparing UTF-16 code units. Pairs with equal
// names keep their relative order.
func (sp *SearchParams) Sort() {
	slices.SortStableFunc(sp.pairs, func(a, b [2]string) int { return compareUTF16(a[0], b[0]) })
}

func compareUTF16(a, b string) int {
	if a == b {
		return 0
	}
	ua, ub := utf16.Encode([]rune(a)), utf16.Encode([]rune(b))
	return slices.Compare(ua, ub)
}

// Keys iterates over pair names in order, repeated names included.
func (sp *SearchParams) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		if sp == nil {
			return
		}
		for _, p := range sp.pairs {
			if !yield(p[0]) {
				return
			}
		}
	}
}

// Values iterates over pair values in order.
func (sp *SearchParams) Values() iter.Seq[string] {
	return func(yield func(string) bool) {
		if sp == nil {
			return
		}
		for _, p := range sp.pairs {
			if !yield(p[1]) {
				return
			}
		}
	}
}

// All iterates over name-value pairs in order.
func (sp *SearchParams) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if sp == nil {
			return
		}
		for _, p := range sp.pairs {
			if !yield(p[0], p[1]) {
				return
			}
		}
	}
}

// String returns the application/x-www-form-urlencoded serialization.
func (sp *SearchParams) String() string {
	if sp.Len() == 0 {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i, p := range sp.pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(percent.EncodeForm(p[0]))
		sb.WriteByte('=')
		sb.WriteString(percent.EncodeForm(p[1]))
	}
	return sb.String()
}

// Clone returns a copy of the search params.
func (sp *SearchParams) Clone() *SearchParams {
	if sp == nil {
		return nil
	}
	return &SearchParams{pairs: slices.Clone(sp.pairs)}
}

// Equal reports whether val holds the same pairs in the same order.
func (sp *SearchParams) Equal(val any) bool {
	var other *SearchParams
	switch v := val.(type) {
	case SearchParams:
		other = &v
	case *SearchParams:
		other = v
	default:
		return false
	}

	if sp == other {
		return true
	} else if sp == nil || other == nil {
		return false
	}
	return slices.Equal(sp.pairs, other.pairs)
}

// MarshalText implements [encoding.TextMarshaler].
func (sp *SearchParams) MarshalText() ([]byte, error) {
	return []byte(sp.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (sp *SearchParams) UnmarshalText(text []byte) error {
	sp.Reset(string(text))
	return nil
}
