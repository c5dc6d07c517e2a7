package url

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gourl/internal/ioutil"
	"github.com/ghettovoice/gourl/internal/percent"
	"github.com/ghettovoice/gourl/internal/util"
)

// URL is a parsed URL record. Components are stored in their serialized,
// percent-encoded form.
//
// The zero value is not a valid URL. Use [Parse] or [Parser.Parse] to build one.
type URL struct {
	scheme     string
	schemeType SchemeType

	username string
	password string

	host     string
	hostType HostType // HostNone when the host is null

	port    uint16
	hasPort bool

	path   string
	opaque bool

	query    string
	hasQuery bool

	fragment    string
	hasFragment bool

	mapper DomainMapper
}

// Href returns the serialization of the URL.
func (u *URL) Href() string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, nil) //nolint:errcheck
	return sb.String()
}

// RenderOptions controls URL serialization.
type RenderOptions struct {
	// ExcludeFragment omits the fragment.
	ExcludeFragment bool
}

func (o *RenderOptions) excludeFragment() bool { return o != nil && o.ExcludeFragment }

// RenderTo writes the serialized URL to w.
func (u *URL) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(u.scheme, ":")
	if u.HasHostname() {
		cw.WriteString("//")
		if u.HasCredentials() {
			cw.WriteString(u.username)
			if u.password != "" {
				cw.WriteString(":", u.password)
			}
			cw.WriteString("@")
		}
		cw.WriteString(u.host)
		if u.hasPort {
			cw.WriteString(":").WriteUint(uint64(u.port))
		}
	} else if u.hasDotSlashMarker() {
		cw.WriteString("/.")
	}
	cw.WriteString(u.path)
	if u.hasQuery {
		cw.WriteString("?", u.query)
	}
	if u.hasFragment && !opts.excludeFragment() {
		cw.WriteString("#", u.fragment)
	}
	return errtrace.Wrap2(cw.Result())
}

// hasDotSlashMarker reports whether the serialization needs "/." before the
// path so that a path starting with "//" is not read back as an authority.
func (u *URL) hasDotSlashMarker() bool {
	return !u.HasHostname() && !u.opaque && strings.HasPrefix(u.path, "//")
}

// Render returns the serialized URL.
func (u *URL) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the serialized URL.
func (u *URL) String() string {
	if u == nil {
		return ""
	}
	return u.Render(nil)
}

// Format implements [fmt.Formatter].
func (u *URL) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		if f.Flag('+') && verb == 'v' {
			fmt.Fprintf(f, "%s (%s)", u.String(), u.Components())
			return
		}
		type hideMethods URL
		type URL hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URL)(u))
		return
	}
}

// Clone returns a copy of the URL.
func (u *URL) Clone() *URL {
	if u == nil {
		return nil
	}
	u2 := *u
	return &u2
}

// Equal reports whether val is a URL with the same serialization.
func (u *URL) Equal(val any) bool {
	var other *URL
	switch v := val.(type) {
	case URL:
		other = &v
	case *URL:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	return u.Href() == other.Href()
}

// EqualExcludeFragment reports whether u and other are equal ignoring their fragments.
func (u *URL) EqualExcludeFragment(other *URL) bool {
	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	opts := &RenderOptions{ExcludeFragment: true}
	return u.Render(opts) == other.Render(opts)
}

// IsValid reports whether the URL was produced by a successful parse.
func (u *URL) IsValid() bool {
	return u != nil && u.scheme != ""
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.Href()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URL) UnmarshalText(text []byte) error {
	u1, err := Parse(text)
	if err != nil {
		*u = URL{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}

// Origin returns the ASCII serialization of the URL origin,
// "null" for opaque origins.
func (u *URL) Origin() string {
	if u == nil {
		return "null"
	}
	switch u.schemeType {
	case SchemeHTTP, SchemeHTTPS, SchemeWS, SchemeWSS, SchemeFTP:
		origin := u.scheme + "://" + u.host
		if u.hasPort {
			origin += ":" + strconv.FormatUint(uint64(u.port), 10)
		}
		return origin
	case SchemeNotSpecial:
		if u.scheme == "blob" {
			inner, err := (&Parser{Mapper: u.mapper}).Parse(u.path, nil)
			if err == nil && (inner.schemeType == SchemeHTTP || inner.schemeType == SchemeHTTPS) {
				return inner.Origin()
			}
		}
	}
	return "null"
}

// Protocol returns the scheme followed by ':'.
func (u *URL) Protocol() string {
	if u == nil {
		return ""
	}
	return u.scheme + ":"
}

// Scheme returns the scheme without ':'.
func (u *URL) Scheme() string {
	if u == nil {
		return ""
	}
	return u.scheme
}

func (u *URL) Username() string {
	if u == nil {
		return ""
	}
	return u.username
}

func (u *URL) Password() string {
	if u == nil {
		return ""
	}
	return u.password
}

// Host returns the host and the port when one is set.
func (u *URL) Host() string {
	if u == nil || !u.HasHostname() {
		return ""
	}
	if u.hasPort {
		return u.host + ":" + strconv.FormatUint(uint64(u.port), 10)
	}
	return u.host
}

// Hostname returns the serialized host, IPv6 addresses in brackets.
func (u *URL) Hostname() string {
	if u == nil {
		return ""
	}
	return u.host
}

// Port returns the port or the empty string when it is null.
func (u *URL) Port() string {
	if u == nil || !u.hasPort {
		return ""
	}
	return strconv.FormatUint(uint64(u.port), 10)
}

// Pathname returns the path, or the opaque path as is.
func (u *URL) Pathname() string {
	if u == nil {
		return ""
	}
	return u.path
}

// Search returns "?" and the query, or the empty string when the query is null or empty.
func (u *URL) Search() string {
	if u == nil || u.query == "" {
		return ""
	}
	return "?" + u.query
}

// Hash returns "#" and the fragment, or the empty string when the fragment is null or empty.
func (u *URL) Hash() string {
	if u == nil || u.fragment == "" {
		return ""
	}
	return "#" + u.fragment
}

// Type returns the scheme type.
func (u *URL) Type() SchemeType {
	if u == nil {
		return SchemeNotSpecial
	}
	return u.schemeType
}

// HostType returns how the host was parsed, [HostNone] when it is null.
func (u *URL) HostType() HostType {
	if u == nil {
		return HostNone
	}
	return u.hostType
}

func (u *URL) IsSpecial() bool { return u != nil && u.schemeType.IsSpecial() }

// DefaultPort returns the default port of the scheme, 0 if it has none.
func (u *URL) DefaultPort() uint16 {
	if u == nil {
		return 0
	}
	return u.schemeType.DefaultPort()
}

func (u *URL) HasCredentials() bool {
	return u != nil && (u.username != "" || u.password != "")
}

func (u *URL) HasNonEmptyUsername() bool { return u != nil && u.username != "" }

func (u *URL) HasNonEmptyPassword() bool { return u != nil && u.password != "" }

// HasHostname reports whether the host is non-null.
func (u *URL) HasHostname() bool { return u != nil && u.hostType != HostNone }

// HasEmptyHostname reports whether the host is the empty string.
func (u *URL) HasEmptyHostname() bool { return u != nil && u.hostType == HostEmpty }

func (u *URL) HasPort() bool { return u != nil && u.hasPort }

// HasSearch reports whether the query is non-null, it may be empty.
func (u *URL) HasSearch() bool { return u != nil && u.hasQuery }

// HasHash reports whether the fragment is non-null, it may be empty.
func (u *URL) HasHash() bool { return u != nil && u.hasFragment }

// HasOpaquePath reports whether the path is an opaque string rather than a list of segments.
func (u *URL) HasOpaquePath() bool { return u != nil && u.opaque }

// Resolve parses ref relative to u.
func (u *URL) Resolve(ref string) (*URL, error) {
	return errtrace.Wrap2((&Parser{Mapper: u.domainMapper()}).Parse(ref, u))
}

func (u *URL) domainMapper() DomainMapper {
	if u == nil {
		return nil
	}
	return u.mapper
}

func (u *URL) cannotHaveCredentialsOrPort() bool {
	return u.hostType == HostNone || u.hostType == HostEmpty || u.schemeType == SchemeFile
}

func (u *URL) setScheme(scheme string) {
	u.scheme = scheme
	u.schemeType = SchemeTypeOf(scheme)
}

func (u *URL) setHost(input string, mapper DomainMapper) error {
	host, typ, err := parseHost(input, u.IsSpecial(), mapper)
	if err != nil {
		return errtrace.Wrap(err)
	}
	u.host, u.hostType = host, typ
	return nil
}

// setPort sets the port, a port equal to the scheme default becomes null.
func (u *URL) setPort(port uint16) {
	if def := u.schemeType.DefaultPort(); def != 0 && port == def {
		u.port, u.hasPort = 0, false
		return
	}
	u.port, u.hasPort = port, true
}

func (u *URL) copyAuthority(from *URL) {
	u.username, u.password = from.username, from.password
	u.host, u.hostType = from.host, from.hostType
	u.port, u.hasPort = from.port, from.hasPort
}

func (u *URL) querySet() *percent.Set {
	if u.IsSpecial() {
		return percent.SpecialQuery
	}
	return percent.Query
}

func (u *URL) mapperOrDefault() DomainMapper {
	return (&Parser{Mapper: u.mapper}).mapper()
}

// parsePortNumber parses a run of ASCII digits, leading zeros allowed.
func parsePortNumber(digits string) (uint16, bool) {
	var v uint32
	for i := 0; i < len(digits); i++ {
		v = v*10 + uint32(digits[i]-'0')
		if v > 0xFFFF {
			return 0, false
		}
	}
	return uint16(v), true
}
