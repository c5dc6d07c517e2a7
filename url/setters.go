package url

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gourl/internal/chars"
	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/internal/grammar"
	"github.com/ghettovoice/gourl/internal/percent"
	"github.com/ghettovoice/gourl/internal/util"
)

// Setters follow the URL Standard API: except for the credentials, the input
// is cleaned from ASCII tab and newline, then parsed with the rules of the
// component state. On error
// the URL is left unchanged unless documented otherwise.

// SetHref replaces the whole URL with the result of parsing s.
func (u *URL) SetHref(s string) error {
	u2, err := (&Parser{Mapper: u.mapper}).Parse(s, nil)
	if err != nil {
		return errtrace.Wrap(err)
	}
	*u = *u2
	return nil
}

// SetProtocol changes the scheme. The text up to the first ':' is used.
// The change is silently skipped when it would turn a special URL into a
// non-special one or back, when a URL with credentials or a port would become
// a file URL, or when a file URL with an empty host would leave the file scheme.
func (u *URL) SetProtocol(s string) error {
	s = chars.RemoveTabOrNewline(s)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	if !grammar.IsScheme(s) {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidScheme, "%q", s))
	}

	scheme := util.LCase(s)
	typ := SchemeTypeOf(scheme)
	switch {
	case typ.IsSpecial() != u.IsSpecial():
		return nil
	case typ == SchemeFile && (u.HasCredentials() || u.hasPort):
		return nil
	case u.schemeType == SchemeFile && u.hostType == HostEmpty:
		return nil
	}
	u.setScheme(scheme)
	if u.hasPort {
		u.setPort(u.port)
	}
	return nil
}

// SetUsername changes the username.
func (u *URL) SetUsername(s string) error {
	if u.cannotHaveCredentialsOrPort() {
		return errtrace.Wrap(ErrCannotHaveCredentials)
	}
	u.username = percent.Encode(s, percent.Userinfo)
	return nil
}

// SetPassword changes the password.
func (u *URL) SetPassword(s string) error {
	if u.cannotHaveCredentialsOrPort() {
		return errtrace.Wrap(ErrCannotHaveCredentials)
	}
	u.password = percent.Encode(s, percent.Userinfo)
	return nil
}

// SetHost changes the host and, when s has a ':' after the host, the port.
// An invalid port after a valid host leaves the port unchanged.
func (u *URL) SetHost(s string) error {
	return errtrace.Wrap(u.setHostFromInput(s, true))
}

// SetHostname changes the host. Input with a port is rejected.
func (u *URL) SetHostname(s string) error {
	return errtrace.Wrap(u.setHostFromInput(s, false))
}

func (u *URL) setHostFromInput(s string, withPort bool) error {
	if u.opaque {
		return errtrace.Wrap(ErrOpaquePath)
	}
	s = chars.RemoveTabOrNewline(s)
	mapper := u.mapperOrDefault()

	if u.schemeType == SchemeFile {
		end := strings.IndexAny(s, "/\\?#")
		if end < 0 {
			end = len(s)
		}
		host, typ, err := parseFileHost(s[:end], mapper)
		if err != nil {
			return errtrace.Wrap(err)
		}
		u.host, u.hostType = host, typ
		return nil
	}

	special := u.IsSpecial()
	end := hostEnd(s, special)
	buf := s[:end]
	hasPort := end < len(s) && s[end] == ':'
	if hasPort && !withPort {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHost, "unexpected port in %q", s))
	}
	if buf == "" {
		if special || hasPort {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHost, "missing host"))
		}
		if u.HasCredentials() || u.hasPort {
			return errtrace.Wrap(ErrCannotHaveCredentials)
		}
	}

	host, typ, err := parseHost(buf, special, mapper)
	if err != nil {
		return errtrace.Wrap(err)
	}
	u.host, u.hostType = host, typ
	if !hasPort {
		return nil
	}

	rest := s[end+1:]
	n := 0
	for n < len(rest) && chars.IsASCIIDigit(rest[n]) {
		n++
	}
	if n > 0 {
		if port, ok := parsePortNumber(rest[:n]); ok {
			u.setPort(port)
		}
	}
	return nil
}

// SetPort changes the port. Leading digits of s are used, the empty string
// clears the port.
func (u *URL) SetPort(s string) error {
	if u.cannotHaveCredentialsOrPort() {
		return errtrace.Wrap(ErrCannotHaveCredentials)
	}
	s = chars.RemoveTabOrNewline(s)
	if s == "" {
		u.port, u.hasPort = 0, false
		return nil
	}
	n := 0
	for n < len(s) && chars.IsASCIIDigit(s[n]) {
		n++
	}
	if n == 0 {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPort, "%q", s))
	}
	port, ok := parsePortNumber(s[:n])
	if !ok {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPort, "%s out of range", util.Ellipsis(s[:n], 16)))
	}
	u.setPort(port)
	return nil
}

// SetPathname replaces the path. '?' and '#' are encoded as path data.
func (u *URL) SetPathname(s string) error {
	if u.opaque {
		return errtrace.Wrap(ErrOpaquePath)
	}
	s = chars.RemoveTabOrNewline(s)
	u.path = ""
	switch {
	case u.IsSpecial():
		if s != "" && (s[0] == '/' || s[0] == '\\') {
			s = s[1:]
		}
	case s == "":
		if !u.HasHostname() {
			u.path = "/"
		}
		return nil
	case s[0] == '/':
		s = s[1:]
	}
	u.appendPath(s, true)
	return nil
}

// SetSearch replaces the query. A leading '?' is dropped and the empty string
// clears the query.
func (u *URL) SetSearch(s string) {
	if s == "" {
		u.query, u.hasQuery = "", false
		u.stripTrailingSpaces()
		return
	}
	s = chars.RemoveTabOrNewline(strings.TrimPrefix(s, "?"))
	u.query, u.hasQuery = percent.Encode(s, u.querySet()), true
}

// SetHash replaces the fragment. A leading '#' is dropped and the empty string
// clears the fragment.
func (u *URL) SetHash(s string) {
	if s == "" {
		u.fragment, u.hasFragment = "", false
		u.stripTrailingSpaces()
		return
	}
	s = chars.RemoveTabOrNewline(strings.TrimPrefix(s, "#"))
	u.fragment, u.hasFragment = percent.Encode(s, percent.Fragment), true
}

// SearchParams returns the query parsed as form data. The result is detached
// from u, use [URL.SetSearchParams] to write changes back.
func (u *URL) SearchParams() *SearchParams {
	if u == nil {
		return NewSearchParams()
	}
	return ParseSearchParams(u.query)
}

// SetSearchParams replaces the query with the serialization of sp.
// An empty serialization clears the query.
func (u *URL) SetSearchParams(sp *SearchParams) {
	q := sp.String()
	if q == "" {
		u.query, u.hasQuery = "", false
		u.stripTrailingSpaces()
		return
	}
	u.query, u.hasQuery = q, true
}
