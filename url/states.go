package url

import (
	"context"
	"strings"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/gourl/internal/chars"
	"github.com/ghettovoice/gourl/internal/percent"
	"github.com/ghettovoice/gourl/internal/util"
)

type state uint8

const (
	stateSchemeStart state = iota
	stateScheme
	stateNoScheme
	stateSpecialRelativeOrAuthority
	statePathOrAuthority
	stateRelativeScheme
	stateRelativeSlash
	stateSpecialAuthoritySlashes
	stateSpecialAuthorityIgnoreSlashes
	stateAuthority
	stateHost
	statePort
	stateFile
	stateFileSlash
	stateFileHost
	statePathStart
	statePath
	stateOpaquePath
	stateQuery
)

var stateNames = [...]string{
	stateSchemeStart:                   "scheme start",
	stateScheme:                        "scheme",
	stateNoScheme:                      "no scheme",
	stateSpecialRelativeOrAuthority:    "special relative or authority",
	statePathOrAuthority:               "path or authority",
	stateRelativeScheme:                "relative",
	stateRelativeSlash:                 "relative slash",
	stateSpecialAuthoritySlashes:       "special authority slashes",
	stateSpecialAuthorityIgnoreSlashes: "special authority ignore slashes",
	stateAuthority:                     "authority",
	stateHost:                          "host",
	statePort:                          "port",
	stateFile:                          "file",
	stateFileSlash:                     "file slash",
	stateFileHost:                      "file host",
	statePathStart:                     "path start",
	statePath:                          "path",
	stateOpaquePath:                    "opaque path",
	stateQuery:                         "query",
}

func (s state) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// transitions holds every legal move of the parser. Triggers are the
// destination states. The current state lives in the urlParser carried by the
// context, so a single machine serves all parses.
var transitions = newTransitions()

func newTransitions() *stateless.StateMachine {
	sm := stateless.NewStateMachineWithExternalStorage(
		func(ctx context.Context) (stateless.State, error) {
			return parserFromContext(ctx).state, nil
		},
		func(ctx context.Context, s stateless.State) error {
			parserFromContext(ctx).state = s.(state) //nolint:forcetypeassert
			return nil
		},
		stateless.FiringImmediate,
	)

	permit := func(from state, to ...state) {
		cfg := sm.Configure(from)
		for _, s := range to {
			cfg.Permit(s, s)
		}
	}
	permit(stateSchemeStart, stateScheme, stateNoScheme)
	permit(stateScheme,
		stateFile,
		stateSpecialRelativeOrAuthority,
		stateSpecialAuthoritySlashes,
		statePathOrAuthority,
		stateOpaquePath,
		stateNoScheme,
	)
	permit(stateNoScheme, stateRelativeScheme, stateFile)
	permit(stateSpecialRelativeOrAuthority, stateSpecialAuthorityIgnoreSlashes, stateRelativeScheme)
	permit(statePathOrAuthority, stateAuthority, statePath)
	permit(stateRelativeScheme, stateRelativeSlash, stateQuery, statePath)
	permit(stateRelativeSlash, stateSpecialAuthorityIgnoreSlashes, stateAuthority, statePath)
	permit(stateSpecialAuthoritySlashes, stateSpecialAuthorityIgnoreSlashes)
	permit(stateSpecialAuthorityIgnoreSlashes, stateAuthority)
	permit(stateAuthority, stateHost)
	permit(stateHost, statePort, statePathStart)
	permit(statePort, statePathStart)
	permit(stateFile, stateFileSlash, stateQuery, statePath)
	permit(stateFileSlash, stateFileHost, statePath)
	permit(stateFileHost, statePath, statePathStart)
	permit(statePathStart, statePath, stateQuery)
	permit(statePath, stateQuery)
	permit(stateOpaquePath, stateQuery)
	sm.Configure(stateQuery)
	return sm
}

func (p *urlParser) parseSchemeStart() (bool, error) {
	if c, ok := p.peek(); ok && chars.IsASCIIAlpha(c) {
		return p.next(stateScheme)
	}
	return p.next(stateNoScheme)
}

func (p *urlParser) parseScheme() (bool, error) {
	end := p.pos
	for end < len(p.input) && chars.IsSchemeChar(p.input[end]) {
		end++
	}
	if end == len(p.input) || p.input[end] != ':' {
		p.pos = 0
		return p.next(stateNoScheme)
	}

	u := p.url
	u.setScheme(util.LCase(p.input[p.pos:end]))
	p.pos = end + 1
	switch {
	case u.schemeType == SchemeFile:
		if !strings.HasPrefix(p.rest(), "//") {
			p.validationError("special scheme missing following solidus")
		}
		return p.next(stateFile)
	case u.IsSpecial() && p.base != nil && p.base.scheme == u.scheme:
		return p.next(stateSpecialRelativeOrAuthority)
	case u.IsSpecial():
		return p.next(stateSpecialAuthoritySlashes)
	case strings.HasPrefix(p.rest(), "/"):
		p.pos++
		return p.next(statePathOrAuthority)
	default:
		u.opaque = true
		return p.next(stateOpaquePath)
	}
}

func (p *urlParser) parseNoScheme() (bool, error) {
	base := p.base
	if base == nil {
		return p.fail(ErrMissingScheme, "%q", util.Ellipsis(p.input, 64))
	}
	if base.opaque {
		if p.rest() != "" || !p.hasFragment {
			return p.fail(ErrMissingScheme, "relative reference %q to a base with opaque path", util.Ellipsis(p.input, 64))
		}
		u := p.url
		u.setScheme(base.scheme)
		u.path, u.opaque = base.path, true
		u.query, u.hasQuery = base.query, base.hasQuery
		return true, nil
	}
	if base.schemeType != SchemeFile {
		return p.next(stateRelativeScheme)
	}
	return p.next(stateFile)
}

func (p *urlParser) parseSpecialRelativeOrAuthority() (bool, error) {
	if strings.HasPrefix(p.rest(), "//") {
		p.pos += 2
		return p.next(stateSpecialAuthorityIgnoreSlashes)
	}
	p.validationError("special scheme missing following solidus")
	return p.next(stateRelativeScheme)
}

func (p *urlParser) parsePathOrAuthority() (bool, error) {
	if c, ok := p.peek(); ok && c == '/' {
		p.pos++
		return p.next(stateAuthority)
	}
	return p.next(statePath)
}

func (p *urlParser) parseRelativeScheme() (bool, error) {
	u, base := p.url, p.base
	u.setScheme(base.scheme)

	c, ok := p.peek()
	if ok && (c == '/' || (c == '\\' && u.IsSpecial())) {
		if c == '\\' {
			p.validationError("invalid reverse solidus")
		}
		p.pos++
		return p.next(stateRelativeSlash)
	}

	u.copyAuthority(base)
	u.path = base.path
	u.query, u.hasQuery = base.query, base.hasQuery
	if !ok {
		return true, nil
	}
	if c == '?' {
		u.query, u.hasQuery = "", true
		p.pos++
		return p.next(stateQuery)
	}
	u.query, u.hasQuery = "", false
	u.path = string(shortenPath([]byte(u.path), false))
	return p.next(statePath)
}

func (p *urlParser) parseRelativeSlash() (bool, error) {
	u := p.url
	c, ok := p.peek()
	if ok && u.IsSpecial() && (c == '/' || c == '\\') {
		if c == '\\' {
			p.validationError("invalid reverse solidus")
		}
		p.pos++
		return p.next(stateSpecialAuthorityIgnoreSlashes)
	}
	if ok && c == '/' {
		p.pos++
		return p.next(stateAuthority)
	}
	u.copyAuthority(p.base)
	return p.next(statePath)
}

func (p *urlParser) parseSpecialAuthoritySlashes() (bool, error) {
	if strings.HasPrefix(p.rest(), "//") {
		p.pos += 2
	} else {
		p.validationError("special scheme missing following solidus")
	}
	return p.next(stateSpecialAuthorityIgnoreSlashes)
}

func (p *urlParser) parseSpecialAuthorityIgnoreSlashes() (bool, error) {
	for c, ok := p.peek(); ok && (c == '/' || c == '\\'); c, ok = p.peek() {
		p.validationError("special scheme missing following solidus")
		p.pos++
	}
	return p.next(stateAuthority)
}

func (p *urlParser) parseAuthority() (bool, error) {
	u := p.url
	rest := p.rest()
	end := len(rest)
	for i := 0; i < len(rest); i++ {
		if c := rest[i]; c == '/' || c == '?' || c == '#' || (c == '\\' && u.IsSpecial()) {
			end = i
			break
		}
	}

	authority := rest[:end]
	if at := strings.LastIndexByte(authority, '@'); at >= 0 {
		p.validationError("invalid credentials")
		if at+1 == end {
			return p.fail(ErrInvalidHost, "missing host after credentials")
		}
		user, pass, hasPass := strings.Cut(authority[:at], ":")
		u.username = percent.Encode(user, percent.Userinfo)
		if hasPass {
			u.password = percent.Encode(pass, percent.Userinfo)
		}
		p.pos += at + 1
	}
	return p.next(stateHost)
}

func (p *urlParser) parseHost() (bool, error) {
	u := p.url
	rest := p.rest()
	special := u.IsSpecial()
	end := hostEnd(rest, special)
	buf := rest[:end]

	if end < len(rest) && rest[end] == ':' {
		if buf == "" {
			return p.fail(ErrInvalidHost, "missing host before port")
		}
		if err := u.setHost(buf, p.mapper); err != nil {
			return true, errtrace.Wrap(err)
		}
		p.pos += end + 1
		return p.next(statePort)
	}
	if buf == "" && special {
		return p.fail(ErrInvalidHost, "missing host")
	}
	if err := u.setHost(buf, p.mapper); err != nil {
		return true, errtrace.Wrap(err)
	}
	p.pos += end
	return p.next(statePathStart)
}

func (p *urlParser) parsePort() (bool, error) {
	u := p.url
	rest := p.rest()
	end := 0
	for end < len(rest) && chars.IsASCIIDigit(rest[end]) {
		end++
	}
	if end < len(rest) {
		if c := rest[end]; c != '/' && c != '?' && c != '#' && (c != '\\' || !u.IsSpecial()) {
			return p.fail(ErrInvalidPort, "unexpected %q in port", c)
		}
	}
	if end > 0 {
		port, ok := parsePortNumber(rest[:end])
		if !ok {
			return p.fail(ErrInvalidPort, "port %s out of range", util.Ellipsis(rest[:end], 16))
		}
		u.setPort(port)
	}
	p.pos += end
	return p.next(statePathStart)
}

func (p *urlParser) parseFile() (bool, error) {
	u, base := p.url, p.base
	u.setScheme("file")
	u.host, u.hostType = "", HostEmpty

	c, ok := p.peek()
	if ok && (c == '/' || c == '\\') {
		if c == '\\' {
			p.validationError("invalid reverse solidus")
		}
		p.pos++
		return p.next(stateFileSlash)
	}
	if base == nil || base.schemeType != SchemeFile {
		return p.next(statePath)
	}

	u.host, u.hostType = base.host, base.hostType
	u.path = base.path
	u.query, u.hasQuery = base.query, base.hasQuery
	if !ok {
		return true, nil
	}
	if c == '?' {
		u.query, u.hasQuery = "", true
		p.pos++
		return p.next(stateQuery)
	}
	u.query, u.hasQuery = "", false
	if chars.StartsWithWindowsDriveLetter(p.rest()) {
		p.validationError("file invalid Windows drive letter")
		u.path = ""
	} else {
		u.path = string(shortenPath([]byte(u.path), true))
	}
	return p.next(statePath)
}

func (p *urlParser) parseFileSlash() (bool, error) {
	u, base := p.url, p.base
	c, ok := p.peek()
	if ok && (c == '/' || c == '\\') {
		if c == '\\' {
			p.validationError("invalid reverse solidus")
		}
		p.pos++
		return p.next(stateFileHost)
	}
	if base != nil && base.schemeType == SchemeFile {
		u.host, u.hostType = base.host, base.hostType
		if !chars.StartsWithWindowsDriveLetter(p.rest()) {
			if seg := firstPathSegment(base.path); chars.IsNormalizedWindowsDriveLetter(seg) {
				u.path = "/" + seg
			}
		}
	}
	return p.next(statePath)
}

func (p *urlParser) parseFileHost() (bool, error) {
	u := p.url
	rest := p.rest()
	end := strings.IndexAny(rest, "/\\?#")
	if end < 0 {
		end = len(rest)
	}
	buf := rest[:end]

	if chars.IsWindowsDriveLetter(buf) {
		p.validationError("file invalid Windows drive letter host")
		return p.next(statePath)
	}
	host, typ, err := parseFileHost(buf, p.mapper)
	if err != nil {
		return true, errtrace.Wrap(err)
	}
	u.host, u.hostType = host, typ
	p.pos += end
	return p.next(statePathStart)
}

func (p *urlParser) parsePathStart() (bool, error) {
	u := p.url
	c, ok := p.peek()
	switch {
	case u.IsSpecial():
		if ok && (c == '/' || c == '\\') {
			if c == '\\' {
				p.validationError("invalid reverse solidus")
			}
			p.pos++
		}
		return p.next(statePath)
	case ok && c == '?':
		u.query, u.hasQuery = "", true
		p.pos++
		return p.next(stateQuery)
	case ok:
		if c == '/' {
			p.pos++
		}
		return p.next(statePath)
	default:
		return true, nil
	}
}

func (p *urlParser) parsePath() (bool, error) {
	u := p.url
	p.pos += u.appendPath(p.rest(), false)
	if c, ok := p.peek(); ok && c == '?' {
		u.query, u.hasQuery = "", true
		p.pos++
		return p.next(stateQuery)
	}
	return true, nil
}

func (p *urlParser) parseOpaquePath() (bool, error) {
	u := p.url
	rest := p.rest()
	end := strings.IndexByte(rest, '?')
	if end < 0 {
		end = len(rest)
	}
	u.path = percent.Encode(rest[:end], percent.C0Control)
	u.opaque = true
	p.pos += end
	if end < len(rest) {
		u.query, u.hasQuery = "", true
		p.pos++
		return p.next(stateQuery)
	}
	return true, nil
}

func (p *urlParser) parseQuery() (bool, error) {
	u := p.url
	u.query = percent.Encode(p.rest(), u.querySet())
	u.hasQuery = true
	p.pos = len(p.input)
	return true, nil
}
