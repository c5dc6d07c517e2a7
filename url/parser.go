package url

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gourl/idna"
	"github.com/ghettovoice/gourl/internal/chars"
	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/internal/log"
	"github.com/ghettovoice/gourl/internal/percent"
	"github.com/ghettovoice/gourl/internal/util"
)

// Parser parses URLs. The zero value is ready to use.
// A Parser holds no parse state and may be used concurrently.
type Parser struct {
	// Logger receives parser traces and validation errors at debug level.
	// If nil, nothing is logged.
	Logger *slog.Logger
	// Mapper converts domains to ASCII.
	// If nil, [idna.Default] is used.
	Mapper DomainMapper
}

func (p *Parser) log() *slog.Logger {
	if p == nil || p.Logger == nil {
		return log.Noop
	}
	return p.Logger
}

func (p *Parser) mapper() DomainMapper {
	if p == nil || p.Mapper == nil {
		return idna.Default
	}
	return p.Mapper
}

var defParser = &Parser{}

// Parse parses an absolute URL from s (string or []byte).
func Parse[T ~string | ~[]byte](s T) (*URL, error) {
	return errtrace.Wrap2(defParser.Parse(string(s), nil))
}

// ParseRef parses s (string or []byte) as a URL reference relative to base.
// A nil base makes it equal to [Parse].
func ParseRef[T ~string | ~[]byte](s T, base *URL) (*URL, error) {
	return errtrace.Wrap2(defParser.Parse(string(s), base))
}

// CanParse reports whether s (string or []byte) parses, relative to base when it is not nil.
func CanParse[T ~string | ~[]byte](s T, base *URL) bool {
	_, err := defParser.Parse(string(s), base)
	return err == nil
}

// Parse parses input as a URL, relative to base when it is not nil.
func (p *Parser) Parse(input string, base *URL) (*URL, error) {
	logger := p.log()
	if base != nil && !base.IsValid() {
		return nil, errtrace.Wrap(ErrInvalidBase)
	}
	if uint64(len(input)) > math.MaxUint32 {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrTooLong, "%d bytes", len(input)))
	}

	up := &urlParser{
		log:    logger,
		mapper: p.mapper(),
		base:   base,
		url:    &URL{},
		state:  stateSchemeStart,
	}
	if p != nil {
		up.url.mapper = p.Mapper
	}
	up.ctx = context.WithValue(context.Background(), urlParserKey{}, up)

	if !utf8.ValidString(input) {
		up.validationError("invalid UTF-8")
		input = percent.ToValidUTF8(input)
	}
	if s := chars.TrimC0ControlOrSpace(input); len(s) != len(input) {
		up.validationError("leading or trailing C0 control or space")
		input = s
	}
	if chars.HasTabOrNewline(input) {
		up.validationError("ASCII tab or newline")
		input = chars.RemoveTabOrNewline(input)
	}
	if input == "" && base == nil {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}
	if i := strings.IndexByte(input, '#'); i >= 0 {
		up.fragment, up.hasFragment = input[i+1:], true
		input = input[:i]
	}
	up.input = input

	if err := up.run(); err != nil {
		logger.LogAttrs(up.ctx, slog.LevelDebug, "URL parse failed",
			slog.String("input", util.Ellipsis(input, 256)),
			slog.Any("error", err),
		)
		return nil, errtrace.Wrap(err)
	}
	if up.hasFragment {
		up.url.fragment = percent.Encode(up.fragment, percent.Fragment)
		up.url.hasFragment = true
	}
	return up.url, nil
}

type urlParserKey struct{}

// urlParser is the state of a single parse.
type urlParser struct {
	ctx    context.Context
	log    *slog.Logger
	mapper DomainMapper

	input string
	pos   int
	state state

	fragment    string
	hasFragment bool

	base *URL
	url  *URL
}

func parserFromContext(ctx context.Context) *urlParser {
	return ctx.Value(urlParserKey{}).(*urlParser) //nolint:forcetypeassert
}

func (p *urlParser) run() error {
	for {
		p.log.LogAttrs(p.ctx, slog.LevelDebug, "URL parser state",
			slog.String("state", p.state.String()),
			slog.Int("pos", p.pos),
			slog.String("rest", p.input[p.pos:]),
		)

		var (
			done bool
			err  error
		)
		switch p.state {
		case stateSchemeStart:
			done, err = p.parseSchemeStart()
		case stateScheme:
			done, err = p.parseScheme()
		case stateNoScheme:
			done, err = p.parseNoScheme()
		case stateSpecialRelativeOrAuthority:
			done, err = p.parseSpecialRelativeOrAuthority()
		case statePathOrAuthority:
			done, err = p.parsePathOrAuthority()
		case stateRelativeScheme:
			done, err = p.parseRelativeScheme()
		case stateRelativeSlash:
			done, err = p.parseRelativeSlash()
		case stateSpecialAuthoritySlashes:
			done, err = p.parseSpecialAuthoritySlashes()
		case stateSpecialAuthorityIgnoreSlashes:
			done, err = p.parseSpecialAuthorityIgnoreSlashes()
		case stateAuthority:
			done, err = p.parseAuthority()
		case stateHost:
			done, err = p.parseHost()
		case statePort:
			done, err = p.parsePort()
		case stateFile:
			done, err = p.parseFile()
		case stateFileSlash:
			done, err = p.parseFileSlash()
		case stateFileHost:
			done, err = p.parseFileHost()
		case statePathStart:
			done, err = p.parsePathStart()
		case statePath:
			done, err = p.parsePath()
		case stateOpaquePath:
			done, err = p.parseOpaquePath()
		case stateQuery:
			done, err = p.parseQuery()
		default:
			err = errorutil.NewWrapperError(ErrInvalidURL, "unexpected parser state %v", p.state)
		}
		if err != nil {
			return errtrace.Wrap(err)
		}
		if done {
			return nil
		}
	}
}

// next moves the parser to the given state.
func (p *urlParser) next(s state) (bool, error) {
	if err := transitions.FireCtx(p.ctx, s); err != nil {
		return true, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURL, err))
	}
	return false, nil
}

func (p *urlParser) fail(sentinel error, args ...any) (bool, error) {
	return true, errtrace.Wrap(errorutil.NewWrapperError(sentinel, args...))
}

func (p *urlParser) validationError(kind string) {
	p.log.LogAttrs(p.ctx, slog.LevelDebug, "URL validation error",
		slog.String("kind", kind),
		slog.String("state", p.state.String()),
		slog.Int("pos", p.pos),
	)
}

func (p *urlParser) peek() (byte, bool) {
	if p.pos < len(p.input) {
		return p.input[p.pos], true
	}
	return 0, false
}

func (p *urlParser) rest() string { return p.input[p.pos:] }
