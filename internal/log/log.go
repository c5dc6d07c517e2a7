// Package log provides logging utilities.
package log

//go:generate go tool errtrace -w .

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"braces.dev/errtrace"
	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/gourl/internal/errorutil"
)

// Format selects the handler used to render records.
type Format string

const (
	FormatConsole Format = "console"
	FormatDev     Format = "dev"
	FormatJSON    Format = "json"
)

const ErrUnknownFormat errorutil.Error = "unknown log format"

// ParseFormat parses a log format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatConsole, FormatDev, FormatJSON:
		return f, nil
	case "":
		return FormatConsole, nil
	default:
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownFormat, "%q", s))
	}
}

// ParseLevel parses a level name such as "debug" or "warn+2".
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	return lvl, nil
}

// New creates a logger writing to w in the given format.
// Errors are always rendered under the "error" key, extra formatters are applied after it.
func New(w io.Writer, format Format, level slog.Leveler, formatters ...slogformatter.Formatter) *slog.Logger {
	var h slog.Handler
	switch format {
	case FormatDev:
		h = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		})
	case FormatJSON:
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		h = console.NewHandler(w, &console.HandlerOptions{
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		})
	}
	fs := append([]slogformatter.Formatter{slogformatter.ErrorFormatter("error")}, formatters...)
	return slog.New(slogformatter.NewFormatterHandler(fs...)(h))
}

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

type fmtValue struct {
	v        any
	goSyntax bool
}

func (v fmtValue) LogValue() slog.Value {
	if v.goSyntax {
		return slog.StringValue(fmt.Sprintf("%#v", v.v))
	}
	return slog.StringValue(fmt.Sprintf("%+v", v.v))
}

// FmtValue returns a value logger that formats values using '%+v' or '%#v' syntax.
func FmtValue(v any, goSyntax bool) slog.LogValuer { return fmtValue{v, goSyntax} }
