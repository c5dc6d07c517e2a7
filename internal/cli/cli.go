// Package cli implements the urlparse command tree.
package cli

//go:generate go tool errtrace -w .

import (
	"log/slog"

	"braces.dev/errtrace"
	slogformatter "github.com/samber/slog-formatter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ghettovoice/gourl/idna"
	"github.com/ghettovoice/gourl/internal/config"
	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/internal/log"
	"github.com/ghettovoice/gourl/url"
)

const ErrUnknownComponent errorutil.Error = "unknown component"

// app holds the state shared by all commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg    *config.Config
	logger *slog.Logger
	parser *url.Parser
}

// NewCommand builds the root urlparse command.
func NewCommand() *cobra.Command {
	a := &app{
		v:      viper.New(),
		logger: log.Noop,
		parser: &url.Parser{},
	}

	cmd := &cobra.Command{
		Use:   config.Name,
		Short: "Parse, normalize and edit URLs the way web browsers do",
		Long: `urlparse parses URLs following the WHATWG URL Standard.

Settings are read from urlparse.toml in the current directory or in
$XDG_CONFIG_HOME/urlparse, from URLPARSE_* environment variables
(URLPARSE_LOG_LEVEL, URLPARSE_BULK_WORKERS, ...) and from flags.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&a.cfgFile, "config", "", "config file (default ./urlparse.toml or $XDG_CONFIG_HOME/urlparse/urlparse.toml)")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("log-format", string(log.FormatConsole), "log format: console, dev or json")
	a.v.BindPFlag("log.level", fs.Lookup("log-level"))   //nolint:errcheck
	a.v.BindPFlag("log.format", fs.Lookup("log-format")) //nolint:errcheck

	cmd.AddCommand(
		a.parseCommand(),
		a.setCommand(),
		a.bulkCommand(),
		a.idnaCommand(),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return errtrace.Wrap(err)
	}
	// both are checked by config.Load
	lvl, _ := log.ParseLevel(cfg.Log.Level)
	format, _ := log.ParseFormat(cfg.Log.Format)

	a.cfg = cfg
	a.logger = log.New(cmd.ErrOrStderr(), format, lvl,
		slogformatter.FormatByType(func(u *url.URL) slog.Value {
			return slog.StringValue(u.Href())
		}),
	)
	a.parser = &url.Parser{
		Logger: a.logger,
		Mapper: a.profile(),
	}
	a.logger.Debug("config loaded", slog.String("file", a.v.ConfigFileUsed()), slog.Any("config", log.FmtValue(cfg, false)))
	return nil
}

func (a *app) profile() *idna.Profile {
	if a.cfg != nil && a.cfg.IDNA.Strict {
		return idna.Strict
	}
	return idna.Default
}
