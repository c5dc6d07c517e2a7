package cli

import (
	"fmt"
	"log/slog"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/gourl/internal/errorutil"
	"github.com/ghettovoice/gourl/url"
)

// setters are applied in this order.
var setters = []struct {
	name string
	set  func(*url.URL, string) error
}{
	{"protocol", (*url.URL).SetProtocol},
	{"username", (*url.URL).SetUsername},
	{"password", (*url.URL).SetPassword},
	{"host", (*url.URL).SetHost},
	{"hostname", (*url.URL).SetHostname},
	{"port", (*url.URL).SetPort},
	{"pathname", (*url.URL).SetPathname},
	{"search", func(u *url.URL, s string) error { u.SetSearch(s); return nil }},
	{"hash", func(u *url.URL, s string) error { u.SetHash(s); return nil }},
}

func (a *app) setCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <url>",
		Short: "Change URL components and print the result",
		Long: `Set parses the URL, applies the given components in the order
protocol, username, password, host, hostname, port, pathname, search, hash
and prints the result. Failed changes are reported together and nothing is printed.`,
		Example: `  urlparse set https://example.com/ --port 8443 --pathname '/a b' --search q=1
  urlparse set http://example.com/ --host other.org:81 --hash ''`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.parser.Parse(args[0], nil)
			if err != nil {
				return errtrace.Wrap(err)
			}

			var errs []error
			for _, s := range setters {
				if !cmd.Flags().Changed(s.name) {
					continue
				}
				val, _ := cmd.Flags().GetString(s.name)
				if err := s.set(u, val); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
					continue
				}
				a.logger.LogAttrs(cmd.Context(), slog.LevelDebug, "URL component set",
					slog.String("component", s.name),
					slog.String("value", val),
					slog.Any("url", u),
				)
			}
			if err := errorutil.JoinPrefix("cannot set components:", errs...); err != nil {
				return errtrace.Wrap(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), u.Href())
			return nil
		},
	}

	for _, s := range setters {
		cmd.Flags().String(s.name, "", "new "+s.name)
	}
	return cmd
}
