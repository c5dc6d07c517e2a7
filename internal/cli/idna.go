package cli

import (
	"fmt"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"
)

func (a *app) idnaCommand() *cobra.Command {
	var unicode bool
	cmd := &cobra.Command{
		Use:   "idna <domain>",
		Short: "Convert a domain to its ASCII or Unicode form",
		Example: `  urlparse idna Bücher.example
  urlparse idna --unicode xn--bcher-kva.example
  urlparse idna --strict very-long-label.example`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := a.profile()
			convert := profile.ToASCII
			if unicode {
				convert = profile.ToUnicode
			}
			out, err := convert(args[0])
			if err != nil {
				return errtrace.Wrap(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.BoolVarP(&unicode, "unicode", "u", false, "convert to Unicode instead of ASCII")
	fs.Bool("strict", false, "check DNS label and domain lengths")
	a.v.BindPFlag("idna.strict", fs.Lookup("strict")) //nolint:errcheck
	return cmd
}
