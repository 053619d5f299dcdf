package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/agentic-research/annotate/internal/annotate"
	"github.com/spf13/cobra"
)

func newAttrsCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "attrs",
		Short: "Print the attribute names the current configuration emits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), f.logLevel)
			if err != nil {
				return err
			}
			opts, err := resolveOptions(cmd, f, logger)
			if err != nil {
				return err
			}

			names := annotate.ResolveNames(opts)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "component\t%s\n", names.Component)
			_, _ = fmt.Fprintf(w, "element\t%s\n", names.Element)
			_, _ = fmt.Fprintf(w, "source-file\t%s\n", names.SourceFile)
			if names.EmitSourcePath {
				_, _ = fmt.Fprintf(w, "source-path\t%s\n", names.SourcePath)
			}
			for _, name := range opts.IgnoredComponents {
				_, _ = fmt.Fprintf(w, "ignored\t%s\n", name)
			}
			if opts.RewriteEmotionStyled {
				_, _ = fmt.Fprintf(w, "rewrite\t@emotion/styled\n")
			}
			return w.Flush()
		},
	}
}
