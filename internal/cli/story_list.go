package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/hanashi/internal/present"
)

func newStoryListCmd() *cobra.Command {
	var outputMode string
	var noHeaders bool
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stories",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)

			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
			if limit <= 0 {
				limit = app.Cfg.GetInt("list.limit")
			}
			sums, err := app.Lib.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			opts := present.Options{
				Mode:       mode,
				JSONIndent: false, // pretty-print via external tools like jq
				Headers:    !noHeaders,
			}
			if mode == present.ModeTUI {
				return present.RenderSummaries(cmd.Context(), cmd.OutOrStdout(), sums, opts)
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderSummaries(cmd.Context(), w, sums, opts)
			})
		},
	}
	cmd.Flags().StringVar(&outputMode, "output", "plain", "output mode: plain|json|ndjson|tui")
	cmd.Flags().IntVar(&limit, "limit", 0, "max stories to list (0 uses config)")
	cmd.Flags().BoolVar(&noHeaders, "noheaders", false, "hide column headers (plain)")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"plain", "json", "ndjson", "tui"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
