package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/hanashi/internal/present"
)

func newStoryShowCmd() *cobra.Command {
	var chapter int
	var outputMode string
	cmd := &cobra.Command{
		Use:               "show <id>",
		Short:             "Display a chapter of a story",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: storyIDCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)

			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok || mode == present.ModeTUI || mode == present.ModeNDJSON {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}
			story, err := app.Lib.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			opts := present.Options{
				Mode:       mode,
				JSONIndent: app.Cfg.GetBool("export.indent"),
				Style:      app.Cfg.GetString("render.style"),
				Width:      app.Cfg.GetInt("render.width"),
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderChapter(cmd.Context(), w, story, chapter-1, opts)
			})
		},
	}
	cmd.Flags().IntVarP(&chapter, "chapter", "c", 1, "chapter number (1-based)")
	cmd.Flags().StringVar(&outputMode, "output", "pretty", "output mode: plain|pretty|json")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"plain", "pretty", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
