package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/hanashi/internal/util"
)

func newStorySearchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search chapter bodies and translations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)

			hits, err := app.Lib.Search(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if len(hits) > 0 {
				for _, h := range hits {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tch.%d\t%s\n", h.StoryID, h.StoryTitle, h.Seq+1, h.Snippet)
				}
				return nil
			}

			// No index hits; fall back to fuzzy title matching.
			sums, err := app.Lib.List(cmd.Context(), 0)
			if err != nil {
				return err
			}
			for _, s := range util.ScoreStories(args[0], sums) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.ID, s.Title)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "max hits to print")
	return cmd
}
