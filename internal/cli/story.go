package cli

import (
	"github.com/spf13/cobra"

	"github.com/mithrel/hanashi/internal/util"
)

// newStoryCmd defines the parent "story" command.
func newStoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "story",
		Short: "Work with stories",
	}

	cmd.AddCommand(newStoryAddCmd())
	cmd.AddCommand(newStoryListCmd())
	cmd.AddCommand(newStoryShowCmd())
	cmd.AddCommand(newStoryDeleteCmd())
	cmd.AddCommand(newStorySearchCmd())

	return cmd
}

// storyIDCompletion offers story IDs, fuzzy-ranked against the typed prefix.
func storyIDCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	app := getApp(cmd)
	sums, err := app.Lib.List(cmd.Context(), 0)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	ids := make([]string, 0, len(sums))
	for _, s := range sums {
		ids = append(ids, s.ID)
	}
	return util.ScoreCompletions(toComplete, ids, 20), cobra.ShellCompDirectiveNoFileComp
}
