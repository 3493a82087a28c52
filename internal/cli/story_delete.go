package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newStoryDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:               "delete <id...>",
		Short:             "Delete stories and their chapters",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: storyIDCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)

			if err := confirmDelete(fmt.Sprintf("Delete %d stories?", len(args)),
				"This will permanently delete the selected stories and all their chapters.", yes, len(args)); err != nil {
				return err
			}
			for _, id := range args {
				if err := app.Lib.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete %s: %w", id, err)
				}
			}
			if len(args) == 1 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Story %s deleted.\n", args[0])
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d stories.\n", len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation prompt for bulk deletes")
	return cmd
}

func confirmDelete(title, desc string, yes bool, count int) error {
	if yes || count < 2 {
		return nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("confirmation required; rerun with --yes")
	}
	confirm := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(desc).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("aborted")
	}
	return nil
}
