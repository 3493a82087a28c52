package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/hanashi/internal/editor"
)

// newStoryAddCmd registers `story add`: parse a filled template and store it.
func newStoryAddCmd() *cobra.Command {
	var file string
	var storyID string
	var edit bool
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a story (or append a chapter) from a filled template",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)

			var raw string
			var err error
			if edit {
				raw, err = editTemplate(cmd)
			} else {
				raw, err = readTemplate(cmd, file)
			}
			if err != nil {
				return err
			}
			if raw == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No edits; nothing added.")
				return nil
			}

			if storyID != "" {
				story, err := app.Lib.AppendChapter(cmd.Context(), storyID, raw)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tchapter %d\n", story.ID, story.Title, len(story.Chapters))
				return nil
			}

			story, err := app.Lib.ImportStory(cmd.Context(), raw)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", story.ID, story.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "template file (default: stdin)")
	cmd.Flags().StringVar(&storyID, "story", "", "append as a new chapter of an existing story")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "open $EDITOR on a blank template")
	cmd.MarkFlagsMutuallyExclusive("file", "edit")
	_ = cmd.RegisterFlagCompletionFunc("story", storyIDCompletion)
	return cmd
}

// editTemplate opens the editor on the blank skeleton. An empty return with
// nil error means the user made no edits.
func editTemplate(cmd *cobra.Command) (string, error) {
	path, err := editor.TempPath()
	if err != nil {
		return "", err
	}
	out, changed, err := editor.OpenAt(path, []byte(editor.Skeleton))
	if err != nil {
		return "", err
	}
	_ = os.Remove(path)
	if !changed {
		return "", nil
	}
	return string(out), nil
}

func readTemplate(cmd *cobra.Command, file string) (string, error) {
	var data []byte
	var err error
	if strings.TrimSpace(file) == "" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("empty template; pass --file or pipe a filled template on stdin")
	}
	return string(data), nil
}
