package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/hanashi/internal/present/format"
)

func newExportCmd() *cobra.Command {
	var file string
	var ndjson bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all stories as JSON (array or NDJSON)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)

			stories, err := app.Lib.Export(cmd.Context())
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if strings.TrimSpace(file) != "" {
				f, err := os.Create(file)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if ndjson {
				err = format.WriteNDJSONStories(w, stories)
			} else {
				err = format.WriteJSONStories(w, stories, app.Cfg.GetBool("export.indent"))
			}
			if err != nil {
				return err
			}
			if strings.TrimSpace(file) != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d stories to %s\n", len(stories), file)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&ndjson, "ndjson", false, "one story per line instead of a JSON array")
	return cmd
}
