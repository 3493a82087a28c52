package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/hanashi/pkg/api"
)

func newImportCmd() *cobra.Command {
	var file string
	var replace bool
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import stories from JSON (array or NDJSON)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(file) == "" {
				return fmt.Errorf("--file is required")
			}
			app := getApp(cmd)

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			stories, err := decodeStories(f)
			if err != nil {
				return err
			}

			if replace {
				if err := app.Lib.Restore(cmd.Context(), stories); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Restored %d stories.\n", len(stories))
				return nil
			}

			added, err := app.Lib.Add(cmd.Context(), stories)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported: %d\nSkipped (conflict): %d\n", added, len(stories)-added)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "input JSON file (array or NDJSON)")
	cmd.Flags().BoolVar(&replace, "replace", false, "replace the whole collection instead of adding")
	return cmd
}

// decodeStories accepts either a JSON array or an NDJSON stream of stories.
func decodeStories(r io.Reader) ([]api.Story, error) {
	br := bufio.NewReader(r)
	// Peek first non-space byte to decide array vs NDJSON
	first, err := peekFirstNonSpace(br)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(br)
	if first == '[' {
		var arr []api.Story
		if err := dec.Decode(&arr); err != nil {
			return nil, err
		}
		return arr, nil
	}
	var out []api.Story
	for {
		var s api.Story
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func peekFirstNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
			continue
		}
		// put it back for the decoder
		if err := r.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}
