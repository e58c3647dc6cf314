package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"studyflow/internal/models"
	"studyflow/internal/source"

	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		text string
		file string
	)
	cmd := &cobra.Command{
		Use:       "generate <summary|flashcards|timetable>",
		Short:     "Run one operation and record it in history",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(models.OpSummary), string(models.OpFlashcards), string(models.OpTimetable)},
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := models.ParseOperation(args[0])
			if err != nil {
				return err
			}
			src, err := cliSource(cmd, text, file)
			if err != nil {
				return err
			}

			d, err := openDeps(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer d.Close()

			res, err := d.service.Run(cmd.Context(), op, src)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "Inline study text")
	cmd.Flags().StringVar(&file, "file", "", "Path to a PDF, or a plain-text file with a .txt/.md extension")
	return cmd
}

// cliSource maps flags to a source. Plain-text files are read as inline text; anything
// else is uploaded as a document.
func cliSource(cmd *cobra.Command, text, file string) (source.Source, error) {
	var src source.Source
	if cmd.Flags().Changed("text") {
		src = source.InlineText(text)
	}
	if file == "" {
		return src, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return source.Source{}, fmt.Errorf("read %s: %w", file, err)
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".txt", ".md":
		if src.HasText {
			src.Document = &source.Document{Filename: filepath.Base(file), Data: data}
			return src, nil
		}
		return source.InlineText(string(data)), nil
	default:
		src.Document = &source.Document{Filename: filepath.Base(file), Data: data}
		return src, nil
	}
}
