package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"studyflow/internal/models"
	"studyflow/internal/util"

	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		limit  int
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent requests, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			switch format {
			case "json", "jsonl", "text":
			default:
				return fmt.Errorf("unknown format %q (want json, jsonl or text)", format)
			}

			d, err := openDeps(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer d.Close()

			recs, err := d.recorder.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if out != "" {
				return exportHistory(out, format, recs)
			}
			return printHistory(cmd.OutOrStdout(), format, recs)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Max records (at most 20)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, jsonl or text")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}

func exportHistory(path, format string, recs []models.HistoryRecord) error {
	switch format {
	case "jsonl":
		return util.WriteJSONLinesAtomic(path, recs)
	case "text":
		return util.WriteTextAtomic(path, formatHistoryText(recs))
	default:
		return util.WriteJSONAtomic(path, recs)
	}
}

func printHistory(w io.Writer, format string, recs []models.HistoryRecord) error {
	switch format {
	case "text":
		_, err := io.WriteString(w, formatHistoryText(recs))
		return err
	case "jsonl":
		enc := json.NewEncoder(w)
		for _, r := range recs {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	default:
		if recs == nil {
			recs = []models.HistoryRecord{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
}

func formatHistoryText(recs []models.HistoryRecord) string {
	var b strings.Builder
	for _, r := range recs {
		fmt.Fprintf(&b, "#%d %s %s\n", r.ID, r.Timestamp, r.OperationKind)
		fmt.Fprintf(&b, "  input:  %s\n", oneLine(r.InputText, 120))
		fmt.Fprintf(&b, "  output: %s\n", oneLine(r.OutputContent, 120))
	}
	return b.String()
}

func oneLine(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > limit {
		return string(r[:limit]) + "..."
	}
	return s
}
