package fixer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Summary aggregates per-file results for reporting.
type Summary struct {
	Scanned int           `json:"scanned"`
	Changed int           `json:"changed"`
	Files   []*FileResult `json:"files"`
}

// Summarize collects the changed files out of all results.
func Summarize(results []*FileResult) *Summary {
	s := &Summary{Scanned: len(results)}
	for _, r := range results {
		if r.Changed {
			s.Changed++
			s.Files = append(s.Files, r)
		}
	}
	return s
}

// WriteText prints the summary in the CLI's plain format, with per-file
// diffs when showDiff is set.
func (s *Summary) WriteText(w io.Writer, showDiff bool) {
	for i, r := range s.Files {
		fmt.Fprintf(w, "%d) %s (%s)\n", i+1, r.Path, strings.Join(r.Applied, ", "))
		if showDiff && r.Diff != "" {
			fmt.Fprintln(w, r.Diff)
		}
	}
	fmt.Fprintf(w, "Checked %d files, %d need fixes\n", s.Scanned, s.Changed)
}

// WriteJSON prints the summary as indented JSON.
func (s *Summary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
