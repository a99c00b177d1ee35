// Package report renders scan and repair results for the terminal or as
// YAML for downstream tooling.
package report

import (
	"fmt"
	"io"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mblewuada/texfix/internal/repair"
	"github.com/mblewuada/texfix/internal/scan"
)

// RenderScan writes a human-readable summary of a scan report.
func RenderScan(w io.Writer, rep scan.Report) {
	if len(rep.Missing) == 0 {
		fmt.Fprintf(w, "No missing texture files in %s.\n", rep.Scene)
	} else {
		fmt.Fprintf(w, "%d missing texture files in %s:\n", len(rep.Missing), rep.Scene)
		for _, m := range rep.Missing {
			fmt.Fprintf(w, "  %s  (%s)\n", m.Ref.Raw, m.Ref.Node)
		}
	}

	for _, warn := range rep.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
}

// RenderRepair writes a human-readable summary of a repair pass. The
// repaired and still-missing counts always sum to the original missing set.
func RenderRepair(w io.Writer, res *repair.Result) {
	repaired, missing := res.Counts()

	if res.DryRun {
		fmt.Fprintf(w, "Dry run — %s was not modified.\n", res.Scene)
	}

	if missing == 0 {
		fmt.Fprintf(w, "All %d file paths repaired.\n", repaired)
	} else {
		fmt.Fprintf(w, "%d texture file paths could not be repaired.\n", missing)
		fmt.Fprintf(w, "%d file paths repaired.\n", repaired)
	}

	for _, fix := range res.Repaired {
		fmt.Fprintf(w, "  %s -> %s\n", fix.OldPath, fix.NewPath)
		if fix.Ambiguous() {
			fmt.Fprintf(w, "    note: %d files named %q under %s differ in content; first match used\n",
				fix.Candidates, filepath.Base(fix.NewPath), res.SearchRoot)
		}
	}

	if missing > 0 {
		fmt.Fprintln(w, "Not found under search root:")
		for _, m := range res.StillMissing {
			fmt.Fprintf(w, "  %s  (%s)\n", m.Ref.Raw, m.Ref.Node)
		}
	}
}

// WriteYAML marshals v as YAML to w.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
