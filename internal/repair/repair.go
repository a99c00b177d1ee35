// Package repair rewrites missing texture paths using a basename search
// index. Every reference is handled independently: one reference's outcome
// never affects another's.
package repair

import (
	"fmt"
	"io"

	"github.com/mblewuada/texfix/internal/progress"
	"github.com/mblewuada/texfix/internal/scan"
	"github.com/mblewuada/texfix/internal/scene"
	"github.com/mblewuada/texfix/internal/search"
)

// Fix records a single repaired reference.
type Fix struct {
	Ref        scene.Ref
	OldPath    string // raw value before the rewrite
	NewPath    string // discovered path written to the document
	Candidates int    // files under the root sharing the base name
	Identical  bool   // whether all candidates have identical content
}

// Ambiguous reports whether other files with the same base name but
// different content existed under the search root. The first match in
// traversal order was used either way.
func (f Fix) Ambiguous() bool {
	return f.Candidates > 1 && !f.Identical
}

// Result is the three-way accounting of a repair pass over one document.
// len(Repaired) + len(StillMissing) always equals the size of the missing
// set the pass started from.
type Result struct {
	Scene        string
	SearchRoot   string
	DryRun       bool
	Repaired     []Fix
	StillMissing []scan.Missing
}

// Counts returns the repaired and still-missing totals.
func (r *Result) Counts() (repaired, missing int) {
	return len(r.Repaired), len(r.StillMissing)
}

// Repairer applies first-match basename repairs to a document.
type Repairer struct {
	Index *search.Index
	// DryRun computes the result without mutating or saving the document.
	DryRun bool
	// Log receives per-reference diagnostics when non-nil.
	Log io.Writer
	// Reporter, when non-nil, is fed per-reference progress.
	Reporter progress.Reporter
}

// Run repairs the given missing references. For each one the base name of
// the broken path is looked up in the index; on a hit the document's path
// attribute is overwritten with the discovered path, on a miss the reference
// is left untouched. The document is saved once at the end if anything was
// repaired and the pass is not a dry run.
func (r *Repairer) Run(doc scene.Document, missing []scan.Missing) (*Result, error) {
	res := &Result{
		Scene:      doc.Path(),
		SearchRoot: r.Index.Root(),
		DryRun:     r.DryRun,
	}

	if r.Reporter != nil {
		r.Reporter.Start(len(missing))
		defer r.Reporter.Finish()
	}

	for i, m := range missing {
		if r.Reporter != nil {
			r.Reporter.Update(i+1, scene.Basename(m.Ref.Raw))
		}

		name := scene.Basename(m.Ref.Raw)
		found, ok := r.Index.Lookup(name)
		if !ok {
			if r.Log != nil {
				fmt.Fprintf(r.Log, "%s path not found\n", name)
			}
			res.StillMissing = append(res.StillMissing, m)
			continue
		}

		if !r.DryRun {
			if err := doc.SetPath(m.Ref.Node, found); err != nil {
				// A rewrite failure leaves this reference missing but
				// must not stop the rest of the pass.
				if r.Log != nil {
					fmt.Fprintf(r.Log, "could not rewrite %s: %v\n", m.Ref.Node, err)
				}
				res.StillMissing = append(res.StillMissing, m)
				continue
			}
		}

		if r.Log != nil {
			fmt.Fprintf(r.Log, "valid texture file found: %s\n", found)
		}

		candidates := r.Index.Candidates(name)
		res.Repaired = append(res.Repaired, Fix{
			Ref:        m.Ref,
			OldPath:    m.Ref.Raw,
			NewPath:    found,
			Candidates: len(candidates),
			Identical:  len(candidates) <= 1 || r.Index.Identical(name),
		})
	}

	if len(res.Repaired) > 0 && !r.DryRun {
		if err := doc.Save(); err != nil {
			return nil, fmt.Errorf("saving %s: %w", doc.Path(), err)
		}
	}

	return res, nil
}
