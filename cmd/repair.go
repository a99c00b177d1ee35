package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/mblewuada/texfix/internal/config"
	"github.com/mblewuada/texfix/internal/history"
	"github.com/mblewuada/texfix/internal/progress"
	"github.com/mblewuada/texfix/internal/repair"
	"github.com/mblewuada/texfix/internal/report"
	"github.com/mblewuada/texfix/internal/scan"
	"github.com/mblewuada/texfix/internal/scene"
	"github.com/mblewuada/texfix/internal/search"
)

var repairCmd = &cobra.Command{
	Use:   "repair <scene file>...",
	Short: "Repair missing texture paths by searching a directory tree",
	Long: `Scans each scene file for missing texture references, then searches the
search root recursively for files with matching names. The first match
in traversal order wins; the reference's path attribute is rewritten
in place and the file saved. References with no match are left
unchanged and reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRepair,
}

func init() {
	repairCmd.Flags().String("search-root", "", "directory to search (default: the scene file's directory)")
	repairCmd.Flags().String("format", "", "force a scene format instead of detecting by extension (one of: "+strings.Join(scene.Formats(), ", ")+")")
	repairCmd.Flags().StringP("output", "o", "text", "output format: text or yaml")
	repairCmd.Flags().Bool("dry-run", false, "report what would be repaired without writing")
	repairCmd.Flags().BoolP("yes", "y", false, "repair without asking for confirmation")
	repairCmd.Flags().Bool("no-history", false, "skip recording this repair session")
	rootCmd.AddCommand(repairCmd)
}

func runRepair(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	searchRoot, _ := cmd.Flags().GetString("search-root")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	var store *history.Store
	if cfg.History && !noHistory && !dryRun {
		db, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer db.Close()
		store = history.NewStore(db)
	}

	var results []*repair.Result
	for _, path := range args {
		res, err := repairOne(ctx, cfg, store, path, searchRoot, format, dryRun, yes, output == "text")
		if err != nil {
			return err
		}
		if res != nil {
			results = append(results, res)
		}
	}

	if output == "yaml" {
		return report.WriteYAML(os.Stdout, results)
	}
	return nil
}

// repairOne runs scan + repair for a single scene file. A nil result with a
// nil error means there was nothing to repair or the user declined.
func repairOne(ctx context.Context, cfg *config.Config, store *history.Store,
	path, searchRoot, format string, dryRun, yes, render bool) (*repair.Result, error) {

	doc, err := openDocument(path, format)
	if err != nil {
		return nil, err
	}

	rep := scan.Run(doc, scanOptions(cfg))
	if len(rep.Missing) == 0 {
		if render {
			report.RenderScan(os.Stdout, rep)
		}
		return nil, nil
	}

	if render {
		report.RenderScan(os.Stdout, rep)
	}

	if !yes && !dryRun {
		ok, err := confirmRepair(len(rep.Missing))
		if err != nil {
			return nil, err
		}
		if !ok {
			fmt.Fprintf(os.Stderr, "Skipping %s\n", path)
			return nil, nil
		}
	}

	root := searchRootFor(cfg, searchRoot, doc)
	index, err := search.Build(search.Config{
		Root:    root,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Indexed %d files under %s\n", index.Files(), index.Root())
	}

	repairer := &repair.Repairer{
		Index:  index,
		DryRun: dryRun,
	}
	if verbose {
		repairer.Log = os.Stderr
	}
	if render {
		repairer.Reporter = progress.NewReporter()
	}

	res, err := repairer.Run(doc, rep.Missing)
	if err != nil {
		return nil, err
	}

	if render {
		report.RenderRepair(os.Stdout, res)
	}

	if store != nil {
		if err := recordSession(ctx, store, rep, res); err != nil {
			// History is bookkeeping; a write failure must not undo a
			// successful repair pass.
			fmt.Fprintf(os.Stderr, "Warning: could not record history: %v\n", err)
		}
	}

	return res, nil
}

// confirmRepair asks the user before rewriting scene files.
func confirmRepair(missing int) (bool, error) {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Repair %d missing texture paths", missing),
		IsConfirm: true,
	}
	_, err := prompt.Run()
	if err == promptui.ErrAbort {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirmation: %w", err)
	}
	return true, nil
}

// recordSession persists the pass outcome to the history store.
func recordSession(ctx context.Context, store *history.Store, rep scan.Report, res *repair.Result) error {
	repaired, missing := res.Counts()

	sess := history.Session{
		Scene:      res.Scene,
		SearchRoot: res.SearchRoot,
		Scanned:    rep.Total,
		Missing:    repaired + missing,
		Repaired:   repaired,
	}

	entries := make([]history.Repair, 0, repaired+missing)
	for _, fix := range res.Repaired {
		entries = append(entries, history.Repair{
			Node:    fix.Ref.Node,
			OldPath: fix.OldPath,
			NewPath: fix.NewPath,
			Outcome: history.OutcomeRepaired,
		})
	}
	for _, m := range res.StillMissing {
		entries = append(entries, history.Repair{
			Node:    m.Ref.Node,
			OldPath: m.Ref.Raw,
			Outcome: history.OutcomeMissing,
		})
	}

	_, err := store.Record(ctx, sess, entries)
	return err
}
