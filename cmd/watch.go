package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mblewuada/texfix/internal/report"
	"github.com/mblewuada/texfix/internal/scan"
	"github.com/mblewuada/texfix/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <scene file>...",
	Short: "Rescan scene files whenever they change on disk",
	Long: `Watches the given scene files and re-runs the missing-texture scan each
time one is saved, printing a fresh report. Stop with Ctrl-C.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("format", "", "force a scene format instead of detecting by extension")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")

	rescan := func(path string) {
		doc, err := openDocument(path, format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		report.RenderScan(os.Stdout, scan.Run(doc, scanOptions(cfg)))
	}

	// Initial scan before waiting for changes.
	for _, path := range args {
		rescan(path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(os.Stderr, "Watching for changes (Ctrl-C to stop)...")
	err = watch.Files(ctx, args, watch.DefaultDebounce, rescan)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
