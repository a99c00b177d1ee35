package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mblewuada/texfix/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded repair sessions",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session id>",
	Short: "Show the per-reference outcomes of a repair session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of sessions to list (0 = all)")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func openStore() (*history.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.History {
		return nil, nil, fmt.Errorf("history is disabled in %s", cfgFile)
	}
	db, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return nil, nil, err
	}
	return history.NewStore(db), func() { db.Close() }, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	limit, _ := cmd.Flags().GetInt("limit")
	sessions, err := store.ListSessions(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No repair sessions recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tSCENE\tSCANNED\tMISSING\tREPAIRED")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Scene,
			s.Scanned, s.Missing, s.Repaired)
	}
	return w.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, closeDB, err := openStore()
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := context.Background()
	sess, err := store.GetSession(ctx, args[0])
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("no session with id %s", args[0])
	}

	fmt.Printf("Session %s — %s\n", sess.ID, sess.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Scene: %s\n", sess.Scene)
	fmt.Printf("Search root: %s\n", sess.SearchRoot)
	fmt.Printf("Scanned %d, missing %d, repaired %d\n\n", sess.Scanned, sess.Missing, sess.Repaired)

	repairs, err := store.ListRepairs(ctx, sess.ID)
	if err != nil {
		return err
	}
	for _, r := range repairs {
		switch r.Outcome {
		case history.OutcomeRepaired:
			fmt.Printf("  repaired %s: %s -> %s\n", r.Node, r.OldPath, r.NewPath)
		default:
			fmt.Printf("  missing  %s: %s\n", r.Node, r.OldPath)
		}
	}
	return nil
}
