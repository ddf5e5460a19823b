package cmd

import (
	"context"
	"fmt"

	"github.com/joncalder/dialmap/internal/app"
	"github.com/joncalder/dialmap/internal/catalog"
	"github.com/joncalder/dialmap/internal/dictionary"
	"github.com/joncalder/dialmap/internal/progress"
	"github.com/joncalder/dialmap/internal/quiz"
	"github.com/joncalder/dialmap/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	entries, err := loadEntries(cmd)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	prog, err := progress.Load(ctx, st.ProgressRepo())
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	history := st.HistoryRepo()
	return app.Run(app.Options{
		Entries:    entries,
		Progress:   prog,
		Engine:     quiz.New(entries, prog, history),
		Dictionary: dictionary.New(entries, prog),
		History:    history,
	})
}

// loadEntries reads the dataset from --data if given, else the embedded copy.
func loadEntries(cmd *cobra.Command) ([]catalog.Entry, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return catalog.FromFile(p)
	}
	return catalog.Default()
}
