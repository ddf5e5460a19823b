package cmd

import (
	"context"
	"fmt"

	"github.com/joncalder/dialmap/internal/progress"
	"github.com/joncalder/dialmap/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a progress summary",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		fmt.Printf("Mastered:  %d / %d\n", prog.MasteredCount(), len(entries))
		fmt.Printf("In review: %d\n", prog.ReviewCount())
		fmt.Printf("Mistakes:  %d\n", prog.Mistakes())
		return nil
	},
}
