package cmd

import (
	"context"
	"fmt"

	"github.com/joncalder/dialmap/internal/progress"
	"github.com/joncalder/dialmap/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset quiz progress (dictionary statuses are kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Println("This clears mastered codes, the review list and the mistake count.")
			fmt.Println("Re-run with --yes to confirm.")
			return nil
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
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
		if err := prog.ResetQuiz(ctx); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}

		fmt.Println("Quiz progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
