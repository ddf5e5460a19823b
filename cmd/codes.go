package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/joncalder/dialmap/internal/dictionary"
	"github.com/joncalder/dialmap/internal/progress"
	"github.com/joncalder/dialmap/internal/store"
	"github.com/spf13/cobra"
)

var codesCmd = &cobra.Command{
	Use:   "codes [query]",
	Short: "List dialling codes, optionally filtered by place or code",
	Args:  cobra.MaximumNArgs(1),
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

		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		dict := dictionary.New(entries, prog)
		for _, e := range dict.Filter(query) {
			mark := " "
			if prog.IsMastered(e.Code) {
				mark = "*"
			}
			fmt.Printf("%-7s %s %-24s %s\n", e.Code, mark, e.Place, strings.ToLower(dict.StatusOf(e.Code).Label()))
		}
		return nil
	},
}
