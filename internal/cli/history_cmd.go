package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/spelltree/internal/cli/formatter"
	"github.com/alexanderramin/spelltree/internal/repository"
	"github.com/spf13/cobra"
)

var errHistoryDisabled = errors.New("build history is disabled (SPELLTREE_HISTORY=false)")

func newHistoryCmd(a *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.History == nil {
				return errHistoryDisabled
			}
			runs, err := a.History.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(runs, a.now()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "How many builds to show (0 for all)")

	cmd.AddCommand(newHistoryShowCmd(a))
	return cmd
}

func newHistoryShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded build; any unique id prefix works",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.History == nil {
				return errHistoryDisabled
			}
			run, err := a.History.GetRun(cmd.Context(), args[0])
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return fmt.Errorf("no build matches %q", args[0])
			case errors.Is(err, repository.ErrAmbiguousID):
				return fmt.Errorf("%q matches more than one build; use a longer prefix", args[0])
			case err != nil:
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRun(run))
			return nil
		},
	}
}
