package cli

import (
	"fmt"

	"github.com/alexanderramin/spelltree/internal/app"
	"github.com/alexanderramin/spelltree/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *App) *cobra.Command {
	var in buildInputs

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every offline strategy on the same input and seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, cfg, err := in.load(cmd.Flags(), a.logger())
			if err != nil {
				return err
			}

			stop := func() {}
			if a.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "comparing strategies")
			}
			resp, err := a.Compare.Compare(cmd.Context(), app.CompareRequest{Items: items, Config: cfg})
			stop()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCompare(resp))
			return nil
		},
	}

	addBuildInputFlags(cmd.Flags(), &in)
	return cmd
}
