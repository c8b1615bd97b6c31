package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/spelltree/internal/app"
	"github.com/alexanderramin/spelltree/internal/cli/formatter"
	"github.com/alexanderramin/spelltree/internal/importer"
	"github.com/spf13/cobra"
)

// ErrInvalidTree makes `validate` exit non-zero when a tree still has
// unreachable nodes or cycles.
var ErrInvalidTree = errors.New("tree is not valid")

func newValidateCmd(a *App) *cobra.Command {
	var fix bool
	var maxChildren int
	var output string

	cmd := &cobra.Command{
		Use:   "validate <tree.json>",
		Short: "Check that every node of a built tree is reachable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := importer.LoadTree(args[0])
			if err != nil {
				return err
			}

			checked, err := a.ValidateTree.ValidateTree(cmd.Context(), app.ValidateTreeRequest{
				Tree:        tree,
				Fix:         fix,
				MaxChildren: maxChildren,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatValidation(checked.Validation))

			if output != "" {
				if err := importer.WriteJSON(output, checked); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", output)
			}
			if !checked.Validation.AllValid {
				return ErrInvalidTree
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair unreachable nodes")
	cmd.Flags().IntVar(&maxChildren, "max-children", 0, "Child cap used by repairs (default 3)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the (repaired) tree here")

	return cmd
}
