package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/spelltree/internal/app"
	"github.com/alexanderramin/spelltree/internal/cli/formatter"
	"github.com/alexanderramin/spelltree/internal/importer"
	"github.com/spf13/cobra"
)

func newBuildCmd(a *App) *cobra.Command {
	var in buildInputs
	var output, kind string
	var summary bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a spell tree from a spell list",
		Example: "  spelltree build -i spells.json -o tree.json -t graph -s 42\n" +
			"  spelltree build -i spells.json -o tree.json -t oracle -c config.yaml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := resolveStrategy(kind)
			if err != nil {
				return err
			}
			if output == "" {
				return errors.New("--output is required")
			}
			items, cfg, err := in.load(cmd.Flags(), a.logger())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Building %s tree from %d spells (seed=%s)...\n", kind, len(items), seedLabel(cfg.Seed))

			stop := func() {}
			if a.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "growing "+kind+" tree")
			}
			resp, err := a.Build.Build(cmd.Context(), app.BuildRequest{
				Command:    command,
				Items:      items,
				Config:     cfg,
				InputPath:  in.input,
				OutputPath: output,
			})
			stop()
			if err != nil {
				return err
			}

			if err := importer.WriteJSON(output, resp.Result); err != nil {
				return err
			}
			fmt.Fprintf(out, "Done. %d spells -> %s (%d ms)\n", len(items), output, resp.Result.ElapsedMs)
			if summary {
				fmt.Fprintln(out, formatter.FormatBuildSummary(resp.Result.Tree, resp.Result.ElapsedMs, resp.RunID))
			}
			return nil
		},
	}

	addBuildInputFlags(cmd.Flags(), &in)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Where to write the tree JSON")
	cmd.Flags().StringVarP(&kind, "type", "t", "tree", "Tree type: classic, tree, thematic, graph or oracle")
	cmd.Flags().BoolVar(&summary, "summary", false, "Also print a per-school summary box")

	return cmd
}
