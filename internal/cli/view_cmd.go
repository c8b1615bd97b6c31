package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/spelltree/internal/cli/formatter"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/importer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newViewCmd(a *App) *cobra.Command {
	var school string

	cmd := &cobra.Command{
		Use:   "view <tree.json>",
		Short: "Render a built tree; scrollable on a terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := importer.LoadTree(args[0])
			if err != nil {
				return err
			}
			if school != "" {
				if _, ok := tree.Schools[school]; !ok {
					return fmt.Errorf("school %q not in tree (have %s)",
						school, strings.Join(domain.SortedSchoolNames(tree.Schools), ", "))
				}
			}

			content := formatter.FormatTreeView(tree, school)
			if !a.interactive() {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			title := fmt.Sprintf("%s  %s seed %d", args[0], formatter.StrategyLabel(tree.Command), tree.Seed)
			p := tea.NewProgram(newPagerModel(title, content), tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&school, "school", "", "Only show this school")
	return cmd
}
