package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/spelltree/internal/importer"
	"github.com/alexanderramin/spelltree/internal/prereq"
	"github.com/spf13/cobra"
)

func newPrereqsCmd(a *App) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "prereqs",
		Short: "Rank prerequisite candidates for each spell in a request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return errors.New("--input is required")
			}
			data, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			req := prereq.Request{Settings: prereq.DefaultSettings()}
			if err := json.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("parsing %s: %w", input, err)
			}

			resp, err := a.Prereqs.ScorePrereqs(cmd.Context(), req)
			if err != nil {
				return err
			}

			if output != "" {
				if err := importer.WriteJSON(output, resp); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Scored %d spells -> %s\n", resp.Count, output)
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Scoring request JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the scores here instead of stdout")
	return cmd
}
