package cli

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aspectpath/pkg/solver"
)

// aspectsCommand creates the aspects listing command.
func (c *CLI) aspectsCommand() *cobra.Command {
	var (
		kind    string
		sortBy  string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:     "aspects",
		Aliases: []string{"ls"},
		Short:   "List aspects with their weights and recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := c.loadData(ctx)
			if err != nil {
				return err
			}
			rows, err := aspectRows(data.Graph(), data.Title, c.preferred(nil, nil), kind, sortBy)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(c.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			fmt.Fprintln(c.Out, renderAspectTable(rows))
			fmt.Fprintln(c.Out, StyleDim.Render(fmt.Sprintf("  %d aspects", len(rows))))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", `only list "primal" or "compound" aspects`)
	cmd.Flags().StringVar(&sortBy, "sort", "name", `sort by "name" or "weight"`)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the list as JSON")

	return cmd
}

// aspectRows lists the declared aspects of g, filtered by kind and sorted.
func aspectRows(g *solver.Graph, title func(string) string, pref solver.Preferred, kind, sortBy string) ([]aspectRow, error) {
	var ids []solver.Aspect
	switch kind {
	case "":
		ids = g.Aspects()
	case solver.KindPrimal.String():
		ids = g.Primal()
	case solver.KindCompound.String():
		ids = g.Compound()
	default:
		return nil, fmt.Errorf("unknown kind %q: want primal or compound", kind)
	}

	rows := make([]aspectRow, 0, len(ids))
	for _, id := range ids {
		w, _ := g.Weight(id)
		rows = append(rows, aspectRow{
			ID:        id,
			Kind:      g.Kind(id),
			Weight:    w,
			Recipe:    g.Recipe(id),
			Title:     title(id),
			Preferred: pref.Contains(id),
		})
	}

	switch sortBy {
	case "", "name":
		slices.SortFunc(rows, func(a, b aspectRow) int { return cmp.Compare(a.ID, b.ID) })
	case "weight":
		slices.SortStableFunc(rows, func(a, b aspectRow) int {
			return cmp.Or(cmp.Compare(a.Weight, b.Weight), cmp.Compare(a.ID, b.ID))
		})
	default:
		return nil, fmt.Errorf("unknown sort key %q: want name or weight", sortBy)
	}
	return rows, nil
}
