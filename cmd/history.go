package cmd

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"bus-ticket-cli/store"
)

func newHistoryCmd() *cobra.Command {
	var clearAll bool
	c := &cobra.Command{
		Use:   "history",
		Short: "List or clear recently searched routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if clearAll {
				if err := store.ClearRecentRoutes(); err != nil {
					return err
				}
				fmt.Fprintln(out, "Search history cleared.")
				return nil
			}

			routes, err := store.LoadRecentRoutes()
			if err != nil {
				return err
			}
			if len(routes) == 0 {
				fmt.Fprintln(out, "No recent searches.")
				return nil
			}
			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.AppendHeader(table.Row{"Route", "Searched At"})
			for _, r := range routes {
				t.AppendRow(table.Row{r.Route().String(), r.SearchedAt.Local().Format(time.DateTime)})
			}
			t.Render()
			return nil
		},
	}
	c.Flags().BoolVar(&clearAll, "clear", false, "remove all remembered routes")
	return c
}
