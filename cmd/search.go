package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"bus-ticket-cli/model"
	"bus-ticket-cli/service"
	"bus-ticket-cli/store"
)

const noBusesMessage = "No buses found for this route. Please try a different search."

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var from, to, date string
	c := &cobra.Command{
		Use:   "search",
		Short: "Find buses for a route",
		Long:  `Find the buses running between two cities on a journey date (today by default).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := prepare(cmd, opts, false)
			if err != nil {
				return err
			}
			defer e.close()

			if from == "" {
				from = e.cfg.Search.From
			}
			if to == "" {
				to = e.cfg.Search.To
			}
			day := time.Now()
			if date != "" {
				if day, err = parseDate(date); err != nil {
					return err
				}
			}

			buses, err := e.catalog.SearchBuses(cmd.Context(), service.SearchQuery{From: from, To: to, Date: day})
			if err != nil {
				return err
			}
			if e.cfg.History.Enabled {
				if err := store.RememberRoute(model.Route{From: from, To: to}); err != nil {
					e.logger.Warn("remember route", "error", err)
				}
			}

			out := cmd.OutOrStdout()
			if len(buses) == 0 {
				fmt.Fprintln(out, noBusesMessage)
				return nil
			}
			renderBuses(cmd, buses, e.cfg.Currency)
			fmt.Fprintln(out, service.Summarize(buses))
			return nil
		},
	}
	c.Flags().StringVar(&from, "from", "", "departure city")
	c.Flags().StringVar(&to, "to", "", "destination city")
	c.Flags().StringVar(&date, "date", "", "journey date (YYYY-MM-DD, default today)")
	return c
}

func renderBuses(cmd *cobra.Command, buses []model.Bus, currency string) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"ID", "Company", "Bus", "Departure", "Arrival", "Seats Left", "Fare"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 24},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	for _, bus := range buses {
		seats := fmt.Sprintf("%d", bus.SeatsLeft)
		if bus.SeatsLeft <= 10 {
			seats += " (few left)"
		}
		t.AppendRow(table.Row{
			bus.Id,
			bus.CompanyName,
			bus.BusName,
			bus.StartTime,
			bus.ArrivalTime,
			seats,
			money(currency, bus.Price),
		})
	}
	t.Render()
}

func money(currency string, amount int) string {
	return strings.TrimSpace(currency) + fmt.Sprintf("%d", amount)
}
