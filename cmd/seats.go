package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"bus-ticket-cli/booking"
	"bus-ticket-cli/model"
)

func newSeatsCmd(opts *rootOptions) *cobra.Command {
	var busID string
	c := &cobra.Command{
		Use:   "seats",
		Short: "Show the seat plan of a bus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := prepare(cmd, opts, false)
			if err != nil {
				return err
			}
			defer e.close()

			ctx := cmd.Context()
			bus, err := e.catalog.GetBus(ctx, busID)
			if err != nil {
				return err
			}
			seats, err := e.catalog.GetSeatMap(ctx, busID)
			if err != nil {
				return err
			}
			boarding, err := e.catalog.GetBoardingPoints(ctx, busID)
			if err != nil {
				return err
			}
			dropping, err := e.catalog.GetDroppingPoints(ctx, busID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s • %s • %s → %s • %s per seat\n", bus.CompanyName, bus.BusName, bus.StartTime, bus.ArrivalTime, money(e.cfg.Currency, bus.Price))
			session := booking.NewSession(seats, bus.Price, e.logger)
			renderSeatRows(cmd, session.Rows())
			fmt.Fprintln(out, "Legend: [] available • XX booked • ## sold")
			renderPoints(cmd, boarding, dropping)
			return nil
		},
	}
	c.Flags().StringVar(&busID, "bus", "", "bus id from the search results")
	_ = c.MarkFlagRequired("bus")
	return c
}

func renderSeatRows(cmd *cobra.Command, rows [][]model.Seat) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	for i, row := range rows {
		cells := table.Row{fmt.Sprintf("Row %d", i+1)}
		for _, seat := range row {
			cells = append(cells, fmt.Sprintf("%s %s", seat.Number, statusToken(seat.Status)))
		}
		t.AppendRow(cells)
	}
	t.Render()
}

func statusToken(status model.SeatStatus) string {
	switch status {
	case model.SeatBooked:
		return "XX"
	case model.SeatSold:
		return "##"
	case model.SeatSelected:
		return "<>"
	default:
		return "[]"
	}
}

func renderPoints(cmd *cobra.Command, boarding []model.BoardingPoint, dropping []model.BoardingPoint) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Kind", "ID", "Time", "Location"})
	for _, p := range boarding {
		t.AppendRow(table.Row{"Boarding", p.Id, p.Time, p.Location})
	}
	t.AppendSeparator()
	for _, p := range dropping {
		t.AppendRow(table.Row{"Dropping", p.Id, p.Time, p.Location})
	}
	t.Render()
}
