package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"bus-ticket-cli/booking"
	"bus-ticket-cli/model"
)

// userError reports an engine failure with the message shown to passengers.
type userError struct {
	err error
}

func (e userError) Error() string {
	return booking.UserMessage(e.err)
}

func (e userError) Unwrap() error {
	return e.err
}

type bookOptions struct {
	busID  string
	seats  []string
	form   booking.Form
	prompt bool
}

func newBookCmd(opts *rootOptions) *cobra.Command {
	var o bookOptions
	c := &cobra.Command{
		Use:   "book",
		Short: "Book seats on a bus",
		Long: `Select seats on a bus and confirm a booking.

Seats are toggled in the order given, by seat id or seat number. With
--prompt, missing passenger details are asked for interactively.`,
		Example: `  bus-ticket-cli book --bus 1 --seat 2 --seat 3 --boarding bp1 --dropping dp2 --name "Rahim Uddin" --mobile 01712345678`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := prepare(cmd, opts, o.prompt)
			if err != nil {
				return err
			}
			defer e.close()
			return runBook(cmd, e, o)
		},
	}
	c.Flags().StringVar(&o.busID, "bus", "", "bus id from the search results")
	c.Flags().StringArrayVar(&o.seats, "seat", nil, "seat id or number, repeatable")
	c.Flags().StringVar(&o.form.BoardingPoint, "boarding", "", "boarding point id")
	c.Flags().StringVar(&o.form.DroppingPoint, "dropping", "", "dropping point id")
	c.Flags().StringVar(&o.form.Name, "name", "", "passenger full name")
	c.Flags().StringVar(&o.form.Mobile, "mobile", "", "11-digit mobile number")
	c.Flags().BoolVar(&o.prompt, "prompt", false, "ask for missing passenger details")
	_ = c.MarkFlagRequired("bus")
	return c
}

func runBook(cmd *cobra.Command, e *env, o bookOptions) error {
	ctx := cmd.Context()
	bus, err := e.catalog.GetBus(ctx, o.busID)
	if err != nil {
		return err
	}
	seats, err := e.catalog.GetSeatMap(ctx, o.busID)
	if err != nil {
		return err
	}
	boarding, err := e.catalog.GetBoardingPoints(ctx, o.busID)
	if err != nil {
		return err
	}
	dropping, err := e.catalog.GetDroppingPoints(ctx, o.busID)
	if err != nil {
		return err
	}

	session := booking.NewSession(seats, bus.Price, e.logger.With("bus", bus.Id))
	for _, ref := range o.seats {
		if _, err := session.ToggleByID(resolveSeat(seats, ref)); err != nil {
			return userError{err: err}
		}
	}

	form := o.form
	if o.prompt {
		if err := promptMissing(&form, boarding, dropping); err != nil {
			return err
		}
	}
	if err := checkPoint("boarding", form.BoardingPoint, boarding); err != nil {
		return err
	}
	if err := checkPoint("dropping", form.DroppingPoint, dropping); err != nil {
		return err
	}

	details, err := session.Submit(form)
	if err != nil {
		return userError{err: err}
	}
	renderBooking(cmd, bus, details, boarding, dropping)
	renderPrice(cmd, session.Price(), bus.Price, e.cfg.Currency)
	fmt.Fprintln(cmd.OutOrStdout(), "Booking confirmed successfully!")
	return nil
}

// resolveSeat maps a seat number to its id. Unknown references are passed
// through so the session reports them.
func resolveSeat(seats []model.Seat, ref string) string {
	ref = strings.TrimSpace(ref)
	for _, seat := range seats {
		if seat.Id == ref {
			return seat.Id
		}
	}
	for _, seat := range seats {
		if seat.Number == ref {
			return seat.Id
		}
	}
	return ref
}

func checkPoint(kind string, id string, points []model.BoardingPoint) error {
	if id == "" {
		return nil
	}
	for _, p := range points {
		if p.Id == id {
			return nil
		}
	}
	return fmt.Errorf("unknown %s point %q", kind, id)
}

func promptMissing(form *booking.Form, boarding []model.BoardingPoint, dropping []model.BoardingPoint) error {
	var err error
	if form.BoardingPoint == "" {
		if form.BoardingPoint, err = promptPoint("Boarding Point", boarding); err != nil {
			return err
		}
	}
	if form.DroppingPoint == "" {
		if form.DroppingPoint, err = promptPoint("Dropping Point", dropping); err != nil {
			return err
		}
	}
	if form.Name == "" {
		if form.Name, err = promptText("Full Name"); err != nil {
			return err
		}
	}
	if form.Mobile == "" {
		if form.Mobile, err = promptText("Mobile Number"); err != nil {
			return err
		}
	}
	return nil
}

func promptPoint(label string, points []model.BoardingPoint) (string, error) {
	if len(points) == 0 {
		return "", nil
	}
	items := make([]string, 0, len(points))
	for _, p := range points {
		items = append(items, fmt.Sprintf("[%s] %s", p.Time, p.Location))
	}
	selectPoint := promptui.Select{
		Label: label,
		Items: items,
		Size:  10,
	}
	i, _, err := selectPoint.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	return points[i].Id, nil
}

func promptText(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New(booking.UserMessage(booking.ErrMissingField))
			}
			return nil
		},
	}
	value, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	return value, nil
}

func renderBooking(cmd *cobra.Command, bus model.Bus, details model.BookingDetails, boarding []model.BoardingPoint, dropping []model.BoardingPoint) {
	numbers := make([]string, 0, len(details.SelectedSeats))
	for _, seat := range details.SelectedSeats {
		numbers = append(numbers, seat.Number)
	}
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetTitle("Booking Details")
	t.AppendRows([]table.Row{
		{"Bus", bus.CompanyName + " • " + bus.BusName},
		{"Departure", bus.StartTime},
		{"Seats", strings.Join(numbers, ", ")},
		{"Boarding", pointName(boarding, details.BoardingPoint)},
		{"Dropping", pointName(dropping, details.DroppingPoint)},
		{"Passenger", details.Name},
		{"Mobile", details.MobileNumber},
	})
	t.Render()
}

func renderPrice(cmd *cobra.Command, price booking.Breakdown, seatPrice int, currency string) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Item", "Amount"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.AppendRows([]table.Row{
		{fmt.Sprintf("Seat Fare (%s × %d)", money(currency, seatPrice), price.Seats), money(currency, price.SeatFare)},
		{"Service Charge", money(currency, price.ServiceCharge)},
		{"PGW Charge", money(currency, price.PGWCharge)},
	})
	t.AppendFooter(table.Row{"Total", money(currency, price.Total)})
	t.Render()
}

func pointName(points []model.BoardingPoint, id string) string {
	for _, p := range points {
		if p.Id == id {
			return fmt.Sprintf("[%s] %s", p.Time, p.Location)
		}
	}
	return id
}
