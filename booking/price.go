package booking

import "bus-ticket-cli/model"

const (
	ServiceChargePerSeat = 20
	PGWChargePerSeat     = 28
)

// Breakdown is the price of a selection. All amounts are whole Taka.
type Breakdown struct {
	Seats         int
	SeatFare      int
	ServiceCharge int
	PGWCharge     int
	Total         int
}

// ComputePrice prices a selection at perSeatPrice per seat plus the flat
// service and payment gateway charges.
func ComputePrice(selection []model.Seat, perSeatPrice int) Breakdown {
	n := len(selection)
	b := Breakdown{
		Seats:         n,
		SeatFare:      n * perSeatPrice,
		ServiceCharge: n * ServiceChargePerSeat,
		PGWCharge:     n * PGWChargePerSeat,
	}
	b.Total = b.SeatFare + b.ServiceCharge + b.PGWCharge
	return b
}
