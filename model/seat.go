package model

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
	SeatSold      SeatStatus = "sold"
	SeatSelected  SeatStatus = "selected"
)

// Taken reports whether the status is fixed by the inventory and cannot be selected.
func (s SeatStatus) Taken() bool {
	return s == SeatBooked || s == SeatSold
}

type Seat struct {
	Id     string     `json:"id" yaml:"id"`
	Number string     `json:"number" yaml:"number"`
	Row    int        `json:"row" yaml:"row"`
	Status SeatStatus `json:"status" yaml:"status"`
}

type BoardingPoint struct {
	Id       string `json:"id" yaml:"id"`
	Time     string `json:"time" yaml:"time"`
	Location string `json:"location" yaml:"location"`
}

type BookingDetails struct {
	BoardingPoint string `json:"boardingPoint"`
	DroppingPoint string `json:"droppingPoint"`
	Name          string `json:"name"`
	MobileNumber  string `json:"mobileNumber"`
	SelectedSeats []Seat `json:"selectedSeats"`
}
