package service

import (
	"fmt"

	"bus-ticket-cli/model"
)

const (
	defaultSeatCount   = 40
	defaultSeatsPerRow = 4
)

var defaultCities = []string{
	"Dhaka",
	"Rajshahi",
	"Barisal",
	"Cox's Bazar",
	"Chittagong",
	"Chapainawabganj",
	"Sylhet",
	"Khulna",
}

var defaultTrending = []model.Route{
	{From: "Dhaka", To: "Rajshahi"},
	{From: "Dhaka", To: "Barisal"},
	{From: "Dhaka", To: "Cox's Bazar"},
	{From: "Dhaka", To: "Chittagong"},
	{From: "Dhaka", To: "Chapainawabganj"},
}

var defaultBuses = []model.Bus{
	{
		Id:          "1",
		CompanyName: "National Travels",
		BusName:     "AC Sleeper",
		StartTime:   "6:00 AM",
		ArrivalTime: "1:30 PM",
		SeatsLeft:   36,
		TotalSeats:  40,
		Price:       700,
		From:        "Dhaka",
		To:          "Rajshahi",
	},
	{
		Id:          "2",
		CompanyName: "Hanif Enterprise",
		BusName:     "AC Business",
		StartTime:   "6:00 AM",
		ArrivalTime: "1:15 PM",
		SeatsLeft:   40,
		TotalSeats:  40,
		Price:       700,
		From:        "Dhaka",
		To:          "Rajshahi",
	},
	{
		Id:          "3",
		CompanyName: "Grameen Travels",
		BusName:     "Non-AC Seater",
		StartTime:   "6:01 AM",
		ArrivalTime: "12:51 PM",
		SeatsLeft:   36,
		TotalSeats:  40,
		Price:       700,
		From:        "Dhaka",
		To:          "Rajshahi",
	},
	{
		Id:          "4",
		CompanyName: "Shyamoli Paribahan",
		BusName:     "AC Sleeper",
		StartTime:   "7:30 AM",
		ArrivalTime: "2:00 PM",
		SeatsLeft:   15,
		TotalSeats:  40,
		Price:       750,
		From:        "Dhaka",
		To:          "Rajshahi",
	},
}

var defaultBoardingPoints = []model.BoardingPoint{
	{Id: "bp1", Time: "06:00 AM", Location: "Kallyanpur Counter"},
	{Id: "bp2", Time: "06:30 AM", Location: "Gabtoli Counter"},
	{Id: "bp3", Time: "07:00 AM", Location: "Mohakhali Counter"},
}

var defaultDroppingPoints = []model.BoardingPoint{
	{Id: "dp1", Time: "10:30 AM", Location: "Baneshore Counter"},
	{Id: "dp2", Time: "12:30 PM", Location: "Rajshahi Counter"},
	{Id: "dp3", Time: "01:00 PM", Location: "Rajabari Counter"},
}

// MockSeats builds the demo inventory: every 7th seat (from the first) is
// booked, every 11th of the rest is sold.
func MockSeats(count int, perRow int) []model.Seat {
	if perRow <= 0 {
		perRow = defaultSeatsPerRow
	}
	seats := make([]model.Seat, 0, count)
	for i := 0; i < count; i++ {
		status := model.SeatAvailable
		switch {
		case i%7 == 0:
			status = model.SeatBooked
		case i%11 == 0:
			status = model.SeatSold
		}
		seats = append(seats, model.Seat{
			Id:     fmt.Sprintf("seat-%d", i+1),
			Number: fmt.Sprintf("%d", i+1),
			Row:    i/perRow + 1,
			Status: status,
		})
	}
	return seats
}

// DefaultCatalogData is the built-in demo catalog.
func DefaultCatalogData() CatalogData {
	return CatalogData{
		Cities:         append([]string{}, defaultCities...),
		Trending:       append([]model.Route{}, defaultTrending...),
		Buses:          append([]model.Bus{}, defaultBuses...),
		DefaultSeats:   MockSeats(defaultSeatCount, defaultSeatsPerRow),
		BoardingPoints: append([]model.BoardingPoint{}, defaultBoardingPoints...),
		DroppingPoints: append([]model.BoardingPoint{}, defaultDroppingPoints...),
	}
}
