package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bus-ticket-cli/model"
)

func journeyDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return date
}

func TestSearchBuses_MatchesRouteAndDate(t *testing.T) {
	catalog := DefaultCatalog(nil)

	buses, err := catalog.SearchBuses(context.Background(), SearchQuery{
		From: "Dhaka",
		To:   "Rajshahi",
		Date: journeyDate(t, "2025-10-23"),
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(buses) != 4 {
		t.Fatalf("expected 4 buses, got %d", len(buses))
	}
	if buses[0].CompanyName != "National Travels" {
		t.Fatalf("expected catalog order, got %s first", buses[0].CompanyName)
	}

	summary := Summarize(buses)
	if summary.SeatsAvailable != 36+40+36+15 {
		t.Fatalf("unexpected seats available: %d", summary.SeatsAvailable)
	}
	if got := summary.String(); got != "Total Buses Found: 4 | Total Seats Available: 127" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestSearchBuses_NormalizesCityNames(t *testing.T) {
	catalog := DefaultCatalog(nil)

	buses, err := catalog.SearchBuses(context.Background(), SearchQuery{
		From: "  dhaka ",
		To:   "RAJSHAHI",
		Date: journeyDate(t, "2025-10-23"),
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(buses) != 4 {
		t.Fatalf("expected 4 buses, got %d", len(buses))
	}
}

func TestSearchBuses_NoMatch(t *testing.T) {
	catalog := DefaultCatalog(nil)
	ctx := context.Background()

	cases := []SearchQuery{
		{From: "Rajshahi", To: "Dhaka", Date: journeyDate(t, "2025-10-23")},
		{From: "Dhaka", To: "Sylhet", Date: journeyDate(t, "2025-10-23")},
	}
	for _, q := range cases {
		buses, err := catalog.SearchBuses(ctx, q)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if len(buses) != 0 {
			t.Fatalf("expected no buses for %+v, got %d", q, len(buses))
		}
	}
}

func TestSearchBuses_Incomplete(t *testing.T) {
	catalog := DefaultCatalog(nil)

	_, err := catalog.SearchBuses(context.Background(), SearchQuery{From: "Dhaka", To: "Rajshahi"})
	if err != ErrIncompleteSearch {
		t.Fatalf("expected ErrIncompleteSearch, got %v", err)
	}
	_, err = catalog.SearchBuses(context.Background(), SearchQuery{From: " ", To: "Rajshahi", Date: time.Now()})
	if err != ErrIncompleteSearch {
		t.Fatalf("expected ErrIncompleteSearch, got %v", err)
	}
}

func TestSearchBuses_CanceledContext(t *testing.T) {
	catalog := DefaultCatalog(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := catalog.SearchBuses(ctx, SearchQuery{From: "Dhaka", To: "Rajshahi", Date: time.Now()}); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetSeatMap_DefaultInventory(t *testing.T) {
	catalog := DefaultCatalog(nil)

	seats, err := catalog.GetSeatMap(context.Background(), "1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(seats) != 40 {
		t.Fatalf("expected 40 seats, got %d", len(seats))
	}

	want := map[string]model.SeatStatus{
		"seat-1":  model.SeatBooked,
		"seat-2":  model.SeatAvailable,
		"seat-8":  model.SeatBooked,
		"seat-12": model.SeatSold,
		"seat-23": model.SeatSold,
		"seat-40": model.SeatAvailable,
	}
	for _, seat := range seats {
		if status, ok := want[seat.Id]; ok && seat.Status != status {
			t.Fatalf("seat %s: expected %s, got %s", seat.Id, status, seat.Status)
		}
	}
	if seats[4].Row != 2 || seats[39].Row != 10 {
		t.Fatalf("unexpected rows: %d, %d", seats[4].Row, seats[39].Row)
	}

	seats[1].Status = model.SeatSold
	again, _ := catalog.GetSeatMap(context.Background(), "1")
	if again[1].Status != model.SeatAvailable {
		t.Fatal("expected catalog inventory to be copied")
	}
}

func TestGetBus_NotFound(t *testing.T) {
	catalog := DefaultCatalog(nil)

	_, err := catalog.GetBus(context.Background(), "99")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := catalog.GetBoardingPoints(context.Background(), "99"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	points, err := catalog.GetDroppingPoints(context.Background(), "4")
	if err != nil || len(points) != 3 {
		t.Fatalf("unexpected dropping points: %+v, %v", points, err)
	}
}

func TestLoadCatalog_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
buses:
  - id: b1
    companyName: Green Line
    busName: Scania
    startTime: "10:00 PM"
    arrivalTime: "6:00 AM"
    seatsLeft: 2
    totalSeats: 3
    price: 1200
    from: Dhaka
    to: Sylhet
    journeyDate: "2025-11-01"
seats:
  b1:
    - {id: a1, number: A1, row: 1, status: available}
    - {id: a2, number: A2, row: 1, status: sold}
    - {id: a3, number: A3, row: 1, status: available}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	catalog, err := LoadCatalog(path, nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	buses, err := catalog.SearchBuses(context.Background(), SearchQuery{From: "Dhaka", To: "Sylhet", Date: journeyDate(t, "2025-11-01")})
	if err != nil || len(buses) != 1 {
		t.Fatalf("unexpected search result: %+v, %v", buses, err)
	}
	buses, err = catalog.SearchBuses(context.Background(), SearchQuery{From: "Dhaka", To: "Sylhet", Date: journeyDate(t, "2025-11-02")})
	if err != nil || len(buses) != 0 {
		t.Fatalf("expected no bus on another date, got %+v, %v", buses, err)
	}
	seats, err := catalog.GetSeatMap(context.Background(), "b1")
	if err != nil || len(seats) != 3 || seats[1].Status != model.SeatSold {
		t.Fatalf("unexpected seats: %+v, %v", seats, err)
	}
	if len(catalog.Cities()) != 8 {
		t.Fatalf("expected default cities, got %v", catalog.Cities())
	}
}

func TestLoadCatalog_Invalid(t *testing.T) {
	cases := map[string]string{
		"duplicate bus": "buses:\n  - {id: x}\n  - {id: x}\n",
		"bad status":    "buses:\n  - {id: x}\nseats:\n  x:\n    - {id: s, status: selected}\n",
		"unknown bus":   "seats:\n  y:\n    - {id: s, status: available}\n",
		"bad date":      "buses:\n  - {id: x, journeyDate: tomorrow}\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write catalog: %v", err)
			}
			_, err := LoadCatalog(path, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), path) {
				t.Fatalf("expected path in error, got %v", err)
			}
		})
	}
}
