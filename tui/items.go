package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"bus-ticket-cli/model"
)

// fewSeatsLeft is the threshold below which a result highlights its
// remaining seats.
const fewSeatsLeft = 10

type routeItem struct {
	route  model.Route
	recent bool
}

func (r routeItem) Title() string {
	return r.route.String()
}

func (r routeItem) Description() string {
	if r.recent {
		return "Recent search"
	}
	return "Trending"
}

func (r routeItem) FilterValue() string {
	return strings.ToLower(r.route.From + " " + r.route.To)
}

type cityItem struct {
	name string
}

func (c cityItem) Title() string {
	return c.name
}

func (c cityItem) Description() string {
	return "City"
}

func (c cityItem) FilterValue() string {
	return strings.ToLower(c.name)
}

type dateItem struct {
	date time.Time
}

func (d dateItem) Title() string {
	if isSameDay(d.date, time.Now()) {
		return fmt.Sprintf("%s • %s (Today)", d.date.Format("Mon"), d.date.Format("02 Jan"))
	}
	return fmt.Sprintf("%s • %s", d.date.Format("Mon"), d.date.Format("02 Jan"))
}

func (d dateItem) Description() string {
	return d.date.Format(time.DateOnly)
}

func (d dateItem) FilterValue() string {
	return d.Title()
}

type busItem struct {
	bus      model.Bus
	currency string
}

func (b busItem) Title() string {
	return fmt.Sprintf("%s • %s", b.bus.CompanyName, b.bus.BusName)
}

func (b busItem) Description() string {
	seats := fmt.Sprintf("%d seats left", b.bus.SeatsLeft)
	if b.bus.SeatsLeft <= fewSeatsLeft {
		seats = fmt.Sprintf("Only %d seats left!", b.bus.SeatsLeft)
	}
	return strings.Join([]string{
		fmt.Sprintf("%s → %s", b.bus.StartTime, b.bus.ArrivalTime),
		seats,
		formatMoney(b.currency, b.bus.Price),
	}, " • ")
}

func (b busItem) FilterValue() string {
	return strings.ToLower(b.bus.CompanyName + " " + b.bus.BusName)
}

// buildFromItems lists recent routes, then trending routes not already
// recent, then every city.
func buildFromItems(recent []model.Route, trending []model.Route, cities []string) []list.Item {
	items := make([]list.Item, 0, len(recent)+len(trending)+len(cities))
	seen := map[string]bool{}
	for _, route := range recent {
		seen[routeKey(route)] = true
		items = append(items, routeItem{route: route, recent: true})
	}
	for _, route := range trending {
		if seen[routeKey(route)] {
			continue
		}
		items = append(items, routeItem{route: route})
	}
	for _, city := range cities {
		items = append(items, cityItem{name: city})
	}
	return items
}

func routeKey(route model.Route) string {
	return strings.ToLower(strings.TrimSpace(route.From)) + "|" + strings.ToLower(strings.TrimSpace(route.To))
}

// buildToItems lists every city except the departure city.
func buildToItems(cities []string, from string) []list.Item {
	items := make([]list.Item, 0, len(cities))
	for _, city := range cities {
		if strings.EqualFold(strings.TrimSpace(city), strings.TrimSpace(from)) {
			continue
		}
		items = append(items, cityItem{name: city})
	}
	return items
}

func buildDateItems(base time.Time) []list.Item {
	start := truncateDate(base)
	items := make([]list.Item, 0, 5)
	for i := 0; i < 5; i++ {
		items = append(items, dateItem{date: start.AddDate(0, 0, i)})
	}
	return items
}

func buildBusItems(buses []model.Bus, currency string) []list.Item {
	items := make([]list.Item, 0, len(buses))
	for _, bus := range buses {
		items = append(items, busItem{bus: bus, currency: currency})
	}
	return items
}

func formatMoney(currency string, amount int) string {
	return fmt.Sprintf("%s%d", currency, amount)
}

func formatPoint(point model.BoardingPoint) string {
	return fmt.Sprintf("[%s] %s", point.Time, point.Location)
}
