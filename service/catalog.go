package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"bus-ticket-cli/model"
)

var (
	// ErrBusNotFound is returned when a bus id is not in the catalog.
	ErrBusNotFound = errors.New("bus not found")

	// ErrIncompleteSearch is returned when from, to or the journey date is missing.
	ErrIncompleteSearch = errors.New("from, to and journey date are required")
)

// IsNotFound reports whether the error represents a missing bus.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBusNotFound)
}

// CatalogData is the on-disk shape of a catalog file.
type CatalogData struct {
	Cities   []string      `yaml:"cities"`
	Trending []model.Route `yaml:"trending"`
	Buses    []model.Bus   `yaml:"buses"`
	// Seats holds per-bus inventories keyed by bus id. Buses without an
	// entry use DefaultSeats.
	Seats          map[string][]model.Seat `yaml:"seats"`
	DefaultSeats   []model.Seat            `yaml:"defaultSeats"`
	BoardingPoints []model.BoardingPoint   `yaml:"boardingPoints"`
	DroppingPoints []model.BoardingPoint   `yaml:"droppingPoints"`
}

// Catalog serves buses, seat inventories and boarding points from memory.
type Catalog struct {
	data   CatalogData
	byID   map[string]int
	logger *slog.Logger
}

// SearchQuery selects buses for a route on a journey date.
type SearchQuery struct {
	From string
	To   string
	Date time.Time
}

// SearchSummary is the header line of a result list.
type SearchSummary struct {
	Buses          int
	SeatsAvailable int
}

// NewCatalog validates data and wraps it. If logger is nil logs are discarded.
func NewCatalog(data CatalogData, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := validateCatalog(data); err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(data.Buses))
	for i, bus := range data.Buses {
		byID[bus.Id] = i
	}
	if len(data.DefaultSeats) == 0 {
		data.DefaultSeats = MockSeats(defaultSeatCount, defaultSeatsPerRow)
	}
	return &Catalog{data: data, byID: byID, logger: logger}, nil
}

// DefaultCatalog returns the built-in demo catalog.
func DefaultCatalog(logger *slog.Logger) *Catalog {
	c, err := NewCatalog(DefaultCatalogData(), logger)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// LoadCatalog reads a YAML catalog file. Sections left empty fall back to
// the built-in data.
func LoadCatalog(path string, logger *slog.Logger) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var data CatalogData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	defaults := DefaultCatalogData()
	if len(data.Cities) == 0 {
		data.Cities = defaults.Cities
	}
	if len(data.Trending) == 0 {
		data.Trending = defaults.Trending
	}
	if len(data.BoardingPoints) == 0 {
		data.BoardingPoints = defaults.BoardingPoints
	}
	if len(data.DroppingPoints) == 0 {
		data.DroppingPoints = defaults.DroppingPoints
	}

	c, err := NewCatalog(data, logger)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	c.logger.Debug("catalog loaded", "path", path, "buses", len(data.Buses))
	return c, nil
}

func validateCatalog(data CatalogData) error {
	seen := map[string]bool{}
	for _, bus := range data.Buses {
		if strings.TrimSpace(bus.Id) == "" {
			return errors.New("bus id is required")
		}
		if seen[bus.Id] {
			return fmt.Errorf("duplicate bus id %q", bus.Id)
		}
		seen[bus.Id] = true
		if bus.Price < 0 {
			return fmt.Errorf("bus %s: negative price", bus.Id)
		}
		if bus.JourneyDate != "" {
			if _, err := time.Parse(time.DateOnly, bus.JourneyDate); err != nil {
				return fmt.Errorf("bus %s: journey date: %w", bus.Id, err)
			}
		}
	}
	if err := validateSeats(data.DefaultSeats); err != nil {
		return fmt.Errorf("default seats: %w", err)
	}
	for busID, seats := range data.Seats {
		if !seen[busID] {
			return fmt.Errorf("seats listed for unknown bus %q", busID)
		}
		if err := validateSeats(seats); err != nil {
			return fmt.Errorf("bus %s seats: %w", busID, err)
		}
	}
	return nil
}

func validateSeats(seats []model.Seat) error {
	ids := map[string]bool{}
	for _, seat := range seats {
		if seat.Id == "" {
			return errors.New("seat id is required")
		}
		if ids[seat.Id] {
			return fmt.Errorf("duplicate seat id %q", seat.Id)
		}
		ids[seat.Id] = true
		switch seat.Status {
		case model.SeatAvailable, model.SeatBooked, model.SeatSold:
		default:
			return fmt.Errorf("seat %s: invalid status %q", seat.Id, seat.Status)
		}
	}
	return nil
}

func (c *Catalog) Cities() []string {
	return append([]string{}, c.data.Cities...)
}

func (c *Catalog) TrendingRoutes() []model.Route {
	return append([]model.Route{}, c.data.Trending...)
}

// SearchBuses returns the buses running the route on the query date, in
// catalog order. City names match case-insensitively after trimming. A bus
// without a journey date runs every day.
func (c *Catalog) SearchBuses(ctx context.Context, q SearchQuery) ([]model.Bus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	from := strings.TrimSpace(q.From)
	to := strings.TrimSpace(q.To)
	if from == "" || to == "" || q.Date.IsZero() {
		return nil, ErrIncompleteSearch
	}
	date := q.Date.Format(time.DateOnly)

	var results []model.Bus
	for _, bus := range c.data.Buses {
		if !strings.EqualFold(strings.TrimSpace(bus.From), from) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(bus.To), to) {
			continue
		}
		if bus.JourneyDate != "" && bus.JourneyDate != date {
			continue
		}
		results = append(results, bus)
	}
	c.logger.Debug("bus search", "from", from, "to", to, "date", date, "results", len(results))
	return results, nil
}

// GetBus fetches a bus by id.
func (c *Catalog) GetBus(ctx context.Context, busID string) (model.Bus, error) {
	if err := ctx.Err(); err != nil {
		return model.Bus{}, err
	}
	i, ok := c.byID[busID]
	if !ok {
		return model.Bus{}, fmt.Errorf("%w: %q", ErrBusNotFound, busID)
	}
	return c.data.Buses[i], nil
}

// GetSeatMap returns a copy of the seat inventory for a bus.
func (c *Catalog) GetSeatMap(ctx context.Context, busID string) ([]model.Seat, error) {
	if _, err := c.GetBus(ctx, busID); err != nil {
		return nil, err
	}
	seats, ok := c.data.Seats[busID]
	if !ok {
		seats = c.data.DefaultSeats
	}
	return append([]model.Seat{}, seats...), nil
}

// GetBoardingPoints returns the boarding points for a bus.
func (c *Catalog) GetBoardingPoints(ctx context.Context, busID string) ([]model.BoardingPoint, error) {
	if _, err := c.GetBus(ctx, busID); err != nil {
		return nil, err
	}
	return append([]model.BoardingPoint{}, c.data.BoardingPoints...), nil
}

// GetDroppingPoints returns the dropping points for a bus.
func (c *Catalog) GetDroppingPoints(ctx context.Context, busID string) ([]model.BoardingPoint, error) {
	if _, err := c.GetBus(ctx, busID); err != nil {
		return nil, err
	}
	return append([]model.BoardingPoint{}, c.data.DroppingPoints...), nil
}

// Summarize counts buses and the seats left across them.
func Summarize(buses []model.Bus) SearchSummary {
	s := SearchSummary{Buses: len(buses)}
	for _, bus := range buses {
		s.SeatsAvailable += bus.SeatsLeft
	}
	return s
}

func (s SearchSummary) String() string {
	return fmt.Sprintf("Total Buses Found: %d | Total Seats Available: %d", s.Buses, s.SeatsAvailable)
}
