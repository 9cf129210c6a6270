// Package booking implements seat selection and pricing for one seat plan
// viewing. A Session is created when the seat plan opens and dropped when
// the passenger leaves it or completes a booking.
package booking

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"bus-ticket-cli/model"

	"github.com/google/uuid"
)

// Session tracks the seats a passenger has chosen out of a fixed inventory.
// It is not safe for concurrent use; the caller owns it for the lifetime of
// one seat plan.
type Session struct {
	id        string
	inventory []model.Seat
	index     map[string]int
	selection []model.Seat
	seatPrice int
	logger    *slog.Logger
}

// NewSession starts an empty selection over inventory. The inventory is
// copied and never modified. When an ID appears twice the first seat wins.
func NewSession(inventory []model.Seat, seatPrice int, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	seats := make([]model.Seat, 0, len(inventory))
	index := make(map[string]int, len(inventory))
	for _, seat := range inventory {
		if _, dup := index[seat.Id]; dup {
			continue
		}
		index[seat.Id] = len(seats)
		seats = append(seats, seat)
	}
	id := uuid.NewString()
	return &Session{
		id:        id,
		inventory: seats,
		index:     index,
		seatPrice: seatPrice,
		logger:    logger.With("session", id),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) SeatPrice() int {
	return s.seatPrice
}

// Toggle selects an available seat or deselects a selected one and returns
// the new selection. Booked and sold seats fail with ErrSeatUnavailable and
// leave the selection untouched.
func (s *Session) Toggle(seat model.Seat) ([]model.Seat, error) {
	return s.ToggleByID(seat.Id)
}

// ToggleByID is Toggle keyed by seat ID.
func (s *Session) ToggleByID(id string) ([]model.Seat, error) {
	i, ok := s.index[id]
	if !ok {
		return s.Selection(), fmt.Errorf("%w: %q", ErrUnknownSeat, id)
	}
	base := s.inventory[i]
	if base.Status.Taken() {
		s.logger.Debug("toggle rejected", "seat", id, "status", base.Status)
		return s.Selection(), fmt.Errorf("%w: seat %s is %s", ErrSeatUnavailable, base.Number, base.Status)
	}

	// Build a new slice so selections handed out earlier stay unchanged.
	next := make([]model.Seat, 0, len(s.selection)+1)
	removed := false
	for _, selected := range s.selection {
		if selected.Id == id {
			removed = true
			continue
		}
		next = append(next, selected)
	}
	if !removed {
		seat := base
		seat.Status = model.SeatSelected
		next = append(next, seat)
	}
	s.selection = next

	s.logger.Debug("seat toggled", "seat", id, "selected", !removed, "count", len(next))
	return s.Selection(), nil
}

// Selection returns a copy of the chosen seats in selection order.
func (s *Session) Selection() []model.Seat {
	out := make([]model.Seat, len(s.selection))
	copy(out, s.selection)
	return out
}

func (s *Session) Count() int {
	return len(s.selection)
}

func (s *Session) IsSelected(id string) bool {
	for _, seat := range s.selection {
		if seat.Id == id {
			return true
		}
	}
	return false
}

// EffectiveStatus is the status to render for seat given this selection.
func (s *Session) EffectiveStatus(seat model.Seat) model.SeatStatus {
	base := seat.Status
	if i, ok := s.index[seat.Id]; ok {
		base = s.inventory[i].Status
	}
	return EffectiveStatus(base, s.IsSelected(seat.Id))
}

// EffectiveStatus overlays selection membership on a base status.
func EffectiveStatus(base model.SeatStatus, selected bool) model.SeatStatus {
	if selected {
		return model.SeatSelected
	}
	return base
}

// Seats returns the inventory in its original order with effective statuses.
func (s *Session) Seats() []model.Seat {
	out := make([]model.Seat, len(s.inventory))
	for i, seat := range s.inventory {
		seat.Status = EffectiveStatus(seat.Status, s.IsSelected(seat.Id))
		out[i] = seat
	}
	return out
}

// Rows groups Seats by row number, rows ascending.
func (s *Session) Rows() [][]model.Seat {
	byRow := map[int][]model.Seat{}
	for _, seat := range s.Seats() {
		byRow[seat.Row] = append(byRow[seat.Row], seat)
	}
	keys := make([]int, 0, len(byRow))
	for k := range byRow {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	rows := make([][]model.Seat, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, byRow[k])
	}
	return rows
}

// Price computes the breakdown for the current selection.
func (s *Session) Price() Breakdown {
	return ComputePrice(s.selection, s.seatPrice)
}

// Submit validates form against the current selection. The selection is
// kept; the caller drops the session after a successful booking.
func (s *Session) Submit(form Form) (model.BookingDetails, error) {
	details, err := ValidateBooking(form, s.selection)
	if err != nil {
		s.logger.Info("booking rejected", "error", err)
		return model.BookingDetails{}, err
	}
	s.logger.Info("booking validated",
		"seats", len(details.SelectedSeats),
		"boarding", details.BoardingPoint,
		"dropping", details.DroppingPoint,
		"total", s.Price().Total,
	)
	return details, nil
}
