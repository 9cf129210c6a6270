package booking

import "errors"

var (
	// ErrSeatUnavailable is returned when a booked or sold seat is toggled.
	ErrSeatUnavailable = errors.New("booking: seat is not available")

	// ErrUnknownSeat is returned when a seat is not part of the session inventory.
	ErrUnknownSeat = errors.New("booking: seat is not in the inventory")

	// ErrMissingField is returned when boarding point, dropping point, name or mobile is empty.
	ErrMissingField = errors.New("booking: missing required field")

	// ErrNoSeatSelected is returned when a booking is submitted with an empty selection.
	ErrNoSeatSelected = errors.New("booking: no seat selected")

	// ErrInvalidMobile is returned when the mobile number is not 11 characters long.
	ErrInvalidMobile = errors.New("booking: invalid mobile number")
)

// UserMessage returns the text shown to the passenger for an engine error.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSeatUnavailable):
		return "This seat is not available"
	case errors.Is(err, ErrUnknownSeat):
		return "This seat does not exist on this bus"
	case errors.Is(err, ErrMissingField):
		return "Please fill all required fields"
	case errors.Is(err, ErrNoSeatSelected):
		return "Please select at least one seat"
	case errors.Is(err, ErrInvalidMobile):
		return "Please enter a valid 11-digit mobile number"
	default:
		return err.Error()
	}
}
