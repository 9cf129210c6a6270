package booking

import (
	"fmt"
	"unicode/utf8"

	"bus-ticket-cli/model"
)

// MobileNumberLength is the required length of a mobile number.
const MobileNumberLength = 11

// Form holds the passenger input of the booking form.
type Form struct {
	BoardingPoint string
	DroppingPoint string
	Name          string
	Mobile        string
}

// ValidateBooking checks the form against the selection and returns the
// booking details. Rules run in a fixed order and the first failure is
// returned: required fields, then seat count, then mobile length.
// The selection is copied, never cleared.
func ValidateBooking(form Form, selection []model.Seat) (model.BookingDetails, error) {
	if err := validateFields(form); err != nil {
		return model.BookingDetails{}, err
	}
	if len(selection) == 0 {
		return model.BookingDetails{}, ErrNoSeatSelected
	}
	if n := utf8.RuneCountInString(form.Mobile); n != MobileNumberLength {
		return model.BookingDetails{}, fmt.Errorf("%w: got %d characters, want %d", ErrInvalidMobile, n, MobileNumberLength)
	}

	seats := make([]model.Seat, len(selection))
	copy(seats, selection)
	return model.BookingDetails{
		BoardingPoint: form.BoardingPoint,
		DroppingPoint: form.DroppingPoint,
		Name:          form.Name,
		MobileNumber:  form.Mobile,
		SelectedSeats: seats,
	}, nil
}

func validateFields(form Form) error {
	switch {
	case form.BoardingPoint == "":
		return fmt.Errorf("%w: boarding point", ErrMissingField)
	case form.DroppingPoint == "":
		return fmt.Errorf("%w: dropping point", ErrMissingField)
	case form.Name == "":
		return fmt.Errorf("%w: name", ErrMissingField)
	case form.Mobile == "":
		return fmt.Errorf("%w: mobile number", ErrMissingField)
	}
	return nil
}
