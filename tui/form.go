package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bus-ticket-cli/booking"
	"bus-ticket-cli/model"
)

type formField int

const (
	fieldBoarding formField = iota
	fieldDropping
	fieldName
	fieldMobile
	fieldCount
)

type bookingForm struct {
	focus formField
	// boarding and dropping index the bus's point lists; -1 means nothing
	// chosen yet.
	boarding int
	dropping int
	name     textinput.Model
	mobile   textinput.Model
}

func newBookingForm() bookingForm {
	return bookingForm{
		focus:    fieldBoarding,
		boarding: -1,
		dropping: -1,
		name:     newInput("Enter your full name", 64),
		mobile:   newInput("01XXXXXXXXX", booking.MobileNumberLength),
	}
}

// focusCurrent moves keyboard focus to the active text input, if any.
func (f *bookingForm) focusCurrent() tea.Cmd {
	f.name.Blur()
	f.mobile.Blur()
	switch f.focus {
	case fieldName:
		return f.name.Focus()
	case fieldMobile:
		return f.mobile.Focus()
	}
	return nil
}

func (f *bookingForm) move(delta int) tea.Cmd {
	f.focus = formField((int(f.focus) + delta + int(fieldCount)) % int(fieldCount))
	return f.focusCurrent()
}

func cyclePoint(current int, delta int, count int) int {
	if count == 0 {
		return -1
	}
	if current < 0 {
		if delta < 0 {
			return count - 1
		}
		return 0
	}
	return (current + delta + count) % count
}

func pointID(points []model.BoardingPoint, i int) string {
	if i < 0 || i >= len(points) {
		return ""
	}
	return points[i].Id
}

func pointLabel(points []model.BoardingPoint, id string) string {
	for _, p := range points {
		if p.Id == id {
			return formatPoint(p)
		}
	}
	return id
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	f := &m.form
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		f.name.Blur()
		f.mobile.Blur()
		m.state = stateSeatPlan
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitBooking()
	case msg.Type == tea.KeyEnter:
		if f.focus == fieldMobile {
			return m.submitBooking()
		}
		return m, f.move(1)
	case key.Matches(msg, m.keys.NextField):
		return m, f.move(1)
	case key.Matches(msg, m.keys.PrevField):
		return m, f.move(-1)
	}

	switch f.focus {
	case fieldBoarding, fieldDropping:
		delta := 0
		switch {
		case key.Matches(msg, m.keys.PrevPoint):
			delta = -1
		case key.Matches(msg, m.keys.NextPoint):
			delta = 1
		}
		if delta == 0 {
			return m, nil
		}
		if f.focus == fieldBoarding {
			f.boarding = cyclePoint(f.boarding, delta, len(m.boardingPoints))
		} else {
			f.dropping = cyclePoint(f.dropping, delta, len(m.droppingPoints))
		}
		return m, nil
	case fieldName:
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		return m, cmd
	case fieldMobile:
		var cmd tea.Cmd
		f.mobile, cmd = f.mobile.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) submitBooking() (tea.Model, tea.Cmd) {
	form := booking.Form{
		BoardingPoint: pointID(m.boardingPoints, m.form.boarding),
		DroppingPoint: pointID(m.droppingPoints, m.form.dropping),
		Name:          m.form.name.Value(),
		Mobile:        m.form.mobile.Value(),
	}
	details, err := m.session.Submit(form)
	if err != nil {
		m.flash = booking.UserMessage(err)
		return m, nil
	}
	m.confirmed = details
	m.confirmedPrice = m.session.Price()
	confirmedBus := m.bus
	boarding, dropping := m.boardingPoints, m.droppingPoints
	m.closeSeatPlan()
	// The confirmation still shows the bus and point labels.
	m.bus = confirmedBus
	m.boardingPoints, m.droppingPoints = boarding, dropping
	m.state = stateConfirmed
	return m, nil
}

func (m appModel) formView() string {
	f := m.form
	labelStyle := lipgloss.NewStyle().Bold(true).Width(18)
	focusMark := func(field formField) string {
		if f.focus == field {
			return lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Render("> ")
		}
		return "  "
	}
	choice := func(points []model.BoardingPoint, i int, placeholder string) string {
		if i < 0 || i >= len(points) {
			return hint("‹ " + placeholder + " ›")
		}
		return fmt.Sprintf("‹ %s ›", formatPoint(points[i]))
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Passenger Details"),
		"",
		focusMark(fieldBoarding) + labelStyle.Render("Boarding Point *") + choice(m.boardingPoints, f.boarding, "Select boarding point"),
		focusMark(fieldDropping) + labelStyle.Render("Dropping Point *") + choice(m.droppingPoints, f.dropping, "Select dropping point"),
		focusMark(fieldName) + labelStyle.Render("Full Name *") + f.name.View(),
		focusMark(fieldMobile) + labelStyle.Render("Mobile Number *") + f.mobile.View(),
	}
	out := strings.Join(lines, "\n")
	if m.flash != "" {
		out += "\n\n" + flashStyle.Render(m.flash)
	}
	if m.session != nil && m.session.Count() > 0 {
		out += "\n\n" + m.priceCard()
	}
	return out
}

func (m appModel) confirmedView() string {
	d := m.confirmed
	numbers := make([]string, 0, len(d.SelectedSeats))
	for _, seat := range d.SelectedSeats {
		numbers = append(numbers, seat.Number)
	}
	chip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("2")).
		Padding(0, 2)

	content := strings.Join([]string{
		chip.Render("Booking Confirmed"),
		"",
		fmt.Sprintf("Bus:       %s • %s", m.bus.CompanyName, m.bus.BusName),
		fmt.Sprintf("Route:     %s", model.Route{From: m.from, To: m.to}),
		fmt.Sprintf("Seats:     %s", strings.Join(numbers, ", ")),
		fmt.Sprintf("Boarding:  %s", pointLabel(m.boardingPoints, d.BoardingPoint)),
		fmt.Sprintf("Dropping:  %s", pointLabel(m.droppingPoints, d.DroppingPoint)),
		fmt.Sprintf("Passenger: %s (%s)", d.Name, d.MobileNumber),
		"",
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Total Paid: %s", formatMoney(m.currency, m.confirmedPrice.Total))),
		"",
		hint("Press ENTER to search again."),
	}, "\n")

	panel := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("2")).
		Render(content)
	if m.width > 0 {
		panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)
	}
	return panel
}
