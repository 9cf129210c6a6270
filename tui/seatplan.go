package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bus-ticket-cli/booking"
	"bus-ticket-cli/model"
)

// aisleAfter is the column index after which the grid leaves an aisle.
const aisleAfter = 1

var (
	seatStyleAvailable = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleBooked    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatStyleSold      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	seatStyleSelected  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	flashStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// openSeatPlan starts a fresh booking session for the loaded bus.
func (m *appModel) openSeatPlan(msg seatPlanMsg) {
	m.bus = msg.bus
	m.session = booking.NewSession(msg.seats, msg.bus.Price, m.logger.With("bus", msg.bus.Id))
	m.boardingPoints = msg.boarding
	m.droppingPoints = msg.dropping
	m.cursorRow, m.cursorCol = 0, 0
	m.showSeatNumbers = true
	m.form = newBookingForm()
	m.flash = ""
	m.state = stateSeatPlan
}

// closeSeatPlan drops the session and everything chosen in it.
func (m *appModel) closeSeatPlan() {
	m.session = nil
	m.bus = model.Bus{}
	m.boardingPoints = nil
	m.droppingPoints = nil
	m.form = newBookingForm()
	m.flash = ""
}

func (m appModel) handleSeatPlanKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	m.flash = ""
	switch {
	case key.Matches(msg, m.keys.QuitLetter):
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.Back):
		next, cmd := m.goBack()
		return next, cmd, true
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Toggle):
		m.toggleCursorSeat()
	case key.Matches(msg, m.keys.ToggleLabel):
		m.showSeatNumbers = !m.showSeatNumbers
	case key.Matches(msg, m.keys.OpenForm):
		if m.session.Count() == 0 {
			m.flash = booking.UserMessage(booking.ErrNoSeatSelected)
			return m, nil, true
		}
		m.state = stateBookingForm
		return m, m.form.focusCurrent(), true
	}
	return m, nil, true
}

func (m *appModel) moveCursor(dRow int, dCol int) {
	rows := m.session.Rows()
	if len(rows) == 0 {
		return
	}
	m.cursorRow = clamp(m.cursorRow+dRow, 0, len(rows)-1)
	m.cursorCol = clamp(m.cursorCol+dCol, 0, len(rows[m.cursorRow])-1)
}

func (m *appModel) cursorSeat() (model.Seat, bool) {
	rows := m.session.Rows()
	if m.cursorRow < 0 || m.cursorRow >= len(rows) {
		return model.Seat{}, false
	}
	row := rows[m.cursorRow]
	if len(row) == 0 {
		return model.Seat{}, false
	}
	col := clamp(m.cursorCol, 0, len(row)-1)
	return row[col], true
}

func (m *appModel) toggleCursorSeat() {
	seat, ok := m.cursorSeat()
	if !ok {
		return
	}
	if _, err := m.session.Toggle(seat); err != nil {
		m.flash = booking.UserMessage(err)
	}
}

func (m appModel) renderSeatPlan() string {
	if m.session == nil {
		return "No seat plan data."
	}
	rows := m.session.Rows()
	if len(rows) == 0 {
		return "No seat plan data."
	}

	cellWidth := 2
	maxCols := 0
	for _, row := range rows {
		maxCols = max(maxCols, len(row))
		if m.showSeatNumbers {
			for _, seat := range row {
				cellWidth = max(cellWidth, len(seat.Number))
			}
		}
	}

	var counts seatCount
	var b strings.Builder
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	gridWidth := maxCols*(cellWidth+1) - 1
	if maxCols > aisleAfter+1 {
		gridWidth += 2
	}
	front := frontBarBlock(gridWidth, "DRIVER")
	b.WriteString("    " + hint(front.top) + "\n")
	b.WriteString("    " + hint(front.mid) + "\n")
	b.WriteString("    " + hint(front.bot) + "\n\n")

	for r, row := range rows {
		b.WriteString(fmt.Sprintf("%3d ", r+1))
		for c, seat := range row {
			counts.add(seat.Status)
			token := seatToken(seat.Status)
			text := token
			if m.showSeatNumbers && seat.Number != "" {
				text = seat.Number
			}
			rendered := padCell(text, cellWidth)
			switch seat.Status {
			case model.SeatAvailable:
				rendered = seatStyleAvailable.Render(rendered)
			case model.SeatBooked:
				rendered = seatStyleBooked.Render(rendered)
			case model.SeatSold:
				rendered = seatStyleSold.Render(rendered)
			case model.SeatSelected:
				rendered = seatStyleSelected.Render(rendered)
			}
			if r == m.cursorRow && c == m.cursorCol {
				rendered = cursorStyle.Render(rendered)
			}
			b.WriteString(rendered)
			if c < len(row)-1 {
				b.WriteString(" ")
				if c == aisleAfter {
					b.WriteString("  ")
				}
			}
		}
		b.WriteString("\n")
	}

	legend := "Legend: " + strings.Join([]string{
		seatStyleAvailable.Render("[]") + " available",
		seatStyleBooked.Render("XX") + " booked",
		seatStyleSold.Render("##") + " sold",
		seatStyleSelected.Render("<>") + " selected",
	}, " • ")
	if m.showSeatNumbers {
		legend = "Legend: " + strings.Join([]string{
			seatStyleAvailable.Render("Available"),
			seatStyleBooked.Render("Booked"),
			seatStyleSold.Render("Sold"),
			seatStyleSelected.Render("Selected"),
		}, " • ") + hint(" (numbers are seat labels)")
	}

	b.WriteString("\n")
	b.WriteString(legend)
	b.WriteString("\n")
	b.WriteString(hint(counts.String()))
	if m.flash != "" {
		b.WriteString("\n\n" + flashStyle.Render(m.flash))
	}
	if m.session.Count() > 0 {
		b.WriteString("\n\n" + m.priceCard())
	}
	return b.String()
}

// priceCard renders the selected seats and the price breakdown. Callers
// only show it for a non-empty selection.
func (m appModel) priceCard() string {
	selection := m.session.Selection()
	numbers := make([]string, 0, len(selection))
	for _, seat := range selection {
		numbers = append(numbers, seat.Number)
	}
	price := m.session.Price()

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Selected Seats: ") + strings.Join(numbers, ", "),
		"",
		priceLine("Seat Fare", fmt.Sprintf("%s × %d", formatMoney(m.currency, m.session.SeatPrice()), price.Seats), formatMoney(m.currency, price.SeatFare)),
		priceLine("Service Charge", "", formatMoney(m.currency, price.ServiceCharge)),
		priceLine("PGW Charge", "", formatMoney(m.currency, price.PGWCharge)),
		lipgloss.NewStyle().Bold(true).Render(priceLine("Total", "", formatMoney(m.currency, price.Total))),
	}
	return lipgloss.NewStyle().
		Padding(0, 2).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(strings.Join(lines, "\n"))
}

func priceLine(label string, detail string, amount string) string {
	if detail != "" {
		label = fmt.Sprintf("%s (%s)", label, detail)
	}
	return fmt.Sprintf("%-28s %10s", label, amount)
}

func seatToken(status model.SeatStatus) string {
	switch status {
	case model.SeatAvailable:
		return "[]"
	case model.SeatBooked:
		return "XX"
	case model.SeatSold:
		return "##"
	case model.SeatSelected:
		return "<>"
	default:
		return "  "
	}
}

type seatCount struct {
	available int
	booked    int
	sold      int
	selected  int
	total     int
}

func (c *seatCount) add(status model.SeatStatus) {
	c.total++
	switch status {
	case model.SeatAvailable:
		c.available++
	case model.SeatBooked:
		c.booked++
	case model.SeatSold:
		c.sold++
	case model.SeatSelected:
		c.selected++
	}
}

func (c seatCount) String() string {
	return fmt.Sprintf("Available: %d • Booked: %d • Sold: %d • Selected: %d • Total: %d", c.available, c.booked, c.sold, c.selected, c.total)
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type barBlock struct {
	top string
	mid string
	bot string
}

func frontBarBlock(width int, label string) barBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return barBlock{top: border, mid: mid, bot: bottom}
}

func clamp(v int, lo int, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
