package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bus-ticket-cli/booking"
	"bus-ticket-cli/model"
	"bus-ticket-cli/service"
	"bus-ticket-cli/store"
)

type appState int

const (
	stateSelectFrom appState = iota
	stateSelectTo
	stateSelectDate
	stateSearching
	stateShowResults
	stateLoadingSeatPlan
	stateSeatPlan
	stateBookingForm
	stateConfirmed
	stateError
)

// Options configures the TUI. A nil Catalog means the built-in demo
// catalog; a nil Logger discards logs.
type Options struct {
	Catalog  *service.Catalog
	Logger   *slog.Logger
	Currency string
	// From, To and Date preselect a search. With all three set the search
	// runs as soon as the program starts.
	From    string
	To      string
	Date    time.Time
	History bool
}

type appModel struct {
	catalog *service.Catalog
	logger  *slog.Logger
	keys    keyMap

	currency       string
	historyEnabled bool

	state     appState
	lastState appState
	err       error

	width  int
	height int

	from  string
	to    string
	date  time.Time
	today time.Time

	fromList list.Model
	toList   list.Model
	dateList list.Model
	busList  list.Model

	buses   []model.Bus
	summary service.SearchSummary

	bus            model.Bus
	session        *booking.Session
	boardingPoints []model.BoardingPoint
	droppingPoints []model.BoardingPoint

	cursorRow       int
	cursorCol       int
	showSeatNumbers bool

	form bookingForm

	confirmed      model.BookingDetails
	confirmedPrice booking.Breakdown

	flash string

	spinner spinner.Model
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type searchMsg struct {
	buses []model.Bus
	err   error
}

type seatPlanMsg struct {
	bus      model.Bus
	seats    []model.Seat
	boarding []model.BoardingPoint
	dropping []model.BoardingPoint
	err      error
}

func New(opts Options) tea.Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = service.DefaultCatalog(logger)
	}
	currency := opts.Currency
	if currency == "" {
		currency = "৳"
	}

	m := appModel{
		catalog:        catalog,
		logger:         logger,
		keys:           defaultKeyMap,
		currency:       currency,
		historyEnabled: opts.History,
		state:          stateSelectFrom,
		today:          truncateDate(time.Now()),
		from:           strings.TrimSpace(opts.From),
		to:             strings.TrimSpace(opts.To),
	}
	if !opts.Date.IsZero() {
		m.date = truncateDate(opts.Date)
	}

	m.fromList = newList("Leaving From")
	m.toList = newList("Going To")
	m.dateList = newList("Journey Date")
	m.busList = newList("Available Buses")
	m.fromList.SetItems(m.buildFromItems())
	m.dateList.SetItems(buildDateItems(m.today))

	m.form = newBookingForm()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	switch {
	case m.from != "" && m.to != "" && !m.date.IsZero():
		m.state = stateSearching
	case m.from != "" && m.to != "":
		m.state = stateSelectDate
	case m.from != "":
		m.toList.SetItems(buildToItems(m.catalog.Cities(), m.from))
		m.state = stateSelectTo
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.state == stateSearching {
		return tea.Batch(m.searchCmd(), m.spinner.Tick)
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.state == stateBookingForm {
			return m.updateForm(msg)
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		// fallthrough to component update
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.logger.Warn("tui error", "error", msg.err, "state", m.state)
		m.state = stateError
		return m, nil

	case searchMsg:
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateSelectDate)
		}
		m.rememberRoute()
		m.buses = msg.buses
		m.summary = service.Summarize(msg.buses)
		m.busList.Title = fmt.Sprintf("%s • %s", model.Route{From: m.from, To: m.to}, m.date.Format("Mon, 02 Jan 2006"))
		m.busList.ResetFilter()
		m.busList.SetItems(buildBusItems(msg.buses, m.currency))
		m.busList.Select(0)
		m.state = stateShowResults
		return m, nil

	case seatPlanMsg:
		if msg.err != nil {
			return m, errCmd(msg.err)
		}
		m.openSeatPlan(msg)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectFrom:
		m.fromList, cmd = m.fromList.Update(msg)
	case stateSelectTo:
		m.toList, cmd = m.toList.Update(msg)
	case stateSelectDate:
		m.dateList, cmd = m.dateList.Update(msg)
	case stateShowResults:
		m.busList, cmd = m.busList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateSearching, stateLoadingSeatPlan:
		return header + "\n\n" + m.loadingView()
	case stateSelectFrom:
		return header + "\n\n" + m.fromList.View()
	case stateSelectTo:
		return header + "\n\n" + m.toList.View()
	case stateSelectDate:
		return header + "\n\n" + m.dateList.View()
	case stateShowResults:
		return header + "\n\n" + m.resultsView()
	case stateSeatPlan:
		return header + "\n\n" + m.renderSeatPlan()
	case stateBookingForm:
		return header + "\n\n" + m.formView()
	case stateConfirmed:
		return header + "\n\n" + m.confirmedView()
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error()) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Bus Ticket TUI")
	sub := []string{}
	if m.from != "" {
		sub = append(sub, fmt.Sprintf("From: %s", m.from))
	}
	if m.to != "" {
		sub = append(sub, fmt.Sprintf("To: %s", m.to))
	}
	if !m.date.IsZero() && m.state != stateSelectFrom && m.state != stateSelectTo {
		sub = append(sub, fmt.Sprintf("Date: %s", m.date.Format(time.DateOnly)))
	}
	if m.state == stateShowResults {
		sub = append(sub, m.summary.String())
	}
	if m.bus.Id != "" && (m.state == stateSeatPlan || m.state == stateBookingForm) {
		sub = append(sub, fmt.Sprintf("Bus: %s %s", m.bus.CompanyName, m.bus.BusName))
		sub = append(sub, fmt.Sprintf("Fare: %s", formatMoney(m.currency, m.bus.Price)))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit • esc back • type to filter • enter select"
	switch m.state {
	case stateSelectFrom:
		hints = "ctrl+c quit • type to filter • enter select city or route"
	case stateSelectDate:
		hints = "ctrl+c quit • esc back • enter select date"
	case stateShowResults:
		hints = "ctrl+c quit • esc back • type to filter • enter view seats"
	case stateSeatPlan:
		hints = helpLine(m.keys.Quit, m.keys.Back, m.keys.Toggle, m.keys.ToggleLabel, m.keys.OpenForm)
	case stateBookingForm:
		hints = helpLine(m.keys.Quit, m.keys.Back, m.keys.NextField, m.keys.PrevPoint, m.keys.NextPoint, m.keys.Submit)
	case stateConfirmed:
		hints = "ctrl+c quit • enter new search"
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) resultsView() string {
	if len(m.buses) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render("No buses found for this route. Please try a different search.") +
			"\n\n" + hint("Press esc to pick another date.")
	}
	return m.busList.View()
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit, true
	}
	if m.state == stateSeatPlan {
		return m.handleSeatPlanKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		next, cmd := m.goBack()
		return next, cmd, true
	}

	if msg.Type != tea.KeyEnter {
		return m, nil, false
	}
	switch m.state {
	case stateSelectFrom:
		switch item := m.fromList.SelectedItem().(type) {
		case routeItem:
			m.from = item.route.From
			m.to = item.route.To
			m.fromList.ResetFilter()
			m.toList.SetItems(nil)
			m.openDatePicker()
		case cityItem:
			m.from = item.name
			m.to = ""
			m.fromList.ResetFilter()
			m.toList.ResetFilter()
			m.toList.SetItems(buildToItems(m.catalog.Cities(), m.from))
			m.toList.Select(0)
			m.state = stateSelectTo
		}
		return m, nil, true
	case stateSelectTo:
		item, ok := m.toList.SelectedItem().(cityItem)
		if !ok {
			return m, nil, true
		}
		m.to = item.name
		m.toList.ResetFilter()
		m.openDatePicker()
		return m, nil, true
	case stateSelectDate:
		item, ok := m.dateList.SelectedItem().(dateItem)
		if !ok {
			return m, nil, true
		}
		m.date = item.date
		m.state = stateSearching
		return m, tea.Batch(m.searchCmd(), m.spinner.Tick), true
	case stateShowResults:
		item, ok := m.busList.SelectedItem().(busItem)
		if !ok {
			return m, nil, true
		}
		m.state = stateLoadingSeatPlan
		return m, tea.Batch(m.seatPlanCmd(item.bus), m.spinner.Tick), true
	case stateConfirmed:
		m.resetSearch()
		return m, nil, true
	case stateError:
		next, cmd := m.goBack()
		return next, cmd, true
	}
	return m, nil, false
}

func (m appModel) goBack() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateSelectTo:
		m.to = ""
		m.state = stateSelectFrom
	case stateSelectDate:
		if len(m.toList.Items()) == 0 {
			m.from, m.to = "", ""
			m.state = stateSelectFrom
			return m, nil
		}
		m.to = ""
		m.state = stateSelectTo
	case stateShowResults:
		m.state = stateSelectDate
	case stateSeatPlan:
		m.closeSeatPlan()
		m.state = stateShowResults
	case stateConfirmed:
		m.resetSearch()
	case stateError:
		m.state = m.lastState
	default:
		return m, nil
	}
	return m, nil
}

func (m *appModel) openDatePicker() {
	m.dateList.SetItems(buildDateItems(m.today))
	m.dateList.Select(0)
	if !m.date.IsZero() {
		for i, item := range m.dateList.Items() {
			if d, ok := item.(dateItem); ok && isSameDay(d.date, m.date) {
				m.dateList.Select(i)
				break
			}
		}
	}
	m.state = stateSelectDate
}

// resetSearch starts over after a completed booking.
func (m *appModel) resetSearch() {
	m.closeSeatPlan()
	m.from, m.to = "", ""
	m.date = time.Time{}
	m.buses = nil
	m.summary = service.SearchSummary{}
	m.confirmed = model.BookingDetails{}
	m.confirmedPrice = booking.Breakdown{}
	m.fromList.ResetFilter()
	m.fromList.SetItems(m.buildFromItems())
	m.fromList.Select(0)
	m.toList.SetItems(nil)
	m.busList.SetItems(nil)
	m.state = stateSelectFrom
}

func (m appModel) rememberRoute() {
	if !m.historyEnabled {
		return
	}
	if err := store.RememberRoute(model.Route{From: m.from, To: m.to}); err != nil {
		m.logger.Warn("remember route", "error", err)
	}
}

func (m appModel) recentRoutes() []model.Route {
	if !m.historyEnabled {
		return nil
	}
	recents, err := store.LoadRecentRoutes()
	if err != nil {
		m.logger.Warn("load recent routes", "error", err)
		return nil
	}
	routes := make([]model.Route, 0, len(recents))
	for _, r := range recents {
		routes = append(routes, r.Route())
	}
	return routes
}

func (m appModel) buildFromItems() []list.Item {
	return buildFromItems(m.recentRoutes(), m.catalog.TrendingRoutes(), m.catalog.Cities())
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectFrom:
		return &m.fromList
	case stateSelectTo:
		return &m.toList
	case stateShowResults:
		if len(m.buses) == 0 {
			return nil
		}
		return &m.busList
	default:
		return nil
	}
}

func (m appModel) isLoadingState() bool {
	return m.state == stateSearching || m.state == stateLoadingSeatPlan
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateSearching:
		title = "Searching buses"
	case stateLoadingSeatPlan:
		title = "Loading seat plan"
	}

	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Fetching data..."))
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.fromList.SetSize(m.width, h)
	m.toList.SetSize(m.width, h)
	m.dateList.SetSize(m.width, h)
	m.busList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Prompt = ""
	return in
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func joinBullets(parts []string) string {
	return strings.Join(parts, " • ")
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func errWithOptionsCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{
			err:            err,
			returnState:    returnState,
			returnStateSet: true,
		}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateSearching:
		return stateSelectDate
	case stateLoadingSeatPlan:
		return stateShowResults
	case stateError:
		return stateSelectFrom
	default:
		return state
	}
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isSameDay(a time.Time, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

func (m appModel) searchCmd() tea.Cmd {
	catalog := m.catalog
	query := service.SearchQuery{From: m.from, To: m.to, Date: m.date}
	return func() tea.Msg {
		buses, err := catalog.SearchBuses(context.Background(), query)
		return searchMsg{buses: buses, err: err}
	}
}

func (m appModel) seatPlanCmd(bus model.Bus) tea.Cmd {
	catalog := m.catalog
	return func() tea.Msg {
		ctx := context.Background()
		seats, err := catalog.GetSeatMap(ctx, bus.Id)
		if err != nil {
			return seatPlanMsg{err: err}
		}
		if len(seats) == 0 {
			return seatPlanMsg{err: errors.New("no seat plan available for this bus")}
		}
		boarding, err := catalog.GetBoardingPoints(ctx, bus.Id)
		if err != nil {
			return seatPlanMsg{err: err}
		}
		dropping, err := catalog.GetDroppingPoints(ctx, bus.Id)
		if err != nil {
			return seatPlanMsg{err: err}
		}
		return seatPlanMsg{bus: bus, seats: seats, boarding: boarding, dropping: dropping}
	}
}
