package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"bus-ticket-cli/store"
)

type testItem struct {
	value string
}

func (t testItem) Title() string       { return t.value }
func (t testItem) Description() string { return "" }
func (t testItem) FilterValue() string { return strings.ToLower(t.value) }

func newFilterModel(items []list.Item) *appModel {
	model := New(Options{}).(appModel)
	model.state = stateSelectFrom
	model.fromList = newList("Leaving From")
	model.fromList.SetItems(items)
	return &model
}

func sendKey(m appModel, msg tea.KeyMsg) appModel {
	next, _ := m.Update(msg)
	return next.(appModel)
}

func runes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func TestHandleFilterInput_AppendsRunes(t *testing.T) {
	m := newFilterModel([]list.Item{
		testItem{value: "Rajshahi"},
		testItem{value: "Barisal"},
	})

	if !m.handleFilterInput(runes("r")) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.fromList.FilterValue(); got != "r" {
		t.Fatalf("expected filter value to be %q, got %q", "r", got)
	}

	if !m.handleFilterInput(runes("a")) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.fromList.FilterValue(); got != "ra" {
		t.Fatalf("expected filter value to be %q, got %q", "ra", got)
	}
}

func TestHandleFilterInput_Backspace(t *testing.T) {
	m := newFilterModel([]list.Item{
		testItem{value: "Rajshahi"},
		testItem{value: "Barisal"},
	})

	_ = m.handleFilterInput(runes("r"))
	_ = m.handleFilterInput(runes("a"))

	if got := m.fromList.FilterValue(); got != "ra" {
		t.Fatalf("expected filter value to be %q, got %q", "ra", got)
	}

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Fatal("expected backspace to be handled")
	}
	if got := m.fromList.FilterValue(); got != "r" {
		t.Fatalf("expected filter value to be %q, got %q", "r", got)
	}
}

func TestHandleFilterInput_Space(t *testing.T) {
	m := newFilterModel([]list.Item{
		testItem{value: "Cox's Bazar"},
	})

	_ = m.handleFilterInput(runes("c"))
	_ = m.handleFilterInput(runes("o"))
	_ = m.handleFilterInput(runes("x"))

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeySpace}) {
		t.Fatal("expected space to be handled")
	}

	if got := m.fromList.FilterValue(); got != "cox " {
		t.Fatalf("expected filter value to be %q, got %q", "cox ", got)
	}
}

func TestHandleFilterInput_IgnoredOutsideLists(t *testing.T) {
	m := New(Options{}).(appModel)
	m.state = stateSeatPlan

	if m.handleFilterInput(runes("j")) {
		t.Fatal("expected seat plan keys to bypass list filtering")
	}
}

func TestSelectTrendingRoute(t *testing.T) {
	m := New(Options{}).(appModel)

	item, ok := m.fromList.Items()[0].(routeItem)
	if !ok {
		t.Fatalf("expected a route first, got %T", m.fromList.Items()[0])
	}
	if item.recent || item.route.From != "Dhaka" || item.route.To != "Rajshahi" {
		t.Fatalf("unexpected first route: %+v", item)
	}

	m = sendKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateSelectDate {
		t.Fatalf("expected date selection, got %v", m.state)
	}
	if m.from != "Dhaka" || m.to != "Rajshahi" {
		t.Fatalf("expected route to fill from and to, got %q -> %q", m.from, m.to)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(appModel)
	if m.state != stateSearching || cmd == nil {
		t.Fatalf("expected a search to start, got state %v", m.state)
	}
	if !isSameDay(m.date, time.Now()) {
		t.Fatalf("expected today to be the first date, got %v", m.date)
	}
}

func TestSelectCities(t *testing.T) {
	m := New(Options{}).(appModel)
	trending := len(m.catalog.TrendingRoutes())
	m.fromList.Select(trending)

	m = sendKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateSelectTo || m.from != "Dhaka" {
		t.Fatalf("expected to pick a destination from Dhaka, got state %v from %q", m.state, m.from)
	}
	if got := len(m.toList.Items()); got != len(m.catalog.Cities())-1 {
		t.Fatalf("expected departure city to be excluded, got %d destinations", got)
	}
	for _, item := range m.toList.Items() {
		if item.(cityItem).name == "Dhaka" {
			t.Fatal("expected Dhaka to be excluded")
		}
	}

	m = sendKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateSelectDate || m.to == "" {
		t.Fatalf("expected date selection, got state %v to %q", m.state, m.to)
	}

	m = sendKey(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateSelectTo || m.to != "" {
		t.Fatalf("expected esc to return to destination, got state %v to %q", m.state, m.to)
	}
}

func TestSearchResults(t *testing.T) {
	m := New(Options{From: "Dhaka", To: "Rajshahi", Date: time.Now()}).(appModel)
	if m.state != stateSearching || m.Init() == nil {
		t.Fatalf("expected preset route to search on start, got state %v", m.state)
	}

	next, _ := m.Update(m.searchCmd()())
	m = next.(appModel)
	if m.state != stateShowResults {
		t.Fatalf("expected results, got %v", m.state)
	}
	if len(m.busList.Items()) != 4 {
		t.Fatalf("expected 4 buses, got %d", len(m.busList.Items()))
	}
	next, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(appModel)
	if view := m.View(); !strings.Contains(view, "Total Buses Found: 4 | Total Seats Available: 127") {
		t.Fatalf("expected summary in view, got %q", view)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(appModel)
	if m.state != stateLoadingSeatPlan || cmd == nil {
		t.Fatalf("expected seat plan to load, got %v", m.state)
	}
}

func TestSearchResults_Empty(t *testing.T) {
	m := New(Options{From: "Dhaka", To: "Sylhet", Date: time.Now()}).(appModel)

	next, _ := m.Update(m.searchCmd()())
	m = next.(appModel)
	if m.state != stateShowResults {
		t.Fatalf("expected results, got %v", m.state)
	}
	if view := m.View(); !strings.Contains(view, "No buses found for this route. Please try a different search.") {
		t.Fatalf("expected empty message, got %q", view)
	}
}

func TestSearch_RemembersRoute(t *testing.T) {
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)

	m := New(Options{From: "Dhaka", To: "Sylhet", Date: time.Now(), History: true}).(appModel)
	next, _ := m.Update(m.searchCmd()())
	m = next.(appModel)

	routes, err := store.LoadRecentRoutes()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(routes) != 1 || routes[0].To != "Sylhet" {
		t.Fatalf("expected searched route to be remembered, got %+v", routes)
	}

	m.resetSearch()
	item, ok := m.fromList.Items()[0].(routeItem)
	if !ok || !item.recent || item.route.To != "Sylhet" {
		t.Fatalf("expected recent route first, got %+v", m.fromList.Items()[0])
	}
}

func TestSearchError_ReturnsToDatePicker(t *testing.T) {
	m := New(Options{}).(appModel)
	m.state = stateSearching

	next, cmd := m.Update(searchMsg{err: errTest})
	m = next.(appModel)
	next, _ = m.Update(cmd())
	m = next.(appModel)
	if m.state != stateError {
		t.Fatalf("expected error state, got %v", m.state)
	}

	m = sendKey(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateSelectDate {
		t.Fatalf("expected date picker after error, got %v", m.state)
	}
}
