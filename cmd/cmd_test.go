package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-ticket-cli/booking"
	"bus-ticket-cli/config"
	"bus-ticket-cli/service"
	"bus-ticket-cli/store"
)

func isolate(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	for _, key := range []string{
		config.EnvConfig, config.EnvCatalog, config.EnvLogLevel, config.EnvLogFile,
		config.EnvFrom, config.EnvTo, config.EnvNoHistory,
	} {
		t.Setenv(key, "")
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(BuildInfo{Version: "1.2.3", Commit: "abc123"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	isolate(t)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "bus-ticket-cli 1.2.3 (abc123)\n", out)

	out, err = run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "bus-ticket-cli 1.2.3 (abc123)\n", out)
}

func TestSearch(t *testing.T) {
	isolate(t)

	out, err := run(t, "search", "--from", "dhaka", "--to", "Rajshahi", "--date", "2026-10-20")
	require.NoError(t, err)
	assert.Contains(t, out, "National Travels")
	assert.Contains(t, out, "Shyamoli Paribahan")
	assert.Contains(t, out, "৳750")
	assert.Contains(t, out, "Total Buses Found: 4 | Total Seats Available: 127")

	routes, err := store.LoadRecentRoutes()
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "Rajshahi", routes[0].To)
}

func TestHistory(t *testing.T) {
	isolate(t)

	out, err := run(t, "history")
	require.NoError(t, err)
	assert.Equal(t, "No recent searches.\n", out)

	_, err = run(t, "search", "--from", "Dhaka", "--to", "Barisal")
	require.NoError(t, err)
	out, err = run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Dhaka → Barisal")

	out, err = run(t, "history", "--clear")
	require.NoError(t, err)
	assert.Equal(t, "Search history cleared.\n", out)
	routes, err := store.LoadRecentRoutes()
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestSearch_HistoryDisabled(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvNoHistory, "true")

	_, err := run(t, "search", "--from", "Dhaka", "--to", "Rajshahi")
	require.NoError(t, err)

	routes, err := store.LoadRecentRoutes()
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestSearch_NoBuses(t *testing.T) {
	isolate(t)

	out, err := run(t, "search", "--from", "Dhaka", "--to", "Sylhet")
	require.NoError(t, err)
	assert.Equal(t, noBusesMessage+"\n", out)
}

func TestSearch_Errors(t *testing.T) {
	isolate(t)

	_, err := run(t, "search", "--from", "Dhaka")
	assert.ErrorIs(t, err, service.ErrIncompleteSearch)

	_, err = run(t, "search", "--from", "Dhaka", "--to", "Rajshahi", "--date", "23/10/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")

	_, err = run(t, "search", "--from", "Dhaka", "--to", "Rajshahi", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestSearch_CatalogFlag(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
buses:
  - id: g1
    companyName: Green Line
    busName: Scania Multi-Axle
    startTime: "10:00 PM"
    arrivalTime: "5:30 AM"
    seatsLeft: 8
    totalSeats: 36
    price: 1400
    from: Dhaka
    to: Sylhet
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := run(t, "search", "--catalog", path, "--from", "Dhaka", "--to", "Sylhet")
	require.NoError(t, err)
	assert.Contains(t, out, "Green Line")
	assert.Contains(t, out, "few left")
	assert.Contains(t, out, "Total Buses Found: 1 | Total Seats Available: 8")
}

func TestSeats(t *testing.T) {
	isolate(t)

	out, err := run(t, "seats", "--bus", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Row 1")
	assert.Contains(t, out, "1 XX")
	assert.Contains(t, out, "2 []")
	assert.Contains(t, out, "12 ##")
	assert.Contains(t, out, "Kallyanpur Counter")
	assert.Contains(t, out, "Rajabari Counter")

	_, err = run(t, "seats", "--bus", "99")
	assert.True(t, service.IsNotFound(err), "expected not found, got %v", err)

	_, err = run(t, "seats")
	assert.Error(t, err)
}

func TestBook(t *testing.T) {
	isolate(t)

	out, err := run(t, "book", "--bus", "1",
		"--seat", "2", "--seat", "seat-3",
		"--boarding", "bp1", "--dropping", "dp2",
		"--name", "Rahim Uddin", "--mobile", "01712345678")
	require.NoError(t, err)
	assert.Contains(t, out, "Rahim Uddin")
	assert.Contains(t, out, "2, 3")
	assert.Contains(t, out, "[06:00 AM] Kallyanpur Counter")
	assert.Contains(t, out, "[12:30 PM] Rajshahi Counter")
	assert.Contains(t, out, "৳1400")
	assert.Contains(t, out, "৳40")
	assert.Contains(t, out, "৳56")
	assert.Contains(t, out, "৳1496")
	assert.Contains(t, out, "Booking confirmed successfully!")
}

func TestBook_Failures(t *testing.T) {
	isolate(t)
	base := []string{"book", "--bus", "1", "--boarding", "bp1", "--dropping", "dp1", "--name", "Rahim"}

	cases := []struct {
		name    string
		args    []string
		want    error
		message string
	}{
		{"booked seat", []string{"--seat", "1", "--mobile", "01712345678"}, booking.ErrSeatUnavailable, "This seat is not available"},
		{"unknown seat", []string{"--seat", "99", "--mobile", "01712345678"}, booking.ErrUnknownSeat, "This seat does not exist on this bus"},
		{"no seats", []string{"--mobile", "01712345678"}, booking.ErrNoSeatSelected, "Please select at least one seat"},
		{"short mobile", []string{"--seat", "2", "--mobile", "0171234567"}, booking.ErrInvalidMobile, "Please enter a valid 11-digit mobile number"},
		{"missing mobile", []string{"--seat", "2"}, booking.ErrMissingField, "Please fill all required fields"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, append(append([]string{}, base...), tc.args...)...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.message, err.Error())
			assert.NotContains(t, out, "Booking confirmed")
		})
	}
}

func TestBook_UnknownPoint(t *testing.T) {
	isolate(t)

	_, err := run(t, "book", "--bus", "1", "--seat", "2",
		"--boarding", "bp9", "--dropping", "dp1",
		"--name", "Rahim", "--mobile", "01712345678")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown boarding point "bp9"`)
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bus.log")

	logger, closeLog, err := newLogger(config.LogsConfig{Level: "debug", File: path}, io.Discard)
	require.NoError(t, err)
	logger.Debug("seat toggled", "seat", "seat-2")
	require.NoError(t, closeLog())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "level=DEBUG")
	assert.Contains(t, string(raw), "app=bus-ticket-cli")
	assert.Contains(t, string(raw), "seat=seat-2")
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := newLogger(config.LogsConfig{Level: "warn"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestResolveSeat(t *testing.T) {
	seats := service.MockSeats(8, 4)

	assert.Equal(t, "seat-3", resolveSeat(seats, "seat-3"))
	assert.Equal(t, "seat-3", resolveSeat(seats, " 3 "))
	assert.Equal(t, "A9", resolveSeat(seats, "A9"))
}
