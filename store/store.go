package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bus-ticket-cli/model"
)

const (
	appDir          = "bus-ticket-cli"
	routesFile      = "routes.json"
	maxRecentRoutes = 8
)

type RecentRoute struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	SearchedAt time.Time `json:"searched_at"`
}

func (r RecentRoute) Route() model.Route {
	return model.Route{From: r.From, To: r.To}
}

type routeHistory struct {
	Routes []RecentRoute `json:"routes"`
}

// LoadRecentRoutes returns searched routes, most recent first.
func LoadRecentRoutes() ([]RecentRoute, error) {
	path, err := configPath(routesFile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history routeHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid route history format")
	}
	return history.Routes, nil
}

// RememberRoute moves route to the front of the history, dropping older
// duplicates and trimming to the most recent entries.
func RememberRoute(route model.Route) error {
	from := strings.TrimSpace(route.From)
	to := strings.TrimSpace(route.To)
	if from == "" || to == "" {
		return errors.New("from and to are required")
	}

	history, _ := LoadRecentRoutes()
	next := []RecentRoute{{From: from, To: to, SearchedAt: time.Now()}}
	for _, existing := range history {
		if stringsEqualFold(existing.From, from) && stringsEqualFold(existing.To, to) {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentRoutes {
			break
		}
	}
	return saveRecentRoutes(next)
}

// ClearRecentRoutes removes the history file.
func ClearRecentRoutes() error {
	path, err := configPath(routesFile)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func saveRecentRoutes(routes []RecentRoute) error {
	path, err := configPath(routesFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(routeHistory{Routes: routes}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}

func stringsEqualFold(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
