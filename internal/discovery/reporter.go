// Package discovery renders operator-facing summaries of the station list.
package discovery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ecosense/ecosense/internal/station"
)

// StationSummary is the short per-station form used in city listings.
type StationSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Cities returns the distinct city names across the snapshot, sorted.
func Cities(snap *station.Snapshot) []string {
	seen := make(map[string]struct{})
	var cities []string
	for _, s := range snap.Stations {
		if _, ok := seen[s.City]; ok {
			continue
		}
		seen[s.City] = struct{}{}
		cities = append(cities, s.City)
	}
	sort.Strings(cities)
	return cities
}

// CityStations returns the stations in a city (exact name match), in
// source order.
func CityStations(snap *station.Snapshot, city string) []StationSummary {
	var out []StationSummary
	for _, s := range snap.Stations {
		if s.City == city {
			out = append(out, StationSummary{ID: s.ID, Name: s.Name})
		}
	}
	return out
}

// RenderCities produces the notification body listing all cities.
func RenderCities(cities []string) string {
	var b strings.Builder
	b.WriteString("Available cities:\n")
	for _, c := range cities {
		b.WriteString(c)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderCityStations produces the notification body for one city's
// stations, one "<id> - <name>" line each. An empty result renders an
// explicit message rather than an empty body.
func RenderCityStations(city string, stations []StationSummary) string {
	if len(stations) == 0 {
		return fmt.Sprintf("No stations found in %s", city)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stations in %s:\n", city)
	for _, s := range stations {
		fmt.Fprintf(&b, "%s - %s\n", s.ID, s.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}
