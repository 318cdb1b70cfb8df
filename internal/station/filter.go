package station

// Filter selects stations by ID, city name, or station name.
// A station matches when it appears in ANY configured set; configuring
// several sets widens the selection rather than narrowing it. Name
// matching is exact and case-sensitive.
type Filter struct {
	StationIDs   []string
	CityNames    []string
	StationNames []string
}

// IsEmpty reports whether no criteria are configured. An empty filter
// matches nothing; callers should warn rather than silently create an
// empty entity set.
func (f Filter) IsEmpty() bool {
	return len(f.StationIDs) == 0 && len(f.CityNames) == 0 && len(f.StationNames) == 0
}

// Matches reports whether the station satisfies any configured criterion.
func (f Filter) Matches(s *Station) bool {
	for _, id := range f.StationIDs {
		if s.ID == id {
			return true
		}
	}
	for _, city := range f.CityNames {
		if s.City == city {
			return true
		}
	}
	for _, name := range f.StationNames {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Apply returns the matching stations in snapshot order, deduplicated
// by station ID. Snapshot order is the API's source order, so the
// result is stable across calls for the same snapshot.
func (f Filter) Apply(snap *Snapshot) []*Station {
	if f.IsEmpty() {
		return nil
	}

	var matched []*Station
	seen := make(map[string]struct{})
	for _, s := range snap.Stations {
		if _, dup := seen[s.ID]; dup {
			continue
		}
		if f.Matches(s) {
			seen[s.ID] = struct{}{}
			matched = append(matched, s)
		}
	}
	return matched
}
