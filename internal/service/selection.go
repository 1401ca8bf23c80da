package service

// Viewport deltas used when recentering on a hazard, matching the map's
// default zoom level.
const (
	defaultLatitudeDelta  = 0.0922
	defaultLongitudeDelta = 0.0421
)

// Region is the map viewport.
type Region struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}

// selectionState tracks which hazard is focused on the map. Two states:
// unselected (id empty) and selected. It carries no mutex: it is only
// mutated under the owning service's lock, never from two handlers at
// once.
type selectionState struct {
	id     string
	region Region
}

// selectHazard focuses a hazard and recenters the viewport on it.
func (s *selectionState) selectHazard(id string, lat, lon float64) Region {
	s.id = id
	s.region = Region{
		Latitude:       lat,
		Longitude:      lon,
		LatitudeDelta:  defaultLatitudeDelta,
		LongitudeDelta: defaultLongitudeDelta,
	}
	return s.region
}

func (s *selectionState) clear() {
	s.id = ""
	s.region = Region{}
}

// current returns the focused hazard ID and viewport. ok is false in the
// unselected state.
func (s *selectionState) current() (string, Region, bool) {
	if s.id == "" {
		return "", Region{}, false
	}
	return s.id, s.region, true
}
