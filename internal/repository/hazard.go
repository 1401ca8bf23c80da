package repository

import (
	"sort"
	"sync"

	"github.com/ajserber/roadwatch/internal/models"
)

// HazardStore is the in-memory authoritative set of confirmed hazard
// records for the current session. At most one record per ID exists at
// any time; replacement is last-write-wins.
type HazardStore struct {
	mu   sync.RWMutex
	byID map[string]*models.Hazard
}

func NewHazardStore() *HazardStore {
	return &HazardStore{
		byID: make(map[string]*models.Hazard),
	}
}

// List returns all records, newest first by CreatedAt. Ties are broken
// by ID so the order is deterministic.
func (s *HazardStore) List() []*models.Hazard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hazards := make([]*models.Hazard, 0, len(s.byID))
	for _, h := range s.byID {
		hazards = append(hazards, h)
	}
	sort.Slice(hazards, func(i, j int) bool {
		if !hazards[i].CreatedAt.Equal(hazards[j].CreatedAt) {
			return hazards[i].CreatedAt.After(hazards[j].CreatedAt)
		}
		return hazards[i].ID < hazards[j].ID
	})
	return hazards
}

// Get returns the record with the given ID, if present.
func (s *HazardStore) Get(id string) (*models.Hazard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.byID[id]
	return h, ok
}

// Upsert inserts the record if its ID is unknown and replaces the stored
// record otherwise. The incoming record always wins. The return value
// reports whether this was an insert; callers use it to decide whether a
// "new hazard" notification is due (replaces never notify).
func (s *HazardStore) Upsert(h *models.Hazard) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, known := s.byID[h.ID]
	s.byID[h.ID] = h
	return !known
}

// Remove deletes the record with the given ID. Removing an absent ID is
// a no-op; the return value reports whether a record was deleted.
func (s *HazardStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byID[id]
	delete(s.byID, id)
	return ok
}

// Replace swaps the entire confirmed set for the given records
// atomically and returns the IDs that were present before but are not in
// the new set. Pending reports live in the tracker, not here, so a
// replace cannot erase optimistic state.
func (s *HazardStore) Replace(records []*models.Hazard) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]*models.Hazard, len(records))
	for _, h := range records {
		next[h.ID] = h
	}

	var removed []string
	for id := range s.byID {
		if _, ok := next[id]; !ok {
			removed = append(removed, id)
		}
	}
	s.byID = next
	return removed
}

// Merge upserts all records without removing anything. Used instead of
// Replace when push events landed before the bulk fetch finished, so
// early arrivals are not thrown away.
func (s *HazardStore) Merge(records []*models.Hazard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range records {
		s.byID[h.ID] = h
	}
}

// Clear discards all records. Used on session teardown: a later
// activation always starts from a fresh bulk fetch.
func (s *HazardStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]*models.Hazard)
}

// Len returns the number of confirmed records.
func (s *HazardStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
