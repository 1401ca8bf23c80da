package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajserber/roadwatch/internal/models"
)

func hazardAt(id string, createdAt time.Time) *models.Hazard {
	return &models.Hazard{
		ID:          id,
		Type:        models.HazardPothole,
		Description: "desc " + id,
		Latitude:    40.0,
		Longitude:   -74.0,
		CreatedAt:   createdAt,
	}
}

func TestUpsert_InsertThenReplace(t *testing.T) {
	store := NewHazardStore()
	now := time.Now()

	inserted := store.Upsert(hazardAt("a", now))
	assert.True(t, inserted)

	replacement := hazardAt("a", now)
	replacement.Description = "updated"
	inserted = store.Upsert(replacement)
	assert.False(t, inserted)

	got, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "updated", got.Description)
	assert.Equal(t, 1, store.Len())
}

func TestUpsert_UniquenessUnderArbitrarySequences(t *testing.T) {
	store := NewHazardStore()
	now := time.Now()

	// Repeated upserts over a small ID space must never produce duplicates.
	for i := 0; i < 100; i++ {
		id := fmt.Sprintf("id-%d", i%7)
		store.Upsert(hazardAt(id, now.Add(time.Duration(i)*time.Second)))

		seen := map[string]bool{}
		for _, h := range store.List() {
			assert.False(t, seen[h.ID], "duplicate id %s after %d upserts", h.ID, i+1)
			seen[h.ID] = true
		}
	}
	assert.Equal(t, 7, store.Len())
}

func TestUpsert_LastWriteWins(t *testing.T) {
	store := NewHazardStore()
	now := time.Now()

	first := hazardAt("x", now)
	first.Description = "first arrival"
	second := hazardAt("x", now)
	second.Description = "second arrival"

	store.Upsert(first)
	store.Upsert(second)

	hazards := store.List()
	require.Len(t, hazards, 1)
	assert.Equal(t, "second arrival", hazards[0].Description)
}

func TestList_NewestFirstTiesByID(t *testing.T) {
	store := NewHazardStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	store.Upsert(hazardAt("b", base))
	store.Upsert(hazardAt("a", base))
	store.Upsert(hazardAt("c", base.Add(time.Minute)))

	hazards := store.List()
	require.Len(t, hazards, 3)
	assert.Equal(t, "c", hazards[0].ID)
	assert.Equal(t, "a", hazards[1].ID)
	assert.Equal(t, "b", hazards[2].ID)
}

func TestRemove_Idempotent(t *testing.T) {
	store := NewHazardStore()
	store.Upsert(hazardAt("a", time.Now()))

	assert.True(t, store.Remove("a"))
	assert.False(t, store.Remove("a"))
	assert.False(t, store.Remove("never-existed"))
	assert.Equal(t, 0, store.Len())
}

func TestReplace_ReportsRemovedIDs(t *testing.T) {
	store := NewHazardStore()
	now := time.Now()
	store.Upsert(hazardAt("keep", now))
	store.Upsert(hazardAt("drop", now))

	removed := store.Replace([]*models.Hazard{
		hazardAt("keep", now),
		hazardAt("new", now),
	})

	assert.ElementsMatch(t, []string{"drop"}, removed)
	assert.Equal(t, 2, store.Len())
	_, ok := store.Get("drop")
	assert.False(t, ok)
	_, ok = store.Get("new")
	assert.True(t, ok)
}

func TestMerge_KeepsEarlyArrivals(t *testing.T) {
	store := NewHazardStore()
	now := time.Now()

	// A push event landed before the bulk fetch finished.
	store.Upsert(hazardAt("early-push", now))

	store.Merge([]*models.Hazard{
		hazardAt("fetched-1", now),
		hazardAt("fetched-2", now),
	})

	assert.Equal(t, 3, store.Len())
	_, ok := store.Get("early-push")
	assert.True(t, ok)
}
