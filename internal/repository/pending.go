package repository

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ajserber/roadwatch/internal/models"
)

// PendingTracker manages the lifecycle of reports between local submit
// and server confirmation. Entries are owned by the tracker until a
// matching confirmed record arrives; confirmation and failure both
// remove the entry.
type PendingTracker struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	reporter models.Reporter

	// Self-echo fallback tolerances: an incoming record without a
	// correlation key is claimed when it was reported by this session's
	// user within radiusMeters and window of an outstanding entry.
	window       time.Duration
	radiusMeters float64

	byKey map[string]*models.PendingReport
	order []string
}

func NewPendingTracker(reporter models.Reporter, window time.Duration, radiusMeters float64, clock clockwork.Clock) *PendingTracker {
	return &PendingTracker{
		clock:        clock,
		reporter:     reporter,
		window:       window,
		radiusMeters: radiusMeters,
		byKey:        make(map[string]*models.PendingReport),
	}
}

// Begin registers a draft as an outstanding report and returns its
// correlation key. The key travels with the outbound publish so the
// broadcast echo can be recognized without guessing.
func (t *PendingTracker) Begin(d models.Draft) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := uuid.NewString()
	t.byKey[key] = &models.PendingReport{
		Key:         key,
		Draft:       d,
		ReportedBy:  t.reporter,
		Status:      models.ReportPending,
		SubmittedAt: t.clock.Now(),
	}
	t.order = append(t.order, key)
	return key
}

// Confirm removes the entry for key. The caller upserts the confirmed
// record into the hazard store; ownership transfers there.
func (t *PendingTracker) Confirm(key string) (*models.PendingReport, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.byKey[key]
	if !ok {
		return nil, fmt.Errorf("no pending report with key %s", key)
	}
	t.remove(key)
	p.Status = models.ReportConfirmed
	return p, nil
}

// Fail removes the entry for key and returns it with its status set to
// failed, so the caller can surface the error. Single attempt, no retry.
func (t *PendingTracker) Fail(key string) (*models.PendingReport, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.byKey[key]
	if !ok {
		return nil, fmt.Errorf("no pending report with key %s", key)
	}
	t.remove(key)
	p.Status = models.ReportFailed
	return p, nil
}

// List returns the outstanding reports in submission order. Entries are
// copies: Confirm and Fail mutate the tracked entry's status, and
// callers hand these snapshots to code running outside the lock.
func (t *PendingTracker) List() []*models.PendingReport {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*models.PendingReport, 0, len(t.order))
	for _, key := range t.order {
		if p, ok := t.byKey[key]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

// Len returns the number of outstanding reports.
func (t *PendingTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byKey)
}

// Clear discards all outstanding reports. Used on session teardown.
func (t *PendingTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byKey = make(map[string]*models.PendingReport)
	t.order = nil
}

// Match reports whether the incoming record is the confirmation of an
// outstanding entry. A correlation key match is authoritative. Records
// without a key (bulk fetch copies, clients that do not send one) fall
// back to a heuristic: same reporter, location within radiusMeters and
// created within the tolerance window of an outstanding submission.
func (t *PendingTracker) Match(h *models.Hazard) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if h.ClientKey != "" {
		if _, ok := t.byKey[h.ClientKey]; ok {
			return h.ClientKey, true
		}
		return "", false
	}

	if h.ReportedBy.ID == "" || h.ReportedBy.ID != t.reporter.ID {
		return "", false
	}
	for _, key := range t.order {
		p, ok := t.byKey[key]
		if !ok {
			continue
		}
		if p.Draft.Type != h.Type {
			continue
		}
		if h.CreatedAt.Sub(p.SubmittedAt).Abs() > t.window {
			continue
		}
		if haversineMeters(p.Draft.Latitude, p.Draft.Longitude, h.Latitude, h.Longitude) <= t.radiusMeters {
			return key, true
		}
	}
	return "", false
}

// remove must be called with the mutex held.
func (t *PendingTracker) remove(key string) {
	delete(t.byKey, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

const earthRadiusMeters = 6371000

// haversineMeters returns the great-circle distance between two points.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
