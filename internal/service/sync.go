package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/ajserber/roadwatch/internal/config"
	"github.com/ajserber/roadwatch/internal/models"
	"github.com/ajserber/roadwatch/internal/observability"
	"github.com/ajserber/roadwatch/internal/repository"
	"github.com/ajserber/roadwatch/internal/transport"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/ajserber/roadwatch/internal/service HazardAPI,SyncManager

// HazardAPI is the REST collaborator contract.
type HazardAPI interface {
	FetchHazards(ctx context.Context) ([]*models.Hazard, error)
	CreateHazard(ctx context.Context, d models.Draft) (*models.Hazard, error)
	FetchNotifications(ctx context.Context) ([]models.NotificationRecord, error)
}

// SessionStatus is the lifecycle state reported to the presentation layer.
type SessionStatus string

const (
	SessionIdle   SessionStatus = "idle"
	SessionActive SessionStatus = "active"
	SessionFailed SessionStatus = "failed"
)

// SelectionView is the focused hazard and viewport, when one is selected.
type SelectionView struct {
	ID     string `json:"id"`
	Region Region `json:"region"`
}

// Snapshot is the full state handed to the presentation layer: confirmed
// records, outstanding optimistic reports, selection, and visible toasts.
type Snapshot struct {
	Status    SessionStatus           `json:"status"`
	LoadError string                  `json:"load_error,omitempty"`
	Hazards   []*models.Hazard        `json:"hazards"`
	Pending   []*models.PendingReport `json:"pending"`
	Selection *SelectionView          `json:"selection,omitempty"`
	Toasts    []Toast                 `json:"toasts"`
}

// SyncManager orchestrates bulk fetch, push-event ingestion, and local
// submission for one client session.
type SyncManager interface {
	Activate(ctx context.Context) error
	Deactivate()
	Refresh(ctx context.Context) error
	Submit(ctx context.Context, d models.Draft) (*models.Hazard, error)
	Select(id string) (Region, error)
	Dismiss()
	Snapshot() Snapshot
	Notifications(ctx context.Context) ([]models.NotificationRecord, error)
}

var (
	ErrAlreadyActive = errors.New("sync session already active")
	ErrNotActive     = errors.New("sync session not active")
	ErrInvalidDraft  = errors.New("invalid hazard draft")
	ErrUnknownHazard = errors.New("unknown hazard")
	ErrStaleSession  = errors.New("session superseded before response arrived")
)

type syncService struct {
	store     *repository.HazardStore
	tracker   *repository.PendingTracker
	api       HazardAPI
	transport transport.Client
	logger    *logrus.Logger
	cfg       *config.Config
	metrics   *observability.Metrics
	validate  *validator.Validate

	// mu serializes every mutation of shared session state. Push events,
	// fetch completions, and user intents may arrive on different
	// goroutines; the single-writer discipline lives here.
	mu         sync.Mutex
	generation int
	active     bool
	loadErr    error
	pushSeen   bool
	selection  selectionState
	toasts     *notifier
}

func NewSyncService(
	store *repository.HazardStore,
	tracker *repository.PendingTracker,
	api HazardAPI,
	tc transport.Client,
	logger *logrus.Logger,
	cfg *config.Config,
	metrics *observability.Metrics,
	clock clockwork.Clock,
) SyncManager {
	s := &syncService{
		store:     store,
		tracker:   tracker,
		api:       api,
		transport: tc,
		logger:    logger,
		cfg:       cfg,
		metrics:   metrics,
		validate:  validator.New(),
		toasts:    newNotifier(clock, cfg.NotificationTTL),
	}
	tc.On(transport.EventNewHazard, s.handleHazardEvent)
	return s
}

// Activate opens the session: connect the push channel, bulk fetch the
// hazard set, load it. A fetch failure is fatal to activation and is
// surfaced as a load error, never as an empty hazard set. The fetch and
// the connection have no ordering guarantee between them; events that
// land before the fetch completes are kept by loading with a merge
// instead of a replace.
func (s *syncService) Activate(ctx context.Context) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sync",
		"method":  "Activate",
	})

	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return ErrAlreadyActive
	}
	s.generation++
	gen := s.generation
	s.active = true
	s.loadErr = nil
	s.pushSeen = false
	s.mu.Unlock()

	log.Info("Activating sync session")

	// Connect failure is not fatal: the channel contract says loss of
	// connection is silence, and reconnection policy is out of scope.
	// The session still serves the fetched set, just without live updates.
	if err := s.transport.Connect(ctx); err != nil {
		log.WithError(err).Warn("Transport connect failed, continuing without live updates")
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()
	hazards, err := s.api.FetchHazards(fetchCtx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		log.Warn("Discarding bulk fetch response for superseded session")
		return ErrStaleSession
	}
	if err != nil {
		s.active = false
		s.loadErr = err
		s.metrics.SessionActive.Set(0)
		if cerr := s.transport.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close transport after load failure")
		}
		log.WithError(err).Error("Bulk fetch failed, activation aborted")
		return fmt.Errorf("activate: bulk fetch: %w", err)
	}

	s.applyBulkLocked(hazards, log)
	s.metrics.SessionActive.Set(1)
	log.WithField("count", len(hazards)).Info("Sync session active")
	return nil
}

// Deactivate tears the session down: close the connection, discard all
// in-memory state. The generation bump makes any still-in-flight
// response detectably stale. A later Activate starts from a fresh fetch.
func (s *syncService) Deactivate() {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sync",
		"method":  "Deactivate",
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.active = false
	s.loadErr = nil
	s.pushSeen = false
	s.selection.clear()
	s.toasts.clear()
	s.tracker.Clear()
	s.store.Clear()
	s.metrics.SessionActive.Set(0)

	if err := s.transport.Close(); err != nil {
		log.WithError(err).Warn("Failed to close transport")
	}
	log.Info("Sync session deactivated")
}

// Refresh re-fetches the hazard set and reconciles it against the
// current one. Records that disappeared server-side are removed here,
// which is also where a selection pointing at them gets invalidated.
func (s *syncService) Refresh(ctx context.Context) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sync",
		"method":  "Refresh",
	})

	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return ErrNotActive
	}
	gen := s.generation
	s.pushSeen = false
	s.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()
	hazards, err := s.api.FetchHazards(fetchCtx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		log.Warn("Discarding refresh response for superseded session")
		return ErrStaleSession
	}
	if err != nil {
		// Unlike activation, a failed refresh keeps the current set.
		log.WithError(err).Error("Refresh fetch failed")
		return fmt.Errorf("refresh: bulk fetch: %w", err)
	}

	s.applyBulkLocked(hazards, log)
	return nil
}

// applyBulkLocked loads a fetched set. Fetched copies of this client's
// own outstanding reports confirm them. When push events landed during
// the fetch window the load merges instead of replacing, so early
// arrivals are not discarded. Callers hold s.mu.
func (s *syncService) applyBulkLocked(hazards []*models.Hazard, log *logrus.Entry) {
	for _, h := range hazards {
		if key, ok := s.tracker.Match(h); ok {
			if _, err := s.tracker.Confirm(key); err == nil {
				log.WithField("hazard_id", h.ID).Debug("Bulk fetch confirmed a pending report")
			}
		}
	}

	if s.pushSeen {
		s.store.Merge(hazards)
		s.metrics.BulkLoads.WithLabelValues("merge").Inc()
		return
	}

	removed := s.store.Replace(hazards)
	s.metrics.BulkLoads.WithLabelValues("replace").Inc()
	s.invalidateSelectionLocked(removed, log)
}

// handleHazardEvent ingests one inbound push event. Malformed payloads
// are dropped with a diagnostic log and never reach the store. Events
// recognized as echoes of this client's own submissions confirm the
// pending entry and raise no notification; replaces of known records
// raise none either. Only genuine inserts notify.
func (s *syncService) handleHazardEvent(data json.RawMessage) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sync",
		"method":  "handleHazardEvent",
	})

	var payload models.HazardPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		s.metrics.EventsDropped.Inc()
		log.WithError(err).Warn("Dropping unparseable push event")
		return
	}
	h, err := payload.ToHazard()
	if err != nil {
		s.metrics.EventsDropped.Inc()
		log.WithError(err).Warn("Dropping malformed push event")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		s.metrics.EventsDropped.Inc()
		log.WithField("hazard_id", h.ID).Debug("Dropping push event outside an active session")
		return
	}
	s.pushSeen = true

	if key, ok := s.tracker.Match(h); ok {
		if _, err := s.tracker.Confirm(key); err == nil {
			s.store.Upsert(h)
			s.metrics.EchoesSuppressed.Inc()
			log.WithField("hazard_id", h.ID).Debug("Push event confirmed this client's own report")
			return
		}
	}

	inserted := s.store.Upsert(h)
	s.metrics.EventsApplied.Inc()
	if inserted {
		s.toasts.push(h.Type)
		s.metrics.ToastsRaised.Inc()
		log.WithFields(logrus.Fields{"hazard_id": h.ID, "type": h.Type}).Info("New hazard received")
	}
}

// Submit validates a local draft, registers it as pending, and performs
// the single create attempt. On success the confirmed record enters the
// store and is published so other clients see it without waiting for
// their next fetch. On failure the pending entry is reverted and the
// error surfaced; there is no retry.
func (s *syncService) Submit(ctx context.Context, d models.Draft) (*models.Hazard, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sync",
		"method":  "Submit",
		"type":    d.Type,
	})

	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return nil, ErrNotActive
	}
	gen := s.generation
	s.mu.Unlock()

	if err := s.validate.Struct(d); err != nil {
		s.metrics.Submissions.WithLabelValues("rejected").Inc()
		log.WithError(err).Warn("Rejecting incomplete draft")
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	key := s.tracker.Begin(d)
	log.WithField("correlation_key", key).Info("Submitting hazard report")

	h, err := s.api.CreateHazard(ctx, d)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		log.Warn("Discarding create response for superseded session")
		return nil, ErrStaleSession
	}
	if err != nil {
		if _, ferr := s.tracker.Fail(key); ferr != nil {
			log.WithError(ferr).Warn("Pending entry already gone on failure")
		}
		s.metrics.Submissions.WithLabelValues("failed").Inc()
		log.WithError(err).Error("Hazard submission failed")
		return nil, fmt.Errorf("submit hazard: %w", err)
	}

	// The correlation key travels with the outbound publish so the
	// broadcast echo is recognized without the reporter/location heuristic.
	h.ClientKey = key

	if _, err := s.tracker.Confirm(key); err != nil {
		// A racing echo may have confirmed it already.
		log.WithError(err).Debug("Pending entry already confirmed")
	}
	s.store.Upsert(h)

	if err := s.transport.Emit(transport.EventNewHazard, models.PayloadFromHazard(h)); err != nil {
		// Best-effort, at-most-once: the record is confirmed either way,
		// other clients catch up on their next fetch.
		log.WithError(err).Warn("Failed to publish hazard to push channel")
	}

	s.metrics.Submissions.WithLabelValues("accepted").Inc()
	log.WithField("hazard_id", h.ID).Info("Hazard report confirmed")
	return h, nil
}

// Select focuses a hazard and recenters the viewport on it.
func (s *syncService) Select(id string) (Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.store.Get(id)
	if !ok {
		return Region{}, fmt.Errorf("%w: %s", ErrUnknownHazard, id)
	}
	return s.selection.selectHazard(h.ID, h.Latitude, h.Longitude), nil
}

// Dismiss clears the selection.
func (s *syncService) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.clear()
}

// invalidateSelectionLocked forces the unselected state when the focused
// record was removed. Callers hold s.mu.
func (s *syncService) invalidateSelectionLocked(removed []string, log *logrus.Entry) {
	id, _, ok := s.selection.current()
	if !ok {
		return
	}
	for _, rid := range removed {
		if rid == id {
			s.selection.clear()
			log.WithField("hazard_id", id).Info("Selected hazard removed, clearing selection")
			return
		}
	}
}

// Snapshot returns the current state for the presentation layer.
func (s *syncService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Status:  SessionIdle,
		Hazards: s.store.List(),
		Pending: s.tracker.List(),
		Toasts:  s.toasts.active(),
	}
	if s.active {
		snap.Status = SessionActive
	} else if s.loadErr != nil {
		snap.Status = SessionFailed
		snap.LoadError = s.loadErr.Error()
	}
	if id, region, ok := s.selection.current(); ok {
		snap.Selection = &SelectionView{ID: id, Region: region}
	}
	return snap
}

// Notifications returns the server-side notification history.
func (s *syncService) Notifications(ctx context.Context) ([]models.NotificationRecord, error) {
	records, err := s.api.FetchNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch notifications: %w", err)
	}
	return records, nil
}
