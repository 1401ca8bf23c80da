package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/ajserber/roadwatch/internal/config"
	"github.com/ajserber/roadwatch/internal/service"
)

// Handler exposes the sync engine to the presentation layer over a
// local HTTP API.
type Handler struct {
	sync     service.SyncManager
	logger   *logrus.Logger
	validate *validator.Validate
	cfg      *config.Config
}

func NewHandler(sync service.SyncManager, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		sync:     sync,
		logger:   logger,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// activateSession opens a sync session: bulk fetch plus push channel.
// A bulk fetch failure is fatal to activation and surfaces here as a
// gateway error, never as an empty hazard set.
func (h *Handler) activateSession(c *gin.Context) {
	log := h.logger.WithField("method", "activateSession")

	if err := h.sync.Activate(c.Request.Context()); err != nil {
		if errors.Is(err, service.ErrAlreadyActive) {
			c.JSON(http.StatusConflict, gin.H{"error": "session already active"})
			return
		}
		log.WithError(err).Error("Failed to activate sync session")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "active"})
}

// deactivateSession tears the session down and discards in-memory state.
func (h *Handler) deactivateSession(c *gin.Context) {
	h.sync.Deactivate()
	c.Status(http.StatusNoContent)
}

// listHazards returns the merged snapshot: confirmed records, pending
// optimistic reports, the selection, and live toasts.
func (h *Handler) listHazards(c *gin.Context) {
	c.JSON(http.StatusOK, SnapshotToResponse(h.sync.Snapshot()))
}

// refreshHazards re-fetches the hazard set and reconciles it.
func (h *Handler) refreshHazards(c *gin.Context) {
	log := h.logger.WithField("method", "refreshHazards")

	if err := h.sync.Refresh(c.Request.Context()); err != nil {
		if errors.Is(err, service.ErrNotActive) {
			c.JSON(http.StatusConflict, gin.H{"error": "session not active"})
			return
		}
		log.WithError(err).Error("Failed to refresh hazards")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, SnapshotToResponse(h.sync.Snapshot()))
}

// submitHazard files a local report. Incomplete drafts are rejected
// here, before any network call; a rejected create is surfaced as an
// error with no retry.
func (h *Handler) submitHazard(c *gin.Context) {
	var input SubmitHazardRequest
	log := h.logger.WithField("method", "submitHazard")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hazard, err := h.sync.Submit(c.Request.Context(), DTOToDraft(input))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDraft):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": "session not active"})
		case errors.Is(err, service.ErrStaleSession):
			c.JSON(http.StatusConflict, gin.H{"error": "session superseded during submission"})
		default:
			log.WithError(err).Error("Failed to submit hazard")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, ModelToHazardResponse(hazard))
}

// getSelection returns the focused hazard. Nothing selected is a valid
// state and answers 404.
func (h *Handler) getSelection(c *gin.Context) {
	snap := h.sync.Snapshot()
	if snap.Selection == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no hazard selected"})
		return
	}
	c.JSON(http.StatusOK, SelectionResponse{
		ID:     snap.Selection.ID,
		Region: RegionToResponse(snap.Selection.Region),
	})
}

// setSelection focuses a hazard and returns the recentered viewport.
func (h *Handler) setSelection(c *gin.Context) {
	var input SelectHazardRequest
	log := h.logger.WithField("method", "setSelection")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	region, err := h.sync.Select(input.ID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownHazard) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hazard not found"})
			return
		}
		log.WithError(err).Error("Failed to select hazard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, SelectionResponse{ID: input.ID, Region: RegionToResponse(region)})
}

// clearSelection dismisses the focused hazard.
func (h *Handler) clearSelection(c *gin.Context) {
	h.sync.Dismiss()
	c.Status(http.StatusNoContent)
}

// listNotifications merges the live toasts with the server-side history.
func (h *Handler) listNotifications(c *gin.Context) {
	log := h.logger.WithField("method", "listNotifications")

	history, err := h.sync.Notifications(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to fetch notification history")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	snap := h.sync.Snapshot()
	c.JSON(http.StatusOK, NotificationsResponse{
		Toasts:  ToastsToResponses(snap.Toasts),
		History: ModelsToNotificationResponses(history),
	})
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
