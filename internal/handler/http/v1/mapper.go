package v1

import (
	"github.com/ajserber/roadwatch/internal/models"
	"github.com/ajserber/roadwatch/internal/service"
)

// DTOToDraft converts a submit request into a domain draft.
func DTOToDraft(req SubmitHazardRequest) models.Draft {
	return models.Draft{
		Type:        models.HazardType(req.Type),
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
}

// ModelToHazardResponse converts a domain record into its response DTO.
func ModelToHazardResponse(h *models.Hazard) HazardResponse {
	return HazardResponse{
		ID:          h.ID,
		Type:        string(h.Type),
		Description: h.Description,
		Address:     h.Address,
		Latitude:    h.Latitude,
		Longitude:   h.Longitude,
		ReportedBy: ReporterResponse{
			ID:             h.ReportedBy.ID,
			Username:       h.ReportedBy.Username,
			ProfilePicture: h.ReportedBy.ProfilePicture,
		},
		CreatedAt: h.CreatedAt,
	}
}

// ModelToPendingResponse converts an outstanding report into its DTO.
func ModelToPendingResponse(p *models.PendingReport) PendingResponse {
	return PendingResponse{
		Key:         p.Key,
		Type:        string(p.Draft.Type),
		Description: p.Draft.Description,
		Latitude:    p.Draft.Latitude,
		Longitude:   p.Draft.Longitude,
		Status:      string(p.Status),
		SubmittedAt: p.SubmittedAt,
	}
}

// RegionToResponse converts a viewport into its DTO.
func RegionToResponse(r service.Region) RegionResponse {
	return RegionResponse{
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		LatitudeDelta:  r.LatitudeDelta,
		LongitudeDelta: r.LongitudeDelta,
	}
}

// SnapshotToResponse converts a full state snapshot into the GET /hazards
// response shape. Slices are always non-nil so consumers see [] rather
// than null.
func SnapshotToResponse(snap service.Snapshot) HazardListResponse {
	resp := HazardListResponse{
		Status:    string(snap.Status),
		LoadError: snap.LoadError,
		Hazards:   make([]HazardResponse, len(snap.Hazards)),
		Pending:   make([]PendingResponse, len(snap.Pending)),
		Toasts:    ToastsToResponses(snap.Toasts),
	}
	for i, h := range snap.Hazards {
		resp.Hazards[i] = ModelToHazardResponse(h)
	}
	for i, p := range snap.Pending {
		resp.Pending[i] = ModelToPendingResponse(p)
	}
	if snap.Selection != nil {
		resp.Selection = &SelectionResponse{
			ID:     snap.Selection.ID,
			Region: RegionToResponse(snap.Selection.Region),
		}
	}
	return resp
}

// ToastsToResponses converts live toasts into their DTOs.
func ToastsToResponses(toasts []service.Toast) []ToastResponse {
	out := make([]ToastResponse, len(toasts))
	for i, t := range toasts {
		out[i] = ToastResponse{
			Message:  t.Message,
			Type:     string(t.Type),
			PostedAt: t.PostedAt,
		}
	}
	return out
}

// ModelsToNotificationResponses converts history entries into their DTOs.
func ModelsToNotificationResponses(records []models.NotificationRecord) []NotificationEntryResponse {
	out := make([]NotificationEntryResponse, len(records))
	for i, r := range records {
		out[i] = NotificationEntryResponse{
			ID:        r.ID,
			Message:   r.Message,
			HazardID:  r.HazardID,
			Read:      r.Read,
			CreatedAt: r.CreatedAt,
		}
	}
	return out
}
