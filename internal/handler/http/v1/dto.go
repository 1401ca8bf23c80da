package v1

import (
	"time"
)

// SubmitHazardRequest is the body of POST /hazards.
type SubmitHazardRequest struct {
	Type        string  `json:"type" validate:"required,oneof=pothole traffic construction other"`
	Description string  `json:"description" validate:"required,min=1,max=500"`
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
}

// SelectHazardRequest is the body of PUT /hazards/selected.
type SelectHazardRequest struct {
	ID string `json:"id" validate:"required"`
}

// ReporterResponse identifies the user who filed a hazard.
type ReporterResponse struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// HazardResponse is a confirmed hazard record.
type HazardResponse struct {
	ID          string           `json:"id"`
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Address     string           `json:"address,omitempty"`
	Latitude    float64          `json:"latitude"`
	Longitude   float64          `json:"longitude"`
	ReportedBy  ReporterResponse `json:"reported_by"`
	CreatedAt   time.Time        `json:"created_at"`
}

// PendingResponse is a locally submitted report awaiting confirmation.
type PendingResponse struct {
	Key         string    `json:"key"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// RegionResponse is the map viewport.
type RegionResponse struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}

// SelectionResponse is the currently focused hazard, when one is set.
type SelectionResponse struct {
	ID     string         `json:"id"`
	Region RegionResponse `json:"region"`
}

// ToastResponse is a transient new-hazard notification.
type ToastResponse struct {
	Message  string    `json:"message"`
	Type     string    `json:"type"`
	PostedAt time.Time `json:"posted_at"`
}

// HazardListResponse is the merged snapshot served by GET /hazards:
// confirmed records plus this client's outstanding optimistic reports,
// with the selection and live toasts alongside.
type HazardListResponse struct {
	Status    string             `json:"status"`
	LoadError string             `json:"load_error,omitempty"`
	Hazards   []HazardResponse   `json:"hazards"`
	Pending   []PendingResponse  `json:"pending"`
	Selection *SelectionResponse `json:"selection,omitempty"`
	Toasts    []ToastResponse    `json:"toasts"`
}

// NotificationEntryResponse is one server-side notification history entry.
type NotificationEntryResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	HazardID  string    `json:"hazard_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationsResponse merges the live toasts with the server history.
type NotificationsResponse struct {
	Toasts  []ToastResponse             `json:"toasts"`
	History []NotificationEntryResponse `json:"history"`
}
