package models

import (
	"time"
)

// HazardType classifies a road hazard report.
type HazardType string

const (
	HazardPothole      HazardType = "pothole"
	HazardTraffic      HazardType = "traffic"
	HazardConstruction HazardType = "construction"
	HazardOther        HazardType = "other"
)

// Valid reports whether t is one of the known hazard types.
func (t HazardType) Valid() bool {
	switch t {
	case HazardPothole, HazardTraffic, HazardConstruction, HazardOther:
		return true
	}
	return false
}

// Reporter identifies the user who filed a hazard report.
type Reporter struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// Hazard is a confirmed, server-identified road hazard record.
// Records are immutable once confirmed: an update replaces the whole
// value so that pointer equality stays meaningful for consumers.
type Hazard struct {
	ID          string     `json:"id"`
	Type        HazardType `json:"type"`
	Description string     `json:"description"`
	Address     string     `json:"address,omitempty"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	ReportedBy  Reporter   `json:"reported_by"`
	CreatedAt   time.Time  `json:"created_at"`

	// ClientKey is the correlation key the submitting client attached to
	// its outbound publish. Empty for records that came from a bulk fetch
	// or from clients that do not send one.
	ClientKey string `json:"client_key,omitempty"`
}

// Draft is a locally composed hazard report that has not been sent yet.
type Draft struct {
	Type        HazardType `json:"type" validate:"required,oneof=pothole traffic construction other"`
	Description string     `json:"description" validate:"required,min=1,max=500"`
	Latitude    float64    `json:"latitude" validate:"latitude"`
	Longitude   float64    `json:"longitude" validate:"longitude"`
}

// ReportStatus is the submission state of a pending report.
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportConfirmed ReportStatus = "confirmed"
	ReportFailed    ReportStatus = "failed"
)

// PendingReport is a draft that has been submitted by this client but not
// yet confirmed by the server. It is owned by the tracker until a matching
// confirmed Hazard takes its place.
type PendingReport struct {
	Key         string       `json:"key"`
	Draft       Draft        `json:"draft"`
	ReportedBy  Reporter     `json:"reported_by"`
	Status      ReportStatus `json:"status"`
	SubmittedAt time.Time    `json:"submitted_at"`
}

// NotificationRecord is a server-side notification history entry.
type NotificationRecord struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	HazardID  string    `json:"hazard_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
