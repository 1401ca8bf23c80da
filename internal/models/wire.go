package models

import (
	"errors"
	"time"
)

// HazardPayload is the JSON shape hazards travel in, both on the push
// channel and in REST responses. The server stores locations as GeoJSON
// points, so coordinates arrive as [longitude, latitude].
type HazardPayload struct {
	ID          string          `json:"_id"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Address     string          `json:"address,omitempty"`
	Location    GeoPoint        `json:"location"`
	ReportedBy  ReporterPayload `json:"reportedBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	ClientKey   string          `json:"clientKey,omitempty"`
}

// GeoPoint is a GeoJSON point.
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lon, lat]
}

// ReporterPayload is the wire shape of a hazard's reporter reference.
type ReporterPayload struct {
	ID             string `json:"_id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

var (
	ErrPayloadNoID          = errors.New("hazard payload missing id")
	ErrPayloadNoType        = errors.New("hazard payload missing type")
	ErrPayloadNoCoordinates = errors.New("hazard payload missing coordinates")
)

// ToHazard converts a wire payload into a domain record. It rejects
// payloads missing the fields the repository depends on; anything else
// (unknown type values included, the enum is extensible) passes through.
func (p HazardPayload) ToHazard() (*Hazard, error) {
	if p.ID == "" {
		return nil, ErrPayloadNoID
	}
	if p.Type == "" {
		return nil, ErrPayloadNoType
	}
	if len(p.Location.Coordinates) != 2 {
		return nil, ErrPayloadNoCoordinates
	}
	return &Hazard{
		ID:          p.ID,
		Type:        HazardType(p.Type),
		Description: p.Description,
		Address:     p.Address,
		Longitude:   p.Location.Coordinates[0],
		Latitude:    p.Location.Coordinates[1],
		ReportedBy: Reporter{
			ID:             p.ReportedBy.ID,
			Username:       p.ReportedBy.Username,
			ProfilePicture: p.ReportedBy.ProfilePicture,
		},
		CreatedAt: p.CreatedAt,
		ClientKey: p.ClientKey,
	}, nil
}

// PayloadFromHazard converts a domain record into its wire shape.
func PayloadFromHazard(h *Hazard) HazardPayload {
	return HazardPayload{
		ID:          h.ID,
		Type:        string(h.Type),
		Description: h.Description,
		Address:     h.Address,
		Location: GeoPoint{
			Type:        "Point",
			Coordinates: []float64{h.Longitude, h.Latitude},
		},
		ReportedBy: ReporterPayload{
			ID:             h.ReportedBy.ID,
			Username:       h.ReportedBy.Username,
			ProfilePicture: h.ReportedBy.ProfilePicture,
		},
		CreatedAt: h.CreatedAt,
		ClientKey: h.ClientKey,
	}
}
