package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ajserber/roadwatch/internal/models"
)

// Client talks to the hazard REST API. Authentication is a bearer token
// supplied by configuration; token lifecycle is not managed here.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchHazards retrieves the full hazard set. Entries that fail payload
// validation are dropped and logged rather than failing the whole
// fetch; one bad record from another client must not block loading.
func (c *Client) FetchHazards(ctx context.Context) ([]*models.Hazard, error) {
	var payloads []models.HazardPayload
	if err := c.doJSON(ctx, http.MethodGet, "/hazards", nil, &payloads); err != nil {
		return nil, fmt.Errorf("fetch hazards: %w", err)
	}

	hazards := make([]*models.Hazard, 0, len(payloads))
	for _, p := range payloads {
		h, err := p.ToHazard()
		if err != nil {
			c.logger.WithError(err).WithField("hazard_id", p.ID).Warn("Dropping malformed hazard from fetch")
			continue
		}
		hazards = append(hazards, h)
	}
	return hazards, nil
}

// createRequest is the POST /hazards body shape.
type createRequest struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// CreateHazard submits a draft and returns the confirmed record with
// its server-assigned ID.
func (c *Client) CreateHazard(ctx context.Context, d models.Draft) (*models.Hazard, error) {
	body := createRequest{
		Type:        string(d.Type),
		Description: d.Description,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
	}

	var payload models.HazardPayload
	if err := c.doJSON(ctx, http.MethodPost, "/hazards", body, &payload); err != nil {
		return nil, fmt.Errorf("create hazard: %w", err)
	}

	h, err := payload.ToHazard()
	if err != nil {
		return nil, fmt.Errorf("create hazard: bad response payload: %w", err)
	}
	return h, nil
}

// notificationPayload is the wire shape of a notification history entry.
type notificationPayload struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	HazardID  string    `json:"hazardId,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// FetchNotifications retrieves the server-side notification history.
func (c *Client) FetchNotifications(ctx context.Context) ([]models.NotificationRecord, error) {
	var payloads []notificationPayload
	if err := c.doJSON(ctx, http.MethodGet, "/hazards/notifications", nil, &payloads); err != nil {
		return nil, fmt.Errorf("fetch notifications: %w", err)
	}

	records := make([]models.NotificationRecord, len(payloads))
	for i, p := range payloads {
		records[i] = models.NotificationRecord{
			ID:        p.ID,
			Message:   p.Message,
			HazardID:  p.HazardID,
			Read:      p.Read,
			CreatedAt: p.CreatedAt,
		}
	}
	return records, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, data)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
