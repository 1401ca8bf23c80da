package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ajserber/roadwatch/internal/config"
	"github.com/ajserber/roadwatch/internal/models"
	"github.com/ajserber/roadwatch/internal/service"
	"github.com/ajserber/roadwatch/internal/service/mocks"
)

// newTestHandler builds a Handler over a mocked sync manager and a gin
// engine with all v1 routes registered.
func newTestHandler(t *testing.T) (*mocks.MockSyncManager, *gin.Engine) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockSync := mocks.NewMockSyncManager(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	handler := NewHandler(mockSync, logger, &config.Config{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return mockSync, router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleHazard() *models.Hazard {
	return &models.Hazard{
		ID:          "42",
		Type:        models.HazardPothole,
		Description: "deep crack",
		Latitude:    40.0,
		Longitude:   -74.0,
		ReportedBy:  models.Reporter{ID: "user-1", Username: "ana"},
		CreatedAt:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestActivateSession_Success(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Activate(gomock.Any()).Return(nil)

	w := doRequest(router, http.MethodPost, "/api/v1/session/activate", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"active"}`, w.Body.String())
}

func TestActivateSession_AlreadyActive(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Activate(gomock.Any()).Return(service.ErrAlreadyActive)

	w := doRequest(router, http.MethodPost, "/api/v1/session/activate", "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestActivateSession_LoadFailure(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Activate(gomock.Any()).Return(fmt.Errorf("activate: bulk fetch: %w", errors.New("connection refused")))

	w := doRequest(router, http.MethodPost, "/api/v1/session/activate", "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "bulk fetch")
}

func TestDeactivateSession(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Deactivate()

	w := doRequest(router, http.MethodPost, "/api/v1/session/deactivate", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestListHazards_MergedSnapshot(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Snapshot().Return(service.Snapshot{
		Status:  service.SessionActive,
		Hazards: []*models.Hazard{sampleHazard()},
		Pending: []*models.PendingReport{{
			Key: "key-1",
			Draft: models.Draft{
				Type:        models.HazardTraffic,
				Description: "jam on 5th",
				Latitude:    40.1,
				Longitude:   -74.1,
			},
			Status:      models.ReportPending,
			SubmittedAt: time.Date(2026, 3, 14, 12, 1, 0, 0, time.UTC),
		}},
		Toasts: []service.Toast{{
			Message: "New pothole hazard reported!",
			Type:    models.HazardPothole,
		}},
	})

	w := doRequest(router, http.MethodGet, "/api/v1/hazards", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HazardListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "active", resp.Status)
	require.Len(t, resp.Hazards, 1)
	assert.Equal(t, "42", resp.Hazards[0].ID)
	assert.Equal(t, "deep crack", resp.Hazards[0].Description)
	require.Len(t, resp.Pending, 1)
	assert.Equal(t, "key-1", resp.Pending[0].Key)
	assert.Equal(t, "pending", resp.Pending[0].Status)
	require.Len(t, resp.Toasts, 1)
	assert.Equal(t, "New pothole hazard reported!", resp.Toasts[0].Message)
	assert.Nil(t, resp.Selection)
}

func TestListHazards_LoadErrorSurfaced(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Snapshot().Return(service.Snapshot{
		Status:    service.SessionFailed,
		LoadError: "bulk fetch: connection refused",
	})

	w := doRequest(router, http.MethodGet, "/api/v1/hazards", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HazardListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, "bulk fetch: connection refused", resp.LoadError)
	assert.NotNil(t, resp.Hazards) // [] rather than null
}

func TestRefreshHazards_Success(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Refresh(gomock.Any()).Return(nil)
	mockSync.EXPECT().Snapshot().Return(service.Snapshot{Status: service.SessionActive})

	w := doRequest(router, http.MethodPost, "/api/v1/hazards/refresh", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRefreshHazards_NotActive(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Refresh(gomock.Any()).Return(service.ErrNotActive)

	w := doRequest(router, http.MethodPost, "/api/v1/hazards/refresh", "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitHazard_Success(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().
		Submit(gomock.Any(), models.Draft{
			Type:        models.HazardPothole,
			Description: "deep crack",
			Latitude:    40.0,
			Longitude:   -74.0,
		}).
		Return(sampleHazard(), nil)

	body := `{"type":"pothole","description":"deep crack","latitude":40.0,"longitude":-74.0}`
	w := doRequest(router, http.MethodPost, "/api/v1/hazards", body)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp HazardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "42", resp.ID)
	assert.Equal(t, "pothole", resp.Type)
}

func TestSubmitHazard_InvalidBody(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(router, http.MethodPost, "/api/v1/hazards", `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitHazard_ValidationRejectsIncompleteDraft(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing type", `{"description":"deep crack","latitude":40.0,"longitude":-74.0}`},
		{"unknown type", `{"type":"sinkhole","description":"x","latitude":40.0,"longitude":-74.0}`},
		{"missing description", `{"type":"pothole","latitude":40.0,"longitude":-74.0}`},
		{"latitude out of range", `{"type":"pothole","description":"x","latitude":120.0,"longitude":-74.0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router := newTestHandler(t) // no Submit expectation: must not reach the service
			w := doRequest(router, http.MethodPost, "/api/v1/hazards", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSubmitHazard_NotActive(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, service.ErrNotActive)

	body := `{"type":"pothole","description":"deep crack","latitude":40.0,"longitude":-74.0}`
	w := doRequest(router, http.MethodPost, "/api/v1/hazards", body)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitHazard_CreateFailure(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("submit hazard: status 500"))

	body := `{"type":"pothole","description":"deep crack","latitude":40.0,"longitude":-74.0}`
	w := doRequest(router, http.MethodPost, "/api/v1/hazards", body)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetSelection_NoneSelected(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Snapshot().Return(service.Snapshot{Status: service.SessionActive})

	w := doRequest(router, http.MethodGet, "/api/v1/hazards/selected", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSelection_Selected(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Snapshot().Return(service.Snapshot{
		Status: service.SessionActive,
		Selection: &service.SelectionView{
			ID:     "42",
			Region: service.Region{Latitude: 40.0, Longitude: -74.0, LatitudeDelta: 0.0922, LongitudeDelta: 0.0421},
		},
	})

	w := doRequest(router, http.MethodGet, "/api/v1/hazards/selected", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp SelectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "42", resp.ID)
	assert.Equal(t, 0.0922, resp.Region.LatitudeDelta)
}

func TestSetSelection_Success(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().
		Select("42").
		Return(service.Region{Latitude: 40.0, Longitude: -74.0, LatitudeDelta: 0.0922, LongitudeDelta: 0.0421}, nil)

	w := doRequest(router, http.MethodPut, "/api/v1/hazards/selected", `{"id":"42"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp SelectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "42", resp.ID)
	assert.Equal(t, 40.0, resp.Region.Latitude)
}

func TestSetSelection_UnknownHazard(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Select("missing").Return(service.Region{}, fmt.Errorf("%w: missing", service.ErrUnknownHazard))

	w := doRequest(router, http.MethodPut, "/api/v1/hazards/selected", `{"id":"missing"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetSelection_MissingID(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(router, http.MethodPut, "/api/v1/hazards/selected", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClearSelection(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Dismiss()

	w := doRequest(router, http.MethodDelete, "/api/v1/hazards/selected", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestListNotifications_MergesToastsAndHistory(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Notifications(gomock.Any()).Return([]models.NotificationRecord{
		{ID: "n1", Message: "New pothole hazard reported!", HazardID: "42", CreatedAt: time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC)},
	}, nil)
	mockSync.EXPECT().Snapshot().Return(service.Snapshot{
		Status: service.SessionActive,
		Toasts: []service.Toast{{Message: "New traffic hazard reported!", Type: models.HazardTraffic}},
	})

	w := doRequest(router, http.MethodGet, "/api/v1/notifications", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp NotificationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Toasts, 1)
	assert.Equal(t, "traffic", resp.Toasts[0].Type)
	require.Len(t, resp.History, 1)
	assert.Equal(t, "n1", resp.History[0].ID)
	assert.Equal(t, "42", resp.History[0].HazardID)
}

func TestListNotifications_FetchFailure(t *testing.T) {
	mockSync, router := newTestHandler(t)
	mockSync.EXPECT().Notifications(gomock.Any()).Return(nil, errors.New("fetch notifications: status 500"))

	w := doRequest(router, http.MethodGet, "/api/v1/notifications", "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHealthCheck(t *testing.T) {
	_, router := newTestHandler(t)

	w := doRequest(router, http.MethodGet, "/api/v1/system/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAPIKeyAuthMiddleware(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	newRouter := func(cfg *config.Config) *gin.Engine {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(APIKeyAuthMiddleware(cfg, logger))
		router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	tests := []struct {
		name     string
		keys     []string
		header   string
		value    string
		wantCode int
	}{
		{"no keys configured, open access", nil, "", "", http.StatusOK},
		{"valid X-API-Key", []string{"secret"}, "X-API-Key", "secret", http.StatusOK},
		{"valid bearer token", []string{"secret"}, "Authorization", "Bearer secret", http.StatusOK},
		{"missing key", []string{"secret"}, "", "", http.StatusUnauthorized},
		{"wrong key", []string{"secret"}, "X-API-Key", "nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&config.Config{LocalAPIKeys: tt.keys})
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
