package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all v1 API routes.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	hazards := api.Group("/hazards")
	{
		hazards.GET("", h.listHazards)
		hazards.POST("", h.submitHazard)
		hazards.POST("/refresh", h.refreshHazards)
		hazards.GET("/selected", h.getSelection)
		hazards.PUT("/selected", h.setSelection)
		hazards.DELETE("/selected", h.clearSelection)
	}

	session := api.Group("/session")
	{
		session.POST("/activate", h.activateSession)
		session.POST("/deactivate", h.deactivateSession)
	}

	api.GET("/notifications", h.listNotifications)

	api.GET("/system/health", h.healthCheck)
}
