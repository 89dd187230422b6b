package handlers

import (
	"net/http"

	"medibook/catalog"
	"medibook/models"
	"medibook/services/assistant"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var assistantService assistant.Service

var providerCatalog catalog.ProviderCatalog

// SetAssistantService injects the assistant service used by the chat handler.
func SetAssistantService(svc assistant.Service) {
	assistantService = svc
}

// SetProviderCatalog injects the catalog backing the specialties endpoint.
func SetProviderCatalog(cat catalog.ProviderCatalog) {
	providerCatalog = cat
}

// ChatRequest is the inbound chat payload. Everything beyond the message is
// optional; a missing session id starts a fresh session.
type ChatRequest struct {
	Message      string           `json:"message" binding:"required"`
	History      []assistant.Turn `json:"history"`
	SessionID    string           `json:"sessionId"`
	UserLocation *struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"userLocation"`
}

// ChatHandler serves POST /api/chat: one user message in, one structured
// assistant result out.
func ChatHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid chat request", "message is required")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	var origin models.Coordinates
	if req.UserLocation != nil {
		coords, err := models.NewCoordinates(req.UserLocation.Lat, req.UserLocation.Lng)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid user location", err.Error())
			return
		}
		origin = coords
	}

	result := assistantService.ProcessMessage(c.Request.Context(), assistant.Request{
		SessionID: sessionID,
		Message:   req.Message,
		History:   req.History,
		Origin:    origin,
	})

	logger.Debug("chat turn served",
		zap.String("sessionId", sessionID),
		zap.String("responseType", string(result.Type)),
	)
	c.JSON(http.StatusOK, gin.H{
		"type":      result.Type,
		"message":   result.Message,
		"data":      result.Data,
		"sessionId": sessionID,
	})
}

// SpecialtiesHandler serves GET /api/specialties with the distinct
// specialties present in the catalog.
func SpecialtiesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, providerCatalog.Specialties())
}

// HealthHandler reports liveness.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
