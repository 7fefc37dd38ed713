package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusone/campus-hub-api/internal/dto"
	"github.com/campusone/campus-hub-api/internal/middleware"
	"github.com/campusone/campus-hub-api/internal/relay"
	"github.com/campusone/campus-hub-api/internal/service"
)

// ReplicationHandler exposes the manual merge primitive plus the two
// operator-facing logs (activity trail, relay delivery log).
type ReplicationHandler struct {
	authService *service.AuthService
	activity    *service.ActivityLog
	relay       *relay.Relay
}

func NewReplicationHandler(authService *service.AuthService, activity *service.ActivityLog, r *relay.Relay) *ReplicationHandler {
	return &ReplicationHandler{authService: authService, activity: activity, relay: r}
}

func (h *ReplicationHandler) Export(c *gin.Context) {
	token, err := h.authService.Export(c.Request.Context(), middleware.GetUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.ExportResponse{Token: token})
}

func (h *ReplicationHandler) Import(c *gin.Context) {
	var req dto.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.authService.Import(c.Request.Context(), middleware.GetUser(c), req.Token)
	if err != nil {
		if errors.Is(err, service.ErrReplication) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.ImportResponse{Users: count})
}

func (h *ReplicationHandler) Activity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"activity": h.activity.Entries()})
}

func (h *ReplicationHandler) RelayLog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"log": h.relay.Log()})
}
