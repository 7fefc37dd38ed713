package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusone/campus-hub-api/internal/assistant"
	"github.com/campusone/campus-hub-api/internal/dto"
	"github.com/campusone/campus-hub-api/internal/middleware"
)

type AssistantHandler struct {
	assistant *assistant.Assistant
}

func NewAssistantHandler(a *assistant.Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: a}
}

// ToolCall always answers 200: tool-level failures travel inside the
// {error} envelope back to the live session, not as HTTP errors.
func (h *AssistantHandler) ToolCall(c *gin.Context) {
	var req dto.ToolCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.assistant.Invoke(c.Request.Context(), middleware.GetUser(c), req))
}
